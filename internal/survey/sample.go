// Package survey records link measurements at positions on a floor plan.
package survey

import (
	"errors"
	"time"

	"github.com/HerbHall/wifisurvey/internal/wifi"
)

var (
	ErrInconsistentLink = errors.New("link changed while sampling")
	ErrSampleNotFound   = errors.New("sample not found")
	ErrInvalidSample    = errors.New("invalid sample")
)

// Sample is one survey measurement taken at (X, Y) on a floor plan.
type Sample struct {
	ID        string `json:"id" yaml:"id"`
	Floorplan string `json:"floorplan" yaml:"floorplan"`

	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`

	Link wifi.Record `json:"link" yaml:"link"`

	// LatencyMS and PacketLoss come from the prober; PacketLoss is a percentage.
	LatencyMS  float64 `json:"latencyMs" yaml:"latencyMs"`
	PacketLoss float64 `json:"packetLoss" yaml:"packetLoss"`
	Attempts   int     `json:"attempts" yaml:"attempts"`

	TakenAt time.Time `json:"takenAt" yaml:"takenAt"`
}

// Validate checks the fields a caller supplies.
func (s Sample) Validate() error {
	switch {
	case s.Floorplan == "":
		return errors.Join(ErrInvalidSample, errors.New("floorplan is required"))
	case s.X < 0 || s.Y < 0:
		return errors.Join(ErrInvalidSample, errors.New("coordinates must not be negative"))
	case s.PacketLoss < 0 || s.PacketLoss > 100:
		return errors.Join(ErrInvalidSample, errors.New("packet loss must be within 0-100"))
	}
	return nil
}
