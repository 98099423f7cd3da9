package survey

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/HerbHall/wifisurvey/internal/store"
)

var migrations = []store.Migration{
	{
		Version:     1,
		Description: "create survey_samples",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE TABLE survey_samples (
				id              TEXT     PRIMARY KEY,
				floorplan       TEXT     NOT NULL,
				x               REAL     NOT NULL,
				y               REAL     NOT NULL,
				ssid            TEXT     NOT NULL DEFAULT '',
				bssid           TEXT     NOT NULL DEFAULT '',
				rssi            INTEGER  NOT NULL,
				signal_strength INTEGER  NOT NULL,
				channel         INTEGER  NOT NULL DEFAULT 0,
				band            REAL     NOT NULL DEFAULT 0,
				channel_width   INTEGER  NOT NULL DEFAULT 0,
				tx_rate         REAL     NOT NULL DEFAULT 0,
				phy_mode        TEXT     NOT NULL DEFAULT '',
				security        TEXT     NOT NULL DEFAULT '',
				latency_ms      REAL     NOT NULL DEFAULT 0,
				packet_loss     REAL     NOT NULL DEFAULT 0,
				taken_at        DATETIME NOT NULL
			)`)
			return err
		},
	},
	{
		Version:     2,
		Description: "index samples by floorplan",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX idx_survey_samples_floorplan
				ON survey_samples (floorplan, taken_at)`)
			return err
		},
	},
	{
		Version:     3,
		Description: "add frequency, interface and attempts",
		Up: func(tx *sql.Tx) error {
			for _, stmt := range []string{
				"ALTER TABLE survey_samples ADD COLUMN frequency REAL NOT NULL DEFAULT 0",
				"ALTER TABLE survey_samples ADD COLUMN interface TEXT NOT NULL DEFAULT ''",
				"ALTER TABLE survey_samples ADD COLUMN attempts INTEGER NOT NULL DEFAULT 1",
			} {
				if _, err := tx.Exec(stmt); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

const sampleColumns = `id, floorplan, x, y,
	ssid, bssid, rssi, signal_strength,
	channel, band, channel_width, frequency,
	tx_rate, phy_mode, security, interface,
	latency_ms, packet_loss, attempts, taken_at`

// SampleStore persists samples in the survey_samples table.
type SampleStore struct {
	db *sql.DB
}

// NewSampleStore applies the survey migrations to s.
func NewSampleStore(ctx context.Context, s *store.SQLiteStore) (*SampleStore, error) {
	if err := s.Migrate(ctx, "survey", migrations); err != nil {
		return nil, fmt.Errorf("migrate survey: %w", err)
	}
	return &SampleStore{db: s.DB()}, nil
}

// Insert stores a sample. The ID must be unique.
func (s *SampleStore) Insert(ctx context.Context, smp Sample) error {
	if smp.ID == "" {
		return errors.Join(ErrInvalidSample, errors.New("id is required"))
	}
	if err := smp.Validate(); err != nil {
		return err
	}
	l := smp.Link
	_, err := s.db.ExecContext(ctx, `INSERT INTO survey_samples (`+sampleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		smp.ID, smp.Floorplan, smp.X, smp.Y,
		l.SSID, l.BSSID, l.RSSI, l.SignalStrength,
		l.Channel, l.Band, l.ChannelWidth, l.Frequency,
		l.TxRate, l.PHYMode, l.Security, l.Interface,
		smp.LatencyMS, smp.PacketLoss, smp.Attempts, smp.TakenAt,
	)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}

// Get returns the sample with id, or ErrSampleNotFound.
func (s *SampleStore) Get(ctx context.Context, id string) (Sample, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sampleColumns+` FROM survey_samples WHERE id = ?`, id)
	smp, err := scanSample(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Sample{}, fmt.Errorf("%w: %s", ErrSampleNotFound, id)
	}
	if err != nil {
		return Sample{}, fmt.Errorf("get sample: %w", err)
	}
	return smp, nil
}

// List returns the samples of floorplan in the order they were taken. An
// empty floorplan lists every sample.
func (s *SampleStore) List(ctx context.Context, floorplan string) ([]Sample, error) {
	query := `SELECT ` + sampleColumns + ` FROM survey_samples`
	var args []any
	if floorplan != "" {
		query += ` WHERE floorplan = ?`
		args = append(args, floorplan)
	}
	query += ` ORDER BY taken_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	samples := []Sample{}
	for rows.Next() {
		smp, err := scanSample(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		samples = append(samples, smp)
	}
	return samples, rows.Err()
}

// Floorplans lists the distinct floor plans that have samples.
func (s *SampleStore) Floorplans(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT floorplan FROM survey_samples ORDER BY floorplan`)
	if err != nil {
		return nil, fmt.Errorf("list floorplans: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan floorplan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a sample.
func (s *SampleStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM survey_samples WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete sample: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSampleNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSample(row rowScanner) (Sample, error) {
	var smp Sample
	l := &smp.Link
	err := row.Scan(
		&smp.ID, &smp.Floorplan, &smp.X, &smp.Y,
		&l.SSID, &l.BSSID, &l.RSSI, &l.SignalStrength,
		&l.Channel, &l.Band, &l.ChannelWidth, &l.Frequency,
		&l.TxRate, &l.PHYMode, &l.Security, &l.Interface,
		&smp.LatencyMS, &smp.PacketLoss, &smp.Attempts, &smp.TakenAt,
	)
	return smp, err
}
