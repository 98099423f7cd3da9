package wifi

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnknownChannelFormat is returned when a channel string matches none of
// the known grammars.
var ErrUnknownChannelFormat = errors.New("unknown channel format")

// ChannelForm identifies which grammar a channel string was written in.
type ChannelForm int

const (
	// BareForm is a plain channel number: "36".
	BareForm ChannelForm = iota + 1
	// OffsetForm carries a secondary-channel indicator: "149,+1".
	OffsetForm
	// SlashForm is the wdutil grammar on newer macOS: "5g44/40".
	SlashForm
	// ParenForm is the parenthetical grammar: "11 (20 MHz, Active)" or "44 (5GHz, 80MHz)".
	ParenForm
)

func (f ChannelForm) String() string {
	switch f {
	case BareForm:
		return "bare"
	case OffsetForm:
		return "offset"
	case SlashForm:
		return "slash"
	case ParenForm:
		return "paren"
	default:
		return "unknown"
	}
}

// ChannelSpec is a channel string broken into its parts. Band and Width are
// zero when the grammar does not carry them.
type ChannelSpec struct {
	Form    ChannelForm
	Channel int
	Band    float64
	Width   int
	Offset  int
}

var (
	slashChannelRe  = regexp.MustCompile(`^(\d)g(\d+)/(\d+)$`)
	parenChannelRe  = regexp.MustCompile(`^(\d+)\s*\((.*)\)$`)
	offsetChannelRe = regexp.MustCompile(`^(\d+)\s*,\s*([+-]?\d+)$`)
	bareChannelRe   = regexp.MustCompile(`^\d+$`)
	widthPartRe     = regexp.MustCompile(`^(\d+)\s*MHz$`)
	bandPartRe      = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*GHz$`)
)

// ParseChannelSpec recognizes a channel string by its structure: a '/' selects
// the slash grammar, a '(' the parenthetical one, a ',' the offset one.
func ParseChannelSpec(s string) (ChannelSpec, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.Contains(s, "/"):
		return parseSlashChannel(s)
	case strings.Contains(s, "("):
		return parseParenChannel(s)
	case strings.Contains(s, ","):
		return parseOffsetChannel(s)
	default:
		return parseBareChannel(s)
	}
}

func parseSlashChannel(s string) (ChannelSpec, error) {
	m := slashChannelRe.FindStringSubmatch(s)
	if m == nil {
		return ChannelSpec{}, fmt.Errorf("%w: %q", ErrUnknownChannelFormat, s)
	}
	band, ok := bandDigit(m[1])
	if !ok {
		return ChannelSpec{}, fmt.Errorf("%w: band %q in %q", ErrUnknownChannelFormat, m[1], s)
	}
	ch, _ := strconv.Atoi(m[2])
	width, _ := strconv.Atoi(m[3])
	return ChannelSpec{Form: SlashForm, Channel: ch, Band: band, Width: width}, nil
}

func parseParenChannel(s string) (ChannelSpec, error) {
	m := parenChannelRe.FindStringSubmatch(s)
	if m == nil {
		return ChannelSpec{}, fmt.Errorf("%w: %q", ErrUnknownChannelFormat, s)
	}
	spec := ChannelSpec{Form: ParenForm}
	spec.Channel, _ = strconv.Atoi(m[1])
	for _, part := range strings.Split(m[2], ",") {
		part = strings.TrimSpace(part)
		if w := widthPartRe.FindStringSubmatch(part); w != nil {
			spec.Width, _ = strconv.Atoi(w[1])
			continue
		}
		if b := bandPartRe.FindStringSubmatch(part); b != nil {
			spec.Band = normalizeBand(b[1])
		}
		// Anything else ("Active", "Inactive") is link state, not channel data.
	}
	return spec, nil
}

func parseOffsetChannel(s string) (ChannelSpec, error) {
	m := offsetChannelRe.FindStringSubmatch(s)
	if m == nil {
		return ChannelSpec{}, fmt.Errorf("%w: %q", ErrUnknownChannelFormat, s)
	}
	ch, _ := strconv.Atoi(m[1])
	off, _ := strconv.Atoi(m[2])
	return ChannelSpec{Form: OffsetForm, Channel: ch, Offset: off}, nil
}

func parseBareChannel(s string) (ChannelSpec, error) {
	if !bareChannelRe.MatchString(s) {
		return ChannelSpec{}, fmt.Errorf("%w: %q", ErrUnknownChannelFormat, s)
	}
	ch, _ := strconv.Atoi(s)
	return ChannelSpec{Form: BareForm, Channel: ch}, nil
}

// Resolve turns the spec into channel, band and width. Missing band falls
// back to ChannelToBand; missing width is inferred from the PHY mode and
// whether a secondary-channel offset was present.
func (c ChannelSpec) Resolve(phyMode string) (channel int, band float64, width int) {
	band = c.Band
	if band == 0 {
		band = ChannelToBand(c.Channel)
	}
	width = c.Width
	if width == 0 {
		width = inferChannelWidth(phyMode, c.Offset != 0)
	}
	return c.Channel, band, width
}

// inferChannelWidth guesses the width for releases that do not report it.
func inferChannelWidth(phyMode string, hasOffset bool) int {
	phy := strings.ToLower(strings.TrimSpace(phyMode))
	switch {
	case strings.HasSuffix(phy, "ac"), strings.HasSuffix(phy, "ax"):
		if hasOffset {
			return 80
		}
		return 20
	case strings.HasSuffix(phy, "n"):
		if hasOffset {
			return 40
		}
		return 20
	default:
		return 20
	}
}

func bandDigit(d string) (float64, bool) {
	switch d {
	case "2":
		return Band24, true
	case "5":
		return Band5, true
	case "6":
		return Band6, true
	}
	return 0, false
}

func normalizeBand(s string) float64 {
	switch {
	case strings.HasPrefix(s, "2"):
		return Band24
	case strings.HasPrefix(s, "5"):
		return Band5
	case strings.HasPrefix(s, "6"):
		return Band6
	}
	return 0
}
