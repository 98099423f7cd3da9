package wifi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChannelSpec(t *testing.T) {
	tests := []struct {
		in   string
		want ChannelSpec
	}{
		{"5g44/40", ChannelSpec{Form: SlashForm, Channel: 44, Band: 5, Width: 40}},
		{"2g6/20", ChannelSpec{Form: SlashForm, Channel: 6, Band: 2.4, Width: 20}},
		{"6g37/160", ChannelSpec{Form: SlashForm, Channel: 37, Band: 6, Width: 160}},
		{"11 (20 MHz, Active)", ChannelSpec{Form: ParenForm, Channel: 11, Width: 20}},
		{"44 (5GHz, 80MHz)", ChannelSpec{Form: ParenForm, Channel: 44, Band: 5, Width: 80}},
		{"1 (2GHz, 20MHz)", ChannelSpec{Form: ParenForm, Channel: 1, Band: 2.4, Width: 20}},
		{"149,+1", ChannelSpec{Form: OffsetForm, Channel: 149, Offset: 1}},
		{"6,-1", ChannelSpec{Form: OffsetForm, Channel: 6, Offset: -1}},
		{"36", ChannelSpec{Form: BareForm, Channel: 36}},
		{"  36  ", ChannelSpec{Form: BareForm, Channel: 36}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChannelSpec(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChannelSpec_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "5x44/40", "9g44/40", "44 (", "149,+x", "-3"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseChannelSpec(in)
			if !errors.Is(err, ErrUnknownChannelFormat) {
				t.Fatalf("ParseChannelSpec(%q) error = %v, want ErrUnknownChannelFormat", in, err)
			}
		})
	}
}

func TestChannelSpecResolve(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		phy       string
		wantCh    int
		wantBand  float64
		wantWidth int
	}{
		{"slash form carries everything", "5g44/40", "", 44, 5, 40},
		{"paren width, band from channel", "11 (20 MHz, Active)", "", 11, 2.4, 20},
		{"paren with GHz", "44 (5GHz, 80MHz)", "802.11ac", 44, 5, 80},
		{"ac with offset", "149,+1", "802.11ac", 149, 5, 80},
		{"ac without offset", "149", "802.11ac", 149, 5, 20},
		{"n with offset", "6,-1", "802.11n", 6, 2.4, 40},
		{"n without offset", "6", "802.11n", 6, 2.4, 20},
		{"ax with offset", "36,+1", "802.11ax", 36, 5, 80},
		{"ax without offset", "36", "802.11ax", 36, 5, 20},
		{"legacy phy", "1,+1", "802.11g", 1, 2.4, 20},
		{"unknown phy", "40", "", 40, 5, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseChannelSpec(tt.in)
			require.NoError(t, err)
			ch, band, width := spec.Resolve(tt.phy)
			assert.Equal(t, tt.wantCh, ch, "channel")
			assert.Equal(t, tt.wantBand, band, "band")
			assert.Equal(t, tt.wantWidth, width, "width")
		})
	}
}

func TestChannelFormString(t *testing.T) {
	assert.Equal(t, "slash", SlashForm.String())
	assert.Equal(t, "paren", ParenForm.String())
	assert.Equal(t, "offset", OffsetForm.String())
	assert.Equal(t, "bare", BareForm.String())
	assert.Equal(t, "unknown", ChannelForm(0).String())
}
