package coin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_PhotonAlias(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Coin
	}{
		{"lowercase photon", "5photon", Coin{Amount: "5000000", Denom: "uphoton"}},
		{"uppercase photon", "5PHOTON", Coin{Amount: "5000000", Denom: "uphoton"}},
		{"mixed case photon", "3Photon", Coin{Amount: "3000000", Denom: "uphoton"}},
		{"photon with space", "7 photon", Coin{Amount: "7000000", Denom: "uphoton"}},
		{"uphoton passthrough", "5000000uphoton", Coin{Amount: "5000000", Denom: "uphoton"}},
		{"uphoton with space", "42 uphoton", Coin{Amount: "42", Denom: "uphoton"}},
		{"single micro unit", "1uphoton", Coin{Amount: "1", Denom: "uphoton"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_LargeAmountKeepsPrecision(t *testing.T) {
	// Larger than int64 after rescale; must not overflow or round.
	got, err := Normalize("99999999999999999999photon")
	require.NoError(t, err)
	assert.Equal(t, "99999999999999999999000000", got.Amount)
	assert.Equal(t, "uphoton", got.Denom)
}

func TestNormalize_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"zero uphoton", "0uphoton", ErrInvalidAmount},
		{"zero photon", "0photon", ErrInvalidAmount},
		{"no denom", "500", ErrInvalidAmount},
		{"no quantity", "uphoton", ErrInvalidAmount},
		{"negative", "-5uphoton", ErrInvalidAmount},
		{"decimal quantity", "1.5photon", ErrInvalidAmount},
		{"empty", "", ErrInvalidAmount},
		{"garbage", "lots of money", ErrInvalidAmount},
		{"foreign denom", "5uatom", ErrUnsupportedDenom},
		{"display atone", "5atone", ErrUnsupportedDenom},
		{"micro atone", "5uatone", ErrUnsupportedDenom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		c    Coin
		want string
	}{
		{"whole photon", Coin{Amount: "5000000", Denom: "uphoton"}, "5 PHOTON"},
		{"fractional photon", Coin{Amount: "1500000", Denom: "uphoton"}, "1.5 PHOTON"},
		{"sub unit", Coin{Amount: "1", Denom: "uphoton"}, "0.000001 PHOTON"},
		{"atone", Coin{Amount: "2000000", Denom: "uatone"}, "2 ATONE"},
		{"unknown denom verbatim", Coin{Amount: "123", Denom: "uatom"}, "123 uatom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.c))
		})
	}
}
