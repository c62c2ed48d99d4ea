package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonkeeper/tongo/ton"
)

func TestIsWallet(t *testing.T) {
	raw := "0:1111111111111111111111111111111111111111111111111111111111111111"
	id, err := ton.ParseAccountID(raw)
	assert.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"raw form", raw, true},
		{"user-friendly bounceable", id.ToHuman(true, false), true},
		{"user-friendly non-bounceable", id.ToHuman(false, false), true},
		{"empty", "", false},
		{"garbage", "not-a-wallet", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWallet(tt.input))
		})
	}
}

func TestWallet(t *testing.T) {
	raw := "0:1111111111111111111111111111111111111111111111111111111111111111"
	id, err := ton.ParseAccountID(raw)
	require.NoError(t, err)

	for _, form := range []string{raw, id.ToHuman(true, false), id.ToHuman(false, false)} {
		got, err := Wallet(form)
		require.NoError(t, err, form)
		assert.Equal(t, raw, got, form)
	}

	for _, bad := range []string{"", "not-a-wallet", "0:abc"} {
		_, err := Wallet(bad)
		assert.ErrorIs(t, err, ErrInvalidWallet, bad)
	}
}
