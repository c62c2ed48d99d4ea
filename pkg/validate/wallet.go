package validate

import (
	"errors"

	"github.com/tonkeeper/tongo/ton"
)

var ErrInvalidWallet = errors.New("invalid wallet address")

// IsWallet reports whether s parses as a TON account address in raw or user-friendly form.
func IsWallet(s string) bool {
	_, err := Wallet(s)
	return err == nil
}

// Wallet returns the raw form (workchain:hex) of a TON address given in any supported form,
// so one account always maps to one key.
func Wallet(s string) (string, error) {
	if s == "" {
		return "", ErrInvalidWallet
	}
	acc, err := ton.ParseAccountID(s)
	if err != nil {
		return "", ErrInvalidWallet
	}
	return acc.String(), nil
}
