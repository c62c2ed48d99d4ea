package domain

import (
	"errors"
	"time"
)

var (
	ErrNoLivesAvailable = errors.New("no lives available")
	ErrAccountNotFound  = errors.New("lives account not found")
)

// Total is the number of rounds the account can still start.
func (a *LivesAccount) Total() int {
	return a.FreeToday + a.BonusToday + a.PaidBank
}

// ConsumeOne takes one life from the first non-empty bucket in the order free, bonus, paid.
// Free and bonus lives expire daily, so they always go first.
func (a *LivesAccount) ConsumeOne() error {
	if a.Total() <= 0 {
		return ErrNoLivesAvailable
	}
	switch {
	case a.FreeToday > 0:
		a.FreeToday--
	case a.BonusToday > 0:
		a.BonusToday--
	default:
		a.PaidBank--
	}
	return nil
}

// ExpireDaily drops free and bonus lives left over from an earlier UTC day.
// LastResetAt is kept so the next claim still grants the day's free life.
func (a *LivesAccount) ExpireDaily(now time.Time) {
	if a.LastResetAt.Before(UTCDay(now)) {
		a.FreeToday = 0
		a.BonusToday = 0
	}
}

// ClaimDaily resets the free grant once per UTC day and replaces the bonus with the
// freshly computed value.
func (a *LivesAccount) ClaimDaily(now time.Time, grant, bonus int) {
	today := UTCDay(now)
	if a.LastResetAt.Before(today) {
		a.FreeToday = grant
		a.LastResetAt = today
	}
	if bonus < 0 {
		bonus = 0
	}
	a.BonusToday = bonus
}

// UTCDay truncates t to midnight UTC.
func UTCDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
