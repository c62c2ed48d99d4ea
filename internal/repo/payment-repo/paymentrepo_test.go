package paymentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/playlives/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	saveQuery = `INSERT INTO payment_records (wallet, signature, amount, token, lives_bought, tier, game_id, sender, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (signature) DO NOTHING
        RETURNING id`
	sumQuery = `SELECT COALESCE(SUM(lives_bought), 0)
        FROM payment_records
        WHERE wallet = $1 AND created_at >= $2`
	listQuery = `SELECT id, wallet, signature, amount, token, lives_bought, tier, game_id, sender, created_at
        FROM payment_records
        WHERE wallet = $1
        ORDER BY created_at DESC`
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	newPayment := func() *domain.PaymentRecord {
		return &domain.PaymentRecord{
			Wallet: "EQwallet", Signature: "sig-1", Amount: 200_000_000, Token: "TON",
			LivesBought: 3, Tier: domain.TierMid, GameID: "blocks", Sender: "EQsender", CreatedAt: now,
		}
	}
	args := []any{"EQwallet", "sig-1", int64(200_000_000), "TON", 3, domain.TierMid, "blocks", "EQsender", now}

	tests := []struct {
		name      string
		mockSetup func()
		inserted  bool
		id        int64
		expectErr bool
	}{
		{
			name: "First delivery",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(saveQuery)).WithArgs(args...).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
			},
			inserted: true,
			id:       7,
		},
		{
			name: "Signature already stored",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(saveQuery)).WithArgs(args...).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(saveQuery)).WithArgs(args...).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			payment := newPayment()
			inserted, err := repo.Save(context.Background(), payment)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.inserted, inserted)
			assert.Equal(t, tt.id, payment.ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_LivesPurchasedSince(t *testing.T) {
	repo, mock := NewMock(t)
	since := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(sumQuery)).
		WithArgs("EQwallet", since).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(13))
	lives, err := repo.LivesPurchasedSince(context.Background(), "EQwallet", since)
	require.NoError(t, err)
	assert.Equal(t, 13, lives)

	mock.ExpectQuery(regexp.QuoteMeta(sumQuery)).
		WithArgs("EQwallet", since).
		WillReturnError(errors.New("database error"))
	_, err = repo.LivesPurchasedSince(context.Background(), "EQwallet", since)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByWallet(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{"id", "wallet", "signature", "amount", "token", "lives_bought", "tier", "game_id", "sender", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).
		WithArgs("EQwallet").
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(2), "EQwallet", "sig-2", int64(500), "TON", 10, domain.TierHigh, "blocks", "", now).
			AddRow(int64(1), "EQwallet", "sig-1", int64(100), "TON", 1, domain.TierCheap, "blocks", "", now))

	payments, err := repo.GetByWallet(context.Background(), "EQwallet")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "sig-2", payments[0].Signature)
	assert.Equal(t, 1, payments[1].LivesBought)

	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).
		WithArgs("EQwallet").
		WillReturnError(errors.New("database error"))
	_, err = repo.GetByWallet(context.Background(), "EQwallet")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
