package paymentrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/GlebRadaev/playlives/internal/domain"
	"github.com/GlebRadaev/playlives/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Save records a confirmed payment. It returns false without error when the signature
// is already stored.
func (r *Repository) Save(ctx context.Context, payment *domain.PaymentRecord) (bool, error) {
	query := `
        INSERT INTO payment_records (wallet, signature, amount, token, lives_bought, tier, game_id, sender, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (signature) DO NOTHING
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, payment.Wallet, payment.Signature, payment.Amount, payment.Token,
		payment.LivesBought, payment.Tier, payment.GameID, payment.Sender, payment.CreatedAt).Scan(&payment.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		zap.L().Error("can't save payment", zap.String("signature", payment.Signature), zap.Error(err))
		return false, err
	}
	return true, nil
}

func (r *Repository) LivesPurchasedSince(ctx context.Context, wallet string, since time.Time) (int, error) {
	query := `
        SELECT COALESCE(SUM(lives_bought), 0)
        FROM payment_records
        WHERE wallet = $1 AND created_at >= $2
    `
	var lives int
	if err := r.db.QueryRow(ctx, query, wallet, since).Scan(&lives); err != nil {
		zap.L().Error("failed to sum purchased lives", zap.String("wallet", wallet), zap.Error(err))
		return 0, err
	}
	return lives, nil
}

func (r *Repository) GetByWallet(ctx context.Context, wallet string) ([]domain.PaymentRecord, error) {
	query := `
        SELECT id, wallet, signature, amount, token, lives_bought, tier, game_id, sender, created_at
        FROM payment_records
        WHERE wallet = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, wallet)
	if err != nil {
		zap.L().Error("failed to fetch payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.PaymentRecord
	for rows.Next() {
		var p domain.PaymentRecord
		err := rows.Scan(&p.ID, &p.Wallet, &p.Signature, &p.Amount, &p.Token, &p.LivesBought, &p.Tier, &p.GameID, &p.Sender, &p.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
