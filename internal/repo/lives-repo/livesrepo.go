package livesrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/GlebRadaev/playlives/internal/domain"
	"github.com/GlebRadaev/playlives/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanAccount(row pgx.Row) (*domain.LivesAccount, error) {
	var acc domain.LivesAccount
	err := row.Scan(&acc.Wallet, &acc.FreeToday, &acc.BonusToday, &acc.PaidBank, &acc.LastResetAt)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *Repository) Get(ctx context.Context, wallet string) (*domain.LivesAccount, error) {
	query := `
        SELECT wallet, free_today, bonus_today, paid_bank, last_reset_at
        FROM lives_accounts
        WHERE wallet = $1
    `
	acc, err := scanAccount(r.db.QueryRow(ctx, query, wallet))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get lives account", zap.String("wallet", wallet), zap.Error(err))
		return nil, err
	}
	return acc, nil
}

// Create inserts acc unless the wallet already has an account. It reports whether a row was written.
func (r *Repository) Create(ctx context.Context, acc *domain.LivesAccount) (bool, error) {
	query := `
        INSERT INTO lives_accounts (wallet, free_today, bonus_today, paid_bank, last_reset_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (wallet) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, acc.Wallet, acc.FreeToday, acc.BonusToday, acc.PaidBank, acc.LastResetAt)
	if err != nil {
		zap.L().Error("failed to create lives account", zap.String("wallet", acc.Wallet), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Modify locks the wallet's row, applies fn and writes the result back in one transaction.
// When fn fails nothing is written and its error is returned unchanged.
func (r *Repository) Modify(ctx context.Context, wallet string, fn func(acc *domain.LivesAccount) error) (*domain.LivesAccount, error) {
	lockQuery := `
        SELECT wallet, free_today, bonus_today, paid_bank, last_reset_at
        FROM lives_accounts
        WHERE wallet = $1
        FOR UPDATE
    `
	updateQuery := `
        UPDATE lives_accounts
        SET free_today = $1, bonus_today = $2, paid_bank = $3, last_reset_at = $4, updated_at = NOW()
        WHERE wallet = $5
    `
	var updated *domain.LivesAccount
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		acc, err := scanAccount(r.db.QueryRow(ctx, lockQuery, wallet))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrAccountNotFound
			}
			zap.L().Error("failed to lock lives account", zap.String("wallet", wallet), zap.Error(err))
			return err
		}

		if err := fn(acc); err != nil {
			return err
		}

		_, err = r.db.Exec(ctx, updateQuery, acc.FreeToday, acc.BonusToday, acc.PaidBank, acc.LastResetAt, wallet)
		if err != nil {
			zap.L().Error("failed to update lives account", zap.String("wallet", wallet), zap.Error(err))
			return err
		}
		updated = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AddPaid credits purchased lives, creating the account when the wallet has none yet.
// A created account carries no free grant, so its first claim resets it.
func (r *Repository) AddPaid(ctx context.Context, wallet string, lives int) (*domain.LivesAccount, error) {
	query := `
        INSERT INTO lives_accounts (wallet, free_today, bonus_today, paid_bank, last_reset_at)
        VALUES ($1, 0, 0, $2, DATE '1970-01-01')
        ON CONFLICT (wallet) DO UPDATE
        SET paid_bank = lives_accounts.paid_bank + EXCLUDED.paid_bank, updated_at = NOW()
        RETURNING wallet, free_today, bonus_today, paid_bank, last_reset_at
    `
	acc, err := scanAccount(r.db.QueryRow(ctx, query, wallet, lives))
	if err != nil {
		zap.L().Error("failed to credit paid lives", zap.String("wallet", wallet), zap.Int("lives", lives), zap.Error(err))
		return nil, err
	}
	return acc, nil
}
