package livesservice

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/playlives/internal/domain"
	"github.com/GlebRadaev/playlives/internal/kv"
	"github.com/GlebRadaev/playlives/internal/metrics"
	"github.com/GlebRadaev/playlives/pkg/validate"
)

type Repo interface {
	Get(ctx context.Context, wallet string) (*domain.LivesAccount, error)
	Create(ctx context.Context, acc *domain.LivesAccount) (bool, error)
	Modify(ctx context.Context, wallet string, fn func(acc *domain.LivesAccount) error) (*domain.LivesAccount, error)
	AddPaid(ctx context.Context, wallet string, lives int) (*domain.LivesAccount, error)
}

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type BalanceSource interface {
	GetJettonBalance(ctx context.Context, wallet, jettonMaster string) (float64, error)
}

type Config struct {
	DailyFreeLives int
	BonusDivisor   float64
	BonusCap       int
	ClaimLimit     int
	ClaimWindow    time.Duration
	JettonMaster   string
	BalanceTimeout time.Duration
}

type Service struct {
	repo     Repo
	limiter  Limiter
	balances BalanceSource
	cfg      Config
	now      func() time.Time
}

func New(repo Repo, limiter Limiter, balances BalanceSource, cfg Config) *Service {
	if cfg.BalanceTimeout <= 0 {
		cfg.BalanceTimeout = 3 * time.Second
	}
	return &Service{
		repo:     repo,
		limiter:  limiter,
		balances: balances,
		cfg:      cfg,
		now:      time.Now,
	}
}

var (
	ErrRateLimited      = errors.New("too many claim attempts")
	ErrInvalidWallet    = validate.ErrInvalidWallet
	ErrNoLivesAvailable = domain.ErrNoLivesAvailable
	ErrInvalidLives     = errors.New("lives to credit must be positive")
)

// BonusLives converts a token balance into bonus lives: floor(balance/divisor) clamped to [0, cap].
func BonusLives(balance, divisor float64, cap int) int {
	if divisor <= 0 || balance <= 0 || cap <= 0 {
		return 0
	}
	bonus := math.Floor(balance / divisor)
	if bonus > float64(cap) {
		return cap
	}
	return int(bonus)
}

// GetOrCreate returns the wallet's account, creating it with today's free grant on first sight.
func (s *Service) GetOrCreate(ctx context.Context, wallet string) (*domain.LivesAccount, error) {
	acc, err := s.repo.Get(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if acc != nil {
		return acc, nil
	}

	acc = &domain.LivesAccount{
		Wallet:      wallet,
		FreeToday:   s.cfg.DailyFreeLives,
		LastResetAt: domain.UTCDay(s.now()),
	}
	created, err := s.repo.Create(ctx, acc)
	if err != nil {
		return nil, err
	}
	if created {
		zap.L().Info("lives account created", zap.String("wallet", wallet))
		return acc, nil
	}
	// Lost the race to a concurrent first claim.
	return s.repo.Get(ctx, wallet)
}

// ClaimDaily grants the free lives once per UTC day and replaces the bonus with bonus.
func (s *Service) ClaimDaily(ctx context.Context, wallet string, bonus int) (*domain.LivesAccount, error) {
	if _, err := s.GetOrCreate(ctx, wallet); err != nil {
		return nil, err
	}
	now := s.now()
	return s.repo.Modify(ctx, wallet, func(acc *domain.LivesAccount) error {
		acc.ClaimDaily(now, s.cfg.DailyFreeLives, bonus)
		return nil
	})
}

// Claim runs a daily claim behind the shared rate limiter. The bonus comes from the wallet's
// token balance; a failed lookup yields no bonus but never blocks the free grant.
func (s *Service) Claim(ctx context.Context, wallet, deviceID, ip string) (*domain.LivesAccount, error) {
	wallet, err := validate.Wallet(wallet)
	if err != nil {
		return nil, ErrInvalidWallet
	}
	allowed, err := s.limiter.Allow(ctx, kv.ClaimKey(deviceID, wallet, ip), s.cfg.ClaimLimit, s.cfg.ClaimWindow)
	if err != nil {
		metrics.Claims.WithLabelValues("error").Inc()
		zap.L().Error("rate limiter unavailable", zap.String("wallet", wallet), zap.Error(err))
		return nil, err
	}
	if !allowed {
		metrics.Claims.WithLabelValues("rate_limited").Inc()
		return nil, ErrRateLimited
	}

	acc, err := s.ClaimDaily(ctx, wallet, s.bonusFor(ctx, wallet))
	if err != nil {
		metrics.Claims.WithLabelValues("error").Inc()
		zap.L().Error("failed to claim daily lives", zap.String("wallet", wallet), zap.Error(err))
		return nil, err
	}
	metrics.Claims.WithLabelValues("ok").Inc()
	return acc, nil
}

func (s *Service) bonusFor(ctx context.Context, wallet string) int {
	if s.balances == nil || s.cfg.JettonMaster == "" {
		return 0
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.BalanceTimeout)
	defer cancel()

	balance, err := s.balances.GetJettonBalance(ctx, wallet, s.cfg.JettonMaster)
	if err != nil {
		zap.L().Warn("balance lookup failed, granting no bonus", zap.String("wallet", wallet), zap.Error(err))
		return 0
	}
	return BonusLives(balance, s.cfg.BonusDivisor, s.cfg.BonusCap)
}

// ConsumeOne spends one life, free first, then bonus, then paid.
// Free and bonus lives from a previous day are forfeited first.
func (s *Service) ConsumeOne(ctx context.Context, wallet string) (*domain.LivesAccount, error) {
	now := s.now()
	acc, err := s.repo.Modify(ctx, wallet, func(acc *domain.LivesAccount) error {
		acc.ExpireDaily(now)
		return acc.ConsumeOne()
	})
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, ErrNoLivesAvailable
	}
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *Service) CreditPaid(ctx context.Context, wallet string, lives int) (*domain.LivesAccount, error) {
	if lives <= 0 {
		return nil, ErrInvalidLives
	}
	acc, err := s.repo.AddPaid(ctx, wallet, lives)
	if err != nil {
		zap.L().Error("failed to credit paid lives", zap.String("wallet", wallet), zap.Error(err))
		return nil, err
	}
	return acc, nil
}

// Get returns the spendable balance, or an empty account for an unknown wallet.
func (s *Service) Get(ctx context.Context, wallet string) (*domain.LivesAccount, error) {
	wallet, err := validate.Wallet(wallet)
	if err != nil {
		return nil, ErrInvalidWallet
	}
	acc, err := s.repo.Get(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return &domain.LivesAccount{Wallet: wallet}, nil
	}
	acc.ExpireDaily(s.now())
	return acc, nil
}
