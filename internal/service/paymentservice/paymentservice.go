package paymentservice

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/tonkeeper/tongo/ton"
	"go.uber.org/zap"
	"golang.org/x/crypto/hkdf"

	"github.com/GlebRadaev/playlives/internal/domain"
	"github.com/GlebRadaev/playlives/internal/events"
	"github.com/GlebRadaev/playlives/internal/metrics"
	"github.com/GlebRadaev/playlives/internal/pg"
	"github.com/GlebRadaev/playlives/internal/tonapi"
	"github.com/GlebRadaev/playlives/pkg/validate"
)

const (
	StatusSuccess          = "success"
	StatusAlreadyProcessed = "already_processed"

	rateCurrency = "USD"
	nanoPerToken = 1e9
)

type Repo interface {
	Save(ctx context.Context, payment *domain.PaymentRecord) (bool, error)
	LivesPurchasedSince(ctx context.Context, wallet string, since time.Time) (int, error)
	GetByWallet(ctx context.Context, wallet string) ([]domain.PaymentRecord, error)
}

type GameRepo interface {
	Get(ctx context.Context, id string) (*domain.Game, error)
}

type Store interface {
	PutAddress(ctx context.Context, addr *domain.TempPaymentAddress, ttl time.Duration) error
	GetAddress(ctx context.Context, address string) (*domain.TempPaymentAddress, error)
	DeleteAddress(ctx context.Context, address string) error
	MarkProcessed(ctx context.Context, signature string, ttl time.Duration) (bool, error)
	IsProcessed(ctx context.Context, signature string) (bool, error)
}

type Chain interface {
	VerifyTransfer(ctx context.Context, txHash, recipient string) (*tonapi.Transfer, error)
	GetRate(ctx context.Context, token, currency string) (float64, error)
}

type Ledger interface {
	CreditPaid(ctx context.Context, wallet string, lives int) (*domain.LivesAccount, error)
}

var (
	ErrInvalidWallet           = validate.ErrInvalidWallet
	ErrGameNotFound            = errors.New("game not found")
	ErrDailyCapReached         = errors.New("daily paid lives limit reached")
	ErrMissingFields           = errors.New("missing required fields")
	ErrUnknownOrExpiredAddress = errors.New("unknown or expired payment address")
	ErrTransferNotFound        = errors.New("transfer not found on chain")
	ErrUnsupportedToken        = errors.New("unsupported payment token")
	ErrInsufficientAmount      = errors.New("amount below the cheapest tier")
	ErrChainUnavailable        = errors.New("chain unavailable")
)

type Config struct {
	Secret             string
	PricesUSD          []float64
	LivesPerTier       []int
	FallbackUSDRate    float64
	MaxPaidLivesPerDay int
	AddressTTL         time.Duration
	ProcessedTTL       time.Duration
}

type IssueResult struct {
	Address            string
	GameID             string
	Pricing            domain.PricingSnapshot
	ExpiresAt          time.Time
	RemainingPaidLives int
}

type SettleRequest struct {
	Signature string
	Recipient string
	Amount    int64
	Token     string
}

type SettleResult struct {
	Status      string
	Wallet      string
	LivesBought int
	Tier        string
}

type Service struct {
	repo      Repo
	games     GameRepo
	store     Store
	chain     Chain
	ledger    Ledger
	txManager pg.TXManager
	publisher events.Publisher
	cfg       Config
	now       func() time.Time
}

func New(
	repo Repo,
	games GameRepo,
	store Store,
	chain Chain,
	ledger Ledger,
	txManager pg.TXManager,
	publisher events.Publisher,
	cfg Config,
) *Service {
	return &Service{
		repo:      repo,
		games:     games,
		store:     store,
		chain:     chain,
		ledger:    ledger,
		txManager: txManager,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// DeriveAddress maps (secret, nonce, wallet) to a basechain address through HKDF-SHA256.
func DeriveAddress(secret, nonce, wallet string) (string, error) {
	var acc ton.AccountID
	r := hkdf.New(sha256.New, []byte(secret), []byte(nonce), []byte(wallet))
	if _, err := io.ReadFull(r, acc.Address[:]); err != nil {
		return "", fmt.Errorf("derive address: %w", err)
	}
	return acc.ToHuman(true, false), nil
}

// Issue reserves a one-off deposit address for wallet and freezes the tier prices it will honor.
func (s *Service) Issue(ctx context.Context, wallet, gameID string) (*IssueResult, error) {
	wallet, err := validate.Wallet(wallet)
	if err != nil {
		return nil, ErrInvalidWallet
	}
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	if game == nil || !game.Active {
		return nil, ErrGameNotFound
	}

	now := s.now().UTC()
	purchased, err := s.repo.LivesPurchasedSince(ctx, wallet, domain.UTCDay(now))
	if err != nil {
		zap.L().Error("failed to count purchased lives", zap.String("wallet", wallet), zap.Error(err))
		return nil, err
	}
	remaining := s.cfg.MaxPaidLivesPerDay - purchased
	if remaining <= 0 {
		return nil, ErrDailyCapReached
	}

	nonce := uuid.NewString()
	address, err := DeriveAddress(s.cfg.Secret, nonce, wallet)
	if err != nil {
		return nil, err
	}

	temp := &domain.TempPaymentAddress{
		Address:   address,
		Wallet:    wallet,
		Nonce:     nonce,
		GameID:    game.ID,
		Pricing:   s.pricing(ctx),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.AddressTTL),
	}
	if err := s.store.PutAddress(ctx, temp, s.cfg.AddressTTL); err != nil {
		zap.L().Error("failed to store payment address", zap.String("wallet", wallet), zap.Error(err))
		return nil, err
	}
	metrics.AddressesIssued.Inc()

	return &IssueResult{
		Address:            address,
		GameID:             game.ID,
		Pricing:            temp.Pricing,
		ExpiresAt:          temp.ExpiresAt,
		RemainingPaidLives: remaining,
	}, nil
}

func (s *Service) pricing(ctx context.Context) domain.PricingSnapshot {
	rate, err := s.chain.GetRate(ctx, tonapi.TokenTON, rateCurrency)
	if err != nil || rate <= 0 {
		zap.L().Warn("token rate unavailable, using fallback",
			zap.Float64("fallback", s.cfg.FallbackUSDRate), zap.Error(err))
		rate = s.cfg.FallbackUSDRate
	}

	snap := domain.PricingSnapshot{
		PriceNano:    make(map[string]int64, len(domain.Tiers)),
		PriceUSD:     make(map[string]float64, len(domain.Tiers)),
		LivesPerTier: make(map[string]int, len(domain.Tiers)),
		TokenUSDRate: rate,
	}
	for i, tier := range domain.Tiers {
		if i >= len(s.cfg.PricesUSD) || i >= len(s.cfg.LivesPerTier) {
			break
		}
		usd := s.cfg.PricesUSD[i]
		snap.PriceUSD[tier] = usd
		snap.LivesPerTier[tier] = s.cfg.LivesPerTier[i]
		if rate > 0 {
			snap.PriceNano[tier] = int64(math.Ceil(usd / rate * nanoPerToken))
		}
	}
	return snap
}

// MatchTier returns the most expensive tier whose price amount covers with 5% tolerance.
func MatchTier(pricing domain.PricingSnapshot, amount int64) (string, int, bool) {
	for i := len(domain.Tiers) - 1; i >= 0; i-- {
		tier := domain.Tiers[i]
		price, ok := pricing.PriceNano[tier]
		if !ok || price <= 0 || pricing.LivesPerTier[tier] <= 0 {
			continue
		}
		if amount*100 >= price*95 {
			return tier, pricing.LivesPerTier[tier], true
		}
	}
	return "", 0, false
}

// Settle credits the lives bought by a reported transfer once it is confirmed on chain.
// The payment is keyed by the chain event id, so webhook and poller deliveries of one transfer
// collapse into a single credit. Repeated deliveries report already_processed.
func (s *Service) Settle(ctx context.Context, req SettleRequest) (*SettleResult, error) {
	if req.Signature == "" || req.Recipient == "" {
		return nil, ErrMissingFields
	}
	if done, res := s.processed(ctx, req.Signature); done {
		return res, nil
	}

	addr, err := s.lookupAddress(ctx, req.Recipient)
	if errors.Is(err, ErrUnknownOrExpiredAddress) {
		return s.released(ctx, req, err)
	}
	if err != nil {
		return nil, err
	}

	transfer, err := s.verify(ctx, req)
	if err != nil {
		return nil, err
	}
	if transfer.EventID != req.Signature {
		if done, res := s.processed(ctx, transfer.EventID); done {
			return res, nil
		}
	}

	return s.credit(ctx, transfer.EventID, addr, transfer)
}

func (s *Service) verify(ctx context.Context, req SettleRequest) (*tonapi.Transfer, error) {
	transfer, err := s.chain.VerifyTransfer(ctx, req.Signature, req.Recipient)
	switch {
	case errors.Is(err, tonapi.ErrNotFound), errors.Is(err, tonapi.ErrNoTransfer):
		return nil, ErrTransferNotFound
	case err != nil:
		zap.L().Warn("chain cross-check failed", zap.String("signature", req.Signature), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrChainUnavailable, err)
	}
	if transfer.EventID == "" {
		transfer.EventID = req.Signature
	}
	if transfer.Amount != req.Amount {
		zap.L().Warn("reported amount differs from chain",
			zap.String("signature", req.Signature), zap.Int64("reported", req.Amount), zap.Int64("chain", transfer.Amount))
	}
	return transfer, nil
}

// released answers a delivery whose address is gone. A transfer already settled under its
// event id is a duplicate; anything else keeps lookupErr.
func (s *Service) released(ctx context.Context, req SettleRequest, lookupErr error) (*SettleResult, error) {
	transfer, err := s.chain.VerifyTransfer(ctx, req.Signature, req.Recipient)
	if err != nil || transfer.EventID == "" {
		return nil, lookupErr
	}
	if done, res := s.processed(ctx, transfer.EventID); done {
		return res, nil
	}
	return nil, lookupErr
}

// SettleTransfer credits a transfer already read from the chain, as the confirmation poller does.
func (s *Service) SettleTransfer(ctx context.Context, recipient string, transfer *tonapi.Transfer) (*SettleResult, error) {
	if transfer == nil || transfer.EventID == "" {
		return nil, ErrMissingFields
	}
	if done, res := s.processed(ctx, transfer.EventID); done {
		return res, nil
	}
	addr, err := s.lookupAddress(ctx, recipient)
	if err != nil {
		return nil, err
	}
	return s.credit(ctx, transfer.EventID, addr, transfer)
}

// History lists the wallet's purchases, newest first.
func (s *Service) History(ctx context.Context, wallet string) ([]domain.PaymentRecord, error) {
	wallet, err := validate.Wallet(wallet)
	if err != nil {
		return nil, ErrInvalidWallet
	}
	return s.repo.GetByWallet(ctx, wallet)
}

func (s *Service) processed(ctx context.Context, signature string) (bool, *SettleResult) {
	done, err := s.store.IsProcessed(ctx, signature)
	if err != nil {
		// the unique signature index still guards the credit
		zap.L().Warn("processed marker lookup failed", zap.String("signature", signature), zap.Error(err))
		return false, nil
	}
	if done {
		metrics.PaymentsSettled.WithLabelValues("", StatusAlreadyProcessed).Inc()
		return true, &SettleResult{Status: StatusAlreadyProcessed}
	}
	return false, nil
}

func (s *Service) lookupAddress(ctx context.Context, recipient string) (*domain.TempPaymentAddress, error) {
	addr, err := s.store.GetAddress(ctx, tonapi.RawToFriendly(recipient))
	if err != nil {
		zap.L().Error("failed to load payment address", zap.String("recipient", recipient), zap.Error(err))
		return nil, err
	}
	if addr == nil || !s.now().Before(addr.ExpiresAt) {
		return nil, ErrUnknownOrExpiredAddress
	}
	return addr, nil
}

func (s *Service) credit(ctx context.Context, signature string, addr *domain.TempPaymentAddress, transfer *tonapi.Transfer) (*SettleResult, error) {
	if transfer.Token != tonapi.TokenTON {
		metrics.PaymentsSettled.WithLabelValues("", "unsupported_token").Inc()
		return nil, ErrUnsupportedToken
	}
	tier, lives, ok := MatchTier(addr.Pricing, transfer.Amount)
	if !ok {
		metrics.PaymentsSettled.WithLabelValues("", "insufficient").Inc()
		return nil, ErrInsufficientAmount
	}

	record := &domain.PaymentRecord{
		Wallet:      addr.Wallet,
		Signature:   signature,
		Amount:      transfer.Amount,
		Token:       transfer.Token,
		LivesBought: lives,
		Tier:        tier,
		GameID:      addr.GameID,
		Sender:      transfer.Sender,
		CreatedAt:   s.now().UTC(),
	}

	duplicate := false
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		inserted, err := s.repo.Save(ctx, record)
		if err != nil {
			return err
		}
		if !inserted {
			duplicate = true
			return nil
		}
		_, err = s.ledger.CreditPaid(ctx, addr.Wallet, lives)
		return err
	})
	if err != nil {
		zap.L().Error("failed to settle payment", zap.String("signature", signature), zap.Error(err))
		return nil, fmt.Errorf("settle payment: %w", err)
	}

	s.finish(ctx, signature, addr.Address)
	if duplicate {
		metrics.PaymentsSettled.WithLabelValues(tier, StatusAlreadyProcessed).Inc()
		return &SettleResult{Status: StatusAlreadyProcessed, Wallet: addr.Wallet}, nil
	}

	metrics.PaymentsSettled.WithLabelValues(tier, StatusSuccess).Inc()
	zap.L().Info("payment settled", zap.String("wallet", addr.Wallet), zap.String("tier", tier), zap.Int("lives", lives))
	s.publisher.Publish(ctx, events.New(events.TypePaymentCompleted, addr.Wallet, addr.GameID, map[string]any{
		"signature":   signature,
		"amount":      transfer.Amount,
		"token":       transfer.Token,
		"tier":        tier,
		"livesBought": lives,
	}))
	return &SettleResult{Status: StatusSuccess, Wallet: addr.Wallet, LivesBought: lives, Tier: tier}, nil
}

func (s *Service) finish(ctx context.Context, signature, address string) {
	ctx = context.WithoutCancel(ctx)
	if _, err := s.store.MarkProcessed(ctx, signature, s.cfg.ProcessedTTL); err != nil {
		zap.L().Warn("failed to set processed marker", zap.String("signature", signature), zap.Error(err))
	}
	if err := s.store.DeleteAddress(ctx, address); err != nil {
		zap.L().Warn("failed to release payment address", zap.String("address", address), zap.Error(err))
	}
}
