package service

import (
	"github.com/GlebRadaev/playlives/internal/config"
	"github.com/GlebRadaev/playlives/internal/confirm"
	"github.com/GlebRadaev/playlives/internal/events"
	"github.com/GlebRadaev/playlives/internal/handlers/lives"
	"github.com/GlebRadaev/playlives/internal/handlers/payments"
	"github.com/GlebRadaev/playlives/internal/handlers/rounds"
	"github.com/GlebRadaev/playlives/internal/kv"
	"github.com/GlebRadaev/playlives/internal/pg"
	"github.com/GlebRadaev/playlives/internal/replay"
	"github.com/GlebRadaev/playlives/internal/repo"
	"github.com/GlebRadaev/playlives/internal/service/livesservice"
	"github.com/GlebRadaev/playlives/internal/service/paymentservice"
	"github.com/GlebRadaev/playlives/internal/service/roundservice"
	"github.com/GlebRadaev/playlives/internal/tonapi"
	"github.com/GlebRadaev/playlives/pkg/auth"
)

// Deps are the outside systems the services talk to.
type Deps struct {
	Store     *kv.Store
	Chain     *tonapi.Client
	Publisher events.Publisher
	Tickets   auth.TicketServiceInterface
}

type Services struct {
	RoundService   rounds.Service
	LivesService   lives.Service
	PaymentService payments.Service
	Confirmations  confirm.Settler
}

func New(repo *repo.Repositories, txManager pg.TXManager, deps Deps, cfg *config.Config) *Services {
	livesService := livesservice.New(repo.LivesRepo, deps.Store, deps.Chain, livesservice.Config{
		DailyFreeLives: cfg.DailyFreeLives,
		BonusDivisor:   cfg.BonusDivisor,
		BonusCap:       cfg.BonusCap,
		ClaimLimit:     cfg.ClaimLimit,
		ClaimWindow:    cfg.ClaimWindow,
		JettonMaster:   cfg.JettonMaster,
	})
	roundService := roundservice.New(
		repo.GameRepo,
		repo.RoundRepo,
		livesService,
		txManager,
		replay.NewRegistry(),
		deps.Publisher,
		deps.Tickets,
		cfg.RequireRoundTicket,
	)
	paymentService := paymentservice.New(
		repo.PaymentRepo,
		repo.GameRepo,
		deps.Store,
		deps.Chain,
		livesService,
		txManager,
		deps.Publisher,
		paymentservice.Config{
			Secret:             cfg.AddressSecret,
			PricesUSD:          cfg.TierPricesUSD,
			LivesPerTier:       cfg.TierLives,
			FallbackUSDRate:    cfg.TokenUSDFallback,
			MaxPaidLivesPerDay: cfg.MaxPaidLivesPerDay,
			AddressTTL:         cfg.AddressTTL,
			ProcessedTTL:       cfg.ProcessedTTL,
		},
	)

	return &Services{
		RoundService:   roundService,
		LivesService:   livesService,
		PaymentService: paymentService,
		Confirmations:  paymentService,
	}
}
