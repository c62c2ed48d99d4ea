package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/playlives/internal/config"
	"github.com/GlebRadaev/playlives/internal/events"
	"github.com/GlebRadaev/playlives/internal/kv"
	"github.com/GlebRadaev/playlives/internal/pg"
	"github.com/GlebRadaev/playlives/internal/repo"
	"github.com/GlebRadaev/playlives/internal/service/livesservice"
	"github.com/GlebRadaev/playlives/internal/service/paymentservice"
	"github.com/GlebRadaev/playlives/internal/service/roundservice"
	"github.com/GlebRadaev/playlives/internal/tonapi"
	"github.com/GlebRadaev/playlives/pkg/auth"
	"github.com/GlebRadaev/playlives/pkg/clients"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	repos := &repo.Repositories{
		LivesRepo:   livesservice.NewMockRepo(ctrl),
		RoundRepo:   roundservice.NewMockRoundRepo(ctrl),
		GameRepo:    roundservice.NewMockGameRepo(ctrl),
		PaymentRepo: paymentservice.NewMockRepo(ctrl),
	}
	deps := Deps{
		Store:     kv.New(nil),
		Chain:     tonapi.NewClient("http://localhost", "", clients.NewMockHTTPClientI(ctrl)),
		Publisher: events.NewMockPublisher(ctrl),
		Tickets:   auth.NewMockTicketServiceInterface(ctrl),
	}
	cfg := &config.Config{DailyFreeLives: 1, TierPricesUSD: []float64{1, 2, 4}, TierLives: []int{1, 3, 10}}

	services := New(repos, pg.NewMockTXManager(ctrl), deps, cfg)

	assert.IsType(t, &roundservice.Service{}, services.RoundService)
	assert.IsType(t, &livesservice.Service{}, services.LivesService)
	assert.IsType(t, &paymentservice.Service{}, services.PaymentService)
	assert.Same(t, services.PaymentService, services.Confirmations)
}
