package repo

import (
	"github.com/GlebRadaev/playlives/internal/pg"
	gamerepo "github.com/GlebRadaev/playlives/internal/repo/game-repo"
	livesrepo "github.com/GlebRadaev/playlives/internal/repo/lives-repo"
	paymentrepo "github.com/GlebRadaev/playlives/internal/repo/payment-repo"
	roundrepo "github.com/GlebRadaev/playlives/internal/repo/round-repo"
	"github.com/GlebRadaev/playlives/internal/service/livesservice"
	"github.com/GlebRadaev/playlives/internal/service/paymentservice"
	"github.com/GlebRadaev/playlives/internal/service/roundservice"
)

type Repositories struct {
	LivesRepo   livesservice.Repo
	RoundRepo   roundservice.RoundRepo
	GameRepo    roundservice.GameRepo
	PaymentRepo paymentservice.Repo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		LivesRepo:   livesrepo.New(conn, txManager),
		RoundRepo:   roundrepo.New(conn),
		GameRepo:    gamerepo.New(conn),
		PaymentRepo: paymentrepo.New(conn),
	}
}
