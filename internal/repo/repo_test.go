package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/playlives/internal/pg"
	gamerepo "github.com/GlebRadaev/playlives/internal/repo/game-repo"
	livesrepo "github.com/GlebRadaev/playlives/internal/repo/lives-repo"
	paymentrepo "github.com/GlebRadaev/playlives/internal/repo/payment-repo"
	roundrepo "github.com/GlebRadaev/playlives/internal/repo/round-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	mockTxManager := pg.NewMockTXManager(ctrl)
	repo := New(mockDB, mockTxManager)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.IsType(t, &livesrepo.Repository{}, repo.LivesRepo)
	assert.IsType(t, &roundrepo.Repository{}, repo.RoundRepo)
	assert.IsType(t, &gamerepo.Repository{}, repo.GameRepo)
	assert.IsType(t, &paymentrepo.Repository{}, repo.PaymentRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
