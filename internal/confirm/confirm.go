package confirm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/playlives/internal/service/paymentservice"
	"github.com/GlebRadaev/playlives/internal/tonapi"
)

const (
	defaultWorkers  = 10
	defaultInterval = 10 * time.Second
	eventsPerCheck  = 10
)

type Pending interface {
	PendingAddresses(ctx context.Context, now time.Time) ([]string, error)
}

type Events interface {
	GetEvents(ctx context.Context, address string, limit int) ([]tonapi.Event, error)
}

type Settler interface {
	SettleTransfer(ctx context.Context, recipient string, transfer *tonapi.Transfer) (*paymentservice.SettleResult, error)
}

// Poller watches issued payment addresses on chain and settles transfers that reach them,
// so a payment is credited even when no webhook is delivered.
type Poller struct {
	pending    Pending
	events     Events
	settler    Settler
	workerPool WorkerPoolI
	interval   time.Duration
	inFlight   sync.Map
	now        func() time.Time
}

func New(pending Pending, events Events, settler Settler, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		pending:    pending,
		events:     events,
		settler:    settler,
		workerPool: NewWorkerPool(defaultWorkers),
		interval:   interval,
		now:        time.Now,
	}
}

// Run polls until ctx is done and returns once in-flight checks have finished.
func (p *Poller) Run(ctx context.Context) {
	zap.L().Info("payment confirmation poller started", zap.Duration("interval", p.interval))
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer p.workerPool.Close()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping confirmation poller")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	addresses, err := p.pending.PendingAddresses(ctx, p.now())
	if err != nil {
		zap.L().Error("failed to list pending payment addresses", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, address := range addresses {
		if _, loaded := p.inFlight.LoadOrStore(address, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := p.workerPool.AddTask(ctx, func() error {
				defer p.inFlight.Delete(address)
				return p.check(ctx, address)
			})
			if err != nil {
				p.inFlight.Delete(address)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("failed to schedule address checks", zap.Error(err))
	}
}

// check settles the first transfer to address that buys a tier.
func (p *Poller) check(ctx context.Context, address string) error {
	events, err := p.events.GetEvents(ctx, address, eventsPerCheck)
	if err != nil {
		if errors.Is(err, tonapi.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("fetch events for %s: %w", address, err)
	}

	for i := range events {
		transfer, ok := tonapi.FindTransfer(&events[i], address)
		if !ok {
			continue
		}
		result, err := p.settler.SettleTransfer(ctx, address, transfer)
		switch {
		case errors.Is(err, paymentservice.ErrInsufficientAmount),
			errors.Is(err, paymentservice.ErrUnsupportedToken):
			zap.L().Warn("ignoring transfer", zap.String("address", address),
				zap.String("event_id", transfer.EventID), zap.Error(err))
			continue
		case errors.Is(err, paymentservice.ErrUnknownOrExpiredAddress):
			return nil
		case err != nil:
			return fmt.Errorf("settle %s: %w", transfer.EventID, err)
		}
		zap.L().Info("payment confirmed by poller", zap.String("address", address),
			zap.String("event_id", transfer.EventID), zap.String("status", result.Status))
		if result.Status == paymentservice.StatusSuccess {
			return nil
		}
	}
	return nil
}
