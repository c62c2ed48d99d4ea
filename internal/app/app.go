package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/playlives/internal/config"
	"github.com/GlebRadaev/playlives/internal/confirm"
	"github.com/GlebRadaev/playlives/internal/events"
	"github.com/GlebRadaev/playlives/internal/handlers"
	"github.com/GlebRadaev/playlives/internal/kv"
	"github.com/GlebRadaev/playlives/internal/pg"
	"github.com/GlebRadaev/playlives/internal/repo"
	"github.com/GlebRadaev/playlives/internal/service"
	"github.com/GlebRadaev/playlives/internal/tonapi"
	"github.com/GlebRadaev/playlives/pkg/auth"
	"github.com/GlebRadaev/playlives/pkg/clients"
	"github.com/GlebRadaev/playlives/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg    *config.Config
	api    *handlers.Handlers
	srv    *service.Services
	repo   *repo.Repositories
	poller *confirm.Poller

	closers []func()
	errCh   chan error
	wg      sync.WaitGroup
	ready   bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	a.closers = append(a.closers, pool.Close)
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	rdb, err := kv.NewClientFromURL(ctx, cfg.RedisURL)
	if err != nil {
		zap.L().Error("redis connection failed: ", zap.Error(err))
		return fmt.Errorf("can't connect to redis: %w", err)
	}
	a.closers = append(a.closers, func() { _ = rdb.Close() })
	store := kv.New(rdb)

	publisher, err := newPublisher(cfg)
	if err != nil {
		zap.L().Error("event publisher failed: ", zap.Error(err))
		return fmt.Errorf("can't create event publisher: %w", err)
	}
	if kp, ok := publisher.(*events.KafkaPublisher); ok {
		a.closers = append(a.closers, kp.Close)
	}

	chain := tonapi.NewClient(cfg.TonAPIBaseURL, cfg.TonAPIKey, clients.NewHTTPClient(clients.DefaultRetryConfig()))

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(a.repo, txManager, service.Deps{
		Store:     store,
		Chain:     chain,
		Publisher: publisher,
		Tickets:   auth.NewJWTService(cfg.TicketSecret),
	}, cfg)
	a.api = handlers.New(a.srv, cfg.WebhookSecret)
	a.poller = confirm.New(store, chain, a.srv.Confirmations, cfg.PollInterval)

	if cfg.WebhookSecret == "" {
		zap.L().Warn("WEBHOOK_SECRET is empty, payment webhooks will be refused")
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startPoller(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func newPublisher(cfg *config.Config) (events.Publisher, error) {
	if len(cfg.KafkaBroker) == 0 {
		zap.L().Info("no kafka brokers configured, events go to the log")
		return events.LogPublisher{}, nil
	}
	return events.NewKafkaPublisher(cfg.KafkaBroker, cfg.EventsTopic)
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startPoller(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.poller.Run(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}

	return appErr
}
