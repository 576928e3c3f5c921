package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/saymealien/bloodpressurebot/internal/config"
	"github.com/saymealien/bloodpressurebot/internal/conversation"
	"github.com/saymealien/bloodpressurebot/internal/export"
	"github.com/saymealien/bloodpressurebot/internal/metrics"
	"github.com/saymealien/bloodpressurebot/internal/scheduler"
	"github.com/saymealien/bloodpressurebot/internal/store"
	"github.com/saymealien/bloodpressurebot/internal/telegram"
)

const janitorInterval = time.Minute

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	metrics *metrics.Metrics
	httpSrv *http.Server
	repo    store.Repo
	router  *telegram.Router
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	bot.Debug = cfg.DebugTelegram

	m := metrics.New(cfg.MetricsNS)
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      newHTTPHandler(m, cfg.StoreDriver),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, metrics: m, httpSrv: srv}, nil
}

// openRepo selects the storage backend by driver name.
func openRepo(ctx context.Context, cfg config.Config) (store.Repo, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		r, err := store.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return r, nil
	case config.DriverPostgres:
		r, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return r, nil
	case config.DriverMemory:
		return store.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting bp diary bot",
		zap.String("bot", a.bot.Self.UserName),
		zap.String("store", a.cfg.StoreDriver),
		zap.String("http", a.cfg.HTTPAddr),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openRepo(ctx, a.cfg)
	if err != nil {
		a.log.Error("open store failed", zap.String("driver", a.cfg.StoreDriver), zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("store ready", zap.String("driver", a.cfg.StoreDriver))

	sessions := conversation.NewTable(a.cfg.SessionIdle, nil, a.metrics)
	sessions.StartJanitor(ctx, janitorInterval)

	engine := conversation.NewEngine(sessions, repo, repo, export.NewRenderer(), a.log,
		conversation.WithMetrics(a.metrics))
	a.router = telegram.NewRouter(a.bot, a.log, engine)

	sched, err := scheduler.New(repo, a.log, a.router,
		scheduler.WithInterval(a.cfg.ReminderTick),
		scheduler.WithMetrics(a.metrics),
	)
	if err != nil {
		_ = repo.Close()
		return err
	}
	go sched.Run(ctx)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			a.bot.StopReceivingUpdates()

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if err := a.repo.Close(); err != nil {
				a.log.Warn("store close error", zap.Error(err))
			}
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}
