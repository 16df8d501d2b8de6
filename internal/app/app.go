package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/config"
	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/notify"
	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/pipeline"
	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/scheduler"
	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/scraper"
	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/store"
	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/telegram"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	repo    store.Repo
	router  *telegram.Router
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting fencing alert bot",
		zap.String("calendar", a.cfg.CalendarURL),
		zap.Duration("check_interval", a.cfg.CheckInterval),
		zap.String("http", a.cfg.HTTPAddr),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open SQLite and run migrations.
	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready")

	scr, err := scraper.New(a.cfg.CalendarURL, a.cfg.CookieURL, a.cfg.WeeksAhead, a.log)
	if err != nil {
		return err
	}

	a.router = telegram.NewRouter(a.bot, a.log, a.repo, scr)
	dispatcher := notify.NewDispatcher(a.router, a.repo, a.log, a.cfg.DispatchConcurrency)
	pipe := pipeline.New(scr, a.repo, dispatcher, a.log)

	// Alert creation fires the same pass the ticker does, without blocking
	// the UI response.
	a.router.SetTrigger(func(reason string) {
		go func() {
			if err := pipe.Run(ctx, reason); err != nil {
				a.log.Error("triggered pass failed", zap.Error(err))
			}
		}()
	})

	go scheduler.New(pipe, a.log, a.cfg.CheckInterval).Run(ctx)

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

			// Create a short-lived shutdown context and cancel it immediately after use.
			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if a.repo != nil {
				_ = a.repo.Close()
			}
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}
