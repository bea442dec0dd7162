package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sharetube/watchparty/internal/controller"
	connInmemory "github.com/sharetube/watchparty/internal/repository/connection/inmemory"
	"github.com/sharetube/watchparty/internal/service"
	"github.com/sharetube/watchparty/pkg/ctxlogger"
	"github.com/sharetube/watchparty/pkg/ytsearch"
	"github.com/sharetube/watchparty/pkg/ytvideodata"
)

const (
	searchMaxResults = 25
	shutdownTimeout  = 30 * time.Second
)

type AppConfig struct {
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	LogLevel       string        `json:"log_level"`
	QueueLimit     int           `json:"queue_limit"`
	SessionTimeout time.Duration `json:"session_timeout"`
	WarningBefore  time.Duration `json:"warning_before"`
	ReaperInterval time.Duration `json:"reaper_interval"`
	StoreDriver    string        `json:"store_driver"`
	StoreTimeout   time.Duration `json:"store_timeout"`
	RedisHost      string        `json:"redis_host"`
	RedisPort      int           `json:"redis_port"`
	RedisPassword  string        `json:"-"`
	SqlitePath     string        `json:"sqlite_path"`
	PostgresDsn    string        `json:"-"`
	YoutubeApiKey  string        `json:"-"`
	SearchTimeout  time.Duration `json:"search_timeout"`
	SendBuffer     int           `json:"send_buffer"`
}

func (cfg *AppConfig) Validate() error {
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&cfg.LogLevel, validation.Required, validation.By(func(value any) error {
			var level slog.Level
			return level.UnmarshalText([]byte(strings.ToUpper(value.(string))))
		})),
		validation.Field(&cfg.QueueLimit, validation.Required, validation.Min(1)),
		validation.Field(&cfg.SessionTimeout, validation.Required, validation.Min(time.Minute)),
		// every idle session must be swept at least once inside the warning band
		validation.Field(&cfg.WarningBefore, validation.Required,
			validation.Max(cfg.SessionTimeout).Exclusive(),
			validation.Min(cfg.ReaperInterval),
		),
		validation.Field(&cfg.ReaperInterval, validation.Required, validation.Min(time.Second)),
		validation.Field(&cfg.StoreDriver, validation.Required, validation.In(storeDrivers...)),
		validation.Field(&cfg.StoreTimeout, validation.Required),
		validation.Field(&cfg.RedisHost, validation.When(cfg.StoreDriver == storeRedis, validation.Required)),
		validation.Field(&cfg.RedisPort, validation.When(cfg.StoreDriver == storeRedis, validation.Required, validation.Max(65535))),
		validation.Field(&cfg.SqlitePath, validation.When(cfg.StoreDriver == storeSqlite, validation.Required)),
		validation.Field(&cfg.PostgresDsn, validation.When(cfg.StoreDriver == storePostgres, validation.Required)),
		validation.Field(&cfg.YoutubeApiKey, validation.Required),
		validation.Field(&cfg.SearchTimeout, validation.Required),
		validation.Field(&cfg.SendBuffer, validation.Required, validation.Min(1)),
	)
}

func newLogger(level string) *slog.Logger {
	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		log.Fatal(err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	return slog.New(&h)
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(cfg.LogLevel)

	storeCtx, cancelStore := context.WithTimeout(ctx, cfg.StoreTimeout)
	roomRepo, closeStore := openRoomRepo(storeCtx, cfg, logger)
	cancelStore()
	defer closeStore()

	connRepo := connInmemory.NewRepo(logger, &connInmemory.Config{
		SendBuffer: cfg.SendBuffer,
		WriteWait:  10 * time.Second,
		PongWait:   60 * time.Second,
		PingPeriod: 54 * time.Second,
	})
	sessionService := service.New(service.NewRegistry(), roomRepo, connRepo, logger, &service.Config{
		PlaylistLimit:     cfg.QueueLimit,
		InactivityTimeout: cfg.SessionTimeout,
		WarningBefore:     cfg.WarningBefore,
		ReaperInterval:    cfg.ReaperInterval,
		StoreTimeout:      cfg.StoreTimeout,
	})

	restoreCtx, cancelRestore := context.WithTimeout(ctx, cfg.StoreTimeout)
	restored, err := sessionService.Restore(restoreCtx)
	cancelRestore()
	if err != nil {
		logger.WarnContext(ctx, "failed to restore sessions, starting empty", "error", err)
	} else {
		logger.InfoContext(ctx, "restored sessions", "count", restored)
	}

	bgCtx, stopBg := context.WithCancel(ctx)
	defer stopBg()
	go sessionService.RunReaper(bgCtx)
	go sessionService.RunPersister(bgCtx)

	controller := controller.NewController(
		sessionService,
		connRepo,
		ytvideodata.New(cfg.SearchTimeout),
		ytsearch.New(cfg.YoutubeApiKey, cfg.SearchTimeout, searchMaxResults),
		logger,
	)
	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: controller.GetMux()}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, shutdownTimeout)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-serverCtx.Done()

	stopBg()
	flushCtx, cancelFlush := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	defer cancelFlush()
	if err := sessionService.Shutdown(flushCtx); err != nil {
		logger.ErrorContext(flushCtx, "failed to write final snapshot", "error", err)
	}

	logger.InfoContext(flushCtx, "server stopped")
	return nil
}
