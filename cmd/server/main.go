package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	zlog "github.com/rs/zerolog/log"
	"github.com/yukikurage/task-assignment-api/internal/cache"
	"github.com/yukikurage/task-assignment-api/internal/config"
	"github.com/yukikurage/task-assignment-api/internal/constants"
	"github.com/yukikurage/task-assignment-api/internal/database"
	"github.com/yukikurage/task-assignment-api/internal/handlers"
	"github.com/yukikurage/task-assignment-api/internal/logger"
	"github.com/yukikurage/task-assignment-api/internal/repository"
	"github.com/yukikurage/task-assignment-api/internal/services"
	"github.com/yukikurage/task-assignment-api/internal/session"
)

// stores bundles the repositories of the selected backend with its shutdown hook.
type stores struct {
	users repository.UserRepository
	tasks repository.TaskRepository
	close func(context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.StoreTimeout)
	defer cancel()

	if cfg.Store.Driver == config.DriverMongo {
		db, err := database.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			_ = db.Client().Disconnect(context.Background())
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

		return &stores{
			users: repository.NewMongoUserRepository(db),
			tasks: repository.NewMongoTaskRepository(db),
			close: db.Client().Disconnect,
		}, nil
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	log.Info().Str("driver", cfg.Store.Driver).Msg("connected to SQL database")

	return &stores{
		users: repository.NewUserRepository(db),
		tasks: repository.NewTaskRepository(db),
		close: func(context.Context) error { return database.Close(db) },
	}, nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	// Set Gin mode
	gin.SetMode(cfg.HTTP.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}

	detailsCache := cache.New(ctx, cfg.Cache, log)
	log.Info().Bool("cache_enabled", detailsCache.Enabled()).Msg("task details cache ready")

	issuer := session.NewIssuer(cfg.Session.Secret, constants.SessionTokenTTL)

	router := handlers.NewRouter(handlers.RouterDeps{
		AccountService: services.NewAccountService(st.users, issuer),
		TaskService:    services.NewTaskService(st.tasks, st.users, detailsCache, log),
		Verifier:       issuer,
		Logger:         log,
		AppName:        cfg.App.Name,
		CORSOrigin:     cfg.HTTP.CORSURL,
		CookieSecure:   cfg.Session.CookieSecure,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := detailsCache.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close cache")
	}
	if err := st.close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to close store")
	}
}
