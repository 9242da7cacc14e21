package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "github.com/gradepeek/svue-api/docs"
	"github.com/gradepeek/svue-api/internal/api"
	"github.com/gradepeek/svue-api/internal/api/handler"
	"github.com/gradepeek/svue-api/internal/core/domain"
	"github.com/gradepeek/svue-api/internal/core/ports"
	"github.com/gradepeek/svue-api/internal/core/service"
	"github.com/gradepeek/svue-api/internal/infrastructure/config"
	"github.com/gradepeek/svue-api/internal/infrastructure/db/memory"
	mongodb "github.com/gradepeek/svue-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gradepeek/svue-api/internal/infrastructure/db/redis"
	"github.com/gradepeek/svue-api/internal/infrastructure/queue"
	"github.com/gradepeek/svue-api/internal/infrastructure/studentvue"
	"github.com/gradepeek/svue-api/internal/infrastructure/tokencrypt"
	"github.com/gradepeek/svue-api/pkg/logger"
)

const (
	shutdownTimeout   = 15 * time.Second
	defaultDistrictID = "default"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(ctx, envFiles...)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "svue-api",
		Version: Version,
	})

	key, err := tokencrypt.ParseKey(cfg.EncryptionKey)
	if err != nil {
		return fmt.Errorf("ENKEY: %w", err)
	}
	sealer, err := tokencrypt.NewSealer(key)
	if err != nil {
		return err
	}
	digester := tokencrypt.NewDigester(key)

	health := handler.NewHealthHandler(Version)

	// --- Optional stores ---
	var (
		districtRepo ports.DistrictRepository = memory.NewDistrictRepository()
		usageRepo    ports.UsageRepository
		cache        ports.ResponseCache
	)

	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		districtRepo = mongodb.NewDistrictRepository(db)
		usageRepo = mongodb.NewUsageRepository(db)
		health.WithCheck("mongodb", func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		})
		log.Info().Str("database", db.Name()).Msg("mongodb connected")
	} else {
		health.WithDisabled("mongodb")
		log.Info().Msg("MONGO_URI not set, using in-memory district directory")
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = redisdb.NewResponseCache(rdb)
		health.WithCheck("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		health.WithDisabled("redis")
		log.Info().Msg("REDIS_ADDR not set, response caching disabled")
	}

	// --- District directory ---
	districts := service.NewDistrictService(districtRepo, logger.Component("districts"))
	seed := []domain.District{{
		ID:   defaultDistrictID,
		Name: "Default district",
		Host: cfg.StudentVue.DefaultDistrictURL,
	}}
	if cfg.DistrictsFile != "" {
		fromFile, err := config.LoadDistricts(cfg.DistrictsFile)
		if err != nil {
			return err
		}
		seed = append(seed, fromFile...)
	}
	if err := districts.Seed(ctx, seed); err != nil {
		return err
	}

	// --- StudentVue ---
	versions := studentvue.NewVersionKeys(studentvue.VersionKeysConfig{
		Static: cfg.StudentVue.VersionNumber,
		URL:    cfg.StudentVue.VersionKeyURL,
		Cache:  cache,
	}, logger.Component("version_keys"))
	client := studentvue.NewClient(versions, studentvue.Options{
		Timeout: cfg.StudentVue.Timeout,
	}, logger.Component("studentvue"))

	// --- Usage audit ---
	dispatcher := queue.NewUsageDispatcher(cfg.AuditWorkers, usageRepo, logger.Component("usage"))
	dispatcher.Start()
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := dispatcher.Close(dctx); err != nil {
			log.Warn().Err(err).Msg("usage dispatcher did not drain")
		}
	}()

	gateway := service.NewGatewayService(service.GatewayDeps{
		Client:   client,
		Digester: digester,
		Cache:    cache,
		CacheTTL: cfg.Redis.CacheTTL,
		Usage:    dispatcher,
	}, logger.Component("gateway"))

	e := api.NewRouter(api.RouterDeps{
		Log:             logger.Component("http"),
		Gateway:         gateway,
		Sealer:          sealer,
		Versions:        versions,
		Districts:       districts,
		Health:          health,
		DefaultDistrict: cfg.StudentVue.DefaultDistrictURL,
		TokenTTL:        cfg.Auth.TokenTTL,
		AdminSecret:     cfg.Auth.AdminJWTSecret,
	})
	if cfg.Auth.AdminJWTSecret == "" {
		log.Info().Msg("ADMIN_JWT_SECRET not set, admin routes disabled")
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
