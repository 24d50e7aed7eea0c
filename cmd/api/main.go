package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/svr1m/PawCare-App/internal/adapters/auth/introspect"
	"github.com/svr1m/PawCare-App/internal/adapters/auth/jwtauth"
	"github.com/svr1m/PawCare-App/internal/adapters/inference/huggingface"
	"github.com/svr1m/PawCare-App/internal/adapters/inference/together"
	photos3 "github.com/svr1m/PawCare-App/internal/adapters/photos/s3"
	"github.com/svr1m/PawCare-App/internal/adapters/secrets/paramstore"
	ddb "github.com/svr1m/PawCare-App/internal/adapters/storage/dynamodb"
	mem "github.com/svr1m/PawCare-App/internal/adapters/storage/memory"
	pg "github.com/svr1m/PawCare-App/internal/adapters/storage/postgres"
	"github.com/svr1m/PawCare-App/internal/config"
	"github.com/svr1m/PawCare-App/internal/domain/assistant"
	"github.com/svr1m/PawCare-App/internal/domain/breedtips"
	"github.com/svr1m/PawCare-App/internal/platform/logger"
	"github.com/svr1m/PawCare-App/internal/router"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
)

// @title PawCare API
// @version 1.0
// @description Perfiles de mascotas + tips, FAQs, chat e identificación de raza con IA.
// @BasePath /
func main() {
	// .env es opcional (dev local)
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logger.NewFromEnv().Error("load config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Zap().Sync() }()
	}

	ctx := context.Background()

	var awsCfg aws.Config
	if cfg.NeedsAWS() {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Error("load aws config", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}

	if cfg.Secrets.ParamPrefix != "" {
		ps, err := paramstore.New(ssm.NewFromConfig(awsCfg))
		if err != nil {
			log.Error("init parameter store", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		if err := cfg.ResolveSecrets(ctx, ps); err != nil {
			log.Warn("some secrets could not be resolved", map[string]any{"error": err.Error()})
		}
	}

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	opts := router.Options{
		Logger:       log,
		CORSOrigins:  cfg.Server.CORSOrigins,
		TipsCacheTTL: cfg.TipsCache.TTL,
		AssistantOptions: []assistant.Option{
			assistant.WithModels(cfg.Inference.ChatModel, cfg.Inference.TipsModel, cfg.Inference.FAQsModel),
			assistant.WithTipsMaxTokens(cfg.Inference.TipsMaxTokens),
		},
	}

	if cfg.Database.DSN != "" {
		db, err := pg.Open(cfg.Database.DSN)
		if err != nil {
			log.Error("open database", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		if err := pg.Migrate(ctx, db); err != nil {
			log.Error("migrate database", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.DB = db
		log.Info("using postgres storage", nil)
	} else {
		log.Info("using in-memory storage", nil)
	}

	switch cfg.Auth.Mode {
	case config.AuthModeJWT:
		v, err := jwtauth.NewVerifier(cfg.Auth.JWTSecret)
		if err != nil {
			log.Error("init jwt verifier", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.AuthVerifier = v
	case config.AuthModeIntrospect:
		v, err := introspect.NewVerifier(introspect.Config{
			URL:    cfg.Auth.IntrospectURL,
			APIKey: cfg.Auth.IntrospectAPIKey,
		})
		if err != nil {
			log.Error("init introspect verifier", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.AuthVerifier = v
	default:
		log.Warn("auth in dev mode: identity comes from X-Debug-User-ID", nil)
	}

	// Sin API key la feature queda deshabilitada y responde según su política de error.
	if c, err := together.NewClient(together.Config{
		APIKey:  cfg.Inference.TogetherAPIKey,
		BaseURL: cfg.Inference.TogetherBaseURL,
		Timeout: cfg.Inference.Timeout,
	}, log); err == nil {
		opts.Chat = c
	} else {
		log.Warn("together client disabled", map[string]any{"error": err.Error()})
	}

	if c, err := huggingface.NewClient(huggingface.Config{
		APIKey:   cfg.Inference.HuggingFaceAPIKey,
		ModelURL: cfg.Inference.ClassifierURL,
		Timeout:  cfg.Inference.Timeout,
	}, log); err == nil {
		opts.Classifier = c
	} else {
		log.Warn("huggingface client disabled", map[string]any{"error": err.Error()})
	}

	if cfg.Photos.Bucket != "" {
		s3cfg := photos3.Config{
			Bucket:        cfg.Photos.Bucket,
			Region:        cfg.Photos.Region,
			Endpoint:      cfg.Photos.Endpoint,
			PublicBaseURL: cfg.Photos.PublicBaseURL,
		}
		up, err := photos3.NewUploader(photos3.NewClient(awsCfg, s3cfg), s3cfg)
		if err != nil {
			log.Error("init photo uploader", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.PhotoStore = up
	}

	if cfg.TipsCache.Enabled {
		cache, err := newTipsCache(cfg, awsCfg, opts)
		if err != nil {
			log.Error("init tips cache", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.TipsCache = cache
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// chat/tips esperan al proveedor de inferencia
		WriteTimeout: cfg.Inference.Timeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	case sig := <-sigCh:
		log.Info("shutting down", map[string]any{"signal": sig.String()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}
}

// newTipsCache elige backend: DynamoDB si hay tabla, Postgres si hay DB, memoria si no.
func newTipsCache(cfg *config.Config, awsCfg aws.Config, opts router.Options) (breedtips.Repository, error) {
	switch {
	case cfg.TipsCache.Table != "":
		return ddb.NewBreedTipsRepo(dynamodb.NewFromConfig(awsCfg), cfg.TipsCache.Table)
	case opts.DB != nil:
		return pg.NewBreedTipsRepo(opts.DB), nil
	default:
		return mem.NewBreedTipsRepo(), nil
	}
}
