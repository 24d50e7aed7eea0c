package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "github.com/svr1m/PawCare-App/docs"
	mem "github.com/svr1m/PawCare-App/internal/adapters/storage/memory"
	pg "github.com/svr1m/PawCare-App/internal/adapters/storage/postgres"
	"github.com/svr1m/PawCare-App/internal/domain/assistant"
	"github.com/svr1m/PawCare-App/internal/domain/breedtips"
	"github.com/svr1m/PawCare-App/internal/domain/pets"
	"github.com/svr1m/PawCare-App/internal/middleware"
	"github.com/svr1m/PawCare-App/internal/platform/logger"
	"github.com/svr1m/PawCare-App/internal/ports/auth"
	"github.com/svr1m/PawCare-App/internal/ports/inference"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger

	// Proveedores de inferencia. nil => las features que los usan fallan
	// según su política (ver assistant.errorPolicy).
	Chat       inference.ChatCompleter
	Classifier inference.ImageClassifier

	// PhotoStore opcional para subir fotos data:image/... (S3).
	PhotoStore pets.PhotoStore

	// TipsCache opcional; nil => tips se regeneran en cada request.
	TipsCache    breedtips.Repository
	TipsCacheTTL time.Duration

	AssistantOptions []assistant.Option

	// CORSOrigins vacío => "*".
	CORSOrigins []string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins(opts.CORSOrigins),
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.DebugUserHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var petRepo pets.Repository
	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
	}

	// Services por módulo
	var petOpts []pets.Option
	if opts.PhotoStore != nil {
		petOpts = append(petOpts, pets.WithPhotoStore(opts.PhotoStore))
	}
	petsSvc := pets.NewService(petRepo, petOpts...)

	asstOpts := []assistant.Option{assistant.WithLogger(log.With(map[string]any{"module": "assistant"}))}
	if opts.TipsCache != nil {
		asstOpts = append(asstOpts, assistant.WithTipsCache(opts.TipsCache, opts.TipsCacheTTL))
	}
	asstOpts = append(asstOpts, opts.AssistantOptions...)
	assistantSvc := assistant.NewService(petsSvc, opts.Chat, opts.Classifier, asstOpts...)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	assistant.RegisterRoutes(r, assistantSvc)

	return r
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
