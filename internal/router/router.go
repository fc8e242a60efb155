package router

import (
	"database/sql"
	"net/http"

	_ "remedio-solidario/docs"
	"remedio-solidario/internal/adapters/auth/session"
	mem "remedio-solidario/internal/adapters/storage/memory"
	pg "remedio-solidario/internal/adapters/storage/postgres"
	"remedio-solidario/internal/domain/accounts"
	"remedio-solidario/internal/domain/dispensations"
	"remedio-solidario/internal/domain/medicaments"
	"remedio-solidario/internal/domain/patients"
	"remedio-solidario/internal/middleware"
	"remedio-solidario/internal/platform/logger"
	"remedio-solidario/internal/platform/metrics"
	"remedio-solidario/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Backend es el API remoto completo (implementado por adapters/backend/remedios).
type Backend interface {
	patients.Repository
	medicaments.Repository
	accounts.Repository
	dispensations.Submitter
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev: X-Debug-User-ID)

	// Sessions firma el usuario en el login. Si es nil se usa un secreto efímero.
	Sessions accounts.SessionIssuer

	Backend       Backend
	AddressLookup patients.AddressLookup

	// Opcional: si viene, los drafts van a Postgres. Si no, in-memory.
	DB *sql.DB

	Logger  logger.Logger
	Metrics *metrics.Collector
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	collector := opts.Metrics
	if collector == nil {
		collector = metrics.New()
	}

	sessions := opts.Sessions
	if sessions == nil {
		m, err := session.NewManager(session.Config{Secret: uuid.NewString()})
		if err != nil {
			panic(err)
		}
		sessions = m
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	// Recover adentro de Middleware: los panics se cuentan como 500
	r.Use(collector.Middleware)
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", collector.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var draftsRepo dispensations.Repository
	if opts.DB != nil {
		draftsRepo = pg.NewDraftsRepo(opts.DB)
	} else {
		draftsRepo = mem.NewDraftsRepo()
	}

	// Services por módulo
	patientsSvc := patients.NewService(opts.Backend, opts.AddressLookup)
	medicamentsSvc := medicaments.NewService(opts.Backend)
	accountsSvc := accounts.NewService(opts.Backend, sessions)
	dispensationsSvc := dispensations.NewService(dispensations.Deps{
		Drafts:      draftsRepo,
		Backend:     opts.Backend,
		Patients:    patientsSvc,
		Medicaments: medicamentsSvc,
		Observer:    collector,
		Logger:      log,
	})

	// Públicas
	accounts.RegisterRoutes(r, accountsSvc)
	patients.RegisterPublicRoutes(r, patientsSvc)

	// Con sesión
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireUser)

		accounts.RegisterSessionRoutes(pr)
		patients.RegisterRoutes(pr, patientsSvc)
		medicaments.RegisterRoutes(pr, medicamentsSvc)
		dispensations.RegisterRoutes(pr, dispensationsSvc)
	})

	return r
}
