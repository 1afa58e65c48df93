package main

import (
	auth "CPCalc/internal/auth"
	importer "CPCalc/internal/calc/importer"
	report "CPCalc/internal/calc/report"
	surfacearea "CPCalc/internal/calc/surfacearea"
	catalog "CPCalc/internal/catalog"
	config "CPCalc/internal/config"
	repo "CPCalc/internal/repo"
	session "CPCalc/internal/session"
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/powerman/structlog"
	"golang.org/x/time/rate"
)

var (
	log = structlog.New()
	wg  sync.WaitGroup
)

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config, db *sql.DB, sessions *session.Manager) {
	userRepo := repo.NewPostgresUserDB(db)

	authEnv := &auth.Authenv{
		JWTkey:   []byte(cfg.TokenKey),
		Repo:     userRepo,
		TokenTTL: cfg.TokenTTL,
		Insecure: !cfg.TLS(),
	}

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/session/refresh", authEnv.RefreshHandler).Methods("POST")

	surfaceH := &surfacearea.Handler{Sessions: sessions}
	reportH := &report.Handler{Sessions: sessions}
	importH := &importer.Handler{}

	sa := secureApi.PathPrefix("/tools/surface-area").Subrouter()
	sa.HandleFunc("/meta", surfaceH.Meta).Methods("GET")
	sa.HandleFunc("/calc", surfaceH.Calc).Methods("POST")
	sa.HandleFunc("/batch", surfaceH.Batch).Methods("POST")
	sa.HandleFunc("/import", importH.SurfaceArea).Methods("POST")
	sa.HandleFunc("/import/template", importH.Template).Methods("GET")
	sa.HandleFunc("/state", surfaceH.State).Methods("GET")
	sa.HandleFunc("/state", surfaceH.Discard).Methods("DELETE")
	sa.HandleFunc("/structure", surfaceH.Structure).Methods("POST")
	sa.HandleFunc("/input", surfaceH.Input).Methods("POST")
	sa.HandleFunc("/unit", surfaceH.Unit).Methods("POST")
	sa.HandleFunc("/submit", surfaceH.Submit).Methods("POST")
	sa.HandleFunc("/reset", surfaceH.Reset).Methods("POST")
	sa.HandleFunc("/preset", surfaceH.Preset).Methods("POST")
	sa.HandleFunc("/report/pdf", reportH.PDF).Methods("POST")
	sa.HandleFunc("/report/xlsx", reportH.XLSX).Methods("POST")

	secureApi.HandleFunc("/tools", catalog.Handler).Methods("GET")
	secureApi.HandleFunc("/tools/{slug}", catalog.ToolHandler).Methods("GET")

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	mainFileServer := http.FileServer(http.Dir("./static/main"))
	mux.PathPrefix("/").
		Handler(authEnv.AuthMiddleware(mainFileServer))
}

func main() {
	structlog.DefaultLogger.
		SetPrefixKeys(structlog.KeyApp, structlog.KeyPID, structlog.KeyLevel, structlog.KeyUnit, structlog.KeyTime).
		SetDefaultKeyvals(
			structlog.KeyApp, filepath.Base(os.Args[0]),
			structlog.KeySource, structlog.Auto,
		).
		SetSuffixKeys(structlog.KeySource)

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}
	if cfg.LogLevel != "debug" {
		structlog.DefaultLogger.SetLogLevel(structlog.INF)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := auth.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer log.ErrIfFail(db.Close)
	if err := repo.Migrate(db); err != nil {
		log.Fatal(err)
	}

	sessions := session.NewManager(repo.NewPostgresUserDB(db), cfg.SessionIdleTTL)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.ErrIfFail(func() error { return sessions.Run(ctx) })
	}()

	mux := mux.NewRouter()
	HandleList(mux, cfg, db, sessions)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting server", "addr", cfg.ListenAddr, "tls", cfg.TLS())
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.PrintErr("server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.PrintErr("server shutdown", "err", err)
	}
	wg.Wait()
	log.Info("server stopped")
}
