// Package http serves the fund manager UI. Every page load fetches fresh
// data from the backend and every mutation redirects back to a fresh load,
// so the screens never show state the backend does not have.
package http

import (
	"io/fs"
	"net/http"

	"sportsfund/internal/fund"
	"sportsfund/internal/log"
	"sportsfund/internal/middleware/security"
	"sportsfund/internal/middleware/trace"
	"sportsfund/internal/session"
	appweb "sportsfund/web"
)

type Server struct {
	http.Server
	store    fund.Store
	sessions *session.Store
	logger   *log.Logger
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, store fund.Store, sessions *session.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	s := &Server{
		store:    store,
		sessions: sessions,
		logger:   logger.WithComponent(log.ComponentHTTP),
	}

	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Error("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLoginSubmit)
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.Handle("GET /users", s.guard(s.handleUsersPage))
	mux.Handle("POST /users", s.guard(s.requireManage(fund.ResourceUsers, s.handleUserCreate)))
	mux.Handle("POST /users/{id}/update", s.guard(s.requireManage(fund.ResourceUsers, s.handleUserUpdate)))
	mux.Handle("POST /users/{id}/delete", s.guard(s.requireManage(fund.ResourceUsers, s.handleUserDelete)))

	mux.Handle("GET /contributions", s.guard(s.handleContributionsPage))
	mux.Handle("POST /contributions", s.guard(s.requireManage(fund.ResourceContributions, s.handleContributionCreate)))
	mux.Handle("POST /contributions/{id}/update", s.guard(s.requireManage(fund.ResourceContributions, s.handleContributionUpdate)))
	mux.Handle("POST /contributions/{id}/delete", s.guard(s.requireManage(fund.ResourceContributions, s.handleContributionDelete)))

	mux.Handle("GET /expenses", s.guard(s.handleExpensesPage))
	mux.Handle("POST /expenses", s.guard(s.requireManage(fund.ResourceExpenses, s.handleExpenseCreate)))
	mux.Handle("POST /expenses/{id}/update", s.guard(s.requireManage(fund.ResourceExpenses, s.handleExpenseUpdate)))
	mux.Handle("POST /expenses/{id}/delete", s.guard(s.requireManage(fund.ResourceExpenses, s.handleExpenseDelete)))

	mux.Handle("GET /summary", s.guard(s.handleSummaryPage))
	mux.Handle("GET /export/{resource}", s.guard(s.handleExport))

	traceMW := trace.NewMiddleware(clientIP)
	headersMW := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	s.Server = http.Server{
		Addr:    addr,
		Handler: traceMW.Middleware(headersMW.Middleware(mux)),
	}

	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
