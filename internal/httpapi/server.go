package httpapi

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"tradeReportBackend/internal/auth"
	"tradeReportBackend/internal/service"
	"tradeReportBackend/models"
)

const (
	maxJSONBody    = 1 << 20
	maxWebhookBody = 64 << 10
)

// API bundles the services the routes delegate to.
type API struct {
	Accounts *service.AccountService
	Reports  *service.ReportService
	Signals  *service.SignalService
	Auth     *auth.Authenticator
}

// NewRouter builds the dispatch table. Each protected route lists its
// middleware stages explicitly, applied left to right.
func (a *API) NewRouter() *mux.Router {
	authn := RequireAuth(a.Auth)
	adminOnly := RequireRole(models.RoleAdmin)

	r := mux.NewRouter()
	r.Use(withRequestID)
	r.NotFoundHandler = withRequestID(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondWithError(w, http.StatusNotFound, "Not found")
	}))
	r.MethodNotAllowedHandler = withRequestID(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "Trade report API is running\n")
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", a.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", a.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/webhook/tradingview", a.handleWebhook).Methods(http.MethodPost)

	api.Handle("/reports", chain(a.handleCreateReport, authn, adminOnly)).Methods(http.MethodPost)
	api.Handle("/reports", chain(a.handleListReports, authn)).Methods(http.MethodGet)
	api.Handle("/reports/{id:[0-9]+}", chain(a.handleGetReport, authn)).Methods(http.MethodGet)
	api.Handle("/signals", chain(a.handleListSignals, authn)).Methods(http.MethodGet)

	return r
}

// Wrap adds CORS (when origins are configured), panic recovery and access logging.
func Wrap(h http.Handler, allowedOrigins []string, accessLog io.Writer) http.Handler {
	if len(allowedOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(allowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Authorization", "Content-Type", WebhookSecretHeader}),
			handlers.ExposedHeaders([]string{RequestIDHeader}),
		)(h)
	}
	h = handlers.RecoveryHandler()(h)
	if accessLog != nil {
		h = handlers.LoggingHandler(accessLog, h)
	}
	return h
}

// StartHTTP starts serving h on addr and returns a shutdown function and the
// bound address (useful when addr has port 0).
func StartHTTP(addr string, h http.Handler) (func(context.Context) error, string, error) {
	if addr == "" {
		addr = ":8787"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", err
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	go func() { _ = srv.Serve(lis) }()

	return srv.Shutdown, lis.Addr().String(), nil
}
