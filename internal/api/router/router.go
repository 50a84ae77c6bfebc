package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"scanflow/internal/api/auth"
	"scanflow/internal/api/workflow"
	"scanflow/internal/domain"
	"scanflow/internal/pkg/cache"
	"scanflow/internal/pkg/middleware"
)

// Options agrupa os parâmetros de middleware vindos da configuração.
type Options struct {
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
	ScanCooldown         time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(
	workflowHandler *workflow.Handler,
	authHandler *auth.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
	opts Options,
) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	mux := http.NewServeMux()

	// --- 1. Rotas de Health Check e Documentação ---
	mux.HandleFunc("/ping", PingHandler)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// --- 2. Rotas do Workflow (v1) ---
	// O debounce de leituras (scan cooldown) envolve apenas a rota de scan:
	// é responsabilidade do colaborador de borda, nunca do engine.
	scanRoute := middleware.ScanCooldown(cacheClient, opts.ScanCooldown)(
		http.HandlerFunc(workflowHandler.ScanHandler),
	)
	mux.Handle("/v1/scan", scanRoute)

	mux.HandleFunc("/v1/actions", workflowHandler.ActionHandler)
	mux.HandleFunc("/v1/quantity", workflowHandler.QuantityHandler)
	mux.HandleFunc("/v1/out-of-stock", workflowHandler.OutOfStockHandler)
	mux.HandleFunc("/v1/session", workflowHandler.SessionHandler)

	// --- 3. Rotas de Autenticação ---
	mux.HandleFunc("/v1/login", authHandler.LoginHandler)

	// --- 4. Rota Protegida (apenas supervisores) ---
	authMW := middleware.NewAuthMiddleware(tokenSvc)
	supervisorOnly := middleware.PermissionMiddleware(domain.RoleSupervisor)
	mux.HandleFunc("/v1/override", authMW(supervisorOnly(workflowHandler.OverrideHandler)))

	// --- 5. Middlewares Globais ---
	return middleware.RateLimiter(cacheClient, opts.RateLimitMaxRequests, opts.RateLimitPeriod)(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
