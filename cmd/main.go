package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Pacotes de infraestrutura e utilitários
	"scanflow/config"
	"scanflow/internal/pkg/cache"
	"scanflow/internal/pkg/database"
	"scanflow/internal/pkg/logger"
	"scanflow/internal/pkg/token"

	// Camadas da aplicação para Injeção de Dependências
	authapi "scanflow/internal/api/auth"
	"scanflow/internal/api/router"
	workflowapi "scanflow/internal/api/workflow"
	"scanflow/internal/repository/memoryrepo"
	"scanflow/internal/repository/postgresrepo"
	"scanflow/internal/repository/userrepo"
	"scanflow/internal/service/authservice"
	"scanflow/internal/service/workflowservice"
)

func main() {
	log.Println("⚡ Inicializando serviço ScanFlow...")

	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// O godotenv.Load() procura por um arquivo chamado .env na raiz. Se não
	// existir, seguimos apenas com o ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg := config.LoadConfig()
	logg := logger.NewLogger(cfg.LogLevel)
	logg.Info("Configurações carregadas.", map[string]interface{}{"backend": cfg.StorageBackend})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Cache (Redis): usado pelo rate limiter, pelo debounce de leituras e
	// pelo repositório postgres.
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	logg.Info("Cliente Redis inicializado.", map[string]interface{}{"addr": cfg.RedisAddr})

	// B. Repositório de consulta (o engine não distingue os backends)
	var repo workflowservice.Repository
	switch cfg.StorageBackend {
	case "postgres":
		if cfg.DatabaseURL == "" {
			logg.Fatal("STORAGE_BACKEND=postgres exige DATABASE_URL.", nil)
		}
		db, err := database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			logg.Fatal("Falha ao conectar ao banco de dados.", err)
		}
		defer db.Close()
		repo = postgresrepo.NewRepository(db, cacheClient, cfg.DBTimeout, logg)
		logg.Info("Conexão PostgreSQL estabelecida.", nil)
	case "memory":
		repo = memoryrepo.NewRepository(logg)
		logg.Info("Repositório em memória (dados de demonstração) selecionado.", nil)
	default:
		logg.Fatal("STORAGE_BACKEND desconhecido: "+cfg.StorageBackend, nil)
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Montagem das camadas)
	// Ordem: Repository -> Service -> Handler

	// A. Autenticação (código de acesso do supervisor -> JWT)
	accessCodeHash, err := authservice.HashAccessCode(cfg.SupervisorAccessCode)
	if err != nil {
		logg.Fatal("Falha ao preparar o código de acesso do supervisor.", err)
	}
	userRepo := userrepo.NewRepository(accessCodeHash)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	authSvc := authservice.NewService(userRepo, tokenSvc, logg)
	authHandler := authapi.NewHandler(authSvc, logg)
	logg.Debug("Camada de autenticação inicializada.", nil)

	// B. Engine de Workflow (o núcleo do sistema)
	engine := workflowservice.NewService(repo, logg, cfg.HighQuantityThreshold, cfg.UndoDepth)
	workflowHandler := workflowapi.NewHandler(engine, logg)
	logg.Debug("Engine de workflow inicializado.", map[string]interface{}{
		"high_quantity_threshold": cfg.HighQuantityThreshold,
		"undo_depth":              cfg.UndoDepth,
	})

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(workflowHandler, authHandler, tokenSvc, cacheClient, router.Options{
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
		ScanCooldown:         cfg.ScanCooldown,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		logg.Info("Servidor ScanFlow ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("Servidor falhou.", err)
		}
	}()

	// Lógica do Graceful Shutdown (captura de sinal)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logg.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	// Timeout para desligamento (usa o contexto)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logg.Error("Desligamento do servidor forçado.", err)
	}

	logg.Info("Servidor encerrado com sucesso.", nil)
}
