package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config armazena todas as configurações do aplicativo ScanFlow.
// Todos os campos são definidos com base nos requisitos do projeto
// (Armazenamento, Cache, Segurança, Regras de Workflow).
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Armazenamento (memory | postgres)
	StorageBackend string
	DatabaseURL    string
	DBTimeout      time.Duration

	// Cache (Redis)
	RedisAddr    string
	CacheTimeout time.Duration

	// Segurança (JWT + código de acesso do supervisor)
	JWTSecretKey         string
	TokenExpiry          time.Duration
	SupervisorAccessCode string

	// Regras de Workflow
	HighQuantityThreshold int           // Linhas acima deste valor liberam o ajuste manual de quantidade
	UndoDepth             int           // Profundidade máxima do log de desfazer
	ScanCooldown          time.Duration // Janela de debounce para leituras repetidas do mesmo código

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Armazenamento
		// O backend padrão é o repositório em memória com dados de demonstração.
		// Quando STORAGE_BACKEND=postgres, DATABASE_URL passa a ser obrigatória
		// (a validação fica no main.go, que conhece o backend escolhido).
		StorageBackend: getEnv("STORAGE_BACKEND", "memory"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBTimeout:      getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second, // 5s padrão

		// 3. Cache (Redis)
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout: getDurationEnv("CACHE_TIMEOUT_SEC", 10) * time.Second, // 10s padrão

		// 4. Segurança
		JWTSecretKey:         mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:          getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute, // 60 min padrão
		SupervisorAccessCode: mustGetEnv("SUPERVISOR_ACCESS_CODE"),

		// 5. Regras de Workflow
		HighQuantityThreshold: getIntEnv("HIGH_QUANTITY_THRESHOLD", 10),
		UndoDepth:             getIntEnv("UNDO_DEPTH", 10),
		ScanCooldown:          getDurationEnv("SCAN_COOLDOWN_MS", 1500) * time.Millisecond,

		// 6. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute, // 1 min padrão
	}

	return cfg
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
