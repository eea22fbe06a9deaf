package config

import "time"

// Storage backends
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Gateways
const (
	GatewayMock   = "mock"
	GatewayStripe = "stripe"
)

type RedisSettings struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type PostgresSettings struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Settings is everything the server needs at start-up.
type Settings struct {
	Port       string
	Production bool

	AppSecret     string
	StoragePrefix string
	Storage       string
	Redis         RedisSettings
	Postgres      PostgresSettings

	JWTSecret  string
	SessionTTL time.Duration

	Gateway         string
	StripeSecretKey string
	GatewayDelay    time.Duration

	LuhnCheck bool
	TaxRate   string
	Currency  string
}

// Load gathers Settings from the environment. Call LoadEnv first to pick
// up a .env file.
func Load() Settings {
	return Settings{
		Port:       GetEnv("PORT", "3000"),
		Production: IsProduction(),

		// NOTE: the default secret is for local development only.
		AppSecret:     GetEnv("APP_SECRET", "PayQuick2024SecureKey!@#$%"),
		StoragePrefix: GetEnv("STORAGE_PREFIX", "payquick_encrypted_"),
		Storage:       GetEnv("STORAGE_BACKEND", StorageMemory),
		Redis: RedisSettings{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},
		Postgres: PostgresSettings{
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "5432"),
			User:     GetEnv("DB_USER", "postgres"),
			Password: GetEnv("DB_PASSWORD", "postgres"),
			Name:     GetEnv("DB_NAME", "payquick"),
		},

		JWTSecret:  GetEnv("JWT_SECRET", "your-secret-key"),
		SessionTTL: GetDurationEnv("SESSION_TTL", 24*time.Hour),

		Gateway:         GetEnv("GATEWAY", GatewayMock),
		StripeSecretKey: GetEnv("STRIPE_SECRET_KEY", ""),
		GatewayDelay:    GetDurationEnv("GATEWAY_DELAY", 2*time.Second),

		LuhnCheck: GetBoolEnv("CARD_LUHN_CHECK", false),
		TaxRate:   GetEnv("TAX_RATE", "0.08"),
		Currency:  GetEnv("CURRENCY", "USD"),
	}
}
