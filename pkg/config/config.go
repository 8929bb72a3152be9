package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Fuentes de ventas soportadas.
const (
	SourceAPI      = "api"
	SourcePostgres = "postgres"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	JWT        JWTConfig
	Sales      SalesConfig
	Backoffice BackofficeConfig
	DB         DBConfig
	Cache      CacheConfig
	Costing    CostingConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Timezone string // zona IANA usada para ubicar las ventas en días/meses; vacío = local
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string // ruta a swagger.json; vacío = sin UI de documentación
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig validación de los tokens emitidos por el back-office.
type JWTConfig struct {
	Secret string
	Issuer string
}

// SalesConfig de dónde se leen las ventas.
type SalesConfig struct {
	Source string // api | postgres
}

// BackofficeConfig cliente REST del back-office.
type BackofficeConfig struct {
	BaseURL  string
	Token    string
	PageSize int
	MaxPages int
	Timeout  time.Duration
}

// DBConfig configuración de PostgreSQL (solo con SALES_SOURCE=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// CacheConfig caché Redis opcional delante de la fuente de ventas.
type CacheConfig struct {
	RedisAddr     string // vacío = sin caché
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// Enabled indica si se configuró Redis.
func (c CacheConfig) Enabled() bool { return c.RedisAddr != "" }

// CostingConfig parámetros del cálculo de costos.
type CostingConfig struct {
	DefaultCostPerKg float64 // recargo por kg cuando la compra no lo informa
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env o config.env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "sales-insights"),
			Timezone: getString(v, "APP_TIMEZONE", ""),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			SwaggerFile: getString(v, "HTTP_SWAGGER_FILE", ""),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", ""),
		},
		Sales: SalesConfig{
			Source: strings.ToLower(getString(v, "SALES_SOURCE", SourceAPI)),
		},
		Backoffice: BackofficeConfig{
			BaseURL:  strings.TrimRight(getString(v, "BACKOFFICE_BASE_URL", "http://localhost:3000"), "/"),
			Token:    getString(v, "BACKOFFICE_TOKEN", ""),
			PageSize: getInt(v, "BACKOFFICE_PAGE_SIZE", 100),
			MaxPages: getInt(v, "BACKOFFICE_MAX_PAGES", 50),
			Timeout:  time.Duration(getInt(v, "BACKOFFICE_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "backoffice"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Cache: CacheConfig{
			RedisAddr:     getString(v, "REDIS_ADDRESS", ""),
			RedisPassword: getString(v, "REDIS_PASSWORD", ""),
			RedisDB:       getInt(v, "REDIS_DB", 0),
			TTL:           time.Duration(getInt(v, "CACHE_TTL_SECONDS", 60)) * time.Second,
		},
		Costing: CostingConfig{
			DefaultCostPerKg: getFloat(v, "COSTING_DEFAULT_COST_PER_KG", 0),
		},
	}

	if cfg.Sales.Source != SourceAPI && cfg.Sales.Source != SourcePostgres {
		return nil, fmt.Errorf("config: SALES_SOURCE %q no soportado (api|postgres)", cfg.Sales.Source)
	}
	if cfg.Backoffice.PageSize <= 0 {
		cfg.Backoffice.PageSize = 100
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	default:
		return v.GetFloat64(key)
	}
}
