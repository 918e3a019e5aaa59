package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Respaldos soportados por el almacén de registros.
const (
	BackendXLSX     = "xlsx"
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Store   StoreConfig
	DB      DBConfig
	Backup  BackupConfig
	Receipt ReceiptConfig
	Catalog CatalogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selecciona y parametriza el respaldo del almacén de registros.
type StoreConfig struct {
	Backend         string // xlsx, sheets, postgres, memory
	DataFile        string
	SpreadsheetID   string
	CredentialsPath string
	Timeout         time.Duration // límite por llamada al respaldo remoto
}

// DBConfig configuración de PostgreSQL.
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

// BackupConfig directorio y retención de respaldos.
type BackupConfig struct {
	Dir  string
	Keep int
}

// ReceiptConfig textos del tiquete impreso.
type ReceiptConfig struct {
	BusinessName string
	Footer       string
}

// CatalogConfig valores por defecto del catálogo.
type CatalogConfig struct {
	DefaultMinStock int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_BACKEND, DATA_FILE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.yaml
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "cafe-pos"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "APP_PORT", 3000),
		},
		Store: StoreConfig{
			Backend:         strings.ToLower(getString(v, "STORE_BACKEND", BackendXLSX)),
			DataFile:        getString(v, "DATA_FILE", "./data/cafe_data.xlsx"),
			SpreadsheetID:   getString(v, "GOOGLE_SHEETS_ID", ""),
			CredentialsPath: getString(v, "GOOGLE_CREDENTIALS_PATH", "./credentials.json"),
			Timeout:         time.Duration(getInt(v, "STORE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "cafe_pos"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Backup: BackupConfig{
			Dir:  getString(v, "BACKUP_DIR", "./data/backups"),
			Keep: getInt(v, "BACKUP_KEEP", 10),
		},
		Receipt: ReceiptConfig{
			BusinessName: getString(v, "BUSINESS_NAME", "CAFÉ NARE BALNEARIO"),
			Footer:       getString(v, "RECEIPT_FOOTER", "¡Gracias por su visita!"),
		},
		Catalog: CatalogConfig{
			DefaultMinStock: getInt(v, "DEFAULT_MIN_STOCK", 5),
		},
	}

	// Compatibilidad: USE_GOOGLE_SHEETS=true fuerza el respaldo remoto.
	if getBool(v, "USE_GOOGLE_SHEETS", false) {
		cfg.Store.Backend = BackendSheets
	}

	switch cfg.Store.Backend {
	case BackendXLSX, BackendSheets, BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("STORE_BACKEND desconocido: %q", cfg.Store.Backend)
	}
	if cfg.Store.Backend == BackendSheets && cfg.Store.SpreadsheetID == "" {
		return nil, fmt.Errorf("GOOGLE_SHEETS_ID es obligatorio con STORE_BACKEND=sheets")
	}
	if cfg.Backup.Keep < 1 {
		cfg.Backup.Keep = 1
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) && v.GetString(key) != "" {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
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
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
