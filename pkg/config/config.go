package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Fuentes de datos soportadas para leer el sistema contable.
const (
	FuenteRPC      = "rpc"      // API externa JSON-RPC de Odoo
	FuentePostgres = "postgres" // lectura directa del esquema de Odoo
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Fuente  string // FuenteRPC o FuentePostgres
	Odoo    OdooConfig
	DB      DBConfig
	Reporte ReporteConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Nombre   string
	LogLevel string
}

// OdooConfig credenciales de la API externa JSON-RPC.
type OdooConfig struct {
	URL     string // ej. https://odoo.temponovo.cl
	DB      string
	Usuario string
	Clave   string
}

// DBConfig configuración de PostgreSQL para la fuente de lectura directa.
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

// ReporteConfig parámetros del reporte de cobranza.
type ReporteConfig struct {
	Directorio   string // directorio de salida de los PDF
	CodigoCuenta string // patrón de código de las cuentas por cobrar (ej. A110402)
	NombreCuenta string // substring del nombre de la cuenta, último recurso de búsqueda
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo .env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, ODOO_URL, DB_HOST, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Nombre:   getString(v, "APP_NAME", "reporte-vendedores"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Fuente: getString(v, "FUENTE", FuenteRPC),
		Odoo: OdooConfig{
			URL:     getString(v, "ODOO_URL", "https://odoo.temponovo.cl"),
			DB:      getString(v, "ODOO_DB", "temponovo"),
			Usuario: getString(v, "ODOO_USER", "admin"),
			Clave:   getString(v, "ODOO_PASS", ""),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "odoo"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Reporte: ReporteConfig{
			Directorio:   getString(v, "REPORTE_DIR", "./salida"),
			CodigoCuenta: getString(v, "REPORTE_CODIGO_CUENTA", "A110402"),
			NombreCuenta: getString(v, "REPORTE_NOMBRE_CUENTA", "CLIENTES"),
		},
	}

	if cfg.Fuente != FuenteRPC && cfg.Fuente != FuentePostgres {
		return nil, fmt.Errorf("config: FUENTE inválida %q (use %q o %q)", cfg.Fuente, FuenteRPC, FuentePostgres)
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
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
