package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/jhoicas/inventario-eoq/internal/domain/eoq"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	EOQ       EOQConfig
	Format    FormatConfig
	RateLimit RateLimitConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	DocsPath string // swagger.json servido en /docs; vacío = deshabilitado
}

// HTTPConfig configuración del servidor HTTP.
// Por defecto escucha solo en loopback: es una calculadora de un solo usuario.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// EOQConfig valores por defecto de la curva de costos.
type EOQConfig struct {
	SampleCount int
	RangePolicy string  // around_eoq, full_demand, fixed
	RangeFloor  float64 // cantidad mínima graficada en around_eoq
	RangeLow    float64 // factor inferior sobre la EOQ
	RangeHigh   float64 // factor superior sobre la EOQ
}

// FormatConfig formato de presentación de montos.
type FormatConfig struct {
	Locale   string // etiqueta BCP 47 (id, es-CO, en)
	Currency string // símbolo antepuesto a los montos
}

// RateLimitConfig límite de peticiones por IP.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, EOQ_SAMPLE_COUNT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-eoq"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			DocsPath: getString(v, "DOCS_PATH", "./docs/swagger.json"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		EOQ: EOQConfig{
			SampleCount: getInt(v, "EOQ_SAMPLE_COUNT", 200),
			RangePolicy: getString(v, "EOQ_RANGE_POLICY", "around_eoq"),
			RangeFloor:  getFloat(v, "EOQ_RANGE_FLOOR", 1),
			RangeLow:    getFloat(v, "EOQ_RANGE_LOW", 0.5),
			RangeHigh:   getFloat(v, "EOQ_RANGE_HIGH", 1.5),
		},
		Format: FormatConfig{
			Locale:   getString(v, "FORMAT_LOCALE", "id"),
			Currency: getString(v, "FORMAT_CURRENCY", "Rp"),
		},
		RateLimit: RateLimitConfig{
			RPS:   getFloat(v, "RATE_LIMIT_RPS", 5),
			Burst: getInt(v, "RATE_LIMIT_BURST", 10),
		},
	}

	if err := cfg.EOQ.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rechaza al arrancar defaults de curva que harían fallar cada petición.
func (c *EOQConfig) validate() error {
	if c.SampleCount < 2 || c.SampleCount > eoq.MaxSampleCount {
		return fmt.Errorf("config: EOQ_SAMPLE_COUNT debe estar entre 2 y %d, recibido %d", eoq.MaxSampleCount, c.SampleCount)
	}
	c.RangePolicy = strings.ToLower(strings.TrimSpace(c.RangePolicy))
	switch c.RangePolicy {
	case "fixed":
		// sin cotas globales: fixed solo tiene sentido por petición
		return fmt.Errorf("config: EOQ_RANGE_POLICY fixed no se admite como default, use around_eoq o full_demand")
	case "":
		c.RangePolicy = "around_eoq"
	}
	if _, err := eoq.ParseRangePolicy(c.RangePolicy, eoq.DefaultRange, 0, 0); err != nil {
		return fmt.Errorf("config: EOQ_RANGE_POLICY: %w", err)
	}
	if !(c.RangeFloor > 0) {
		return fmt.Errorf("config: EOQ_RANGE_FLOOR debe ser mayor que cero, recibido %g", c.RangeFloor)
	}
	if c.RangeLow < 0 {
		return fmt.Errorf("config: EOQ_RANGE_LOW no puede ser negativo, recibido %g", c.RangeLow)
	}
	if c.RangeHigh <= c.RangeLow {
		return fmt.Errorf("config: EOQ_RANGE_HIGH (%g) debe ser mayor que EOQ_RANGE_LOW (%g)", c.RangeHigh, c.RangeLow)
	}
	return nil
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

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		if s, ok := v.Get(key).(string); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return def
			}
			return f
		}
		return v.GetFloat64(key)
	}
	return def
}
