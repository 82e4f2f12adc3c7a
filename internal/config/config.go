package config // package config loads application configuration from environment variables

import (
	"errors"  // errors joins the list of missing variables into one error
	"fmt"     // fmt formats error messages
	"net"     // net joins host and port
	"net/url" // url builds the postgres connection URL
	"os"      // os provides access to environment variables
	"strings" // strings normalises driver and level names
	"time"    // time parses timeouts

	"github.com/go-sql-driver/mysql" // mysql.Config formats the MySQL DSN
	"github.com/joho/godotenv"       // godotenv loads an optional .env file
)

// Supported values of DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds all runtime configuration values. It is built once by Load
// in main and passed by value to the components that need it.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DB             DBConfig      // database connection settings
	LogLevel       string        // debug, info, warn or error
	LogFormat      string        // json or text
	RequestTimeout time.Duration // per-request bound on database work
	Broker         BrokerConfig  // RabbitMQ settings for listing events
}

// DBConfig holds the database connection settings.
type DBConfig struct {
	Driver      string // postgres or mysql
	User        string // database username
	Pass        string // database password (optional)
	Host        string // database host address
	Port        string // database port number
	Name        string // database name
	SSLMode     string // postgres sslmode
	AutoMigrate bool   // apply pending migrations when the server starts
}

// BrokerConfig holds the RabbitMQ settings. An empty URL disables
// publishing.
type BrokerConfig struct {
	URL   string // amqp:// connection URL
	Queue string // durable queue receiving listing events
}

// LoadBrokerConfig reads RABBITMQ_URL and RABBITMQ_QUEUE. It needs no
// database settings so the audit consumer can use it on its own.
func LoadBrokerConfig() BrokerConfig {
	_ = godotenv.Load()
	return BrokerConfig{
		URL:   os.Getenv("RABBITMQ_URL"),
		Queue: envStr("RABBITMQ_QUEUE", "listing_events"),
	}
}

// MissingEnvError lists the required variables that were unset or empty.
type MissingEnvError struct {
	Keys []string
}

func (e *MissingEnvError) Error() string {
	return "missing required env var: " + strings.Join(e.Keys, ", ")
}

// Load reads an optional .env file and then the environment. Missing
// required variables are reported together in a *MissingEnvError so the
// process can fail fast at startup.
func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env file is fine; real env wins

	var missing []string
	must := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if fallback != "" {
			if v := os.Getenv(fallback); v != "" {
				return v
			}
		}
		missing = append(missing, key)
		return ""
	}

	driver := strings.ToLower(envStr("DB_DRIVER", DriverPostgres))
	defPort := "5432"
	if driver == DriverMySQL {
		defPort = "3306"
	}

	cfg := Config{
		Env:  envStr("APP_ENV", "dev"),
		Port: envStr("APP_PORT", "5000"),
		DB: DBConfig{
			Driver:      driver,
			User:        must("DB_USER", "FYURR_DB_USER"),
			Pass:        envStr("DB_PASS", os.Getenv("FYURR_DB_PASSWORD")),
			Host:        must("DB_HOST", "FYURR_DB_HOST"),
			Port:        envStr("DB_PORT", envStr("FYURR_DB_PORT", defPort)),
			Name:        must("DB_NAME", "FYURR_DB_NAME"),
			SSLMode:     envStr("DB_SSLMODE", "disable"),
			AutoMigrate: envBool("DB_AUTO_MIGRATE", true),
		},
		LogLevel:       strings.ToLower(envStr("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(envStr("LOG_FORMAT", "json")),
		RequestTimeout: envDur("REQUEST_TIMEOUT", 5*time.Second),
		Broker:         LoadBrokerConfig(),
	}

	if len(missing) > 0 {
		return Config{}, &MissingEnvError{Keys: missing}
	}
	if driver != DriverPostgres && driver != DriverMySQL {
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, errors.New("REQUEST_TIMEOUT must be positive")
	}
	return cfg, nil
}

// DSN builds the driver specific connection string. Times are read and
// written in UTC for both drivers.
func (c DBConfig) DSN() string {
	addr := net.JoinHostPort(c.Host, c.Port)
	if c.Driver == DriverMySQL {
		m := mysql.NewConfig()
		m.User = c.User
		m.Passwd = c.Pass
		m.Net = "tcp"
		m.Addr = addr
		m.DBName = c.Name
		m.ParseTime = true
		m.Loc = time.UTC
		m.Params = map[string]string{"charset": "utf8mb4"}
		return m.FormatDSN()
	}
	u := url.URL{
		Scheme:   "postgres",
		Host:     addr,
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}, "TimeZone": {"UTC"}}.Encode(),
	}
	if c.Pass != "" {
		u.User = url.UserPassword(c.User, c.Pass)
	} else {
		u.User = url.User(c.User)
	}
	return u.String()
}
