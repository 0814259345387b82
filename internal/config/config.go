package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMySQL  = "mysql"
	StoreSQLite = "sqlite"

	AuthFirebase = "firebase"
	AuthJWT      = "jwt"
)

type Config struct {
	AppPort string

	StoreDriver string

	MongoURI string
	MongoDB  string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	SQLitePath string

	// empty disables the idempotency middleware
	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// 0 means no cap
	HomeLoansLimit int

	AuthProvider        string
	FirebaseCredentials string
	JWTSecret           string

	LogLevel  string
	LogFormat string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads .env (if present) and then the process environment. Variables
// already set in the environment win over .env entries.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:     getenv("APP_PORT", getenv("PORT", "5000")),
		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", StoreMongo)),

		MongoURI: getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getenv("MONGO_DB", "microcredx"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "microcredx"),
		MySQLUser: getenv("MYSQL_USER", "microcredx"),
		MySQLPass: getenv("MYSQL_PASS", "microcredx"),

		SQLitePath: getenv("SQLITE_PATH", "microcredx.db"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getint("REDIS_DB", 0),

		IdempTTLSecs:   getint("IDEMPOTENCY_TTL_SECONDS", 300),
		HomeLoansLimit: getint("HOME_LOANS_LIMIT", 0),

		AuthProvider:        strings.ToLower(getenv("AUTH_PROVIDER", AuthFirebase)),
		FirebaseCredentials: getenv("FIREBASE_CREDENTIALS", "serviceAccountKey.json"),
		JWTSecret:           os.Getenv("JWT_SECRET"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" || c.MongoDB == "" {
			return errors.New("missing Mongo config (MONGO_URI/MONGO_DB)")
		}
	case StoreMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.AuthProvider {
	case AuthFirebase:
		if c.FirebaseCredentials == "" {
			return errors.New("missing FIREBASE_CREDENTIALS")
		}
	case AuthJWT:
		if c.JWTSecret == "" {
			return errors.New("missing JWT_SECRET")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}
	if c.HomeLoansLimit < 0 {
		return errors.New("HOME_LOANS_LIMIT must be >= 0")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
