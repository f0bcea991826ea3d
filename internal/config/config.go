package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"microfinance-ledger/internal/domain/numeric"
	"microfinance-ledger/internal/domain/params"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	StoreMySQL  = "mysql"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	AppPort string
	Store   string

	SQLitePath string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	// RedisAddr empty runs without Redis: static oracle, no idempotency.
	RedisAddr string
	RedisDB   int

	IdempTTLSecs int
	LogLevel     string

	TimeUnit   time.Duration
	ClockEpoch time.Time

	Authorities       []string
	AuthorityContract string

	DefaultIssuanceFee     string
	DefaultMinTrustScore   uint64
	DefaultMaxInterestRate string
	DefaultMinDuration     uint64
	DefaultMaxDuration     uint64
	MaxLoans               uint64
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvUint(k string, d uint64) uint64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() *Config {
	def := params.Defaults()
	c := &Config{
		AppPort:    getenv("APP_PORT", "8080"),
		Store:      getenv("STORE", StoreMySQL),
		SQLitePath: getenv("SQLITE_PATH", "ledger.db"),
		MySQLHost:  getenv("MYSQL_HOST", "mysql"),
		MySQLPort:  getenv("MYSQL_PORT", "3306"),
		MySQLDB:    getenv("MYSQL_DB", "ledger"),
		MySQLUser:  getenv("MYSQL_USER", "ledger"),
		MySQLPass:  getenv("MYSQL_PASS", "ledger"),

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		IdempTTLSecs: 300,
		LogLevel:     getenv("LOG_LEVEL", "info"),

		TimeUnit:   24 * time.Hour,
		ClockEpoch: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),

		Authorities:       splitList(os.Getenv("AUTHORITIES")),
		AuthorityContract: os.Getenv("AUTHORITY_CONTRACT"),

		DefaultIssuanceFee:     getenv("DEFAULT_ISSUANCE_FEE", def.IssuanceFee.String()),
		DefaultMinTrustScore:   getenvUint("DEFAULT_MIN_TRUST_SCORE", def.MinTrustScore),
		DefaultMaxInterestRate: getenv("DEFAULT_MAX_INTEREST_RATE", def.MaxInterestRate.String()),
		DefaultMinDuration:     getenvUint("DEFAULT_MIN_DURATION", def.MinRepaymentDuration),
		DefaultMaxDuration:     getenvUint("DEFAULT_MAX_DURATION", def.MaxRepaymentDuration),
		MaxLoans:               getenvUint("MAX_LOANS", def.MaxLoans),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	if v := os.Getenv("TIME_UNIT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.TimeUnit = d
		}
	}
	if v := os.Getenv("CLOCK_EPOCH"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			c.ClockEpoch = t.UTC()
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.Store {
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
	case StoreMemory:
	default:
		return fmt.Errorf("invalid STORE %q (want mysql, sqlite or memory)", c.Store)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if c.TimeUnit <= 0 {
		return fmt.Errorf("invalid TIME_UNIT %s", c.TimeUnit)
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("invalid IDEMPOTENCY_TTL_SECONDS %d", c.IdempTTLSecs)
	}
	if _, err := c.Parameters(); err != nil {
		return err
	}
	return nil
}

// Level is LOG_LEVEL parsed; Validate has already rejected bad values.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Parameters builds the initial risk configuration. The authority is left
// unbound; binding is a runtime operation.
func (c *Config) Parameters() (params.ParameterSet, error) {
	ps := params.Defaults()
	fee, err := decimal.NewFromString(c.DefaultIssuanceFee)
	if err != nil || !numeric.Money.Fits(fee) || fee.IsNegative() {
		return ps, fmt.Errorf("invalid DEFAULT_ISSUANCE_FEE %q", c.DefaultIssuanceFee)
	}
	rate, err := decimal.NewFromString(c.DefaultMaxInterestRate)
	if err != nil || !numeric.Rate.Fits(rate) || !rate.IsPositive() {
		return ps, fmt.Errorf("invalid DEFAULT_MAX_INTEREST_RATE %q", c.DefaultMaxInterestRate)
	}
	if c.DefaultMinDuration == 0 || c.DefaultMaxDuration < c.DefaultMinDuration {
		return ps, fmt.Errorf("invalid duration range [%d, %d]", c.DefaultMinDuration, c.DefaultMaxDuration)
	}
	if c.MaxLoans == 0 {
		return ps, errors.New("MAX_LOANS must be positive")
	}
	ps.IssuanceFee = fee
	ps.MaxInterestRate = rate
	ps.MinTrustScore = c.DefaultMinTrustScore
	ps.MinRepaymentDuration = c.DefaultMinDuration
	ps.MaxRepaymentDuration = c.DefaultMaxDuration
	ps.MaxLoans = c.MaxLoans
	return ps, nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
