package docsim

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver     string // "none", "redis", "valkey" or "sqlite"
	addrs      []string
	password   string
	db         int
	sqlitePath string

	keyPrefix    string
	historyLimit int
	saveTimeout  time.Duration

	minTokenLength int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey records comparisons in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis records comparisons in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithDB selects the logical Redis database. Ignored by other drivers.
func WithDB(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = n
	})
}

// WithSQLite records comparisons in a SQLite file. Use ":memory:" for a
// process-local history.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "sqlite"
		c.sqlitePath = path
	})
}

// WithKeyPrefix namespaces Redis/Valkey keys. Default: "docsim:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithHistoryLimit caps the Redis/Valkey history list. Zero keeps every record.
func WithHistoryLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.historyLimit = n
	})
}

// WithSaveTimeout bounds how long a comparison waits for its record to be saved.
// Default: 2s.
func WithSaveTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.saveTimeout = d
	})
}

// WithMinTokenLength drops tokens shorter than n runes before vectorizing.
// Default: 1 (keep every token).
func WithMinTokenLength(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.minTokenLength = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
