// Package daemon holds the service configuration: a TOML file with
// sane defaults, so a bare `flashmentord serve` works out of the box
// with the demo expert directory.
package daemon

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/flashmentor-network/flashmentor/internal/domain"
)

// Config is the full daemon configuration.
type Config struct {
	API      APIConfig      `toml:"api"`
	Ledger   LedgerConfig   `toml:"ledger"`
	Matching MatchingConfig `toml:"matching"`
	Experts  []ExpertSeed   `toml:"experts"`
}

// APIConfig configures the HTTP server.
type APIConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"` // expose /metrics
}

// Addr returns the listen address.
func (a APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// LedgerConfig configures the time-credit ledger.
type LedgerConfig struct {
	InitialBalance int64  `toml:"initial_balance"` // seed for new accounts
	SessionCost    int64  `toml:"session_cost"`    // minutes per help session
	Store          string `toml:"store"`           // "memory" or "sqlite"
	Path           string `toml:"path"`            // sqlite database file
}

// MatchingConfig selects and tunes the match strategy.
type MatchingConfig struct {
	Strategy       string  `toml:"strategy"`        // "first" or "weighted"
	ResponseWeight float64 `toml:"response_weight"` // weighted: response-score weight
	TagWeight      float64 `toml:"tag_weight"`      // weighted: tag-strength weight
}

// ExpertSeed is one [[experts]] entry: the directory's initial roster.
type ExpertSeed struct {
	ID            string   `toml:"id"`
	Name          string   `toml:"name"`
	Expertise     []string `toml:"expertise"`
	Available     bool     `toml:"available"`
	ResponseScore float64  `toml:"response_score"`
}

// Profile converts the seed entry to a directory profile.
func (e ExpertSeed) Profile() domain.ExpertProfile {
	return domain.ExpertProfile{
		ID:            e.ID,
		DisplayName:   e.Name,
		ExpertiseTags: e.Expertise,
		Available:     e.Available,
		ResponseScore: e.ResponseScore,
	}
}

// DefaultConfig returns the out-of-the-box configuration, including
// the demo roster the original deployment shipped with.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:    "127.0.0.1",
			Port:    7373,
			Metrics: true,
		},
		Ledger: LedgerConfig{
			InitialBalance: 10,
			SessionCost:    3,
			Store:          "memory",
			Path:           "flashmentor.db",
		},
		Matching: MatchingConfig{
			Strategy:       "first",
			ResponseWeight: 0.6,
			TagWeight:      0.4,
		},
		Experts: []ExpertSeed{
			{ID: "alice", Name: "Alice", Expertise: []string{"React", "Node"}, Available: true, ResponseScore: 95},
			{ID: "bob", Name: "Bob", Expertise: []string{"Go", "Docker"}, Available: true, ResponseScore: 88},
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file
// is not an error — the defaults stand. FLASHMENTOR_PORT overrides
// the configured port for container deployments.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if port := os.Getenv("FLASHMENTOR_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return Config{}, fmt.Errorf("FLASHMENTOR_PORT=%q: %w", port, err)
		}
		cfg.API.Port = p
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the services cannot run with.
func (c Config) Validate() error {
	if c.Ledger.SessionCost <= 0 {
		return fmt.Errorf("ledger.session_cost must be positive, got %d", c.Ledger.SessionCost)
	}
	if c.Ledger.InitialBalance < 0 {
		return fmt.Errorf("ledger.initial_balance must not be negative, got %d", c.Ledger.InitialBalance)
	}
	switch c.Ledger.Store {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("ledger.store must be \"memory\" or \"sqlite\", got %q", c.Ledger.Store)
	}
	switch c.Matching.Strategy {
	case "first", "weighted":
	default:
		return fmt.Errorf("matching.strategy must be \"first\" or \"weighted\", got %q", c.Matching.Strategy)
	}
	if c.Matching.ResponseWeight < 0 {
		return fmt.Errorf("matching.response_weight must not be negative, got %v", c.Matching.ResponseWeight)
	}
	if c.Matching.TagWeight < 0 {
		return fmt.Errorf("matching.tag_weight must not be negative, got %v", c.Matching.TagWeight)
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port out of range: %d", c.API.Port)
	}
	return nil
}
