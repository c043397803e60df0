package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

// Defaults match the original three-candidate demo.
var (
	DefaultCandidates  = []string{"Candidate A", "Candidate B", "Candidate C"}
	DefaultOTP         = "123456"
	DefaultCommitDelay = 2500 * time.Millisecond
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	Candidates   []string
	ExpectedOTP  string
	CommitDelay  time.Duration
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var candidates, delay string

	fs := flag.NewFlagSet("mock-ballot", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Ballot setup
	fs.StringVar(&candidates, "candidates", "", "Comma-separated candidate names, in display order")
	fs.StringVar(&cfg.ExpectedOTP, "otp", "", "Mock OTP accepted during verification")
	fs.StringVar(&delay, "delay", "", "Simulated encryption delay before a vote is committed")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "mock-ballot.db"
	}

	if candidates == "" {
		candidates = os.Getenv("CANDIDATES")
	}
	if candidates == "" {
		cfg.Candidates = append([]string(nil), DefaultCandidates...)
	} else {
		parsed, err := ParseCandidates(candidates)
		if err != nil {
			return Config{}, err
		}
		cfg.Candidates = parsed
	}

	if cfg.ExpectedOTP == "" {
		cfg.ExpectedOTP = os.Getenv("MOCK_OTP")
	}
	cfg.ExpectedOTP = strings.TrimSpace(cfg.ExpectedOTP)
	if cfg.ExpectedOTP == "" {
		cfg.ExpectedOTP = DefaultOTP
	}

	if delay == "" {
		delay = os.Getenv("COMMIT_DELAY")
	}
	if delay == "" {
		cfg.CommitDelay = DefaultCommitDelay
	} else {
		d, err := time.ParseDuration(delay)
		if err != nil {
			return Config{}, fmt.Errorf("invalid commit delay %q: %w", delay, err)
		}
		if d < 0 {
			return Config{}, errors.New("commit delay cannot be negative")
		}
		cfg.CommitDelay = d
	}

	return cfg, nil
}

// ParseCandidates splits a comma-separated list, keeping order.
// Names are trimmed; empty or repeated names are rejected.
func ParseCandidates(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			return nil, fmt.Errorf("empty candidate name in %q", s)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate candidate %q", name)
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}
