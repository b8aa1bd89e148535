// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/danielhkuo/sociogram/sociogram"
)

type Config struct {
	Port            int
	DataDir         string
	AllowedUsers    []string
	AdminUser       string
	SessionSalt     string
	SessionTTL      time.Duration
	AccessLogPath   string
	DatabaseURL     string
	DatabaseType    string
	CorrectionsFile string
	FoldAccents     bool
	Watch           bool
	DefaultLimit    int
}

// Mode selects which settings are required.
type Mode int

const (
	// ModeServe requires the login settings.
	ModeServe Mode = iota
	// ModeReport only needs the data directory.
	ModeReport
)

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string, mode Mode) (Config, error) {
	var cfg Config
	var users string

	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	fs := pflag.NewFlagSet("sociogram", pflag.ContinueOnError)

	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	fs.StringVar(&cfg.DataDir, "data", "", "Directory with participant records")
	fs.StringVar(&users, "users", "", "Comma-separated allowed user names (prefer env)")
	fs.StringVar(&cfg.AdminUser, "admin", "", "User allowed to read the access log")
	fs.StringVar(&cfg.SessionSalt, "session-salt", "", "Session cookie signing secret (prefer env)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Session lifetime")
	fs.StringVar(&cfg.AccessLogPath, "access-log", "", "Access log CSV file")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL for the access log (replaces the CSV file)")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.CorrectionsFile, "corrections", "", "YAML file with name corrections")
	fs.BoolVar(&cfg.FoldAccents, "fold-accents", false, "Ignore accents when matching names")
	fs.BoolVar(&cfg.Watch, "watch", false, "Reload when record files change")
	fs.IntVar(&cfg.DefaultLimit, "limit", 0, "Default number of preferences shown")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	cfg.DataDir = firstNonEmpty(cfg.DataDir, os.Getenv("DATA_DIR"), "datos")
	cfg.AccessLogPath = firstNonEmpty(cfg.AccessLogPath, os.Getenv("ACCESS_LOG"), "historial_accesos.csv")
	cfg.AdminUser = firstNonEmpty(cfg.AdminUser, os.Getenv("ADMIN_USER"))
	cfg.SessionSalt = firstNonEmpty(cfg.SessionSalt, os.Getenv("SESSION_SALT"))
	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"))
	cfg.DatabaseType = firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), "sqlite")
	cfg.CorrectionsFile = firstNonEmpty(cfg.CorrectionsFile, os.Getenv("CORRECTIONS_FILE"))

	if !fs.Changed("fold-accents") {
		cfg.FoldAccents = envBool("FOLD_ACCENTS")
	}
	if !fs.Changed("watch") {
		cfg.Watch = envBool("WATCH_DATA")
	}

	if cfg.SessionTTL == 0 {
		if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
			d, err := time.ParseDuration(ttl)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = d
		} else {
			cfg.SessionTTL = 12 * time.Hour
		}
	}

	if cfg.DefaultLimit == 0 {
		cfg.DefaultLimit = sociogram.DefaultLimit
		if limitStr := os.Getenv("DEFAULT_LIMIT"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil {
				return Config{}, errors.New("invalid DEFAULT_LIMIT env variable")
			}
			cfg.DefaultLimit = limit
		}
	}
	cfg.DefaultLimit = sociogram.ClampLimit(cfg.DefaultLimit)

	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if mode == ModeReport {
		return cfg, nil
	}

	// Login settings - MUST be provided to serve
	if users == "" {
		users = os.Getenv("ALLOWED_USERS")
	}
	cfg.AllowedUsers = splitList(users)
	if len(cfg.AllowedUsers) == 0 {
		return Config{}, errors.New("ALLOWED_USERS required")
	}
	if cfg.SessionSalt == "" {
		return Config{}, errors.New("SESSION_SALT required")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
