package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Server struct {
	Addr           string        `toml:"addr"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	Debug          bool          `toml:"debug_mode"`
}

type Postgres struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	DBName   string `toml:"db_name"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	SSLMode  string `toml:"ssl_mode"`
}

type Storage struct {
	Driver      string   `toml:"driver"`
	SqliteFile  string   `toml:"sqlite_file"`
	PostgresDSN string   `toml:"postgres_dsn"`
	Postgres    Postgres `toml:"postgres"`
}

type League struct {
	// Workers bounds how many player rows are updated at once.
	Workers          int      `toml:"workers"`
	RecomputeRetries int      `toml:"recompute_retries"`
	RecentGames      int      `toml:"recent_games"`
	LeaderboardLimit int      `toml:"leaderboard_limit"`
	Roster           []string `toml:"roster"`
}

type TgBot struct {
	Enabled          bool   `toml:"enabled"`
	TelegramApiToken string `toml:"telegram_apitoken"`
	Debug            bool   `toml:"debug"`
}

type Log struct {
	Level string `toml:"level"`
}

type Config struct {
	Server  Server  `toml:"server"`
	Storage Storage `toml:"storage"`
	League  League  `toml:"league"`
	TgBot   TgBot   `toml:"tg_bot"`
	Log     Log     `toml:"log"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:           ":8080",
			RequestTimeout: 10 * time.Second,
		},
		Storage: Storage{
			Driver:     DriverSQLite,
			SqliteFile: "ceeps.sqlite",
			Postgres: Postgres{
				Host:    "localhost",
				Port:    5432,
				DBName:  "ceeps",
				SSLMode: "disable",
			},
		},
		League: League{
			Workers:          4,
			RecomputeRetries: 3,
			RecentGames:      5,
			LeaderboardLimit: 20,
		},
		Log: Log{Level: "info"},
	}
}

// New reads the config file at path. An empty path skips the file. A .env
// file in the working directory is loaded first, then environment
// variables override the file.
func New(path string) (Config, error) {
	cfg := Default()
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	token := os.Getenv("TELEGRAM_APITOKEN")
	if token != "" {
		cfg.TgBot.TelegramApiToken = token
	}
	for env, dst := range map[string]*string{
		"CEEPS_ADDR":           &cfg.Server.Addr,
		"CEEPS_STORAGE_DRIVER": &cfg.Storage.Driver,
		"CEEPS_SQLITE_FILE":    &cfg.Storage.SqliteFile,
		"CEEPS_POSTGRES_DSN":   &cfg.Storage.PostgresDSN,
		"CEEPS_LOG_LEVEL":      &cfg.Log.Level,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("CEEPS_WORKERS"); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CEEPS_WORKERS: %w", err)
		}
		cfg.League.Workers = workers
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver))
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.SqliteFile == "" {
		errs = append(errs, errors.New("storage.sqlite_file is required for the sqlite driver"))
	}
	if c.League.Workers < 1 {
		errs = append(errs, errors.New("league.workers must be at least 1"))
	}
	if c.League.RecomputeRetries < 1 {
		errs = append(errs, errors.New("league.recompute_retries must be at least 1"))
	}
	if c.TgBot.Enabled && c.TgBot.TelegramApiToken == "" {
		errs = append(errs, errors.New("tg_bot.telegram_apitoken is required when the bot is enabled"))
	}
	return errors.Join(errs...)
}
