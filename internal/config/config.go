package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	// Seed is a json or yaml dataset, the embedded one is used when empty
	Seed string `yaml:"seed" env:"TASKFLOW_SEED"`
	// Latency delays every store operation
	Latency time.Duration `yaml:"latency" env:"TASKFLOW_LATENCY" env-default:"0s" validate:"gte=0"`
	Log     Log           `yaml:"log"`
}

type Log struct {
	Level  string `yaml:"level" env:"TASKFLOW_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"TASKFLOW_LOG_FORMAT" env-default:"text" validate:"oneof=text json"`
	// File enables rotation through lumberjack, stderr is used when empty
	File       string `yaml:"file" env:"TASKFLOW_LOG_FILE"`
	MaxSize    int    `yaml:"max_size" env:"TASKFLOW_LOG_MAX_SIZE" env-default:"10" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" env:"TASKFLOW_LOG_MAX_BACKUPS" env-default:"3" validate:"gte=0"`
	MaxAge     int    `yaml:"max_age" env:"TASKFLOW_LOG_MAX_AGE" env-default:"28" validate:"gte=0"`
	Compress   bool   `yaml:"compress" env:"TASKFLOW_LOG_COMPRESS"`
}

var validate = validator.New()

// Load reads the config file at path, falling back to the environment when
// the path is empty or the file does not exist. Env files are loaded first,
// without overriding variables that are already set. Missing env files are
// ignored. With no env files given, ".env" is tried.
func Load(path string, envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("env file %q: %w", f, err)
		}
	}

	var cfg Config
	if err := read(path, &cfg); err != nil {
		return Config{}, err
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func read(path string, cfg *Config) error {
	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return fmt.Errorf("cannot read env: %w", err)
		}
		return nil
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			*cfg = Config{}
			if err := cleanenv.ReadEnv(cfg); err != nil {
				return fmt.Errorf("cannot read env: %w", err)
			}
			return nil
		}
		return fmt.Errorf("cannot read config %q: %w", path, err)
	}
	return nil
}

func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
