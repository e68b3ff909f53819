package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const legacyTokenEnv = "TOKEN"

// AppConfig описывает конфигурацию бота.
type AppConfig struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	Discord struct {
		// Token можно задать и через TOKEN, как в исходной версии бота.
		Token string `envconfig:"DISCORD_TOKEN"`
	} `envconfig:""`

	Feedback struct {
		ChannelID    string   `envconfig:"FEEDBACK_CHANNEL_ID" default:"1437619923810783362"`
		AllowedRoles []string `envconfig:"FEEDBACK_ALLOWED_ROLES" default:"1437623596322394142,1437623932529279047"`
	} `envconfig:""`

	Dedup struct {
		RedisAddr string        `envconfig:"REDIS_ADDR"`
		TTL       time.Duration `envconfig:"DEDUP_TTL" default:"15m"`
	} `envconfig:""`
}

// Load загружает конфиг из окружения. Файл .env, если есть, читается первым.
func Load() AppConfig {
	if err := loadDotEnv(); err != nil {
		log.Printf("не удалось прочитать .env: %v", err)
	}
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}

// loadDotEnv читает .env. Отсутствие файла ошибкой не считается.
func loadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Parse читает и проверяет конфиг без завершения процесса.
func Parse() (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, err
	}
	if strings.TrimSpace(cfg.Discord.Token) == "" {
		cfg.Discord.Token = os.Getenv(legacyTokenEnv)
	}
	cfg.Feedback.AllowedRoles = cleanIDs(cfg.Feedback.AllowedRoles)
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры.
func (c AppConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Discord.Token) == "" {
		errs = append(errs, errors.New("DISCORD_TOKEN is required"))
	}
	if strings.TrimSpace(c.Feedback.ChannelID) == "" {
		errs = append(errs, errors.New("FEEDBACK_CHANNEL_ID is required"))
	}
	if len(c.Feedback.AllowedRoles) == 0 {
		errs = append(errs, errors.New("FEEDBACK_ALLOWED_ROLES must list at least one role"))
	}
	return errors.Join(errs...)
}

func cleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
