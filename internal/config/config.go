package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

type Config struct {
	Environment   string `mapstructure:"ENV"`
	HTTPAddr      string `mapstructure:"HTTP_ADDR"`
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	Timezone      string `mapstructure:"TIMEZONE"`
	WeekStart     string `mapstructure:"WEEK_START"`
	SeedPath      string `mapstructure:"SEED_PATH"`
	DigestTime    string `mapstructure:"DIGEST_TIME"`

	location   *time.Location
	digestTime model.ClockTime
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := FromEnv(os.Getenv)
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	log.Printf("Config loaded\n")
	return cfg, nil
}

// FromEnv читает переменные через переданную функцию (os.Getenv в проде, map в тестах)
func FromEnv(getenv func(string) string) *Config {
	return &Config{
		Environment:   getenv("ENV"),
		HTTPAddr:      getenv("HTTP_ADDR"),
		TelegramToken: getenv("TELEGRAM_TOKEN"),
		Timezone:      getenv("TIMEZONE"),
		WeekStart:     getenv("WEEK_START"),
		SeedPath:      getenv("SEED_PATH"),
		DigestTime:    getenv("DIGEST_TIME"),
	}
}

// Normalize заполняет дефолтные значения и проверяет корректность
func (c *Config) Normalize() error {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	if c.Timezone == "" {
		c.Timezone = "Europe/Warsaw"
	}

	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	switch c.WeekStart {
	case "monday", "sunday":
	case "":
		c.WeekStart = "monday"
	default:
		return fmt.Errorf("WEEK_START must be monday or sunday, got %q", c.WeekStart)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	c.location = loc

	if c.DigestTime == "" {
		c.DigestTime = "07:30"
	}
	digest, err := model.ParseClock(c.DigestTime)
	if err != nil {
		return fmt.Errorf("DIGEST_TIME: %w", err)
	}
	c.digestTime = digest

	return nil
}

// Location возвращает часовой пояс школы
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

// DigestAt время ежедневной рассылки расписания в боте
func (c *Config) DigestAt() model.ClockTime {
	return c.digestTime
}

// BotEnabled бот запускается только при наличии токена
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}
