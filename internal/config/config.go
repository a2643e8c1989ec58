package config

import (
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

type ScoringConfig struct {
	ValueCeiling       float64        `yaml:"value_ceiling"`
	ValueWeight        float64        `yaml:"value_weight"`
	DefaultProbability int            `yaml:"default_probability"`
	StageProbabilities map[string]int `yaml:"stage_probabilities"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN            string `yaml:"url"`
		QueryTimeoutMS int    `yaml:"query_timeout_ms"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		NotifyTo     string `yaml:"notify_to"`
	} `yaml:"email"`
	Telegram TelegramConfig `yaml:"telegram"`
	Scoring  ScoringConfig  `yaml:"scoring"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.QueryTimeoutMS <= 0 {
		cfg.Database.QueryTimeoutMS = 5000
	}
	return &cfg
}

func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Database.QueryTimeoutMS) * time.Millisecond
}
