package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatTelegramENV   = "TELEGRAM_CHAT_ID"
	mt5LoginENV       = "MT5_LOGIN"
	mt5PasswordENV    = "MT5_PASSWORD"
	mt5ServerENV      = "MT5_SERVER"
	mt5AddrENV        = "MT5_BRIDGE_ADDR"
	databaseDSN       = "DATABASE_DSN"
)

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	MT5 struct {
		Addr     string `yaml:"addr"` // host:port REST/WS бриджа
		Login    int64  `yaml:"login"`
		Password string `yaml:"password"`
		Server   string `yaml:"server"`
	} `yaml:"mt5"`

	Watch struct {
		Symbol       string        `yaml:"symbol"`        // один инструмент на процесс
		PollInterval time.Duration `yaml:"poll_interval"` // дефолт 2s — терминал отдаёт полный срез дёшево
	} `yaml:"watch"`

	DB string `yaml:"db_dsn"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	Health struct {
		Addr string `yaml:"addr"`
	} `yaml:"health"`
}

func NewConfig() (*Config, error) {

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		log.Fatalf("Failed to open config file: %v", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	config := Config{}
	config.Watch.Symbol = getenvDefault("WATCH_SYMBOL", "XAUUSD")
	config.Watch.PollInterval = durationFromEnv("POLL_INTERVAL", "2s")
	config.Health.Addr = getenvDefault("HEALTH_ADDR", ":8080")

	err = decoder.Decode(&config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if chat := int64FromEnv(chatTelegramENV, 0); chat != 0 {
		config.Telegram.ChatID = chat
	}
	if login := int64FromEnv(mt5LoginENV, 0); login != 0 {
		config.MT5.Login = login
	}
	if pass := os.Getenv(mt5PasswordENV); pass != "" {
		config.MT5.Password = pass
	}
	if server := os.Getenv(mt5ServerENV); server != "" {
		config.MT5.Server = server
	}
	if addr := os.Getenv(mt5AddrENV); addr != "" {
		config.MT5.Addr = addr
	}
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		config.DB = dsn
	}

	if config.Watch.PollInterval <= 0 {
		config.Watch.PollInterval = 2 * time.Second
	}

	return &config, nil
}

func int64FromEnv(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
