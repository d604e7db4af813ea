package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName string
	AppPort string

	TelegramApiToken string
	TelegramChatID   string

	MasterUrl       string
	MasterAccountID string
	BridgeApiKey    string
	BridgeSecretKey string

	LogLevel             string
	LokiAddr             string
	RestartCron          string
	MaxConcurrentLocates string

	DB    *DB
	Mongo *Mongo
}

type DB struct {
	Host     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Mongo struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

var ErrEnvNotFound = errors.New("err env not found")

func (a *App) loadConfig(confFileName string) error {
	var cfg Config
	var db DB
	var mg Mongo

	err := godotenv.Load(confFileName)
	if err != nil {
		return err
	}

	if cfg.AppName, err = cfg.set("APP_NAME"); err != nil {
		return err
	}

	if cfg.AppPort, err = cfg.set("APP_PORT"); err != nil {
		return err
	}

	if cfg.TelegramApiToken, err = cfg.set("TELEGRAM_API_TOKEN"); err != nil {
		return err
	}

	if cfg.TelegramChatID, err = cfg.set("TELEGRAM_CHAT_ID"); err != nil {
		return err
	}

	if cfg.MasterUrl, err = cfg.set("BRIDGE_MASTER_URL"); err != nil {
		return err
	}

	if cfg.MasterAccountID, err = cfg.set("BRIDGE_MASTER_ACCOUNT"); err != nil {
		return err
	}

	if cfg.BridgeApiKey, err = cfg.set("BRIDGE_API_KEY"); err != nil {
		return err
	}

	if cfg.BridgeSecretKey, err = cfg.set("BRIDGE_SECRET_KEY"); err != nil {
		return err
	}

	cfg.LogLevel = cfg.setDefault("LOG_LEVEL", "INFO")
	cfg.LokiAddr = cfg.setDefault("LOKI_ADDR", "")
	cfg.RestartCron = cfg.setDefault("RESTART_CRON", "")
	cfg.MaxConcurrentLocates = cfg.setDefault("MAX_CONCURRENT_LOCATES", "3")

	if db.Host, err = cfg.set("PG_HOST"); err != nil {
		return err
	}

	if db.User, err = cfg.set("PG_USER"); err != nil {
		return err
	}

	if db.Password, err = cfg.set("PG_PASSWORD"); err != nil {
		return err
	}

	if db.DBName, err = cfg.set("PG_DBNAME"); err != nil {
		return err
	}

	if db.SSLMode, err = cfg.set("PG_SSL_MODE"); err != nil {
		return err
	}

	if mg.Host, err = cfg.set("MONGO_HOST"); err != nil {
		return err
	}

	if mg.Port, err = cfg.set("MONGO_PORT"); err != nil {
		return err
	}

	if mg.User, err = cfg.set("MONGO_USER"); err != nil {
		return err
	}

	if mg.Password, err = cfg.set("MONGO_PASSWORD"); err != nil {
		return err
	}

	if mg.DBName, err = cfg.set("MONGO_DBNAME"); err != nil {
		return err
	}

	cfg.DB = &db
	cfg.Mongo = &mg

	a.Config = &cfg

	return nil
}

func (d *DB) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode)
}

func (m *Mongo) DSN() string {
	return fmt.Sprintf("mongodb://%s:%s", m.Host, m.Port)
}

func (c *Config) set(key string) (string, error) {
	if os.Getenv(key) == "" {
		return "", ErrEnvNotFound
	}

	return os.Getenv(key), nil
}

func (c *Config) setDefault(key, def string) string {
	if os.Getenv(key) == "" {
		return def
	}

	return os.Getenv(key)
}
