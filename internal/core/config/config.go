package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string // 为空则只打 stdout
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Session struct {
	CookieName string `mapstructure:"cookie_name"`
	TTLMin     int    `mapstructure:"ttl_min"`
	Secure     bool   `mapstructure:"secure"`
	// memory | redis：令牌与会话存储的后端
	Store string `mapstructure:"store"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
	// 表前缀，多套部署共用一个库时区分（默认 b_）
	TablePrefix string `mapstructure:"table_prefix"`
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	DB      DB
	Session Session `mapstructure:"session"`
	Redis   Redis   `mapstructure:"redis"`
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	applyDefaults(&c)
	return &c
}

func applyDefaults(c *Config) {
	if c.DB.TablePrefix == "" {
		c.DB.TablePrefix = "b_"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "bs"
	}
	if c.Session.TTLMin <= 0 {
		c.Session.TTLMin = 60
	}
	if c.Session.Store == "" {
		c.Session.Store = "memory"
	}
}
