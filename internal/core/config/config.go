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
	Env   string // local / staging / production
	HTTP  HTTP
	Admin AdminHTTP
}

// IsProduction gates the destructive schema-lifecycle routes.
func (a App) IsProduction() bool { return strings.EqualFold(a.Env, "production") }

type Log struct {
	Level string
	JSON  bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DB configures the relational (postgres) pool. Operations queue for a free
// connection up to ConnTimeoutSec; idle connections are evicted after
// IdleTimeoutMin.
type DB struct {
	DSN            string
	MaxOpenConns   int
	MaxIdleConns   int
	ConnTimeoutSec int
	IdleTimeoutMin int
	LifetimeMin    int
	RequireTLS     bool
	LogLevel       string
}

// Mongo configures the document store; one client is shared by all requests
// and pooled by the driver.
type Mongo struct {
	URI      string
	Database string
}

type Config struct {
	App   App
	Log   Log
	JWT   JWT
	DB    DB
	Mongo Mongo
	Redis Redis `mapstructure:"redis"`
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
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.DB.MaxOpenConns <= 0 {
		c.DB.MaxOpenConns = 20
	}
	if c.DB.MaxIdleConns <= 0 {
		c.DB.MaxIdleConns = 5
	}
	if c.DB.ConnTimeoutSec <= 0 {
		c.DB.ConnTimeoutSec = 10
	}
	if c.DB.IdleTimeoutMin <= 0 {
		c.DB.IdleTimeoutMin = 10
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "commerce"
	}
}
