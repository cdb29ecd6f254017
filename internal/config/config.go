package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"America/Argentina/Buenos_Aires"`
	}

	HTTP struct {
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
	}

	// Upstream MediBook REST backend. The gateway never stores appointments
	// itself; everything is read from and written to this service.
	Backend struct {
		URL     string        `env:"MEDIBOOK_API_URL" envDefault:"http://localhost:8081/api"`
		Timeout time.Duration `env:"MEDIBOOK_API_TIMEOUT" envDefault:"10s"`
	}

	Session struct {
		Size int           `env:"SESSION_STORE_SIZE" envDefault:"10000"`
		TTL  time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		URL      string `env:"RABBITMQ_URL"`
		Queue    string `env:"RABBITMQ_APPOINTMENT_QUEUE" envDefault:"medibook.gateway.appointment"`
		Exchange string `env:"RABBITMQ_APPOINTMENT_EXCHANGE" envDefault:"medibook.events"`
		Bind     string `env:"RABBITMQ_APPOINTMENT_BIND" envDefault:"medibook.appointment.*"`
	}

	Cache struct {
		Enabled    bool          `env:"CACHE_ENABLED" envDefault:"true"`
		SlotsSize  int           `env:"CACHE_SLOTS_SIZE" envDefault:"1000"`
		DoctorsTTL time.Duration `env:"CACHE_DOCTORS_TTL" envDefault:"5m"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
