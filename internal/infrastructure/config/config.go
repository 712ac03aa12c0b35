package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend names accepted by the storage, ledger and mailbox sections.
const (
	BackendSQL      = "sql"
	BackendDynamoDB = "dynamodb"
	BackendRedis    = "redis"
	BackendLog      = "log"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Dynamo   DynamoConfig   `mapstructure:"dynamodb"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Mailbox  MailboxConfig  `mapstructure:"mailbox"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Payments PaymentsConfig `mapstructure:"payments"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

type ServerConfig struct {
	Port    int    `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

// StorageConfig selects the payment log and player directory backend.
// ReadOnlyDSN is optional; history reads fall back to DSN when empty.
type StorageConfig struct {
	Backend     string `mapstructure:"backend"`
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	ReadOnlyDSN string `mapstructure:"read_only_dsn"`
}

type DynamoConfig struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	PaymentLogTable string `mapstructure:"payment_log_table"`
	PlayersTable    string `mapstructure:"players_table"`
	AccountsTable   string `mapstructure:"accounts_table"`
	LedgerTable     string `mapstructure:"ledger_table"`
	InboxTable      string `mapstructure:"inbox_table"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type LedgerConfig struct {
	Backend string `mapstructure:"backend"`
}

type MailboxConfig struct {
	Backend    string        `mapstructure:"backend"`
	Workers    int           `mapstructure:"workers"`
	QueueSize  int           `mapstructure:"queue_size"`
	MaxElapsed time.Duration `mapstructure:"max_elapsed"`
}

type AuthConfig struct {
	AppID    string        `mapstructure:"app_id"`
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type PaymentsConfig struct {
	MercadoPagoAccessToken string `mapstructure:"mercadopago_access_token"`
	VerifyProvider         bool   `mapstructure:"verify_provider"`
}

type CatalogConfig struct {
	File            string `mapstructure:"file"`
	HighTierEnabled bool   `mapstructure:"high_tier_enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.gin_mode", "release")

	v.SetDefault("storage.backend", BackendSQL)
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.dsn", "webcharge.db")
	v.SetDefault("storage.read_only_dsn", "")

	v.SetDefault("dynamodb.region", "us-east-1")
	v.SetDefault("dynamodb.endpoint", "")
	v.SetDefault("dynamodb.access_key_id", "local")
	v.SetDefault("dynamodb.secret_access_key", "local")
	v.SetDefault("dynamodb.payment_log_table", "webcharge_payment_log")
	v.SetDefault("dynamodb.players_table", "players")
	v.SetDefault("dynamodb.accounts_table", "account_info")
	v.SetDefault("dynamodb.ledger_table", "webcharge_ledger")
	v.SetDefault("dynamodb.inbox_table", "inbox")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "jwins_cash_")

	v.SetDefault("ledger.backend", BackendRedis)

	v.SetDefault("mailbox.backend", BackendSQL)
	v.SetDefault("mailbox.workers", 2)
	v.SetDefault("mailbox.queue_size", 256)
	v.SetDefault("mailbox.max_elapsed", "2m")

	v.SetDefault("auth.app_id", "")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", "3h")

	v.SetDefault("payments.mercadopago_access_token", "")
	v.SetDefault("payments.verify_provider", false)

	v.SetDefault("catalog.file", "")
	v.SetDefault("catalog.high_tier_enabled", false)
}

// Load reads defaults, then the optional config file, then the environment.
// An empty path looks for config.yaml in the working directory. Environment
// keys are the upper-cased dotted key with "." replaced by "_", for example
// STORAGE_DSN or AUTH_SECRET.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		log.Printf("[config] no config file found, using defaults and environment")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQL, BackendDynamoDB:
	default:
		return fmt.Errorf("unsupported storage.backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendSQL {
		switch c.Storage.Driver {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("unsupported storage.driver %q", c.Storage.Driver)
		}
	}
	switch c.Ledger.Backend {
	case BackendRedis, BackendDynamoDB:
	default:
		return fmt.Errorf("unsupported ledger.backend %q", c.Ledger.Backend)
	}
	switch c.Mailbox.Backend {
	case BackendSQL, BackendDynamoDB, BackendLog:
	default:
		return fmt.Errorf("unsupported mailbox.backend %q", c.Mailbox.Backend)
	}
	if c.Mailbox.Backend == BackendSQL && c.Storage.Backend != BackendSQL {
		return errors.New("mailbox.backend sql requires storage.backend sql")
	}
	if c.Mailbox.Workers < 1 {
		return errors.New("mailbox.workers must be at least 1")
	}
	return nil
}
