// Package config собирает настройки утилит из флагов, переменных
// окружения и значений по умолчанию.
//
// Приоритет: флаг командной строки > переменная окружения > default.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/shaiso/rabbitwork/internal/mq"
)

// Ключи конфигурации (совпадают с именами переменных окружения).
const (
	KeyRabbitMQURL = "RABBITMQ_URL"
	KeyDBURL       = "DB_URL"
	KeyMetricsAddr = "METRICS_ADDR"
	KeyLogLevel    = "LOG_LEVEL"
	KeyLogFormat   = "LOG_FORMAT"
	KeyConfirm     = "PUBLISH_CONFIRM"
)

// Имена флагов, которые привязываются к ключам.
var flagKeys = map[string]string{
	"url":          KeyRabbitMQURL,
	"db-url":       KeyDBURL,
	"metrics-addr": KeyMetricsAddr,
	"log-level":    KeyLogLevel,
	"log-format":   KeyLogFormat,
	"confirm":      KeyConfirm,
}

// Config — настройки утилит.
type Config struct {
	// RabbitMQURL — адрес брокера.
	RabbitMQURL string

	// DBURL — DSN PostgreSQL для журнала логов (пусто — журнал выключен).
	DBURL string

	// MetricsAddr — адрес HTTP-сервера метрик (пусто — выключен).
	MetricsAddr string

	// LogLevel — DEBUG, INFO, WARN, ERROR.
	LogLevel string

	// LogFormat — json или text.
	LogFormat string

	// Confirm — ждать publisher confirm от брокера.
	Confirm bool
}

// BindFlags регистрирует общие флаги.
func BindFlags(flags *pflag.FlagSet) {
	flags.String("url", "", "RabbitMQ URL (env RABBITMQ_URL)")
	flags.String("log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (env LOG_LEVEL)")
	flags.String("log-format", "", "Log format: json or text (env LOG_FORMAT)")
}

// BindPublishFlags регистрирует флаги издателей.
func BindPublishFlags(flags *pflag.FlagSet) {
	flags.Bool("confirm", false, "Wait for broker publisher confirm (env PUBLISH_CONFIRM)")
}

// BindConsumeFlags регистрирует флаги потребителей.
func BindConsumeFlags(flags *pflag.FlagSet) {
	flags.String("metrics-addr", "", "Serve /metrics and /healthz on this address (env METRICS_ADDR)")
}

// BindStoreFlags регистрирует флаги журнала.
func BindStoreFlags(flags *pflag.FlagSet) {
	flags.String("db-url", "", "PostgreSQL DSN to journal received messages (env DB_URL)")
}

// Load читает конфигурацию. flags может быть nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyRabbitMQURL, mq.DefaultURL())
	v.SetDefault(KeyDBURL, "")
	v.SetDefault(KeyMetricsAddr, "")
	v.SetDefault(KeyLogLevel, "INFO")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyConfirm, false)

	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	return &Config{
		RabbitMQURL: v.GetString(KeyRabbitMQURL),
		DBURL:       v.GetString(KeyDBURL),
		MetricsAddr: v.GetString(KeyMetricsAddr),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		Confirm:     v.GetBool(KeyConfirm),
	}, nil
}
