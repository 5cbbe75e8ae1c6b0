package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	PublicURL   string
	JWT         JWTConfig
	Redis       RedisConfig
	MinIO       MinIOConfig
	SMTP        SMTPConfig
	Kafka       KafkaConfig
	Outbox      OutboxConfig
}

type JWTConfig struct {
	Token         string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// SMTPConfig пустой Host отключает отправку почты, письма только логируются
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type KafkaConfig struct {
	Brokers string
	Topic   string
}

type OutboxConfig struct {
	Timeout time.Duration
}

const (
	envConfigName = "CONFIG_NAME"
	envJWTSecret  = "JWT_SECRET"
	envRedisHost  = "REDIS_HOST"
	envRedisPort  = "REDIS_PORT"
	envRedisUser  = "REDIS_USER"
	envRedisPass  = "REDIS_PASSWORD"
	envMinIOKey   = "MINIO_ACCESS_KEY"
	envMinIOSec   = "MINIO_SECRET_KEY"
	envSMTPUser   = "SMTP_USERNAME"
	envSMTPPass   = "SMTP_PASSWORD"
	envKafka      = "KAFKA_BROKERS"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv(envConfigName) != "" {
		configName = os.Getenv(envConfigName)
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	v.SetDefault("ServiceHost", "0.0.0.0")
	v.SetDefault("ServicePort", 8080)
	v.SetDefault("PublicURL", "http://localhost:8080")
	v.SetDefault("JWT.ExpiresIn", "1h")
	v.SetDefault("MinIO.Bucket", "credit-notes")
	v.SetDefault("SMTP.Port", 587)
	v.SetDefault("Kafka.Topic", "support-request-events")
	v.SetDefault("Outbox.Timeout", "10s")

	err = v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	// секрет JWT берём только из окружения
	cfg.JWT.Token = os.Getenv(envJWTSecret)
	if cfg.JWT.Token == "" {
		return nil, fmt.Errorf("%s must be set", envJWTSecret)
	}
	cfg.JWT.SigningMethod = jwt.SigningMethodHS256

	// инициализация Redis конфигурации из env
	cfg.Redis.Host = os.Getenv(envRedisHost)
	cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
	if err != nil {
		return nil, fmt.Errorf("redis port must be int value: %w", err)
	}
	cfg.Redis.Password = os.Getenv(envRedisPass)
	cfg.Redis.User = os.Getenv(envRedisUser)
	cfg.Redis.DialTimeout = 10 * time.Second
	cfg.Redis.ReadTimeout = 10 * time.Second

	if key := os.Getenv(envMinIOKey); key != "" {
		cfg.MinIO.AccessKey = key
	}
	if secret := os.Getenv(envMinIOSec); secret != "" {
		cfg.MinIO.SecretKey = secret
	}
	if user := os.Getenv(envSMTPUser); user != "" {
		cfg.SMTP.Username = user
	}
	if pass := os.Getenv(envSMTPPass); pass != "" {
		cfg.SMTP.Password = pass
	}
	if brokers := os.Getenv(envKafka); brokers != "" {
		cfg.Kafka.Brokers = brokers
	}

	log.Info("config parsed")

	return cfg, nil
}
