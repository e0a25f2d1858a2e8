package config

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type RedisConfig struct {
	Addr string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string
}

func (c MinioConfig) Enabled() bool {
	return c.Endpoint != ""
}

type CacheConfig struct {
	Driver   string
	IndexTTL time.Duration
	Size     int
}

type AuthConfig struct {
	AccessSecret []byte
	TokenTTL     time.Duration
}

func LoadDBConfig() DBConfig {
	return DBConfig{
		Username: os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		DBName:   os.Getenv("POSTGRES_DATABASE"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
}

func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr: os.Getenv("REDIS_ADDR"),
	}
}

func LoadMinioConfig() MinioConfig {
	useSSL, _ := strconv.ParseBool(os.Getenv("MINIO_USE_SSL"))
	return MinioConfig{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		UseSSL:    useSSL,
		Bucket:    viper.GetString("images.bucket"),
		PublicURL: viper.GetString("images.public_url"),
	}
}

// LoadCacheConfig falls back to a 20 second index window when cache.index_ttl is unset.
func LoadCacheConfig() CacheConfig {
	viper.SetDefault("cache.driver", DriverRedis)
	viper.SetDefault("cache.index_ttl", 20*time.Second)
	viper.SetDefault("cache.size", 1024)

	return CacheConfig{
		Driver:   viper.GetString("cache.driver"),
		IndexTTL: viper.GetDuration("cache.index_ttl"),
		Size:     viper.GetInt("cache.size"),
	}
}

func LoadAuthConfig() AuthConfig {
	viper.SetDefault("auth.token_ttl", 24*time.Hour)

	return AuthConfig{
		AccessSecret: []byte(os.Getenv("ACCESS_SECRET")),
		TokenTTL:     viper.GetDuration("auth.token_ttl"),
	}
}

func StorageDriver() string {
	viper.SetDefault("storage.driver", DriverPostgres)
	return viper.GetString("storage.driver")
}
