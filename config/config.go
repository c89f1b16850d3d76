package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the process reads from the environment or
// config.yaml. Populated once by LoadConfig before any service starts.
type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"`

	MongoURL  string `mapstructure:"MONGO_URL"`
	MongoDB   string `mapstructure:"MONGO_DB"`
	JWTSecret string `mapstructure:"JWT_SECRET"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	StripeSecretKey         string `mapstructure:"STRIPE_SECRET_KEY"`
	FirebaseCredentialsPath string `mapstructure:"FIREBASE_CREDENTIALS_PATH"`

	RateLimitPerSecond float64 `mapstructure:"RATE_LIMIT_PER_SECOND"`
	RateLimitBurst     int     `mapstructure:"RATE_LIMIT_BURST"`

	// ReserveGateTimeout bounds how long a booking request waits on a
	// consultant's schedule gate before failing retryably.
	ReserveGateTimeout time.Duration `mapstructure:"RESERVE_GATE_TIMEOUT"`

	// PendingBookingTTL is how long an unconfirmed booking holds its slot
	// before the sweeper cancels it.
	PendingBookingTTL time.Duration `mapstructure:"PENDING_BOOKING_TTL"`
}

var AppConfig Config

// LoadConfig reads config.yaml if present, then the environment, with sane
// defaults for local development.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("MONGO_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "consultly")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("RATE_LIMIT_PER_SECOND", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RESERVE_GATE_TIMEOUT", 2*time.Second)
	viper.SetDefault("PENDING_BOOKING_TTL", 30*time.Minute)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("config file not found, relying on environment: %v", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	if AppConfig.JWTSecret == "" && AppConfig.Env != "development" {
		log.Fatal("JWT_SECRET must be set outside development")
	}
}
