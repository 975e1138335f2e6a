package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB          int    `mapstructure:"REDIS_AUTH_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Stripe configuration.
	StripeSecretKey     string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	PaymentEnabled      bool   `mapstructure:"PAYMENT_ENABLED"`

	// Booking rules.
	BookingMinAdvanceMinutes  int    `mapstructure:"BOOKING_MIN_ADVANCE_MINUTES"`
	BookingMaxAdvanceDays     int    `mapstructure:"BOOKING_MAX_ADVANCE_DAYS"`
	BookingAllowCancellation  bool   `mapstructure:"BOOKING_ALLOW_CANCELLATION"`
	BookingCancelDeadlineHrs  int    `mapstructure:"BOOKING_CANCEL_DEADLINE_HOURS"`
	BookingRequireApproval    bool   `mapstructure:"BOOKING_REQUIRE_APPROVAL"`
	BookingTimeZone           string `mapstructure:"BOOKING_TIMEZONE"`
	BookingReminderHoursAhead int    `mapstructure:"BOOKING_REMINDER_HOURS_AHEAD"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "bookify")
	// Secrets default empty so AutomaticEnv picks them up even without a
	// config file; viper only reads env values for keys it knows about.
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	viper.SetDefault("PAYMENT_ENABLED", false)
	viper.SetDefault("BOOKING_MIN_ADVANCE_MINUTES", 0)
	viper.SetDefault("BOOKING_MAX_ADVANCE_DAYS", 0)
	viper.SetDefault("BOOKING_ALLOW_CANCELLATION", true)
	viper.SetDefault("BOOKING_CANCEL_DEADLINE_HOURS", 0)
	viper.SetDefault("BOOKING_REQUIRE_APPROVAL", false)
	viper.SetDefault("BOOKING_TIMEZONE", "")
	viper.SetDefault("BOOKING_REMINDER_HOURS_AHEAD", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
