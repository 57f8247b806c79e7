package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	// Comma-separated proxy IPs/CIDRs whose forwarding headers are trusted.
	// Empty trusts every peer.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// MongoDB configuration. Invoices are only recorded when PersistInvoices is set.
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	DatabaseName    string `mapstructure:"DATABASE_NAME"`
	PersistInvoices bool   `mapstructure:"PERSIST_INVOICES"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Booking service.
	BookingAPIBaseURL string        `mapstructure:"BOOKING_API_BASE_URL"`
	BookingAPITimeout time.Duration `mapstructure:"BOOKING_API_TIMEOUT"`

	// Cloudinary.
	CloudinaryCloudName     string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey        string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret     string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder        string `mapstructure:"CLOUDINARY_FOLDER"`
	CloudinaryResourceType  string `mapstructure:"CLOUDINARY_RESOURCE_TYPE"`
	CloudinaryForceDownload bool   `mapstructure:"CLOUDINARY_FORCE_DOWNLOAD"`

	// Invoice pipeline.
	AmountPolicy string `mapstructure:"AMOUNT_POLICY"`
	IssuerName   string `mapstructure:"ISSUER_NAME"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("TRUSTED_PROXIES", []string{})
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "hyperinvoice")
	v.SetDefault("PERSIST_INVOICES", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("BOOKING_API_BASE_URL", "https://hyper-render-prod.onrender.com")
	v.SetDefault("BOOKING_API_TIMEOUT", 30*time.Second)
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("CLOUDINARY_FOLDER", "invoices")
	v.SetDefault("CLOUDINARY_RESOURCE_TYPE", "image")
	v.SetDefault("CLOUDINARY_FORCE_DOWNLOAD", true)
	v.SetDefault("AMOUNT_POLICY", "lenient")
	v.SetDefault("ISSUER_NAME", "HyperInvoice")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
