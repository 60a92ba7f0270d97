package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// DatabaseURL enables the durable event archive when set. The in-process
	// ledger remains authoritative either way.
	DatabaseURL    string
	ArchiveWorkers int

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// OwnerAddress is the genesis primary admin. SecondaryAdminAddress is the
	// fixed trust anchor; it cannot be changed at runtime.
	OwnerAddress          string
	SecondaryAdminAddress string

	// ListingFee is the minimum attached value for creating a campaign; the
	// full attached value is credited to the fee ledger.
	ListingFee decimal.Decimal

	// FeeRateBasisPoints is the protocol fee retained on campaign completion.
	FeeRateBasisPoints int64

	// StrictPledgePayment requires the pledge payment to equal the share
	// price exactly. When false, overpayment is accepted and the surplus is
	// credited to the backer's refund balance.
	StrictPledgePayment bool

	RateLimit      string
	AllowedOrigins []string

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Env vars override .env values which override defaults.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ARCHIVE_WORKERS", 4)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "crowdfund-ledger")
	viper.SetDefault("OWNER_ADDRESS", "0xab5801a7d398351b8be11c439e05c5b3259aec9b")
	viper.SetDefault("SECONDARY_ADMIN_ADDRESS", "0x153dfef4355e823dcb0f48f9a81fd255dc2fe375")
	viper.SetDefault("LISTING_FEE", "20000000000000000")
	viper.SetDefault("FEE_RATE_BASIS_POINTS", 200)
	viper.SetDefault("STRICT_PLEDGE_PAYMENT", true)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://app.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL not set. Event archive disabled; the event log is in-memory only.")
	}
	cfg.ArchiveWorkers = viper.GetInt("ARCHIVE_WORKERS")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.OwnerAddress = viper.GetString("OWNER_ADDRESS")
	cfg.SecondaryAdminAddress = viper.GetString("SECONDARY_ADMIN_ADDRESS")

	listingFeeStr := viper.GetString("LISTING_FEE")
	listingFee, err := decimal.NewFromString(listingFeeStr)
	if err != nil || listingFee.Sign() < 0 || !listingFee.IsInteger() {
		return nil, fmt.Errorf("invalid LISTING_FEE %q: must be a non-negative integer", listingFeeStr)
	}
	cfg.ListingFee = listingFee

	cfg.FeeRateBasisPoints = viper.GetInt64("FEE_RATE_BASIS_POINTS")
	if cfg.FeeRateBasisPoints < 0 || cfg.FeeRateBasisPoints > 10000 {
		return nil, fmt.Errorf("invalid FEE_RATE_BASIS_POINTS %d: must be within [0, 10000]", cfg.FeeRateBasisPoints)
	}

	cfg.StrictPledgePayment = viper.GetBool("STRICT_PLEDGE_PAYMENT")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AllowedOrigins = strings.Split(viper.GetString("ALLOWED_ORIGINS"), ",")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}
