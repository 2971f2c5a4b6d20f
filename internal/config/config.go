package config

import (
	"context"
	"fmt"
	"time"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/sethvargo/go-envconfig"

	"github.com/nft-mint-gateway/internal/tier"
)

type Config struct {
	SolanaRPCURL             string `env:"SOLANA_RPC_URL,required"`
	PayerSecretKey           string `env:"PAYER_SECRET_KEY,required"`
	FirestoreProject         string `env:"FIRESTORE_PROJECT_ID,required"`
	FirestoreCredentialsFile string `env:"FIRESTORE_CREDENTIALS_FILE"`
	AdminKey                 string `env:"ADMIN_KEY,required"`
	AirdropToken             string `env:"AIRDROP_TOKEN,required"`

	Port        int      `env:"PORT,default=8080"`
	LogLevel    string   `env:"LOG_LEVEL,default=info"`
	CORSOrigins []string `env:"CORS_ORIGINS"`

	// Brute-force policy for the admin-key and airdrop-token gates.
	AuthMaxFailures   int           `env:"AUTH_MAX_FAILURES,default=5"`
	AuthFailureWindow time.Duration `env:"AUTH_FAILURE_WINDOW,default=5m"`
	AuthBlockDuration time.Duration `env:"AUTH_BLOCK_DURATION,default=15m"`

	// HTTP server timeouts. The write timeout is disabled by default: mint
	// requests block on chain finalization and the event stream is
	// long-lived, both would be cut off by a server-wide deadline.
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT,default=15s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT,default=0"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT,default=60s"`

	// Collection identity and supply policy
	CollectionName       string `env:"COLLECTION_NAME,default=Space Explorers"`
	CollectionSymbol     string `env:"COLLECTION_SYMBOL,default=SPACE"`
	MetadataBaseURL      string `env:"METADATA_BASE_URL,required"`
	ImageBaseURL         string `env:"IMAGE_BASE_URL,required"`
	SellerFeeBasisPoints uint16 `env:"SELLER_FEE_BASIS_POINTS,default=500"`
	MaxSupply            int    `env:"MAX_SUPPLY,default=2500"`
	MaxMintsPerWallet    int    `env:"MAX_MINTS_PER_WALLET,default=2"`

	// PricingTiers is a JSON array of {name, startTime, endTime, maxSupply,
	// priceSOL} with unix-second timestamps. Empty selects the built-in
	// launch schedule.
	PricingTiers string `env:"PRICING_TIERS"`

	FinalizeTimeout time.Duration `env:"FINALIZE_TIMEOUT,default=90s"`

	// Local ledger file plus the optional GitHub mirror. Mirroring is
	// enabled when all three of token, owner and repo are set.
	TrackingFile string `env:"MINT_TRACKING_FILE,default=mint-tracking.json"`
	GitHubToken  string `env:"GITHUB_TOKEN"`
	GitHubOwner  string `env:"GITHUB_OWNER"`
	GitHubRepo   string `env:"GITHUB_REPO"`
	GitHubBranch string `env:"GITHUB_BRANCH,default=main"`
	GitHubPath   string `env:"GITHUB_PATH,default=mint-tracking.json"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := types.AccountFromBase58(c.PayerSecretKey); err != nil {
		return fmt.Errorf("PAYER_SECRET_KEY is not a valid base58 secret key: %w", err)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxSupply < 1 {
		return fmt.Errorf("MAX_SUPPLY must be positive, got %d", c.MaxSupply)
	}
	if c.MaxMintsPerWallet < 1 {
		return fmt.Errorf("MAX_MINTS_PER_WALLET must be positive, got %d", c.MaxMintsPerWallet)
	}

	if _, err := c.Schedule(); err != nil {
		return err
	}

	if c.MirrorEnabled() {
		if c.GitHubToken == "" || c.GitHubOwner == "" || c.GitHubRepo == "" {
			return fmt.Errorf("GITHUB_TOKEN, GITHUB_OWNER and GITHUB_REPO must all be set to enable mirroring")
		}
	}

	return nil
}

// Schedule parses PRICING_TIERS, falling back to the built-in launch
// schedule when unset.
func (c *Config) Schedule() (*tier.Schedule, error) {
	if c.PricingTiers == "" {
		return tier.DefaultSchedule(), nil
	}
	return tier.ParseSchedule(c.PricingTiers)
}

// MirrorEnabled reports whether any of the GitHub mirror settings are
// present; validate ensures they are then all present.
func (c *Config) MirrorEnabled() bool {
	return c.GitHubToken != "" || c.GitHubOwner != "" || c.GitHubRepo != ""
}
