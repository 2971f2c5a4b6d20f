package store

import (
	"context"
	"time"

	"github.com/nft-mint-gateway/internal/model"
)

// WalletStore defines whitelist management and the authorization gate.
type WalletStore interface {
	// IsAuthorized reports whether wallet may mint: a whitelist record
	// exists, is not expired, and the wallet's mint count is below the
	// per-wallet cap. Any read failure counts as not authorized.
	IsAuthorized(ctx context.Context, wallet string) bool
	Add(ctx context.Context, wallet string, expiresAt *time.Time) error
	BatchAdd(ctx context.Context, wallets []string, expiresAt *time.Time) error
	Remove(ctx context.Context, wallet string) error
	List(ctx context.Context, includeUsed bool) ([]model.WalletSummary, error)
	MintStatus(ctx context.Context, wallet string) (*model.WalletStatus, error)
	ResetMintCount(ctx context.Context, wallet string) error
	Stats(ctx context.Context) (*model.MintingStats, error)
}

// CounterStore defines the transactional per-wallet and per-tier counters.
// Increments are atomic per document: of two racing increments exactly one
// takes the create branch and the other serializes as an update.
type CounterStore interface {
	WalletMintCount(ctx context.Context, wallet string) (int, error)
	TierMintCount(ctx context.Context, tierName string) (int, error)
	IncrementWallet(ctx context.Context, wallet, mintSignature string) (int, error)
	IncrementTier(ctx context.Context, tierName, mintSignature, wallet string) (int, error)
	ResetTier(ctx context.Context, tierName string) error
}

// ReplayStore is the durable payment-signature dedup set, shared across
// instances and restarts.
type ReplayStore interface {
	Seen(ctx context.Context, signature string) (bool, error)
	// Mark records the signature as consumed; marking an already-consumed
	// signature is not an error.
	Mark(ctx context.Context, signature string) error
}

// Store combines all persistence concerns backed by the document store.
type Store interface {
	WalletStore
	CounterStore
	ReplayStore
}
