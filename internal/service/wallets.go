package service

import (
	"context"
	"time"

	"github.com/nft-mint-gateway/internal/model"
	"github.com/nft-mint-gateway/internal/store"
)

// WalletService exposes whitelist queries and admin management on top of the
// document store, mapping storage failures to domain errors.
type WalletService struct {
	store store.Store
}

func NewWalletService(st store.Store) *WalletService {
	return &WalletService{store: st}
}

// Check reports whether a wallet is currently allowed to mint.
func (s *WalletService) Check(ctx context.Context, wallet string) (bool, error) {
	if wallet == "" {
		return false, NewBadRequest(CodeInvalidRequest, "walletAddress is required")
	}
	return s.store.IsAuthorized(ctx, wallet), nil
}

// Status returns a wallet's mint usage. Unknown wallets get a zeroed status
// rather than an error.
func (s *WalletService) Status(ctx context.Context, wallet string) (*model.WalletStatus, error) {
	if wallet == "" {
		return nil, NewBadRequest(CodeInvalidRequest, "walletAddress is required")
	}
	status, err := s.store.MintStatus(ctx, wallet)
	if err != nil {
		return nil, NewInternal(CodeInternal, "failed to read wallet status")
	}
	return status, nil
}

// Add whitelists a single wallet, optionally with an expiry.
func (s *WalletService) Add(ctx context.Context, wallet string, expiresAt *time.Time) error {
	if wallet == "" {
		return NewBadRequest(CodeInvalidRequest, "walletAddress is required")
	}
	if err := s.store.Add(ctx, wallet, expiresAt); err != nil {
		return NewInternal(CodeInternal, "failed to authorize wallet")
	}
	return nil
}

// BatchAdd whitelists several wallets in one write batch.
func (s *WalletService) BatchAdd(ctx context.Context, wallets []string, expiresAt *time.Time) error {
	if len(wallets) == 0 {
		return NewBadRequest(CodeInvalidRequest, "walletAddresses must not be empty")
	}
	for _, w := range wallets {
		if w == "" {
			return NewBadRequest(CodeInvalidRequest, "walletAddresses must not contain empty entries")
		}
	}
	if err := s.store.BatchAdd(ctx, wallets, expiresAt); err != nil {
		return NewInternal(CodeInternal, "failed to authorize wallets")
	}
	return nil
}

// Remove revokes a wallet's authorization.
func (s *WalletService) Remove(ctx context.Context, wallet string) error {
	if wallet == "" {
		return NewBadRequest(CodeInvalidRequest, "walletAddress is required")
	}
	if err := s.store.Remove(ctx, wallet); err != nil {
		return NewInternal(CodeInternal, "failed to remove wallet")
	}
	return nil
}

// List returns all whitelisted wallets with usage, optionally hiding wallets
// that have exhausted their allowance.
func (s *WalletService) List(ctx context.Context, includeUsed bool) ([]model.WalletSummary, error) {
	wallets, err := s.store.List(ctx, includeUsed)
	if err != nil {
		return nil, NewInternal(CodeInternal, "failed to list wallets")
	}
	return wallets, nil
}

// ResetMintCount clears a wallet's usage counter.
func (s *WalletService) ResetMintCount(ctx context.Context, wallet string) error {
	if wallet == "" {
		return NewBadRequest(CodeInvalidRequest, "walletAddress is required")
	}
	if err := s.store.ResetMintCount(ctx, wallet); err != nil {
		return NewInternal(CodeInternal, "failed to reset mint count")
	}
	return nil
}

// Stats returns the aggregate minting statistics.
func (s *WalletService) Stats(ctx context.Context) (*model.MintingStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, NewInternal(CodeInternal, "failed to compute stats")
	}
	return stats, nil
}
