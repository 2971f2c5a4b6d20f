package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nft-mint-gateway/internal/model"
)

// IsAuthorized implements the authorization gate. It fails closed: any read
// failure on the whitelist record or the mint counter means not authorized.
func (s *Firestore) IsAuthorized(ctx context.Context, wallet string) bool {
	snap, err := s.client.Collection(authorizedWalletsCollection).Doc(wallet).Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			log.Error().Err(err).Str("wallet", wallet).Msg("failed to read whitelist record")
		}
		return false
	}

	var rec model.AuthorizedWallet
	if err := snap.DataTo(&rec); err != nil {
		log.Error().Err(err).Str("wallet", wallet).Msg("malformed whitelist record")
		return false
	}
	if rec.Expired(time.Now().UTC()) {
		log.Debug().Str("wallet", wallet).Msg("wallet authorization expired")
		return false
	}

	count, err := s.WalletMintCount(ctx, wallet)
	if err != nil {
		log.Error().Err(err).Str("wallet", wallet).Msg("failed to read wallet mint count")
		return false
	}
	if count >= s.maxMintsPerWallet {
		log.Debug().Str("wallet", wallet).Int("mintCount", count).Msg("wallet at mint cap")
		return false
	}
	return true
}

// Add upserts a whitelist record. Last write wins.
func (s *Firestore) Add(ctx context.Context, wallet string, expiresAt *time.Time) error {
	now := time.Now().UTC()
	_, err := s.client.Collection(authorizedWalletsCollection).Doc(wallet).Set(ctx, model.AuthorizedWallet{
		WalletAddress: wallet,
		AddedAt:       now,
		ExpiresAt:     expiresAt,
		LastUpdated:   now,
	})
	return err
}

// BatchAdd upserts many whitelist records in one bulk write. Individual
// write failures only surface through each job's result, so every job is
// checked after End; the first failure is returned.
func (s *Firestore) BatchAdd(ctx context.Context, wallets []string, expiresAt *time.Time) error {
	now := time.Now().UTC()
	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(wallets))
	for _, wallet := range wallets {
		ref := s.client.Collection(authorizedWalletsCollection).Doc(wallet)
		job, err := bw.Set(ref, model.AuthorizedWallet{
			WalletAddress: wallet,
			AddedAt:       now,
			ExpiresAt:     expiresAt,
			LastUpdated:   now,
		})
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("authorizing wallet %s: %w", wallets[i], err)
		}
	}
	return nil
}

// Remove deletes a whitelist record. Removing an absent wallet is not an
// error.
func (s *Firestore) Remove(ctx context.Context, wallet string) error {
	_, err := s.client.Collection(authorizedWalletsCollection).Doc(wallet).Delete(ctx)
	return err
}

// List returns whitelist records annotated with usage. When includeUsed is
// false, wallets at the mint cap are filtered out.
func (s *Firestore) List(ctx context.Context, includeUsed bool) ([]model.WalletSummary, error) {
	it := s.client.Collection(authorizedWalletsCollection).Documents(ctx)
	defer it.Stop()

	var out []model.WalletSummary
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var rec model.AuthorizedWallet
		if err := snap.DataTo(&rec); err != nil {
			return nil, err
		}

		count, err := s.WalletMintCount(ctx, snap.Ref.ID)
		if err != nil {
			return nil, err
		}

		summary := model.WalletSummary{
			AuthorizedWallet: rec,
			MintCount:        count,
			CanMint:          count < s.maxMintsPerWallet,
		}
		if includeUsed || summary.CanMint {
			out = append(out, summary)
		}
	}
	return out, nil
}

// MintStatus returns the public usage view for a wallet; absent counters
// read as zero mints.
func (s *Firestore) MintStatus(ctx context.Context, wallet string) (*model.WalletStatus, error) {
	snap, err := s.client.Collection(walletMintCountsCollection).Doc(wallet).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return &model.WalletStatus{
			WalletAddress:    wallet,
			MaxAllowed:       s.maxMintsPerWallet,
			Remaining:        s.maxMintsPerWallet,
			MintTransactions: []string{},
			CanMint:          true,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	var rec model.WalletMintCount
	if err := snap.DataTo(&rec); err != nil {
		return nil, err
	}

	remaining := s.maxMintsPerWallet - rec.MintCount
	if remaining < 0 {
		remaining = 0
	}
	return &model.WalletStatus{
		WalletAddress:    wallet,
		MintCount:        rec.MintCount,
		MaxAllowed:       s.maxMintsPerWallet,
		Remaining:        remaining,
		MintTransactions: rec.MintTransactions,
		CanMint:          rec.MintCount < s.maxMintsPerWallet,
		FirstMintAt:      &rec.FirstMintAt,
		LastMintAt:       &rec.LastMintAt,
	}, nil
}

// ResetMintCount deletes a wallet's counter document.
func (s *Firestore) ResetMintCount(ctx context.Context, wallet string) error {
	_, err := s.client.Collection(walletMintCountsCollection).Doc(wallet).Delete(ctx)
	return err
}

// Stats aggregates whitelist and counter collections into one snapshot.
func (s *Firestore) Stats(ctx context.Context) (*model.MintingStats, error) {
	authorized, err := s.client.Collection(authorizedWalletsCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	stats := &model.MintingStats{
		TotalAuthorizedWallets: len(authorized),
		MaxMintsPerWallet:      s.maxMintsPerWallet,
		TierStats:              make(map[string]model.TierMintCount),
	}

	it := s.client.Collection(walletMintCountsCollection).Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var rec model.WalletMintCount
		if err := snap.DataTo(&rec); err != nil {
			return nil, err
		}
		stats.TotalMints += rec.MintCount
		if rec.MintCount > 0 {
			stats.WalletsWithMints++
		}
		if rec.MintCount >= s.maxMintsPerWallet {
			stats.WalletsAtMaxLimit++
		}
	}

	tit := s.client.Collection(tierMintCountsCollection).Documents(ctx)
	defer tit.Stop()
	for {
		snap, err := tit.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var rec model.TierMintCount
		if err := snap.DataTo(&rec); err != nil {
			return nil, err
		}
		stats.TierStats[snap.Ref.ID] = rec
	}

	return stats, nil
}
