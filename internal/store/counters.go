package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nft-mint-gateway/internal/model"
)

// WalletMintCount reads a wallet's counter; an absent document is zero.
func (s *Firestore) WalletMintCount(ctx context.Context, wallet string) (int, error) {
	snap, err := s.client.Collection(walletMintCountsCollection).Doc(wallet).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var rec model.WalletMintCount
	if err := snap.DataTo(&rec); err != nil {
		return 0, err
	}
	return rec.MintCount, nil
}

// TierMintCount reads a tier's counter; an absent document is zero.
func (s *Firestore) TierMintCount(ctx context.Context, tierName string) (int, error) {
	snap, err := s.client.Collection(tierMintCountsCollection).Doc(tierName).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var rec model.TierMintCount
	if err := snap.DataTo(&rec); err != nil {
		return 0, err
	}
	return rec.MintCount, nil
}

// IncrementWallet atomically creates or bumps a wallet's counter, appending
// the mint signature to its history. The single-document transaction makes
// racing increments for the same wallet serialize.
func (s *Firestore) IncrementWallet(ctx context.Context, wallet, mintSignature string) (int, error) {
	ref := s.client.Collection(walletMintCountsCollection).Doc(wallet)

	var newCount int
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now().UTC()

		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			newCount = 1
			return tx.Set(ref, model.WalletMintCount{
				WalletAddress:    wallet,
				MintCount:        1,
				MintTransactions: []string{mintSignature},
				FirstMintAt:      now,
				LastMintAt:       now,
				LastUpdated:      now,
			})
		}
		if err != nil {
			return err
		}

		var rec model.WalletMintCount
		if err := snap.DataTo(&rec); err != nil {
			return err
		}
		rec.MintCount++
		rec.MintTransactions = append(rec.MintTransactions, mintSignature)
		rec.LastMintAt = now
		rec.LastUpdated = now
		newCount = rec.MintCount
		return tx.Set(ref, rec)
	})
	return newCount, err
}

// IncrementTier atomically creates or bumps a tier's counter, recording the
// wallet behind each mint for auditability.
func (s *Firestore) IncrementTier(ctx context.Context, tierName, mintSignature, wallet string) (int, error) {
	ref := s.client.Collection(tierMintCountsCollection).Doc(tierName)

	var newCount int
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now().UTC()
		entry := model.TierMint{Signature: mintSignature, Wallet: wallet, Timestamp: now}

		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			newCount = 1
			return tx.Set(ref, model.TierMintCount{
				TierName:         tierName,
				MintCount:        1,
				MintTransactions: []model.TierMint{entry},
				FirstMintAt:      now,
				LastMintAt:       now,
				LastUpdated:      now,
			})
		}
		if err != nil {
			return err
		}

		var rec model.TierMintCount
		if err := snap.DataTo(&rec); err != nil {
			return err
		}
		rec.MintCount++
		rec.MintTransactions = append(rec.MintTransactions, entry)
		rec.LastMintAt = now
		rec.LastUpdated = now
		newCount = rec.MintCount
		return tx.Set(ref, rec)
	})
	return newCount, err
}

// ResetTier deletes a tier's counter document.
func (s *Firestore) ResetTier(ctx context.Context, tierName string) error {
	_, err := s.client.Collection(tierMintCountsCollection).Doc(tierName).Delete(ctx)
	return err
}
