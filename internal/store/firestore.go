package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

const (
	authorizedWalletsCollection     = "authorized_wallets"
	walletMintCountsCollection      = "wallet_mint_counts"
	tierMintCountsCollection        = "tier_mint_counts"
	processedTransactionsCollection = "processed_transactions"
)

// Firestore implements Store on Google Cloud Firestore.
type Firestore struct {
	client            *firestore.Client
	maxMintsPerWallet int
}

// NewFirestore connects to the project's Firestore database. An empty
// credentialsFile falls back to application default credentials.
func NewFirestore(ctx context.Context, projectID, credentialsFile string, maxMintsPerWallet int) (*Firestore, error) {
	var (
		client *firestore.Client
		err    error
	)
	if credentialsFile != "" {
		client, err = firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &Firestore{client: client, maxMintsPerWallet: maxMintsPerWallet}, nil
}

// MaxMintsPerWallet returns the configured per-wallet cap.
func (s *Firestore) MaxMintsPerWallet() int {
	return s.maxMintsPerWallet
}

func (s *Firestore) Close() error {
	return s.client.Close()
}
