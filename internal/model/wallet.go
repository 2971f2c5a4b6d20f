package model

import "time"

// AuthorizedWallet is a whitelist entry. Presence of the document plus an
// unexpired ExpiresAt makes the wallet eligible for the authorization gate.
type AuthorizedWallet struct {
	WalletAddress string     `json:"walletAddress" firestore:"walletAddress"`
	AddedAt       time.Time  `json:"addedAt" firestore:"addedAt"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty" firestore:"expiresAt,omitempty"`
	LastUpdated   time.Time  `json:"lastUpdated" firestore:"lastUpdated"`
}

// Expired reports whether the authorization has an expiry in the past.
func (w *AuthorizedWallet) Expired(now time.Time) bool {
	return w.ExpiresAt != nil && w.ExpiresAt.Before(now)
}

// WalletMintCount tracks how many paid mints a wallet has performed.
// Invariant: MintCount == len(MintTransactions).
type WalletMintCount struct {
	WalletAddress    string    `json:"walletAddress" firestore:"walletAddress"`
	MintCount        int       `json:"mintCount" firestore:"mintCount"`
	MintTransactions []string  `json:"mintTransactions" firestore:"mintTransactions"`
	FirstMintAt      time.Time `json:"firstMintAt" firestore:"firstMintAt"`
	LastMintAt       time.Time `json:"lastMintAt" firestore:"lastMintAt"`
	LastUpdated      time.Time `json:"lastUpdated" firestore:"lastUpdated"`
}

// TierMint is one audit entry in a tier's mint history.
type TierMint struct {
	Signature string    `json:"signature" firestore:"signature"`
	Wallet    string    `json:"wallet" firestore:"wallet"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

// TierMintCount tracks consumed supply per pricing tier.
// Invariant: MintCount <= the tier's MaxSupply.
type TierMintCount struct {
	TierName         string     `json:"tierName" firestore:"tierName"`
	MintCount        int        `json:"mintCount" firestore:"mintCount"`
	MintTransactions []TierMint `json:"mintTransactions" firestore:"mintTransactions"`
	FirstMintAt      time.Time  `json:"firstMintAt" firestore:"firstMintAt"`
	LastMintAt       time.Time  `json:"lastMintAt" firestore:"lastMintAt"`
	LastUpdated      time.Time  `json:"lastUpdated" firestore:"lastUpdated"`
}

// WalletStatus is the public mint-count view for a single wallet.
type WalletStatus struct {
	WalletAddress    string     `json:"walletAddress"`
	MintCount        int        `json:"mintCount"`
	MaxAllowed       int        `json:"maxAllowed"`
	Remaining        int        `json:"remaining"`
	MintTransactions []string   `json:"mintTransactions"`
	CanMint          bool       `json:"canMint"`
	FirstMintAt      *time.Time `json:"firstMintAt,omitempty"`
	LastMintAt       *time.Time `json:"lastMintAt,omitempty"`
}

// WalletSummary is an admin-list entry: the whitelist record annotated with
// the wallet's current usage.
type WalletSummary struct {
	AuthorizedWallet
	MintCount int  `json:"mintCount"`
	CanMint   bool `json:"canMint"`
}

// MintingStats is an aggregate snapshot across all wallets and tiers.
type MintingStats struct {
	TotalAuthorizedWallets int                      `json:"totalAuthorizedWallets"`
	TotalMints             int                      `json:"totalMints"`
	WalletsWithMints       int                      `json:"walletsWithMints"`
	WalletsAtMaxLimit      int                      `json:"walletsAtMaxLimit"`
	MaxMintsPerWallet      int                      `json:"maxMintsPerWallet"`
	TierStats              map[string]TierMintCount `json:"tierStats"`
}
