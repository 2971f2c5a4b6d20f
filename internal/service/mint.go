package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nft-mint-gateway/internal/ledger"
	"github.com/nft-mint-gateway/internal/metrics"
	"github.com/nft-mint-gateway/internal/solana"
	"github.com/nft-mint-gateway/internal/store"
	"github.com/nft-mint-gateway/internal/tier"
)

// Chain abstracts the on-chain operations the pipeline performs: payment
// inspection, independent transaction verification, and the mint itself.
type Chain interface {
	PaymentAmount(ctx context.Context, signature string) (int64, error)
	VerifyTransaction(ctx context.Context, signature string) error
	MintNFT(ctx context.Context, ownerWallet string, meta solana.Metadata) (*solana.MintResult, error)
}

// Ledger abstracts the identifier ledger's allocation protocol.
type Ledger interface {
	Allocate(maxSupply int) (int, error)
	ReserveID(id int) error
	Release(id int)
	Commit(id int, advance bool) error
	IsMinted(id int) bool
	LastMintedID() int
	MintedCount() int
}

// CollectionConfig is the immutable collection identity and supply policy.
// It is copied by value into the service at construction and never mutated,
// so concurrent requests always observe a consistent view.
type CollectionConfig struct {
	Name                 string
	Symbol               string
	MetadataBaseURL      string
	ImageBaseURL         string
	SellerFeeBasisPoints uint16
	MaxSupply            int
}

// NFTName renders the display name for a collection item.
func (c CollectionConfig) NFTName(id int) string {
	return fmt.Sprintf("%s #%04d", c.Name, id)
}

// MetadataURI returns the off-chain metadata location for a collection item.
func (c CollectionConfig) MetadataURI(id int) string {
	return fmt.Sprintf("%s/%d.json", strings.TrimRight(c.MetadataBaseURL, "/"), id)
}

// ImageURI returns the image location for a collection item.
func (c CollectionConfig) ImageURI(id int) string {
	return fmt.Sprintf("%s/%d.png", strings.TrimRight(c.ImageBaseURL, "/"), id)
}

// MintOutcome is the result of a successful mint. Degraded lists bookkeeping
// steps that failed after the NFT was already minted on chain; an empty slice
// means every record was written.
type MintOutcome struct {
	NFTID       int      `json:"nftId"`
	NFTNumber   int      `json:"nftNumber"`
	Name        string   `json:"name"`
	MintAddress string   `json:"mintAddress"`
	Signature   string   `json:"signature"`
	MetadataURI string   `json:"metadataUrl"`
	ImageURI    string   `json:"imageUrl"`
	Tier        string   `json:"tier"`
	PriceSOL    float64  `json:"priceSol"`
	WalletMints int      `json:"walletMints"`
	Degraded    []string `json:"degraded,omitempty"`
}

// MintService runs the admission pipeline for paid mints and the privileged
// airdrop path.
type MintService struct {
	cfg      CollectionConfig
	store    store.Store
	ledger   Ledger
	chain    Chain
	schedule *tier.Schedule

	now func() time.Time
}

func NewMintService(cfg CollectionConfig, st store.Store, led Ledger, chain Chain, schedule *tier.Schedule) *MintService {
	return &MintService{
		cfg:      cfg,
		store:    st,
		ledger:   led,
		chain:    chain,
		schedule: schedule,
		now:      time.Now,
	}
}

// Collection returns the immutable collection configuration.
func (s *MintService) Collection() CollectionConfig {
	return s.cfg
}

// Mint admits a paid mint request. Every gate runs before any state is
// mutated: a rejected request leaves counters, the replay set, and the ledger
// untouched. Once the NFT is minted on chain the request is a success; the
// four bookkeeping writes that follow are best effort and reported in
// MintOutcome.Degraded when they fail.
func (s *MintService) Mint(ctx context.Context, wallet, paymentSignature string) (*MintOutcome, error) {
	metrics.MintAttempts.Inc()

	if wallet == "" || paymentSignature == "" {
		return nil, s.reject(NewBadRequest(CodeInvalidRequest, "userWallet and paymentSignature are required"))
	}

	now := s.now()
	activeTier := s.schedule.Current(now)
	if activeTier == nil {
		err := NewGone(CodeNoActiveTier, "no pricing tier is currently active")
		if next := s.schedule.Next(now); next != nil {
			err.WithDetail("nextTier", next.Name).
				WithDetail("startsAt", next.StartTime.UTC().Format(time.RFC3339))
		}
		return nil, s.reject(err)
	}

	// Tier capacity is a fail-open gate: an unreadable counter must not
	// block the drop, the transactional increment still bounds real supply.
	tierCount, err := s.store.TierMintCount(ctx, activeTier.Name)
	if err != nil {
		log.Warn().Err(err).Str("tier", activeTier.Name).Msg("tier counter unavailable, admitting")
		tierCount = 0
	}
	if tierCount >= activeTier.MaxSupply {
		err := NewGone(CodeTierSupplyExhausted, fmt.Sprintf("tier %q is sold out", activeTier.Name)).
			WithDetail("tier", activeTier.Name).
			WithDetail("maxSupply", activeTier.MaxSupply)
		if next := s.schedule.Next(now); next != nil {
			err.WithDetail("nextTier", next.Name)
		}
		return nil, s.reject(err)
	}

	if !s.store.IsAuthorized(ctx, wallet) {
		return nil, s.reject(NewForbidden(CodeWalletNotAuthorized,
			"wallet is not authorized to mint or has reached its mint limit").
			WithDetail("wallet", wallet).
			WithDetail("resolution", "contact the team to get whitelisted"))
	}

	paid, err := s.chain.PaymentAmount(ctx, paymentSignature)
	if err != nil {
		return nil, s.reject(NewBadRequest(CodeTxVerificationFail,
			"payment transaction could not be verified").
			WithDetail("reason", err.Error()))
	}
	if paid != activeTier.PriceLamports {
		return nil, s.reject(NewConflict(CodeInsufficientPayment,
			fmt.Sprintf("payment must be exactly %.2f SOL for tier %q", activeTier.PriceSOL(), activeTier.Name)).
			WithDetail("expectedLamports", activeTier.PriceLamports).
			WithDetail("receivedLamports", paid).
			WithDetail("tier", activeTier.Name))
	}

	seen, err := s.store.Seen(ctx, paymentSignature)
	if err != nil {
		return nil, s.reject(NewInternal(CodeInternal, "duplicate check failed"))
	}
	if seen {
		return nil, s.reject(NewConflict(CodeDuplicateTx,
			"this payment transaction has already been used for a mint").
			WithDetail("signature", paymentSignature))
	}

	if err := s.chain.VerifyTransaction(ctx, paymentSignature); err != nil {
		return nil, s.reject(NewBadRequest(CodeTxVerificationFail,
			"transaction verification failed").
			WithDetail("reason", err.Error()))
	}

	id, err := s.ledger.Allocate(s.cfg.MaxSupply)
	if errors.Is(err, ledger.ErrSupplyExhausted) {
		return nil, s.reject(NewGone(CodeMaxSupplyReached,
			fmt.Sprintf("all %d NFTs have been minted", s.cfg.MaxSupply)).
			WithDetail("maxSupply", s.cfg.MaxSupply))
	}
	if err != nil {
		return nil, s.reject(NewInternal(CodeInternal, err.Error()))
	}

	minted, err := s.chain.MintNFT(ctx, wallet, solana.Metadata{
		Name:                 s.cfg.NFTName(id),
		Symbol:               s.cfg.Symbol,
		URI:                  s.cfg.MetadataURI(id),
		SellerFeeBasisPoints: s.cfg.SellerFeeBasisPoints,
	})
	if err != nil {
		if errors.Is(err, solana.ErrFinalizeTimeout) {
			// The transaction may still land. Keep the id reserved so the
			// number cannot be handed to another mint.
			log.Error().Err(err).Int("nftId", id).Str("wallet", wallet).Msg("mint outcome ambiguous, keeping id reserved")
			return nil, s.reject(NewInternal(CodeInternal,
				"mint finalization timed out, status unknown").
				WithDetail("nftId", id))
		}
		s.ledger.Release(id)
		log.Error().Err(err).Int("nftId", id).Str("wallet", wallet).Msg("mint transaction failed")
		return nil, s.reject(NewInternal(CodeInternal, fmt.Sprintf("minting failed: %v", err)))
	}

	outcome := &MintOutcome{
		NFTID:       id,
		NFTNumber:   id + 1,
		Name:        s.cfg.NFTName(id),
		MintAddress: minted.MintAddress,
		Signature:   minted.Signature,
		MetadataURI: s.cfg.MetadataURI(id),
		ImageURI:    s.cfg.ImageURI(id),
		Tier:        activeTier.Name,
		PriceSOL:    activeTier.PriceSOL(),
	}

	// The NFT exists on chain from here on. Bookkeeping failures degrade
	// the records but never fail the request.
	if err := s.ledger.Commit(id, true); err != nil {
		s.degrade(outcome, "ledger", id, err)
	}
	if err := s.store.Mark(ctx, paymentSignature); err != nil {
		s.degrade(outcome, "replay", id, err)
	}
	if count, err := s.store.IncrementWallet(ctx, wallet, minted.Signature); err != nil {
		s.degrade(outcome, "wallet_count", id, err)
	} else {
		outcome.WalletMints = count
	}
	if _, err := s.store.IncrementTier(ctx, activeTier.Name, minted.Signature, wallet); err != nil {
		s.degrade(outcome, "tier_count", id, err)
	}

	metrics.MintSuccesses.Inc()
	log.Info().
		Int("nftId", id).
		Str("wallet", wallet).
		Str("tier", activeTier.Name).
		Str("mintAddress", minted.MintAddress).
		Strs("degraded", outcome.Degraded).
		Msg("mint completed")
	return outcome, nil
}

func (s *MintService) reject(err *Error) error {
	metrics.MintRejections.WithLabelValues(err.Code).Inc()
	return err
}

func (s *MintService) degrade(out *MintOutcome, step string, id int, err error) {
	out.Degraded = append(out.Degraded, step)
	metrics.BookkeepingFailures.WithLabelValues(step).Inc()
	log.Error().Err(err).Int("nftId", id).Str("step", step).Msg("post-mint bookkeeping failed")
}
