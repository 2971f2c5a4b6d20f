package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nft-mint-gateway/internal/metrics"
	"github.com/nft-mint-gateway/internal/solana"
)

// AirdropOutcome is the result of a privileged free mint.
type AirdropOutcome struct {
	NFTID       int    `json:"nftId"`
	Name        string `json:"name"`
	MintAddress string `json:"mintAddress"`
	Signature   string `json:"signature"`
	MetadataURI string `json:"metadataUri"`
	Recipient   string `json:"recipient"`
}

// Airdrop mints a specific NFT id to recipient without payment. Airdropped
// ids are recorded in the ledger but never advance the paid-mint sequence
// pointer, so the public path keeps allocating past them.
func (s *MintService) Airdrop(ctx context.Context, recipient string, nftID int) (*AirdropOutcome, error) {
	if recipient == "" {
		return nil, NewBadRequest(CodeInvalidRequest, "recipientAddress is required")
	}
	if nftID < 0 || nftID >= s.cfg.MaxSupply {
		return nil, NewBadRequest(CodeInvalidNFTID,
			fmt.Sprintf("nftId must be between 0 and %d", s.cfg.MaxSupply-1)).
			WithDetail("nftId", nftID).
			WithDetail("maxSupply", s.cfg.MaxSupply)
	}

	if err := s.ledger.ReserveID(nftID); err != nil {
		return nil, NewConflict(CodeNFTAlreadyMinted,
			fmt.Sprintf("NFT #%d has already been minted", nftID)).
			WithDetail("nftId", nftID)
	}

	minted, err := s.chain.MintNFT(ctx, recipient, solana.Metadata{
		Name:                 s.cfg.NFTName(nftID),
		Symbol:               s.cfg.Symbol,
		URI:                  s.cfg.MetadataURI(nftID),
		SellerFeeBasisPoints: s.cfg.SellerFeeBasisPoints,
	})
	if err != nil {
		if errors.Is(err, solana.ErrFinalizeTimeout) {
			// Ambiguous outcome: the mint may still finalize, so the id stays
			// reserved instead of being offered to the next caller.
			log.Error().Err(err).Int("nftId", nftID).Str("recipient", recipient).Msg("airdrop outcome ambiguous, keeping id reserved")
			return nil, NewInternal(CodeInternal,
				"airdrop finalization timed out, status unknown").
				WithDetail("nftId", nftID)
		}
		s.ledger.Release(nftID)
		log.Error().Err(err).Int("nftId", nftID).Str("recipient", recipient).Msg("airdrop mint failed")
		return nil, NewInternal(CodeInternal, fmt.Sprintf("airdrop failed: %v", err))
	}

	if err := s.ledger.Commit(nftID, false); err != nil {
		metrics.BookkeepingFailures.WithLabelValues("ledger").Inc()
		log.Error().Err(err).Int("nftId", nftID).Msg("airdrop ledger commit failed")
	}

	metrics.AirdropMints.Inc()
	log.Info().
		Int("nftId", nftID).
		Str("recipient", recipient).
		Str("mintAddress", minted.MintAddress).
		Msg("airdrop completed")
	return &AirdropOutcome{
		NFTID:       nftID,
		Name:        s.cfg.NFTName(nftID),
		MintAddress: minted.MintAddress,
		Signature:   minted.Signature,
		MetadataURI: s.cfg.MetadataURI(nftID),
		Recipient:   recipient,
	}, nil
}
