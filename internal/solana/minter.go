package solana

import (
	"context"
	"errors"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"
)

// Metadata is the on-chain metadata for a minted NFT.
type Metadata struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
}

// MintResult identifies a completed mint.
type MintResult struct {
	MintAddress string
	Signature   string
}

// MintNFT mints a 1-of-1 NFT to ownerWallet: a fresh mint account with
// decimals 0, Metaplex metadata, the owner's associated token account, one
// token, and a master edition capping supply at 1. The call blocks until the
// transaction is finalized.
func (c *Client) MintNFT(ctx context.Context, ownerWallet string, meta Metadata) (*MintResult, error) {
	owner := common.PublicKeyFromString(ownerWallet)
	mint := types.NewAccount()
	feePayer := c.payer

	ata, _, err := common.FindAssociatedTokenAddress(owner, mint.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("deriving associated token address: %w", err)
	}

	metadataPubkey, err := token_metadata.GetTokenMetaPubkey(mint.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("deriving metadata address: %w", err)
	}
	masterEditionPubkey, err := token_metadata.GetMasterEdition(mint.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("deriving master edition address: %w", err)
	}

	mintRent, err := c.rpc.GetMinimumBalanceForRentExemption(ctx, token.MintAccountSize)
	if err != nil {
		return nil, fmt.Errorf("fetching rent exemption: %w", err)
	}

	recent, err := c.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching latest blockhash: %w", err)
	}

	maxSupply := uint64(1)

	tx, err := types.NewTransaction(types.NewTransactionParam{
		Signers: []types.Account{mint, feePayer},
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        feePayer.PublicKey,
			RecentBlockhash: recent.Blockhash,
			Instructions: []types.Instruction{
				system.CreateAccount(system.CreateAccountParam{
					From:     feePayer.PublicKey,
					New:      mint.PublicKey,
					Owner:    common.TokenProgramID,
					Lamports: mintRent,
					Space:    token.MintAccountSize,
				}),
				token.InitializeMint(token.InitializeMintParam{
					Decimals:   0,
					Mint:       mint.PublicKey,
					MintAuth:   feePayer.PublicKey,
					FreezeAuth: &feePayer.PublicKey,
				}),
				token_metadata.CreateMetadataAccountV3(token_metadata.CreateMetadataAccountV3Param{
					Metadata:                metadataPubkey,
					Mint:                    mint.PublicKey,
					MintAuthority:           feePayer.PublicKey,
					UpdateAuthority:         feePayer.PublicKey,
					Payer:                   feePayer.PublicKey,
					UpdateAuthorityIsSigner: true,
					IsMutable:               true,
					Data: token_metadata.DataV2{
						Name:                 meta.Name,
						Symbol:               meta.Symbol,
						Uri:                  meta.URI,
						SellerFeeBasisPoints: meta.SellerFeeBasisPoints,
						Creators: &[]token_metadata.Creator{
							{
								Address:  feePayer.PublicKey,
								Verified: true,
								Share:    100,
							},
						},
					},
					CollectionDetails: nil,
				}),
				associated_token_account.CreateAssociatedTokenAccount(
					associated_token_account.CreateAssociatedTokenAccountParam{
						Funder:                 feePayer.PublicKey,
						Owner:                  owner,
						Mint:                   mint.PublicKey,
						AssociatedTokenAccount: ata,
					},
				),
				token.MintTo(token.MintToParam{
					Mint:   mint.PublicKey,
					To:     ata,
					Auth:   feePayer.PublicKey,
					Amount: 1,
				}),
				token_metadata.CreateMasterEditionV3(token_metadata.CreateMasterEditionParam{
					Edition:         masterEditionPubkey,
					Mint:            mint.PublicKey,
					UpdateAuthority: feePayer.PublicKey,
					MintAuthority:   feePayer.PublicKey,
					Metadata:        metadataPubkey,
					Payer:           feePayer.PublicKey,
					MaxSupply:       &maxSupply,
				}),
			},
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("building mint transaction: %w", err)
	}

	sig, err := c.rpc.SendTransaction(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("submitting mint transaction: %w", err)
	}

	if err := c.awaitFinalized(ctx, sig); err != nil {
		// The wait expiring does not mean the mint failed. Check the status
		// once more before reporting the ambiguous outcome to the caller.
		if errors.Is(err, ErrFinalizeTimeout) && c.finalized(sig) {
			return &MintResult{
				MintAddress: mint.PublicKey.ToBase58(),
				Signature:   sig,
			}, nil
		}
		return nil, err
	}

	return &MintResult{
		MintAddress: mint.PublicKey.ToBase58(),
		Signature:   sig,
	}, nil
}
