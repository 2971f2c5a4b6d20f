package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
)

// ErrTransactionNotFound means the ledger has no record of the signature at
// the queried commitment level.
var ErrTransactionNotFound = errors.New("solana: transaction not found")

// ErrFinalizeTimeout means the finalization wait expired without the cluster
// reporting a terminal status. The transaction may still land later, so
// callers must not treat the outcome as a clean failure.
var ErrFinalizeTimeout = errors.New("solana: finalization timed out")

// Client wraps the Solana RPC client with the operations the admission
// pipeline needs: payment verification, independent transaction lookup, and
// mint submission with finalization.
type Client struct {
	rpc             *client.Client
	payer           types.Account
	finalizeTimeout time.Duration
}

// NewClient connects to rpcURL with the given base58-encoded payer secret
// key. finalizeTimeout bounds how long a mint waits for finalization.
func NewClient(rpcURL, payerSecretKey string, finalizeTimeout time.Duration) (*Client, error) {
	payer, err := types.AccountFromBase58(payerSecretKey)
	if err != nil {
		return nil, fmt.Errorf("parsing payer secret key: %w", err)
	}
	if finalizeTimeout <= 0 {
		finalizeTimeout = 90 * time.Second
	}
	return &Client{
		rpc:             client.NewClient(rpcURL),
		payer:           payer,
		finalizeTimeout: finalizeTimeout,
	}, nil
}

// PayerAddress returns the mint authority / fee payer public key.
func (c *Client) PayerAddress() string {
	return c.payer.PublicKey.ToBase58()
}

// PaymentAmount returns the net lamports the payment transaction moved out
// of the sender: the fee payer's balance delta minus the network fee.
func (c *Client) PaymentAmount(ctx context.Context, signature string) (int64, error) {
	tx, err := c.rpc.GetTransaction(ctx, signature)
	if err != nil {
		return 0, fmt.Errorf("fetching payment transaction: %w", err)
	}
	if tx == nil || tx.Meta == nil {
		return 0, ErrTransactionNotFound
	}
	if len(tx.Meta.PreBalances) == 0 || len(tx.Meta.PostBalances) == 0 {
		return 0, fmt.Errorf("payment transaction has no balance data")
	}

	// The sender is the fee payer, always the first account.
	delta := tx.Meta.PreBalances[0] - tx.Meta.PostBalances[0]
	return delta - int64(tx.Meta.Fee), nil
}

// VerifyTransaction independently re-fetches the transaction and confirms it
// exists and carries a parseable message with at least one signer.
func (c *Client) VerifyTransaction(ctx context.Context, signature string) error {
	tx, err := c.rpc.GetTransaction(ctx, signature)
	if err != nil {
		return fmt.Errorf("fetching transaction: %w", err)
	}
	if tx == nil || tx.Meta == nil {
		return ErrTransactionNotFound
	}
	if len(tx.Transaction.Message.Accounts) == 0 {
		return fmt.Errorf("transaction has no account keys")
	}
	if len(tx.Transaction.Signatures) == 0 {
		return fmt.Errorf("transaction has no signatures")
	}
	return nil
}

// awaitFinalized polls the signature status until the cluster reports the
// finalized commitment, bounded by the configured timeout.
func (c *Client) awaitFinalized(ctx context.Context, signature string) error {
	ctx, cancel := context.WithTimeout(ctx, c.finalizeTimeout)
	defer cancel()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		status, err := c.rpc.GetSignatureStatus(ctx, signature)
		if err == nil && status != nil {
			if status.Err != nil {
				return fmt.Errorf("transaction %s failed on chain: %v", signature, status.Err)
			}
			if status.ConfirmationStatus != nil && *status.ConfirmationStatus == rpc.CommitmentFinalized {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for finalization of %s: %w", signature, ErrFinalizeTimeout)
		case <-ticker.C:
		}
	}
}

// finalized does a single status lookup on a fresh context and reports
// whether the transaction reached the finalized commitment without an error.
// Used as a last check after awaitFinalized gives up.
func (c *Client) finalized(signature string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := c.rpc.GetSignatureStatus(ctx, signature)
	if err != nil || status == nil || status.Err != nil {
		return false
	}
	return status.ConfirmationStatus != nil && *status.ConfirmationStatus == rpc.CommitmentFinalized
}
