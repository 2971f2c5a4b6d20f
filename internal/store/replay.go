package store

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Seen reports whether a payment signature has already been consumed.
func (s *Firestore) Seen(ctx context.Context, signature string) (bool, error) {
	_, err := s.client.Collection(processedTransactionsCollection).Doc(signature).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Mark consumes a payment signature via conditional insert. A concurrent or
// repeated Mark for the same signature is a no-op, which makes the dedup set
// safe to share across instances.
func (s *Firestore) Mark(ctx context.Context, signature string) error {
	_, err := s.client.Collection(processedTransactionsCollection).Doc(signature).Create(ctx, map[string]any{
		"signature":   signature,
		"processedAt": time.Now().UTC(),
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	return err
}
