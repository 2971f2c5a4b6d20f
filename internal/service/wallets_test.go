package service

import (
	"context"
	"errors"
	"testing"
)

func TestWalletBatchAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("writes all wallets", func(t *testing.T) {
		st := &fakeStore{}
		svc := NewWalletService(st)

		if err := svc.BatchAdd(ctx, []string{"wallet1", "wallet2"}, nil); err != nil {
			t.Fatalf("batch add: %v", err)
		}
	})

	t.Run("empty list rejected", func(t *testing.T) {
		svc := NewWalletService(&fakeStore{})

		err := svc.BatchAdd(ctx, nil, nil)
		wantCode(t, err, CodeInvalidRequest, ErrBadRequest)
	})

	t.Run("blank entry rejected", func(t *testing.T) {
		svc := NewWalletService(&fakeStore{})

		err := svc.BatchAdd(ctx, []string{"wallet1", ""}, nil)
		wantCode(t, err, CodeInvalidRequest, ErrBadRequest)
	})

	t.Run("write failure surfaces as an error", func(t *testing.T) {
		// A rejected batch write must not be reported to the admin as
		// success.
		st := &fakeStore{batchAddErr: errors.New("write rejected")}
		svc := NewWalletService(st)

		err := svc.BatchAdd(ctx, []string{"wallet1", "wallet2"}, nil)
		wantCode(t, err, CodeInternal, ErrInternal)
	})
}
