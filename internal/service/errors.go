package service

import "fmt"

// Error codes surfaced to callers as the stable `error.code` field.
const (
	CodeNoActiveTier        = "NO_ACTIVE_TIER"
	CodeTierSupplyExhausted = "TIER_SUPPLY_EXHAUSTED"
	CodeWalletNotAuthorized = "WALLET_NOT_AUTHORIZED"
	CodeInsufficientPayment = "INSUFFICIENT_PAYMENT"
	CodeDuplicateTx         = "DUPLICATE_TRANSACTION"
	CodeTxVerificationFail  = "TRANSACTION_VERIFICATION_FAILED"
	CodeMaxSupplyReached    = "MAX_SUPPLY_REACHED"
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidNFTID        = "INVALID_NFT_ID"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNFTAlreadyMinted    = "NFT_ALREADY_MINTED"
	CodeInternal            = "INTERNAL_ERROR"
)

// Error is a domain error returned by service methods. Handlers map these to
// tagged JSON responses; Details carries enough context to act on (expected
// vs received amounts, tier names, resolution hints).
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithDetail returns e with an extra context field attached.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// ErrorKind classifies domain errors for HTTP status mapping.
type ErrorKind int

const (
	ErrBadRequest   ErrorKind = iota // 400
	ErrUnauthorized                  // 401
	ErrForbidden                     // 403
	ErrNotFound                      // 404
	ErrConflict                      // 409
	ErrGone                          // 410
	ErrInternal                      // 500
	ErrBadGateway                    // 502
)

func NewBadRequest(code, message string) *Error {
	return &Error{Kind: ErrBadRequest, Code: code, Message: message}
}

func NewUnauthorized(code, message string) *Error {
	return &Error{Kind: ErrUnauthorized, Code: code, Message: message}
}

func NewForbidden(code, message string) *Error {
	return &Error{Kind: ErrForbidden, Code: code, Message: message}
}

func NewConflict(code, message string) *Error {
	return &Error{Kind: ErrConflict, Code: code, Message: message}
}

func NewGone(code, message string) *Error {
	return &Error{Kind: ErrGone, Code: code, Message: message}
}

func NewInternal(code, message string) *Error {
	return &Error{Kind: ErrInternal, Code: code, Message: message}
}
