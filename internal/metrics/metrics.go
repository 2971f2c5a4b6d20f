package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MintAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mint_attempts_total",
		Help: "Paid mint requests received.",
	})

	MintSuccesses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mint_successes_total",
		Help: "Paid mints completed on chain.",
	})

	MintRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mint_rejections_total",
		Help: "Mint requests rejected before minting, by error code.",
	}, []string{"code"})

	AirdropMints = promauto.NewCounter(prometheus.CounterOpts{
		Name: "airdrop_mints_total",
		Help: "NFTs minted through the airdrop path.",
	})

	BookkeepingFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mint_bookkeeping_failures_total",
		Help: "Post-mint bookkeeping steps that failed, by step.",
	}, []string{"step"})

	MirrorFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_mirror_failures_total",
		Help: "Failed pushes of the mint ledger to the remote mirror.",
	})

	AuthAttemptsBlocked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_auth_attempts_blocked_total",
		Help: "Admin requests blocked by the auth attempt limiter.",
	})
)
