package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nft-mint-gateway/internal/config"
	"github.com/nft-mint-gateway/internal/events"
	"github.com/nft-mint-gateway/internal/github"
	"github.com/nft-mint-gateway/internal/handler"
	"github.com/nft-mint-gateway/internal/handler/admin"
	"github.com/nft-mint-gateway/internal/ledger"
	"github.com/nft-mint-gateway/internal/middleware"
	"github.com/nft-mint-gateway/internal/service"
	"github.com/nft-mint-gateway/internal/solana"
	"github.com/nft-mint-gateway/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.NewFirestore(ctx, cfg.FirestoreProject, cfg.FirestoreCredentialsFile, cfg.MaxMintsPerWallet)
	if err != nil {
		return err
	}
	defer st.Close()

	var mirror ledger.Mirror
	if cfg.MirrorEnabled() {
		mirror = github.NewMirror(cfg.GitHubToken, cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubPath, cfg.GitHubBranch)
		log.Info().Str("repo", cfg.GitHubOwner+"/"+cfg.GitHubRepo).Msg("ledger mirroring enabled")
	}

	tracker, err := ledger.NewTracker(cfg.TrackingFile, mirror)
	if err != nil {
		return err
	}

	chain, err := solana.NewClient(cfg.SolanaRPCURL, cfg.PayerSecretKey, cfg.FinalizeTimeout)
	if err != nil {
		return err
	}

	schedule, err := cfg.Schedule()
	if err != nil {
		return err
	}

	collection := service.CollectionConfig{
		Name:                 cfg.CollectionName,
		Symbol:               cfg.CollectionSymbol,
		MetadataBaseURL:      cfg.MetadataBaseURL,
		ImageBaseURL:         cfg.ImageBaseURL,
		SellerFeeBasisPoints: cfg.SellerFeeBasisPoints,
		MaxSupply:            cfg.MaxSupply,
	}

	mintSvc := service.NewMintService(collection, st, tracker, chain, schedule)
	walletSvc := service.NewWalletService(st)
	hub := events.NewHub()

	router := buildRouter(cfg, mintSvc, walletSvc, hub, tracker, chain.PayerAddress())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Str("payer", chain.PayerAddress()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func buildRouter(
	cfg *config.Config,
	mintSvc *service.MintService,
	walletSvc *service.WalletService,
	hub *events.Hub,
	tracker *ledger.Tracker,
	payerAddress string,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireJSON)

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Key"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	adminLimiter := middleware.NewAuthAttemptLimiter(cfg.AuthMaxFailures, cfg.AuthFailureWindow, cfg.AuthBlockDuration)
	airdropLimiter := middleware.NewAuthAttemptLimiter(cfg.AuthMaxFailures, cfg.AuthFailureWindow, cfg.AuthBlockDuration)

	health := handler.NewHealthHandler(tracker, payerAddress, cfg.MaxSupply)
	r.Method(http.MethodGet, "/health", health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/", health)
		r.Method(http.MethodPost, "/mint", handler.NewMintHandler(mintSvc, hub))
		r.Method(http.MethodGet, "/current-tier", handler.NewTierStatusHandler(mintSvc))
		r.Method(http.MethodGet, "/tiers", handler.NewTierListHandler(mintSvc))
		r.Method(http.MethodGet, "/wallet/check/{address}", handler.NewWalletCheckHandler(walletSvc))
		r.Method(http.MethodGet, "/wallet/status/{address}", handler.NewWalletStatusHandler(walletSvc))
		r.Method(http.MethodGet, "/events", handler.NewEventsHandler(hub))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminKeyAuth(cfg.AdminKey, adminLimiter))
			r.Method(http.MethodPost, "/wallets/add", admin.NewAddWalletsHandler(walletSvc))
			r.Method(http.MethodPost, "/wallets/remove", admin.NewRemoveWalletHandler(walletSvc))
			r.Method(http.MethodPost, "/wallets/reset-count", admin.NewResetMintCountHandler(walletSvc))
			r.Method(http.MethodGet, "/wallets", admin.NewListWalletsHandler(walletSvc))
			r.Method(http.MethodGet, "/stats", admin.NewStatsHandler(walletSvc))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(cfg.AirdropToken, airdropLimiter))
			r.Method(http.MethodPost, "/airdrop", admin.NewAirdropHandler(mintSvc))
		})
	})

	return r
}
