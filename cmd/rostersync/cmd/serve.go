package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	grpcctx "github.com/dtroode/rostersync/internal/api/grpc/context"
	"github.com/dtroode/rostersync/internal/api/grpc/router"
	grpcServer "github.com/dtroode/rostersync/internal/api/grpc/server"
	"github.com/dtroode/rostersync/internal/config"
	"github.com/dtroode/rostersync/internal/discord"
	"github.com/dtroode/rostersync/internal/info"
	"github.com/dtroode/rostersync/internal/logger"
	"github.com/dtroode/rostersync/internal/model"
	"github.com/dtroode/rostersync/internal/roster/sheets"
	"github.com/dtroode/rostersync/internal/server"
	"github.com/dtroode/rostersync/internal/service"
	"github.com/dtroode/rostersync/internal/store"
	"github.com/dtroode/rostersync/internal/telemetry"
	"github.com/dtroode/rostersync/internal/token"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot, the reconciliation loop and the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateServe(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := logger.NewWithFormat(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting rostersync", "version", Version, "commit", Commit, "storage", cfg.Storage.Backend)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTel.Endpoint, cfg.OTel.SampleRatio)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := closeBackend(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	communities := store.NewCommunities(backend, logger)
	if err := communities.Load(ctx); err != nil {
		return err
	}
	states := store.NewRunStates(backend)

	infoProvider, err := info.Load(cfg.InfoFile)
	if err != nil {
		return err
	}

	source, err := sheets.NewDefaultSource(cfg.Sheets.SpreadsheetID, cfg.Sheets.Range, cfg.Sheets.CredentialsFile,
		sheets.WithEndpoint(cfg.Sheets.Endpoint))
	if err != nil {
		return err
	}

	session, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		return err
	}
	directory := discord.NewDirectory(session)

	engine := service.NewEngine(source, communities, directory, cfg.Reconcile.FallbackLength, logger)
	scheduler := service.NewScheduler(engine, states, communities, cfg.Reconcile.Interval, logger,
		service.WithPassTimeout(cfg.Reconcile.PassTimeout))
	if err := scheduler.Load(ctx); err != nil {
		return err
	}
	admin := service.NewAdmin(communities, scheduler, directory, logger)

	var (
		wg  sync.WaitGroup
		api *grpcServer.GRPCServer
	)
	if cfg.GRPC.Port != "" {
		r := router.New(admin, token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL), grpcctx.NewManager(), logger)
		scheduler.OnStatusChange(r.SetServing)
		api = grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

		var sl model.SecurityLayer
		if cfg.GRPC.EnableHTTPS {
			sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
		} else {
			sl = server.NewPlainListener()
		}

		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("admin API listening", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("admin API stopped", "error", err)
			}
		}(api)
	}

	bot := discord.NewBot(session, directory, admin, infoProvider, scheduler, cfg.Discord.CommandPrefix, logger)
	if err := bot.Open(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if api != nil {
		if err := api.Stop(shutdownCtx); err != nil {
			logger.Error("error during admin API shutdown", "error", err, "address", api.Address())
		}
	}
	if err := bot.Close(); err != nil {
		logger.Error("error during gateway shutdown", "error", err)
	}
	if err := scheduler.Close(shutdownCtx); err != nil {
		logger.Error("error waiting for the reconciliation loop", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("failed to flush traces", "error", err)
	}

	wg.Wait()
	logger.Info("shutdown complete")
	return nil
}
