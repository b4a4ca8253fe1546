package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/alekpstro/UGEvents/config"
	"github.com/alekpstro/UGEvents/internal/adapters/auth"
	"github.com/alekpstro/UGEvents/internal/adapters/email"
	"github.com/alekpstro/UGEvents/internal/db"
	deliveryhttp "github.com/alekpstro/UGEvents/internal/delivery/http"
	"github.com/alekpstro/UGEvents/internal/delivery/http/controllers"
	"github.com/alekpstro/UGEvents/internal/delivery/http/middleware"
	"github.com/alekpstro/UGEvents/internal/repository/postgres"
	"github.com/alekpstro/UGEvents/internal/services"
)

const shutdownTimeout = 10 * time.Second

// serverCmd represents the server command.
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the event board HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := config.NewLogger(cfg.Environment)

		conn, err := db.Open(cmd.Context(), cfg.DBUrl)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() {
			_ = conn.Close()
		}()

		// Repositories
		userRepo := postgres.NewUserRepository(conn)
		eventRepo := postgres.NewEventRepository(conn)
		membershipRepo := postgres.NewMembershipRepository(conn)

		// Adapters
		hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
		sessions := auth.NewJWTSessions(cfg.JWTSecret)
		mailer, err := email.NewMailer(email.MailerConfig{
			Provider:    cfg.EmailProvider,
			FromAddress: cfg.EmailFromAddress,
			FromName:    cfg.EmailFromName,
			SES: email.SESConfig{
				Region:          cfg.SESRegion,
				AccessKeyID:     cfg.SESAccessKeyID,
				SecretAccessKey: cfg.SESSecretKey,
			},
		}, logger)
		if err != nil {
			return fmt.Errorf("create mailer: %w", err)
		}

		// Services
		emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())
		authSvc := services.NewAuthService(userRepo, hasher, sessions, cfg.JWTExpiry, emailSvc, logger)
		eventSvc := services.NewEventService(eventRepo)
		membershipSvc := services.NewMembershipService(eventRepo, membershipRepo, userRepo, emailSvc, logger)
		profileSvc := services.NewProfileService(userRepo, eventRepo, membershipRepo)

		// Delivery
		mux := deliveryhttp.NewRouter(
			sessions,
			controllers.NewAuthController(logger, authSvc),
			controllers.NewEventController(logger, eventSvc),
			controllers.NewMembershipController(logger, membershipSvc),
			controllers.NewProfileController(logger, profileSvc),
		)
		handler := middleware.Logging(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
			errCh <- srv.ListenAndServe()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case sig := <-stop:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
