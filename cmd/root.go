package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tourin/storefront/activity"
	"github.com/tourin/storefront/banner"
	"github.com/tourin/storefront/cart"
	"github.com/tourin/storefront/category"
	"github.com/tourin/storefront/checkout"
	"github.com/tourin/storefront/internal/api"
	"github.com/tourin/storefront/internal/config"
	"github.com/tourin/storefront/internal/log"
	"github.com/tourin/storefront/internal/otel"
	"github.com/tourin/storefront/internal/session"
	"github.com/tourin/storefront/promo"
	"github.com/tourin/storefront/transaction"
	"github.com/tourin/storefront/user"
)

// storefront bundles the wired services the commands bind to.
type storefront struct {
	config       *config.Config
	tokens       *session.Store
	client       *api.Client
	categories   *category.Service
	banners      *banner.Service
	promos       *promo.Service
	activities   *activity.Service
	counter      *cart.Counter
	cart         *cart.Service
	transactions *transaction.Service
	users        *user.Service
	flow         *checkout.Flow
}

func Start() {
	logger := log.InitLogger("/var/log/storefront.log", "").
		With().
		Str(log.KeyAppName, "storefront").
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	cfg := config.InitConfig(c, "storefront")

	shutdownFuncs, err := otel.InitOtelSdk(c, cfg.Otel.Host, cfg.Otel.Port)
	if err != nil {
		logger.Error().Err(err).Msgf("failed initializing otel sdk with error=%s", err.Error())
	}
	defer func() {
		if err := otel.ShutdownOtel(context.Background(), shutdownFuncs); err != nil {
			logger.Error().Err(err).Msgf("failed shutting down otel with error=%s", err.Error())
		}
	}()

	tokens := session.NewStore(cfg.Session.TokenPath)
	client := api.NewClient(cfg.Api, tokens)
	counter := cart.NewCounter(client)

	sf := &storefront{
		config:       cfg,
		tokens:       tokens,
		client:       client,
		categories:   category.NewService(client),
		banners:      banner.NewService(client),
		promos:       promo.NewService(client),
		activities:   activity.NewService(client),
		counter:      counter,
		cart:         cart.NewService(client, counter),
		transactions: transaction.NewService(client),
		users:        user.NewService(client, tokens),
	}
	sf.flow = checkout.NewFlow(sf.cart, sf.transactions)

	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Tour.In storefront and back-office",
	}
	rootCmd.AddCommand(
		newLoginCommand(sf),
		newRegisterCommand(sf),
		newLogoutCommand(sf),
		newProfileCommand(sf),
		newCategoryCommand(sf),
		newBannerCommand(sf),
		newPromoCommand(sf),
		newActivityCommand(sf),
		newCartCommand(sf),
		newCheckoutCommand(sf),
		newTransactionCommand(sf),
		newUserCommand(sf),
	)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
