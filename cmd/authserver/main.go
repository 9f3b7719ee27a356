// The authserver binary runs the token service: it issues signed access
// tokens for the password grant and answers token introspection.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chronogate/chronogate/config"
	"github.com/chronogate/chronogate/logger"
	"github.com/chronogate/chronogate/oauth2"
	"github.com/chronogate/chronogate/registry"
	"github.com/chronogate/chronogate/server"
	"github.com/chronogate/chronogate/version"
)

const serviceName = "authserver"

// Config is the authserver process configuration.
type Config struct {
	config.BaseConfig `mapstructure:",squash"`

	Logging      logger.Config          `mapstructure:"logging"`
	Server       server.Config          `mapstructure:"server"`
	OAuth2       oauth2.Config          `mapstructure:"oauth2"`
	Applications []registry.Application `mapstructure:"applications"`
}

func main() {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		logger.Fatal("Failed to load configuration", logger.ErrorFields(err))
	}
	cfg.BaseConfig.ApplyDefaults()
	cfg.Server.ApplyDefaults()

	logger.Init(cfg.Logging, serviceName)
	log := logger.GetGlobalLogger()
	log.Info("Starting service", logger.Fields("version", version.Get().String()))

	apps := registry.NewInMemStore(cfg.Applications...)

	svc, err := oauth2.NewService(cfg.OAuth2, apps, log)
	if err != nil {
		log.Fatal("Failed to create token service", logger.ErrorFields(err))
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults(serviceName)
	oauth2.NewHandler(svc).RegisterRoutes(srv.GinEngine())

	ctx := context.Background()
	if err := srv.Start(ctx); err != nil {
		log.Fatal("Failed to start server", logger.ErrorFields(err))
	}

	waitForShutdown()
	if err := srv.Stop(ctx); err != nil {
		os.Exit(1)
	}
}

func waitForShutdown() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
