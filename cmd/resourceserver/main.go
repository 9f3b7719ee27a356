// The resourceserver binary serves the protected time resources. Incoming
// bearer tokens are introspected against the token service and checked
// against the token scope before any resource is returned.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chronogate/chronogate/apiclient"
	"github.com/chronogate/chronogate/authz"
	"github.com/chronogate/chronogate/config"
	"github.com/chronogate/chronogate/logger"
	"github.com/chronogate/chronogate/server"
	"github.com/chronogate/chronogate/timer"
	"github.com/chronogate/chronogate/version"
)

const serviceName = "resourceserver"

// Config is the resourceserver process configuration.
type Config struct {
	config.BaseConfig `mapstructure:",squash"`

	Logging logger.Config        `mapstructure:"logging"`
	Server  server.Config        `mapstructure:"server"`
	AuthAPI apiclient.AuthConfig `mapstructure:"auth_api"`
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

	authAPI, err := apiclient.NewAuthClient(cfg.AuthAPI)
	if err != nil {
		log.Fatal("Failed to create auth client", logger.ErrorFields(err))
	}

	svc := timer.NewService(authAPI, authz.Guard{}, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults(serviceName)
	timer.NewHandler(svc).RegisterRoutes(srv.GinEngine())

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
