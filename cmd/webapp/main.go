// The webapp binary is the front-end application: on every request it
// obtains an access token from the token service and uses it to fetch the
// requested resource from the resource service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chronogate/chronogate/apiclient"
	"github.com/chronogate/chronogate/config"
	"github.com/chronogate/chronogate/logger"
	"github.com/chronogate/chronogate/server"
	"github.com/chronogate/chronogate/version"
	"github.com/chronogate/chronogate/webapp"
)

const serviceName = "webapp"

// Config is the webapp process configuration.
type Config struct {
	config.BaseConfig `mapstructure:",squash"`

	Logging     logger.Config            `mapstructure:"logging"`
	Server      server.Config            `mapstructure:"server"`
	AuthAPI     apiclient.AuthConfig     `mapstructure:"auth_api"`
	ResourceAPI apiclient.ResourceConfig `mapstructure:"resource_api"`
	Webapp      webapp.Config            `mapstructure:"webapp"`
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
	resourceAPI, err := apiclient.NewResourceClient(cfg.ResourceAPI)
	if err != nil {
		log.Fatal("Failed to create resource client", logger.ErrorFields(err))
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults(serviceName)
	webapp.NewHandler(authAPI, resourceAPI, cfg.Webapp, log).RegisterRoutes(srv.GinEngine())

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
