package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/api"
	"github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/operator"
	"github.com/carson-networks/finance-tracker/internal/policy"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		logrus.WithError(err).Fatal("config.LoadDotEnv")
		return
	}

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("finance-tracker starting")

	rules := policy.Default()
	if envConfig.PolicyFile != "" {
		rules, err = policy.LoadFile(envConfig.PolicyFile)
		if err != nil {
			logger.WithError(err).WithField("policyFile", envConfig.PolicyFile).Fatal("policy.LoadFile")
			return
		}
	}
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.Debug("effective policy\n" + spew.Sdump(rules))
	}

	if envConfig.MigrateOnStart {
		result, err := storage.RunMigrations(envConfig.PostgresDSN())
		if err != nil {
			logger.WithError(err).Fatal("storage.RunMigrations")
			return
		}
		logger.WithFields(logrus.Fields{
			"preMigrationVersion":  result.PreVersion,
			"postMigrationVersion": result.PostVersion,
		}).Info("Migration status")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbStorage, err := storage.Open(ctx, envConfig.PostgresDSN())
	if err != nil {
		logger.WithError(err).Fatal("storage.Open")
		return
	}
	defer func() {
		if err := dbStorage.Close(); err != nil {
			logger.WithError(err).Warn("storage.Close")
		}
	}()

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage, delegator, rules)

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.HTTPPort,
		Service: svc,
		DB:      dbStorage.DB,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("api.Rest.Serve")
	}
	logger.Info("finance-tracker stopped")
}
