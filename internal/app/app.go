package app

import (
	"os"

	"github.com/myrteametrics/goldenbatch-api/docs"
	"github.com/myrteametrics/goldenbatch-api/internal/metrics"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Init initialize all the app configuration and components
func Init() {
	docs.SwaggerInfo.Host = viper.GetString("SWAGGER_HOST")
	docs.SwaggerInfo.BasePath = viper.GetString("SWAGGER_BASEPATH")

	hostname, err := os.Hostname()
	if err != nil {
		zap.L().Warn("Cannot read hostname, metrics will be labelled as undefined", zap.Error(err))
	} else {
		metrics.InitMetricLabels(hostname)
	}

	if err := initRepositories(); err != nil {
		zap.L().Fatal("Initialization of repositories", zap.Error(err))
	}
	if err := initServices(); err != nil {
		zap.L().Fatal("Initialization of services", zap.Error(err))
	}
}

// Stop clean everything up before stopping the app
func Stop() {
	stopServices()
}
