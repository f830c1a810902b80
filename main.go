package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/finhealth/cmd/batch"
	"fjacquet/finhealth/cmd/diagnose"
	"fjacquet/finhealth/cmd/root"
	"fjacquet/finhealth/cmd/trends"
	"fjacquet/finhealth/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// .env values must be visible before the configuration is read
	_, _ = config.LoadEnv()

	configureLogLevelDirectly()

	root.Init()

	root.Cmd.AddCommand(diagnose.Cmd)
	root.Cmd.AddCommand(trends.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

// configureLogLevelDirectly sets the global logrus level from LOG_LEVEL so
// that anything logged before the container exists honors it.
func configureLogLevelDirectly() {
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.GetEnv("LOG_LEVEL", "info")))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
