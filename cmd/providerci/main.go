package main

import (
	"log/slog"
	"os"

	"github.com/haatos/provider-ci/internal"
	"github.com/haatos/provider-ci/internal/registry"
	"github.com/haatos/provider-ci/internal/service"
	"github.com/haatos/provider-ci/internal/settings"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "providerci",
	Short: "Acceptance test build topology generator",
	Long: `providerci generates the build pipeline that runs the acceptance tests
of every registered service: a setup job, one test job per service and a
cleanup job, with locks, notifications and a nightly schedule.`,
	SilenceUsage: true,
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	rootCmd.AddCommand(
		newGenerateCmd(),
		newServicesCmd(),
		newServeCmd(),
		newPublishCmd(),
	)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the state every command starts from.
type app struct {
	settings *settings.AppSettings
	config   *internal.Configuration
	registry *registry.Registry
}

func loadApp() (*app, error) {
	settings.ReadDotenv(internal.DotEnvPath)
	s, err := settings.NewSettings()
	if err != nil {
		return nil, err
	}
	config, err := internal.LoadConfiguration(internal.ConfigPath)
	if err != nil {
		return nil, err
	}
	r, err := loadRegistry(s)
	if err != nil {
		return nil, err
	}
	slog.Debug("registry loaded", "mode", r.Mode(), "services", r.Len())
	return &app{settings: s, config: config, registry: r}, nil
}

// loadRegistry reads the services file when one is configured and falls back
// to the built-in registry for the service mode.
func loadRegistry(s *settings.AppSettings) (*registry.Registry, error) {
	if s.ServicesFile != "" {
		return registry.LoadHCLFile(s.ServicesFile, s.HCLVariables())
	}
	mode, err := registry.ParseMode(s.ServiceMode)
	if err != nil {
		return nil, err
	}
	return registry.ForMode(mode)
}

func (a *app) pipelineService() *service.PipelineService {
	return service.NewPipelineService(
		a.registry,
		service.NewPipelineGenerator(a.settings, a.config),
		nil,
		service.NewUUIDGen(),
		nil,
		a.config,
	)
}
