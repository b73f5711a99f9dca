package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path"

	"github.com/haatos/provider-ci/internal"
	"github.com/haatos/provider-ci/internal/handler"
	"github.com/haatos/provider-ci/internal/security"
	"github.com/haatos/provider-ci/internal/service"
	"github.com/haatos/provider-ci/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var format, output string
	var services []string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the build pipeline document",
		RunE: func(cmd *cobra.Command, args []string) error {
			documentFormat, err := service.ParseDocumentFormat(format)
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			doc, err := a.pipelineService().RenderPipeline(documentFormat, services...)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(output, doc, 0o644); err != nil {
				return err
			}
			slog.Info("pipeline written", "path", output, "format", documentFormat)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "document format (yaml or json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringSliceVarP(&services, "service", "s", nil, "limit test jobs to these service keys")
	return cmd
}

func newServicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the registered services in build order",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, spec := range a.registry.Enumerate() {
				lock := ""
				if spec.RequiresExclusiveLock {
					lock = " (vpc lock)"
				}
				fmt.Fprintf(w, "%-24s %s%s\n", spec.Key, spec.DisplayName, lock)
			}
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline and fixture HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			serve(a)
			return nil
		},
	}
}

func serve(a *app) {
	s := a.settings
	rdb := store.InitDatabase(s, true)
	defer rdb.Close()
	rwdb := store.InitDatabase(s, false)
	defer rwdb.Close()
	store.RunMigrations(rwdb, store.Dialect(s))

	hashKey, err := security.LoadOrCreateHashKey(s.HashKey, internal.DotEnvPath)
	if err != nil {
		log.Fatal(err)
	}
	aesEncrypter, err := security.NewAESEncrypter(hashKey)
	if err != nil {
		log.Fatal(err)
	}

	scheduler := service.NewScheduler(s.Schedule.Location)
	defer scheduler.Shutdown()

	revisionStore := store.NewRevisionSQLStore(rdb, rwdb)
	connectionStore := store.NewConnectionSQLStore(rdb, rwdb)
	parameterStore := store.NewParameterSQLStore(rdb, rwdb)

	pipelineSvc := service.NewPipelineService(
		a.registry,
		service.NewPipelineGenerator(s, a.config),
		revisionStore,
		service.NewUUIDGen(),
		scheduler,
		a.config,
	)
	connectionSvc := service.NewConnectionService(connectionStore)
	parameterSvc := service.NewParameterService(parameterStore, aesEncrypter)

	jobID, err := pipelineSvc.ScheduleRegeneration(service.FormatYAML)
	if err != nil {
		log.Fatal(err)
	}
	if jobID != nil {
		slog.Info("nightly regeneration scheduled", "job_id", *jobID, "timezone", s.Schedule.Timezone())
	}
	scheduler.Start()

	hub := handler.NewHub()
	e := setupEcho()
	e.Server.RegisterOnShutdown(hub.CloseAll)
	g := e.Group("")
	handler.SetupPipelineRoutes(g, pipelineSvc)
	handler.SetupFixtureRoutes(g, connectionSvc, parameterSvc, hub)

	internal.GracefulShutdown(e, s.Port)
}

func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(
		middleware.CORSWithConfig(internal.GetCORSConfig()),
		middleware.RateLimiterWithConfig(internal.GetRateLimiterConfig()),
	)
	return e
}

func newPublishCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "publish [remote path]",
		Short: "Upload the rendered pipeline document over SFTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			documentFormat, err := service.ParseDocumentFormat(format)
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			s := a.settings
			if s.PublishHost == "" || s.PublishUser == "" || s.PublishKeyPath == "" {
				return internal.NewConfigurationError(
					"PROVIDERCI_PUBLISH_HOST",
					"publish host, user and key path are required",
					nil,
				)
			}

			remotePath := s.PublishPath
			if len(args) == 1 {
				remotePath = args[0]
			}
			if remotePath == "" {
				remotePath = "pipeline." + string(documentFormat)
			} else if path.Ext(remotePath) == "" {
				remotePath = path.Join(remotePath, "pipeline."+string(documentFormat))
			}

			doc, err := a.pipelineService().RenderPipeline(documentFormat)
			if err != nil {
				return err
			}
			privateKey, err := os.ReadFile(s.PublishKeyPath)
			if err != nil {
				return err
			}

			publisher := service.NewPublisher(
				s.PublishHost,
				s.PublishUser,
				privateKey,
				service.TerminalPassphrase("key passphrase: "),
			)
			defer publisher.Close()

			if err := publisher.Publish(remotePath, doc); err != nil {
				return err
			}
			slog.Info("pipeline published", "host", s.PublishHost, "path", remotePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "document format (yaml or json)")
	return cmd
}
