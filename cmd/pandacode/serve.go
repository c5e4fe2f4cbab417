package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/RyomenPanda/PandaCode/core"
	"github.com/RyomenPanda/PandaCode/httpapi"
	"github.com/RyomenPanda/PandaCode/internal/ai"
	"github.com/RyomenPanda/PandaCode/internal/appconfig"
	"github.com/RyomenPanda/PandaCode/internal/credstore"
)

func newServeCmd() *cobra.Command {
	var cfgPath string
	var workspace string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the workspace HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if workspace != "" {
				cfg.WorkspaceRoot = workspace
			}

			assistant, err := buildAssistant(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			svc, err := core.NewService(core.Config{
				WorkspaceRoot:  cfg.WorkspaceRoot,
				CommandTimeout: time.Duration(cfg.Terminal.CommandTimeoutSeconds) * time.Second,
			}, core.Deps{
				Assistant: assistant,
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			server := httpapi.NewServer(svc)
			logger.Info("pandacode serving",
				"addr", cfg.HTTP.Addr,
				"workspace", cfg.WorkspaceRoot,
				"ai_available", assistant.Available(),
			)
			return httpapi.ListenAndServe(cmd.Context(), cfg.HTTP.Addr, server.Handler())
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config.yaml")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace root override")
	return cmd
}

// buildAssistant resolves the provider credential from the environment
// first, then from the persisted settings file.
func buildAssistant(ctx context.Context, cfg appconfig.Config, logger pslog.Logger) (*ai.Assistant, error) {
	apiKey := os.Getenv(cfg.AI.APIKeyEnv)
	if apiKey == "" && cfg.AI.CredentialsFile != "" {
		store, err := credstore.NewStoreWithLogger(cfg.AI.CredentialsFile, logger)
		if err != nil {
			return nil, err
		}
		creds, ok, err := store.Load()
		if err != nil {
			logger.Warn("credentials file unreadable", "err", err)
		} else if ok {
			apiKey = creds.GeminiAPIKey
		}
	}
	return ai.New(ctx, apiKey, cfg.AI.Model, logger)
}
