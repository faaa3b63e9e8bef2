// Command ragserver runs the MIDC land-bank assistant: an MCP server
// over stdio, plus scrape and ingest subcommands for dataset upkeep.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	ragserver "github.com/midc-land-bank/ragserver"
	"github.com/midc-land-bank/ragserver/common/logger"
	"github.com/midc-land-bank/ragserver/config"
	"github.com/midc-land-bank/ragserver/dataset"
	"github.com/midc-land-bank/ragserver/metrics"
	"github.com/midc-land-bank/ragserver/scraper"
)

var (
	configPath string
	logLevel   string
)

func main() {
	root := &cobra.Command{
		Use:   "ragserver",
		Short: "MIDC Land Bank RAG assistant",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(serveCmd(), scrapeCmd(), ingestCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Server.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger.SetLevel(level)
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the assistant as an MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := ragserver.NewClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			if addr := cfg.Server.MetricsAddr; addr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", metrics.Handler())
				go func() {
					logger.Infof("metrics listening on %s/metrics", addr)
					if err := http.ListenAndServe(addr, mux); err != nil {
						logger.Errorf("metrics server stopped: %v", err)
					}
				}()
			}

			logger.Infof("starting %s v%s", cfg.Server.Name, ragserver.Version)
			return ragserver.ServeStdio(ragserver.NewMCPServer(client, cfg.Server.Name))
		},
	}
}

func scrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the land-bank portal and store the plot snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			plots, err := scraper.New(&cfg.Scraper).ScrapeAll(ctx)
			if err != nil {
				return err
			}
			store, err := dataset.Open(cfg.Dataset.Path)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Save(ctx, plots); err != nil {
				return err
			}

			stats, err := store.Stats(ctx)
			if err != nil {
				return err
			}
			logger.Infof("saved %d plots to %s", len(plots), cfg.Dataset.Path)
			for typ, count := range stats {
				logger.Infof("  %s: %d", typ, count)
			}
			return nil
		},
	}
}

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Embed the scraped plots and index them in the vector store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := ragserver.NewClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			count, err := client.Ingest(cmd.Context())
			if err != nil {
				return err
			}
			logger.Infof("ingest complete: %d plots indexed", count)
			return nil
		},
	}
}
