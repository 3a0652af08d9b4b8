// Command wikisearch-ingest streams a MediaWiki XML dump into the
// inverted index, semantic index, and byte store: the offline
// counterpart to the query-serving wikisearch-server binary.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/DanielHalachev/WikiSearch/bootstrap"
	"github.com/DanielHalachev/WikiSearch/config"
	"github.com/DanielHalachev/WikiSearch/ingest"
	"github.com/spf13/cobra"
)

func main() {
	var configFile string
	var dumpPath string

	root := &cobra.Command{
		Use:   "wikisearch-ingest",
		Short: "Ingest a MediaWiki XML dump into WikiSearch's indices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configFile, dumpPath)
		},
	}
	root.Flags().StringVar(&configFile, "config", "", "path to a TOML config file")
	root.Flags().StringVar(&dumpPath, "dump", "", "path to a MediaWiki XML dump file")
	root.MarkFlagRequired("dump")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configFile, dumpPath string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := mustLoadConfig(logger, configFile)
	reg := mustBuildRegistry(logger, cfg)
	defer func() {
		if err := reg.Close(); err != nil {
			logger.Error("error closing service registry", "error", err)
		}
	}()

	f := mustOpenDump(logger, dumpPath)
	defer f.Close()

	pipeline := ingest.NewPipeline(reg.Inverted, reg.Semantic, reg.Bodies, logger)
	count, err := pipeline.Run(context.Background(), ingest.NewDumpReader(f))
	if err != nil {
		logger.Error("ingest run failed", "error", err)
		os.Exit(1)
	}
	logger.Info("ingest complete", "documents", count)
	return nil
}

// mustLoadConfig, mustBuildRegistry, and mustOpenDump handle the fatal
// startup errors: every one funnels through one of these, is logged,
// and exits the process rather than panicking anywhere in library code.
func mustLoadConfig(logger *slog.Logger, configFile string) config.Config {
	cfg, err := config.Load(configFile)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

func mustBuildRegistry(logger *slog.Logger, cfg config.Config) *bootstrap.Registry {
	reg, err := bootstrap.Build(cfg, logger)
	if err != nil {
		logger.Error("failed to build service registry", "error", err)
		os.Exit(1)
	}
	return reg
}

func mustOpenDump(logger *slog.Logger, path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("failed to open dump file", "path", path, "error", err)
		os.Exit(1)
	}
	return f
}
