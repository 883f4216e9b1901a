// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the curator CLI.
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/curator/internal/secrets"
	"github.com/pdiddy/curator/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is the process-wide structured logger, built in the
// persistent pre-run.
var logger *zap.Logger

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the curator CLI.
var rootCmd = &cobra.Command{
	Use:   "curator",
	Short: "Automated curation of a research-topic awesome list",
	Long: `curator discovers new papers, tools, and products for a research topic,
ranks them by impact, and folds the best of them into a curated markdown
document. Optional stages post the top items to social media and commit
the updated document.

Each operation is a subcommand: update runs the full pipeline, rank
re-ranks a saved discovery set offline, and post publishes the latest
discoveries.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Local .env entries feed AutomaticEnv before viper resolves keys.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}

		verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
		logger, err = buildLogger(verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	return cfg.Build()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./curator.yaml or ~/.config/curator/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose, human-readable logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("curator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "curator"))
		}
	}

	viper.SetEnvPrefix("CURATOR")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults() {
	viper.SetDefault("collect.timeout", 10*time.Second)
	viper.SetDefault("collect.user_agent", "curator/0.1")
	viper.SetDefault("collect.max_results", 20)
	viper.SetDefault("collect.enable_github", true)
	viper.SetDefault("collect.enable_arxiv", true)
	viper.SetDefault("collect.enable_tavily", true)
	viper.SetDefault("collect.enable_labs", false)

	viper.SetDefault("scoring.strategy", "weighted")
	viper.SetDefault("scoring.recency_window", 180*24*time.Hour)

	viper.SetDefault("merge.target_path", "README.md")
	viper.SetDefault("merge.ai.model", "gemini-2.0-flash")
	viper.SetDefault("merge.ai.temperature", 0.1)
	viper.SetDefault("merge.ai.max_tokens", 4000)

	viper.SetDefault("publish.top_n", 3)

	viper.SetDefault("git.repo_dir", ".")
	viper.SetDefault("git.remote", "origin")
	viper.SetDefault("git.branch", "main")
	viper.SetDefault("git.commit_message", "Update curated list")
}

// buildConfig assembles the pipeline configuration from the config file,
// environment, and secrets directory. Secrets fill credential fields
// the config left empty.
func buildConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}

	cfg.Collect.GitHubToken = secretDefault("github-token", cfg.Collect.GitHubToken)
	cfg.Collect.TavilyAPIKey = secretDefault("tavily-api-key", cfg.Collect.TavilyAPIKey)
	cfg.Merge.AI.APIKey = secretDefault("gemini-api-key", cfg.Merge.AI.APIKey)
	cfg.Publish.APIKey = secretDefault("x-api-key", cfg.Publish.APIKey)
	cfg.Publish.LegacyAPIKey = secretDefault("x-legacy-api-key", cfg.Publish.LegacyAPIKey)
	cfg.Publish.UserID = secretDefault("x-user-id", cfg.Publish.UserID)

	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
