// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the textbook-engine CLI.
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/textbook-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the textbook-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "textbook-engine",
	Short: "Infer textbook hierarchies from uploaded chapter files",
	Long: `textbook-engine groups batches of uploaded chapter files into draft
Series -> Book -> Chapter hierarchies based on their filenames alone,
attaching a confidence score to every inferred grouping so a human
reviewer can accept, edit, or reject the guess.

The analyze command runs the full inference pipeline over a batch;
extract previews the series metadata inferred from a single filename;
catalog persists reviewer-confirmed hierarchies into a local catalog.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./textbook-engine.yaml or ~/.config/textbook-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("textbook-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "textbook-engine"))
		}
	}

	viper.SetEnvPrefix("TEXTBOOK_ENGINE")
	viper.AutomaticEnv()

	// Missing config files are fine; defaults cover everything.
	_ = viper.ReadInConfig()
}

// engineConfig assembles the engine tunables from the config file and
// environment, with command flags taking precedence when set.
func engineConfig(cmd *cobra.Command) types.EngineConfig {
	cfg := types.EngineConfig{
		SimilarityThreshold:     viper.GetFloat64("similarity_threshold"),
		ShortKeyTokens:          viper.GetInt("short_key_tokens"),
		EditSimilarityThreshold: viper.GetFloat64("edit_similarity_threshold"),
		ConsistencyWeight:       viper.GetFloat64("consistency_weight"),
		AgreementWeight:         viper.GetFloat64("agreement_weight"),
		ExtractionWeight:        viper.GetFloat64("extraction_weight"),
		MaxParallel:             viper.GetInt("max_parallel"),
	}
	if cmd.Flags().Changed("similarity-threshold") {
		cfg.SimilarityThreshold, _ = cmd.Flags().GetFloat64("similarity-threshold")
	}
	if cmd.Flags().Changed("max-parallel") {
		cfg.MaxParallel, _ = cmd.Flags().GetInt("max-parallel")
	}
	return cfg.Normalized()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
