package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fragmede/fundcli/internal/classify"
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/internal/history"
	"github.com/fragmede/fundcli/internal/registry"
	"github.com/fragmede/fundcli/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// projectRegistry is the bundled project registry with user mappings applied.
var projectRegistry contract.Registry

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "fundcli",
	Short:              "Turn your shell history into open source donations.",
	Long:               `Fundcli analyzes your Atuin shell history to see which open source tools you actually use, then suggests how to split a donation budget across the projects behind them.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".fundcli") // Name of config file (without extension)
		viper.SetConfigType("yaml")     // We'll use YAML format
		viper.AddConfigPath(".")        // Look in the current directory
		viper.AddConfigPath("$HOME")    // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("FUNDCLI")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("period", schema.MonthPeriod)
	viper.SetDefault("limit", contract.DefaultLimit)
	viper.SetDefault("amount", contract.DefaultAmount)
	viper.SetDefault("min-amount", contract.DefaultMinAmount)
	viper.SetDefault("max-projects", contract.DefaultMaxProjects)
	viper.SetDefault("weight", schema.CountStrategy)
	viper.SetDefault("output", schema.TableOut)
	viper.SetDefault("classify-backend", schema.SQLiteBackend)
	viper.SetDefault("classify-db-connect", "")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Load the bundled registry and layer user mappings on top.
	reg, err := registry.NewBundled()
	if err != nil {
		return fmt.Errorf("failed to load project registry: %w", err)
	}
	for exe, projectID := range cfg.CustomMappings {
		reg.AddMapping(exe, projectID)
	}
	projectRegistry = reg

	// 5. Initialize the classify store with validated config.
	if err := classify.InitStore(cfg.ClassifyBackend, cfg.ClassifyDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}

	// 6. Executables the user has already settled stop showing up as
	// unknowns. They never match the registry, so known-project
	// analysis is unaffected.
	if store := classify.Manager.GetClassifyStore(); store != nil {
		exceptions, err := store.Exceptions()
		if err != nil {
			contract.LogWarn("loading classify exceptions", err)
		} else {
			cfg.ExcludeExecutables = append(cfg.ExcludeExecutables, exceptions...)
		}
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".fundcli")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// openHistoryStore opens the Atuin database configured by sharedSetup.
// Callers own the returned store and must close it.
func openHistoryStore() (contract.HistoryStore, error) {
	store, err := history.NewStore(cfg.HistoryDBPath)
	if err != nil {
		return nil, fmt.Errorf("%w (is Atuin installed and recording history?)", err)
	}
	return store, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
