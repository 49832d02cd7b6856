// Package cmd defines the command-line interface for fundcli.
package cmd

import (
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(donateCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(aliasesCmd)
	rootCmd.AddCommand(unknownsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the unknowns subcommands to the parent unknowns command
	unknownsCmd.AddCommand(unknownsListCmd)
	unknownsCmd.AddCommand(unknownsInvestigateCmd)
	unknownsCmd.AddCommand(unknownsClassifyCmd)
	unknownsCmd.AddCommand(unknownsStatusCmd)
	unknownsCmd.AddCommand(unknownsClearCmd)
	unknownsCmd.AddCommand(unknownsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper. Budget flags live
	// here because recommend, donate and export all consume them.
	rootCmd.PersistentFlags().StringP("period", "p", string(schema.MonthPeriod), "Time period: day or week or month or year or all")
	rootCmd.PersistentFlags().String("hostname", "", "Only consider history recorded on this hostname")
	rootCmd.PersistentFlags().Bool("include-builtins", false, "Count shell builtins like cd and echo")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Bool("unknown", false, "List executables with no project mapping")
	rootCmd.PersistentFlags().StringP("amount", "a", contract.DefaultAmount, "Total budget to distribute")
	rootCmd.PersistentFlags().String("min-amount", contract.DefaultMinAmount, "Minimum per-project donation")
	rootCmd.PersistentFlags().Int("max-projects", contract.DefaultMaxProjects, "Maximum number of projects to fund")
	rootCmd.PersistentFlags().StringP("weight", "w", string(schema.CountStrategy), "Weighting strategy: count or duration or success or combined")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TableOut), "Output format: table or csv or json or markdown")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("history-db", "", "Path to the Atuin history database (defaults to ~/.local/share/atuin/history.db)")
	rootCmd.PersistentFlags().String("classify-backend", string(schema.SQLiteBackend), "Classify store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("classify-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of donateCmd to Viper
	donateCmd.Flags().Bool("open", false, "Open each donation link in the browser")
	if err := viper.BindPFlags(donateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding donate flags", err)
	}

	// These flags are read from cobra directly, not through viper
	projectsCmd.Flags().Bool("all", false, "List every known project")
	unknownsListCmd.Flags().String("class", "", "Filter by classification (system, third_party, user, ignored, not_found, unknown)")
	unknownsClassifyCmd.Flags().String("notes", "", "Free-form notes to store with the judgment")

	// Bind all flags of unknownsMigrateCmd to Viper
	unknownsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(unknownsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding unknowns migrate flags", err)
	}
}
