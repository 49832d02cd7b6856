package cmd

import (
	"fmt"

	"github.com/fragmede/fundcli/core"
	"github.com/fragmede/fundcli/internal/classify"
	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// unknownsMaintenanceSetup loads the minimal configuration needed for
// destructive or schema-level operations. It deliberately does NOT
// initialize the store, so clears and migrations can run against a
// fresh or broken database.
func unknownsMaintenanceSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("classify-backend"))
	connStr := viper.GetString("classify-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.ClassifyBackend = backend
	cfg.ClassifyDBConnect = connStr

	return nil
}

// unknownsMaintenanceSetupWrapper provides PreRunE for maintenance commands.
func unknownsMaintenanceSetupWrapper(_ *cobra.Command, _ []string) error {
	return unknownsMaintenanceSetup()
}

// unknownsCmd manages the classification store for unrecognized executables.
var unknownsCmd = &cobra.Command{
	Use:   "unknowns",
	Short: "Manage executables that have no known project",
	Long: `Work through the executables your history contains but the project
registry does not recognize.

Findings and judgments are kept in the classify store so the same names
do not resurface on every analysis.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list        - Show recorded unknowns
  investigate - Probe unknowns on the local system
  classify    - Record a judgment for one executable
  status      - Show store statistics and connection info
  clear       - Remove all recorded data
  migrate     - Run database schema migrations

Examples:
  # Probe every unknown from the last month
  fundcli unknowns investigate

  # Settle one for good
  fundcli unknowns classify mytool user --notes "my own script"`,
}

// unknownsListCmd lists recorded unknowns.
var unknownsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recorded unknown executables",
	Long: `List the unknown executables recorded in the classify store.

Use --class to filter by classification (system, third_party, user,
ignored, not_found, unknown).

Examples:
  # Everything recorded
  fundcli unknowns list

  # Only the ones still unsettled
  fundcli unknowns list --class unknown`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		class, _ := cmd.Flags().GetString("class")
		if err := core.ExecuteUnknownsList(cfg, classify.Manager, schema.Classification(class)); err != nil {
			contract.LogFatal("Cannot list unknowns", err)
		}
	},
}

// unknownsInvestigateCmd probes unknowns on the local system.
var unknownsInvestigateCmd = &cobra.Command{
	Use:   "investigate [executable...]",
	Short: "Probe unknown executables on the local system",
	Long: `Investigate unknown executables and record the findings.

For each name this resolves the PATH location, probes the file type,
scans script heads for copyright notices and captures --help output.
Every probe runs with a timeout and degrades to "no data" rather than
failing.

With no arguments, the current history period is analyzed first and
every unknown found there is investigated.

Examples:
  # Investigate everything unknown in the last month
  fundcli unknowns investigate

  # Investigate specific names
  fundcli unknowns investigate mytool othertool`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		// The history store is only needed when names come from analysis
		var store contract.HistoryStore
		if len(args) == 0 {
			s, err := openHistoryStore()
			if err != nil {
				contract.LogFatal("Cannot open history database", err)
			}
			defer func() { _ = s.Close() }()
			store = s
		}

		if err := core.ExecuteUnknownsInvestigate(rootCtx, cfg, classify.Manager, store, projectRegistry, args); err != nil {
			contract.LogFatal("Cannot investigate unknowns", err)
		}
	},
}

// unknownsClassifyCmd records a judgment for one executable.
var unknownsClassifyCmd = &cobra.Command{
	Use:   "classify <executable> <classification>",
	Short: "Record a judgment for an unknown executable",
	Long: `Record your judgment for one unknown executable.

Classifications:
  system      - OS-provided tool, stop reporting it
  third_party - commercial or closed tool, stop reporting it
  user        - your own script, stop reporting it
  ignored     - just stop reporting it

The system, user and ignored classes also add the executable to the
exception list, so it disappears from future unknown reports.

Examples:
  fundcli unknowns classify deploy-prod user --notes "internal script"
  fundcli unknowns classify pbpaste system`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		notes, _ := cmd.Flags().GetString("notes")
		if err := core.ExecuteUnknownsClassify(cfg, classify.Manager, args[0], schema.Classification(args[1]), notes); err != nil {
			contract.LogFatal("Cannot classify executable", err)
		}
		fmt.Printf("Classified %s as %s.\n", args[0], args[1])
	},
}

// unknownsStatusCmd shows classify store status.
var unknownsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display classify store statistics and connection details",
	Long: `Show detailed information about the classify store.

Displays the backend type, storage location, total recorded unknowns
and how many of them are still unclassified.

Examples:
  fundcli unknowns status`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := classify.Manager.GetClassifyStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get classify status", err)
		}
		classify.PrintClassifyStatus(status)
	},
}

// unknownsClearCmd clears the classify store.
var unknownsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded unknowns and exceptions",
	Long: `Delete everything from the classify store, including the exception
list.

WARNING: This action cannot be undone. Previously settled executables
will resurface as unknowns on the next analysis.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the tables

Examples:
  fundcli unknowns clear`,
	PreRunE: unknownsMaintenanceSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := classify.ClearStore(cfg.ClassifyBackend, classify.GetDBFilePath(), cfg.ClassifyDBConnect); err != nil {
			contract.LogFatal("Failed to clear classify store", err)
		}
		fmt.Println("Classify store cleared successfully.")
	},
}

// unknownsMigrateCmd runs database migrations for the classify store.
var unknownsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the classify store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  fundcli unknowns migrate

  # Rollback to initial state
  fundcli unknowns migrate --target-version 0`,
	PreRunE: unknownsMaintenanceSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := classify.Migrate(cfg.ClassifyBackend, cfg.ClassifyDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
