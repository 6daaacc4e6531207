package main

import (
	"fmt"
	"os"
	"strings"

	tweetvault "tweetvault/pkg"
	pkgdb "tweetvault/pkg/db"

	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string
	walMode    bool
	syncMode   string
)

var rootCmd = &cobra.Command{
	Use:     "tweetvault",
	Short:   "A local vault for your tweet archive: import, search, tag, and triage.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", tweetvault.Version),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for tweetvault.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(tweetvault completion bash)

  Zsh:
    $ tweetvault completion zsh > "${fpath[1]}/_tweetvault"

  Fish:
    $ tweetvault completion fish > ~/.config/fish/completions/tweetvault.fish

  PowerShell:
    PS> tweetvault completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tweetvault",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(tweetvault.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the tweetvault database",
	Long:  `Provides commands for managing the tweetvault SQLite database, including schema upgrades.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the database schema to the latest version for the archivedb component",
	Long: `Connects to the SQLite database (from --db, config file, or the platform default
location) and applies any schema migrations needed to bring the archivedb component up to
the current application schema version. An uninitialized database is created and
initialized with the latest schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}

		fmt.Printf("Upgrading archivedb component in database at: %s (WAL: %t, Sync: %s)\n", path, walMode, syncMode)

		dbConn, err := pkgdb.OpenDB(path, walMode, syncMode)
		if err != nil {
			return err
		}
		defer pkgdb.CloseDB(dbConn)

		return pkgdb.UpgradeDB(dbConn, path, pkgdb.TargetSchemaVersion)
	},
}

func initCmd() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (defaults to the config file value or a system-specific location)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML config file (default ~/.tweetvault.yaml)")
	rootCmd.PersistentFlags().BoolVar(&walMode, "wal", true, "Enable SQLite WAL (Write-Ahead Logging) mode")
	rootCmd.PersistentFlags().StringVar(&syncMode, "sync", "NORMAL", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")

	dbCmd.AddCommand(dbUpgradeCmd)

	initImportCmd()
	initSearchCmd()
	initEntriesCmd()
	initTagsCmd()
	initAutotagCmd()
	initServeCmd()
	initSwipeCmd()

	rootCmd.AddCommand(
		completionCmd,
		versionCmd,
		dbCmd,
		importCmd,
		searchCmd,
		entriesCmd,
		tagsCmd,
		statsCmd,
		autotagCmd,
		swipeCmd,
		serveCmd,
		mcpCmd,
	)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
