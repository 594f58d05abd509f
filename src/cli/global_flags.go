package cli

import (
	"io"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"site-backup/src/config"
	"site-backup/src/logging"
	"site-backup/src/safety"
)

// addGlobalFlags adds persistent safety and configuration flags to the root
// command.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolP("yes", "y", false, "Assume 'yes' to prompts and run non-interactively")
	cmd.PersistentFlags().Bool("dry-run", false, "Show planned actions without making changes")
	cmd.PersistentFlags().String("config", "", "Path to the config file (default "+config.DefaultPath+")")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// getSafetyOptions reads the global flags into a safety.Options struct.
func getSafetyOptions(cmd *cobra.Command) safety.Options {
	yes, _ := cmd.Root().PersistentFlags().GetBool("yes")
	dry, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
	return safety.Options{Yes: yes, DryRun: dry}
}

// loadConfig loads the config file named by --config, or the defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	return config.Load(path)
}

// newLogger builds the operator-facing logger for a command run.
func newLogger(cmd *cobra.Command, w io.Writer) *charmlog.Logger {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	return logging.New(w, verbose)
}
