package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/dentcare/dentcare_backend/cmd/http"
	systemcmd "github.com/dentcare/dentcare_backend/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "dentcare",
	Short: "Practice management core for a single dental clinic.",
	Long: `DentCare is the practice management backend for a single dental clinic.
It keeps the user roster, doctors, patients with tooth charts and visit
records in a durable key-value store and snapshots them on a schedule.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}
