package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardforge",
	Short: "Print-production pipeline for business card sheets",
	Long: `Cardforge turns card designs plus contact records into print-ready
PDF sheets. It runs as an HTTP service, validates design catalogs, and
renders one-off sheets from the command line.`,
}

func init() {
	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(renderCmd)
	RootCmd.AddCommand(keygenCmd)
}
