package main

import (
	"fmt"
	"os"

	_ "monteuros/docs"

	"github.com/spf13/cobra"
)

var configPath string

// @title        MonteurOS API
// @version      1.0
// @description  Heat-pump technician service: session, dashboard, Warmtepompscan form and activity log.
// @BasePath     /
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "monteuros",
	Short: "MonteurOS technician service",
	Long: `monteuros - heat-pump technician service

Serves the dashboard, the Warmtepompscan inspection form and the activity log.
Runs against a Supabase backend when backend.url and backend.key are set,
and in mock mode otherwise.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to serve if no subcommand specified
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default configs/config.yml)")
	rootCmd.AddCommand(serveCmd, checkConfigCmd)
}
