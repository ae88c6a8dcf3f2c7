package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations and seeders so their init() funcs run and
	// register themselves.
	_ "github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/database/migrations"
	_ "github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pharmacy",
	Short: "Vinaya's Pharmacy Portal CLI",
	Long:  "Manage the pharmacy portal: serve the API, run migrations, seed the catalogue, and reconcile order pricing.",
}

func init() {
	// Server
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Maintenance
	rootCmd.AddCommand(reconcileCmd)
}
