// Command mymenu is the entry point for the MyMenu backend: the HTTP server
// plus database housekeeping commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/mymenu/mymenu/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mymenu",
	Short: "MyMenu — digital menu platform backend",
	Long:  "MyMenu lets restaurant owners manage menus and publish them behind a share token. This CLI runs the API server and database tasks.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(sessionsPruneCmd)
}
