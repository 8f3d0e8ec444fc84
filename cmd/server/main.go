package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"tradeReportBackend/internal/config"
)

var devMode bool

var rootCmd = &cobra.Command{
	Use:   "tradereports",
	Short: "Trade report and signal API",
	Long: `Serves the report publishing and trading signal API.

Configuration comes from CONFIG_FILE (YAML) and environment variables.
JWT_SECRET and WEBHOOK_SECRET are required unless --dev is given.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "use development defaults for missing secrets")
	rootCmd.AddCommand(serveCmd, migrateCmd, userCmd)
}

// loadConfig picks the production or development loader.
func loadConfig() (*config.Config, error) {
	if devMode {
		log.Printf("WARNING: --dev set, using development secrets where unset")
		return config.LoadWithDefaults()
	}
	return config.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
