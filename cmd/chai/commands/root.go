package commands

import (
	"fmt"
	"os"

	"chai-app-go/internal/config"
	"chai-app-go/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	log logger.Logger
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:           "chai",
	Short:         "Chai catalog and review site",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.NewFromEnv()

		loaded, err := config.Load(log)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Critical("chai: command failed", "err", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}
