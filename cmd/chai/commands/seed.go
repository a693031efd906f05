package commands

import (
	"context"

	"chai-app-go/internal/app"
	"chai-app-go/internal/db"
	"chai-app-go/internal/seed"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, varieties and stores from a YAML file",
	Long: `Load users, varieties and stores from a YAML file.

Examples:
  chai seed                          # Load seeds/chai.yaml
  chai seed --file fixtures.yaml     # Load another file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seeds/chai.yaml", "Seed file to load")
}

func runSeed(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	file, err := seed.Load(seedFile)
	if err != nil {
		return err
	}

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error("app: close failed", "err", err)
		}
	}()

	if err := db.Migrate(application.DB()); err != nil {
		return err
	}

	result, err := seed.Apply(ctx, file, application.Catalog(), application.Users())
	if err != nil {
		return err
	}

	log.Info("seed: applied",
		"file", seedFile,
		"users", result.Users,
		"varieties", result.Varieties,
		"reviews", result.Reviews,
		"certificates", result.Certificates,
		"stores", result.Stores,
	)
	return nil
}
