package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/openhunt/openhunt/cmd/openhunt/output"
	"github.com/openhunt/openhunt/pkg/seed"
)

// seedCmd loads development data
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load development convenience data",
	Long: `Load the default categories and a handful of sample products through
the data access facade. Seeding is not transactional: a mid-batch
failure leaves earlier rows applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed()
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed() error {
	ctx := context.Background()

	st, _, _, err := openStore(ctx)
	if err != nil {
		output.Error("Failed to open store: %v", err)
		return err
	}
	defer st.Close()

	cats, products, err := seed.Run(ctx, st)
	if err != nil {
		output.Error("Seeding stopped after %d categories, %d products: %v", cats, products, err)
		return err
	}
	output.Success("Seeded %d categories and %d products", cats, products)
	output.Muted("Seeded products are pending; run with --dev or moderate them to make them visible")
	return nil
}
