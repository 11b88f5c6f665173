package auditctl

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"auditservice/internal"
	"auditservice/internal/db"
	"auditservice/internal/env"
	"auditservice/internal/models"
	"auditservice/internal/seed"

	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	var (
		deployment string
		envRoot    string
		reset      bool
		rngSeed    int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample audit events into the configured store",
		Long:  "Connects to the store named by the environment (MONGO_URI, MONGO_DATABASE) and writes a sample trail of client, invoice and system events.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env.Init(deployment, envRoot, "")

			if reset && env.DEPLOYMENT == "prod" {
				return seed.ErrResetRefused
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			s, err := internal.OpenStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer db.Close(context.Background())

			if rngSeed == 0 {
				rngSeed = time.Now().UnixNano()
			}

			sum, err := seed.Run(ctx, s, env.DEPLOYMENT, reset, time.Now(), rand.New(rand.NewSource(rngSeed)))
			if err != nil {
				return err
			}

			RenderTable(cmd.OutOrStdout(), []string{"Group", "Events"}, [][]interface{}{
				{"total", sum.Total},
				{"client", sum.ByEntity[models.EntityClient]},
				{"invoice", sum.ByEntity[models.EntityInvoice]},
				{"system", sum.ByEntity[models.EntitySystem]},
				{"success", sum.ByStatus[models.StatusSuccess]},
				{"failed", sum.ByStatus[models.StatusFailed]},
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&deployment, "deployment", "dev", "deployment profile (dev|test|prod)")
	cmd.Flags().StringVar(&envRoot, "env-root", "", "directory containing environment files")
	cmd.Flags().BoolVar(&reset, "reset", false, "drop existing events first (refused in prod)")
	cmd.Flags().Int64Var(&rngSeed, "seed", 0, "random seed for reproducible sample data")

	return cmd
}
