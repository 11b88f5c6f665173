package auditctl

import (
	"fmt"

	"github.com/spf13/cobra"
)

func pingCmd(client func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the service answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pong, err := client().Ping(cmd.Context())
			if err != nil {
				return fmt.Errorf("audit service is not responding: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pong)
			return nil
		},
	}
}

func versionCmd(client func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the running service version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := client().Version(cmd.Context())
			if err != nil || version == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No version detected")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

func healthCmd(client func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show service and database health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := client().Health(cmd.Context())
			if err != nil {
				return err
			}

			RenderTable(cmd.OutOrStdout(),
				[]string{"Service", "Status", "Database", "Checked At"},
				[][]interface{}{{h.Service, h.Status, h.Database, h.Timestamp.Format("2006-01-02 15:04:05")}},
			)
			return nil
		},
	}
}
