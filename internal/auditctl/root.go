// Package auditctl implements the operator CLI for the audit service.
package auditctl

import (
	"os"

	"github.com/spf13/cobra"
)

const defaultHost = "localhost:3000"

// NewRootCmd builds the auditctl command tree.
func NewRootCmd() *cobra.Command {
	var host string

	root := &cobra.Command{
		Use:           "auditctl",
		Short:         "Audit service CLI",
		Long:          "Command line interface for querying and seeding the audit service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fallback := os.Getenv("AUDIT_HOST")
	if fallback == "" {
		fallback = defaultHost
	}
	root.PersistentFlags().StringVar(&host, "host", fallback, "audit service host:port or base URL")

	client := func() *Client { return NewClient(host) }

	root.AddCommand(
		pingCmd(client),
		versionCmd(client),
		healthCmd(client),
		eventsCmd(client),
		seedCmd(),
	)

	return root
}
