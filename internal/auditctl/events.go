package auditctl

import (
	"net/url"
	"strconv"

	"auditservice/internal/auditevents"

	"github.com/spf13/cobra"
)

func eventsCmd(client func() *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Query audit events",
	}

	cmd.AddCommand(
		listEventsCmd(client),
		showEventCmd(client),
	)

	return cmd
}

func listEventsCmd(client func() *Client) *cobra.Command {
	var (
		entityID   string
		entityType string
		eventType  string
		status     string
		startDate  string
		endDate    string
		page       int
		perPage    int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit events, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			set := func(key, value string) {
				if value != "" {
					params.Set(key, value)
				}
			}
			set("entity_type", entityType)
			set("event_type", eventType)
			set("status", status)
			set("start_date", startDate)
			set("end_date", endDate)
			if page > 0 {
				params.Set("page", strconv.Itoa(page))
			}
			if perPage > 0 {
				params.Set("per_page", strconv.Itoa(perPage))
			}

			c := client()

			var (
				resp auditevents.ListResponse
				err  error
			)
			if entityID != "" {
				resp, err = c.EntityEvents(cmd.Context(), entityID, params)
			} else {
				resp, err = c.ListEvents(cmd.Context(), params)
			}
			if err != nil {
				return err
			}

			if asJSON {
				return renderJSON(cmd.OutOrStdout(), resp)
			}
			renderEvents(cmd.OutOrStdout(), resp.Data, resp.Meta)
			return nil
		},
	}

	cmd.Flags().StringVar(&entityID, "entity-id", "", "only events for this entity")
	cmd.Flags().StringVar(&entityType, "entity-type", "", "client, invoice or system")
	cmd.Flags().StringVar(&eventType, "event-type", "", "e.g. client.created")
	cmd.Flags().StringVar(&status, "status", "", "success or failed")
	cmd.Flags().StringVar(&startDate, "start-date", "", "inclusive lower bound on occurred_at")
	cmd.Flags().StringVar(&endDate, "end-date", "", "inclusive upper bound on occurred_at")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "page size")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON response")

	return cmd
}

func showEventCmd(client func() *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one audit event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			evt, err := client().ShowEvent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), evt)
		},
	}
}
