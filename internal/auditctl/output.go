package auditctl

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"auditservice/internal/models"
	"auditservice/internal/query"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable prints a pretty table to w.
func RenderTable(w io.Writer, headers []string, rows [][]interface{}) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := table.Row{}
	for _, h := range headers {
		headerRow = append(headerRow, h)
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}

	t.Render()
}

func renderEvents(w io.Writer, events []models.AuditEvent, meta query.Meta) {
	rows := make([][]interface{}, 0, len(events))
	for _, evt := range events {
		rows = append(rows, []interface{}{
			evt.ID.Hex(),
			evt.OccurredAt.UTC().Format(time.RFC3339),
			evt.EventType,
			evt.EntityType,
			evt.EntityID,
			evt.Action,
			evt.Status,
		})
	}

	RenderTable(w, []string{"ID", "Occurred At", "Event", "Entity Type", "Entity ID", "Action", "Status"}, rows)
	fmt.Fprintf(w, "page %d of %d, %d events\n", meta.CurrentPage, meta.TotalPages, meta.TotalCount)
}

func renderJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
