package query

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"auditservice/internal/errmsg"
	"auditservice/internal/metrics"
	"auditservice/internal/models"
	"auditservice/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type scanCall struct {
	filter store.Filter
	window store.Window
}

type fakeScanner struct {
	calls []scanCall
	total int64
	err   error
}

func (f *fakeScanner) Scan(_ context.Context, filter store.Filter, window store.Window) ([]models.AuditEvent, int64, error) {
	f.calls = append(f.calls, scanCall{filter: filter, window: window})
	if f.err != nil {
		return nil, 0, f.err
	}
	return []models.AuditEvent{}, f.total, nil
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		page, perPage string
		want          Pagination
	}{
		{"", "", Pagination{Page: 1, PerPage: 25}},
		{"3", "10", Pagination{Page: 3, PerPage: 10}},
		{"abc", "def", Pagination{Page: 1, PerPage: 25}},
		{"-2", "0", Pagination{Page: 1, PerPage: 1}},
		{"1", "500", Pagination{Page: 1, PerPage: 100}},
		{" 2 ", " 5 ", Pagination{Page: 2, PerPage: 5}},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, ParsePagination(tc.page, tc.perPage, 100), "page=%q per_page=%q", tc.page, tc.perPage)
	}

	require.Equal(t, 40, ParsePagination("1", "500", 40).PerPage)
	require.Equal(t, DefaultMaxPerPage, ParsePagination("1", "500", 0).PerPage)
}

func TestWindow(t *testing.T) {
	require.Equal(t, store.Window{Offset: 0, Limit: 25}, Pagination{Page: 1, PerPage: 25}.Window())
	require.Equal(t, store.Window{Offset: 20, Limit: 10}, Pagination{Page: 3, PerPage: 10}.Window())
	require.Equal(t, store.Window{Offset: math.MaxInt64, Limit: 2}, Pagination{Page: math.MaxInt64/2 + 2, PerPage: 2}.Window())
	require.Equal(t, store.Window{Offset: math.MaxInt64, Limit: 100}, Pagination{Page: math.MaxInt64, PerPage: 100}.Window())
}

func TestListHugePageIsEmpty(t *testing.T) {
	mem := store.NewMemory()
	for _, id := range []string{"CLI-1", "CLI-2", "CLI-3"} {
		_, err := mem.Create(context.Background(), models.NewAuditEvent{
			EventType:  "client.created",
			EntityType: models.EntityClient,
			EntityID:   id,
			Action:     models.ActionCreate,
			Status:     models.StatusSuccess,
		})
		require.NoError(t, err)
	}

	page, err := NewEngine(mem).List(context.Background(), Params{Page: "4611686018427387905", PerPage: "2"})
	require.NoError(t, err)
	require.Empty(t, page.Events)
	require.Equal(t, Meta{CurrentPage: 4611686018427387905, TotalPages: 2, TotalCount: 3, PerPage: 2}, page.Meta)
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, TotalPages(0, 25))
	require.Equal(t, 1, TotalPages(1, 25))
	require.Equal(t, 1, TotalPages(25, 25))
	require.Equal(t, 2, TotalPages(26, 25))
	require.Equal(t, 3, TotalPages(30, 10))
}

func TestCompose(t *testing.T) {
	f, err := Compose(Params{
		EntityID:   " CLI-001 ",
		EntityType: "client",
		EventType:  "client.read",
		Status:     "success",
		StartDate:  "2025-01-01",
		EndDate:    "2025-01-31T23:59:59Z",
	})
	require.NoError(t, err)

	require.Equal(t, "CLI-001", f.EntityID)
	require.Equal(t, models.EntityClient, f.EntityType)
	require.Equal(t, "client.read", f.EventType)
	require.Equal(t, models.StatusSuccess, f.Status)
	require.NotNil(t, f.OccurredAt)
	require.True(t, f.OccurredAt.From.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, f.OccurredAt.To.Equal(time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)))
}

func TestComposeNeedsBothBounds(t *testing.T) {
	f, err := Compose(Params{StartDate: "2025-01-01"})
	require.NoError(t, err)
	require.Nil(t, f.OccurredAt)

	f, err = Compose(Params{EndDate: "garbage"})
	require.NoError(t, err)
	require.Nil(t, f.OccurredAt)
}

func TestComposeInvalidBounds(t *testing.T) {
	_, err := Compose(Params{StartDate: "soon", EndDate: "later"})

	var ve *errmsg.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, []string{
		"Start date is not a valid timestamp",
		"End date is not a valid timestamp",
	}, ve.Details)
}

func TestListBuildsMeta(t *testing.T) {
	scanner := &fakeScanner{total: 30}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	page, err := NewEngine(scanner, WithMetrics(m)).List(context.Background(), Params{
		EntityType: "invoice",
		Page:       "2",
		PerPage:    "10",
	})
	require.NoError(t, err)

	require.Equal(t, Meta{CurrentPage: 2, TotalPages: 3, TotalCount: 30, PerPage: 10}, page.Meta)
	require.Len(t, scanner.calls, 1)
	require.Equal(t, store.Filter{EntityType: models.EntityInvoice}, scanner.calls[0].filter)
	require.Equal(t, store.Window{Offset: 10, Limit: 10}, scanner.calls[0].window)
	require.Equal(t, 1.0, testutil.ToFloat64(m.Queries.WithLabelValues("list")))
}

func TestListHonoursMaxPerPage(t *testing.T) {
	scanner := &fakeScanner{}

	page, err := NewEngine(scanner, WithMaxPerPage(50)).List(context.Background(), Params{PerPage: "80"})
	require.NoError(t, err)
	require.Equal(t, 50, page.Meta.PerPage)
	require.Equal(t, 0, page.Meta.TotalPages)
}

func TestByEntity(t *testing.T) {
	scanner := &fakeScanner{total: 5}

	_, err := NewEngine(scanner).ByEntity(context.Background(), "INV-004", Params{
		EntityType: "invoice",
		EventType:  "ignored",
		Status:     "failed",
		StartDate:  "2025-01-01",
		EndDate:    "2025-01-02",
	})
	require.NoError(t, err)
	require.Equal(t, store.Filter{EntityID: "INV-004", EntityType: models.EntityInvoice}, scanner.calls[0].filter)
}

func TestByEntityRequiresID(t *testing.T) {
	scanner := &fakeScanner{}

	_, err := NewEngine(scanner).ByEntity(context.Background(), "  ", Params{})

	var ve *errmsg.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Empty(t, scanner.calls)
}

func TestScanErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	scanner := &fakeScanner{err: boom}

	_, err := NewEngine(scanner).List(context.Background(), Params{})
	require.ErrorIs(t, err, boom)
}
