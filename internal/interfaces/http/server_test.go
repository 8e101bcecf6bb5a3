package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tickets/internal/application/services"
	"tickets/internal/domain/order"
	"tickets/internal/domain/ticket"
	"tickets/internal/render"
)

const testAPIKey = "secret-key"

type stubRenderer struct {
	err error
}

func (r *stubRenderer) Render(_ context.Context, reference string, v ticket.Variant) (*render.Receipt, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &render.Receipt{
		Data:        []byte("%PDF-1.4 " + v.String()),
		ContentType: "application/pdf",
		Filename:    reference + "_receipt.pdf",
	}, nil
}

type stubBus struct {
	published []any
	err       error
}

func (b *stubBus) Publish(_ context.Context, event any) error {
	if b.err != nil {
		return b.err
	}
	b.published = append(b.published, event)
	return nil
}

type stubRepo struct {
	orders []order.Order
}

func (r *stubRepo) Create(_ context.Context, o *order.Order) error {
	r.orders = append(r.orders, *o)
	return nil
}

func (r *stubRepo) GetByReference(_ context.Context, reference string) (*order.Order, error) {
	for i := range r.orders {
		if r.orders[i].Reference == reference {
			return &r.orders[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubRepo) List(_ context.Context, page, pageSize int) ([]order.Order, error) {
	return r.orders, nil
}

func (r *stubRepo) Count(_ context.Context) (int, error) {
	return len(r.orders), nil
}

type stubTicketStore struct {
	records map[string]ticket.Record
}

func (s *stubTicketStore) SetRecord(_ context.Context, key string, rec ticket.Record) error {
	if s.records == nil {
		s.records = map[string]ticket.Record{}
	}
	s.records[key] = rec
	return nil
}

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(context.Context) error { return p.err }

func newTestServer(t *testing.T, renderer ReceiptRenderer, bus BulkPublisher) *Server {
	t.Helper()
	return newTestServerWithLogger(t, renderer, bus, zerolog.Nop())
}

func newTestServerWithLogger(t *testing.T, renderer ReceiptRenderer, bus BulkPublisher, logger zerolog.Logger) *Server {
	t.Helper()

	orderService := services.NewOrderService(
		&stubRepo{}, &stubTicketStore{}, &stubBus{}, "http://localhost:8080", logger,
	)

	return NewServer(
		echo.New(),
		":0",
		orderService,
		renderer,
		bus,
		&stubPinger{},
		testAPIKey,
		logger,
		func() bool { return true },
	)
}

func TestGetReceiptHandler_StreamsPDF(t *testing.T) {
	srv := newTestServer(t, &stubRenderer{}, &stubBus{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/receipt/ref-123", nil)
	rec := httptest.NewRecorder()
	srv.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="ref-123_receipt.pdf"`,
		rec.Header().Get(echo.HeaderContentDisposition))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestGetReceiptHandler_VariantRoutes(t *testing.T) {
	srv := newTestServer(t, &stubRenderer{}, &stubBus{})

	for path, want := range map[string]string{
		"/api/v1/receipt/ref-1":     "standard",
		"/api/v1/receipt/ref-1/pos": "pos",
		"/api/v1/receipt/ref-1/qr":  "minimal",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), want, path)
	}
}

func TestGetReceiptHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unknown reference", fmt.Errorf("record: %w", ticket.ErrNotFound), http.StatusNotFound},
		{"cache down", fmt.Errorf("redis: %w", ticket.ErrCacheUnavailable), http.StatusServiceUnavailable},
		{"render failure", fmt.Errorf("compose: %w", ticket.ErrRender), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, &stubRenderer{err: tc.err}, &stubBus{})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/receipt/ref-x", nil)
			rec := httptest.NewRecorder()
			srv.e.ServeHTTP(rec, req)

			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestCreateOrderHandler_RequiresAPIKey(t *testing.T) {
	srv := newTestServer(t, &stubRenderer{}, &stubBus{})

	body := `{"event_name":"Jazz Night","user_name":"Ama","ticket_type":"VIP"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/order", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrderHandler_CreatesOrder(t *testing.T) {
	srv := newTestServer(t, &stubRenderer{}, &stubBus{})

	body := `{"event_name":"Jazz Night","user_name":"Ama","ticket_type":"VIP","price":"150.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/order", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-API-Key", testAPIKey)
	rec := httptest.NewRecorder()
	srv.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Reference)
	assert.Contains(t, resp.QRCodeURL, "/api/v1/receipt/"+resp.Reference)
	assert.Len(t, resp.UnlockToken, 6)
}

func TestCreateOrderHandler_RejectsIncompleteOrder(t *testing.T) {
	srv := newTestServer(t, &stubRenderer{}, &stubBus{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/order", strings.NewReader(`{"user_name":"Ama"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-API-Key", testAPIKey)
	rec := httptest.NewRecorder()
	srv.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkReceiptsHandler_AcceptsJob(t *testing.T) {
	bus := &stubBus{}
	srv := newTestServer(t, &stubRenderer{}, bus)

	body := `{"references":["ref-a","ref-b"],"variant":"pos"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/bulk", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-API-Key", testAPIKey)
	rec := httptest.NewRecorder()
	srv.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp BulkReceiptsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.JobID)
	assert.Equal(t, 2, resp.Count)

	require.Len(t, bus.published, 1)
	event, ok := bus.published[0].(ticket.BulkReceiptRequested)
	require.True(t, ok)
	assert.Equal(t, resp.JobID, event.JobID)
	assert.Equal(t, []string{"ref-a", "ref-b"}, event.References)
}

func TestBulkReceiptsHandler_RejectsBadInput(t *testing.T) {
	srv := newTestServer(t, &stubRenderer{}, &stubBus{})

	for name, body := range map[string]string{
		"no references":   `{"references":[],"variant":"standard"}`,
		"unknown variant": `{"references":["ref-a"],"variant":"giant"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/bulk", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-API-Key", testAPIKey)
		rec := httptest.NewRecorder()
		srv.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestRequestLoggingEmits(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	srv := newTestServerWithLogger(t, &stubRenderer{err: ticket.ErrNotFound}, &stubBus{}, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/receipt/ref-log", nil)
	req.Header.Set("Correlation-ID", "corr-42")
	rec := httptest.NewRecorder()
	srv.e.ServeHTTP(rec, req)

	logs := buf.String()
	assert.Contains(t, logs, "Handling a request")
	assert.Contains(t, logs, "Request handling error")
	assert.Contains(t, logs, `"correlation_id":"corr-42"`)
	assert.Contains(t, logs, "/api/v1/receipt/ref-log")
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(t, &stubRenderer{}, &stubBus{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
