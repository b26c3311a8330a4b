package httpapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rise-and-shine/agenda/calendar/commands"
	"github.com/rise-and-shine/agenda/calendar/commandstore"
	"github.com/rise-and-shine/agenda/calendar/httpapi"
	"github.com/rise-and-shine/agenda/calendar/queries"
	"github.com/rise-and-shine/agenda/calendar/querystore"
	"github.com/rise-and-shine/agenda/calendar/relay"
	"github.com/rise-and-shine/agenda/http/server"
	"github.com/rise-and-shine/agenda/http/server/middleware"
	"github.com/rise-and-shine/agenda/observability/logger"
	"github.com/rise-and-shine/agenda/sqldb"
)

type event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type errorBody struct {
	TraceID string `json:"trace_id"`
	Error   struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

func newServer(t *testing.T) *server.HTTPServer {
	t.Helper()

	dbCfg := sqldb.Config{
		Driver:       sqldb.DriverSQLite,
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		PingAttempts: 1,
	}
	db, err := sqldb.NewBunDB(t.Context(), dbCfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, commandstore.Migrate(t.Context(), db))

	log := logger.FromZap(zap.NewNop())
	projection := querystore.NewMemory()
	bus := relay.NewBus(nil)
	bus.Subscribe("projector", relay.NewProjector(projection))

	handler := httpapi.NewHandler(
		commands.NewSet(commandstore.New(db, dbCfg.Schema()), bus, log, time.Second),
		queries.NewSet(projection, log),
		bus.Registry(),
	)

	srv := server.NewHTTPServer(server.Config{BodyLimit: 1 << 20}, []server.Middleware{
		middleware.NewRecoveryMW(log),
		middleware.NewTracingMW(),
		middleware.NewTimeoutMW(5 * time.Second),
		middleware.NewMetaInjectMW("agenda", "test"),
		middleware.NewLoggerMW(log),
		middleware.NewErrorHandlerMW(false),
	})
	srv.RegisterRouter(handler.Register)
	return srv
}

func do(t *testing.T, srv *server.HTTPServer, method, path, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := srv.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func listEvents(t *testing.T, srv *server.HTTPServer) []event {
	t.Helper()

	status, raw := do(t, srv, http.MethodGet, "/queries/events", "")
	require.Equal(t, http.StatusOK, status, string(raw))

	var events []event
	require.NoError(t, json.Unmarshal(raw, &events))
	return events
}

func TestStandupOverHTTP(t *testing.T) {
	srv := newServer(t)

	status, raw := do(t, srv, http.MethodPost, "/commands/events",
		`{"title":"Standup","description":"Daily sync","date":"2024-01-02T09:00"}`)
	require.Equal(t, http.StatusCreated, status, string(raw))

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	_, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	assert.Equal(t, []event{{
		ID:          created.ID,
		Title:       "Standup",
		Description: "Daily sync",
		Date:        "2024-01-02T09:00:00Z",
	}}, listEvents(t, srv))

	status, raw = do(t, srv, http.MethodPut, "/commands/events/"+created.ID,
		`{"title":"Standup","description":"Moved","date":"2024-01-02T10:00:00Z"}`)
	require.Equal(t, http.StatusOK, status, string(raw))

	assert.Equal(t, []event{{
		ID:          created.ID,
		Title:       "Standup",
		Description: "Moved",
		Date:        "2024-01-02T10:00:00Z",
	}}, listEvents(t, srv))

	status, raw = do(t, srv, http.MethodGet, "/queries/events/"+created.ID, "")
	require.Equal(t, http.StatusOK, status, string(raw))

	status, raw = do(t, srv, http.MethodGet, "/queries/events/count", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"count":1}`, string(raw))

	status, _ = do(t, srv, http.MethodDelete, "/commands/events/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, listEvents(t, srv))

	status, raw = do(t, srv, http.MethodDelete, "/commands/events/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, status)

	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "EVENT_NOT_FOUND", body.Error.Code)
	assert.NotEmpty(t, body.TraceID)
}

func TestUnknownIDReturnsNotFound(t *testing.T) {
	srv := newServer(t)
	id := uuid.NewString()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{
			name:   "update",
			method: http.MethodPut,
			path:   "/commands/events/" + id,
			body:   `{"title":"Ghost","date":"2024-01-02T09:00:00Z"}`,
		},
		{name: "delete", method: http.MethodDelete, path: "/commands/events/" + id},
		{name: "get", method: http.MethodGet, path: "/queries/events/" + id},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, raw := do(t, srv, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusNotFound, status, string(raw))

			var body errorBody
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, "EVENT_NOT_FOUND", body.Error.Code)
		})
	}
}

func TestBadRequests(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		field  string
	}{
		{
			name:   "date not a string",
			method: http.MethodPost,
			path:   "/commands/events",
			body:   `{"title":"Standup","date":20240102}`,
		},
		{
			name:   "malformed id on update",
			method: http.MethodPut,
			path:   "/commands/events/42",
			body:   `{"title":"Standup"}`,
			field:  "id",
		},
		{
			name:   "malformed date",
			method: http.MethodPost,
			path:   "/commands/events",
			body:   `{"title":"Standup","date":"tomorrow"}`,
		},
		{
			name:   "malformed id",
			method: http.MethodDelete,
			path:   "/commands/events/not-a-uuid",
			field:  "id",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, raw := do(t, srv, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, status, string(raw))

			if tc.field != "" {
				var body errorBody
				require.NoError(t, json.Unmarshal(raw, &body))
				assert.Contains(t, body.Error.Fields, tc.field)
			}
		})
	}

	assert.Empty(t, listEvents(t, srv))
}

func TestCreateWithoutTitleOrDate(t *testing.T) {
	srv := newServer(t)

	for _, body := range []string{`{}`, `{"title":"","description":"","date":null}`} {
		status, raw := do(t, srv, http.MethodPost, "/commands/events", body)
		require.Equal(t, http.StatusCreated, status, string(raw))
	}

	events := listEvents(t, srv)
	require.Len(t, events, 2)
	for _, ev := range events {
		assert.Empty(t, ev.Title)
		assert.Empty(t, ev.Description)
		assert.Equal(t, "0001-01-01T00:00:00Z", ev.Date)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newServer(t)

	status, raw := do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))

	status, _ = do(t, srv, http.MethodPost, "/commands/events", `{"title":"Standup","date":"2024-01-02T09:00:00Z"}`)
	require.Equal(t, http.StatusCreated, status)

	status, raw = do(t, srv, http.MethodGet, "/internal/metrics", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"relay.event.created.published":1}`, string(raw))
}
