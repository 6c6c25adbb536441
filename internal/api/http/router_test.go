package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quickdesk/quickdesk/internal/api/dto"
	"github.com/quickdesk/quickdesk/internal/api/http/handlers"
	"github.com/quickdesk/quickdesk/internal/events"
	"github.com/quickdesk/quickdesk/internal/observability"
	"github.com/quickdesk/quickdesk/internal/persistence"
	"github.com/quickdesk/quickdesk/internal/repository"
	"github.com/quickdesk/quickdesk/internal/service"
)

type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	notes := repository.NewMemoryNoteRepository()
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repository.NewMemoryTicketRepository(notes),
		NoteRepo:   notes,
		Dispatcher: events.NewInMemoryDispatcher(),
	})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("quickdesk-test", "dev", &persistence.Postgres{}, &persistence.Redis{}),
		Tickets: handlers.NewTicketsHandler(ticketService),
		Notes:   handlers.NewNotesHandler(ticketService),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func createTicket(t *testing.T, app *fiber.App) dto.TicketResponse {
	t.Helper()
	resp, raw := doJSON(t, app, fiber.MethodPost, "/api/tickets", fiber.Map{
		"name":        "A",
		"email":       "a@x.com",
		"subject":     "S",
		"description": "D",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ticket dto.TicketResponse
	require.NoError(t, json.Unmarshal(raw, &ticket))
	return ticket
}

func TestTicketLifecycleEndToEnd(t *testing.T) {
	app := newTestApp(t)

	ticket := createTicket(t, app)
	assert.Equal(t, "medium", string(ticket.Priority))
	assert.Equal(t, "open", string(ticket.Status))
	assert.Nil(t, ticket.ResolvedAt)
	assert.False(t, ticket.CreatedAt.IsZero())

	resp, raw := doJSON(t, app, fiber.MethodPatch, "/api/tickets/"+ticket.ID+"/resolve", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var resolved dto.TicketResponse
	require.NoError(t, json.Unmarshal(raw, &resolved))
	assert.Equal(t, "resolved", string(resolved.Status))
	require.NotNil(t, resolved.ResolvedAt)
	assert.False(t, resolved.ResolvedAt.Before(resolved.CreatedAt))

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/tickets/"+ticket.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw = doJSON(t, app, fiber.MethodGet, "/api/tickets/"+ticket.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "ticket not found", body.Message)
}

func TestCreateTicketValidationBody(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, fiber.MethodPost, "/api/tickets", fiber.Map{
		"name":  "A",
		"email": "a@x.com",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Invalid ticket data", body.Message)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "subject", body.Errors[0].Field)
	assert.Equal(t, "description", body.Errors[1].Field)
}

func TestCreateTicketRejectsBadPriority(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/tickets", fiber.Map{
		"name":        "A",
		"email":       "a@x.com",
		"subject":     "S",
		"description": "D",
		"priority":    "critical",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResolveUnknownTicket(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPatch, "/api/tickets/00000000-0000-0000-0000-000000000000/resolve", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateIgnoresClientResolvedAt(t *testing.T) {
	app := newTestApp(t)
	ticket := createTicket(t, app)

	spoofed := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	resp, raw := doJSON(t, app, fiber.MethodPatch, "/api/tickets/"+ticket.ID, fiber.Map{
		"status":     "resolved",
		"resolvedAt": spoofed,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.TicketResponse
	require.NoError(t, json.Unmarshal(raw, &updated))
	require.NotNil(t, updated.ResolvedAt)
	assert.True(t, updated.ResolvedAt.After(spoofed), "server clock must override the client value")
}

func TestUpdateRejectsReopen(t *testing.T) {
	app := newTestApp(t)
	ticket := createTicket(t, app)
	resp, _ := doJSON(t, app, fiber.MethodPatch, "/api/tickets/"+ticket.ID+"/resolve", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPatch, "/api/tickets/"+ticket.ID, fiber.Map{"status": "open"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLiveAndPastLists(t *testing.T) {
	app := newTestApp(t)
	first := createTicket(t, app)
	second := createTicket(t, app)
	resp, _ := doJSON(t, app, fiber.MethodPatch, "/api/tickets/"+first.ID+"/resolve", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doJSON(t, app, fiber.MethodGet, "/api/tickets/live", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var live []dto.TicketResponse
	require.NoError(t, json.Unmarshal(raw, &live))
	require.Len(t, live, 1)
	assert.Equal(t, second.ID, live[0].ID)
	assert.NotEmpty(t, live[0].TimeOpen)

	resp, raw = doJSON(t, app, fiber.MethodGet, "/api/tickets/past", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var past []dto.TicketResponse
	require.NoError(t, json.Unmarshal(raw, &past))
	require.Len(t, past, 1)
	assert.Equal(t, first.ID, past[0].ID)
	assert.NotEmpty(t, past[0].ResolutionTime)
}

func TestStatsEndpoint(t *testing.T) {
	app := newTestApp(t)
	ticket := createTicket(t, app)
	createTicket(t, app)
	resp, _ := doJSON(t, app, fiber.MethodPatch, "/api/tickets/"+ticket.ID+"/resolve", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doJSON(t, app, fiber.MethodGet, "/api/tickets/stats", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats dto.StatsResponse
	require.NoError(t, json.Unmarshal(raw, &stats))
	assert.Equal(t, 2, stats.TotalTickets)
	assert.Equal(t, 1, stats.LiveTickets)
	assert.Equal(t, 1, stats.ResolvedTickets)
	assert.Equal(t, 4.8, stats.CustomerSatisfaction)
}

func TestNotesEndpoints(t *testing.T) {
	app := newTestApp(t)
	ticket := createTicket(t, app)

	resp, raw := doJSON(t, app, fiber.MethodPost, "/api/tickets/"+ticket.ID+"/notes", fiber.Map{"content": "called the customer"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var note dto.NoteResponse
	require.NoError(t, json.Unmarshal(raw, &note))
	assert.Equal(t, ticket.ID, note.TicketID)
	assert.Equal(t, "called the customer", note.Content)

	resp, raw = doJSON(t, app, fiber.MethodGet, "/api/tickets/"+ticket.ID+"/notes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var notes []dto.NoteResponse
	require.NoError(t, json.Unmarshal(raw, &notes))
	require.Len(t, notes, 1)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/tickets/"+ticket.ID+"/notes", fiber.Map{"content": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/tickets/00000000-0000-0000-0000-000000000000/notes", fiber.Map{"content": "orphan"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTimelineEndpoint(t *testing.T) {
	app := newTestApp(t)
	ticket := createTicket(t, app)
	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/tickets/"+ticket.ID+"/notes", fiber.Map{"content": "escalated"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := doJSON(t, app, fiber.MethodGet, "/api/tickets/"+ticket.ID+"/timeline", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []dto.TimelineEntryResponse
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "note", string(entries[0].Type))
	assert.Equal(t, "created", string(entries[len(entries)-1].Type))
	assert.Equal(t, "A", entries[len(entries)-1].Author)
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, fiber.MethodGet, "/health/live", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "alive")
}
