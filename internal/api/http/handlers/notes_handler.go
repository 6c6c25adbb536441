package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickdesk/quickdesk/internal/api/dto"
	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/service"
	"github.com/quickdesk/quickdesk/pkg/util"
)

// NotesHandler manages per-ticket note and timeline endpoints.
type NotesHandler struct {
	service *service.TicketService
}

// NewNotesHandler constructs handler.
func NewNotesHandler(ticketService *service.TicketService) *NotesHandler {
	return &NotesHandler{service: ticketService}
}

// CreateNote POST /api/tickets/:id/notes.
func (h *NotesHandler) CreateNote(c *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid note data", nil)
	}
	note, err := h.service.AddNote(c.UserContext(), c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(noteResponse(note))
}

// ListNotes GET /api/tickets/:id/notes.
func (h *NotesHandler) ListNotes(c *fiber.Ctx) error {
	notes, err := h.service.ListNotes(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		items = append(items, noteResponse(&notes[i]))
	}
	return c.JSON(items)
}

// Timeline GET /api/tickets/:id/timeline.
func (h *NotesHandler) Timeline(c *fiber.Ctx) error {
	entries, err := h.service.Timeline(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.TimelineEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.TimelineEntryResponse{
			Type:      entry.Kind,
			Content:   entry.Content,
			Author:    entry.Author,
			CreatedAt: entry.CreatedAt,
		})
	}
	return c.JSON(items)
}

func noteResponse(note *domain.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        note.ID,
		TicketID:  note.TicketID,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
	}
}
