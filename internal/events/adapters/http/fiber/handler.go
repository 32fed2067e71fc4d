package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"website-stats-service/internal/events/core/usecase"
	"website-stats-service/internal/platform/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const maxBatchSize = 100

type StoreEventUseCase interface {
	Execute(ctx context.Context, in usecase.StoreEventInput) (bool, error)
	BulkCreateEvents(ctx context.Context, in usecase.BulkCreateEventsInput) (usecase.BulkCreateEventsResult, error)
}

// EventRecorder counts stored events. Optional.
type EventRecorder interface {
	EventStored(created bool)
}

type EventHandler struct {
	storeUC StoreEventUseCase
	rec     EventRecorder
	log     zerolog.Logger
}

func NewEventHandler(storeUC StoreEventUseCase, rec EventRecorder) *EventHandler {
	return &EventHandler{
		storeUC: storeUC,
		rec:     rec,
		log:     logger.Component("events"),
	}
}

// Register mounts the collection routes.
func (h *EventHandler) Register(r fiber.Router) {
	r.Post("/send", h.CreateEvent)
	r.Post("/send/batch", h.BulkCreateEvents)
}

// CreateEvent godoc
// @Summary Collect a website event
// @Description Stores a single page view or custom event with idempotency handling
// @Tags Events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Event payload"
// @Success 201 {object} CreateEventResponse
// @Success 200 {object} CreateEventResponse "Duplicate event"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/send [post]
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req CreateEventRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	created, err := h.storeUC.Execute(c.UserContext(), toInput(req))
	if err != nil {
		return h.writeError(c, err)
	}
	h.record(created)

	if !created {
		return c.Status(http.StatusOK).JSON(CreateEventResponse{
			Status: "duplicate",
		})
	}

	return c.Status(http.StatusCreated).JSON(CreateEventResponse{
		Status: "created",
	})
}

// BulkCreateEvents godoc
// @Summary Collect a batch of website events
// @Description Validates every event first, then stores them individually
// @Tags Events
// @Accept json
// @Produce json
// @Param request body BulkCreateEventsRequest true "Batch payload"
// @Success 201 {object} BulkCreateEventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/send/batch [post]
func (h *EventHandler) BulkCreateEvents(c *fiber.Ctx) error {
	var req BulkCreateEventsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	if len(req.Events) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "events_list_required",
		})
	}
	if len(req.Events) > maxBatchSize {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "too_many_events",
			Message: fmt.Sprintf("at most %d events per batch", maxBatchSize),
		})
	}

	inputs := make([]usecase.StoreEventInput, len(req.Events))
	for i, e := range req.Events {
		inputs[i] = toInput(e)
	}

	result, err := h.storeUC.BulkCreateEvents(
		c.UserContext(),
		usecase.BulkCreateEventsInput{Events: inputs},
	)
	if err != nil {
		return h.writeError(c, err)
	}
	for i := 0; i < result.Created; i++ {
		h.record(true)
	}
	for i := 0; i < result.Duplicates; i++ {
		h.record(false)
	}

	return c.Status(fiber.StatusCreated).JSON(BulkCreateEventsResponse{
		Created:    result.Created,
		Duplicates: result.Duplicates,
	})
}

func (h *EventHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidEvent),
		errors.Is(err, usecase.ErrFutureTime),
		errors.Is(err, usecase.ErrUnknownWebsite):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_event",
			Message: err.Error(),
		})
	default:
		h.log.Error().Err(err).Str("path", c.Path()).Msg("store event failed")
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func (h *EventHandler) record(created bool) {
	if h.rec != nil {
		h.rec.EventStored(created)
	}
}

func toInput(req CreateEventRequest) usecase.StoreEventInput {
	return usecase.StoreEventInput{
		WebsiteID: req.Website,
		SessionID: req.SessionID,
		VisitID:   req.VisitID,
		URL:       req.URL,
		Query:     req.Query,
		Referrer:  req.Referrer,
		Title:     req.Title,
		Name:      req.Name,
		OS:        req.OS,
		Browser:   req.Browser,
		Device:    req.Device,
		Country:   req.Country,
		Region:    req.Region,
		City:      req.City,
		Timestamp: req.Timestamp,
	}
}
