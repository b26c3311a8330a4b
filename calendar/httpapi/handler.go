// Package httpapi exposes the calendar commands and queries over HTTP.
package httpapi

import (
	"context"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rcrowley/go-metrics"
	"github.com/samber/lo"

	"github.com/rise-and-shine/agenda/calendar/commands"
	"github.com/rise-and-shine/agenda/calendar/queries"
	"github.com/rise-and-shine/agenda/calendar/relay"
	"github.com/rise-and-shine/agenda/cqrs/query"
	"github.com/rise-and-shine/agenda/http/server/forward"
	"github.com/rise-and-shine/agenda/val"
)

type Handler struct {
	commands commands.Set
	queries  queries.Set
	registry metrics.Registry
}

func NewHandler(cmds commands.Set, qs queries.Set, registry metrics.Registry) *Handler {
	return &Handler{commands: cmds, queries: qs, registry: registry}
}

// Register mounts every route on r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/health", h.health)
	r.Get("/internal/metrics", h.metrics)

	cmd := r.Group("/commands/events")
	cmd.Post("/", forward.ToUseCase(h.createEvent, forward.WithStatus(fiber.StatusCreated)))
	cmd.Put("/:id", forward.ToUseCaseNoResp(h.updateEvent))
	cmd.Delete("/:id", forward.ToUseCaseNoResp(h.deleteEvent, forward.WithStatus(fiber.StatusNoContent)))

	qry := r.Group("/queries/events")
	qry.Get("/", forward.ToUseCase(h.listEvents))
	qry.Get("/count", forward.ToUseCase(h.countEvents))
	qry.Get("/:id", forward.ToUseCase(h.getEvent))
}

func (h *Handler) createEvent(ctx context.Context, req *createEventRequest) (createdResponse, error) {
	id, err := h.commands.Create.Execute(ctx, commands.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date.Time,
	})
	if err != nil {
		return createdResponse{}, errx.Wrap(err)
	}
	return createdResponse{ID: id.String()}, nil
}

func (h *Handler) updateEvent(ctx context.Context, req *updateEventRequest) error {
	id, err := parseID(req.ID)
	if err != nil {
		return err
	}

	_, err = h.commands.Update.Execute(ctx, commands.UpdateEventInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date.Time,
	})
	return errx.Wrap(err)
}

func (h *Handler) deleteEvent(ctx context.Context, req *eventIDRequest) error {
	id, err := parseID(req.ID)
	if err != nil {
		return err
	}

	_, err = h.commands.Delete.Execute(ctx, commands.DeleteEventInput{ID: id})
	return errx.Wrap(err)
}

func (h *Handler) listEvents(ctx context.Context, _ *emptyRequest) ([]eventResponse, error) {
	events, err := h.queries.List.Execute(ctx, query.NoInput{})
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return lo.Map(events, toEventResponse), nil
}

func (h *Handler) countEvents(ctx context.Context, _ *emptyRequest) (countResponse, error) {
	n, err := h.queries.Count.Execute(ctx, query.NoInput{})
	if err != nil {
		return countResponse{}, errx.Wrap(err)
	}
	return countResponse{Count: n}, nil
}

func (h *Handler) getEvent(ctx context.Context, req *eventIDRequest) (eventResponse, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return eventResponse{}, err
	}

	ev, err := h.queries.Get.Execute(ctx, id)
	if err != nil {
		return eventResponse{}, errx.Wrap(err)
	}
	return toEventResponse(ev, 0), nil
}

func (h *Handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) metrics(c *fiber.Ctx) error {
	return c.JSON(relay.Snapshot(h.registry))
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errx.Wrap(err,
			errx.WithType(errx.T_Validation),
			errx.WithCode(val.CodeValidationFailed),
			errx.WithFields(errx.M{"id": "Must be a valid UUID"}),
		)
	}
	return id, nil
}
