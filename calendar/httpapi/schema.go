package httpapi

import "github.com/rise-and-shine/agenda/calendar"

type createEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        Timestamp `json:"date"`
}

type updateEventRequest struct {
	ID          string    `params:"id"        validate:"required,uuid"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        Timestamp `json:"date"`
}

type eventIDRequest struct {
	ID string `params:"id" validate:"required,uuid"`
}

type emptyRequest struct{}

type createdResponse struct {
	ID string `json:"id"`
}

type countResponse struct {
	Count int `json:"count"`
}

type eventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func toEventResponse(ev calendar.Event, _ int) eventResponse {
	return eventResponse{
		ID:          ev.ID.String(),
		Title:       ev.Title,
		Description: ev.Description,
		Date:        formatDate(ev.Date),
	}
}
