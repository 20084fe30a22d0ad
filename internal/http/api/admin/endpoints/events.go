package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/presenca-app/presenca/internal/db"
	"github.com/presenca-app/presenca/internal/http/api"
	"github.com/presenca-app/presenca/internal/http/api/admin/packets"
	"github.com/presenca-app/presenca/internal/model"
	"github.com/presenca-app/presenca/internal/redis"
	"github.com/presenca-app/presenca/internal/schedule"
)

type EventController struct {
	store db.Store
	loc   *time.Location
}

func NewEventController(store db.Store, loc *time.Location) *EventController {
	return &EventController{store: store, loc: loc}
}

func EventModule(store db.Store, loc *time.Location) api.Module {
	ctl := NewEventController(store, loc)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/events", ctl.listEvents)
		c.GET("/events/:id", ctl.getEvent)
		c.POST("/events", ctl.createEvent)
		c.PATCH("/events/:id", ctl.updateEvent)
		c.DELETE("/events/:id", ctl.deleteEvent)

		// calendar feed: the event's occurrences with their window status
		c.GET("/events/:id/occurrences", ctl.listOccurrences)
	})
}

// eventFromRequest validates the single-vs-recurring invariant and builds the
// model. Exactly one of the single pair or the recurrence triple may be set.
func eventFromRequest(request *packets.CreateEventRequest) (*model.Event, *api.APIError) {
	ev := &model.Event{
		Name:        request.Name,
		Description: request.Description,
		IsRecurring: request.IsRecurring,
	}

	if request.IsRecurring {
		if request.SingleStart != nil || request.SingleEnd != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "recurring events must not set single_start/single_end"}
		}
		if request.RecurrenceStartDate == nil || request.RecurrenceEndDate == nil || request.RecurrenceRule == nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: schedule.ErrMissingRecurrenceData.Error()}
		}
		startDate, err := parseDate(*request.RecurrenceStartDate)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "recurrence_start_date must be YYYY-MM-DD"}
		}
		endDate, err := parseDate(*request.RecurrenceEndDate)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "recurrence_end_date must be YYYY-MM-DD"}
		}
		ev.RecurrenceStartDate = &startDate
		ev.RecurrenceEndDate = &endDate
		ev.RecurrenceRule = request.RecurrenceRule
		return ev, nil
	}

	if request.RecurrenceStartDate != nil || request.RecurrenceEndDate != nil || request.RecurrenceRule != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "one-off events must not set recurrence fields"}
	}
	if request.SingleStart == nil || request.SingleEnd == nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "single_start and single_end are required together"}
	}
	start, err := time.Parse(time.RFC3339, *request.SingleStart)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "single_start must be RFC 3339"}
	}
	end, err := time.Parse(time.RFC3339, *request.SingleEnd)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "single_end must be RFC 3339"}
	}
	if !start.Before(end) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "single_start must precede single_end"}
	}
	ev.SingleStart = &start
	ev.SingleEnd = &end
	return ev, nil
}

func (e *EventController) regenerate(ctx *gin.Context, ev *model.Event) (int, *api.APIError) {
	occurrences, err := schedule.Regenerate(e.store, ev, e.loc)
	if err != nil {
		if errors.Is(err, schedule.ErrMissingRecurrenceData) || errors.Is(err, schedule.ErrInvalidWindow) {
			return 0, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
		log.Error().Err(err).Int("event_id", ev.ID).Msg("occurrence regeneration failed")
		return 0, &api.APIError{Code: http.StatusInternalServerError, Message: "could not regenerate occurrences"}
	}
	redis.InvalidateOccurrenceFeed(ctx.Request.Context(), ev.ID)
	return len(occurrences), nil
}

func (e *EventController) listEvents(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := e.store.ListEvents()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list events"}
	}
	return list, nil
}

func (e *EventController) getEvent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	ev, err := e.store.GetEventByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "event not found"}
	}
	return ev, nil
}

func (e *EventController) createEvent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireProfiles(user, model.ProfileAdmin, model.ProfileOrganizer); apiErr != nil {
		return nil, apiErr
	}
	var request packets.CreateEventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	ev, apiErr := eventFromRequest(&request)
	if apiErr != nil {
		return nil, apiErr
	}

	created, err := e.store.CreateEvent(ev)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create event"}
	}
	count, apiErr := e.regenerate(ctx, created)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.EventResponse{Event: *created, Occurrences: count}, nil
}

// updateEvent replaces the event's schedule fields and regenerates its
// occurrences. Regeneration discards attendance history for the event, which
// is accepted behavior for schedule edits.
func (e *EventController) updateEvent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireProfiles(user, model.ProfileAdmin, model.ProfileOrganizer); apiErr != nil {
		return nil, apiErr
	}
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	if _, err := e.store.GetEventByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "event not found"}
	}

	var request packets.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	ev, apiErr := eventFromRequest(&request)
	if apiErr != nil {
		return nil, apiErr
	}
	ev.ID = id

	if err := e.store.UpdateEvent(ev); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update event"}
	}
	count, apiErr := e.regenerate(ctx, ev)
	if apiErr != nil {
		return nil, apiErr
	}
	updated, err := e.store.GetEventByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load event"}
	}
	return packets.EventResponse{Event: *updated, Occurrences: count}, nil
}

func (e *EventController) deleteEvent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireProfiles(user, model.ProfileAdmin); apiErr != nil {
		return nil, apiErr
	}
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	if err := e.store.DeleteEvent(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete event"}
	}
	redis.InvalidateOccurrenceFeed(ctx.Request.Context(), id)
	return packets.MessageResponse{Message: "deleted"}, nil
}

// listOccurrences serves the check-in UI feed. The occurrence rows are cached
// briefly in Redis; the window status is recomputed for every request since
// it depends on the current instant.
func (e *EventController) listOccurrences(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	var occurrences []model.Occurrence
	if cached := redis.GetOccurrenceFeed(ctx.Request.Context(), id); cached != nil {
		if err := json.Unmarshal(cached, &occurrences); err != nil {
			occurrences = nil
		}
	}
	if occurrences == nil {
		if _, err := e.store.GetEventByID(id); err != nil {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "event not found"}
		}
		list, err := e.store.ListEventOccurrences(id)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list occurrences"}
		}
		occurrences = list
		if payload, err := json.Marshal(occurrences); err == nil {
			redis.CacheOccurrenceFeed(ctx.Request.Context(), id, payload)
		}
	}

	now := time.Now()
	feed := make([]schedule.OccurrenceWithStatus, 0, len(occurrences))
	for _, occ := range occurrences {
		feed = append(feed, schedule.OccurrenceWithStatus{
			Occurrence: occ,
			Status:     schedule.Status(&occ, now),
		})
	}
	return packets.OccurrenceFeedResponse{EventID: id, Occurrences: feed}, nil
}
