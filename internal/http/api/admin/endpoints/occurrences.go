package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/presenca-app/presenca/internal/attendance"
	"github.com/presenca-app/presenca/internal/db"
	"github.com/presenca-app/presenca/internal/http/api"
	"github.com/presenca-app/presenca/internal/http/api/admin/packets"
	"github.com/presenca-app/presenca/internal/model"
	"github.com/presenca-app/presenca/internal/notify"
	"github.com/presenca-app/presenca/internal/schedule"
)

type OccurrenceController struct {
	store     db.Store
	service   *attendance.Service
	publisher *notify.Publisher
}

func NewOccurrenceController(store db.Store, service *attendance.Service, publisher *notify.Publisher) *OccurrenceController {
	return &OccurrenceController{store: store, service: service, publisher: publisher}
}

func OccurrenceModule(store db.Store, service *attendance.Service, publisher *notify.Publisher) api.Module {
	ctl := NewOccurrenceController(store, service, publisher)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/occurrences/:id", ctl.getOccurrence)
		c.GET("/occurrences/:id/attendance", ctl.listAttendance)
		c.POST("/occurrences/:id/checkin", ctl.checkin)
		c.POST("/occurrences/:id/checkout", ctl.checkout)
	})
}

// attendanceError maps state-machine rejections to HTTP codes; anything
// unrecognized is a storage failure.
func attendanceError(err error) *api.APIError {
	switch {
	case errors.Is(err, attendance.ErrWindowClosed),
		errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrNotCheckedIn):
		return &api.APIError{Code: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, attendance.ErrCodeRequired):
		return &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, attendance.ErrInvalidCode):
		return &api.APIError{Code: http.StatusForbidden, Message: err.Error()}
	default:
		return &api.APIError{Code: http.StatusInternalServerError, Message: "attendance operation failed"}
	}
}

func (o *OccurrenceController) getOccurrence(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	occ, err := o.store.GetOccurrenceByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "occurrence not found"}
	}
	return schedule.OccurrenceWithStatus{
		Occurrence: *occ,
		Status:     schedule.Status(occ, time.Now()),
	}, nil
}

func (o *OccurrenceController) listAttendance(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	list, err := o.store.ListOccurrenceAttendance(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list attendance"}
	}
	return list, nil
}

func (o *OccurrenceController) checkin(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireProfiles(user, model.ProfileAdmin, model.ProfileOrganizer, model.ProfileVolunteer); apiErr != nil {
		return nil, apiErr
	}
	occurrenceID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.CheckinRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	now := time.Now()
	result, err := o.service.CheckIn(occurrenceID, request.ParticipantID, now)
	if err != nil {
		return nil, attendanceError(err)
	}

	if occ, err := o.store.GetOccurrenceByID(occurrenceID); err == nil {
		o.publisher.PublishAttendance(notify.AttendanceEvent{
			Action:        "checkin",
			EventID:       occ.EventID,
			OccurrenceID:  occurrenceID,
			ParticipantID: request.ParticipantID,
			At:            result.Attendance.CheckinAt,
		})
	}

	return packets.CheckinResponse{Attendance: *result.Attendance, Code: result.Code}, nil
}

func (o *OccurrenceController) checkout(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireProfiles(user, model.ProfileAdmin, model.ProfileOrganizer, model.ProfileVolunteer); apiErr != nil {
		return nil, apiErr
	}
	occurrenceID, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.CheckoutRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if _, err := o.store.GetParticipantByID(request.CheckoutByParticipantID); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "checkout_by participant not found"}
	}

	now := time.Now()
	att, err := o.service.CheckOut(occurrenceID, request.ParticipantID, request.CheckoutByParticipantID, request.Code, now)
	if err != nil {
		return nil, attendanceError(err)
	}

	if occ, err := o.store.GetOccurrenceByID(occurrenceID); err == nil {
		o.publisher.PublishAttendance(notify.AttendanceEvent{
			Action:        "checkout",
			EventID:       occ.EventID,
			OccurrenceID:  occurrenceID,
			ParticipantID: request.ParticipantID,
			At:            *att.CheckoutAt,
		})
	}

	return packets.CheckoutResponse{Attendance: *att}, nil
}
