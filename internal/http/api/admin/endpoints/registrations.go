package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/presenca-app/presenca/internal/db"
	"github.com/presenca-app/presenca/internal/http/api"
	"github.com/presenca-app/presenca/internal/http/api/admin/packets"
	"github.com/presenca-app/presenca/internal/model"
)

type RegistrationController struct {
	store db.Store
}

func NewRegistrationController(store db.Store) *RegistrationController {
	return &RegistrationController{store: store}
}

// RegistrationModule mounts the admin review flow for signup requests.
func RegistrationModule(store db.Store) api.Module {
	ctl := NewRegistrationController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/registrations", ctl.listRequests)
		c.GET("/registrations/:id", ctl.getRequest)
		c.POST("/registrations/:id/approve", ctl.approveRequest)
		c.POST("/registrations/:id/reject", ctl.rejectRequest)
	})
}

func (r *RegistrationController) listRequests(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireProfiles(user, model.ProfileAdmin); apiErr != nil {
		return nil, apiErr
	}
	requests, err := r.store.ListRegistrationRequests()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list registration requests"}
	}
	return requests, nil
}

func (r *RegistrationController) getRequest(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireProfiles(user, model.ProfileAdmin); apiErr != nil {
		return nil, apiErr
	}
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	request, err := r.store.GetRegistrationRequest(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "registration request not found"}
	}
	return request, nil
}

// approveRequest creates the active user from a pending request. The admin
// may override username, email, or profile before approval.
func (r *RegistrationController) approveRequest(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireProfiles(user, model.ProfileAdmin); apiErr != nil {
		return nil, apiErr
	}
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	request, err := r.store.GetRegistrationRequest(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "registration request not found"}
	}
	if request.Status != model.RegistrationPending {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "request already processed"}
	}

	var review packets.ReviewRegistrationRequest
	// body is optional; absence means approve as requested
	_ = ctx.ShouldBindJSON(&review)

	username := request.Username
	if review.Username != nil {
		username = *review.Username
	}
	email := request.Email
	if review.Email != nil {
		email = *review.Email
	}
	profile := request.Profile
	if review.Profile != nil {
		profile = review.Profile
	}

	if _, err := r.store.GetUserByUsername(username); err == nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "username already exists"}
	}
	if _, err := r.store.GetUserByEmail(email); err == nil {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "email already registered"}
	}

	created, err := r.store.CreateUser(username, email, request.PasswordHash, profile, true)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create user"}
	}
	if err := r.store.SetRegistrationRequestStatus(id, model.RegistrationApproved, time.Now().UTC()); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update request status"}
	}

	return created, nil
}

func (r *RegistrationController) rejectRequest(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireProfiles(user, model.ProfileAdmin); apiErr != nil {
		return nil, apiErr
	}
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}

	request, err := r.store.GetRegistrationRequest(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "registration request not found"}
	}
	if request.Status != model.RegistrationPending {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "request already processed"}
	}

	if err := r.store.SetRegistrationRequestStatus(id, model.RegistrationRejected, time.Now().UTC()); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update request status"}
	}
	return packets.MessageResponse{Message: "rejected"}, nil
}
