package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/presenca-app/presenca/internal/db"
	"github.com/presenca-app/presenca/internal/http/api"
	"github.com/presenca-app/presenca/internal/http/api/admin/packets"
	"github.com/presenca-app/presenca/internal/model"
)

type ParticipantController struct {
	store db.Store
}

func NewParticipantController(store db.Store) *ParticipantController {
	return &ParticipantController{store: store}
}

func ParticipantModule(store db.Store) api.Module {
	ctl := NewParticipantController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/participants", ctl.listParticipants)
		c.GET("/participants/:id", ctl.getParticipant)
		c.POST("/participants", ctl.createParticipant)
		c.PATCH("/participants/:id", ctl.updateParticipant)
		c.DELETE("/participants/:id", ctl.deleteParticipant)
	})
}

func (p *ParticipantController) listParticipants(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := p.store.ListParticipants()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list participants"}
	}
	return list, nil
}

func (p *ParticipantController) getParticipant(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	participant, err := p.store.GetParticipantByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "participant not found"}
	}
	return participant, nil
}

func (p *ParticipantController) createParticipant(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireProfiles(user, model.ProfileAdmin, model.ProfileOrganizer); apiErr != nil {
		return nil, apiErr
	}
	var request packets.CreateParticipantRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	birthDate, err := parseDate(request.BirthDate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "birth_date must be YYYY-MM-DD"}
	}
	if request.GuardianID != nil {
		if _, err := p.store.GetParticipantByID(*request.GuardianID); err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "guardian not found"}
		}
	}

	participant, err := p.store.CreateParticipant(request.FullName, request.Phone, birthDate, request.Observations, request.GuardianID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create participant"}
	}
	return participant, nil
}

func (p *ParticipantController) updateParticipant(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireProfiles(user, model.ProfileAdmin, model.ProfileOrganizer); apiErr != nil {
		return nil, apiErr
	}
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateParticipantRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	birthDate, err := parseDate(request.BirthDate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "birth_date must be YYYY-MM-DD"}
	}
	if _, err := p.store.GetParticipantByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "participant not found"}
	}

	if err := p.store.UpdateParticipant(id, request.FullName, request.Phone, birthDate, request.Observations, request.GuardianID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update participant"}
	}
	participant, err := p.store.GetParticipantByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load participant"}
	}
	return participant, nil
}

func (p *ParticipantController) deleteParticipant(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireProfiles(user, model.ProfileAdmin); apiErr != nil {
		return nil, apiErr
	}
	id, apiErr := pathID(ctx, "id")
	if apiErr != nil {
		return nil, apiErr
	}
	if err := p.store.DeleteParticipant(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete participant"}
	}
	return packets.MessageResponse{Message: "deleted"}, nil
}
