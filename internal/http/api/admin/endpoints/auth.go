package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/presenca-app/presenca/internal/db"
	"github.com/presenca-app/presenca/internal/http/api"
	"github.com/presenca-app/presenca/internal/http/api/admin/packets"
	"github.com/presenca-app/presenca/internal/http/middleware"
	"github.com/presenca-app/presenca/internal/model"
)

type AuthController struct {
	secret string
	store  db.Store
}

func NewAuthController(secret string, store db.Store) *AuthController {
	return &AuthController{secret: secret, store: store}
}

// AuthPublicModule mounts login and self-service registration; both run
// without a current user.
func AuthPublicModule(secret string, store db.Store) api.Module {
	ctl := NewAuthController(secret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PublicPOST("/auth/login", ctl.login)
		c.PublicPOST("/auth/register", ctl.register)
	})
}

// AuthSessionModule mounts endpoints that need the authenticated user.
func AuthSessionModule(secret string, store db.Store) api.Module {
	ctl := NewAuthController(secret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/me", ctl.me)
	})
}

func (a *AuthController) login(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	user, err := a.store.GetUserByUsername(request.Username)
	if err != nil {
		// allow logging in with the email address too
		user, err = a.store.GetUserByEmail(request.Username)
	}
	if err != nil || !middleware.CheckPassword(user.PasswordHash, request.Password) {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	}
	if !user.IsActive {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "account is not active"}
	}

	token, err := middleware.GenerateJWT(user.ID, a.secret)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("failed to sign token")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not issue token"}
	}

	return packets.LoginResponse{Token: token, User: *user}, nil
}

func (a *AuthController) register(ctx *gin.Context) (any, *api.APIError) {
	var request packets.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not hash password"}
	}

	if _, err := a.store.CreateRegistrationRequest(request.Username, request.Email, hashed, request.Profile); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not submit registration request"}
	}

	return packets.MessageResponse{Message: "registration request submitted, awaiting approval"}, nil
}

func (a *AuthController) me(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return user, nil
}
