package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/presenca-app/presenca/internal/attendance"
	"github.com/presenca-app/presenca/internal/config"
	"github.com/presenca-app/presenca/internal/db"
	"github.com/presenca-app/presenca/internal/http/api"
	adminapi "github.com/presenca-app/presenca/internal/http/api/admin/endpoints"
	"github.com/presenca-app/presenca/internal/notify"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, service *attendance.Service, publisher *notify.Publisher) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		adminapi.AuthPublicModule(cfg.JWTSecret, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
		Store:     store,
	},
		adminapi.AuthSessionModule(cfg.JWTSecret, store),
		adminapi.RegistrationModule(store),
		adminapi.ParticipantModule(store),
		adminapi.EventModule(store, cfg.Location),
		adminapi.OccurrenceModule(store, service, publisher),
	)
}
