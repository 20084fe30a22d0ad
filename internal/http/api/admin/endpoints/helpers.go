package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/presenca-app/presenca/internal/http/api"
	"github.com/presenca-app/presenca/internal/model"
)

const dateLayout = "2006-01-02"

func requireProfiles(user *model.User, profiles ...string) *api.APIError {
	if !user.HasProfile(profiles...) {
		return &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return nil
}

func pathID(ctx *gin.Context, name string) (int, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, &api.APIError{Code: http.StatusBadRequest, Message: "invalid " + name}
	}
	return id, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
