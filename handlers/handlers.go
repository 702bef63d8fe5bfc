package handlers

import (
	"net/http"
	"strconv"

	"helphub-api/middleware"
	"helphub-api/service"

	"github.com/gin-gonic/gin"
)

var svc *service.Service

// Init wires the shared service instance used by every handler.
func Init(s *service.Service) {
	svc = s
}

// currentActor builds the explicit actor every service call takes, from the
// claims and verified status the middleware chain injected.
func currentActor(c *gin.Context) service.Actor {
	return service.Actor{
		UserID: middleware.GetUserID(c),
		Role:   middleware.GetRole(c),
		Status: middleware.GetStatus(c),
	}
}

// parseID reads a numeric path parameter, answering 400 itself on garbage.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}

// fail maps a typed service failure onto an HTTP response naming the guard
// that rejected the operation.
func fail(c *gin.Context, err error) {
	kind := service.KindOf(err)
	status := http.StatusInternalServerError
	message := err.Error()
	switch kind {
	case service.KindUnauthorized:
		status = http.StatusForbidden
	case service.KindInvalidState:
		status = http.StatusUnprocessableEntity
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindConflict:
		status = http.StatusConflict
	case service.KindValidation:
		status = http.StatusBadRequest
	default:
		message = "Unexpected error, no changes were saved"
	}
	c.JSON(status, gin.H{"error": message, "kind": kind})
}
