package http

import (
	"errors"
	"net/http"
	"strconv"

	"postboard/internal/entity"
	"postboard/internal/usecase"
	"postboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError writes the status for a usecase error. Unexpected errors are
// logged and reported as "Failed to <action>".
func respondError(c *gin.Context, log *logger.Logger, err error, action string) {
	switch {
	case errors.Is(err, entity.ErrPostNotFound),
		errors.Is(err, entity.ErrProfileNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrForbidden), errors.Is(err, usecase.ErrAccountInactive):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrImageStorageMissing):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Error("Failed to %s: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// pathID parses the :id parameter. Anything that is not a positive integer
// cannot name a record, so it is answered with 404.
func pathID(c *gin.Context, notFound error) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return 0, false
	}
	return uint(id), true
}

type PageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}
