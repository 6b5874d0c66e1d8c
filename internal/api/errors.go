package api

import (
	"errors"
	"net/http"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/service"
	"alcyxob/wellness-app/internal/validation"

	"github.com/gin-gonic/gin"
)

// respondError maps a service or validation error onto a status code and
// writes {"message": ...}. Unexpected errors are logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		body := gin.H{"message": vErr.Message}
		if vErr.Field != "" {
			body["field"] = vErr.Field
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrPhotoUpload):
		requestLog(c).WithError(err).Error("Photo upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload photo"})
	default:
		requestLog(c).WithError(err).Error("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

// readBody returns the raw request body for the validators.
func readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Unable to read request body")
		return nil, false
	}
	return body, true
}

// pageFromQuery reads ?page=&limit= with the route's default limit.
func pageFromQuery(c *gin.Context, defaultLimit int) domain.PageRequest {
	return domain.NewPageRequest(c.Query("page"), c.Query("limit"), defaultLimit)
}

// respondPage writes a paginated list.
func respondPage[T any](c *gin.Context, message string, page *service.Page[T]) {
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"data":       page.Items,
		"totalCount": page.TotalCount,
		"page":       page.Request.Page,
		"totalPages": page.TotalPages(),
	})
}
