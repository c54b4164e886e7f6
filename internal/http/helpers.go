package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/database"
)

// MessageResponse is the body of error responses and acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse lists every rejected field with its messages.
type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

// respondNotFound sends 404 with "<resource> not found".
func respondNotFound(c *gin.Context, resource string) {
	respondMessage(c, http.StatusNotFound, resource+" not found")
}

// respondInternalError logs the error and sends a 500 response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s) [request %s, %s]: %v", context, GetRequestID(c), requestUser(c), err)
	respondMessage(c, http.StatusInternalServerError, "Server Error")
}

// requestUser describes the caller for log lines.
func requestUser(c *gin.Context) string {
	authType := auth.GetAuthType(c)
	if authType == auth.AuthTypeNone {
		return "anonymous"
	}
	return fmt.Sprintf("user %d %s via %s", auth.GetUserID(c), auth.GetUsername(c), authType)
}

// respondRepositoryError maps a repository failure: a missing referenced
// entity becomes 404, anything else 500.
func respondRepositoryError(c *gin.Context, err error, context string) {
	var notFound *database.NotFoundError
	if errors.As(err, &notFound) {
		respondNotFound(c, notFound.Entity)
		return
	}
	respondInternalError(c, err, context)
}

// parseIDParam extracts a positive integer ID from the URL. An unparsable
// ID cannot match any row, so it is answered with the resource's 404.
func parseIDParam(c *gin.Context, paramName, resource string) (uint, bool) {
	id, ok := parseID(c.Param(paramName))
	if !ok {
		respondNotFound(c, resource)
		return 0, false
	}
	return id, true
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
