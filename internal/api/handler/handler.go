package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/plume-labs/plume/internal/service"
	"github.com/plume-labs/plume/pkg/response"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	feedSvc service.FeedService
	postSvc service.PostService
	relSvc  service.RelationshipService
	authSvc service.AuthService
}

func New(
	feedSvc service.FeedService,
	postSvc service.PostService,
	relSvc service.RelationshipService,
	authSvc service.AuthService,
) *Handler {
	return &Handler{feedSvc: feedSvc, postSvc: postSvc, relSvc: relSvc, authSvc: authSvc}
}

// fail maps service errors onto the response taxonomy. ErrForbidden is not
// handled here: the edit handler turns it into a redirect instead.
func fail(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c)
	case errors.As(err, &vErr):
		response.ValidationFailed(c, response.FieldError{Field: vErr.Field, Message: vErr.Message})
	default:
		response.InternalError(c, err)
	}
}
