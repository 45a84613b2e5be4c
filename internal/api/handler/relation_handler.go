package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/plume-labs/plume/internal/api/middleware"
	"github.com/plume-labs/plume/pkg/response"
)

// Follow subscribes the viewer to an author. Re-following and following
// yourself are both quiet no-ops.
func (h *Handler) Follow(c *gin.Context) {
	if err := h.relSvc.Follow(c.Request.Context(), middleware.Viewer(c), c.Param("username")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

// Unfollow removes the subscription if it exists.
func (h *Handler) Unfollow(c *gin.Context) {
	if err := h.relSvc.Unfollow(c.Request.Context(), middleware.Viewer(c), c.Param("username")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}
