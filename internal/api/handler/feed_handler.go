package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plume-labs/plume/internal/api/middleware"
	"github.com/plume-labs/plume/pkg/response"
)

// pageParam parses ?page=; anything missing or unparseable means page 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

// Index is the global feed, served through the feed cache.
func (h *Handler) Index(c *gin.Context) {
	fp, err := h.feedSvc.GlobalFeed(c.Request.Context(), pageParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, fp)
}

// GroupFeed lists posts filed under one group.
func (h *Handler) GroupFeed(c *gin.Context) {
	gf, err := h.feedSvc.GroupFeed(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gf)
}

// Profile is an author's page: their posts, post count, and whether the
// viewer follows them.
func (h *Handler) Profile(c *gin.Context) {
	af, err := h.feedSvc.AuthorFeed(c.Request.Context(), c.Param("username"), middleware.Viewer(c), pageParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, af)
}

// FollowFeed is the personalized feed; RequireAuth guards the route.
func (h *Handler) FollowFeed(c *gin.Context) {
	fp, err := h.feedSvc.PersonalizedFeed(c.Request.Context(), middleware.Viewer(c), pageParam(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, fp)
}
