package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/plume-labs/plume/internal/service"
	"github.com/plume-labs/plume/pkg/response"
)

type signUpRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.authSvc.SignUp(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"id": user.ID, "username": user.Username})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		response.Unauthorized(c, "invalid username or password")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"token": token})
}
