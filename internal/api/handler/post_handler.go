package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/plume-labs/plume/internal/api/middleware"
	"github.com/plume-labs/plume/internal/service"
	"github.com/plume-labs/plume/pkg/response"
)

// maxImageSize caps uploaded images at 8 MiB.
const maxImageSize = 8 << 20

type postForm struct {
	Text  string `form:"text" binding:"required"`
	Group string `form:"group" binding:"omitempty,slug"`
}

func postPath(username, postID string) string {
	return fmt.Sprintf("/profile/%s/posts/%s", username, postID)
}

// bindFieldErrors turns validator failures into per-field messages so the
// client can redisplay the form.
func bindFieldErrors(err error) []response.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]response.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			msg := "is invalid"
			switch fe.Tag() {
			case "required":
				msg = "is required"
			case "slug":
				msg = "must be a lowercase slug"
			}
			out = append(out, response.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: msg,
				Value:   fmt.Sprintf("%v", fe.Value()),
			})
		}
		return out
	}
	return []response.FieldError{{Message: err.Error()}}
}

// uploadFrom reads the optional "image" part of a multipart form.
func uploadFrom(c *gin.Context) (*service.Upload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil // no file attached
	}
	if fh.Size > maxImageSize {
		return nil, &service.ValidationError{Field: "image", Message: "image is too large"}
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return nil, err
	}
	return &service.Upload{Data: data, Filename: fh.Filename}, nil
}

// CreatePost handles the new-post form (multipart: text, group, image).
func (h *Handler) CreatePost(c *gin.Context) {
	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		response.ValidationFailed(c, bindFieldErrors(err)...)
		return
	}
	img, err := uploadFrom(c)
	if err != nil {
		fail(c, err)
		return
	}
	post, err := h.postSvc.Create(c.Request.Context(), middleware.Viewer(c), form.Text, form.Group, img)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"id": post.ID})
}

// PostDetail serves one post and its comments.
func (h *Handler) PostDetail(c *gin.Context) {
	detail, err := h.postSvc.GetDetail(c.Request.Context(), c.Param("username"), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, detail)
}

// EditPost updates a post. A non-author is silently redirected to the read
// view with nothing changed. Form values go to the service unvalidated so
// the ownership check runs first: a non-author with a bad form still gets
// the redirect, not a validation error.
func (h *Handler) EditPost(c *gin.Context) {
	username, postID := c.Param("username"), c.Param("id")

	img, err := uploadFrom(c)
	if err != nil {
		fail(c, err)
		return
	}
	post, err := h.postSvc.Update(c.Request.Context(), postID, middleware.Viewer(c),
		c.PostForm("text"), c.PostForm("group"), img)
	if errors.Is(err, service.ErrForbidden) {
		c.Redirect(http.StatusSeeOther, postPath(username, postID))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"id": post.ID})
}

// AddComment attaches a comment and sends the client back to the post.
func (h *Handler) AddComment(c *gin.Context) {
	username, postID := c.Param("username"), c.Param("id")
	_, err := h.postSvc.AddComment(c.Request.Context(), postID, middleware.Viewer(c), c.PostForm("text"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, postPath(username, postID))
}
