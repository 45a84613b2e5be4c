package api

import (
	"regexp"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/plume-labs/plume/internal/api/handler"
	"github.com/plume-labs/plume/internal/api/middleware"
	"github.com/plume-labs/plume/internal/service"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// registerValidators adds the "slug" rule used by form bindings.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugRe.MatchString(fl.Field().String())
		})
	}
}

// NewRouter builds the full route table.
func NewRouter(h *handler.Handler, authSvc service.AuthService) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: false}))
	r.Use(otelgin.Middleware("plume"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RateLimit(50, 100))

	r.POST("/auth/signup", h.SignUp)
	r.POST("/auth/login", h.Login)

	public := r.Group("/")
	public.Use(middleware.OptionalAuth(authSvc))
	{
		public.GET("/", h.Index)
		public.GET("/group/:slug", h.GroupFeed)
		public.GET("/profile/:username", h.Profile)
		public.GET("/profile/:username/posts/:id", h.PostDetail)
	}

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth(authSvc))
	{
		auth.GET("/follow", h.FollowFeed)
		auth.POST("/new", h.CreatePost)
		auth.POST("/profile/:username/posts/:id/edit", h.EditPost)
		auth.POST("/profile/:username/posts/:id/comment", h.AddComment)
		auth.POST("/profile/:username/follow", h.Follow)
		auth.POST("/profile/:username/unfollow", h.Unfollow)
	}

	return r
}
