package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/monitoring"
	"github.com/BloggingApp/blog-service/internal/pagecache"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const indexView = "index_page"

type Handler struct {
	logger   *zap.Logger
	services *service.Service
	cache    pagecache.PageCache
	auth     config.AuthConfig
}

func New(logger *zap.Logger, services *service.Service, cache pagecache.PageCache, auth config.AuthConfig) *Handler {
	return &Handler{
		logger:   logger,
		services: services,
		cache:    cache,
		auth:     auth,
	}
}

func (h *Handler) InitRoutes(origin string) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(monitoring.InstrumentHandler)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{http.MethodPost, http.MethodGet, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))

	r.GET("/", h.cachePage(indexView), h.feedIndex)
	r.GET("/group/:slug/", h.feedGroup)
	r.GET("/follow/", h.authMiddleware, h.feedFollowing)

	r.POST("/create/", h.authMiddleware, h.postsCreate)

	post := r.Group("/posts/:postID")
	{
		post.GET("/", h.postsGetByID)
		post.POST("/edit/", h.authMiddleware, h.postsEdit)
		post.POST("/delete/", h.authMiddleware, h.postsDelete)
		post.POST("/comment/", h.authMiddleware, h.commentsCreate)
	}

	profile := r.Group("/profile/:username")
	{
		profile.GET("/", h.notRequiredAuthMiddleware, h.feedProfile)
		profile.POST("/follow/", h.authMiddleware, h.followCreate)
		profile.POST("/unfollow/", h.authMiddleware, h.followDelete)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/signup/", h.authSignUp)
		auth.GET("/login/", h.authLoginForm)
		auth.POST("/login/", h.authLogin)
		auth.POST("/logout/", h.authLogout)
	}

	admin := r.Group("/admin", h.adminMiddleware)
	{
		admin.GET("/groups", h.adminGroupsList)
		admin.POST("/groups", h.adminGroupsCreate)
		admin.PATCH("/groups/:slug", h.adminGroupsUpdate)
		admin.DELETE("/groups/:slug", h.adminGroupsDelete)
		admin.DELETE("/users/:username", h.adminUsersDelete)
		admin.DELETE("/cache", h.adminCacheClear)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(h.notFound)

	return r
}

func (h *Handler) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, service.ErrNotFound.Error()))
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.User {
	userReq, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}

	user, ok := userReq.(*model.User)
	if !ok {
		return nil
	}

	return user
}
