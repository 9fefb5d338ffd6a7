package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"qaforum/api/internal/config"
	"qaforum/api/internal/middleware"
	"qaforum/api/internal/models"
	"qaforum/api/internal/repository"
	"qaforum/api/internal/service"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	services *service.Services
	store    repository.Store
	cache    *redis.Client
}

// NewHandlerSet builds the HTTP handlers. cache is optional and only
// reported by the health check.
func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, services *service.Services, store repository.Store, cache *redis.Client) HandlerSet {
	return HandlerSet{
		log:      log,
		cfg:      cfg,
		services: services,
		store:    store,
		cache:    cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	router.Use(middleware.Token())

	user := router.Group("/user")
	user.POST("/signup", h.Signup)
	user.POST("/signin", h.Signin)
	user.POST("/signout", h.Signout)

	router.GET("/userprofile/:userId", h.GetProfile)

	question := router.Group("/question")
	question.POST("/create", h.CreateQuestion)
	question.GET("/all", h.ListQuestions)
	question.GET("/all/:userId", h.ListUserQuestions)
	question.PUT("/edit/:questionId", h.EditQuestion)
	question.DELETE("/delete/:questionId", h.DeleteQuestion)
	question.POST("/:questionId/answer/create", h.CreateAnswer)

	answer := router.Group("/answer")
	answer.PUT("/edit/:answerId", h.EditAnswer)
	answer.DELETE("/delete/:answerId", h.DeleteAnswer)
	answer.GET("/all/:questionId", h.ListAnswers)

	admin := router.Group("/admin")
	admin.Use(middleware.RequireRoles(h.services.Auth, service.ActionReadForumStats, h.log, models.UserRoleAdmin))
	admin.GET("/stats", h.AdminStats)
}

// fail renders err through the shared error mapping.
func (h HandlerSet) fail(c *gin.Context, err error) {
	middleware.AbortWithError(c, h.log, err)
}
