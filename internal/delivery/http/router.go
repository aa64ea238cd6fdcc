package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/bookswipe/bookswipe-server/internal/delivery/http/handler"
	"github.com/bookswipe/bookswipe-server/internal/delivery/http/middleware"
	"github.com/bookswipe/bookswipe-server/internal/usecase/deck"
)

type Router struct {
	authHandler      *handler.AuthHandler
	profileHandler   *handler.ProfileHandler
	deckHandler      *handler.DeckHandler
	communityHandler *handler.CommunityHandler
	chatHandler      *handler.ChatHandler
	authMiddleware   *middleware.AuthMiddleware
	allowedOrigin    string
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	deckHandler *handler.DeckHandler,
	communityHandler *handler.CommunityHandler,
	chatHandler *handler.ChatHandler,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigin string,
) *Router {
	return &Router{
		authHandler:      authHandler,
		profileHandler:   profileHandler,
		deckHandler:      deckHandler,
		communityHandler: communityHandler,
		chatHandler:      chatHandler,
		authMiddleware:   authMiddleware,
		allowedOrigin:    allowedOrigin,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("swipedirection", func(fl validator.FieldLevel) bool {
			_, err := deck.ParseDirection(fl.Field().String())
			return err == nil
		})
	}

	corsCfg := cors.DefaultConfig()
	if r.allowedOrigin != "" {
		corsCfg.AllowOrigins = []string{r.allowedOrigin}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			// Deck routes
			deck := protected.Group("/deck")
			{
				deck.POST("", r.deckHandler.CreateSession)
				deck.GET("/:id", r.deckHandler.GetSession)
				deck.POST("/:id/decide", r.deckHandler.Decide)
				deck.GET("/:id/matches", r.deckHandler.PendingMatches)
				deck.DELETE("/:id", r.deckHandler.CloseSession)
			}

			// Community routes
			communityGroup := protected.Group("/community")
			{
				communityGroup.GET("/roster", r.communityHandler.GetRoster)
				communityGroup.GET("/top-match", r.communityHandler.GetTopMatch)
			}

			// Chat routes
			chatGroup := protected.Group("/chat")
			{
				chatGroup.GET("/:user_id/messages", r.chatHandler.GetMessages)
				chatGroup.POST("/:user_id/messages", r.chatHandler.SendMessage)
				chatGroup.GET("/:user_id/stream", r.chatHandler.StreamMessages)
			}
		}
	}

	return router
}
