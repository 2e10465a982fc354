package api

import (
	"fmt"

	"github.com/clinidesk/clinidesk-BE/internal/db"
	"github.com/clinidesk/clinidesk-BE/internal/event"
	"github.com/clinidesk/clinidesk-BE/internal/notification"
	"github.com/clinidesk/clinidesk-BE/internal/token"
	"github.com/clinidesk/clinidesk-BE/internal/util"
	"github.com/clinidesk/clinidesk-BE/internal/watcher"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Server struct {
	router      *gin.Engine
	dbStore     db.Store
	tokenMaker  token.Maker
	config      *util.Config
	center      *notification.Center
	watcher     *watcher.Watcher
	eventSender event.EventSender
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(store db.Store, center *notification.Center, w *watcher.Watcher, config *util.Config, eventSender event.EventSender) (*Server, error) {
	// Create a new JWT token maker
	tokenMaker, err := token.NewJWTMaker(config.TokenSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create token maker: %w", err)
	}
	log.Info().Msg("Token maker created successfully ✅")

	server := &Server{
		dbStore:     store,
		tokenMaker:  tokenMaker,
		config:      config,
		center:      center,
		watcher:     w,
		eventSender: eventSender,
	}

	server.setupRouter()
	return server, nil
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	gin.ForceConsoleColor()
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	v1 := router.Group("/v1")

	v1.POST("/auth/register", server.createUser)
	v1.POST("/auth/login", server.loginUser)

	customerGroup := v1.Group("/customers", authMiddleware(server.tokenMaker))
	{
		customerGroup.GET("", server.listCustomers)
		customerGroup.POST("", server.createCustomer)
		customerGroup.GET(":id", server.getCustomer)
		customerGroup.PATCH(":id/status", server.updateCustomerStatus)

		customerGroup.GET(":id/reminders", server.listReminderNotes)
		customerGroup.POST(":id/reminders", server.createReminderNote)
		customerGroup.PATCH(":id/reminders/:noteID/complete", server.completeReminderNote)
	}

	notificationGroup := v1.Group("/notifications", authMiddleware(server.tokenMaker))
	{
		notificationGroup.GET("", server.listNotifications)
		notificationGroup.GET("unread-count", server.getUnreadCount)
		notificationGroup.PATCH(":id/read", server.markNotificationAsRead)
		notificationGroup.POST("read-all", server.markAllNotificationsAsRead)
		notificationGroup.DELETE("", requiredAdminRole(), server.clearNotifications)

		notificationGroup.GET("settings", server.getNotificationSettings)
		notificationGroup.PUT("settings", server.updateNotificationSettings)

		notificationGroup.GET("stream", server.streamNotifications)
	}

	server.router = router
	return router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}
