package api

import (
	"net/http"

	"github.com/clinidesk/clinidesk-BE/internal/notification"
	"github.com/gin-gonic/gin"
)

type listNotificationsResponse struct {
	Notifications []notification.Notification `json:"notifications"`
	UnreadCount   int                         `json:"unread_count"`
}

func (server *Server) listNotifications(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, listNotificationsResponse{
		Notifications: server.center.List(),
		UnreadCount:   server.center.UnreadCount(),
	})
}

func (server *Server) getUnreadCount(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"unread_count": server.center.UnreadCount()})
}

func (server *Server) markNotificationAsRead(ctx *gin.Context) {
	id := ctx.Param("id")

	if found := server.center.MarkAsRead(ctx, id); !found {
		ctx.JSON(http.StatusNotFound, errorResponse(ErrNotificationNotFound))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"unread_count": server.center.UnreadCount()})
}

func (server *Server) markAllNotificationsAsRead(ctx *gin.Context) {
	server.center.MarkAllAsRead(ctx)
	ctx.JSON(http.StatusOK, gin.H{"unread_count": 0})
}

func (server *Server) clearNotifications(ctx *gin.Context) {
	server.center.ClearAll(ctx)
	ctx.Status(http.StatusNoContent)
}

func (server *Server) getNotificationSettings(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, server.center.Settings())
}

type updateNotificationSettingsRequest struct {
	SoundEnabled       bool   `json:"sound_enabled"`
	BrowserPushEnabled bool   `json:"browser_push_enabled"`
	PermissionStatus   string `json:"permission_status"`
}

func (server *Server) updateNotificationSettings(ctx *gin.Context) {
	req := new(updateNotificationSettingsRequest)

	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	status := notification.PermissionStatus(req.PermissionStatus)
	switch status {
	case notification.PermissionGranted, notification.PermissionDenied, notification.PermissionDefault, "":
	default:
		ctx.JSON(http.StatusUnprocessableEntity, failedValidationError([]*FieldViolation{
			fieldViolation("permission_status", errNotAPermissionStatus),
		}))
		return
	}

	settings := notification.Settings{
		SoundEnabled:       req.SoundEnabled,
		BrowserPushEnabled: req.BrowserPushEnabled,
		PermissionStatus:   status,
	}

	server.center.UpdateSettings(ctx, settings)
	ctx.JSON(http.StatusOK, server.center.Settings())
}
