package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/quangdm-dev/socialnews-backend/internal/models"
	"github.com/quangdm-dev/socialnews-backend/internal/repositories"
	"go.uber.org/zap"
)

const defaultPageLimit = 20

// NotificationHandler handles notification listing and read-state mutations
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	cache                  NotificationCache
	log                    *zap.SugaredLogger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(
	notifRepo repositories.NotificationRepository,
	cache NotificationCache,
	log *zap.SugaredLogger,
) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		cache:                  cache,
		log:                    log,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.POST("/get-notifications", h.GetNotifications)
	g.POST("/mark-notification-read", h.MarkRead)
}

// GetNotifications returns one page of the caller's notifications, newest
// first, through a short-lived read-through cache.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req models.GetNotificationsRequest
	if err := c.Bind(&req); err != nil {
		return respondInternalError(c, err)
	}
	if req.Limit == 0 {
		req.Limit = defaultPageLimit
	}
	if err := c.Validate(&req); err != nil {
		return respondInternalError(c, err)
	}

	ctx := c.Request().Context()
	if cached, ok := h.cache.GetPage(ctx, userID, req.Page, req.Limit); ok {
		return c.JSON(http.StatusOK, echo.Map{"data": json.RawMessage(cached)})
	}

	notifications, hasMore, err := h.notificationRepository.ListByUser(userID, req.Page, req.Limit)
	if err != nil {
		return respondInternalError(c, err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	page := models.NotificationPage{
		Notifications: notifications,
		Pagination: models.Pagination{
			Page:    req.Page,
			Limit:   req.Limit,
			HasMore: hasMore,
		},
	}

	if payload, err := json.Marshal(page); err == nil {
		if err := h.cache.SetPage(ctx, userID, req.Page, req.Limit, payload); err != nil {
			h.log.Warnw("notification cache write failed", "user", userID, "err", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"data": page})
}

// MarkRead marks one notification, or all of the caller's notifications, as
// read, then invalidates the caller's cached pages.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req models.MarkNotificationReadRequest
	if err := c.Bind(&req); err != nil {
		return respondValidationError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	var message string
	if req.MarkAll {
		if err := h.notificationRepository.MarkAllRead(userID); err != nil {
			return respondInternalError(c, err)
		}
		message = "All notifications marked as read"
	} else {
		if req.NotificationID == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "notification_id is required when mark_all is false",
			})
		}
		if err := h.notificationRepository.MarkRead(*req.NotificationID, userID); err != nil {
			return respondInternalError(c, err)
		}
		message = "Notification marked as read"
	}

	if err := h.cache.InvalidateUser(c.Request().Context(), userID); err != nil {
		h.log.Warnw("notification cache invalidation failed", "user", userID, "err", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"message": message}})
}
