package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/quangdm-dev/socialnews-backend/internal/models"
)

// NotificationEventHandler is the internal ingress accepting a fully formed
// interaction event, for callers that mutate content outside this service.
type NotificationEventHandler struct {
	events EventSink
}

// NewNotificationEventHandler creates a new NotificationEventHandler
func NewNotificationEventHandler(events EventSink) *NotificationEventHandler {
	return &NotificationEventHandler{events: events}
}

// RegisterEventRoutes registers the event ingress route
func (h *NotificationEventHandler) RegisterEventRoutes(g *echo.Group) {
	g.POST("/create-notification-event", h.CreateEvent)
}

// CreateEvent queues one raw interaction event for aggregation. This is an
// internal endpoint; malformed bodies surface as 500 like any other failure.
func (h *NotificationEventHandler) CreateEvent(c echo.Context) error {
	var req models.CreateNotificationEventRequest
	if err := c.Bind(&req); err != nil {
		return respondInternalError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondInternalError(c, err)
	}

	if req.ActorID == req.TargetUserID {
		return c.JSON(http.StatusOK, echo.Map{
			"data": echo.Map{"message": "Self-action, no notification needed"},
		})
	}

	h.events.OnEvent(c.Request().Context(), models.RawInteractionEvent{
		PostID:       req.PostID,
		ActorID:      req.ActorID,
		ActorName:    req.ActorName,
		ActorAvatar:  req.ActorAvatar,
		Action:       models.NotificationAction(req.Action),
		TargetUserID: req.TargetUserID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{"message": "Event queued for aggregation"},
	})
}
