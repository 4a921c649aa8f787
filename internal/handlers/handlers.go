package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/quangdm-dev/socialnews-backend/internal/models"
)

// Context keys populated by the auth middleware
const (
	ContextUserID     = "userID"
	ContextUserName   = "userName"
	ContextUserAvatar = "userAvatar"
)

// DefaultActorName stands in when the identity provider has no display name
const DefaultActorName = "Người dùng"

// EventSink receives raw interaction events from the ingress handlers.
// Implemented by the aggregator; failures stay inside the sink so content
// mutations never depend on the notification pipeline.
type EventSink interface {
	OnEvent(ctx context.Context, event models.RawInteractionEvent)
}

// NotificationCache is the slice of the cache the notification handler uses
type NotificationCache interface {
	GetPage(ctx context.Context, userID string, page, limit int) ([]byte, bool)
	SetPage(ctx context.Context, userID string, page, limit int, payload []byte) error
	InvalidateUser(ctx context.Context, userID string) error
}

// PostCache invalidates post-scoped read-through entries after a mutation
type PostCache interface {
	InvalidatePost(ctx context.Context, postID, userID string) error
}

func currentUserID(c echo.Context) string {
	id, _ := c.Get(ContextUserID).(string)
	return id
}

func currentActor(c echo.Context) (name string, avatar *string) {
	name, _ = c.Get(ContextUserName).(string)
	if name == "" {
		name = DefaultActorName
	}
	if a, ok := c.Get(ContextUserAvatar).(string); ok && a != "" {
		avatar = &a
	}
	return name, avatar
}

// respondValidationError surfaces a validation failure as 400 with the
// structured issues array
func respondValidationError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	issues := []echo.Map{}
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			issues = append(issues, echo.Map{
				"field": fe.Field(),
				"rule":  fe.Tag(),
			})
		}
	} else {
		issues = append(issues, echo.Map{"message": err.Error()})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":  "Validation error",
		"issues": issues,
	})
}

func respondInternalError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
