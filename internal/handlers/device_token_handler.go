package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/quangdm-dev/socialnews-backend/internal/models"
	"github.com/quangdm-dev/socialnews-backend/internal/repositories"
)

// DeviceTokenHandler handles push target registration. Unauthenticated:
// devices may register before the user signs in, so user_id is optional.
type DeviceTokenHandler struct {
	deviceTokenRepository repositories.DeviceTokenRepository
}

// NewDeviceTokenHandler creates a new DeviceTokenHandler
func NewDeviceTokenHandler(repo repositories.DeviceTokenRepository) *DeviceTokenHandler {
	return &DeviceTokenHandler{deviceTokenRepository: repo}
}

// RegisterDeviceTokenRoutes registers the token registration route
func (h *DeviceTokenHandler) RegisterDeviceTokenRoutes(g *echo.Group) {
	g.POST("/register-firebase-token", h.RegisterToken)
}

// RegisterToken upserts the device's push token keyed by device_id
func (h *DeviceTokenHandler) RegisterToken(c echo.Context) error {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.Contains(contentType, echo.MIMEApplicationJSON) {
		return c.JSON(http.StatusUnsupportedMediaType, echo.Map{"error": "Unsupported Media Type"})
	}

	var req models.RegisterDeviceTokenRequest
	if err := c.Bind(&req); err != nil {
		return respondValidationError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	token := &models.DeviceToken{
		DeviceID: req.DeviceID,
		Token:    req.Token,
		UserID:   req.UserID,
	}
	if err := h.deviceTokenRepository.Upsert(token); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Token added successfully"})
}
