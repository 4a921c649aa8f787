package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/quangdm-dev/socialnews-backend/validators"
	"github.com/stretchr/testify/assert"
)

func TestRegisterTokenRejectsNonJSON(t *testing.T) {
	h := NewDeviceTokenHandler(&fakeDeviceTokenRepo{})
	e := echo.New()
	e.Validator = validators.NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("token=abc"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	assert.NoError(t, h.RegisterToken(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRegisterTokenValidation(t *testing.T) {
	h := NewDeviceTokenHandler(&fakeDeviceTokenRepo{})
	c, rec := newTestContext(t, `{"token":"abc"}`)

	assert.NoError(t, h.RegisterToken(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation error")
	assert.Contains(t, rec.Body.String(), "device_id")
}

func TestRegisterTokenAnonymousDevice(t *testing.T) {
	repo := &fakeDeviceTokenRepo{}
	h := NewDeviceTokenHandler(repo)
	c, rec := newTestContext(t, `{"token":"fcm-abc","device_id":"d1"}`)

	assert.NoError(t, h.RegisterToken(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token added successfully")
	assert.Len(t, repo.upserted, 1)
	assert.Equal(t, "d1", repo.upserted[0].DeviceID)
	assert.Nil(t, repo.upserted[0].UserID)
}

func TestRegisterTokenWithUser(t *testing.T) {
	repo := &fakeDeviceTokenRepo{}
	h := NewDeviceTokenHandler(repo)
	c, rec := newTestContext(t, `{"token":"fcm-abc","device_id":"d1","user_id":"u1"}`)

	assert.NoError(t, h.RegisterToken(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, repo.upserted, 1)
	if assert.NotNil(t, repo.upserted[0].UserID) {
		assert.Equal(t, "u1", *repo.upserted[0].UserID)
	}
}

func TestRegisterTokenRepositoryError(t *testing.T) {
	repo := &fakeDeviceTokenRepo{err: errors.New("constraint violation")}
	h := NewDeviceTokenHandler(repo)
	c, rec := newTestContext(t, `{"token":"fcm-abc","device_id":"d1"}`)

	assert.NoError(t, h.RegisterToken(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "constraint violation")
}
