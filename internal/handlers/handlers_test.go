package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/quangdm-dev/socialnews-backend/internal/models"
	"github.com/quangdm-dev/socialnews-backend/internal/repositories"
	"github.com/quangdm-dev/socialnews-backend/validators"
)

func newTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validators.NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asUser(c echo.Context, userID, name string) {
	c.Set(ContextUserID, userID)
	if name != "" {
		c.Set(ContextUserName, name)
	}
}

// --- fakes ---

type fakeSink struct {
	mu     sync.Mutex
	events []models.RawInteractionEvent
}

func (f *fakeSink) OnEvent(_ context.Context, event models.RawInteractionEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeSink) received() []models.RawInteractionEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.RawInteractionEvent(nil), f.events...)
}

type fakeNotificationRepo struct {
	records     []models.Notification
	markedRead  []string
	markedAllBy []string
}

func (f *fakeNotificationRepo) Insert(n *models.Notification) error { return nil }

func (f *fakeNotificationRepo) ListByUser(userID string, page, limit int) ([]models.Notification, bool, error) {
	offset := page * limit
	var out []models.Notification
	for _, n := range f.records {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	if offset >= len(out) {
		return nil, false, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	pageRecords := out[offset:end]
	return pageRecords, len(pageRecords) == limit, nil
}

func (f *fakeNotificationRepo) MarkRead(notificationID, userID string) error {
	f.markedRead = append(f.markedRead, notificationID)
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(userID string) error {
	f.markedAllBy = append(f.markedAllBy, userID)
	return nil
}

func (f *fakeNotificationRepo) UnreadCount(userID string) (int64, error) { return 0, nil }

type fakeNotificationCache struct {
	pages       map[string][]byte
	invalidated []string
}

func (f *fakeNotificationCache) key(userID string, page, limit int) string {
	return fmt.Sprintf("%s:%d:%d", userID, page, limit)
}

func (f *fakeNotificationCache) GetPage(_ context.Context, userID string, page, limit int) ([]byte, bool) {
	v, ok := f.pages[f.key(userID, page, limit)]
	return v, ok
}

func (f *fakeNotificationCache) SetPage(_ context.Context, userID string, page, limit int, payload []byte) error {
	if f.pages == nil {
		f.pages = map[string][]byte{}
	}
	f.pages[f.key(userID, page, limit)] = payload
	return nil
}

func (f *fakeNotificationCache) InvalidateUser(_ context.Context, userID string) error {
	f.invalidated = append(f.invalidated, userID)
	return nil
}

type fakePostCache struct {
	mu          sync.Mutex
	invalidated [][2]string
}

func (f *fakePostCache) InvalidatePost(_ context.Context, postID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, [2]string{postID, userID})
	return nil
}

type fakePostRepo struct {
	posts map[string]*models.Post
}

func (f *fakePostRepo) GetPostByPostID(_ context.Context, postID string) (*models.Post, error) {
	if p, ok := f.posts[postID]; ok {
		return p, nil
	}
	return nil, repositories.ErrPostNotFound
}

func (f *fakePostRepo) IncrementLikesCount(context.Context, string) error    { return nil }
func (f *fakePostRepo) DecrementLikesCount(context.Context, string) error    { return nil }
func (f *fakePostRepo) IncrementCommentsCount(context.Context, string) error { return nil }

type fakeLikeRepo struct {
	result *models.ToggleLikeResult
}

func (f *fakeLikeRepo) Toggle(postID, userID string) (*models.ToggleLikeResult, error) {
	return f.result, nil
}

func (f *fakeLikeRepo) HasUserLikedPost(postID, userID string) (bool, error) { return false, nil }
func (f *fakeLikeRepo) CountByPostID(postID string) (int64, error)           { return 0, nil }

type fakeCommentRepo struct {
	created []*models.Comment
}

func (f *fakeCommentRepo) CreateComment(c *models.Comment) error {
	f.created = append(f.created, c)
	return nil
}

func (f *fakeCommentRepo) GetCommentsByPostID(string) ([]models.Comment, error) { return nil, nil }

type fakeDeviceTokenRepo struct {
	upserted []*models.DeviceToken
	err      error
}

func (f *fakeDeviceTokenRepo) Upsert(t *models.DeviceToken) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, t)
	return nil
}

func (f *fakeDeviceTokenRepo) ListByUser(string) ([]models.DeviceToken, error) { return nil, nil }
