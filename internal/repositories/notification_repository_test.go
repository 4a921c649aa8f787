package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/quangdm-dev/socialnews-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func seedNotifications(t *testing.T, repo NotificationRepository, userID string, n int) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		record := &models.Notification{
			UserID: userID,
			Type:   "like",
			Title:  fmt.Sprintf("thông báo %d", i),
			Body:   "\"Tin nóng\"",
			Data: models.NotificationData{
				PostID:    "p1",
				PostTitle: "Tin nóng",
				Actors:    []models.Actor{{ID: "a1", Name: "An"}},
				Action:    models.ActionLike,
			},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		assert.NoError(t, repo.Insert(record))
	}
}

func TestListByUserPagination(t *testing.T) {
	repo := NewPostgresNotificationRepository(newTestDB(t))
	seedNotifications(t, repo, "u1", 25)

	page0, hasMore, err := repo.ListByUser("u1", 0, 20)
	assert.NoError(t, err)
	assert.Len(t, page0, 20)
	assert.True(t, hasMore)

	page1, hasMore, err := repo.ListByUser("u1", 1, 20)
	assert.NoError(t, err)
	assert.Len(t, page1, 5)
	assert.False(t, hasMore)
}

func TestListByUserNewestFirst(t *testing.T) {
	repo := NewPostgresNotificationRepository(newTestDB(t))
	seedNotifications(t, repo, "u1", 3)

	records, _, err := repo.ListByUser("u1", 0, 20)
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.True(t, records[0].CreatedAt.After(records[2].CreatedAt))
}

func TestListByUserScoping(t *testing.T) {
	repo := NewPostgresNotificationRepository(newTestDB(t))
	seedNotifications(t, repo, "u1", 2)
	seedNotifications(t, repo, "u2", 1)

	records, _, err := repo.ListByUser("u1", 0, 20)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestMarkReadScopedToOwner(t *testing.T) {
	repo := NewPostgresNotificationRepository(newTestDB(t))
	seedNotifications(t, repo, "u1", 1)

	records, _, err := repo.ListByUser("u1", 0, 20)
	assert.NoError(t, err)
	id := records[0].ID

	// Another user cannot mutate the record.
	assert.NoError(t, repo.MarkRead(id, "intruder"))
	count, err := repo.UnreadCount("u1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.NoError(t, repo.MarkRead(id, "u1"))
	count, err = repo.UnreadCount("u1")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkAllRead(t *testing.T) {
	repo := NewPostgresNotificationRepository(newTestDB(t))
	seedNotifications(t, repo, "u1", 5)
	seedNotifications(t, repo, "u2", 2)

	assert.NoError(t, repo.MarkAllRead("u1"))

	count, err := repo.UnreadCount("u1")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	count, err = repo.UnreadCount("u2")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestDataRoundTrip(t *testing.T) {
	repo := NewPostgresNotificationRepository(newTestDB(t))
	seedNotifications(t, repo, "u1", 1)

	records, _, err := repo.ListByUser("u1", 0, 20)
	assert.NoError(t, err)
	assert.Equal(t, "p1", records[0].Data.PostID)
	assert.Equal(t, []models.Actor{{ID: "a1", Name: "An"}}, records[0].Data.Actors)
}
