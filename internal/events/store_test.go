package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/quangdm-dev/socialnews-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

var storeKey = models.AggregationKey{TargetUserID: "u1", PostID: "p1", Action: models.ActionLike}

func storeEvent(actorID string, ts int64) models.RawInteractionEvent {
	return models.RawInteractionEvent{
		PostID:       "p1",
		ActorID:      actorID,
		ActorName:    "An",
		Action:       models.ActionLike,
		TargetUserID: "u1",
		Timestamp:    ts,
	}
}

func TestKeyFormat(t *testing.T) {
	assert.Equal(t, "notification_event:u1:p1:like", storeKey.String())
}

func TestAppendFirstEventOpensWindow(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb, 300*time.Second)

	e := storeEvent("a1", 1)
	payload, _ := json.Marshal(e)
	mock.ExpectRPush(storeKey.String(), payload).SetVal(1)
	mock.ExpectExpire(storeKey.String(), 300*time.Second).SetVal(true)

	size, err := store.Append(context.Background(), storeKey, e)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), size, "first append signals a fresh window")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendGrowsWindow(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb, 300*time.Second)

	e := storeEvent("a2", 2)
	payload, _ := json.Marshal(e)
	mock.ExpectRPush(storeKey.String(), payload).SetVal(2)
	mock.ExpectExpire(storeKey.String(), 300*time.Second).SetVal(true)

	size, err := store.Append(context.Background(), storeKey, e)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), size)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadReturnsEventsInInsertionOrder(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb, 300*time.Second)

	first, _ := json.Marshal(storeEvent("a1", 1))
	second, _ := json.Marshal(storeEvent("a2", 2))
	mock.ExpectLRange(storeKey.String(), 0, -1).SetVal([]string{string(first), string(second)})

	events, err := store.Read(context.Background(), storeKey)
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "a1", events[0].ActorID)
	assert.Equal(t, "a2", events[1].ActorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDrainReadsAndDeletesAtomically(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb, 300*time.Second)

	payload, _ := json.Marshal(storeEvent("a1", 1))
	mock.ExpectTxPipeline()
	mock.ExpectLRange(storeKey.String(), 0, -1).SetVal([]string{string(payload)})
	mock.ExpectDel(storeKey.String()).SetVal(1)
	mock.ExpectTxPipelineExec()

	events, err := store.Drain(context.Background(), storeKey)
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDrainEmptyBufferIsNoOp(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb, 300*time.Second)

	mock.ExpectTxPipeline()
	mock.ExpectLRange(storeKey.String(), 0, -1).SetVal([]string{})
	mock.ExpectDel(storeKey.String()).SetVal(0)
	mock.ExpectTxPipelineExec()

	events, err := store.Drain(context.Background(), storeKey)
	assert.NoError(t, err)
	assert.Empty(t, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearIsIdempotent(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewRedisStore(rdb, 300*time.Second)

	mock.ExpectDel(storeKey.String()).SetVal(0)

	assert.NoError(t, store.Clear(context.Background(), storeKey))
	assert.NoError(t, mock.ExpectationsWereMet())
}
