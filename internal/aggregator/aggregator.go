package aggregator

import (
	"context"
	"errors"
	"time"

	"github.com/quangdm-dev/socialnews-backend/internal/events"
	"github.com/quangdm-dev/socialnews-backend/internal/models"
	"github.com/quangdm-dev/socialnews-backend/internal/push"
	"github.com/quangdm-dev/socialnews-backend/internal/repositories"
	"go.uber.org/zap"
)

const passTimeout = 30 * time.Second

// PostFinder resolves the post a window refers to
type PostFinder interface {
	GetPostByPostID(ctx context.Context, postID string) (*models.Post, error)
}

// NotificationWriter persists the aggregated notification
type NotificationWriter interface {
	Insert(n *models.Notification) error
}

// TokenLister returns the recipient's registered device tokens
type TokenLister interface {
	ListByUser(userID string) ([]models.DeviceToken, error)
}

// PushSender delivers the formatted message to the device tokens
type PushSender interface {
	Send(ctx context.Context, tokens []string, msg push.Message)
}

// Aggregator coalesces bursts of interaction events on the same
// (target user, post, action) into a single notification.
type Aggregator struct {
	store         events.Store
	posts         PostFinder
	notifications NotificationWriter
	tokens        TokenLister
	dispatcher    PushSender
	scheduler     Scheduler
	window        time.Duration
	log           *zap.SugaredLogger
}

func New(
	store events.Store,
	posts PostFinder,
	notifications NotificationWriter,
	tokens TokenLister,
	dispatcher PushSender,
	scheduler Scheduler,
	window time.Duration,
	log *zap.SugaredLogger,
) *Aggregator {
	return &Aggregator{
		store:         store,
		posts:         posts,
		notifications: notifications,
		tokens:        tokens,
		dispatcher:    dispatcher,
		scheduler:     scheduler,
		window:        window,
		log:           log,
	}
}

// OnEvent buffers one interaction event. The first event of a window
// schedules a single aggregation pass after the window delay. Failures are
// logged and swallowed: notifications are best-effort and must never fail
// the content mutation that emitted the event.
func (a *Aggregator) OnEvent(ctx context.Context, event models.RawInteractionEvent) {
	if event.ActorID == event.TargetUserID {
		return
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}

	key := models.KeyFor(event)
	size, err := a.store.Append(ctx, key, event)
	if err != nil {
		a.log.Warnw("event buffer append failed",
			"key", key.String(), "actor", event.ActorID, "action", event.Action, "err", err)
		return
	}

	if size == 1 {
		a.scheduler.Schedule(key, a.window, func() {
			passCtx, cancel := context.WithTimeout(context.Background(), passTimeout)
			defer cancel()
			if err := a.RunAggregationPass(passCtx, key); err != nil {
				a.log.Errorw("aggregation pass failed", "key", key.String(), "err", err)
			}
		})
	}
}

// RunAggregationPass consumes the window's buffer and produces exactly one
// notification. Safe to invoke concurrently for the same key: the buffer is
// drained atomically, so a racing second pass finds it empty and no-ops.
func (a *Aggregator) RunAggregationPass(ctx context.Context, key models.AggregationKey) error {
	buffered, err := a.store.Drain(ctx, key)
	if err != nil {
		return err
	}
	if len(buffered) == 0 {
		return nil
	}

	agg := Fold(key, buffered)

	post, err := a.posts.GetPostByPostID(ctx, key.PostID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			a.log.Warnw("post gone, dropping aggregated notification",
				"post", key.PostID, "user", key.TargetUserID)
			return nil
		}
		return err
	}

	title, body := FormatMessage(agg, post.Title)
	record := &models.Notification{
		UserID: key.TargetUserID,
		Type:   string(key.Action),
		Title:  title,
		Body:   body,
		Data: models.NotificationData{
			PostID:    key.PostID,
			PostTitle: post.Title,
			Actors:    agg.Actors,
			Action:    key.Action,
		},
		IsRead: false,
	}
	if err := a.notifications.Insert(record); err != nil {
		return err
	}

	tokens, err := a.tokens.ListByUser(key.TargetUserID)
	if err != nil {
		a.log.Warnw("device token lookup failed", "user", key.TargetUserID, "err", err)
		return nil
	}
	if len(tokens) > 0 {
		targets := make([]string, len(tokens))
		for i, t := range tokens {
			targets[i] = t.Token
		}
		a.dispatcher.Send(ctx, targets, push.Message{
			Title: title,
			Body:  body,
			Data:  map[string]string{"type": "post_interaction"},
		})
	}

	a.log.Infow("notification aggregated",
		"user", key.TargetUserID, "post", key.PostID, "action", key.Action,
		"actors", agg.Count, "devices", len(tokens))
	return nil
}
