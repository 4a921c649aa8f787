package models

import "fmt"

// NotificationAction is the kind of interaction that produced an event
type NotificationAction string

const (
	ActionLike    NotificationAction = "like"
	ActionComment NotificationAction = "comment"
)

// RawInteractionEvent is one like/comment interaction on a post, emitted by
// the ingress handlers and buffered in the event store until a window closes.
// Immutable once created.
type RawInteractionEvent struct {
	PostID       string             `json:"post_id"`
	ActorID      string             `json:"actor_id"`
	ActorName    string             `json:"actor_name"`
	ActorAvatar  *string            `json:"actor_avatar,omitempty"`
	Action       NotificationAction `json:"action"`
	TargetUserID string             `json:"target_user_id"`
	Timestamp    int64              `json:"timestamp"` // unix milliseconds
}

// AggregationKey identifies one aggregation window: all events sharing a key
// coalesce into a single notification.
type AggregationKey struct {
	TargetUserID string
	PostID       string
	Action       NotificationAction
}

// String renders the event store key for this window
func (k AggregationKey) String() string {
	return fmt.Sprintf("notification_event:%s:%s:%s", k.TargetUserID, k.PostID, k.Action)
}

// KeyFor derives the aggregation key of an event
func KeyFor(e RawInteractionEvent) AggregationKey {
	return AggregationKey{
		TargetUserID: e.TargetUserID,
		PostID:       e.PostID,
		Action:       e.Action,
	}
}

// Actor is a distinct user appearing in an aggregated notification
type Actor struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
}

// AggregatedNotification is the fold of one event buffer: distinct actors in
// first-seen order. Derived only; it is persisted as a Notification row.
type AggregatedNotification struct {
	PostID          string             `json:"post_id"`
	Action          NotificationAction `json:"action"`
	TargetUserID    string             `json:"target_user_id"`
	Actors          []Actor            `json:"actors"`
	Count           int                `json:"count"`
	LatestTimestamp int64              `json:"latest_timestamp"`
}

// CreateNotificationEventRequest is the body of the internal event ingress
// endpoint.
type CreateNotificationEventRequest struct {
	PostID       string  `json:"post_id" validate:"required,uuid"`
	ActorID      string  `json:"actor_id" validate:"required,uuid"`
	ActorName    string  `json:"actor_name" validate:"required"`
	ActorAvatar  *string `json:"actor_avatar,omitempty"`
	Action       string  `json:"action" validate:"required,oneof=like comment"`
	TargetUserID string  `json:"target_user_id" validate:"required,uuid"`
}
