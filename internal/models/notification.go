package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationData is the structured payload attached to a notification row
type NotificationData struct {
	PostID    string             `json:"post_id"`
	PostTitle string             `json:"post_title"`
	Actors    []Actor            `json:"actors"`
	Action    NotificationAction `json:"action"`
}

// Value implements driver.Valuer so the payload is stored as JSONB
func (d NotificationData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner
func (d *NotificationData) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = NotificationData{}
		return nil
	default:
		return fmt.Errorf("unsupported type %T for NotificationData", value)
	}
}

// Notification represents a delivered, aggregated notification (PostgreSQL).
// Created once by the aggregation pass; afterwards only the recipient
// mutates it by marking it read.
type Notification struct {
	ID        string           `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string           `json:"user_id" gorm:"type:uuid;index"`
	Type      string           `json:"type" gorm:"size:30;index"` // like, comment, follow, mention, system
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Data      NotificationData `json:"data" gorm:"type:jsonb"`
	IsRead    bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// BeforeCreate assigns the row id
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// GetNotificationsRequest is the body of the notification listing endpoint
type GetNotificationsRequest struct {
	Page  int `json:"page" validate:"min=0"`
	Limit int `json:"limit" validate:"min=0,max=50"`
}

// MarkNotificationReadRequest is the body of the mark-read endpoint
type MarkNotificationReadRequest struct {
	NotificationID *string `json:"notification_id" validate:"omitempty,uuid"`
	MarkAll        bool    `json:"mark_all"`
}

// Pagination describes the notification page returned to the client
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"has_more"`
}

// NotificationPage is the listing result, also the cached representation
type NotificationPage struct {
	Notifications []Notification `json:"notifications"`
	Pagination    Pagination     `json:"pagination"`
}
