package models

import "time"

// DeviceToken is a registered push target for a device. The device id is the
// natural key: re-registering the same device always overwrites its prior
// token, regardless of login state. user_id is null for devices that
// registered before the user signed in.
type DeviceToken struct {
	DeviceID  string    `json:"device_id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"column:fcm_token"`
	UserID    *string   `json:"user_id" gorm:"type:uuid;index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the table the mobile client registers into
func (DeviceToken) TableName() string { return "firebase_messages" }

// RegisterDeviceTokenRequest defines the body of the token registration endpoint
type RegisterDeviceTokenRequest struct {
	Token    string  `json:"token" validate:"required,min=1"`
	DeviceID string  `json:"device_id" validate:"required,min=1"`
	UserID   *string `json:"user_id"`
}
