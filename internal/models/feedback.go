package models

import "time"

// Feedback is one message left through the feedback page
type Feedback struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Email     string     `gorm:"index;not null" json:"email"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	Reply     string     `gorm:"type:text" json:"reply,omitempty"`
	RepliedBy string     `json:"repliedBy,omitempty"`
	RepliedAt *time.Time `json:"repliedAt,omitempty"`
}

// TableName specifies the table name for Feedback model
func (Feedback) TableName() string {
	return "feedback_messages"
}
