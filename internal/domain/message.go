package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnnouncementPriority ranks how prominently an announcement is surfaced.
type AnnouncementPriority string

const (
	PriorityGeneral       AnnouncementPriority = "general"
	PriorityImportant     AnnouncementPriority = "important"
	PriorityVeryImportant AnnouncementPriority = "very_important"
)

// Message is a chat message within a trip. SubgroupID is nil for the
// trip-wide general chat. Announcements are ordinary messages with the
// IsAnnouncement flag set plus a title and priority.
type Message struct {
	ID                uuid.UUID            `json:"id"`
	Content           string               `json:"content"`
	SenderUserID      uuid.UUID            `json:"sender_user_id"`
	TripID            uuid.UUID            `json:"trip_id"`
	SubgroupID        *uuid.UUID           `json:"subgroup_id,omitempty"`
	Timestamp         time.Time            `json:"timestamp"`
	IsAnnouncement    bool                 `json:"is_announcement"`
	AnnouncementTitle string               `json:"announcement_title,omitempty"`
	SendNotification  bool                 `json:"send_notification"`
	Priority          AnnouncementPriority `json:"priority"`
}

// NewMessage constructs a plain (non-announcement) chat message.
func NewMessage(content string, sender, tripID uuid.UUID, subgroupID *uuid.UUID) Message {
	return Message{
		ID:           uuid.New(),
		Content:      content,
		SenderUserID: sender,
		TripID:       tripID,
		SubgroupID:   subgroupID,
		Timestamp:    time.Now().UTC(),
		Priority:     PriorityGeneral,
	}
}

// NewAnnouncement constructs an announcement message for the trip-wide chat.
func NewAnnouncement(title, content string, sender, tripID uuid.UUID, priority AnnouncementPriority, notify bool) Message {
	m := NewMessage(content, sender, tripID, nil)
	m.IsAnnouncement = true
	m.AnnouncementTitle = title
	m.SendNotification = notify
	m.Priority = priority
	return m
}
