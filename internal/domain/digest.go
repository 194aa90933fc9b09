package domain

import (
	"time"

	"github.com/google/uuid"
)

// DigestDateLayout is the calendar-day key format for daily digests.
const DigestDateLayout = "2006-01-02"

type TrendingTopic struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

type DailyDigest struct {
	ID        uuid.UUID       `json:"id"`
	Date      string          `json:"date"`
	Topics    []TrendingTopic `json:"topics,omitempty"`
	Summary   string          `json:"summary"`
	CreatedAt time.Time       `json:"created_at"`
}
