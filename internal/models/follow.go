package models

import "time"

// Follow is a directed edge: the subscriber receives the target's posts in
// their flow. The composite unique index keeps at most one edge per pair.
type Follow struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SubscriberID uint      `json:"subscriber_id" gorm:"index;uniqueIndex:idx_subscriber_target"`
	TargetID     uint      `json:"target_id" gorm:"index;uniqueIndex:idx_subscriber_target"`
	CreatedAt    time.Time `json:"created_at"`
}
