package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media types accepted on a post
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Report is a viewer flag on a post, pending moderator review
type Report struct {
	ReporterID uint      `json:"reporter_id" bson:"reporter_id"`
	Reason     string    `json:"reason" bson:"reason"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// Post is a published document stored in MongoDB. Likers is a set: the
// store-level $addToSet/$pull updates keep it duplicate-free.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"`
	Content   string             `json:"content" bson:"content"`
	MediaPath string             `json:"media_path,omitempty" bson:"media_path,omitempty"`
	MediaType string             `json:"media_type,omitempty" bson:"media_type,omitempty"`
	Tags      []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	LikerIDs  []uint             `json:"liker_ids" bson:"liker_ids"`
	Reports   []Report           `json:"reports,omitempty" bson:"reports,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// LikedBy reports whether the given account is in the likers set.
func (p *Post) LikedBy(userID uint) bool {
	for _, id := range p.LikerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// CreatePostRequest defines the request body for creating a new post.
// Media arrives as a multipart file alongside these fields.
type CreatePostRequest struct {
	Content string   `json:"content" form:"content" validate:"required,min=1,max=2000"`
	Tags    []string `json:"tags,omitempty" form:"tags" validate:"omitempty,dive,min=1,max=30"`
}

// ReportPostRequest defines the request body for reporting a post
type ReportPostRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// ResolveReportRequest defines the request body for report resolution
type ResolveReportRequest struct {
	Action string `json:"action" validate:"required,oneof=dismiss delete"`
}
