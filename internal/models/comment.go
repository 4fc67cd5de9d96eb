package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a threaded comment document. A non-nil ParentID marks a reply;
// ReplyIDs is the ordered list of direct children.
type Comment struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	PostID    primitive.ObjectID   `json:"post_id" bson:"post_id"`
	AuthorID  uint                 `json:"author_id" bson:"author_id"`
	Content   string               `json:"content" bson:"content"`
	ParentID  *primitive.ObjectID  `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	ReplyIDs  []primitive.ObjectID `json:"reply_ids,omitempty" bson:"reply_ids,omitempty"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for creating a comment.
// ParentID, when set, makes the comment a reply.
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=1000"`
	ParentID string `json:"parent_id,omitempty"`
}
