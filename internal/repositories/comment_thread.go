package repositories

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ougobatec/Breezy-sub000/internal/models"
)

// CollectThread returns the ids of root and every descendant reply,
// walking a children index breadth-first. Replies form a tree rooted at a
// top-level comment, so no cycle protection is needed; the iterative walk
// keeps pathological reply depth off the call stack.
func CollectThread(root primitive.ObjectID, comments []models.Comment) []primitive.ObjectID {
	children := make(map[primitive.ObjectID][]primitive.ObjectID, len(comments))
	for _, c := range comments {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	ids := []primitive.ObjectID{root}
	for i := 0; i < len(ids); i++ {
		ids = append(ids, children[ids[i]]...)
	}
	return ids
}
