package repositories

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ougobatec/Breezy-sub000/internal/models"
)

func comment(id primitive.ObjectID, parent *primitive.ObjectID) models.Comment {
	return models.Comment{ID: id, ParentID: parent}
}

func TestCollectThreadLeaf(t *testing.T) {
	root := primitive.NewObjectID()
	other := primitive.NewObjectID()

	ids := CollectThread(root, []models.Comment{
		comment(root, nil),
		comment(other, nil),
	})

	if len(ids) != 1 || ids[0] != root {
		t.Errorf("got %v, want just the root id", ids)
	}
}

func TestCollectThreadTree(t *testing.T) {
	root := primitive.NewObjectID()
	childA := primitive.NewObjectID()
	childB := primitive.NewObjectID()
	grandchild := primitive.NewObjectID()
	unrelated := primitive.NewObjectID()

	comments := []models.Comment{
		comment(root, nil),
		comment(childA, &root),
		comment(childB, &root),
		comment(grandchild, &childA),
		comment(unrelated, nil),
	}

	ids := CollectThread(root, comments)

	if len(ids) != 4 {
		t.Fatalf("got %d ids, want 4", len(ids))
	}
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	for _, want := range []primitive.ObjectID{root, childA, childB, grandchild} {
		if !seen[want] {
			t.Errorf("missing id %s", want.Hex())
		}
	}
	if seen[unrelated] {
		t.Errorf("collected unrelated comment %s", unrelated.Hex())
	}
}

func TestCollectThreadDeepChain(t *testing.T) {
	const depth = 200

	root := primitive.NewObjectID()
	comments := []models.Comment{comment(root, nil)}
	parent := root
	for i := 0; i < depth; i++ {
		id := primitive.NewObjectID()
		p := parent
		comments = append(comments, comment(id, &p))
		parent = id
	}

	ids := CollectThread(root, comments)

	if len(ids) != depth+1 {
		t.Errorf("got %d ids, want %d", len(ids), depth+1)
	}
}

func TestCollectThreadSubtreeOnly(t *testing.T) {
	root := primitive.NewObjectID()
	reply := primitive.NewObjectID()
	nested := primitive.NewObjectID()

	comments := []models.Comment{
		comment(root, nil),
		comment(reply, &root),
		comment(nested, &reply),
	}

	// deleting the mid-thread reply takes its nested reply but not the root
	ids := CollectThread(reply, comments)

	if len(ids) != 2 {
		t.Fatalf("got %d ids, want 2", len(ids))
	}
	if ids[0] != reply || ids[1] != nested {
		t.Errorf("got %v, want [reply nested]", ids)
	}
}
