package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ougobatec/Breezy-sub000/pkg/config"
)

func TestObjectNameKeepsExtension(t *testing.T) {
	name := objectName("holiday.PNG")
	if !strings.HasSuffix(name, ".PNG") {
		t.Errorf("got %q, want the original extension kept", name)
	}
	if strings.Contains(name, "holiday") {
		t.Errorf("got %q, want the original basename replaced", name)
	}
}

func TestObjectNameUnique(t *testing.T) {
	a := objectName("a.jpg")
	b := objectName("a.jpg")
	if a == b {
		t.Errorf("two uploads of the same filename collided: %q", a)
	}
}

func TestFileSystemStoreSave(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileSystemStore(root)
	if err != nil {
		t.Fatalf("NewFileSystemStore: %v", err)
	}

	path, err := store.Save(context.Background(), "pic.jpg", "image/jpeg", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(path, "/media/") {
		t.Errorf("got path %q, want a /media/ prefix", path)
	}

	data, err := os.ReadFile(filepath.Join(root, strings.TrimPrefix(path, "/media/")))
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("got %q, want %q", data, "payload")
	}
}

func TestNewStoreFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("filesystem", func(t *testing.T) {
		store, err := NewStoreFromConfig(ctx, config.MediaConfig{Backend: "filesystem", Root: t.TempDir()})
		if err != nil {
			t.Fatalf("got %v, want nil", err)
		}
		if _, ok := store.(*FileSystemStore); !ok {
			t.Errorf("got %T, want *FileSystemStore", store)
		}
	})

	t.Run("filesystem without root", func(t *testing.T) {
		if _, err := NewStoreFromConfig(ctx, config.MediaConfig{Backend: "filesystem"}); err == nil {
			t.Error("got nil, want an error for missing root")
		}
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		if _, err := NewStoreFromConfig(ctx, config.MediaConfig{Backend: "s3"}); err == nil {
			t.Error("got nil, want an error for missing bucket")
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewStoreFromConfig(ctx, config.MediaConfig{Backend: "ftp"})
		if err == nil || !strings.Contains(err.Error(), "unknown media backend") {
			t.Errorf("got %v, want an unknown-backend error", err)
		}
	})
}
