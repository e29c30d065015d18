package disk

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avelarde/catalog-backend/pkg/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), config.StorageConfig{
		Root:          t.TempDir(),
		PublicBaseURL: "http://localhost:8080/storage/",
	}, nil)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestSaveGeneratesUniquePaths(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	seen := map[string]struct{}{}
	for i := 0; i < 20; i++ {
		rel, err := client.Save(ctx, strings.NewReader("fake image bytes"), ".jpg")
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if !strings.HasPrefix(rel, "products/") {
			t.Fatalf("expected products/ namespace, got %q", rel)
		}
		if !strings.HasSuffix(rel, ".jpg") {
			t.Fatalf("expected original extension kept, got %q", rel)
		}
		if _, dup := seen[rel]; dup {
			t.Fatalf("duplicate path generated: %q", rel)
		}
		seen[rel] = struct{}{}
		if !client.Exists(rel) {
			t.Fatalf("saved file %q not found on disk", rel)
		}
	}
}

func TestDeleteIsNoOpWhenAbsent(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.Delete(ctx, "products/never_existed.jpg"); err != nil {
		t.Fatalf("expected no-op delete, got %v", err)
	}

	rel, err := client.Save(ctx, strings.NewReader("bytes"), "png")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := client.Delete(ctx, rel); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if client.Exists(rel) {
		t.Fatalf("file %q still present after delete", rel)
	}
	if err := client.Delete(ctx, rel); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
}

func TestDeleteRejectsEscapingPaths(t *testing.T) {
	client := newTestClient(t)
	if err := client.Delete(context.Background(), "../outside.jpg"); err == nil {
		t.Fatal("expected error for path escaping the root")
	}
}

func TestPublicURL(t *testing.T) {
	client := newTestClient(t)
	got := client.PublicURL("products/abc.jpg")
	if got != "http://localhost:8080/storage/products/abc.jpg" {
		t.Fatalf("unexpected public URL %q", got)
	}
}

func TestPingFailsWhenRootRemoved(t *testing.T) {
	root := filepath.Join(t.TempDir(), "gone")
	client, err := NewClient(context.Background(), config.StorageConfig{
		Root:          root,
		PublicBaseURL: "http://localhost:8080/storage",
	}, nil)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("expected healthy ping, got %v", err)
	}
	if err := os.RemoveAll(root); err != nil {
		t.Fatalf("removing root: %v", err)
	}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected ping failure once root is gone")
	}
}
