package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")
	client, err := NewClient(path)
	if err != nil {
		t.Fatalf("NewClient(%q) failed: %v", path, err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSetAndGet(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "model", []byte(`{"itemCount":5}`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := client.Get(ctx, "model")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, []byte(`{"itemCount":5}`)) {
		t.Errorf("Get = %q", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	client := newTestClient(t)

	if _, err := client.Get(context.Background(), "nope"); err == nil {
		t.Error("Get on missing key should return an error")
	}
}

func TestEmptyKeyRejected(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "", []byte("x"), 0); err == nil {
		t.Error("Set with empty key should fail")
	}
	if _, err := client.Get(ctx, ""); err == nil {
		t.Error("Get with empty key should fail")
	}
	if err := client.Delete(ctx, ""); err == nil {
		t.Error("Delete with empty key should fail")
	}
}

func TestOverwrite(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "k", []byte("first"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := client.Set(ctx, "k", []byte("second"), 0); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}

	got, err := client.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("Get = %q, want second", got)
	}
}

func TestTTLExpiry(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "ephemeral", []byte("v"), time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := client.Get(ctx, "ephemeral"); err != nil {
		t.Fatalf("Get before expiry failed: %v", err)
	}

	// Expiry is stored at second granularity.
	time.Sleep(2100 * time.Millisecond)

	if _, err := client.Get(ctx, "ephemeral"); err == nil {
		t.Error("Get after expiry should return an error")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "durable", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if _, err := client.Get(ctx, "durable"); err != nil {
		t.Errorf("Get failed: %v", err)
	}
}

func TestDelete(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := client.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := client.Get(ctx, "k"); err == nil {
		t.Error("Get after Delete should return an error")
	}
}

func TestDeleteMissingKey(t *testing.T) {
	client := newTestClient(t)

	if err := client.Delete(context.Background(), "nope"); err != nil {
		t.Errorf("Delete on missing key should succeed, got %v", err)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	ctx := context.Background()

	first, err := NewClient(path)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if err := first.Set(ctx, "model", []byte("persisted"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := NewClient(path)
	if err != nil {
		t.Fatalf("NewClient reopen failed: %v", err)
	}
	defer second.Close()

	got, err := second.Get(ctx, "model")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(got) != "persisted" {
		t.Errorf("Get = %q, want persisted", got)
	}
}
