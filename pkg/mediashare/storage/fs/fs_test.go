package fs

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestFSBackend_BasicOps(t *testing.T) {
	tmp := t.TempDir()
	backend, err := New(Config{BaseDir: tmp})
	if err != nil {
		t.Fatalf("new fs backend: %v", err)
	}

	ctx := context.Background()
	key := "assets/ab/cdef_file.txt"

	// Upload
	data := []byte("hello fs")
	if err := backend.Upload(ctx, key, bytes.NewReader(data)); err != nil {
		t.Fatalf("upload: %v", err)
	}

	// GetAssetMeta
	meta, err := backend.GetAssetMeta(ctx, key)
	if err != nil {
		t.Fatalf("get meta: %v", err)
	}
	if meta.Size != int64(len(data)) {
		t.Fatalf("expected size %d, got %d", len(data), meta.Size)
	}

	// Download
	rc, err := backend.Download(ctx, key)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	got, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(got) != string(data) {
		t.Fatalf("download mismatch: %q", string(got))
	}

	// Delete
	if err := backend.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, key)); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err=%v", err)
	}

	// Empty shard directory cleaned up
	if _, err := os.Stat(filepath.Join(tmp, "assets", "ab")); !os.IsNotExist(err) {
		t.Fatalf("expected empty directory removed, stat err=%v", err)
	}
}

func TestFSBackend_MissingAsset(t *testing.T) {
	tmp := t.TempDir()
	backend, err := New(Config{BaseDir: tmp})
	if err != nil {
		t.Fatalf("new fs backend: %v", err)
	}

	ctx := context.Background()

	if _, err := backend.Download(ctx, "missing"); err == nil {
		t.Fatal("expected download error for missing asset")
	}
	if err := backend.Delete(ctx, "missing"); err == nil {
		t.Fatal("expected delete error for missing asset")
	}
	if _, err := backend.GetAssetMeta(ctx, "missing"); err == nil {
		t.Fatal("expected meta error for missing asset")
	}
}

func TestFSBackend_DownloadURL(t *testing.T) {
	tmp := t.TempDir()

	backend, err := New(Config{BaseDir: tmp})
	if err != nil {
		t.Fatalf("new fs backend: %v", err)
	}
	if _, err := backend.GetDownloadURL(context.Background(), "k", ""); err == nil {
		t.Fatal("expected error without url prefix")
	}

	backend, err = New(Config{BaseDir: tmp, URLPrefix: "http://localhost:8080"})
	if err != nil {
		t.Fatalf("new fs backend: %v", err)
	}
	url, err := backend.GetDownloadURL(context.Background(), "k", "movie.mp4")
	if err != nil {
		t.Fatalf("get download url: %v", err)
	}
	want := "http://localhost:8080/download/k?filename=movie.mp4"
	if url != want {
		t.Fatalf("expected %q, got %q", want, url)
	}
}

func TestFSBackend_RequiresBaseDir(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing base dir")
	}
}
