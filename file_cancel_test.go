package tagkit_test

import (
	"context"
	"os"
	"testing"

	"github.com/go-tagkit/tagkit"
	_ "github.com/go-tagkit/tagkit/internal/flac"
)

func createTestFLACFile(t *testing.T) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test*.flac")
	if err != nil {
		t.Fatal(err)
	}
	defer tmpFile.Close()

	if _, err := tmpFile.Write([]byte("fLaC" + string(make([]byte, 100)))); err != nil {
		t.Fatal(err)
	}

	return tmpFile.Name()
}

func TestOpenMany_Cancellation(t *testing.T) {
	paths := make([]string, 5)
	for i := range paths {
		paths[i] = createTestFLACFile(t)
		defer os.Remove(paths[i])
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files, err := tagkit.OpenMany(ctx, paths)

	if err == nil {
		t.Fatal("expected error from cancelled context")
	}

	if files != nil {
		t.Error("expected nil files on error")
	}
}

func TestOpenMany_PartialFailure(t *testing.T) {
	validPath := createTestFLACFile(t)
	defer os.Remove(validPath)

	paths := []string{
		validPath,
		"/nonexistent/file.flac",
		validPath,
	}

	ctx := context.Background()

	files, err := tagkit.OpenMany(ctx, paths)

	if err == nil {
		t.Fatal("expected error from nonexistent file")
	}

	if files != nil {
		t.Error("expected nil files on partial failure")
	}
}

func TestReadMany_PerFileErrorsDoNotAbortOthers(t *testing.T) {
	validPath := createTestFLACFile(t)
	defer os.Remove(validPath)

	paths := []string{validPath, "/nonexistent/file.flac", validPath}

	results, errs := tagkit.ReadMany(context.Background(), paths)

	if errs[1] == nil {
		t.Error("expected error for nonexistent path at index 1")
	}
	if errs[0] != nil || errs[2] != nil {
		t.Errorf("expected no error for valid paths, got %v, %v", errs[0], errs[2])
	}
	if results[0] == nil || results[2] == nil {
		t.Error("expected results for valid paths")
	}
	if results[1] != nil {
		t.Error("expected nil result for failed path")
	}
}
