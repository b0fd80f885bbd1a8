// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates root/relativePath with content, creating parent
// directories as needed.
func WriteFile(t *testing.T, root, relativePath, content string) {
	t.Helper()
	path := filepath.Join(root, relativePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating parent of %s: %v", relativePath, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", relativePath, err)
	}
}

// Symlink creates root/relativePath pointing at target. The target is
// used verbatim, so relative targets resolve against the link's
// directory the same way sysfs links do.
func Symlink(t *testing.T, root, relativePath, target string) {
	t.Helper()
	path := filepath.Join(root, relativePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating parent of %s: %v", relativePath, err)
	}
	if err := os.Symlink(target, path); err != nil {
		t.Fatalf("symlinking %s -> %s: %v", relativePath, target, err)
	}
}

// MkdirAll creates root/relativePath and any missing parents.
func MkdirAll(t *testing.T, root, relativePath string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, relativePath), 0o755); err != nil {
		t.Fatalf("creating %s: %v", relativePath, err)
	}
}

// DiscardLogger returns a logger that only emits errors, to stderr.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

