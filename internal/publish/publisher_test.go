// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package publish_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/post"
	"github.com/taibuivan/inkwell/internal/publish"
)

/*
TestFilePublisher_WritesFrontMatter verifies the on-disk layout and the
exact front matter format the site generator consumes.
*/
func TestFilePublisher_WritesFrontMatter(t *testing.T) {
	ctx := context.Background()
	contentDir := t.TempDir()
	publisher := publish.NewFilePublisher(contentDir)

	date := time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC)
	err := publisher.Publish(ctx, &post.Post{
		ID:      1,
		Title:   `Hello, "World"!`,
		Content: "First paragraph.\n\nSecond paragraph.",
		Date:    date,
		Slug:    "hello-world",
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(contentDir, "posts", "hello-world.md"))
	require.NoError(t, err)

	expected := "---\n" +
		"title: \"Hello, \\\"World\\\"!\"\n" +
		"date: 2026-08-29T12:30:00Z\n" +
		"draft: false\n" +
		"---\n\n" +
		"First paragraph.\n\nSecond paragraph.\n"
	assert.Equal(t, expected, string(raw))
}

/*
TestFilePublisher_CreatesDirectory verifies the posts directory is
created on demand under a content root that does not exist yet.
*/
func TestFilePublisher_CreatesDirectory(t *testing.T) {
	ctx := context.Background()
	contentDir := filepath.Join(t.TempDir(), "deep", "content")
	publisher := publish.NewFilePublisher(contentDir)

	err := publisher.Publish(ctx, &post.Post{
		Title:   "Nested",
		Content: "body",
		Date:    time.Now().UTC(),
		Slug:    "nested",
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(contentDir, "posts", "nested.md"))
	assert.NoError(t, err)
}

/*
TestFilePublisher_OverwritesExisting verifies republishing the same slug
replaces the file completely rather than appending.
*/
func TestFilePublisher_OverwritesExisting(t *testing.T) {
	ctx := context.Background()
	contentDir := t.TempDir()
	publisher := publish.NewFilePublisher(contentDir)

	date := time.Now().UTC()
	first := &post.Post{Title: "Take One", Content: "old body", Date: date, Slug: "take"}
	require.NoError(t, publisher.Publish(ctx, first))

	second := &post.Post{Title: "Take One", Content: "new body", Date: date, Slug: "take"}
	require.NoError(t, publisher.Publish(ctx, second))

	raw, err := os.ReadFile(filepath.Join(contentDir, "posts", "take.md"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "new body")
	assert.NotContains(t, string(raw), "old body")
}

/*
TestFilePublisher_LeavesNoTempFiles verifies no temporary artifacts
remain in the posts directory after a successful publish.
*/
func TestFilePublisher_LeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	contentDir := t.TempDir()
	publisher := publish.NewFilePublisher(contentDir)

	for i := 0; i < 3; i++ {
		err := publisher.Publish(ctx, &post.Post{
			Title:   "Entry",
			Content: "body",
			Date:    time.Now().UTC(),
			Slug:    fmt.Sprintf("entry-%d", i),
		})
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(filepath.Join(contentDir, "posts"))
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	for _, entry := range entries {
		assert.Regexp(t, `^entry-\d\.md$`, entry.Name())
	}
}
