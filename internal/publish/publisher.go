// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package publish writes static-site content files for accepted posts.
//
// # Output Format
//
// Files are Markdown with YAML front matter, laid out the way static
// site generators expect them:
//
//	---
//	title: "Hello, World!"
//	date: 2026-08-29T12:00:00Z
//	draft: false
//	---
//
//	Body text...
package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/taibuivan/inkwell/internal/post"
)

// postsSubdir is the directory under the content root that holds posts.
const postsSubdir = "posts"

// FilePublisher implements [post.Publisher] on the local filesystem.
type FilePublisher struct {
	contentDir string
}

// NewFilePublisher creates a publisher rooted at contentDir.
func NewFilePublisher(contentDir string) *FilePublisher {
	return &FilePublisher{contentDir: contentDir}
}

// Publish writes <contentDir>/posts/<slug>.md for the given post.
//
// # Atomicity
//
// The file is written to a temporary name in the destination directory
// and then renamed into place. A site build running concurrently sees
// either the previous state or the complete new file, never a torn
// write. Rename is atomic only within a filesystem, which is why the
// temp file lives next to the destination.
func (publisher *FilePublisher) Publish(_ context.Context, p *post.Post) error {
	directory := filepath.Join(publisher.contentDir, postsSubdir)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("publish_mkdir_failed: %w", err)
	}

	destination := filepath.Join(directory, p.Slug+".md")

	temp, err := os.CreateTemp(directory, "."+p.Slug+".md.tmp-*")
	if err != nil {
		return fmt.Errorf("publish_temp_create_failed: %w", err)
	}
	tempName := temp.Name()

	// Best-effort cleanup if any later step fails.
	defer func() {
		_ = temp.Close()
		_ = os.Remove(tempName)
	}()

	if _, err := temp.WriteString(render(p)); err != nil {
		return fmt.Errorf("publish_write_failed: %w", err)
	}
	if err := temp.Sync(); err != nil {
		return fmt.Errorf("publish_sync_failed: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("publish_close_failed: %w", err)
	}

	if err := os.Rename(tempName, destination); err != nil {
		return fmt.Errorf("publish_rename_failed: %w", err)
	}

	return nil
}

// render produces the full file body: front matter, blank line, content.
func render(p *post.Post) string {
	var builder strings.Builder

	builder.WriteString("---\n")
	// %q yields a double-quoted string with embedded quotes escaped, so
	// arbitrary titles stay valid YAML.
	fmt.Fprintf(&builder, "title: %q\n", p.Title)
	fmt.Fprintf(&builder, "date: %s\n", p.Date.UTC().Format(time.RFC3339))
	builder.WriteString("draft: false\n")
	builder.WriteString("---\n\n")
	builder.WriteString(p.Content)
	if !strings.HasSuffix(p.Content, "\n") {
		builder.WriteString("\n")
	}

	return builder.String()
}
