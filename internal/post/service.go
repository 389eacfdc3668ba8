// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/slug"
)

// maxTitleLength bounds operator-supplied titles.
const maxTitleLength = 200

// Service orchestrates post submission and listing.
type Service struct {
	repository Repository
	publisher  Publisher
	logger     *slog.Logger
}

// NewService constructs a new post [Service] with necessary dependencies.
func NewService(repository Repository, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		publisher:  publisher,
		logger:     logger,
	}
}

// SubmitInput defines the operator-supplied fields of a new post.
type SubmitInput struct {
	Title   string
	Content string
}

// Publish validates a submission, persists it, and writes its content file.
//
// # Ordering
//
// The database insert strictly precedes the file write: the row is the
// source of truth and the file is derived from it. The order is never
// reversed and there is no rollback.
//
// # Partial Failure
//
// If the file write fails after the row committed, Publish returns the
// persisted post together with a PARTIAL_FAILURE error. The caller gets
// both: the post exists and the gap is reported honestly rather than
// papered over.
func (service *Service) Publish(ctx context.Context, input SubmitInput) (*Post, error) {
	// ── 1. Boundary Validation ────────────────────────────────────────────

	v := &validate.Validator{}
	v.Required("title", input.Title).MaxLen("title", input.Title, maxTitleLength)
	v.Required("content", input.Content)
	if err := v.Err(); err != nil {
		return nil, err
	}

	derivedSlug := slug.From(input.Title)
	if derivedSlug == "" {
		// Titles like "!!!" reduce to an empty slug and cannot be
		// addressed as a URL or a filename.
		return nil, validate.RequiredError("title", "Must contain at least one letter or digit")
	}

	// ── 2. Row Persistence ────────────────────────────────────────────────

	newPost := &Post{
		Title:   input.Title,
		Content: input.Content,
		Date:    time.Now().UTC(),
		Slug:    derivedSlug,
	}

	if err := service.repository.Insert(ctx, newPost); err != nil {
		return nil, fmt.Errorf("post_service_insert_failed: %w", err)
	}

	// ── 3. Content File Publication ───────────────────────────────────────

	if err := service.publisher.Publish(ctx, newPost); err != nil {
		// The row stays committed. Log the full cause for reconciliation
		// and report the gap to the client.
		service.logger.ErrorContext(ctx, "post_publish_file_failed",
			slog.Int64("post_id", newPost.ID),
			slog.String("slug", newPost.Slug),
			slog.String("error", err.Error()),
		)
		return newPost, apperr.PartialFailure(err)
	}

	return newPost, nil
}

// List returns all posts, newest first.
func (service *Service) List(ctx context.Context) ([]ListItem, error) {
	items, err := service.repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("post_service_list_failed: %w", err)
	}
	return items, nil
}
