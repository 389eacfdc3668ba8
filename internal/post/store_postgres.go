// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// duplicateSlugMessage is the client-facing message for a slug collision.
const duplicateSlugMessage = "A post with this title already exists"

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the post Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert persists a new post row and scans back the generated ID.
//
// # Uniqueness
//
// Slug uniqueness is enforced by the UNIQUE constraint on content.post,
// not by a pre-flight SELECT. Two concurrent submissions deriving the
// same slug therefore race safely: the database commits exactly one and
// the other surfaces here as a Conflict.
func (repository *PostgresRepository) Insert(ctx context.Context, post *Post) error {
	const query = `
		INSERT INTO content.post (
			title, content, date, slug
		) VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := repository.pool.QueryRow(ctx, query,
		post.Title,
		post.Content,
		post.Date,
		post.Slug,
	).Scan(&post.ID)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_post_repo_insert_failed: %w", err), duplicateSlugMessage)
	}

	return nil
}

// List returns every post ordered by submission date, newest first.
// The ID tiebreak keeps ordering stable for posts sharing a timestamp.
func (repository *PostgresRepository) List(ctx context.Context) ([]ListItem, error) {
	const query = `
		SELECT id, title, date, slug
		FROM content.post
		ORDER BY date DESC, id DESC`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_failed: %w", err)
	}
	defer rows.Close()

	items := make([]ListItem, 0)
	for rows.Next() {
		var item ListItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Date, &item.Slug); err != nil {
			return nil, fmt.Errorf("postgres_post_repo_list_scan_failed: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_rows_failed: %w", err)
	}

	return items, nil
}
