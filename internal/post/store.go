// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import "context"

// Repository defines the persistence port for posts.
type Repository interface {
	// Insert persists the post and fills in its database-assigned ID.
	// It returns a Conflict application error when another post already
	// owns the same slug.
	Insert(ctx context.Context, post *Post) error

	// List returns every post, newest first.
	List(ctx context.Context) ([]ListItem, error)
}

// Publisher writes the static-site content file for an accepted post.
//
// Implementations must be atomic with respect to readers: a site build
// running concurrently must see either the complete file or no file,
// never a partial one.
type Publisher interface {
	Publish(ctx context.Context, post *Post) error
}
