// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package post implements the content domain: submitting posts and
// listing them for the admin dashboard.
//
// # Dual Write
//
// Every accepted post is written twice — a row in PostgreSQL (source of
// truth) and a Markdown content file for the static site generator. The
// orchestration of that dual write lives in [Service.Publish].
package post

import "time"

// Post is the canonical post record as stored in content.post.
type Post struct {
	// ID is assigned by the database on insert.
	ID int64 `json:"id"`
	// Title is the operator-supplied headline, at most 200 characters.
	Title string `json:"title"`
	// Content is the raw Markdown body.
	Content string `json:"content"`
	// Date is the server-side submission timestamp; it orders listings
	// and appears in the content file's front matter.
	Date time.Time `json:"date"`
	// Slug is derived deterministically from Title and is unique across
	// all posts.
	Slug string `json:"slug"`
}

// ListItem is the trimmed projection returned by listings: the body is
// omitted to keep the dashboard payload small.
type ListItem struct {
	ID    int64     `json:"id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Slug  string    `json:"slug"`
}
