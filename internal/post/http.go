// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

// Handler implements the post HTTP endpoints. All of its routes sit
// behind the session middleware; an unauthenticated request never
// reaches this code.
type Handler struct {
	postService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{postService: service}
}

// Routes assembles the post sub-router, mounted at /posts.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	return router
}

// submitRequest represents the JSON payload for a new post.
type submitRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// create handles POST /posts requests.
//
// # Returns
//   - Writes HTTP 201 Created with {id, slug} on success.
//   - Writes HTTP 400 Bad Request on validation failure.
//   - Writes HTTP 409 Conflict when the derived slug is taken.
//   - Writes HTTP 500 with code PARTIAL_FAILURE when the row committed
//     but the content file did not.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	created, err := handler.postService.Publish(request.Context(), SubmitInput{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		"id":   created.ID,
		"slug": created.Slug,
		"date": created.Date,
	})
}

// list handles GET /posts requests, returning all posts newest first.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.postService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}
