// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
)

// fakeRepository is an in-memory [Repository] enforcing slug uniqueness
// the way the real UNIQUE constraint does.
type fakeRepository struct {
	mu     sync.Mutex
	nextID int64
	posts  []*Post
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1}
}

func (repository *fakeRepository) Insert(_ context.Context, post *Post) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.posts {
		if existing.Slug == post.Slug {
			return apperr.Conflict("A post with this title already exists")
		}
	}

	post.ID = repository.nextID
	repository.nextID++
	repository.posts = append(repository.posts, post)
	return nil
}

func (repository *fakeRepository) List(_ context.Context) ([]ListItem, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	items := make([]ListItem, 0, len(repository.posts))
	for _, p := range repository.posts {
		items = append(items, ListItem{ID: p.ID, Title: p.Title, Date: p.Date, Slug: p.Slug})
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

// fakePublisher records publish calls and optionally fails.
type fakePublisher struct {
	mu        sync.Mutex
	failWith  error
	published []*Post
}

func (publisher *fakePublisher) Publish(_ context.Context, post *Post) error {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	if publisher.failWith != nil {
		return publisher.failWith
	}
	publisher.published = append(publisher.published, post)
	return nil
}

func newTestService(repository *fakeRepository, publisher *fakePublisher) *Service {
	return NewService(repository, publisher, slog.New(slog.DiscardHandler))
}

/*
TestService_Publish_Success verifies the happy path: the post gets an
ID, a derived slug, a server-side date, and exactly one published file.
*/
func TestService_Publish_Success(t *testing.T) {
	ctx := context.Background()
	repository := newFakeRepository()
	publisher := &fakePublisher{}
	service := newTestService(repository, publisher)

	created, err := service.Publish(ctx, SubmitInput{
		Title:   "Hello, World!",
		Content: "First post.",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "hello-world", created.Slug)
	assert.WithinDuration(t, time.Now(), created.Date, time.Minute)

	require.Len(t, publisher.published, 1)
	assert.Same(t, created, publisher.published[0])
}

/*
TestService_Publish_Validation verifies that missing fields, oversized
titles, and symbol-only titles are rejected before anything persists.
*/
func TestService_Publish_Validation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		input SubmitInput
	}{
		{"missing title", SubmitInput{Content: "body"}},
		{"missing content", SubmitInput{Title: "Hello"}},
		{"oversized title", SubmitInput{Title: longTitle(201), Content: "body"}},
		{"symbol-only title", SubmitInput{Title: "!!! ???", Content: "body"}},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			repository := newFakeRepository()
			publisher := &fakePublisher{}
			service := newTestService(repository, publisher)

			_, err := service.Publish(ctx, testCase.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)

			assert.Empty(t, repository.posts, "nothing may persist on validation failure")
			assert.Empty(t, publisher.published, "nothing may publish on validation failure")
		})
	}
}

/*
TestService_Publish_DuplicateSlug verifies that a second title deriving
the same slug is rejected with a Conflict and never reaches the
publisher.
*/
func TestService_Publish_DuplicateSlug(t *testing.T) {
	ctx := context.Background()
	repository := newFakeRepository()
	publisher := &fakePublisher{}
	service := newTestService(repository, publisher)

	_, err := service.Publish(ctx, SubmitInput{Title: "Hello World", Content: "first"})
	require.NoError(t, err)

	// Different punctuation, identical slug.
	_, err = service.Publish(ctx, SubmitInput{Title: "Hello, World!", Content: "second"})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)

	assert.Len(t, repository.posts, 1)
	assert.Len(t, publisher.published, 1)
}

/*
TestService_Publish_ConcurrentDuplicates verifies that uniqueness holds
under interleaving: many simultaneous submissions deriving the same slug
yield exactly one committed post, one published file, and a Conflict for
every loser.
*/
func TestService_Publish_ConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	repository := newFakeRepository()
	publisher := &fakePublisher{}
	service := newTestService(repository, publisher)

	// All of these derive the slug "hello-world".
	titles := []string{
		"Hello World",
		"Hello, World!",
		"hello world",
		"HELLO   WORLD",
		"Hello-World",
		"hello, world",
		"Hello World!!!",
		"  Hello World  ",
	}

	var waitGroup sync.WaitGroup
	results := make([]error, len(titles))

	for i, title := range titles {
		waitGroup.Add(1)
		go func(index int, postTitle string) {
			defer waitGroup.Done()
			_, err := service.Publish(ctx, SubmitInput{Title: postTitle, Content: "body"})
			results[index] = err
		}(i, title)
	}
	waitGroup.Wait()

	successes := 0
	conflicts := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		appError := apperr.As(err)
		require.NotNil(t, appError, "losers must fail with an application error")
		assert.Equal(t, "CONFLICT", appError.Code)
		conflicts++
	}

	assert.Equal(t, 1, successes, "exactly one submission may win")
	assert.Equal(t, len(titles)-1, conflicts)
	assert.Len(t, repository.posts, 1)
	assert.Len(t, publisher.published, 1)
	assert.Equal(t, "hello-world", repository.posts[0].Slug)
}

/*
TestService_Publish_PartialFailure verifies the documented dual-write
gap: the row stays committed, the post is returned, and the error
carries the PARTIAL_FAILURE code.
*/
func TestService_Publish_PartialFailure(t *testing.T) {
	ctx := context.Background()
	repository := newFakeRepository()
	publisher := &fakePublisher{failWith: errors.New("disk full")}
	service := newTestService(repository, publisher)

	created, err := service.Publish(ctx, SubmitInput{Title: "Doomed Post", Content: "body"})

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "PARTIAL_FAILURE", appError.Code)

	// The row is NOT rolled back and the created post is still returned.
	require.NotNil(t, created)
	assert.Equal(t, int64(1), created.ID)
	assert.Len(t, repository.posts, 1)
}

/*
TestService_List_NewestFirst verifies listing order: by date descending,
ID descending as tiebreak.
*/
func TestService_List_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repository := newFakeRepository()
	service := newTestService(repository, &fakePublisher{})

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seed := []*Post{
		{Title: "Oldest", Slug: "oldest", Date: base, Content: "x"},
		{Title: "Middle", Slug: "middle", Date: base.Add(time.Hour), Content: "x"},
		{Title: "Newest", Slug: "newest", Date: base.Add(2 * time.Hour), Content: "x"},
	}
	for _, p := range seed {
		require.NoError(t, repository.Insert(ctx, p))
	}

	items, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "newest", items[0].Slug)
	assert.Equal(t, "middle", items[1].Slug)
	assert.Equal(t, "oldest", items[2].Slug)
}

// longTitle builds an n-character ASCII title.
func longTitle(n int) string {
	title := make([]byte, n)
	for i := range title {
		title[i] = 'a'
	}
	return string(title)
}
