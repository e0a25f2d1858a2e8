// Package memory is an in-process Entity Store used for local runs and tests.
// It applies the same cascade and detach rules as the postgres adapter.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
)

type store struct {
	mu sync.RWMutex

	now func() time.Time

	users    map[uuid.UUID]*model.User
	groups   map[int64]*model.Group
	posts    map[int64]*model.Post
	comments map[int64]*model.Comment
	follows  map[model.Follow]struct{}

	nextGroupID   int64
	nextPostID    int64
	nextCommentID int64
}

type Option func(*store)

// WithClock overrides the timestamp source for pub_date and created.
func WithClock(now func() time.Time) Option {
	return func(s *store) {
		s.now = now
	}
}

func New(opts ...Option) *repository.Repository {
	s := &store{
		now:      func() time.Time { return time.Now().UTC() },
		users:    make(map[uuid.UUID]*model.User),
		groups:   make(map[int64]*model.Group),
		posts:    make(map[int64]*model.Post),
		comments: make(map[int64]*model.Comment),
		follows:  make(map[model.Follow]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	return &repository.Repository{
		Post:    &postRepo{s},
		Comment: &commentRepo{s},
		User:    &userRepo{s},
		Group:   &groupRepo{s},
		Follow:  &followRepo{s},
	}
}

// fullPost must be called with s.mu held.
func (s *store) fullPost(p *model.Post) *model.FullPost {
	full := &model.FullPost{Post: *p}
	if author, ok := s.users[p.AuthorID]; ok {
		full.Author = model.UserAuthor{ID: author.ID, Username: author.Username}
	}
	if p.GroupID != nil {
		if g, ok := s.groups[*p.GroupID]; ok {
			full.Group = &model.GroupRef{ID: g.ID, Title: g.Title, Slug: g.Slug}
		}
	}
	return full
}

// matching must be called with s.mu held. The result is ordered newest first.
func (s *store) matching(filter model.PostFilter) []*model.Post {
	var posts []*model.Post
	for _, p := range s.posts {
		if filter.GroupID != nil && (p.GroupID == nil || *p.GroupID != *filter.GroupID) {
			continue
		}
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.FollowerID != nil {
			if _, ok := s.follows[model.Follow{UserID: *filter.FollowerID, AuthorID: p.AuthorID}]; !ok {
				continue
			}
		}
		posts = append(posts, p)
	}

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].PubDate.After(posts[j].PubDate)
		}
		return posts[i].ID > posts[j].ID
	})

	return posts
}

// deletePost must be called with s.mu held.
func (s *store) deletePost(id int64) {
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
	delete(s.posts, id)
}
