package memory

import (
	"context"
	"sort"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
)

type groupRepo struct {
	s *store
}

func (r *groupRepo) slugTaken(slug string, except int64) bool {
	for id, g := range r.s.groups {
		if id != except && g.Slug == slug {
			return true
		}
	}
	return false
}

func (r *groupRepo) Create(ctx context.Context, group model.Group) (*model.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.slugTaken(group.Slug, 0) {
		return nil, repository.ErrDuplicate
	}

	r.s.nextGroupID++
	group.ID = r.s.nextGroupID
	stored := group
	r.s.groups[group.ID] = &stored

	return &group, nil
}

func (r *groupRepo) Update(ctx context.Context, group model.Group) (*model.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.groups[group.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	if r.slugTaken(group.Slug, group.ID) {
		return nil, repository.ErrDuplicate
	}

	stored := group
	r.s.groups[group.ID] = &stored

	return &group, nil
}

func (r *groupRepo) FindByID(ctx context.Context, id int64) (*model.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g, ok := r.s.groups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	group := *g
	return &group, nil
}

func (r *groupRepo) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, g := range r.s.groups {
		if g.Slug == slug {
			group := *g
			return &group, nil
		}
	}

	return nil, repository.ErrNotFound
}

func (r *groupRepo) FindAll(ctx context.Context) ([]*model.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	groups := make([]*model.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		group := *g
		groups = append(groups, &group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })

	return groups, nil
}

func (r *groupRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.groups[id]; !ok {
		return repository.ErrNotFound
	}

	for _, p := range r.s.posts {
		if p.GroupID != nil && *p.GroupID == id {
			p.GroupID = nil
		}
	}
	delete(r.s.groups, id)

	return nil
}
