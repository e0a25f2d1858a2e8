package postgres

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
)

type groupRepo struct {
	db DBTX
}

func newGroupRepo(db DBTX) repository.Group {
	return &groupRepo{
		db: db,
	}
}

func (r *groupRepo) Create(ctx context.Context, group model.Group) (*model.Group, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO post_groups(title, slug, description) VALUES($1, $2, $3) RETURNING id",
		group.Title,
		group.Slug,
		group.Description,
	).Scan(&group.ID); err != nil {
		return nil, mapErr(err)
	}

	return &group, nil
}

func (r *groupRepo) Update(ctx context.Context, group model.Group) (*model.Group, error) {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE post_groups SET title = $1, slug = $2, description = $3 WHERE id = $4",
		group.Title,
		group.Slug,
		group.Description,
		group.ID,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}

	return &group, nil
}

func (r *groupRepo) FindByID(ctx context.Context, id int64) (*model.Group, error) {
	var group model.Group
	if err := r.db.QueryRow(
		ctx,
		"SELECT g.id, g.title, g.slug, g.description FROM post_groups g WHERE g.id = $1",
		id,
	).Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
		return nil, mapErr(err)
	}

	return &group, nil
}

func (r *groupRepo) FindBySlug(ctx context.Context, slug string) (*model.Group, error) {
	var group model.Group
	if err := r.db.QueryRow(
		ctx,
		"SELECT g.id, g.title, g.slug, g.description FROM post_groups g WHERE g.slug = $1",
		slug,
	).Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
		return nil, mapErr(err)
	}

	return &group, nil
}

func (r *groupRepo) FindAll(ctx context.Context) ([]*model.Group, error) {
	rows, err := r.db.Query(ctx, "SELECT g.id, g.title, g.slug, g.description FROM post_groups g ORDER BY g.title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []*model.Group{}
	for rows.Next() {
		var group model.Group
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
			return nil, err
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

// Delete detaches the group's posts before removing the group, so posts outlive it.
func (r *groupRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "UPDATE posts SET group_id = NULL WHERE group_id = $1", id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, "DELETE FROM post_groups WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return tx.Commit(ctx)
}
