package postgres

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/jackc/pgx/v5"
)

type postRepo struct {
	db DBTX
}

func newPostRepo(db DBTX) repository.Post {
	return &postRepo{
		db: db,
	}
}

const selectFullPost = `SELECT
	p.id, p.author_id, p.group_id, p.text, p.image, p.pub_date, u.username, g.title, g.slug
	FROM posts p
	JOIN users u ON p.author_id = u.id
	LEFT JOIN post_groups g ON p.group_id = g.id`

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.PubDate = time.Now().UTC()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(author_id, group_id, text, image, pub_date) VALUES($1, $2, $3, $4, $5) RETURNING id",
		post.AuthorID,
		post.GroupID,
		post.Text,
		post.Image,
		post.PubDate,
	).Scan(&post.ID); err != nil {
		return nil, mapErr(err)
	}

	return &post, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post) (*model.Post, error) {
	if err := r.db.QueryRow(
		ctx,
		"UPDATE posts SET text = $1, group_id = $2, image = $3 WHERE id = $4 RETURNING author_id, pub_date",
		post.Text,
		post.GroupID,
		post.Image,
		post.ID,
	).Scan(&post.AuthorID, &post.PubDate); err != nil {
		return nil, mapErr(err)
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	row := r.db.QueryRow(ctx, selectFullPost+" WHERE p.id = $1", id)
	post, err := scanFullPost(row)
	if err != nil {
		return nil, mapErr(err)
	}

	return post, nil
}

func (r *postRepo) Find(ctx context.Context, filter model.PostFilter, limit int, offset int) ([]*model.FullPost, error) {
	maxLimit(&limit)

	where, args := filterClause(filter)
	args = append(args, limit, offset)
	query := selectFullPost + where +
		" ORDER BY p.pub_date DESC, p.id DESC" +
		" LIMIT $" + strconv.Itoa(len(args)-1) +
		" OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*model.FullPost{}
	for rows.Next() {
		post, err := scanFullPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) Count(ctx context.Context, filter model.PostFilter) (int, error) {
	where, args := filterClause(filter)

	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts p"+where, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM comments WHERE post_id = $1", id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return tx.Commit(ctx)
}

func filterClause(filter model.PostFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		conds = append(conds, "p.group_id = $"+strconv.Itoa(len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conds = append(conds, "p.author_id = $"+strconv.Itoa(len(args)))
	}
	if filter.FollowerID != nil {
		args = append(args, *filter.FollowerID)
		conds = append(conds, "p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = $"+strconv.Itoa(len(args))+")")
	}

	if len(conds) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanFullPost(row pgx.Row) (*model.FullPost, error) {
	var (
		post       model.FullPost
		groupTitle *string
		groupSlug  *string
	)
	if err := row.Scan(
		&post.Post.ID,
		&post.Post.AuthorID,
		&post.Post.GroupID,
		&post.Post.Text,
		&post.Post.Image,
		&post.Post.PubDate,
		&post.Author.Username,
		&groupTitle,
		&groupSlug,
	); err != nil {
		return nil, err
	}

	post.Author.ID = post.Post.AuthorID
	if post.Post.GroupID != nil && groupSlug != nil {
		post.Group = &model.GroupRef{
			ID:    *post.Post.GroupID,
			Title: *groupTitle,
			Slug:  *groupSlug,
		}
	}

	return &post, nil
}
