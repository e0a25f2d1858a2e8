package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
)

type commentRepo struct {
	db DBTX
}

func newCommentRepo(db DBTX) repository.Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.Created = time.Now().UTC()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO comments(post_id, author_id, text, created) VALUES($1, $2, $3, $4) RETURNING id",
		comment.PostID,
		comment.AuthorID,
		comment.Text,
		comment.Created,
	).Scan(&comment.ID); err != nil {
		return nil, mapErr(err)
	}

	return &comment, nil
}

func (r *commentRepo) FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		c.id, c.post_id, c.author_id, c.text, c.created, u.username
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created DESC, c.id DESC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*model.FullComment{}
	for rows.Next() {
		var comment model.FullComment
		if err := rows.Scan(
			&comment.Comment.ID,
			&comment.Comment.PostID,
			&comment.Comment.AuthorID,
			&comment.Comment.Text,
			&comment.Comment.Created,
			&comment.Author.Username,
		); err != nil {
			return nil, err
		}
		comment.Author.ID = comment.Comment.AuthorID

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
