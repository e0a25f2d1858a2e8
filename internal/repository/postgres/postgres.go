package postgres

import (
	"context"
	"fmt"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

func DB(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)
	return pgxpool.New(ctx, connString)
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username VARCHAR(150) NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role VARCHAR(16) NOT NULL DEFAULT 'user',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS post_groups (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(200) NOT NULL,
	slug VARCHAR(100) NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS posts (
	id BIGSERIAL PRIMARY KEY,
	author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	group_id BIGINT REFERENCES post_groups(id) ON DELETE SET NULL,
	text TEXT NOT NULL CHECK (text <> ''),
	image TEXT NOT NULL DEFAULT '',
	pub_date TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS posts_pub_date_idx ON posts(pub_date DESC, id DESC);
CREATE INDEX IF NOT EXISTS posts_author_idx ON posts(author_id);
CREATE INDEX IF NOT EXISTS posts_group_idx ON posts(group_id);

CREATE TABLE IF NOT EXISTS comments (
	id BIGSERIAL PRIMARY KEY,
	post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	text TEXT NOT NULL CHECK (text <> ''),
	created TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS comments_post_idx ON comments(post_id, created DESC);

CREATE TABLE IF NOT EXISTS follows (
	id BIGSERIAL PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	UNIQUE (user_id, author_id),
	CHECK (user_id <> author_id)
);
`

// Migrate creates the schema when it is missing.
func Migrate(ctx context.Context, db DBTX) error {
	_, err := db.Exec(ctx, schema)
	return err
}
