package sqlite

import (
	"context"

	"simpleblog/internal/blog/domain"
)

type postsRepo struct {
	db dbtx
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, author_id, title, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.AuthorID, p.Title, p.Content, p.CreatedAt)
	return mapConstraint(err)
}

func (r *postsRepo) GetPostByID(ctx context.Context, id string) (domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.author_id, u.username, p.title, p.content, p.created_at
		 FROM posts p JOIN users u ON u.id = p.author_id
		 WHERE p.id = ?`, id)

	var p domain.Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Content, &p.CreatedAt)
	if err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	return p, nil
}

func (r *postsRepo) ListPosts(ctx context.Context) ([]domain.Post, error) {
	// Newest first. Equal timestamps tie-break on id descending; ULIDs sort
	// by creation order so the result is stable.
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.author_id, u.username, p.title, p.content, p.created_at
		 FROM posts p JOIN users u ON u.id = p.author_id
		 ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
