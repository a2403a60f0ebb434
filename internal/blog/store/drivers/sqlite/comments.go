package sqlite

import (
	"context"

	"simpleblog/internal/blog/domain"
)

type commentsRepo struct {
	db dbtx
}

func (r *commentsRepo) CreateComment(ctx context.Context, c domain.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, post_id, author_id, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.PostID, c.AuthorID, c.Content, c.CreatedAt)
	return mapConstraint(err)
}

func (r *commentsRepo) GetCommentByID(ctx context.Context, id string) (domain.Comment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT c.id, c.post_id, c.author_id, u.username, c.content, c.created_at
		 FROM comments c JOIN users u ON u.id = c.author_id
		 WHERE c.id = ?`, id)

	var c domain.Comment
	err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Content, &c.CreatedAt)
	if err != nil {
		return domain.Comment{}, mapNotFound(err)
	}
	return c, nil
}

func (r *commentsRepo) DeleteComment(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	return err
}

func (r *commentsRepo) ListCommentsByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.post_id, c.author_id, u.username, c.content, c.created_at
		 FROM comments c JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = ?
		 ORDER BY c.created_at ASC, c.id ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
