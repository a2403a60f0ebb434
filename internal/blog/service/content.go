package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"simpleblog/internal/blog/domain"
	"simpleblog/internal/blog/store"
	"simpleblog/pkg/idx"
	"simpleblog/pkg/slogx"
)

const maxTitleLength = 200

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title must be at most 200 characters")
	ErrContentRequired = errors.New("content is required")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")

	// ErrNotAuthorized reports a role or ownership check failure. Handlers
	// redirect without mutating anything.
	ErrNotAuthorized = errors.New("not authorized")
)

type ContentService struct {
	Store store.Store
}

// ListPosts returns all posts newest-first with their comments attached.
func (s *ContentService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.Store.Posts().ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		comments, err := s.Store.Comments().ListCommentsByPost(ctx, posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Comments = comments
	}
	return posts, nil
}

// CreatePost inserts a new post authored by the given identity. Only
// Moderators may post.
func (s *ContentService) CreatePost(ctx context.Context, author domain.Identity, title, content string) (domain.Post, error) {
	log := slogx.FromContext(ctx)

	if !author.IsModerator() {
		log.Warn("post creation denied",
			slog.String("user_id", author.UserID),
			slog.String("role", string(author.Role)),
		)
		return domain.Post{}, ErrNotAuthorized
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return domain.Post{}, ErrTitleRequired
	}
	if len(title) > maxTitleLength {
		return domain.Post{}, ErrTitleTooLong
	}
	if content == "" {
		return domain.Post{}, ErrContentRequired
	}

	post := domain.Post{
		ID:         idx.New().String(),
		AuthorID:   author.UserID,
		AuthorName: author.Username,
		Title:      title,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Store.Posts().CreatePost(ctx, post); err != nil {
		log.Error("failed to create post", slog.Any("error", err))
		return domain.Post{}, err
	}

	log.Info("post created",
		slog.String("post_id", post.ID),
		slog.String("author_id", author.UserID),
	)
	return post, nil
}

// AddComment inserts a comment on an existing post. Post existence is a
// hard invariant: the check and the insert run in one transaction.
func (s *ContentService) AddComment(ctx context.Context, author domain.Identity, postID, content string) (domain.Comment, error) {
	log := slogx.FromContext(ctx)

	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, ErrContentRequired
	}

	comment := domain.Comment{
		ID:         idx.New().String(),
		PostID:     postID,
		AuthorID:   author.UserID,
		AuthorName: author.Username,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Posts().GetPostByID(ctx, postID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		return tx.Comments().CreateComment(ctx, comment)
	})
	if err != nil {
		if !errors.Is(err, ErrPostNotFound) {
			log.Error("failed to add comment", slog.Any("error", err))
		}
		return domain.Comment{}, err
	}

	log.Debug("comment added",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
	)
	return comment, nil
}

// DeleteComment removes a comment if the caller is a Moderator or the
// comment's author. A missing comment reports ErrCommentNotFound; the
// caller turns that into a flash message, not a failure.
func (s *ContentService) DeleteComment(ctx context.Context, caller domain.Identity, commentID string) error {
	log := slogx.FromContext(ctx)

	comment, err := s.Store.Comments().GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if !caller.IsModerator() && comment.AuthorID != caller.UserID {
		log.Warn("comment deletion denied",
			slog.String("comment_id", commentID),
			slog.String("user_id", caller.UserID),
		)
		return ErrNotAuthorized
	}

	if err := s.Store.Comments().DeleteComment(ctx, commentID); err != nil {
		log.Error("failed to delete comment", slog.Any("error", err))
		return err
	}

	log.Info("comment deleted",
		slog.String("comment_id", commentID),
		slog.String("deleted_by", caller.UserID),
	)
	return nil
}
