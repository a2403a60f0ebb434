package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"simpleblog/internal/blog/domain"
	"simpleblog/internal/blog/store"
	"simpleblog/pkg/idx"
)

func seedUsers(t *testing.T, st store.Store) (moderator, user domain.Identity) {
	t.Helper()

	accounts := &AccountService{Store: st}
	ctx := context.Background()

	mod, err := accounts.Register(ctx, "mod", "mod@example.com", "secret1")
	require.NoError(t, err)
	plain, err := accounts.Register(ctx, "reader", "reader@example.com", "secret2")
	require.NoError(t, err)

	moderator = domain.Identity{UserID: mod.ID, Username: mod.Username, Role: mod.Role}
	user = domain.Identity{UserID: plain.ID, Username: plain.Username, Role: plain.Role}

	require.True(t, moderator.IsModerator())
	require.False(t, user.IsModerator())
	return moderator, user
}

func TestCreatePost(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &ContentService{Store: st}
	moderator, user := seedUsers(t, st)

	t.Run("moderator can post", func(t *testing.T) {
		post, err := svc.CreatePost(ctx, moderator, "Hello", "First post.")
		require.NoError(t, err)
		require.Equal(t, moderator.UserID, post.AuthorID)
		require.Equal(t, "mod", post.AuthorName)
	})

	t.Run("plain user cannot post", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, user, "Nope", "Should fail.")
		require.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("title and content are validated", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, moderator, "", "body")
		require.ErrorIs(t, err, ErrTitleRequired)

		_, err = svc.CreatePost(ctx, moderator, "   ", "body")
		require.ErrorIs(t, err, ErrTitleRequired)

		_, err = svc.CreatePost(ctx, moderator, strings.Repeat("t", 201), "body")
		require.ErrorIs(t, err, ErrTitleTooLong)

		_, err = svc.CreatePost(ctx, moderator, "title", "")
		require.ErrorIs(t, err, ErrContentRequired)
	})

	t.Run("posts list newest first", func(t *testing.T) {
		first, err := svc.CreatePost(ctx, moderator, "Older", "a")
		require.NoError(t, err)
		second, err := svc.CreatePost(ctx, moderator, "Newer", "b")
		require.NoError(t, err)

		posts, err := svc.ListPosts(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(posts), 2)

		var firstIdx, secondIdx int
		for i, p := range posts {
			switch p.ID {
			case first.ID:
				firstIdx = i
			case second.ID:
				secondIdx = i
			}
		}
		require.Less(t, secondIdx, firstIdx)
	})
}

func TestAddComment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &ContentService{Store: st}
	moderator, user := seedUsers(t, st)

	post, err := svc.CreatePost(ctx, moderator, "Post", "Body.")
	require.NoError(t, err)

	t.Run("any authenticated user can comment", func(t *testing.T) {
		comment, err := svc.AddComment(ctx, user, post.ID, "Nice post!")
		require.NoError(t, err)
		require.Equal(t, post.ID, comment.PostID)
		require.Equal(t, "reader", comment.AuthorName)
	})

	t.Run("comment on missing post is rejected and not stored", func(t *testing.T) {
		missing := idx.New().String()
		_, err := svc.AddComment(ctx, user, missing, "Into the void")
		require.ErrorIs(t, err, ErrPostNotFound)

		comments, err := st.Comments().ListCommentsByPost(ctx, missing)
		require.NoError(t, err)
		require.Empty(t, comments)
	})

	t.Run("empty comment is rejected", func(t *testing.T) {
		_, err := svc.AddComment(ctx, user, post.ID, "   ")
		require.ErrorIs(t, err, ErrContentRequired)
	})

	t.Run("comments list oldest first", func(t *testing.T) {
		fresh, err := svc.CreatePost(ctx, moderator, "Ordering", "Body.")
		require.NoError(t, err)

		c1, err := svc.AddComment(ctx, user, fresh.ID, "first")
		require.NoError(t, err)
		c2, err := svc.AddComment(ctx, moderator, fresh.ID, "second")
		require.NoError(t, err)

		comments, err := st.Comments().ListCommentsByPost(ctx, fresh.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		require.Equal(t, c1.ID, comments[0].ID)
		require.Equal(t, c2.ID, comments[1].ID)
	})
}

func TestDeleteComment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &ContentService{Store: st}
	moderator, user := seedUsers(t, st)

	post, err := svc.CreatePost(ctx, moderator, "Post", "Body.")
	require.NoError(t, err)

	t.Run("author can delete their own comment", func(t *testing.T) {
		comment, err := svc.AddComment(ctx, user, post.ID, "mine")
		require.NoError(t, err)

		require.NoError(t, svc.DeleteComment(ctx, user, comment.ID))

		_, err = st.Comments().GetCommentByID(ctx, comment.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("moderator can delete anyone's comment", func(t *testing.T) {
		comment, err := svc.AddComment(ctx, user, post.ID, "to be moderated")
		require.NoError(t, err)

		require.NoError(t, svc.DeleteComment(ctx, moderator, comment.ID))
	})

	t.Run("non-author cannot delete and nothing changes", func(t *testing.T) {
		comment, err := svc.AddComment(ctx, moderator, post.ID, "mod's comment")
		require.NoError(t, err)

		err = svc.DeleteComment(ctx, user, comment.ID)
		require.ErrorIs(t, err, ErrNotAuthorized)

		_, err = st.Comments().GetCommentByID(ctx, comment.ID)
		require.NoError(t, err)
	})

	t.Run("missing comment", func(t *testing.T) {
		err := svc.DeleteComment(ctx, moderator, idx.New().String())
		require.ErrorIs(t, err, ErrCommentNotFound)
	})
}
