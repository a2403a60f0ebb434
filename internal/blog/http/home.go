package http

import (
	"errors"
	"net/http"

	"simpleblog/internal/blog/service"
	"simpleblog/pkg/slogx"
)

func (rt *Router) handleIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := rt.ContentService.ListPosts(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to list posts", "error", err)
		rt.renderError(w, r, http.StatusInternalServerError, "Something went wrong loading the posts.")
		return
	}

	rt.render(w, r, http.StatusOK, "index", map[string]any{
		"Posts": posts,
	})
}

func (rt *Router) handleNewPostForm(w http.ResponseWriter, r *http.Request) {
	rt.render(w, r, http.StatusOK, "new_post", map[string]any{"Title": "", "Content": ""})
}

func (rt *Router) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r)

	if err := r.ParseForm(); err != nil {
		rt.renderError(w, r, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	title := r.PostFormValue("title")
	content := r.PostFormValue("content")

	_, err := rt.ContentService.CreatePost(r.Context(), identity, title, content)
	if err != nil {
		msg, ok := postError(err)
		if !ok {
			rt.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
			return
		}
		rt.render(w, r, http.StatusUnprocessableEntity, "new_post", map[string]any{
			"Error":   msg,
			"Title":   title,
			"Content": content,
		})
		return
	}

	setFlash(w, flashSuccess, "Post published.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func postError(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		return "A title is required.", true
	case errors.Is(err, service.ErrTitleTooLong):
		return "Titles must be at most 200 characters.", true
	case errors.Is(err, service.ErrContentRequired):
		return "Post content is required.", true
	default:
		return "", false
	}
}

func (rt *Router) handleAddComment(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r)

	if err := r.ParseForm(); err != nil {
		rt.renderError(w, r, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	postID := r.PostFormValue("post_id")
	content := r.PostFormValue("content")

	_, err := rt.ContentService.AddComment(r.Context(), identity, postID, content)
	switch {
	case err == nil:
		setFlash(w, flashSuccess, "Comment added.")
	case errors.Is(err, service.ErrContentRequired):
		setFlash(w, flashError, "Comments cannot be empty.")
	case errors.Is(err, service.ErrPostNotFound):
		setFlash(w, flashError, "That post no longer exists.")
	default:
		rt.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (rt *Router) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r)

	if err := r.ParseForm(); err != nil {
		rt.renderError(w, r, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	err := rt.ContentService.DeleteComment(r.Context(), identity, r.PostFormValue("comment_id"))
	switch {
	case err == nil:
		setFlash(w, flashSuccess, "Comment deleted.")
	case errors.Is(err, service.ErrCommentNotFound):
		setFlash(w, flashError, "That comment no longer exists.")
	case errors.Is(err, service.ErrNotAuthorized):
		setFlash(w, flashError, "You can only delete your own comments.")
	default:
		rt.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
