package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/sidelines/sidelines/internal/apperr"
	"github.com/sidelines/sidelines/internal/middleware"
	"github.com/sidelines/sidelines/internal/repo"
	"github.com/sidelines/sidelines/internal/validation"
)

const (
	defaultPostsPerPage = 10
	maxPostsPerPage     = 100
)

// ==========================
// PostHandler
// ==========================
type PostHandler struct {
	Posts    *repo.PostRepo
	Comments *repo.CommentRepo
	Users    *repo.UserRepo
	Audit    *repo.AuditRepo
	Errors   Errors
}

// ==========================
// Create Post
// ==========================
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var input struct {
		Title   string `json:"title" validate:"required,max=255"`
		Content string `json:"content" validate:"required"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	if err := validation.Struct(input); err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	id, err := h.Posts.Create(r.Context(), userID, input.Title, input.Content)
	if err != nil {
		h.Errors.Write(w, r, apperr.Store("error creating post", err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Post created successfully",
		"post_id": id,
	})
}

// ==========================
// List Posts (with comments)
// ==========================

// ListPosts pages with ?limit (default 10) and ?page (1-based). Bad values fall back to defaults.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, page := defaultPostsPerPage, 1
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = min(l, maxPostsPerPage)
	}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	posts, err := h.Posts.List(r.Context(), limit, (page-1)*limit)
	if err != nil {
		h.Errors.Write(w, r, apperr.Store("error fetching posts", err))
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// ==========================
// Delete Post (author or admin)
// ==========================
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postId", "post id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	owner, err := h.Posts.OwnerID(r.Context(), postID)
	if err != nil {
		h.Errors.Write(w, r, notFoundOr(err, "Post not found", "error deleting post"))
		return
	}

	if owner != userID {
		admin, err := h.isAdmin(r, userID)
		if err != nil {
			h.Errors.Write(w, r, err)
			return
		}
		if !admin {
			h.Errors.Write(w, r, apperr.Forbidden("Unauthorized to delete this post"))
			return
		}
	}

	if err := h.Posts.Delete(r.Context(), postID); err != nil {
		h.Errors.Write(w, r, notFoundOr(err, "Post not found", "error deleting post"))
		return
	}
	if h.Audit != nil {
		if err := h.Audit.Log(r.Context(), userID, "delete", "post", postID); err != nil {
			slog.Warn("audit log write failed", "action", "delete", "post_id", postID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

// isAdmin reads the flag from the store rather than the token so elevation
// and revocation apply immediately.
func (h *PostHandler) isAdmin(r *http.Request, userID int) (bool, error) {
	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, apperr.Store("error deleting post", err)
	}
	return user.IsAdmin, nil
}

// ==========================
// Like Post
// ==========================
func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postId", "post id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	err := h.Posts.Like(r.Context(), userID, postID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Post liked successfully"})
	case errors.Is(err, repo.ErrDuplicate):
		h.Errors.Write(w, r, apperr.Conflict("You already liked this post", nil))
	default:
		h.Errors.Write(w, r, notFoundOr(err, "Post not found", "error processing like"))
	}
}

// ==========================
// Comments
// ==========================
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postId", "post id")
	if !ok {
		return
	}
	comments, err := h.Comments.ListByPost(r.Context(), postID)
	if err != nil {
		h.Errors.Write(w, r, apperr.Store("error fetching comments", err))
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postId", "post id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	var input struct {
		Content string `json:"content"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		h.Errors.Write(w, r, apperr.Validation("Comment content cannot be empty", map[string]string{"content": "is required"}))
		return
	}

	id, err := h.Comments.Create(r.Context(), userID, postID, content)
	if err != nil {
		h.Errors.Write(w, r, notFoundOr(err, "Post not found", "error adding comment"))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Comment added successfully",
		"comment_id": id,
	})
}

// notFoundOr maps repo.ErrNotFound to a 404 with notFound and anything else to a store error.
func notFoundOr(err error, notFound, failed string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound(notFound)
	}
	return apperr.Store(failed, err)
}
