package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
	"github.com/go-chi/chi/v5"
)

type commentRequest struct {
	Comment string `json:"comment"`
}

// urlID parses the named chi URL parameter as a positive integer identifier.
func urlID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		log := logger.FromRequest(r)
		log.Error().Str("param", name).Str("value", raw).Msg("invalid identifier in URL")
		writeError(w, "invalid "+name, http.StatusBadRequest, "")
		return 0, false
	}
	return id, true
}

func (h *Handler) getAllPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := h.services.PostService.GetAllPosts(ctx)
	if err != nil {
		h.respondError(w, r, err, "posts listing failed")
		return
	}

	utils.WriteJSON(w, posts, http.StatusOK)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, ok := urlID(w, r, "postID")
	if !ok {
		return
	}

	post, err := h.services.PostService.GetPost(ctx, postID)
	if err != nil {
		h.respondError(w, r, err, "post lookup failed")
		return
	}

	utils.WriteJSON(w, post, http.StatusOK)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.tokenUserID(w, r)
	if !ok {
		return
	}

	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest, "")
		return
	}

	created, err := h.services.PostService.CreatePost(ctx, userID, post)
	if err != nil {
		h.respondError(w, r, err, "post creation failed")
		return
	}

	log.Debug().Int64("id", created.PostID).Msg("post created")

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.tokenUserID(w, r)
	if !ok {
		return
	}

	postID, ok := urlID(w, r, "postID")
	if !ok {
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest, "")
		return
	}

	if _, err := h.services.PostService.AddComment(ctx, userID, postID, req.Comment); err != nil {
		h.respondError(w, r, err, "comment creation failed")
		return
	}

	// Clients render the whole thread after commenting, so respond with the
	// refreshed post rather than the bare comment.
	post, err := h.services.PostService.GetPost(ctx, postID)
	if err != nil {
		h.respondError(w, r, err, "post refresh after comment failed")
		return
	}

	utils.WriteJSON(w, post, http.StatusOK)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	postID, ok := urlID(w, r, "postID")
	if !ok {
		return
	}

	if err := h.services.PostService.DeletePost(ctx, postID); err != nil {
		h.respondError(w, r, err, "post deletion failed")
		return
	}

	log.Debug().Int64("id", postID).Msg("post deleted")

	utils.WriteJSON(w, models.MessageResponse{Message: "Post deleted successfully"}, http.StatusOK)
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, ok := urlID(w, r, "postID")
	if !ok {
		return
	}
	commentID, ok := urlID(w, r, "commentID")
	if !ok {
		return
	}

	if err := h.services.PostService.DeleteComment(ctx, postID, commentID); err != nil {
		h.respondError(w, r, err, "comment deletion failed")
		return
	}

	post, err := h.services.PostService.GetPost(ctx, postID)
	if err != nil {
		h.respondError(w, r, err, "post refresh after comment deletion failed")
		return
	}

	utils.WriteJSON(w, post, http.StatusOK)
}
