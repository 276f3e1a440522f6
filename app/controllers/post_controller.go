package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"blogapi/app/middleware"
	"blogapi/app/models"
	"blogapi/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	logger      zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, logger zerolog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// Index handles GET /posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	sendJSON(w, http.StatusOK, models.Views(posts))
}

// Show handles GET /posts/{id}
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	sendJSON(w, http.StatusOK, post.View())
}

// Create handles POST /posts
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var input models.PostInput
	if err := decodeBody(r, &input); err != nil {
		pc.handleError(w, r, err)
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), &input)
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	sendJSON(w, http.StatusCreated, post.View())
}

// Update handles PUT /posts/{id}
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch models.PostPatch
	if err := decodeBody(r, &patch); err != nil {
		pc.handleError(w, r, err)
		return
	}

	if err := pc.postService.UpdatePost(r.Context(), id, &patch); err != nil {
		pc.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /posts/{id}
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := pc.postService.DeletePost(r.Context(), id); err != nil {
		pc.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleError maps service errors onto status codes; only server errors are logged
func (pc *PostController) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *models.ValidationError
		nf   *models.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		sendError(w, verr.Message, http.StatusBadRequest)
	case errors.As(err, &nf):
		sendError(w, nf.Error(), http.StatusNotFound)
	default:
		pc.logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		sendError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// decodeBody reads a JSON body into v, reporting problems as validation errors
// and rejecting anything after the first JSON value
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &models.ValidationError{Message: "request body is required"}
		}
		return &models.ValidationError{Message: "Invalid JSON: " + err.Error()}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &models.ValidationError{Message: "Invalid JSON: request body must contain a single JSON object"}
	}
	return nil
}

// Helper methods for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"error": message})
}
