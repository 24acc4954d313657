package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	customerrors "github.com/varadpoddar/blog-services/internal/customErrors"
	"github.com/varadpoddar/blog-services/internal/posts/dto"
	"github.com/varadpoddar/blog-services/internal/posts/service"
)

type PostController struct {
	postService service.PostService
}

func NewPostController(postService service.PostService) *PostController {
	return &PostController{postService: postService}
}

func (c *PostController) List(w http.ResponseWriter, r *http.Request) error {
	posts, err := c.postService.List(r.Context())
	if err != nil {
		return err
	}
	return c.respond(w, http.StatusOK, posts)
}

func (c *PostController) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := postID(r)
	if err != nil {
		return err
	}

	post, err := c.postService.Get(r.Context(), id)
	if err != nil {
		return err
	}
	return c.respond(w, http.StatusOK, post)
}

func (c *PostController) Create(w http.ResponseWriter, r *http.Request) error {
	var req dto.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return customerrors.ErrInvalidJSON
	}

	post, err := c.postService.Create(r.Context(), req)
	if err != nil {
		return err
	}
	return c.respond(w, http.StatusCreated, post)
}

// Update serves both PUT and PATCH.
func (c *PostController) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := postID(r)
	if err != nil {
		return err
	}

	// A missing post wins over a malformed body.
	var req dto.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if _, err := c.postService.Get(r.Context(), id); err != nil {
			return err
		}
		return customerrors.ErrInvalidJSON
	}

	post, err := c.postService.Update(r.Context(), id, req)
	if err != nil {
		return err
	}
	return c.respond(w, http.StatusOK, post)
}

func (c *PostController) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := postID(r)
	if err != nil {
		return err
	}

	res, err := c.postService.Delete(r.Context(), id)
	if err != nil {
		return err
	}
	return c.respond(w, http.StatusOK, res)
}

func (c *PostController) HealthCheck(w http.ResponseWriter, r *http.Request) error {
	res, err := c.postService.HealthCheck(r.Context())
	if err != nil {
		return err
	}
	return c.respond(w, http.StatusOK, res)
}

// postID only accepts positive integers; anything else is an unknown route.
func postID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, customerrors.ErrRouteNotFound
	}
	return id, nil
}

func (c *PostController) respond(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}
