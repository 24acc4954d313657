// Package frontend renders the blog as HTML pages backed by the posts API.
package frontend

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
	"github.com/varadpoddar/blog-services/internal/middleware"
	"github.com/varadpoddar/blog-services/internal/models"
)

const flashSession = "blog-flash"

type Handler struct {
	api   PostsAPI
	store sessions.Store
	pages *pages
}

func NewHandler(api PostsAPI, secretKey string) (*Handler, error) {
	if secretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	p, err := loadPages()
	if err != nil {
		return nil, err
	}

	store := sessions.NewCookieStore([]byte(secretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Handler{api: api, store: store, pages: p}, nil
}

func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)

	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/create", h.Create).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/{id:[0-9]+}", h.Post).Methods(http.MethodGet)
	r.HandleFunc("/{id:[0-9]+}/edit", h.Edit).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/{id:[0-9]+}/delete", h.Delete).Methods(http.MethodPost)
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	return r
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.api.List(r.Context())
	if err != nil {
		// Redirecting to "/" would loop, so the error is shown in place.
		logrus.WithError(err).Error("Listing posts failed")
		h.flash(w, r, "Error loading posts: "+apiMessage(err))
		h.render(w, r, http.StatusBadGateway, "index.html", pageData{Posts: []models.Post{}})
		return
	}

	h.render(w, r, http.StatusOK, "index.html", pageData{Posts: posts})
}

func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "post.html", pageData{Title: post.Title, Post: post})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Create a New Post"}
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "create.html", data)
		return
	}

	form := readForm(r)
	data.Form = form
	if form.Title == "" {
		h.flash(w, r, "Title is required!")
		h.render(w, r, http.StatusOK, "create.html", data)
		return
	}

	if _, err := h.api.Create(r.Context(), form.Title, form.Content); err != nil {
		if h.failHard(w, r, "Error creating post: ", err) {
			return
		}
		h.render(w, r, http.StatusOK, "create.html", data)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	data := pageData{
		Title: "Edit \"" + post.Title + "\"",
		Post:  post,
		Form:  formValues{Title: post.Title, Content: post.Content},
	}
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "edit.html", data)
		return
	}

	form := readForm(r)
	data.Form = form
	if form.Title == "" {
		h.flash(w, r, "Title is required!")
		h.render(w, r, http.StatusOK, "edit.html", data)
		return
	}

	if _, err := h.api.Update(r.Context(), post.ID, form.Title, form.Content); err != nil {
		if h.failHard(w, r, "Error updating post: ", err) {
			return
		}
		h.render(w, r, http.StatusOK, "edit.html", data)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	if err := h.api.Delete(r.Context(), post.ID); err != nil {
		logrus.WithError(err).WithField("post_id", post.ID).Warn("Deleting post failed")
		h.flash(w, r, "Error deleting post: "+apiMessage(err))
	} else {
		h.flash(w, r, "\"" + post.Title + "\" was successfully deleted!")
	}

	h.saveSession(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "404.html", pageData{Title: "Not Found"})
}

// loadPost fetches the post named in the path. When it returns false the
// response has already been written.
func (h *Handler) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.NotFound(w, r)
		return nil, false
	}

	post, err := h.api.Get(r.Context(), id)
	if err != nil {
		if IsNotFound(err) {
			h.NotFound(w, r)
			return nil, false
		}
		logrus.WithError(err).WithField("post_id", id).Error("Loading post failed")
		h.flash(w, r, "Error loading post: "+apiMessage(err))
		h.saveSession(w, r)
		http.Redirect(w, r, "/", http.StatusFound)
		return nil, false
	}
	return post, true
}

// failHard flashes the error. Transport failures also redirect to "/" and
// report true; API rejections leave the caller to re-render its form.
func (h *Handler) failHard(w http.ResponseWriter, r *http.Request, prefix string, err error) bool {
	h.flash(w, r, prefix+apiMessage(err))

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		logrus.WithError(err).Warn("Posts API rejected request")
		return false
	}

	logrus.WithError(err).Error("Posts API call failed")
	h.saveSession(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
	return true
}

func apiMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

type formValues struct {
	Title   string
	Content string
}

func readForm(r *http.Request) formValues {
	return formValues{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Content: strings.TrimSpace(r.PostFormValue("content")),
	}
}

func (h *Handler) session(r *http.Request) *sessions.Session {
	// A cookie signed with another key yields a fresh session and an error
	// that is safe to drop.
	sess, _ := h.store.Get(r, flashSession)
	return sess
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, msg string) {
	h.session(r).AddFlash(msg)
}

func (h *Handler) saveSession(w http.ResponseWriter, r *http.Request) {
	if err := h.session(r).Save(r, w); err != nil {
		logrus.WithError(err).Error("Saving flash session failed")
	}
}

func (h *Handler) takeFlashes(w http.ResponseWriter, r *http.Request) []string {
	sess := h.session(r)
	raw := sess.Flashes()
	if err := sess.Save(r, w); err != nil {
		logrus.WithError(err).Error("Saving flash session failed")
	}

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}
