package dto

import (
	"fmt"
	"strings"

	"github.com/varadpoddar/blog-services/internal/validation"
)

// PostRequest is the body of both create and update. Updates replace the
// whole post, so both fields are required in either case.
type PostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (p *PostRequest) Validate() error {
	p.Title = strings.TrimSpace(p.Title)
	p.Content = strings.TrimSpace(p.Content)
	return validation.Struct(p)
}

type MessageResponse struct {
	Message string `json:"message"`
}

func Deleted(title string) *MessageResponse {
	return &MessageResponse{Message: fmt.Sprintf("Post \"%s\" deleted", title)}
}

type HealthResponse struct {
	Status string `json:"status"`
}
