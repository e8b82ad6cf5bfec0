package mcp

import (
	"context"
	"net/http"

	mcpserver "github.com/adrianliechti/emailbison-mcp/pkg/mcp"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	handler http.Handler
}

func New(ctx context.Context, s *mcpserver.Server) (*Handler, error) {
	handler, err := s.Handler(ctx)

	if err != nil {
		return nil, err
	}

	h := &Handler{
		handler: handler,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Handle("/mcp", h.handler)
}
