package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/adyax-ws/pkg/adyaxws"
)

// Query parameters carrying the node id. LegacyIDParam is accepted when
// IDParam is absent.
const (
	IDParam       = "id"
	LegacyIDParam = "nid"
)

// MessageResponse is the success body of write operations.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

// ErrorsResponse is the body returned for rejected input. It is always sent
// with status 200.
type ErrorsResponse struct {
	Errors []string `json:"errors"`
}

// NodeHandler serves the node web service endpoints.
type NodeHandler struct {
	service adyaxws.Service
	logger  *slog.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(service adyaxws.Service, logger *slog.Logger) *NodeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NodeHandler{
		service: service,
		logger:  logger,
	}
}

// Routes returns the routes for the node web service
func (h *NodeHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetNode)
	r.Post("/", h.CreateNode)
	r.Put("/", h.UpdateNode)
	r.Delete("/", h.DeleteNode)

	return r
}

// GetNode returns the encoded node referenced by the id query parameter
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	node, err := h.service.GetNode(r.Context(), nodeIDParam(r))
	if err != nil {
		h.respondError(w, r, "get", err)
		return
	}

	render.JSON(w, r, h.service.Encode(node))
}

// CreateNode stores a new node from the JSON request body
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	node, err := h.service.CreateNode(r.Context(), body)
	if err != nil {
		h.respondError(w, r, "create", err)
		return
	}

	render.JSON(w, r, MessageResponse{Message: adyaxws.MsgNodeSaved, ID: node.ID})
}

// UpdateNode replaces the fields of the node referenced by the id query parameter
func (h *NodeHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	if _, err := h.service.UpdateNode(r.Context(), nodeIDParam(r), body); err != nil {
		h.respondError(w, r, "update", err)
		return
	}

	render.JSON(w, r, MessageResponse{Message: adyaxws.MsgNodeUpdated})
}

// DeleteNode removes the node referenced by the id query parameter
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteNode(r.Context(), nodeIDParam(r)); err != nil {
		h.respondError(w, r, "delete", err)
		return
	}

	render.JSON(w, r, MessageResponse{Message: adyaxws.MsgNodeDeleted})
}

func nodeIDParam(r *http.Request) string {
	query := r.URL.Query()
	if query.Has(IDParam) {
		return query.Get(IDParam)
	}
	return query.Get(LegacyIDParam)
}

func (h *NodeHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Body == nil {
		return nil, true
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorEnvelope(w, r, http.StatusRequestEntityTooLarge, "request_too_large", "Request body is too large")
			return nil, false
		}
		h.logger.ErrorContext(r.Context(), "Failed to read request body", "error", err)
		writeErrorEnvelope(w, r, http.StatusBadRequest, "bad_request", "Failed to read request body")
		return nil, false
	}
	return body, true
}

// respondError renders validation errors as {errors: [...]} with status 200.
// Anything else is a server failure.
func (h *NodeHandler) respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if messages := adyaxws.Messages(err); messages != nil {
		render.JSON(w, r, ErrorsResponse{Errors: messages})
		return
	}

	h.logger.ErrorContext(r.Context(), "Node operation failed",
		"op", op,
		"request_id", RequestIDFromContext(r.Context()),
		"error", err,
	)
	writeErrorEnvelope(w, r, http.StatusInternalServerError, "internal_error", "An internal server error occurred")
}

func writeErrorEnvelope(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]interface{}{
		"error": map[string]interface{}{
			"code":       code,
			"message":    message,
			"request_id": RequestIDFromContext(r.Context()),
		},
	})
}
