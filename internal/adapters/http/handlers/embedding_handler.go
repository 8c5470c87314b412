package handlers

import (
	"attendtrack/internal/core/services"
	"attendtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmbeddingHandler handles facial embedding uploads
type EmbeddingHandler struct {
	embeddingService *services.EmbeddingService
}

// NewEmbeddingHandler creates a new embedding handler
func NewEmbeddingHandler(embeddingService *services.EmbeddingService) *EmbeddingHandler {
	return &EmbeddingHandler{embeddingService: embeddingService}
}

// Store saves an embedding for the calling student
// @Summary Upload facial embedding
// @Description Stores an opaque embedding. No matching is performed.
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.StoreEmbeddingInput true "Embedding"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /students/me/embeddings [post]
func (h *EmbeddingHandler) Store(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return handleError(c, err, "Failed to store embedding")
	}

	var req services.StoreEmbeddingInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.embeddingService.Store(c.Context(), caller, &req)
	if err != nil {
		return handleError(c, err, "Failed to store embedding")
	}

	return response.Created(c, "Embedding stored successfully", result)
}
