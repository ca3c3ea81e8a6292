package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tailorcv/resume-tailor/internal/repositories"
)

type DocumentHandler struct {
	docRepo repositories.DocumentRepository
}

func NewDocumentHandler(docRepo repositories.DocumentRepository) *DocumentHandler {
	return &DocumentHandler{docRepo: docRepo}
}

// HandleGetDocument handles GET /document/:id. Serves the stored original
// file back under its uploaded name so a later tailoring step can re-embed it.
func (h *DocumentHandler) HandleGetDocument(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		}
		return respondError(c, err)
	}

	return c.Download(doc.FilePath, doc.OriginalFileName)
}
