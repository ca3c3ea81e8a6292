package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tailorcv/resume-tailor/internal/models"
	"tailorcv/resume-tailor/internal/repositories"
	"tailorcv/resume-tailor/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	extractor      services.ExtractorService
	resumeParser   services.ResumeParserService
	jobParser      services.JobParserService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	extractor services.ExtractorService,
	resumeParser services.ResumeParserService,
	jobParser services.JobParserService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		extractor:      extractor,
		resumeParser:   resumeParser,
		jobParser:      jobParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload. Accepts 'resume' and/or 'job_description'
// multipart files, stores them, and returns the extracted and parsed content
// for each.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File

	var responses []models.UploadResponse

	if resumeFiles, exists := files["resume"]; exists && len(resumeFiles) > 0 {
		resp, err := h.processFile(resumeFiles[0], "resume")
		if err != nil {
			return respondFiberError(c, err)
		}
		responses = append(responses, *resp)
	}

	if jobFiles, exists := files["job_description"]; exists && len(jobFiles) > 0 {
		resp, err := h.processFile(jobFiles[0], "job_description")
		if err != nil {
			return respondFiberError(c, err)
		}
		responses = append(responses, *resp)
	}

	if len(responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid files uploaded. Please upload 'resume' and/or 'job_description'.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}

// processFile stores one uploaded file, records it, and runs the extraction
// and analysis pipeline for its file type. Errors come back as *fiber.Error
// so the caller keeps the intended status code.
func (h *UploadHandler) processFile(file *multipart.FileHeader, fileType string) (*models.UploadResponse, error) {
	if file.Size > h.maxFileSize {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("%s file too large. Max size: %d bytes", fileType, h.maxFileSize))
	}

	data, err := readMultipartFile(file)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("failed to read %s file: %v", fileType, err))
	}

	filename, filePath, err := h.storageService.SaveFile(file, fileType)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("failed to save %s file: %v", fileType, err))
	}

	format, text := h.extractor.Extract(models.RawDocument{
		Bytes:     data,
		MediaType: file.Header.Get("Content-Type"),
		FileName:  file.Filename,
	})

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FileType:         fileType,
		Format:           string(format),
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return nil, fiber.NewError(fiber.StatusInternalServerError,
			fmt.Sprintf("failed to save %s document record: %v", fileType, err))
	}

	resp := &models.UploadResponse{
		Document: models.UploadedDocument{
			ID:           doc.ID.String(),
			Filename:     doc.Filename,
			OriginalName: doc.OriginalFileName,
			FileType:     doc.FileType,
			Format:       doc.Format,
		},
		TextChars: len(text),
	}

	switch fileType {
	case "resume":
		resp.Resume = h.resumeParser.Parse(text)
	case "job_description":
		resp.Job = h.jobParser.Parse(text)
	}

	return resp, nil
}

func respondFiberError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func readMultipartFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}
