package handler

import (
	_ "embed"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"ragdocs/internal/model"
	"ragdocs/internal/service"
)

//go:embed static/index.html
var indexHTML string

type deleteRequest struct {
	Filename string `json:"filename"`
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, docSvc service.DocumentService, promptSvc service.PromptService) {
	app.Get("/", Index())
	app.Get("/healthz", LivenessProbe())

	app.Post("/upload", UploadFile(docSvc))
	app.Get("/list-files", ListFiles(docSvc))
	app.Post("/delete-file", DeleteFile(docSvc))
	app.Post("/process-prompt", ProcessPrompt(promptSvc))
}

// Index serves the static landing page.
func Index() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Type("html").SendString(indexHTML)
	}
}

// LivenessProbe is a simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// UploadFile godoc
// @Summary Upload a PDF
// @Description Stores the file under its sanitized name, replacing an existing object with the same name.
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} model.Message
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /upload [post]
func UploadFile(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			// A file input submitted without a selection arrives as a plain value.
			if form, ferr := c.MultipartForm(); ferr == nil && hasValue(form, "file") {
				return writeError(c, fiber.StatusBadRequest, "No selected file")
			}
			return writeError(c, fiber.StatusBadRequest, "No file part")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		if _, err := docSvc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(model.Message{Message: "File uploaded successfully"})
	}
}

// ListFiles godoc
// @Summary List stored files
// @Produce json
// @Success 200 {array} model.File
// @Failure 500 {object} errorPayload
// @Router /list-files [get]
func ListFiles(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := docSvc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(files)
	}
}

// DeleteFile godoc
// @Summary Delete a stored file
// @Accept json
// @Produce json
// @Param body body deleteRequest true "File to delete"
// @Success 200 {object} model.Message
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /delete-file [post]
func DeleteFile(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req deleteRequest
		if err := c.BodyParser(&req); err != nil || req.Filename == "" {
			return writeError(c, fiber.StatusBadRequest, "No filename provided")
		}

		if err := docSvc.Delete(c.UserContext(), req.Filename); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(model.Message{Message: "File " + req.Filename + " deleted successfully"})
	}
}

// ProcessPrompt godoc
// @Summary Ask the language model
// @Description With use_rag=true the prompt is augmented with documents from the search index.
// @Accept x-www-form-urlencoded
// @Produce json
// @Param prompt formData string true "Prompt"
// @Param use_rag formData string false "\"true\" to enable retrieval"
// @Success 200 {object} model.PromptResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /process-prompt [post]
func ProcessPrompt(promptSvc service.PromptService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		prompt := c.FormValue("prompt")
		useRAG := c.FormValue("use_rag", "false") == "true"

		out, err := promptSvc.Ask(c.UserContext(), prompt, useRAG)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(model.PromptResponse{Response: out})
	}
}

func hasValue(form *multipart.Form, key string) bool {
	if form == nil {
		return false
	}
	_, ok := form.Value[key]
	return ok
}
