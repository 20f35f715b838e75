package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
)

const defaultMaxUploadBytes = 2 << 20

// TranslationHandler handles UI string management HTTP requests
type TranslationHandler struct {
	translationService service.TranslationService
	maxUploadBytes     int64
}

// NewTranslationHandler creates a new TranslationHandler
func NewTranslationHandler(translationService service.TranslationService, maxUploadBytes int64) *TranslationHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &TranslationHandler{
		translationService: translationService,
		maxUploadBytes:     maxUploadBytes,
	}
}

// Languages lists the available languages
// GET /api/admin/translations/languages
func (h *TranslationHandler) Languages(c *gin.Context) {
	languages, err := h.translationService.Languages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(languages))
}

// Stats returns completion per language
// GET /api/admin/translations/stats
func (h *TranslationHandler) Stats(c *gin.Context) {
	stats, err := h.translationService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(stats))
}

// Namespaces lists the namespaces stored for a language
// GET /api/admin/translations/:lang/namespaces
func (h *TranslationHandler) Namespaces(c *gin.Context) {
	namespaces, err := h.translationService.Namespaces(c.Request.Context(), c.Param("lang"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(namespaces))
}

// Get returns a namespace document
// GET /api/admin/translations/:lang/:ns
func (h *TranslationHandler) Get(c *gin.Context) {
	doc, err := h.translationService.Get(c.Request.Context(), c.Param("lang"), c.Param("ns"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(doc))
}

// Replace overwrites a namespace document
// PUT /api/admin/translations/:lang/:ns
func (h *TranslationHandler) Replace(c *gin.Context) {
	var req dto.SaveTranslationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	doc, err := h.translationService.Replace(c.Request.Context(), actorFrom(c), c.Param("lang"), c.Param("ns"), req.Translations)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "translation", doc.Language+"/"+doc.Namespace)
	c.JSON(http.StatusOK, response.Success(doc))
}

// Create stores a new namespace document
// POST /api/admin/translations/:lang/:ns
func (h *TranslationHandler) Create(c *gin.Context) {
	var req dto.SaveTranslationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	doc, err := h.translationService.Create(c.Request.Context(), actorFrom(c), c.Param("lang"), c.Param("ns"), req.Translations)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "translation", doc.Language+"/"+doc.Namespace)
	c.JSON(http.StatusCreated, response.Success(doc))
}

// Delete removes a namespace document
// DELETE /api/admin/translations/:lang/:ns
func (h *TranslationHandler) Delete(c *gin.Context) {
	lang, ns := c.Param("lang"), c.Param("ns")
	if err := h.translationService.Delete(c.Request.Context(), lang, ns); err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "translation", lang+"/"+ns)
	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Translations deleted successfully"}))
}

// Upload imports a JSON file into a namespace
// POST /api/admin/translations/upload
func (h *TranslationHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("A JSON file is required"))
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, response.Error(response.ErrCodePayloadTooLarge,
			fmt.Sprintf("File exceeds %d bytes", h.maxUploadBytes)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	defer file.Close()

	var content map[string]any
	if err := json.NewDecoder(file).Decode(&content); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("INVALID_JSON", "File must contain a JSON object"))
		return
	}

	merge := false
	if raw := c.PostForm("merge"); raw != "" {
		if merge, err = strconv.ParseBool(raw); err != nil {
			c.JSON(http.StatusBadRequest, response.BadRequest("merge must be true or false"))
			return
		}
	}

	req := &dto.UploadTranslationsRequest{
		Language:  c.PostForm("language"),
		Namespace: c.PostForm("namespace"),
		Merge:     merge,
		Content:   content,
	}

	doc, err := h.translationService.Upload(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "translation", doc.Language+"/"+doc.Namespace)
	middleware.SetAuditMetadata(c, map[string]interface{}{
		"filename": fileHeader.Filename,
		"merge":    merge,
	})
	c.JSON(http.StatusOK, response.Success(doc))
}

// Export downloads a namespace document as a JSON attachment
// GET /api/admin/translations/:lang/:ns/export
func (h *TranslationHandler) Export(c *gin.Context) {
	doc, err := h.translationService.Get(c.Request.Context(), c.Param("lang"), c.Param("ns"))
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("%s-%s.json", doc.Language, doc.Namespace)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.IndentedJSON(http.StatusOK, doc.Content)
}

// Validate diffs a namespace against the reference language
// GET /api/admin/translations/:lang/:ns/validate
func (h *TranslationHandler) Validate(c *gin.Context) {
	report, err := h.translationService.Validate(c.Request.Context(), c.Param("lang"), c.Param("ns"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(report))
}
