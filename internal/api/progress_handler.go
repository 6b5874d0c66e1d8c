package api

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"alcyxob/wellness-app/internal/service"
	"alcyxob/wellness-app/internal/validation"

	"github.com/gin-gonic/gin"
)

// MaxPhotoSize is the largest accepted progress photo.
const MaxPhotoSize = 10 << 20

var photoContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ProgressHandler serves the authenticated user's progress history.
type ProgressHandler struct {
	progressService service.ProgressService
	validator       *validation.Validator
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService, v *validation.Validator) *ProgressHandler {
	return &ProgressHandler{progressService: progressService, validator: v}
}

// List godoc
// @Summary List progress entries
// @Description Newest first.
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 50)"
// @Success 200 {object} gin.H "Data fetched successfully"
// @Router /progress [get]
func (h *ProgressHandler) List(c *gin.Context) {
	page, err := h.progressService.List(c.Request.Context(), currentUser(c).ID, pageFromQuery(c, service.DefaultProgressLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Data fetched successfully", page)
}

// VisualJourney godoc
// @Summary List progress entries that have a photo
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 50)"
// @Success 200 {object} gin.H "Visual journey fetched successfully"
// @Router /progress/visualjourney [get]
func (h *ProgressHandler) VisualJourney(c *gin.Context) {
	page, err := h.progressService.VisualJourney(c.Request.Context(), currentUser(c).ID, pageFromQuery(c, service.DefaultProgressLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Visual journey fetched successfully", page)
}

// Create godoc
// @Summary Record a progress entry
// @Description Accepts JSON or multipart/form-data with an optional "photo" file (jpg, jpeg or png).
// @Tags Progress
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} gin.H "Progress saved successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /progress [post]
func (h *ProgressHandler) Create(c *gin.Context) {
	body, photo, ok := h.readProgress(c)
	if !ok {
		return
	}
	if photo != nil {
		defer photo.close()
	}
	in, err := h.validator.Progress(body, false)
	if err != nil {
		respondError(c, err)
		return
	}

	progress, err := h.progressService.Create(c.Request.Context(), currentUser(c).ID, in, photo.upload())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Progress saved successfully", "data": progress})
}

// Update godoc
// @Summary Update a progress entry
// @Description Only sent fields change; measurements merge key by key. A new photo replaces and deletes the old one.
// @Tags Progress
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Progress entry ID"
// @Success 200 {object} gin.H "Progress updated successfully"
// @Failure 400 {object} gin.H "Invalid input or ID"
// @Failure 404 {object} gin.H "Progress entry not found"
// @Router /progress/{id} [patch]
func (h *ProgressHandler) Update(c *gin.Context) {
	body, photo, ok := h.readProgress(c)
	if !ok {
		return
	}
	if photo != nil {
		defer photo.close()
	}
	in, err := h.validator.Progress(body, true)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.progressService.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), in, photo.upload())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := gin.H{"message": "Progress updated successfully", "data": result.Progress}
	if result.PhotoCleanup != nil {
		resp["photoCleanup"] = result.PhotoCleanup
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete a progress entry
// @Description Also deletes its hosted photo; a failed photo deletion is reported in photoCleanup.
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param id path string true "Progress entry ID"
// @Success 200 {object} gin.H "Progress entry deleted successfully"
// @Failure 404 {object} gin.H "Progress entry not found"
// @Router /progress/{id} [delete]
func (h *ProgressHandler) Delete(c *gin.Context) {
	id, cleanup, err := h.progressService.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Progress entry deleted successfully",
		"id":           id.Hex(),
		"photoCleanup": cleanup,
	})
}

type formPhoto struct {
	file        multipart.File
	size        int64
	contentType string
}

func (p *formPhoto) upload() *service.PhotoUpload {
	if p == nil {
		return nil
	}
	return &service.PhotoUpload{Body: p.file, Size: p.size, ContentType: p.contentType}
}

func (p *formPhoto) close() {
	_ = p.file.Close()
}

// readProgress returns the payload as JSON. Multipart forms are converted:
// flat measurement fields are nested under "measurements" and the optional
// "photo" file is opened.
func (h *ProgressHandler) readProgress(c *gin.Context) ([]byte, *formPhoto, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		body, ok := readBody(c)
		return body, nil, ok
	}

	form, err := c.MultipartForm()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid multipart form")
		return nil, nil, false
	}

	body, err := formToJSON(form.Value)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid multipart form")
		return nil, nil, false
	}

	files := form.File["photo"]
	if len(files) == 0 {
		return body, nil, true
	}
	fh := files[0]
	contentType, ok := photoContentTypes[strings.ToLower(filepath.Ext(fh.Filename))]
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Only jpg, jpeg and png images are allowed")
		return nil, nil, false
	}
	if fh.Size > MaxPhotoSize {
		abortWithError(c, http.StatusBadRequest, "Photo must be at most 10MB")
		return nil, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Unable to read photo")
		return nil, nil, false
	}
	return body, &formPhoto{file: f, size: fh.Size, contentType: contentType}, true
}

// formToJSON shapes form values like a JSON progress payload. weight becomes a
// number when it parses, otherwise it stays a string for the validator to reject.
func formToJSON(values map[string][]string) ([]byte, error) {
	payload := map[string]any{}
	measurements := map[string]any{}
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		value := vals[0]
		if validation.MeasurementFields.Has(key) {
			measurements[key] = value
			continue
		}
		// Blank form fields count as absent.
		if strings.TrimSpace(value) == "" {
			continue
		}
		switch key {
		case "weight":
			if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
				payload[key] = f
			} else {
				payload[key] = value
			}
		default:
			payload[key] = value
		}
	}
	if len(measurements) > 0 {
		payload["measurements"] = measurements
	}
	return json.Marshal(payload)
}
