package handler

import (
	"net/http"
	"strconv"
	"strings"

	"leadcapture_backend/internal/forms/domain"
	"leadcapture_backend/internal/forms/service"
	"leadcapture_backend/internal/forms/transport"
	"leadcapture_backend/internal/storage"
	"leadcapture_backend/platform/config"
	"leadcapture_backend/platform/httpkit"
	"leadcapture_backend/platform/validator"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	publicMsgInvalidRequest    = "Invalid request"
	publicMsgUploadsDisabled   = "File uploads are not available"
	publicMsgUnknownField      = "Unknown file field"
	publicMsgFileTypeRejected  = "File type not accepted"
	publicMsgFileTooLarge      = "File exceeds the maximum size"
	publicMsgShareUnconfigured = "Shared links are not configured"
)

// qrSize is the pixel size of generated share QR codes.
const qrSize = 256

// PublicHandler serves the unauthenticated form endpoints consumed by the
// hosted page, the embed script and shared links.
type PublicHandler struct {
	svc     *service.Service
	uploads storage.Uploads
	share   config.ShareConfig
	val     *validator.Validator
}

// NewPublicHandler creates the public forms handler. uploads may be nil
// when object storage is not configured; the presign endpoint then
// reports uploads as unavailable.
func NewPublicHandler(svc *service.Service, uploads storage.Uploads, share config.ShareConfig, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, uploads: uploads, share: share, val: val}
}

// RegisterRoutes registers public form routes under /public/forms.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:formId", h.GetForm)
	rg.GET("/:formId/share-qr", h.ShareQR)
	rg.POST("/:formId/steps/:stepIndex/validate", h.ValidateStep)
	rg.POST("/:formId/submissions", h.Submit)
	rg.POST("/:formId/uploads/presign", h.PresignUpload)
}

// GetForm returns the renderable form definition.
func (h *PublicHandler) GetForm(c *gin.Context) {
	def, err := h.svc.GetDefinition(c.Request.Context(), c.Param("formId"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, def)
}

// ValidateStep validates a single step's values without storing anything.
// The client calls this before advancing past a step.
func (h *PublicHandler) ValidateStep(c *gin.Context) {
	stepIndex, err := strconv.Atoi(c.Param("stepIndex"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, publicMsgInvalidRequest, nil)
		return
	}

	var req transport.ValidateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, publicMsgInvalidRequest, nil)
		return
	}

	result, err := h.svc.ValidateStep(c.Request.Context(), c.Param("formId"), stepIndex, req.Values)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Submit runs the full submission pipeline and returns the configured
// post-submission behavior.
func (h *PublicHandler) Submit(c *gin.Context) {
	var req transport.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, publicMsgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, publicMsgInvalidRequest, nil)
		return
	}

	resp, err := h.svc.Submit(c.Request.Context(), c.Param("formId"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, resp)
}

// ShareQR renders a PNG QR code pointing at the form's shared link.
func (h *PublicHandler) ShareQR(c *gin.Context) {
	formID := c.Param("formId")

	// 404 for unknown forms before minting a link to them.
	if _, err := h.svc.GetDefinition(c.Request.Context(), formID); httpkit.HandleError(c, err) {
		return
	}

	base := h.share.GetPublicBaseURL()
	if base == "" {
		httpkit.Error(c, http.StatusServiceUnavailable, publicMsgShareUnconfigured, nil)
		return
	}

	shareURL := strings.TrimSuffix(base, "/") + "/form/" + formID + "?via=shared"
	png, err := qrcode.Encode(shareURL, qrcode.Medium, qrSize)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, publicMsgInvalidRequest, nil)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

// PresignUpload hands the client a short-lived PUT URL for a file-type
// field. The field's accepted types and size limit are enforced here,
// before any storage round trip.
func (h *PublicHandler) PresignUpload(c *gin.Context) {
	if h.uploads == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, publicMsgUploadsDisabled, nil)
		return
	}

	var req transport.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, publicMsgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, publicMsgInvalidRequest, nil)
		return
	}

	formID := c.Param("formId")
	def, err := h.svc.GetDefinition(c.Request.Context(), formID)
	if httpkit.HandleError(c, err) {
		return
	}

	field, ok := def.FieldByID(req.FieldID)
	if !ok || field.Type != domain.FieldTypeFile {
		httpkit.Error(c, http.StatusBadRequest, publicMsgUnknownField, nil)
		return
	}
	if field.Validation != nil {
		if !storage.ExtensionAllowed(req.FileName, field.Validation.FileTypes) {
			httpkit.Error(c, http.StatusBadRequest, publicMsgFileTypeRejected, nil)
			return
		}
		if field.Validation.MaxSize != nil && req.FileSize > *field.Validation.MaxSize {
			httpkit.Error(c, http.StatusBadRequest, publicMsgFileTooLarge, nil)
			return
		}
	}

	presigned, err := h.uploads.PresignUpload(c.Request.Context(), formID, req.FileName, req.FileType, req.FileSize)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, publicMsgUploadsDisabled, nil)
		return
	}

	httpkit.OK(c, transport.PresignUploadResponse{
		URL:       presigned.URL,
		ObjectKey: presigned.FileKey,
		ExpiresIn: int64(storage.UploadURLTTL.Seconds()),
	})
}
