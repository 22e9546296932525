package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eserbisyo/brgy-docs-api/internal/dto"
	"github.com/eserbisyo/brgy-docs-api/internal/models"
	"github.com/eserbisyo/brgy-docs-api/internal/registry"
	"github.com/eserbisyo/brgy-docs-api/internal/service"
	appErrors "github.com/eserbisyo/brgy-docs-api/pkg/errors"
	"github.com/eserbisyo/brgy-docs-api/pkg/response"
)

// RequestHandler exposes the document request lifecycle over HTTP.
type RequestHandler struct {
	requests  *service.RequestService
	queue     *service.QueueService
	exports   *service.ExportService
	registry  *registry.Registry
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRequestHandler constructs the handler.
func NewRequestHandler(requests *service.RequestService, queue *service.QueueService, exports *service.ExportService, reg *registry.Registry, validate *validator.Validate, logger *zap.Logger) *RequestHandler {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestHandler{requests: requests, queue: queue, exports: exports, registry: reg, validator: validate, logger: logger}
}

// CreateClearance godoc
// @Summary File a barangay clearance request
// @Tags DocumentRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateClearanceRequest true "Clearance payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /document-requests/barangay-clearance [post]
func (h *RequestHandler) CreateClearance(c *gin.Context) {
	var req dto.CreateClearanceRequest
	if !h.bind(c, &req) {
		return
	}

	rec := &models.BarangayClearance{
		Name:          req.Name,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Purpose:       req.Purpose,
	}
	h.create(c, models.TypeBarangayClearance, rec)
}

// CreateIndigency godoc
// @Summary File a certificate of indigency request
// @Tags DocumentRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateIndigencyRequest true "Indigency payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /document-requests/barangay-indigency [post]
func (h *RequestHandler) CreateIndigency(c *gin.Context) {
	var req dto.CreateIndigencyRequest
	if !h.bind(c, &req) {
		return
	}

	rec := &models.BarangayIndigency{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Purpose:       req.Purpose,
	}
	h.create(c, models.TypeBarangayIndigency, rec)
}

// CreateBusinessClearance godoc
// @Summary File a business clearance request
// @Tags DocumentRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateBusinessClearanceRequest true "Business clearance payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /document-requests/business-clearance [post]
func (h *RequestHandler) CreateBusinessClearance(c *gin.Context) {
	var req dto.CreateBusinessClearanceRequest
	if !h.bind(c, &req) {
		return
	}

	rec := &models.BusinessClearance{
		OwnerName:      req.OwnerName,
		BusinessName:   req.BusinessName,
		BusinessType:   req.BusinessType,
		BusinessNature: req.BusinessNature,
		OwnerAddress:   req.OwnerAddress,
		ContactNumber:  req.ContactNumber,
		Email:          req.Email,
	}
	h.create(c, models.TypeBusinessClearance, rec)
}

// CreateCedula godoc
// @Summary File a community tax certificate request
// @Tags DocumentRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateCedulaRequest true "Cedula payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /document-requests/cedula [post]
func (h *RequestHandler) CreateCedula(c *gin.Context) {
	var req dto.CreateCedulaRequest
	if !h.bind(c, &req) {
		return
	}

	rec := &models.Cedula{
		Name:         req.Name,
		Address:      req.Address,
		DateOfBirth:  req.DateOfBirth,
		PlaceOfBirth: req.PlaceOfBirth,
		CivilStatus:  req.CivilStatus,
		Occupation:   req.Occupation,
		Tax:          req.Tax,
	}
	h.create(c, models.TypeCedula, rec)
}

// UpdateStatus godoc
// @Summary Update the status of a document request
// @Tags DocumentRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param type path string true "Document type slug"
// @Param id path string true "Request ID"
// @Param payload body dto.UpdateStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /document-requests/{type}/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	entry, err := h.registry.BySlug(c.Param("type"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateStatusRequest
	if !h.bind(c, &req) {
		return
	}

	rec, err := h.requests.UpdateStatus(c.Request.Context(), entry.Type, c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.queue.Invalidate(c.Request.Context(), claims.Barangay)
	response.JSON(c, http.StatusOK, rec, nil)
}

// List godoc
// @Summary Unified document request queue
// @Description All four document types merged into one queue, newest first
// @Tags DocumentRequests
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /document-requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	filter := dto.QueueFilter{
		Page:     queryInt(c, "page", 0),
		PageSize: queryInt(c, "pageSize", 0),
	}

	summaries, pagination, err := h.queue.List(c.Request.Context(), claims.Barangay, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, summaries, pagination)
}

// Export godoc
// @Summary Export the document request queue
// @Description Renders the aggregated queue as CSV or PDF
// @Tags DocumentRequests
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /document-requests/export [get]
func (h *RequestHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := c.DefaultQuery("format", "csv")
	result, err := h.exports.Export(c.Request.Context(), claims.Barangay, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}

func (h *RequestHandler) create(c *gin.Context, requestType models.RequestType, rec models.DocumentRecord) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	created, err := h.requests.Create(c.Request.Context(), requestType, rec, claims.Barangay)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.queue.Invalidate(c.Request.Context(), claims.Barangay)
	response.Created(c, created)
}

func (h *RequestHandler) bind(c *gin.Context, payload interface{}) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid request payload"))
		return false
	}
	if err := h.validator.Struct(payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "validation failed"))
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
