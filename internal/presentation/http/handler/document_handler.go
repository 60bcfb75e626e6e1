package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quote-engine/internal/application/service"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/sangkips/quote-engine/internal/presentation/http/dto/request"
	"github.com/sangkips/quote-engine/internal/presentation/http/dto/response"
	"github.com/sangkips/quote-engine/pkg/apperror"
	"github.com/sangkips/quote-engine/pkg/pagination"
)

// DocumentHandler handles quote and statement HTTP requests
type DocumentHandler struct {
	documentService *service.DocumentService
	currencySymbol  string
}

// NewDocumentHandler creates a new document handler. currencySymbol is
// used to format previews of unsaved forms.
func NewDocumentHandler(documentService *service.DocumentService, currencySymbol string) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		currencySymbol:  currencySymbol,
	}
}

// List handles listing documents
// @Summary List Documents
// @Description Get quotes and statements with pagination and filtering
// @Tags documents
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search reference or customer"
// @Param status query string false "Status name or number"
// @Param type query string false "quote or statement"
// @Success 200 {object} response.APIResponse
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	var req request.DocumentFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	input := &service.ListDocumentsInput{
		Pagination: &pagination.PaginationParams{
			Page:    req.Page,
			PerPage: req.PerPage,
		},
		Search:    req.Search,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	if req.Status != "" {
		status, ok := parseStatus(req.Status)
		if !ok {
			response.Error(c, apperror.NewFieldError("status", "is not a known status"))
			return
		}
		input.Status = &status
	}

	if req.Type != "" {
		docType := enum.DocumentType(strings.ToLower(req.Type))
		if !docType.IsValid() {
			response.Error(c, apperror.NewFieldError("type", "must be quote or statement"))
			return
		}
		input.Type = &docType
	}

	result, err := h.documentService.ListDocuments(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	summaries := pagination.NewPaginatedResult(response.NewDocumentSummaries(result.Items), result.Pagination)
	response.SuccessWithPagination(c, http.StatusOK, "Documents retrieved successfully", summaries)
}

// Get handles getting a single document
// @Summary Get Document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document retrieved successfully", response.NewDocumentResponse(doc))
}

// Totals handles reading the current totals snapshot of a document
// @Summary Get Document Totals
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id}/totals [get]
func (h *DocumentHandler) Totals(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}

	editor, err := h.documentService.Open(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	doc := editor.Snapshot()
	response.OK(c, "Totals calculated successfully", response.NewTotalsResponse(editor.Totals(), doc.Currency))
}

// Create handles creating a document
// @Summary Create Document
// @Description Create a new draft quote or statement
// @Tags documents
// @Accept json
// @Produce json
// @Param request body request.CreateDocumentRequest true "Document data"
// @Success 201 {object} response.APIResponse
// @Router /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req request.CreateDocumentRequest
	if !bindJSON(c, &req) {
		return
	}

	items, err := request.ToInputs(req.Items)
	if err != nil {
		response.Error(c, err)
		return
	}

	input := &service.CreateDocumentInput{
		Type:         req.Type,
		CustomerName: req.CustomerName,
		Currency:     req.Currency,
		Note:         req.Note,
		Items:        items,
	}
	if req.Pricing != nil {
		cfg := req.Pricing.ToConfig()
		input.Pricing = &cfg
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Document created successfully", response.NewDocumentResponse(doc))
}

// UpdateDetails handles changing the customer name or note of a draft
// @Summary Update Document Details
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body request.UpdateDetailsRequest true "Details"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id} [patch]
func (h *DocumentHandler) UpdateDetails(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}

	var req request.UpdateDetailsRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.documentService.UpdateDetails(c.Request.Context(), id, &service.UpdateDetailsInput{
		CustomerName: req.CustomerName,
		Note:         req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document updated successfully", response.NewDocumentResponse(doc))
}

// Delete handles deleting a draft document
// @Summary Delete Document
// @Tags documents
// @Param id path string true "Document ID"
// @Success 204
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpdatePricing handles replacing the tax rate and document discount
// @Summary Update Document Pricing
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body request.PricingRequest true "Pricing"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id}/pricing [put]
func (h *DocumentHandler) UpdatePricing(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}

	var req request.PricingRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.documentService.UpdatePricing(c.Request.Context(), id, req.ToConfig())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing updated successfully", response.NewDocumentResponse(doc))
}

// ChangeStatus handles a status-only change
// @Summary Change Document Status
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body request.ChangeStatusRequest true "Status"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id}/status [put]
func (h *DocumentHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}

	var req request.ChangeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.documentService.ChangeStatus(c.Request.Context(), id, *req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Status updated successfully", response.NewDocumentResponse(doc))
}

// AddLineItem handles appending a line item
// @Summary Add Line Item
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body request.LineItemRequest true "Line item"
// @Success 201 {object} response.APIResponse
// @Router /documents/{id}/items [post]
func (h *DocumentHandler) AddLineItem(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}

	var req request.LineItemRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	doc, err := h.documentService.AddLineItem(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Line item added successfully", response.NewDocumentResponse(doc))
}

// UpdateLineItem handles replacing the line item at a position
// @Summary Update Line Item
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param index path int true "Line item position"
// @Param request body request.LineItemRequest true "Line item"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id}/items/{index} [put]
func (h *DocumentHandler) UpdateLineItem(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}
	index, ok := parseItemIndex(c)
	if !ok {
		return
	}

	var req request.LineItemRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	doc, err := h.documentService.UpdateLineItem(c.Request.Context(), id, index, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line item updated successfully", response.NewDocumentResponse(doc))
}

// RemoveLineItem handles deleting the line item at a position
// @Summary Remove Line Item
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Param index path int true "Line item position"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id}/items/{index} [delete]
func (h *DocumentHandler) RemoveLineItem(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}
	index, ok := parseItemIndex(c)
	if !ok {
		return
	}

	doc, err := h.documentService.RemoveLineItem(c.Request.Context(), id, index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line item removed successfully", response.NewDocumentResponse(doc))
}

// MoveLineItem handles moving a line item one position up or down
// @Summary Move Line Item
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param index path int true "Line item position"
// @Param request body request.MoveLineItemRequest true "Direction"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id}/items/{index}/move [post]
func (h *DocumentHandler) MoveLineItem(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}
	index, ok := parseItemIndex(c)
	if !ok {
		return
	}

	var req request.MoveLineItemRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.documentService.MoveLineItem(c.Request.Context(), id, index, enum.MoveDirection(strings.ToLower(string(req.Direction))))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line item moved successfully", response.NewDocumentResponse(doc))
}

// Preview handles computing totals for an unsaved form
// @Summary Preview Totals
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body request.PreviewRequest true "Form state"
// @Success 200 {object} response.APIResponse
// @Router /pricing/preview [post]
func (h *DocumentHandler) Preview(c *gin.Context) {
	var req request.PreviewRequest
	if !bindJSON(c, &req) {
		return
	}

	items, err := request.ToInputs(req.Items)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.documentService.Preview(items, req.Pricing.ToConfig())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Totals calculated successfully", response.PreviewResponse{
		LineItems: response.NewLineItemResponses(result.LineItems, h.currencySymbol),
		Totals:    response.NewTotalsResponse(result.Totals, h.currencySymbol),
	})
}

// parseStatus accepts a status name or its number
func parseStatus(raw string) (enum.DocumentStatus, bool) {
	if status, ok := enum.ParseDocumentStatus(raw); ok {
		return status, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return enum.DocumentStatusDraft, false
	}
	status := enum.DocumentStatus(n)
	return status, status.IsValid()
}
