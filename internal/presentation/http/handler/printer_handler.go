package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/quote-engine/internal/application/service"
	"github.com/sangkips/quote-engine/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
// @Summary Printer Status
// @Tags printer
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /printer/status [get]
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// PrintDocument prints a quote or statement on the thermal printer.
// @Summary Print Document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id}/print [post]
func (h *PrinterHandler) PrintDocument(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}

	printout, err := h.printerService.PrintDocument(c.Request.Context(), id)
	if err != nil {
		// The printout was built but the device failed
		if printout != nil {
			response.OK(c, "Printout generated but printing failed", gin.H{
				"printout": printout,
				"warning":  err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Document printed successfully", gin.H{
		"printout": printout,
	})
}
