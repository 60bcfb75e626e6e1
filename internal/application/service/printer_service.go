package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/quote-engine/internal/domain/entity"
	"github.com/sangkips/quote-engine/internal/domain/enum"
	"github.com/sangkips/quote-engine/internal/domain/pricing"
	"github.com/sangkips/quote-engine/pkg/money"
	"github.com/sangkips/quote-engine/pkg/printer"
	"go.uber.org/zap"
)

// PrinterSettings controls how documents are laid out on paper.
type PrinterSettings struct {
	Type           string
	CharWidth      int
	CurrencySymbol string
	Header         entity.PrintoutHeader
}

// PrinterService renders documents and sends them to a thermal printer.
type PrinterService struct {
	printer   printer.Printer
	documents *DocumentService
	settings  PrinterSettings
	logger    *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, documents *DocumentService, settings PrinterSettings, logger *zap.Logger) *PrinterService {
	if settings.CharWidth <= 0 {
		settings.CharWidth = printer.Width58mm
	}
	return &PrinterService{
		printer:   p,
		documents: documents,
		settings:  settings,
		logger:    logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	CharWidth  int    `json:"char_width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.settings.Type != printer.TypeNone && s.settings.Type != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.settings.Type,
		CharWidth:  s.settings.CharWidth,
	}
}

// PrintDocument loads a document and prints it. When the document exists
// but the printer fails, the printout is returned together with the error.
func (s *PrinterService) PrintDocument(ctx context.Context, id uuid.UUID) (*entity.Printout, error) {
	doc, err := s.documents.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	out := BuildPrintout(doc, s.settings.Header, s.settings.CurrencySymbol)
	if err := s.printer.Print(ctx, FormatPrintout(out, s.settings.CharWidth)); err != nil {
		s.logger.Warn("printer error",
			zap.String("document_id", id.String()),
			zap.String("reference", doc.Reference),
			zap.Error(err),
		)
		return out, fmt.Errorf("failed to print document: %w", err)
	}

	s.logger.Info("document printed",
		zap.String("document_id", id.String()),
		zap.String("reference", doc.Reference),
	)
	return out, nil
}

// BuildPrintout formats doc for display. Totals are recomputed from the
// line items so the printout always matches what an editor would show.
func BuildPrintout(doc *entity.Document, header entity.PrintoutHeader, symbol string) *entity.Printout {
	totals := pricing.ComputeTotals(doc.LineItems, doc.Config())

	out := &entity.Printout{
		Header:    header,
		Title:     documentTitle(doc.Type),
		Reference: doc.Reference,
		Date:      doc.CreatedAt.Format("2006-01-02 15:04"),
		Customer:  doc.CustomerName,
		Status:    doc.Status.String(),
		Subtotal:  money.Format(totals.Subtotal, symbol),
		Total:     money.Format(totals.TotalAmount, symbol),
	}
	if out.Header.BusinessName == "" {
		out.Header.BusinessName = "Quote Engine"
	}
	if !totals.DiscountAmount.IsZero() {
		out.Discount = money.Format(totals.DiscountAmount.Neg(), symbol)
	}
	if !totals.TaxAmount.IsZero() {
		out.TaxLabel = fmt.Sprintf("Tax (%s%%)", doc.TaxRate.String())
		out.Tax = money.Format(totals.TaxAmount, symbol)
	}
	if doc.Note != nil {
		out.Note = *doc.Note
	}

	for _, li := range doc.LineItems {
		line := pricing.ComputeLine(li.Quantity, li.UnitPrice, li.DiscountPercent)
		item := entity.PrintoutItem{
			Name:      li.Name,
			Quantity:  li.Quantity.String(),
			UnitPrice: money.Format(li.UnitPrice, symbol),
			Total:     money.Format(line.LineTotal, symbol),
		}
		if li.Variant != "" {
			item.Name = li.Name + " (" + li.Variant + ")"
		}
		if !li.DiscountPercent.IsZero() {
			item.Discount = li.DiscountPercent.String() + "%"
		}
		out.Items = append(out.Items, item)
	}

	return out
}

// FormatPrintout converts a Printout into ESC/POS bytes.
func FormatPrintout(p *entity.Printout, charWidth int) []byte {
	t := printer.NewTicket(charWidth)

	t.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(p.Header.BusinessName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if p.Header.Address != "" {
		t.Text(p.Header.Address)
	}
	if p.Header.Phone != "" {
		t.Text(p.Header.Phone)
	}
	if p.Header.TaxID != "" {
		t.TextF("Tax ID: %s", p.Header.TaxID)
	}

	t.LineFeed().
		SetBold(true).
		Text(p.Title).
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-')

	t.KeyValue("Ref:", p.Reference).
		KeyValue("Date:", p.Date).
		KeyValue("Status:", p.Status)
	if p.Customer != "" {
		t.KeyValue("Customer:", p.Customer)
	}

	t.Separator('-')

	for _, item := range p.Items {
		t.ItemLine(item.Quantity, item.Name, item.Total)
		if item.Quantity != "1" {
			t.TextF("  @ %s each", item.UnitPrice)
		}
		if item.Discount != "" {
			t.TextF("  less %s", item.Discount)
		}
	}

	t.Separator('-')

	t.KeyValue("Subtotal:", p.Subtotal)
	if p.Discount != "" {
		t.KeyValue("Discount:", p.Discount)
	}
	if p.Tax != "" {
		t.KeyValue(p.TaxLabel+":", p.Tax)
	}
	t.SetBold(true).
		KeyValue("TOTAL:", p.Total).
		SetBold(false)

	if p.Note != "" {
		t.Separator('-').Text(p.Note)
	}

	t.Separator('-').
		SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your business!").
		SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return t.Bytes()
}

func documentTitle(t enum.DocumentType) string {
	if t == enum.DocumentTypeStatement {
		return "STATEMENT OF ACCOUNT"
	}
	return "QUOTATION"
}
