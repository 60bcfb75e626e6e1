package entity

// PrintoutHeader holds the business header printed at the top of a document.
type PrintoutHeader struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
}

// PrintoutItem is a single formatted line on a printout.
type PrintoutItem struct {
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Discount  string `json:"discount,omitempty"`
	Total     string `json:"total"`
}

// Printout is a value object holding a document rendered for paper.
// It is NOT a database entity. Amounts are already formatted for display.
type Printout struct {
	Header    PrintoutHeader `json:"header"`
	Title     string         `json:"title"`
	Reference string         `json:"reference"`
	Date      string         `json:"date"`
	Customer  string         `json:"customer,omitempty"`
	Status    string         `json:"status"`
	Items     []PrintoutItem `json:"items"`
	Subtotal  string         `json:"subtotal"`
	Discount  string         `json:"discount,omitempty"`
	TaxLabel  string         `json:"tax_label,omitempty"`
	Tax       string         `json:"tax,omitempty"`
	Total     string         `json:"total"`
	Note      string         `json:"note,omitempty"`
}
