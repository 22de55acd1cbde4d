package document

import "github.com/etaxql/etaxql/internal/scalar"

// document carries the header, party, line and total fields every e-tax
// document type shares.
type document struct{ object }

func (d *document) TypeCode() (*scalar.String, error)   { return d.str("TypeCode") }
func (d *document) TypeNameTh() (*scalar.String, error) { return d.str("TypeNameTh") }
func (d *document) TypeNameEn() (*scalar.String, error) { return d.str("TypeNameEn") }
func (d *document) No() (*scalar.String, error)         { return d.str("No") }
func (d *document) Date() (*scalar.String, error)       { return d.str("Date") }

func (d *document) Seller() (*Seller, error) {
	o, err := d.child("Seller")
	if o == nil {
		return nil, err
	}
	return &Seller{party{o}}, nil
}

func (d *document) Buyer() (*Buyer, error) {
	o, err := d.child("Buyer")
	if o == nil {
		return nil, err
	}
	return &Buyer{party{o}}, nil
}

func (d *document) DueDate() (*scalar.String, error)      { return d.str("DueDate") }
func (d *document) PurposeCode() (*scalar.String, error)  { return d.str("PurposeCode") }
func (d *document) Purpose() (*scalar.String, error)      { return d.str("Purpose") }
func (d *document) CurrencyCode() (*scalar.String, error) { return d.str("CurrencyCode") }
func (d *document) Currency() (*scalar.String, error)     { return d.str("Currency") }

func (d *document) LineItems() (*LineItems, error) {
	o, err := d.child("LineItems")
	if o == nil {
		return nil, err
	}
	return &LineItems{o}, nil
}

func (d *document) TotalQuantity() (*scalar.Int, error)    { return d.integer("TotalQuantity") }
func (d *document) Quantity() (*scalar.Int, error)         { return d.integer("Quantity") }
func (d *document) Amount() (*scalar.Float, error)         { return d.float("Amount") }
func (d *document) ChargeTotal() (*scalar.Float, error)    { return d.float("ChargeTotal") }
func (d *document) AllowanceTotal() (*scalar.Float, error) { return d.float("AllowanceTotal") }
func (d *document) TaxBasisAmount() (*scalar.Float, error) { return d.float("TaxBasisAmount") }
func (d *document) TaxAmount() (*scalar.Float, error)      { return d.float("TaxAmount") }
func (d *document) Total() (*scalar.Float, error)          { return d.float("Total") }

func (d *document) Summary() (*Summary, error) {
	o, err := d.child("Summary")
	if o == nil {
		return nil, err
	}
	return &Summary{o}, nil
}

func (d *document) TotalEn() (*scalar.String, error) { return d.str("TotalEn") }
func (d *document) TotalTh() (*scalar.String, error) { return d.str("TotalTh") }

func (d *document) Settings() (*Settings, error) {
	o, err := d.child("Settings")
	if o == nil {
		return nil, err
	}
	return &Settings{o}, nil
}

func (d *document) Manager() (*scalar.String, error)  { return d.str("Manager") }
func (d *document) Position() (*scalar.String, error) { return d.str("Position") }

// PurchaseOrder is a buyer-issued order. Its references are free text and its
// tax block is a bare Tax rather than a Taxes wrapper.
type PurchaseOrder struct{ document }

func (p *PurchaseOrder) References() (*scalar.String, error) { return p.str("References") }
func (p *PurchaseOrder) IssueToBranch() (*scalar.Int, error) { return p.integer("IssueToBranch") }
func (p *PurchaseOrder) Remark() (*scalar.String, error)     { return p.str("Remark") }
func (p *PurchaseOrder) NonVat() (*scalar.Float, error)      { return p.float("NonVat") }

func (p *PurchaseOrder) Taxes() (*Tax, error) {
	o, err := p.child("Taxes")
	if o == nil {
		return nil, err
	}
	return &Tax{o}, nil
}

// referencing is a document issued against an earlier one.
type referencing struct{ document }

func (r *referencing) References() (*References, error) {
	o, err := r.child("References")
	if o == nil {
		return nil, err
	}
	return &References{o}, nil
}

func (r *referencing) Taxes() (*Taxes, error) {
	o, err := r.child("Taxes")
	if o == nil {
		return nil, err
	}
	return &Taxes{o}, nil
}

// adjustment is the amount block of credit and debit notes.
type adjustment struct{ referencing }

func (a *adjustment) OriginalAmount() (*scalar.Float, error)   { return a.float("OriginalAmount") }
func (a *adjustment) CorrectAmount() (*scalar.Float, error)    { return a.float("CorrectAmount") }
func (a *adjustment) DifferenceAmount() (*scalar.Float, error) { return a.float("DifferenceAmount") }

// CreditNote reduces the value of a referenced invoice.
type CreditNote struct{ adjustment }

// DebitNote increases the value of a referenced invoice.
type DebitNote struct{ adjustment }

func (d *DebitNote) NonVat() (*scalar.Float, error) { return d.float("NonVat") }

// DeliveryOrderTaxInvoice doubles as delivery order and tax invoice.
type DeliveryOrderTaxInvoice struct{ referencing }

func (d *DeliveryOrderTaxInvoice) Remark() (*scalar.String, error) { return d.str("Remark") }
func (d *DeliveryOrderTaxInvoice) FormOfPayment() (*scalar.String, error) {
	return d.str("FormOfPayment")
}
func (d *DeliveryOrderTaxInvoice) NonVat() (*scalar.Float, error) { return d.float("NonVat") }

// ReceiptTaxInvoice doubles as receipt and tax invoice.
type ReceiptTaxInvoice struct{ referencing }

func (r *ReceiptTaxInvoice) NonVat() (*scalar.Float, error) { return r.float("NonVat") }
