package query

import (
	"github.com/etaxql/etaxql/internal/document"
	"github.com/etaxql/etaxql/internal/fixtures"
)

// Observer is notified each time a root field resolves.
type Observer interface {
	ObserveResolve(kind fixtures.Kind)
}

// Resolver is the root Query resolver. Every operation returns the record
// loaded at startup, so repeated calls yield the same value. A payload that
// is not an object resolves to null with an error.
type Resolver struct {
	docs     *document.Set
	observer Observer
}

// NewResolver wraps the decoded documents. observer may be nil.
func NewResolver(docs *document.Set, observer Observer) *Resolver {
	if docs == nil {
		docs = &document.Set{}
	}
	return &Resolver{docs: docs, observer: observer}
}

// GetPurchaseOrder serves the purchase order fixture.
func (r *Resolver) GetPurchaseOrder() (*document.PurchaseOrder, error) {
	r.observe(fixtures.KindPurchaseOrder)
	return r.docs.PurchaseOrder, r.docs.Err(fixtures.KindPurchaseOrder)
}

// GetCreditNote serves the credit note fixture.
func (r *Resolver) GetCreditNote() (*document.CreditNote, error) {
	r.observe(fixtures.KindCreditNote)
	return r.docs.CreditNote, r.docs.Err(fixtures.KindCreditNote)
}

// GetDebitNote serves the debit note fixture.
func (r *Resolver) GetDebitNote() (*document.DebitNote, error) {
	r.observe(fixtures.KindDebitNote)
	return r.docs.DebitNote, r.docs.Err(fixtures.KindDebitNote)
}

// GetDeliveryOrderTaxInvoice serves the delivery order / tax invoice fixture.
func (r *Resolver) GetDeliveryOrderTaxInvoice() (*document.DeliveryOrderTaxInvoice, error) {
	r.observe(fixtures.KindDeliveryOrderTaxInvoice)
	return r.docs.DeliveryOrderTaxInvoice, r.docs.Err(fixtures.KindDeliveryOrderTaxInvoice)
}

// GetReceiptTaxInvoice serves the receipt / tax invoice fixture.
func (r *Resolver) GetReceiptTaxInvoice() (*document.ReceiptTaxInvoice, error) {
	r.observe(fixtures.KindReceiptTaxInvoice)
	return r.docs.ReceiptTaxInvoice, r.docs.Err(fixtures.KindReceiptTaxInvoice)
}

func (r *Resolver) observe(kind fixtures.Kind) {
	if r.observer != nil {
		r.observer.ObserveResolve(kind)
	}
}
