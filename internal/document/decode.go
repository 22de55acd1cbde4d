// Package document declares the e-tax document records served by etaxql and
// decodes fixture payloads into them.
package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etaxql/etaxql/internal/fixtures"
)

// ErrPayloadMissing indicates the source holds no payload for a kind.
var ErrPayloadMissing = errors.New("document: payload missing")

// DecodeError reports a payload that cannot back its record type.
type DecodeError struct {
	Kind fixtures.Kind
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("document: decode %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// PayloadSource yields raw payloads by kind. *fixtures.Store satisfies it.
type PayloadSource interface {
	Payload(kind fixtures.Kind) (json.RawMessage, bool)
}

// Set holds one record per document type. A nil record means the fixture
// payload was null, or was not an object; Err tells the two apart. Records
// are never mutated after Decode returns.
type Set struct {
	PurchaseOrder           *PurchaseOrder
	CreditNote              *CreditNote
	DebitNote               *DebitNote
	DeliveryOrderTaxInvoice *DeliveryOrderTaxInvoice
	ReceiptTaxInvoice       *ReceiptTaxInvoice

	errs map[fixtures.Kind]error
}

// Decode builds a Set from src. Every kind must be present. Field values are
// coerced lazily, so a value that does not fit its type fails only the field
// that selects it.
func Decode(src PayloadSource) (*Set, error) {
	set := &Set{errs: map[fixtures.Kind]error{}}
	for _, kind := range fixtures.DefaultCatalog.Kinds() {
		payload, ok := src.Payload(kind)
		if !ok {
			return nil, &DecodeError{Kind: kind, Err: ErrPayloadMissing}
		}
		o, err := parseObject(payload)
		if err != nil {
			set.errs[kind] = &DecodeError{Kind: kind, Err: err}
			continue
		}
		if o != nil {
			set.assign(kind, document{o})
		}
	}
	return set, nil
}

func (s *Set) assign(kind fixtures.Kind, doc document) {
	switch kind {
	case fixtures.KindPurchaseOrder:
		s.PurchaseOrder = &PurchaseOrder{doc}
	case fixtures.KindCreditNote:
		s.CreditNote = &CreditNote{adjustment{referencing{doc}}}
	case fixtures.KindDebitNote:
		s.DebitNote = &DebitNote{adjustment{referencing{doc}}}
	case fixtures.KindDeliveryOrderTaxInvoice:
		s.DeliveryOrderTaxInvoice = &DeliveryOrderTaxInvoice{referencing{doc}}
	case fixtures.KindReceiptTaxInvoice:
		s.ReceiptTaxInvoice = &ReceiptTaxInvoice{referencing{doc}}
	}
}

// Err returns the error that kept the payload for kind from becoming a
// record, if any.
func (s *Set) Err(kind fixtures.Kind) error {
	if s == nil {
		return nil
	}
	return s.errs[kind]
}

// header returns the shared fields of the record for kind. ok is false for
// kinds the set does not know.
func (s *Set) header(kind fixtures.Kind) (doc *document, ok bool) {
	if s == nil {
		return nil, false
	}
	switch kind {
	case fixtures.KindPurchaseOrder:
		if s.PurchaseOrder != nil {
			doc = &s.PurchaseOrder.document
		}
	case fixtures.KindCreditNote:
		if s.CreditNote != nil {
			doc = &s.CreditNote.document
		}
	case fixtures.KindDebitNote:
		if s.DebitNote != nil {
			doc = &s.DebitNote.document
		}
	case fixtures.KindDeliveryOrderTaxInvoice:
		if s.DeliveryOrderTaxInvoice != nil {
			doc = &s.DeliveryOrderTaxInvoice.document
		}
	case fixtures.KindReceiptTaxInvoice:
		if s.ReceiptTaxInvoice != nil {
			doc = &s.ReceiptTaxInvoice.document
		}
	default:
		return nil, false
	}
	return doc, true
}
