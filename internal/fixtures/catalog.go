package fixtures

// Kind identifies one of the served document types.
type Kind string

const (
	KindPurchaseOrder           Kind = "PurchaseOrder"
	KindCreditNote              Kind = "CreditNote"
	KindDebitNote               Kind = "DebitNote"
	KindDeliveryOrderTaxInvoice Kind = "DeliveryOrderTaxInvoice"
	KindReceiptTaxInvoice       Kind = "ReceiptTaxInvoice"
)

// EnvelopeKey is the top-level property wrapping every fixture payload.
const EnvelopeKey = "GetInvoice"

// Entry binds a document kind to the file holding it.
type Entry struct {
	Kind Kind
	File string
}

// Catalog is the ordered list of fixtures to load.
type Catalog []Entry

// DefaultCatalog lists the five fixture files served by etaxql.
var DefaultCatalog = Catalog{
	{Kind: KindPurchaseOrder, File: "PO.json"},
	{Kind: KindCreditNote, File: "Credit_Note.json"},
	{Kind: KindDebitNote, File: "Debit_Note.json"},
	{Kind: KindDeliveryOrderTaxInvoice, File: "Delivery_OrderTax_Invoice.json"},
	{Kind: KindReceiptTaxInvoice, File: "ReceiptTax_Invoice.json"},
}

// Kinds returns the catalog kinds in order.
func (c Catalog) Kinds() []Kind {
	kinds := make([]Kind, len(c))
	for i, entry := range c {
		kinds[i] = entry.Kind
	}
	return kinds
}

// File returns the file name registered for kind.
func (c Catalog) File(kind Kind) (string, bool) {
	for _, entry := range c {
		if entry.Kind == kind {
			return entry.File, true
		}
	}
	return "", false
}
