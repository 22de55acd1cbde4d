package document

import "github.com/etaxql/etaxql/internal/scalar"

// Tax is a tax code with its rate and computed amount.
type Tax struct{ object }

func (t *Tax) Code() (*scalar.String, error)  { return t.str("Code") }
func (t *Tax) Rate() (*scalar.Float, error)   { return t.float("Rate") }
func (t *Tax) Amount() (*scalar.Float, error) { return t.float("Amount") }

// Taxes wraps the document-level tax on every type except PurchaseOrder.
type Taxes struct{ object }

func (t *Taxes) Tax() (*Tax, error) {
	o, err := t.child("Tax")
	if o == nil {
		return nil, err
	}
	return &Tax{o}, nil
}

// LineItems wraps the item list.
type LineItems struct{ object }

func (l *LineItems) Item() (*[]*Item, error) {
	elems, err := l.list("Item")
	if elems == nil {
		return nil, err
	}
	items := make([]*Item, len(elems))
	for i, o := range elems {
		if o != nil {
			items[i] = &Item{o}
		}
	}
	return &items, nil
}

// Item is a single document line.
type Item struct{ object }

func (i *Item) No() (*scalar.Int, error)             { return i.integer("No") }
func (i *Item) ID() (*scalar.Int, error)             { return i.integer("Id") }
func (i *Item) Name() (*scalar.String, error)        { return i.str("Name") }
func (i *Item) Description() (*scalar.String, error) { return i.str("Description") }
func (i *Item) Quantity() (*scalar.Int, error)       { return i.integer("Quantity") }
func (i *Item) Unit() (*scalar.String, error)        { return i.str("Unit") }
func (i *Item) Price() (*scalar.Float, error)        { return i.float("Price") }
func (i *Item) Allowances() (*scalar.String, error)  { return i.str("Allowances") }
func (i *Item) Amount() (*scalar.Float, error)       { return i.float("Amount") }

func (i *Item) Tax() (*Tax, error) {
	o, err := i.child("Tax")
	if o == nil {
		return nil, err
	}
	return &Tax{o}, nil
}

func (i *Item) TaxAmount() (*scalar.Float, error) { return i.float("TaxAmount") }
func (i *Item) Total() (*scalar.Float, error)     { return i.float("Total") }

// Summary holds the label/amount rows printed under the lines.
type Summary struct{ object }

func (s *Summary) Data() (*[]*Data, error) {
	elems, err := s.list("Data")
	if elems == nil {
		return nil, err
	}
	rows := make([]*Data, len(elems))
	for i, o := range elems {
		if o != nil {
			rows[i] = &Data{o}
		}
	}
	return &rows, nil
}

// Data is one summary row.
type Data struct{ object }

func (d *Data) Label() (*scalar.String, error) { return d.str("Label") }
func (d *Data) Amount() (*scalar.Float, error) { return d.float("Amount") }

// Settings are renderer display flags, passed through untouched.
type Settings struct{ object }

func (s *Settings) TaxInclusive() (*scalar.Boolean, error)    { return s.boolean("TaxInclusive") }
func (s *Settings) InlineTax() (*scalar.Boolean, error)       { return s.boolean("InlineTax") }
func (s *Settings) InlineAllowance() (*scalar.Boolean, error) { return s.boolean("InlineAllowance") }
func (s *Settings) CumulativeAllowance() (*scalar.Boolean, error) {
	return s.boolean("CumulativeAllowance")
}

// References points at the document being corrected or settled.
type References struct{ object }

func (r *References) TypeCode() (*scalar.String, error) { return r.str("TypeCode") }
func (r *References) No() (*scalar.String, error)       { return r.str("No") }
func (r *References) Date() (*scalar.String, error)     { return r.str("Date") }
