package document

import (
	"github.com/etaxql/etaxql/internal/fixtures"
	"github.com/etaxql/etaxql/internal/scalar"
)

// Overview is the headline of a document used by operator tooling. Values
// that cannot be coerced are left zero.
type Overview struct {
	Kind     fixtures.Kind
	Present  bool
	No       string
	Date     string
	Currency string
	Lines    int
	Total    *float64
}

// Overview summarises the record loaded for kind.
func (s *Set) Overview(kind fixtures.Kind) (Overview, bool) {
	doc, ok := s.header(kind)
	if !ok {
		return Overview{}, false
	}
	ov := Overview{Kind: kind}
	if doc == nil {
		return ov, true
	}
	ov.Present = true
	ov.No = stringOf(doc.No())
	ov.Date = stringOf(doc.Date())
	ov.Currency = stringOf(doc.CurrencyCode())
	if lines, _ := doc.LineItems(); lines != nil {
		if items, _ := lines.Item(); items != nil {
			ov.Lines = len(*items)
		}
	}
	if total, err := doc.Total(); err == nil && total != nil {
		v := float64(*total)
		ov.Total = &v
	}
	return ov, true
}

func stringOf(s *scalar.String, err error) string {
	if err != nil || s == nil {
		return ""
	}
	return string(*s)
}
