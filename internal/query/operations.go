package query

import (
	"fmt"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/introspection"

	"github.com/etaxql/etaxql/internal/fixtures"
)

// Operation ties a document kind to its root query field. The kind doubles as
// the GraphQL type name of the field.
type Operation struct {
	Kind  fixtures.Kind
	Field string
}

// Operations lists the root query fields in schema order.
var Operations = []Operation{
	{Kind: fixtures.KindPurchaseOrder, Field: "getPurchaseOrder"},
	{Kind: fixtures.KindCreditNote, Field: "getCreditNote"},
	{Kind: fixtures.KindDebitNote, Field: "getDebitNote"},
	{Kind: fixtures.KindDeliveryOrderTaxInvoice, Field: "getDeliveryOrderTaxInvoice"},
	{Kind: fixtures.KindReceiptTaxInvoice, Field: "getReceiptTaxInvoice"},
}

// OperationFor looks up the operation serving kind.
func OperationFor(kind fixtures.Kind) (Operation, bool) {
	for _, op := range Operations {
		if op.Kind == kind {
			return op, true
		}
	}
	return Operation{}, false
}

// FullQuery renders a query document selecting every field the schema
// declares for the operation's type.
func (op Operation) FullQuery(schema *graphql.Schema) (string, error) {
	sel, err := SelectionSet(schema, string(op.Kind))
	if err != nil {
		return "", err
	}
	return "query Full" + string(op.Kind) + " { " + op.Field + " " + sel + " }", nil
}

// SelectionSet renders a selection set requesting every field of the named
// object type and of the object types nested under it, in declaration order.
func SelectionSet(schema *graphql.Schema, typeName string) (string, error) {
	types := map[string]*introspection.Type{}
	for _, t := range schema.Inspect().Types() {
		if name := t.Name(); name != nil {
			types[*name] = t
		}
	}
	var b strings.Builder
	if err := writeSelection(&b, types, typeName); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeSelection(b *strings.Builder, types map[string]*introspection.Type, name string) error {
	t, ok := types[name]
	if !ok || t.Kind() != "OBJECT" {
		return fmt.Errorf("query: %q is not an object type", name)
	}
	fields := t.Fields(&struct{ IncludeDeprecated bool }{IncludeDeprecated: true})
	if fields == nil {
		return fmt.Errorf("query: %q has no fields", name)
	}
	b.WriteString("{")
	for _, field := range *fields {
		b.WriteByte(' ')
		b.WriteString(field.Name())
		if named := namedType(field.Type()); named.Kind() == "OBJECT" {
			b.WriteByte(' ')
			if err := writeSelection(b, types, *named.Name()); err != nil {
				return err
			}
		}
	}
	b.WriteString(" }")
	return nil
}

func namedType(t *introspection.Type) *introspection.Type {
	for t.OfType() != nil {
		t = t.OfType()
	}
	return t
}
