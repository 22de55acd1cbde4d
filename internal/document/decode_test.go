package document

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etaxql/etaxql/internal/fixtures"
	"github.com/etaxql/etaxql/internal/scalar"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

type mapSource map[fixtures.Kind]string

func (m mapSource) Payload(kind fixtures.Kind) (json.RawMessage, bool) {
	payload, ok := m[kind]
	if !ok {
		return nil, false
	}
	return json.RawMessage(payload), true
}

func baseSource() mapSource {
	return mapSource{
		fixtures.KindPurchaseOrder: `{
			"No": "PO-0001",
			"Total": 1000.50,
			"References": "QT-77",
			"Taxes": {"Code": "VAT", "Rate": 7, "Amount": 65.45},
			"Seller": {"Name": "ร้านค้าตัวอย่าง", "Branch": "00000"},
			"LineItems": {"Item": [
				{"No": 1, "Name": "ปากกา", "Quantity": 10, "Price": 50.05},
				{"No": 2, "Name": "สมุด", "Quantity": 5, "Price": 100}
			]}
		}`,
		fixtures.KindCreditNote: `{
			"No": "CN-1",
			"References": {"TypeCode": "388", "No": "INV-1", "Date": "2023-01-01"},
			"Taxes": {"Tax": {"Code": "VAT", "Rate": 7, "Amount": 7}}
		}`,
		fixtures.KindDebitNote:               `{"No": "DN-1", "NonVat": 0}`,
		fixtures.KindDeliveryOrderTaxInvoice: `{"No": "DO-1", "FormOfPayment": "เงินสด"}`,
		fixtures.KindReceiptTaxInvoice:       `null`,
	}
}

func TestDecodePurchaseOrderScenario(t *testing.T) {
	set, err := Decode(baseSource())
	require.NoError(t, err)

	po := set.PurchaseOrder
	require.NotNil(t, po)
	assert.Equal(t, scalar.String("PO-0001"), *must(po.No()))
	assert.Equal(t, scalar.Float(1000.50), *must(po.Total()))
	assert.Equal(t, scalar.String("QT-77"), *must(po.References()))

	lines := must(po.LineItems())
	require.NotNil(t, lines)
	items := must(lines.Item())
	require.NotNil(t, items)
	require.Len(t, *items, 2)
	assert.Equal(t, scalar.Float(50.05), *must((*items)[0].Price()))
	assert.Equal(t, scalar.Float(65.45), *must(must(po.Taxes()).Amount()))
	assert.Equal(t, scalar.Int(0), *must(must(po.Seller()).Branch()))
}

func TestDecodeCreditNoteReferences(t *testing.T) {
	set, err := Decode(baseSource())
	require.NoError(t, err)

	refs := must(set.CreditNote.References())
	require.NotNil(t, refs)
	assert.Equal(t, scalar.String("388"), *must(refs.TypeCode()))
	assert.Equal(t, scalar.String("INV-1"), *must(refs.No()))
	assert.Equal(t, scalar.String("2023-01-01"), *must(refs.Date()))
	assert.Equal(t, scalar.Float(7), *must(must(must(set.CreditNote.Taxes()).Tax()).Amount()))
}

func TestDecodeOmittedFieldsStayNil(t *testing.T) {
	set, err := Decode(baseSource())
	require.NoError(t, err)

	assert.Nil(t, must(must(set.PurchaseOrder.Seller()).Fax()))
	assert.Nil(t, must(set.PurchaseOrder.Buyer()))
	assert.Nil(t, must(set.DebitNote.Summary()))
	assert.Nil(t, set.ReceiptTaxInvoice)
	assert.NoError(t, set.Err(fixtures.KindReceiptTaxInvoice))
}

func TestDecodeMissingPayload(t *testing.T) {
	src := baseSource()
	delete(src, fixtures.KindDebitNote)
	_, err := Decode(src)
	assert.ErrorIs(t, err, ErrPayloadMissing)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, fixtures.KindDebitNote, decodeErr.Kind)
}

func TestUncoercibleValuesFailOnlyTheirField(t *testing.T) {
	src := baseSource()
	src[fixtures.KindPurchaseOrder] = `{
		"No": "PO-1",
		"References": {"TypeCode": "388"},
		"Seller": {"Name": "ร้านค้า", "PostalCode": "10120-A"},
		"LineItems": {"Item": [{"No": 1, "Quantity": 1.5}, null]}
	}`
	set, err := Decode(src)
	require.NoError(t, err)

	po := set.PurchaseOrder
	require.NotNil(t, po)
	assert.Equal(t, scalar.String("PO-1"), *must(po.No()))

	refs, err := po.References()
	assert.Nil(t, refs)
	assert.ErrorIs(t, err, scalar.ErrNotRepresentable)
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "References", fieldErr.Field)

	seller := must(po.Seller())
	assert.Equal(t, scalar.String("ร้านค้า"), *must(seller.Name()))
	_, err = seller.PostalCode()
	assert.ErrorIs(t, err, scalar.ErrNotRepresentable)

	items := must(must(po.LineItems()).Item())
	require.Len(t, *items, 2)
	assert.Nil(t, (*items)[1])
	assert.Equal(t, scalar.Int(1), *must((*items)[0].No()))
	_, err = (*items)[0].Quantity()
	assert.ErrorIs(t, err, scalar.ErrNotRepresentable)
}

func TestMisshapenRecordsFailOnlyTheirField(t *testing.T) {
	src := baseSource()
	src[fixtures.KindCreditNote] = `{"No": "CN-1", "Seller": "not an object", "LineItems": {"Item": {"No": 1}}}`
	set, err := Decode(src)
	require.NoError(t, err)

	_, err = set.CreditNote.Seller()
	assert.ErrorIs(t, err, ErrNotObject)
	_, err = must(set.CreditNote.LineItems()).Item()
	assert.ErrorIs(t, err, ErrNotList)
	assert.Equal(t, scalar.String("CN-1"), *must(set.CreditNote.No()))
}

func TestNonObjectPayloadIsRecordedPerKind(t *testing.T) {
	src := baseSource()
	src[fixtures.KindDebitNote] = `["DN-1"]`
	set, err := Decode(src)
	require.NoError(t, err)

	assert.Nil(t, set.DebitNote)
	assert.ErrorIs(t, set.Err(fixtures.KindDebitNote), ErrNotObject)
	assert.NoError(t, set.Err(fixtures.KindCreditNote))
}

func TestDecodeRepositoryFixtures(t *testing.T) {
	store, err := fixtures.LoadDir(context.Background(), "../../data")
	require.NoError(t, err)

	set, err := Decode(store)
	require.NoError(t, err)

	for _, kind := range store.Kinds() {
		ov, ok := set.Overview(kind)
		require.True(t, ok, kind)
		assert.True(t, ov.Present, kind)
		assert.NotEmpty(t, ov.No, kind)
		assert.Equal(t, "THB", ov.Currency, kind)
		assert.Equal(t, 2, ov.Lines, kind)
		require.NotNil(t, ov.Total, kind)
		assert.InDelta(t, 5301.85, *ov.Total, 0.001, kind)
	}
}

func TestOverviewOfNullDocument(t *testing.T) {
	set, err := Decode(baseSource())
	require.NoError(t, err)

	ov, ok := set.Overview(fixtures.KindReceiptTaxInvoice)
	require.True(t, ok)
	assert.False(t, ov.Present)
	assert.Nil(t, ov.Total)

	_, ok = set.Overview(fixtures.Kind("Quotation"))
	assert.False(t, ok)
}

func TestOverviewIgnoresFieldErrors(t *testing.T) {
	src := baseSource()
	src[fixtures.KindDebitNote] = `{"No": "DN-1", "Total": "n/a", "LineItems": {"Item": [{}, {}, {}]}}`
	set, err := Decode(src)
	require.NoError(t, err)

	ov, ok := set.Overview(fixtures.KindDebitNote)
	require.True(t, ok)
	assert.True(t, ov.Present)
	assert.Equal(t, "DN-1", ov.No)
	assert.Equal(t, 3, ov.Lines)
	assert.Nil(t, ov.Total)
}
