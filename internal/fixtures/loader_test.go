package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFS() fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, entry := range DefaultCatalog {
		fsys[entry.File] = &fstest.MapFile{Data: []byte(`{"GetInvoice":{"No":"` + string(entry.Kind) + `-1"}}`)}
	}
	return fsys
}

func TestLoadUnwrapsEnvelope(t *testing.T) {
	store, err := Load(context.Background(), validFS(), DefaultCatalog)
	require.NoError(t, err)
	require.Equal(t, 5, store.Len())

	payload, ok := store.Payload(KindCreditNote)
	require.True(t, ok)
	assert.JSONEq(t, `{"No":"CreditNote-1"}`, string(payload))
	assert.Equal(t, DefaultCatalog.Kinds(), store.Kinds())
	assert.Equal(t, len(`{"No":"CreditNote-1"}`), store.Size(KindCreditNote))
}

func TestLoadFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(fstest.MapFS)
		want   error
	}{
		{
			name:   "missing file",
			mutate: func(fsys fstest.MapFS) { delete(fsys, "Debit_Note.json") },
			want:   ErrFixtureMissing,
		},
		{
			name: "malformed json",
			mutate: func(fsys fstest.MapFS) {
				fsys["Debit_Note.json"] = &fstest.MapFile{Data: []byte(`{"GetInvoice": {`)}
			},
			want: ErrFixtureMalformed,
		},
		{
			name: "array instead of object",
			mutate: func(fsys fstest.MapFS) {
				fsys["Debit_Note.json"] = &fstest.MapFile{Data: []byte(`[{"GetInvoice":{}}]`)}
			},
			want: ErrFixtureMalformed,
		},
		{
			name: "null document",
			mutate: func(fsys fstest.MapFS) {
				fsys["Debit_Note.json"] = &fstest.MapFile{Data: []byte(`null`)}
			},
			want: ErrFixtureMalformed,
		},
		{
			name: "envelope key absent",
			mutate: func(fsys fstest.MapFS) {
				fsys["Debit_Note.json"] = &fstest.MapFile{Data: []byte(`{"GetDebitNote":{"No":"DN-1"}}`)}
			},
			want: ErrEnvelopeMissing,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := validFS()
			tc.mutate(fsys)

			store, err := Load(context.Background(), fsys, DefaultCatalog)
			require.Error(t, err)
			assert.Nil(t, store)
			assert.ErrorIs(t, err, tc.want)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, KindDebitNote, loadErr.Kind)
			assert.Equal(t, "Debit_Note.json", loadErr.Path)
		})
	}
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, validFS(), DefaultCatalog)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	_, err := Load(context.Background(), validFS(), nil)
	assert.Error(t, err)
}

func TestPayloadIsCopied(t *testing.T) {
	store, err := Load(context.Background(), validFS(), DefaultCatalog)
	require.NoError(t, err)

	first, _ := store.Payload(KindPurchaseOrder)
	for i := range first {
		first[i] = 'x'
	}
	second, _ := store.Payload(KindPurchaseOrder)
	assert.JSONEq(t, `{"No":"PurchaseOrder-1"}`, string(second))

	_, ok := store.Payload(Kind("Quotation"))
	assert.False(t, ok)
}

func TestNullPayloadIsKept(t *testing.T) {
	fsys := validFS()
	fsys["PO.json"] = &fstest.MapFile{Data: []byte(`{"GetInvoice":null}`)}

	store, err := Load(context.Background(), fsys, DefaultCatalog)
	require.NoError(t, err)
	payload, ok := store.Payload(KindPurchaseOrder)
	require.True(t, ok)
	assert.Equal(t, "null", string(payload))
}

func TestLoadDirPicksUpReplacedFiles(t *testing.T) {
	dir := t.TempDir()
	for path, file := range validFS() {
		require.NoError(t, os.WriteFile(filepath.Join(dir, path), file.Data, 0o600))
	}

	store, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	payload, _ := store.Payload(KindReceiptTaxInvoice)
	assert.JSONEq(t, `{"No":"ReceiptTaxInvoice-1"}`, string(payload))

	replaced := `{"GetInvoice":{"No":"RT-2024-0002","Total":535}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ReceiptTax_Invoice.json"), []byte(replaced), 0o600))

	reloaded, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	payload, _ = reloaded.Payload(KindReceiptTaxInvoice)
	assert.JSONEq(t, `{"No":"RT-2024-0002","Total":535}`, string(payload))
}

func TestLoadDirRejectsMissingDirectory(t *testing.T) {
	_, err := LoadDir(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCatalogFile(t *testing.T) {
	file, ok := DefaultCatalog.File(KindDeliveryOrderTaxInvoice)
	assert.True(t, ok)
	assert.Equal(t, "Delivery_OrderTax_Invoice.json", file)

	_, ok = DefaultCatalog.File(Kind("Quotation"))
	assert.False(t, ok)
}
