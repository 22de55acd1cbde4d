package query_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/require"

	"github.com/etaxql/etaxql/internal/document"
	"github.com/etaxql/etaxql/internal/fixtures"
	"github.com/etaxql/etaxql/internal/query"
	_ "github.com/etaxql/etaxql/testing"
)

const repoFixtureDir = "../../data"

type countingObserver struct {
	mu    sync.Mutex
	calls map[fixtures.Kind]int
}

func (o *countingObserver) ObserveResolve(kind fixtures.Kind) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.calls == nil {
		o.calls = map[fixtures.Kind]int{}
	}
	o.calls[kind]++
}

func (o *countingObserver) total() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, c := range o.calls {
		n += c
	}
	return n
}

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *outcomeRecorder) ObserveRequest(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *outcomeRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.outcomes) == 0 {
		return ""
	}
	return r.outcomes[len(r.outcomes)-1]
}

type testServer struct {
	router   http.Handler
	schema   *graphql.Schema
	store    *fixtures.Store
	observer *countingObserver
	recorder *outcomeRecorder
}

func loadRepoStore(t *testing.T) *fixtures.Store {
	t.Helper()
	store, err := fixtures.LoadDir(context.Background(), repoFixtureDir)
	require.NoError(t, err)
	return store
}

func storeFromMap(t *testing.T, payloads map[fixtures.Kind]string) *fixtures.Store {
	t.Helper()
	fsys := fstest.MapFS{}
	for _, entry := range fixtures.DefaultCatalog {
		payload, ok := payloads[entry.Kind]
		if !ok {
			payload = "null"
		}
		fsys[entry.File] = &fstest.MapFile{Data: []byte(`{"GetInvoice":` + payload + `}`)}
	}
	store, err := fixtures.Load(context.Background(), fsys, fixtures.DefaultCatalog)
	require.NoError(t, err)
	return store
}

func newTestServer(t *testing.T, store *fixtures.Store, opts query.Options, handlerOpts ...query.HandlerOption) *testServer {
	t.Helper()
	docs, err := document.Decode(store)
	require.NoError(t, err)

	observer := &countingObserver{}
	opts.Observer = observer
	schema, err := query.NewSchema(docs, opts)
	require.NoError(t, err)

	recorder := &outcomeRecorder{}
	handlerOpts = append([]query.HandlerOption{query.WithRecorder(recorder)}, handlerOpts...)
	handler := query.NewHandler(nil, schema, handlerOpts...)

	r := chi.NewRouter()
	r.Route("/graphql", handler.MountRoutes)
	return &testServer{router: r, schema: schema, store: store, observer: observer, recorder: recorder}
}

func (s *testServer) fullQuery(t *testing.T, op query.Operation) string {
	t.Helper()
	q, err := op.FullQuery(s.schema)
	require.NoError(t, err)
	return q
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Path       []any          `json:"path"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func (s *testServer) post(t *testing.T, body any) (*httptest.ResponseRecorder, gqlResponse) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return s.do(t, req)
}

func (s *testServer) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, gqlResponse) {
	t.Helper()
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	var resp gqlResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return rr, resp
}
