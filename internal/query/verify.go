package query

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/errors"

	"github.com/etaxql/etaxql/internal/document"
	"github.com/etaxql/etaxql/internal/fixtures"
)

// Drift is one difference between a fixture payload and what the schema
// serves for it.
type Drift struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Report is the verification outcome for one document kind.
type Report struct {
	Kind   fixtures.Kind `json:"kind"`
	Field  string        `json:"field"`
	Drift  []Drift       `json:"drift,omitempty"`
	Errors []string      `json:"errors,omitempty"`
}

// Clean reports whether the document is served exactly as stored.
func (r Report) Clean() bool {
	return len(r.Drift) == 0 && len(r.Errors) == 0
}

// Verify executes a full-selection query for every operation and compares the
// served document with its fixture payload. Keys the schema does not declare
// and values changed by scalar coercion show up as drift; values coercion
// rejects show up as errors as well.
func Verify(ctx context.Context, schema *graphql.Schema, src document.PayloadSource) ([]Report, error) {
	reports := make([]Report, 0, len(Operations))
	for _, op := range Operations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report := Report{Kind: op.Kind, Field: op.Field}

		payload, ok := src.Payload(op.Kind)
		if !ok {
			report.Errors = append(report.Errors, "fixture payload missing")
			reports = append(reports, report)
			continue
		}

		q, err := op.FullQuery(schema)
		if err != nil {
			return nil, err
		}
		resp := schema.Exec(ctx, q, "", nil)
		for _, qe := range resp.Errors {
			report.Errors = append(report.Errors, errorMessage(qe))
		}
		if resp.Data == nil {
			reports = append(reports, report)
			continue
		}

		var data map[string]json.RawMessage
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return nil, fmt.Errorf("query: verify %s: decode response: %w", op.Kind, err)
		}
		var want, got any
		if err := json.Unmarshal(payload, &want); err != nil {
			return nil, fmt.Errorf("query: verify %s: decode payload: %w", op.Kind, err)
		}
		if err := json.Unmarshal(data[op.Field], &got); err != nil {
			return nil, fmt.Errorf("query: verify %s: decode served document: %w", op.Kind, err)
		}
		compare(op.Field, want, got, &report.Drift)
		reports = append(reports, report)
	}
	return reports, nil
}

func compare(path string, want, got any, drift *[]Drift) {
	switch w := want.(type) {
	case map[string]any:
		g, ok := got.(map[string]any)
		if !ok {
			*drift = append(*drift, Drift{Path: path, Reason: fmt.Sprintf("served %s, fixture has an object", describe(got))})
			return
		}
		keys := make([]string, 0, len(w))
		for key := range w {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			child := path + "." + key
			served, ok := g[key]
			if !ok {
				*drift = append(*drift, Drift{Path: child, Reason: "not exposed by schema"})
				continue
			}
			compare(child, w[key], served, drift)
		}
	case []any:
		g, ok := got.([]any)
		if !ok || len(g) != len(w) {
			*drift = append(*drift, Drift{Path: path, Reason: fmt.Sprintf("served %s, fixture has a list of %d", describe(got), len(w))})
			return
		}
		for i := range w {
			compare(path+"["+strconv.Itoa(i)+"]", w[i], g[i], drift)
		}
	default:
		if !reflect.DeepEqual(want, got) {
			*drift = append(*drift, Drift{Path: path, Reason: fmt.Sprintf("served %s, fixture has %s", describe(got), describe(want))})
		}
	}
}

func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return fmt.Sprintf("a list of %d", len(t))
	case string:
		return strconv.Quote(t)
	default:
		return fmt.Sprint(t)
	}
}

func errorMessage(qe *errors.QueryError) string {
	if len(qe.Path) == 0 {
		return qe.Message
	}
	parts := make([]string, len(qe.Path))
	for i, p := range qe.Path {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ".") + ": " + qe.Message
}
