package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/etaxql/etaxql/internal/document"
	"github.com/etaxql/etaxql/internal/fixtures"
	"github.com/etaxql/etaxql/internal/query"
)

// ExitDrift is returned by CheckCommand when a fixture is not served verbatim.
const ExitDrift = 10

// CheckOptions defines available flags for the check command.
type CheckOptions struct {
	Dir        string
	JSONOutput bool
	Language   language.Tag
	Stdout     io.Writer
	Stderr     io.Writer
}

// CheckSummary describes the JSON response for check.
type CheckSummary struct {
	OK        bool            `json:"ok"`
	Dir       string          `json:"dir"`
	Documents []CheckDocument `json:"documents"`
}

// CheckDocument reports one fixture.
type CheckDocument struct {
	Kind     fixtures.Kind `json:"kind"`
	Field    string        `json:"field"`
	Bytes    int           `json:"bytes"`
	Present  bool          `json:"present"`
	No       string        `json:"no,omitempty"`
	Date     string        `json:"date,omitempty"`
	Currency string        `json:"currency,omitempty"`
	Lines    int           `json:"lines"`
	Total    *float64      `json:"total,omitempty"`
	Drift    []query.Drift `json:"drift,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
}

// CheckCommand loads the fixtures in opts.Dir, runs a full query for every
// document and reports anything the schema does not serve back unchanged.
func CheckCommand(ctx context.Context, opts CheckOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if strings.TrimSpace(opts.Dir) == "" {
		_, _ = fmt.Fprintln(opts.Stderr, "check: --dir is required")
		return 1
	}
	if opts.Language == language.Und {
		opts.Language = language.Thai
	}

	store, err := fixtures.LoadDir(ctx, opts.Dir)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "check: %v\n", err)
		return 1
	}
	docs, err := document.Decode(store)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "check: %v\n", err)
		return 1
	}
	schema, err := query.NewSchema(docs, query.Options{})
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "check: %v\n", err)
		return 1
	}
	reports, err := query.Verify(ctx, schema, store)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "check: %v\n", err)
		return 1
	}

	summary := buildCheckSummary(opts.Dir, store, docs, reports)
	if opts.JSONOutput {
		enc := json.NewEncoder(opts.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "check: encode json: %v\n", err)
			return 1
		}
	} else {
		renderCheckHuman(opts.Stdout, message.NewPrinter(opts.Language), summary)
	}
	if !summary.OK {
		return ExitDrift
	}
	return 0
}

func buildCheckSummary(dir string, store *fixtures.Store, docs *document.Set, reports []query.Report) CheckSummary {
	summary := CheckSummary{OK: true, Dir: dir, Documents: make([]CheckDocument, 0, len(reports))}
	for _, report := range reports {
		doc := CheckDocument{
			Kind:   report.Kind,
			Field:  report.Field,
			Bytes:  store.Size(report.Kind),
			Drift:  report.Drift,
			Errors: report.Errors,
		}
		if ov, ok := docs.Overview(report.Kind); ok {
			doc.Present = ov.Present
			doc.No = ov.No
			doc.Date = ov.Date
			doc.Currency = ov.Currency
			doc.Lines = ov.Lines
			doc.Total = ov.Total
		}
		if !report.Clean() {
			summary.OK = false
		}
		summary.Documents = append(summary.Documents, doc)
	}
	return summary
}

func renderCheckHuman(out io.Writer, p *message.Printer, summary CheckSummary) {
	_, _ = fmt.Fprintf(out, "Fixture check for %s\n", summary.Dir)
	drifted := 0
	for _, doc := range summary.Documents {
		if !doc.Present {
			_, _ = fmt.Fprintf(out, " - %s: null document\n", doc.Kind)
		} else {
			total := "-"
			if doc.Total != nil {
				total = p.Sprintf("%.2f", *doc.Total)
			}
			_, _ = fmt.Fprintf(out, " - %s %s (%s): %d line(s), total %s %s\n",
				doc.Kind, doc.No, doc.Date, doc.Lines, total, doc.Currency)
		}
		for _, msg := range doc.Errors {
			_, _ = fmt.Fprintf(out, "     error: %s\n", msg)
		}
		for _, d := range doc.Drift {
			_, _ = fmt.Fprintf(out, "     drift: %s %s\n", d.Path, d.Reason)
		}
		if len(doc.Drift) > 0 || len(doc.Errors) > 0 {
			drifted++
		}
	}
	if drifted == 0 {
		_, _ = fmt.Fprintf(out, "All %d documents are served unchanged.\n", len(summary.Documents))
		return
	}
	_, _ = fmt.Fprintf(out, "%d of %d document(s) drift from their fixtures.\n", drifted, len(summary.Documents))
}
