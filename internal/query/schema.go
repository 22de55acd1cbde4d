// Package query exposes the loaded documents through a GraphQL schema.
package query

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/etaxql/etaxql/internal/document"
)

//go:embed schema.graphql
var sdl string

// SDL returns the schema definition served by etaxql.
func SDL() string {
	return sdl
}

// Options tunes schema execution.
type Options struct {
	MaxDepth      int
	Introspection bool
	Logger        *slog.Logger
	Observer      Observer
}

// NewSchema parses the SDL and binds it to the decoded documents. Every object
// field resolves through a record method, so a fixture value that does not fit
// its type nulls that field and adds an entry to errors.
func NewSchema(docs *document.Set, opts Options) (*graphql.Schema, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	schemaOpts := []graphql.SchemaOpt{
		graphql.Logger(panicLogger{logger: logger}),
	}
	if opts.MaxDepth > 0 {
		schemaOpts = append(schemaOpts, graphql.MaxDepth(opts.MaxDepth))
	}
	if !opts.Introspection {
		schemaOpts = append(schemaOpts, graphql.DisableIntrospection())
	}
	schema, err := graphql.ParseSchema(sdl, NewResolver(docs, opts.Observer), schemaOpts...)
	if err != nil {
		return nil, fmt.Errorf("query: parse schema: %w", err)
	}
	return schema, nil
}

type panicLogger struct {
	logger *slog.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.ErrorContext(ctx, "graphql resolver panic", slog.Any("panic", value))
}
