package query

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	graphql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"

	"github.com/etaxql/etaxql/internal/platform/httpx"
)

// Error codes placed in errors[].extensions.code.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeParseFailed      = "GRAPHQL_PARSE_FAILED"
	CodeValidationFailed = "GRAPHQL_VALIDATION_FAILED"
	CodeBadUserInput     = "BAD_USER_INPUT"
)

// Outcomes reported to the Recorder.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

const defaultMaxBodyBytes int64 = 1 << 20

// Executor runs a GraphQL request. *graphql.Schema satisfies it.
type Executor interface {
	Exec(ctx context.Context, queryString, operationName string, variables map[string]interface{}) *graphql.Response
}

// Recorder receives one outcome per handled request.
type Recorder interface {
	ObserveRequest(outcome string)
}

// Request is the GraphQL-over-HTTP request envelope.
type Request struct {
	Query         string                 `json:"query" validate:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type requestError struct {
	Message    string            `json:"message"`
	Extensions map[string]string `json:"extensions,omitempty"`
}

type errorResponse struct {
	Errors []requestError `json:"errors"`
}

// Handler serves GraphQL requests over HTTP.
type Handler struct {
	logger       *slog.Logger
	exec         Executor
	recorder     Recorder
	validate     *validator.Validate
	maxBodyBytes int64
}

// HandlerOption customises a Handler.
type HandlerOption func(*Handler)

// WithRecorder reports every request outcome to rec.
func WithRecorder(rec Recorder) HandlerOption {
	return func(h *Handler) {
		h.recorder = rec
	}
}

// WithMaxBodyBytes caps the request body size.
func WithMaxBodyBytes(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// NewHandler builds a Handler around exec.
func NewHandler(logger *slog.Logger, exec Executor, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		logger:       logger,
		exec:         exec,
		validate:     validator.New(),
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// MountRoutes registers the GraphQL endpoint on r.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/", h.handleGet)
	r.Post("/", h.handlePost)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	req := Request{
		Query:         params.Get("query"),
		OperationName: params.Get("operationName"),
	}
	if raw := params.Get("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
			h.reject(w, http.StatusBadRequest, "variables must be a JSON object")
			return
		}
	}
	h.serve(w, r, req)
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			h.reject(w, http.StatusUnsupportedMediaType, "invalid Content-Type header")
			return
		}
		mediaType = parsed
	}

	var req Request
	switch mediaType {
	case "application/json":
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&req); err != nil {
			h.rejectBody(w, err)
			return
		}
	case "application/graphql":
		body, err := io.ReadAll(r.Body)
		if err != nil {
			h.rejectBody(w, err)
			return
		}
		req.Query = string(body)
	default:
		h.reject(w, http.StatusUnsupportedMediaType, "unsupported Content-Type "+mediaType)
		return
	}
	h.serve(w, r, req)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, req Request) {
	req.Query = strings.TrimSpace(req.Query)
	if err := h.validate.Struct(req); err != nil {
		h.reject(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	resp := h.exec.Exec(r.Context(), req.Query, req.OperationName, req.Variables)
	operation := operationLabel(req.OperationName)
	reqID := middleware.GetReqID(r.Context())

	if resp.Data == nil && len(resp.Errors) > 0 {
		for _, qe := range resp.Errors {
			setCode(qe, classify(qe))
		}
		h.logger.Info("graphql request rejected",
			slog.String("request_id", reqID),
			slog.String("operation", operation),
			slog.String("error", resp.Errors[0].Message))
		h.observe(OutcomeRejected)
		httpx.JSON(w, http.StatusBadRequest, resp)
		return
	}
	if len(resp.Errors) > 0 {
		h.logger.Error("graphql execution errors",
			slog.String("request_id", reqID),
			slog.String("operation", operation),
			slog.Int("count", len(resp.Errors)),
			slog.String("error", resp.Errors[0].Message))
		h.observe(OutcomeError)
		httpx.JSON(w, http.StatusOK, resp)
		return
	}
	h.observe(OutcomeOK)
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) rejectBody(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.reject(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	h.reject(w, http.StatusBadRequest, "request body is not valid JSON")
}

func (h *Handler) reject(w http.ResponseWriter, status int, message string) {
	h.observe(OutcomeRejected)
	httpx.JSON(w, status, errorResponse{Errors: []requestError{{
		Message:    message,
		Extensions: map[string]string{"code": CodeBadRequest},
	}}})
}

func (h *Handler) observe(outcome string) {
	if h.recorder != nil {
		h.recorder.ObserveRequest(outcome)
	}
}

func classify(qe *gqlerrors.QueryError) string {
	switch {
	case strings.HasPrefix(qe.Message, "syntax error"):
		return CodeParseFailed
	case qe.Rule != "":
		return CodeValidationFailed
	default:
		return CodeBadUserInput
	}
}

func setCode(qe *gqlerrors.QueryError, code string) {
	if qe.Extensions == nil {
		qe.Extensions = map[string]interface{}{}
	}
	if _, ok := qe.Extensions["code"]; !ok {
		qe.Extensions["code"] = code
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "field " + strings.ToLower(verrs[0].Field()) + " is " + verrs[0].Tag()
	}
	return "invalid request"
}

func operationLabel(name string) string {
	if name == "" {
		return "anonymous"
	}
	return name
}
