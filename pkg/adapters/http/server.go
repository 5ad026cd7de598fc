package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/dag2langgraph/pkg/codec"
	"github.com/aretw0/dag2langgraph/pkg/domain"
)

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
const DefaultMaxBodyBytes = 4 << 20

// Converter defines the conversion service exposed over HTTP.
type Converter interface {
	ConvertDocument(ctx context.Context, data []byte, format codec.Format, indent int) ([]byte, error)
	Validate(ctx context.Context, data []byte, format codec.Format) error
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Server holds the HTTP handlers.
type Server struct {
	conv    Converter
	indent  int
	maxBody int64
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithIndent sets the default JSON indentation of converted graphs.
func WithIndent(indent int) Option {
	return func(s *Server) {
		s.indent = indent
	}
}

// WithMaxBodyBytes limits request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the converter.
func NewHandler(conv Converter, opts ...Option) http.Handler {
	s := &Server{
		conv:    conv,
		indent:  codec.DefaultIndent,
		maxBody: DefaultMaxBodyBytes,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	r.Post("/convert", s.Convert)
	r.Post("/validate", s.Validate)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Convert handles the POST /convert request.
// The body is a DAG document; ?indent=N overrides the default indentation.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	data, format, ok := s.readBody(w, r)
	if !ok {
		return
	}

	indent := s.indent
	if q := r.URL.Query().Get("indent"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 || n > 8 {
			writeError(w, http.StatusBadRequest, "invalid_request", "indent must be an integer between 0 and 8")
			return
		}
		indent = n
	}

	out, err := s.conv.ConvertDocument(r.Context(), data, format, indent)
	if err != nil {
		s.writeConversionError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(out); err != nil {
		s.logger.Error("Convert response write failed", "error", err)
	}
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	data, format, ok := s.readBody(w, r)
	if !ok {
		return
	}
	if err := s.conv.Validate(r.Context(), data, format); err != nil {
		s.writeConversionError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, codec.Format, bool) {
	format := codec.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := codec.ParseFormat(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return nil, "", false
		}
		format = f
	} else if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = codec.FormatYAML
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "invalid_request", "request body too large")
			return nil, "", false
		}
		writeError(w, http.StatusBadRequest, "invalid_request", "failed to read request body")
		s.logger.Warn("Request body read failed", "error", err, "path", r.URL.Path)
		return nil, "", false
	}
	return data, format, true
}

func (s *Server) writeConversionError(w http.ResponseWriter, r *http.Request, err error) {
	if kind, ok := domain.KindOf(err); ok {
		writeError(w, http.StatusUnprocessableEntity, string(kind), err.Error())
		return
	}
	var decodeErr *codec.DecodeError
	if errors.As(err, &decodeErr) {
		writeError(w, http.StatusBadRequest, "invalid_input", decodeErr.Error())
		return
	}
	s.logger.Error("Conversion failed", "error", err, "path", r.URL.Path)
	writeError(w, http.StatusInternalServerError, "internal", "internal error")
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: kind, Message: message})
}
