// Package ui serves a small web front end and a JSON endpoint for
// evaluating expressions.
package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/dhamidi/calc/calc"
	"github.com/dhamidi/calc/parser"
	"github.com/tliron/commonlog"
)

//go:embed templates
var embeddedFS embed.FS

// maxExprBytes bounds request bodies; expressions are single lines.
const maxExprBytes = 64 << 10

type Option func(*Server)

// WithParserOptions applies opts to every evaluation.
func WithParserOptions(opts ...parser.Option) Option {
	return func(s *Server) {
		s.parserOpts = append(s.parserOpts, opts...)
	}
}

type Server struct {
	templates  *template.Template
	mux        *http.ServeMux
	parserOpts []parser.Option
	log        commonlog.Logger
}

func NewServer(opts ...Option) (*Server, error) {
	tmpl, err := template.ParseFS(embeddedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates: tmpl,
		mux:       http.NewServeMux(),
		log:       commonlog.GetLogger("calc.ui"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("GET /eval", s.handleEval)
	s.mux.HandleFunc("POST /eval", s.handleEval)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Result is the outcome of one evaluation.
type Result struct {
	Expr  string `json:"expr"`
	Value *int64 `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
	Stage string `json:"stage,omitempty"`
}

func (s *Server) evaluate(expr string) Result {
	expr = strings.TrimSpace(expr)
	res := Result{Expr: expr}
	value, err := calc.Run(expr, s.parserOpts...)
	if err != nil {
		res.Error = err.Error()
		res.Stage = calc.Stage(err)
		s.log.Debugf("%q: %s error: %v", expr, res.Stage, err)
		return res
	}
	res.Value = &value
	return res
}

type evalRequest struct {
	Expr string `json:"expr"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	var req evalRequest

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxExprBytes)
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
				return
			}
		} else {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
				return
			}
			req.Expr = r.FormValue("expr")
		}
	} else {
		req.Expr = r.URL.Query().Get("expr")
	}

	res := s.evaluate(req.Expr)

	w.Header().Set("Content-Type", "application/json")
	if res.Error != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.log.Errorf("encode response: %v", err)
	}
}

type indexData struct {
	Result
	Evaluated bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var data indexData
	if r.URL.Query().Has("expr") {
		data.Result = s.evaluate(r.URL.Query().Get("expr"))
		data.Evaluated = true
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.log.Errorf("render index: %v", err)
	}
}
