// Package web serves the upload form and the HTTP API in front of the
// conversion pipeline.
package web

import (
	"embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/thywilljoshua/doc-translate/internal/convert"
	"github.com/thywilljoshua/doc-translate/internal/translate"
)

//go:embed templates/*.html
var templateFS embed.FS

const defaultLang = "hi"

// Config for the HTTP server.
type Config struct {
	// Pipeline is copied per request; Target is taken from the form.
	Pipeline       convert.Config
	MaxUploadBytes int64
	Logger         *slog.Logger
}

func (c *Config) defaults() {
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 25 << 20
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Pipeline.Logger == nil {
		c.Pipeline.Logger = c.Logger
	}
}

type Server struct {
	cfg    Config
	tmpl   *template.Template
	router *chi.Mux
}

func New(cfg Config) (*Server, error) {
	cfg.defaults()
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s := &Server{cfg: cfg, tmpl: tmpl}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Post("/translate", s.handleTranslatePage)
	r.Post("/api/translate", s.handleTranslateAPI)
	r.Get("/api/languages", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, translate.Languages())
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.router = r
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.cfg.Logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

type pageData struct {
	Languages []translate.Language
	Accept    string
	Selected  string
	Error     string

	Result   convert.Result
	Language translate.Language
	Download template.URL
}

func (s *Server) newPage(selected string) pageData {
	if selected == "" {
		selected = defaultLang
	}
	return pageData{
		Languages: translate.Languages(),
		Accept:    strings.Join(convert.Extensions, ","),
		Selected:  selected,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index.html", s.newPage(""))
}

func (s *Server) handleTranslatePage(w http.ResponseWriter, r *http.Request) {
	out, err := s.process(w, r)
	if err != nil {
		// r.Form is only set when the upload was parsed
		page := s.newPage(r.Form.Get("lang"))
		page.Error = err.Error()
		s.render(w, statusFor(err), "index.html", page)
		return
	}

	page := s.newPage(out.lang.Code)
	page.Result = out.result
	page.Language = out.lang
	page.Download = template.URL("data:" + convert.DocxContentType + ";base64," + base64.StdEncoding.EncodeToString(out.docx))
	s.render(w, http.StatusOK, "result.html", page)
}

func (s *Server) handleTranslateAPI(w http.ResponseWriter, r *http.Request) {
	out, err := s.process(w, r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	h := w.Header()
	h.Set("Content-Type", convert.DocxContentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.result.DownloadName))
	h.Set("X-Translate-Path", out.result.Kind.String())
	h.Set("X-Translate-Units", strconv.Itoa(out.result.Units))
	h.Set("X-Translate-Failed", strconv.Itoa(out.result.Failed))
	w.WriteHeader(http.StatusOK)
	w.Write(out.docx)
}

type processed struct {
	result convert.Result
	lang   translate.Language
	docx   []byte
}

// errTooLarge and errBadRequest carry the HTTP status for upload failures.
var (
	errTooLarge   = errors.New("upload too large")
	errBadRequest = errors.New("bad request")
)

// process reads the multipart upload and runs the pipeline. The output is
// read into memory and the scratch directory removed before returning.
func (s *Server) process(w http.ResponseWriter, r *http.Request) (processed, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
			return processed{}, fmt.Errorf("%w: limit is %d MB", errTooLarge, s.cfg.MaxUploadBytes>>20)
		}
		return processed{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	lang, err := translate.Lookup(r.FormValue("lang"))
	if err != nil {
		return processed{}, err
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		return processed{}, fmt.Errorf("%w: missing file", errBadRequest)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return processed{}, fmt.Errorf("read upload: %w", err)
	}

	cfg := s.cfg.Pipeline
	cfg.Target = lang.Code
	res, cleanup, err := convert.Run(r.Context(), hdr.Filename, data, cfg)
	if err != nil {
		if !errors.Is(err, convert.ErrUnsupported) {
			s.cfg.Logger.Error("translation failed", "file", hdr.Filename, "lang", lang.Code, "error", err)
		}
		return processed{}, err
	}
	defer cleanup()

	docx, err := os.ReadFile(res.OutputPath)
	if err != nil {
		return processed{}, fmt.Errorf("read output: %w", err)
	}
	return processed{result: res, lang: lang, docx: docx}, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, convert.ErrUnsupported):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, translate.ErrUnknownLanguage), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) render(w http.ResponseWriter, code int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.cfg.Logger.Error("render template", "template", name, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
