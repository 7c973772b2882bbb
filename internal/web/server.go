// Package web serves the single-page upload-and-inspect UI. The server keeps
// no state between requests: the uploaded bytes travel back with the page as
// a hidden field, so changing a selection re-runs the whole pipeline.
package web

import (
	"context"
	_ "embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KaramelBytes/tablesift/internal/analysis"
	"github.com/KaramelBytes/tablesift/internal/dataset"
	"github.com/KaramelBytes/tablesift/internal/export"
	"github.com/KaramelBytes/tablesift/internal/ingest"
	"github.com/KaramelBytes/tablesift/internal/logger"
	"github.com/KaramelBytes/tablesift/internal/pipeline"
	"github.com/KaramelBytes/tablesift/internal/plot"
)

//go:embed page.html
var pageHTML string

// Options configures the server.
type Options struct {
	MaxUploadBytes int64
	PreviewRows    int
	Ingest         ingest.Options
	Plot           plot.Options
}

// Server renders the page and runs the pipeline per request.
type Server struct {
	opt  Options
	tmpl *template.Template
}

// New builds a Server; zero options fall back to defaults.
func New(opt Options) *Server {
	if opt.MaxUploadBytes <= 0 {
		opt.MaxUploadBytes = 200 << 20
	}
	if opt.PreviewRows <= 0 {
		opt.PreviewRows = 10
	}
	if opt.Plot.Title == "" {
		opt.Plot.Title = plot.DefaultOptions().Title
	}
	funcs := template.FuncMap{"num": func(v float64) string { return fmt.Sprintf("%.4g", v) }}
	return &Server{
		opt:  opt,
		tmpl: template.Must(template.New("page").Funcs(funcs).Parse(pageHTML)),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	return mux
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.L().Info("listening", "addr", addr)
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type option struct {
	Name     string
	Required bool
	X, Y     bool
}

type table struct {
	Header []string
	Rows   [][]string
	Total  int
}

type page struct {
	Info, Error  string
	FileName     string
	Payload      string
	Columns      []option
	Result       bool
	Uploaded     table
	Cleaned      table
	Status       string
	StatusOK     bool
	Stats        []analysis.NumSummary
	PlotURI      template.URL
	PlotError    string
	DownloadURI  template.URL
	DownloadName string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.render(w, http.StatusOK, &page{Info: "Please upload a dataset to proceed."})
	case http.MethodPost:
		s.handleUpload(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opt.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.render(w, http.StatusBadRequest, &page{Error: fmt.Sprintf("An error occurred while processing the file: %v", err)})
		return
	}
	name, data, err := uploaded(r)
	if err != nil {
		s.render(w, http.StatusBadRequest, &page{Error: fmt.Sprintf("An error occurred while processing the file: %v", err)})
		return
	}
	if data == nil {
		s.render(w, http.StatusOK, &page{Info: "Please upload a dataset to proceed."})
		return
	}

	res, err := pipeline.Run(r.Context(), pipeline.Input{
		FileName:   name,
		Data:       data,
		Ingest:     s.opt.Ingest,
		Required:   r.MultipartForm.Value["required"],
		SampleRows: s.opt.PreviewRows,
	})
	if err != nil {
		s.render(w, http.StatusOK, &page{Error: err.Error()})
		return
	}

	p := &page{
		Result:       true,
		FileName:     name,
		Payload:      base64.StdEncoding.EncodeToString(data),
		Uploaded:     preview(res.Raw, s.opt.PreviewRows),
		Cleaned:      preview(res.Cleaned, s.opt.PreviewRows),
		Status:       res.Status,
		StatusOK:     res.StatusOK,
		Stats:        res.Report.Stats,
		DownloadName: export.FileName,
		DownloadURI:  template.URL("data:" + export.ContentType + ";charset=utf-8;base64," + base64.StdEncoding.EncodeToString(res.CSV)),
	}

	// Axis choices are constrained to existing columns; anything else falls
	// back to the first column.
	names := res.Cleaned.Names()
	x := pick(r.FormValue("x"), names)
	y := pick(r.FormValue("y"), names)
	required := make(map[string]bool)
	for _, n := range r.MultipartForm.Value["required"] {
		required[n] = true
	}
	for _, n := range names {
		p.Columns = append(p.Columns, option{Name: n, Required: required[n], X: n == x, Y: n == y})
	}
	if x != "" {
		img, err := plot.Scatter(res.Cleaned, x, y, s.opt.Plot)
		if err != nil {
			p.PlotError = err.Error()
		} else {
			p.PlotURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img))
		}
	}
	s.render(w, http.StatusOK, p)
}

// uploaded returns the newly uploaded file, or the bytes carried back from
// the previous page. A nil slice means nothing was uploaded.
func uploaded(r *http.Request) (string, []byte, error) {
	f, hdr, err := r.FormFile("file")
	switch {
	case err == nil:
		defer f.Close()
		b, err := io.ReadAll(f)
		if err != nil {
			return "", nil, fmt.Errorf("read upload: %w", err)
		}
		if hdr.Size > 0 || len(b) > 0 {
			return hdr.Filename, b, nil
		}
	case !errors.Is(err, http.ErrMissingFile):
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	payload := r.FormValue("payload")
	if payload == "" {
		return "", nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode payload: %w", err)
	}
	return r.FormValue("name"), b, nil
}

func pick(want string, names []string) string {
	for _, n := range names {
		if n == want {
			return n
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return ""
}

func preview(ds *dataset.Dataset, n int) table {
	head := ds.Head(n)
	t := table{Header: ds.Names(), Total: ds.NumRows()}
	for i := 0; i < head.NumRows(); i++ {
		row := head.Row(i)
		vals := make([]string, len(row))
		for j, c := range row {
			if c.IsAbsent() {
				vals[j] = "None"
			} else {
				vals[j] = c.String()
			}
		}
		t.Rows = append(t.Rows, vals)
	}
	return t
}

func (s *Server) render(w http.ResponseWriter, status int, p *page) {
	var b strings.Builder
	if err := s.tmpl.Execute(&b, p); err != nil {
		logger.L().Error("render page", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, b.String())
}
