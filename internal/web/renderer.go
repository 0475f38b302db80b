// Package web renders the server-side pages of the hospital site.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zatekoja/hospitalsite/internal/infrastructure/observability"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	headerFragment = "components/header.html"
	footerFragment = "components/footer.html"
	yearToken      = "{{year}}"
)

type layout struct {
	Title  string
	Header template.HTML
	Footer template.HTML
	Body   any
}

// Renderer executes page templates inside the shared layout. Header and
// footer fragments are read from the public directory on every render so
// edits show up without a restart.
type Renderer struct {
	publicDir string
	pages     map[string]*template.Template
	now       func() time.Time
}

// NewRenderer parses the embedded page templates
func NewRenderer(publicDir string) (*Renderer, error) {
	base, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{"doctors", "appointment"} {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s page: %w", name, err)
		}
		pages[name] = t
	}

	return &Renderer{publicDir: publicDir, pages: pages, now: time.Now}, nil
}

// RenderDoctors writes the doctor directory page
func (r *Renderer) RenderDoctors(ctx context.Context, w io.Writer, page DoctorsPage) error {
	return r.render(ctx, w, "doctors", "Find a Doctor", "/doctors", page)
}

// RenderAppointment writes the appointment booking page
func (r *Renderer) RenderAppointment(ctx context.Context, w io.Writer, page AppointmentPage) error {
	return r.render(ctx, w, "appointment", "Book an Appointment", "/appointment", page)
}

func (r *Renderer) render(ctx context.Context, w io.Writer, name, title, path string, body any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	data := layout{
		Title:  title,
		Header: template.HTML(markCurrent(r.fragment(ctx, headerFragment), path)),
		Footer: template.HTML(strings.ReplaceAll(r.fragment(ctx, footerFragment), yearToken, strconv.Itoa(r.now().Year()))),
		Body:   body,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s page: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// fragment returns the fragment's HTML, or "" with a warning when it cannot be read.
func (r *Renderer) fragment(ctx context.Context, rel string) string {
	data, err := os.ReadFile(filepath.Join(r.publicDir, filepath.FromSlash(rel)))
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("component", rel).
			Msg("Failed to load page component")
		return ""
	}
	return string(data)
}

// markCurrent flags the nav link pointing at path with aria-current.
func markCurrent(header, path string) string {
	link := `href="` + path + `"`
	return strings.Replace(header, link, link+` class="current" aria-current="page"`, 1)
}
