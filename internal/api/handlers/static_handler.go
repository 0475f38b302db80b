package handlers

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/zatekoja/hospitalsite/internal/api/respond"
)

// StaticCacheControl is sent with every static file
const StaticCacheControl = "public, max-age=86400, immutable"

// StaticHandler serves files from the public directory. Directories resolve
// to their index.html, listings are never produced and dotfiles are hidden.
type StaticHandler struct {
	root http.FileSystem
}

// NewStaticHandler creates a static handler rooted at dir
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{root: http.Dir(dir)}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	if hasDotSegment(name) {
		http.NotFound(w, r)
		return
	}

	f, err := h.root.Open(name)
	if err != nil {
		h.openError(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.openError(w, r, err)
		return
	}

	if info.IsDir() {
		if !strings.HasSuffix(r.URL.Path, "/") {
			http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
			return
		}
		index, err := h.root.Open(path.Join(name, "index.html"))
		if err != nil {
			h.openError(w, r, err)
			return
		}
		defer index.Close()
		if info, err = index.Stat(); err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		f = index
	}

	w.Header().Set("Cache-Control", StaticCacheControl)
	w.Header().Set("ETag", fmt.Sprintf(`W/"%x-%x"`, info.Size(), info.ModTime().UnixMilli()))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (h *StaticHandler) openError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		http.NotFound(w, r)
		return
	}
	respond.ServerError(w, r)
}

func hasDotSegment(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
