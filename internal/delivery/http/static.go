package http

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"path"
	"time"

	"mergingtonactivities/internal/delivery/http/helpers"
)

// staticIndex is where GET / sends browsers.
const staticIndex = "/static/index.html"

// RedirectToIndex answers GET / with a temporary redirect to the frontend.
func RedirectToIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, staticIndex, http.StatusTemporaryRedirect)
}

// StaticHandler serves files from fsys for the {file...} path wildcard.
// Unlike http.FileServer it serves index.html directly instead of redirecting
// to the directory, and it never lists directories.
func StaticHandler(fsys fs.FS) http.Handler {
	modTime := time.Now()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean(r.PathValue("file"))
		if name == "." || !fs.ValidPath(name) {
			helpers.WriteJSONError(w, http.StatusNotFound, "Not Found")
			return
		}
		f, err := fsys.Open(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				helpers.WriteJSONError(w, http.StatusNotFound, "Not Found")
				return
			}
			helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			helpers.WriteJSONError(w, http.StatusNotFound, "Not Found")
			return
		}
		rs, ok := f.(io.ReadSeeker)
		if !ok {
			helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		mt := info.ModTime()
		if mt.IsZero() {
			// embed.FS reports a zero mod time.
			mt = modTime
		}
		http.ServeContent(w, r, info.Name(), mt, rs)
	})
}
