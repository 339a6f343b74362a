// Package content infers web content-type and content-encoding metadata
// from archive entry paths, so republished game files are served with
// headers a browser will accept.
package content

import (
	"path"
	"strings"
)

const DefaultType = "application/octet-stream"

// Headers is what the destination object store needs to serve one file.
// An empty ContentEncoding means none.
type Headers struct {
	ContentType     string
	ContentEncoding string
}

var types = map[string]string{
	".html": "text/html;charset=utf-8",
	".js":   "application/javascript",
	".css":  "text/css",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".wasm": "application/wasm",
	".pck":  DefaultType,
}

// Pre-compressed engine exports ship as <name>.<ext>.gz. The inner
// extension decides the content type; the outer .gz only sets the
// encoding.
var gzipInner = map[string]string{
	".js":   "application/javascript",
	".data": DefaultType,
	".wasm": "application/wasm",
}

// Resolve maps a file path to its Headers. Total: unknown extensions
// fall back to application/octet-stream with no encoding.
func Resolve(p string) Headers {
	lower := strings.ToLower(p)
	ext := path.Ext(lower)

	h := Headers{ContentType: DefaultType}
	if ct, ok := types[ext]; ok {
		h.ContentType = ct
	}

	if ext == ".gz" {
		h.ContentEncoding = "gzip"
		inner := path.Ext(strings.TrimSuffix(lower, ".gz"))
		if ct, ok := gzipInner[inner]; ok {
			h.ContentType = ct
		}
	}
	return h
}
