package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		path     string
		expected Headers
	}{
		{"index.html", Headers{ContentType: "text/html;charset=utf-8"}},
		{"Build/game.js", Headers{ContentType: "application/javascript"}},
		{"TemplateData/style.css", Headers{ContentType: "text/css"}},
		{"TemplateData/thumb.png", Headers{ContentType: "image/png"}},
		{"shots/a.jpg", Headers{ContentType: "image/jpeg"}},
		{"shots/a.jpeg", Headers{ContentType: "image/jpeg"}},
		{"shots/a.gif", Headers{ContentType: "image/gif"}},
		{"game.wasm", Headers{ContentType: "application/wasm"}},
		{"game.pck", Headers{ContentType: "application/octet-stream"}},
		{"x.unknownext", Headers{ContentType: "application/octet-stream"}},
		{"noextension", Headers{ContentType: "application/octet-stream"}},

		// pre-compressed exports
		{"x.js.gz", Headers{ContentType: "application/javascript", ContentEncoding: "gzip"}},
		{"Build/a.data.gz", Headers{ContentType: "application/octet-stream", ContentEncoding: "gzip"}},
		{"Build/a.wasm.gz", Headers{ContentType: "application/wasm", ContentEncoding: "gzip"}},
		// inner extension outside the reduced set keeps the default type
		{"notes.txt.gz", Headers{ContentType: "application/octet-stream", ContentEncoding: "gzip"}},
		{"archive.gz", Headers{ContentType: "application/octet-stream", ContentEncoding: "gzip"}},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, Resolve(c.path), "path %s", c.path)
	}
}

func TestResolve_caseInsensitive(t *testing.T) {
	assert.Equal(t, "text/html;charset=utf-8", Resolve("INDEX.HTML").ContentType)
	assert.Equal(t, Headers{ContentType: "application/javascript", ContentEncoding: "gzip"},
		Resolve("Build/Game.JS.GZ"))
}
