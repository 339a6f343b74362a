package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteIndex_unity(t *testing.T) {
	input := []byte(`<html><head>
<link href="/TemplateData/style.css" rel="stylesheet">
</head><body>
<script src="/Build/UnityLoader.js"></script>
<img src="/Assets/logo.png">
<a href="https://example.com/Build/other">external</a>
</body></html>`)

	result := RewriteIndex("index.html", input, Unity)

	assert.Contains(t, string(result), `href="TemplateData/style.css"`)
	assert.Contains(t, string(result), `src="Build/UnityLoader.js"`)
	assert.Contains(t, string(result), `src="Assets/logo.png"`)
	// full URLs do not start with the rooted prefixes and are untouched
	assert.Contains(t, string(result), `href="https://example.com/Build/other"`)
}

func TestRewriteIndex_idempotent(t *testing.T) {
	input := []byte(`<script src="/Build/a.js"></script>`)

	once := RewriteIndex("index.html", input, Unity)
	twice := RewriteIndex("index.html", once, Unity)

	assert.Equal(t, `<script src="Build/a.js"></script>`, string(once))
	assert.Equal(t, once, twice)
}

func TestRewriteIndex_otherEnginesUnchanged(t *testing.T) {
	input := []byte(`<script src="/Build/a.js"></script>`)

	assert.Equal(t, input, RewriteIndex("index.html", input, Godot))
	assert.Equal(t, input, RewriteIndex("index.html", input, Tag("construct")))
}

func TestRewriteIndex_otherFilesUnchanged(t *testing.T) {
	input := []byte(`src="/Build/a.js"`)
	assert.Equal(t, input, RewriteIndex("Build/loader.js", input, Unity))
}

func TestRewriteIndex_nestedIndex(t *testing.T) {
	input := []byte(`<script src="/Build/a.js"></script>`)
	result := RewriteIndex("MyGame/Index.html", input, Unity)
	assert.Equal(t, `<script src="Build/a.js"></script>`, string(result))
}
