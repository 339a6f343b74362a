package engine

import (
	"regexp"
	"strings"
)

// Unity exports reference their assets with absolute-rooted paths
// (src="/Build/x.js"). Served from a per-post prefix instead of the
// site root, those must become relative. One shared prefix list covers
// every folder a Unity web export may root at.
var unityAssetRef = regexp.MustCompile(`(src|href)="/?((?:TemplateData|Build|Assets)/)`)

// RewriteIndex remaps absolute-rooted asset references in index.html to
// relative ones. Applies only to index.html for Unity; for any other
// file or engine the content is returned unchanged. Godot exports
// already use relative paths and have no rewrite rule. The substitution
// is byte-precise and idempotent: already-relative references do not
// match the leading-slash pattern in a way that changes them.
func RewriteIndex(filePath string, data []byte, tag Tag) []byte {
	if tag != Unity || !strings.HasSuffix(strings.ToLower(filePath), "index.html") {
		return data
	}
	return unityAssetRef.ReplaceAll(data, []byte(`$1="$2`))
}
