// Package markdown inspects note content. Rendering is left to the UI.
package markdown

import (
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// ImageRefs returns the ids of stored images referenced from content as
// ![alt](idb://<id>), in order of first appearance, without duplicates.
func ImageRefs(content string) []string {
	if !strings.Contains(content, common.ImageURIScheme) {
		return nil
	}

	src := []byte(content)
	doc := md.Parser().Parse(text.NewReader(src))

	var (
		ids  []string
		seen = make(map[string]struct{})
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		img, ok := n.(*ast.Image)
		if !ok {
			return ast.WalkContinue, nil
		}
		id, ok := ImageID(string(img.Destination))
		if !ok {
			return ast.WalkContinue, nil
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		return ast.WalkContinue, nil
	})
	return ids
}

// ImageID extracts the id from an idb:// URI.
func ImageID(uri string) (string, bool) {
	id, ok := strings.CutPrefix(uri, common.ImageURIScheme)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// ImageURI builds the content reference for a stored image.
func ImageURI(id string) string {
	return common.ImageURIScheme + id
}
