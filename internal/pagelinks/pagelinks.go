// Package pagelinks finds the local references an HTML page makes, so the
// generator can warn about pages the device will not serve.
package pagelinks

import (
	"bytes"
	"fmt"
	"io"
	"net/url"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ref is one local reference, resolved against the page's public name.
type Ref struct {
	Element string // img, script, link, a, source, iframe
	Value   string // attribute value as written
	Target  string // public name the browser will request, e.g. /style.css
}

// refAttrs maps elements to the attribute naming the referenced page.
var refAttrs = map[atom.Atom]string{
	atom.A:      "href",
	atom.Link:   "href",
	atom.Img:    "src",
	atom.Script: "src",
	atom.Source: "src",
	atom.Iframe: "src",
}

// Extract parses the page served at page (for example /index.html) and
// returns its local references in document order. URLs with a scheme or a
// host, anchors and empty values are not local and are skipped.
func Extract(page string, r io.Reader) ([]Ref, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", page, err)
	}
	root, err := parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", page, err)
	}

	base := &url.URL{Path: page}
	var refs []Ref
	for n := range root.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}
		key, ok := refAttrs[n.DataAtom]
		if !ok {
			continue
		}
		for _, attr := range n.Attr {
			if attr.Namespace != "" || attr.Key != key {
				continue
			}
			if target, ok := resolve(base, attr.Val); ok {
				refs = append(refs, Ref{Element: n.Data, Value: attr.Val, Target: target})
			}
		}
	}
	return refs, nil
}

// parse reads complete documents as such and anything else as a body
// fragment, so partial pages are not wrapped in an implied skeleton.
func parse(src []byte) (*html.Node, error) {
	head := bytes.ToLower(bytes.TrimSpace(src))
	if bytes.HasPrefix(head, []byte("<!doctype")) || bytes.HasPrefix(head, []byte("<html")) {
		return html.Parse(bytes.NewReader(src))
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(bytes.NewReader(src), body)
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// resolve returns the path a browser requests for value on the page at
// base, or false when value does not point at this device.
func resolve(base *url.URL, value string) (string, bool) {
	if value == "" {
		return "", false
	}
	ref, err := url.Parse(value)
	if err != nil || ref.Scheme != "" || ref.Host != "" || ref.Opaque != "" {
		return "", false
	}
	if ref.Path == "" {
		// "#top" and "?q=1" stay on the same page.
		return "", false
	}
	return base.ResolveReference(ref).Path, true
}
