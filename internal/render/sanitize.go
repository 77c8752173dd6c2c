package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SanitizerConfig is the allowlist a Sanitizer enforces. Elements not listed in
// Elements or Scaffold are dropped together with everything inside them.
type SanitizerConfig struct {
	// Elements are the tags a template may use.
	Elements []string
	// Scaffold are document-structure tags kept so the injector has a document
	// to work on. Ignored in fragment mode.
	Scaffold []string
	// GlobalAttrs are allowed on every element in Elements.
	GlobalAttrs []string
	// ElementAttrs are additional non-URL-restricted attributes per element.
	ElementAttrs map[string][]string
	// HTTPSOnlyAttrs are URL attributes that must use https.
	HTTPSOnlyAttrs map[string][]string
	// URLSchemes is the scheme allowlist for every other URL attribute.
	URLSchemes []string
	// MetaHTTPEquiv restricts meta[http-equiv] values. Empty disallows the attribute.
	MetaHTTPEquiv []string
	// Fragment parses input as a body fragment instead of a full document.
	Fragment bool
}

// DefaultSanitizerConfig returns the allowlist applied to host templates.
func DefaultSanitizerConfig() SanitizerConfig {
	return SanitizerConfig{
		Elements: []string{
			"div", "span", "p", "section", "main", "header", "footer",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"ul", "ol", "li", "a", "b", "strong", "em", "code", "blockquote",
			"hr", "br", "img", "iframe", "style", "link", "meta",
		},
		Scaffold:    []string{"html", "head", "body", "title"},
		GlobalAttrs: []string{"class", "id", "style"},
		ElementAttrs: map[string][]string{
			"a":      {"href", "target", "rel"},
			"img":    {"src", "alt"},
			"link":   {"rel", "as", "type", "crossorigin"},
			"iframe": {"title", "loading", "allowfullscreen", "referrerpolicy", "width", "height", "frameborder"},
			"meta":   {"charset", "name", "content"},
		},
		HTTPSOnlyAttrs: map[string][]string{
			"iframe": {"src"},
			"link":   {"href"},
		},
		URLSchemes:    []string{"http", "https", "mailto"},
		MetaHTTPEquiv: []string{"content-type", "x-ua-compatible", "content-language"},
	}
}

// EmbedSanitizerConfig returns the iframe-only allowlist used for map embed codes.
func EmbedSanitizerConfig() SanitizerConfig {
	return SanitizerConfig{
		Elements:    []string{"iframe"},
		GlobalAttrs: []string{"class", "style"},
		ElementAttrs: map[string][]string{
			"iframe": {"title", "loading", "allowfullscreen", "referrerpolicy", "width", "height", "frameborder"},
		},
		HTTPSOnlyAttrs: map[string][]string{
			"iframe": {"src"},
		},
		URLSchemes: []string{"https"},
		Fragment:   true,
	}
}

var httpsURLRe = regexp.MustCompile(`(?i)^https://`)

// Sanitizer strips untrusted HTML down to an allowlist. It is safe for
// concurrent use.
type Sanitizer struct {
	keep     map[string]struct{}
	fragment bool
	policy   *bluemonday.Policy
}

// NewSanitizer builds a Sanitizer enforcing cfg.
func NewSanitizer(cfg SanitizerConfig) *Sanitizer {
	keep := make(map[string]struct{}, len(cfg.Elements)+len(cfg.Scaffold))
	for _, el := range cfg.Elements {
		keep[el] = struct{}{}
	}
	if !cfg.Fragment {
		for _, el := range cfg.Scaffold {
			keep[el] = struct{}{}
		}
	}
	return &Sanitizer{
		keep:     keep,
		fragment: cfg.Fragment,
		policy:   newPolicy(cfg),
	}
}

func newPolicy(cfg SanitizerConfig) *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	// <style> blocks are written verbatim only under AllowUnsafe. <script> is
	// never in the allowlist and is pruned before the policy runs.
	p.AllowUnsafe(true)

	elements := append([]string{}, cfg.Elements...)
	if !cfg.Fragment {
		elements = append(elements, cfg.Scaffold...)
	}
	p.AllowElements(elements...)
	p.AllowNoAttrs().OnElements(elements...)
	if len(cfg.GlobalAttrs) > 0 {
		p.AllowAttrs(cfg.GlobalAttrs...).OnElements(elements...)
	}
	for el, attrs := range cfg.ElementAttrs {
		p.AllowAttrs(attrs...).OnElements(el)
	}
	for el, attrs := range cfg.HTTPSOnlyAttrs {
		p.AllowAttrs(attrs...).Matching(httpsURLRe).OnElements(el)
	}
	if len(cfg.MetaHTTPEquiv) > 0 {
		equiv := regexp.MustCompile(`(?i)^(` + strings.Join(quoteAll(cfg.MetaHTTPEquiv), "|") + `)$`)
		p.AllowAttrs("http-equiv").Matching(equiv).OnElements("meta")
	}
	p.AllowURLSchemes(cfg.URLSchemes...)
	p.RequireParseableURLs(true)
	return p
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = regexp.QuoteMeta(v)
	}
	return out
}

// Sanitize returns raw reduced to the allowlist. It never fails: input that
// cannot be parsed yields an empty string.
func (s *Sanitizer) Sanitize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	var buf bytes.Buffer
	if s.fragment {
		body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
		nodes, err := html.ParseFragment(strings.NewReader(raw), body)
		if err != nil {
			return ""
		}
		for _, n := range nodes {
			body.AppendChild(n)
		}
		s.prune(body)
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return ""
			}
		}
	} else {
		doc, err := html.Parse(strings.NewReader(raw))
		if err != nil {
			return ""
		}
		s.prune(doc)
		if err := html.Render(&buf, doc); err != nil {
			return ""
		}
	}
	return s.policy.Sanitize(buf.String())
}

// prune removes comments, foreign content and every element outside the
// allowlist, including its subtree.
func (s *Sanitizer) prune(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.CommentNode:
			n.RemoveChild(c)
		case html.ElementNode:
			if _, ok := s.keep[c.Data]; !ok || c.Namespace != "" {
				n.RemoveChild(c)
			} else {
				s.prune(c)
			}
		}
		c = next
	}
}
