package render

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	googleMapsEmbedBase = "https://www.google.com/maps"
	mapEmbedClass       = "map-embed"
	registryLinkClass   = "registry-link"
	calendarLinkClass   = "calendar-link"
	registryLinkLabel   = "View registry"
	calendarLinkLabel   = "Add to calendar"
)

var webURLRe = regexp.MustCompile(`(?i)^https?://[^\s]+$`)

// Injector splices a Record into sanitized template HTML. It holds only
// immutable configuration and is safe for concurrent use.
type Injector struct {
	catalog []Placeholder
	embeds  *Sanitizer
}

// NewInjector returns an Injector for catalog. Map embed codes are cleaned with
// embeds, which should allow nothing but iframes.
func NewInjector(catalog []Placeholder, embeds *Sanitizer) *Injector {
	return &Injector{
		catalog: append([]Placeholder(nil), catalog...),
		embeds:  embeds,
	}
}

// Inject writes rec into the first element carrying each catalog ID, removes
// elements whose datum is absent and sets the document <title>. The input must
// already be sanitized; fragments such as the response form are trusted.
func (in *Injector) Inject(sanitized string, rec Record) string {
	doc, err := html.Parse(strings.NewReader(sanitized))
	if err != nil {
		return titleOnlyDocument(rec.Title)
	}

	ids := indexIDs(doc)
	for _, ph := range in.catalog {
		el, ok := ids[ph.ID]
		if !ok {
			continue
		}
		in.visit(el, ph, &rec)
	}
	setDocumentTitle(doc, rec.Title)
	ensureDoctype(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return titleOnlyDocument(rec.Title)
	}
	return buf.String()
}

// titleOnlyDocument is the page served when the injected tree cannot be
// serialized.
func titleOnlyDocument(title string) string {
	return "<!DOCTYPE html><html><head><title>" + html.EscapeString(title) +
		"</title></head><body></body></html>"
}

func (in *Injector) visit(el *html.Node, ph Placeholder, rec *Record) {
	// Void elements cannot hold content and raw-text elements would emit it
	// unescaped, so neither can serve as a slot.
	if !holdsContent(el) {
		removeNode(el)
		return
	}
	if ph.Kind == KindMap {
		in.injectMap(el, rec)
		return
	}
	v := rec.value(ph.Field)
	if v == nil {
		removeNode(el)
		return
	}
	switch ph.Kind {
	case KindText:
		setText(el, *v)
	case KindMultiline:
		setInnerHTML(el, RenderLiteMarkdown(*v))
	case KindFragment:
		setInnerHTML(el, *v)
	case KindLink:
		injectLink(el, strings.TrimSpace(*v), registryLinkClass, registryLinkLabel, isWebURL)
	case KindCalendar:
		injectLink(el, strings.TrimSpace(*v), calendarLinkClass, calendarLinkLabel, isSafeLink)
	}
}

// injectMap prefers the embed code, then the map link. An embed that sanitizes
// to nothing falls through to the link.
func (in *Injector) injectMap(el *html.Node, rec *Record) {
	if rec.MapEmbed != nil && in.embeds != nil {
		if frames := in.embedFrames(*rec.MapEmbed, el); len(frames) > 0 {
			replaceChildren(el, frames...)
			return
		}
	}
	if rec.MapLink == nil {
		removeNode(el)
		return
	}
	link := strings.TrimSpace(*rec.MapLink)
	if !isWebURL(link) {
		removeAttr(el, "href")
		setText(el, link)
		return
	}
	if el.DataAtom == atom.A {
		setAttr(el, "href", link)
		return
	}
	replaceChildren(el, mapFrame(link))
}

func (in *Injector) embedFrames(code string, context *html.Node) []*html.Node {
	clean := in.embeds.Sanitize(code)
	if clean == "" {
		return nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(clean), context)
	if err != nil {
		return nil
	}
	var frames []*html.Node
	for _, n := range nodes {
		if n.Type != html.ElementNode || n.DataAtom != atom.Iframe || attr(n, "src") == "" {
			continue
		}
		addClass(n, mapEmbedClass)
		frames = append(frames, n)
	}
	return frames
}

// mapFrame builds a Google Maps embed for an arbitrary map URL.
func mapFrame(link string) *html.Node {
	src := googleMapsEmbedBase + "?q=" + url.QueryEscape(link) + "&output=embed"
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "iframe",
		DataAtom: atom.Iframe,
		Attr: []html.Attribute{
			{Key: "class", Val: mapEmbedClass},
			{Key: "src", Val: src},
			{Key: "width", Val: "100%"},
			{Key: "height", Val: "300"},
			{Key: "style", Val: "border:0"},
			{Key: "loading", Val: "lazy"},
			{Key: "allowfullscreen", Val: ""},
			{Key: "referrerpolicy", Val: "no-referrer-when-downgrade"},
			{Key: "title", Val: "Map"},
		},
	}
}

// injectLink sets href on an anchor placeholder or appends an anchor inside any
// other element. A link failing safe fails closed to plain text.
func injectLink(el *html.Node, link, class, label string, safe func(string) bool) {
	if !safe(link) {
		removeAttr(el, "href")
		setText(el, link)
		return
	}
	if el.DataAtom == atom.A {
		setAttr(el, "href", link)
		return
	}
	a := &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr: []html.Attribute{
			{Key: "class", Val: class},
			{Key: "href", Val: link},
		},
	}
	if class == registryLinkClass {
		a.Attr = append(a.Attr,
			html.Attribute{Key: "target", Val: "_blank"},
			html.Attribute{Key: "rel", Val: "noopener noreferrer"},
		)
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: label})
	replaceChildren(el, a)
}

// holdsContent reports whether n can take injected children that
// html.Render will serialize escaped.
func holdsContent(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
		atom.Input, atom.Keygen, atom.Link, atom.Meta, atom.Param, atom.Source,
		atom.Track, atom.Wbr:
		return false
	case atom.Iframe, atom.Noembed, atom.Noframes, atom.Noscript, atom.Plaintext,
		atom.Script, atom.Style, atom.Xmp:
		return false
	}
	return true
}

func isWebURL(s string) bool {
	return webURLRe.MatchString(s)
}

// indexIDs maps each id to the first element carrying it in document order.
func indexIDs(root *html.Node) map[string]*html.Node {
	ids := make(map[string]*html.Node)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := attr(n, "id"); id != "" {
				if _, seen := ids[id]; !seen {
					ids[id] = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return ids
}

// setDocumentTitle replaces the first <title>, or creates one in <head>,
// creating <head> too when the document has none.
func setDocumentTitle(doc *html.Node, title string) {
	if t := findElement(doc, atom.Title); t != nil {
		setText(t, title)
		return
	}
	t := &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
	t.AppendChild(&html.Node{Type: html.TextNode, Data: title})

	head := findElement(doc, atom.Head)
	if head == nil {
		root := findElement(doc, atom.Html)
		if root == nil {
			root = wrapDocument(doc)
		}
		head = &html.Node{Type: html.ElementNode, Data: "head", DataAtom: atom.Head}
		root.InsertBefore(head, root.FirstChild)
	}
	head.AppendChild(t)
}

// wrapDocument moves every non-doctype child of doc under a new <html> element.
func wrapDocument(doc *html.Node) *html.Node {
	root := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	for c := doc.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type != html.DoctypeNode {
			doc.RemoveChild(c)
			root.AppendChild(c)
		}
		c = next
	}
	doc.AppendChild(root)
	return root
}

func ensureDoctype(doc *html.Node) {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			return
		}
	}
	doc.InsertBefore(&html.Node{Type: html.DoctypeNode, Data: "html"}, doc.FirstChild)
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func removeNode(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func replaceChildren(n *html.Node, children ...*html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	for _, c := range children {
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		n.AppendChild(c)
	}
}

// setText replaces n's content with a text node; escaping happens on render.
func setText(n *html.Node, text string) {
	replaceChildren(n, &html.Node{Type: html.TextNode, Data: text})
}

// setInnerHTML parses fragment in the context of n and makes it n's content.
func setInnerHTML(n *html.Node, fragment string) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), n)
	if err != nil {
		setText(n, fragment)
		return
	}
	replaceChildren(n, nodes...)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

func addClass(n *html.Node, class string) {
	existing := strings.Fields(attr(n, "class"))
	for _, c := range existing {
		if c == class {
			return
		}
	}
	setAttr(n, "class", strings.Join(append(existing, class), " "))
}
