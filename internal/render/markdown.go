package render

import (
	"html"
	"regexp"
	"strings"
)

var (
	listItemRe = regexp.MustCompile(`^\s*-\s+(.+)$`)
	linkRe     = regexp.MustCompile(`\[([^\]]+)\]\(((?:[^()\s]|\([^()\s]*\))+)\)`)
	boldRe     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe   = regexp.MustCompile(`\*([^*]+)\*`)
	safeLinkRe = regexp.MustCompile(`(?i)^(https?://|mailto:|/[^/])`)
)

// segment is one piece of rendered output. Blocks are never separated from
// their neighbours by a <br>.
type segment struct {
	html  string
	block bool
}

// RenderLiteMarkdown renders the constrained markdown subset used in free-text
// fields (address, notes, guest message) into safe HTML. The input is escaped
// before any markup is produced, so the returned HTML never echoes raw input.
func RenderLiteMarkdown(text string) string {
	escaped := html.EscapeString(strings.ReplaceAll(text, "\r\n", "\n"))

	var (
		segments []segment
		items    []string
	)
	flush := func() {
		if len(items) == 0 {
			return
		}
		var b strings.Builder
		b.WriteString("<ul>")
		for _, item := range items {
			b.WriteString("<li>")
			b.WriteString(item)
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
		segments = append(segments, segment{html: b.String(), block: true})
		items = nil
	}

	for _, line := range strings.Split(escaped, "\n") {
		if m := listItemRe.FindStringSubmatch(line); m != nil {
			items = append(items, renderInline(m[1]))
			continue
		}
		flush()
		if strings.TrimSpace(line) == "" {
			segments = append(segments, segment{})
			continue
		}
		segments = append(segments, segment{html: renderInline(line)})
	}
	flush()

	var b strings.Builder
	for i, seg := range segments {
		if i > 0 && !seg.block && !segments[i-1].block {
			b.WriteString("<br>")
		}
		b.WriteString(seg.html)
	}
	return b.String()
}

// renderInline expects already-escaped text. Link URLs are emitted untouched by
// the emphasis rules.
func renderInline(line string) string {
	var b strings.Builder
	last := 0
	for _, m := range linkRe.FindAllStringSubmatchIndex(line, -1) {
		b.WriteString(renderEmphasis(line[last:m[0]]))
		label := renderEmphasis(line[m[2]:m[3]])
		href := line[m[4]:m[5]]
		if isSafeLink(html.UnescapeString(href)) {
			b.WriteString(`<a href="`)
			b.WriteString(href)
			b.WriteString(`">`)
			b.WriteString(label)
			b.WriteString("</a>")
		} else {
			b.WriteString(label)
		}
		last = m[1]
	}
	b.WriteString(renderEmphasis(line[last:]))
	return b.String()
}

func renderEmphasis(s string) string {
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	return italicRe.ReplaceAllString(s, "<em>$1</em>")
}

// isSafeLink accepts http(s), mailto and root-relative paths. Protocol-relative
// URLs ("//host") are rejected.
func isSafeLink(u string) bool {
	u = strings.TrimSpace(u)
	return safeLinkRe.MatchString(u) || u == "/"
}
