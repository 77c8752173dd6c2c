package helpers

import (
	"embed"
	"net/http"
)

// CardCSP is the Content-Security-Policy sent with every rendered card and page.
// Scripts are never allowed; the only form target is this origin.
const CardCSP = "default-src 'none'; img-src https: data:; style-src 'unsafe-inline' https:; " +
	"font-src https: data:; frame-src https://www.google.com/maps https://maps.google.com; " +
	"form-action 'self'; base-uri 'none'; frame-ancestors 'none'"

// Page names a static fallback page.
type Page string

// Static pages. They are served verbatim and never pass through a template.
const (
	PageNotFound            Page = "not_found"
	PageBadRequest          Page = "bad_request"
	PageRSVPClosed          Page = "rsvp_closed"
	PageTemplateUnavailable Page = "template_unavailable"
	PageServerError         Page = "server_error"
)

//go:embed pages/*.html
var pagesFS embed.FS

// WriteHTML writes body as an HTML document with the card security headers.
func WriteHTML(w http.ResponseWriter, statusCode int, body string) {
	setHTMLHeaders(w)
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

// WriteStaticPage writes one of the embedded fallback pages.
func WriteStaticPage(w http.ResponseWriter, statusCode int, page Page) {
	body, err := pagesFS.ReadFile("pages/" + string(page) + ".html")
	if err != nil {
		body, _ = pagesFS.ReadFile("pages/" + string(PageServerError) + ".html")
	}
	setHTMLHeaders(w)
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

func setHTMLHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Content-Security-Policy", CardCSP)
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Referrer-Policy", "no-referrer")
	h.Set("Cache-Control", "no-store")
}
