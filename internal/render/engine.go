// Package render turns an untrusted host template into a safe invitation page.
//
// Rendering is two pure steps. A Sanitizer reduces the template to an
// allowlist of tags, attributes and URL schemes; an Injector then writes a
// Record into the elements whose id matches the placeholder catalog, removing
// elements whose datum is absent. Neither step performs I/O or keeps state
// between calls.
package render

// Engine runs sanitization followed by injection.
type Engine struct {
	sanitizer *Sanitizer
	injector  *Injector
}

// NewEngine composes an Engine from its two stages.
func NewEngine(sanitizer *Sanitizer, injector *Injector) *Engine {
	return &Engine{sanitizer: sanitizer, injector: injector}
}

// NewDefaultEngine returns an Engine with the default allowlists and catalog.
func NewDefaultEngine() *Engine {
	return NewEngine(
		NewSanitizer(DefaultSanitizerConfig()),
		NewInjector(DefaultCatalog(), NewSanitizer(EmbedSanitizerConfig())),
	)
}

// Render sanitizes raw and injects rec. Any input, including an empty or
// malformed document, yields a complete HTML page.
func (e *Engine) Render(raw string, rec Record) string {
	return e.injector.Inject(e.sanitizer.Sanitize(raw), rec)
}

// Sanitize exposes the template sanitizer on its own.
func (e *Engine) Sanitize(raw string) string {
	return e.sanitizer.Sanitize(raw)
}
