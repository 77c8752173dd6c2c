package controllers

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"openinvite/internal/delivery/http/helpers"
	"openinvite/internal/render"
)

//go:embed guide/templates.md
var templateGuide []byte

var kindDescriptions = map[render.Kind]string{
	render.KindText:      "plain text",
	render.KindMultiline: "formatted text (bold, italic, links, lists)",
	render.KindMap:       "map embed, or a map iframe built from the map link; on an `<a>` only the href is set",
	render.KindLink:      "link to the registry; on an `<a>` only the href is set",
	render.KindCalendar:  "\"Add to calendar\" link, on guest cards with a date",
	render.KindFragment:  "the RSVP form",
}

// DocsController serves the template authoring guide.
type DocsController struct {
	Logger *slog.Logger
	page   string
}

// NewDocsController renders the guide once. The placeholder table is generated
// from catalog so it always matches what the engine fills in.
func NewDocsController(logger *slog.Logger, catalog []render.Placeholder) (*DocsController, error) {
	var src bytes.Buffer
	src.Write(templateGuide)
	src.WriteString("\n| id | fills in |\n|---|---|\n")
	for _, ph := range catalog {
		fmt.Fprintf(&src, "| `%s` | %s |\n", ph.ID, kindDescriptions[ph.Kind])
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert(src.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("render template guide: %w", err)
	}
	clean := bluemonday.UGCPolicy().SanitizeBytes(body.Bytes())

	page := `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">` +
		`<meta name="viewport" content="width=device-width, initial-scale=1">` +
		`<title>Template guide</title><style>` + guideCSS + `</style></head><body><main>` +
		string(clean) + `</main></body></html>`
	return &DocsController{Logger: logger, page: page}, nil
}

const guideCSS = `body{font-family:system-ui,sans-serif;line-height:1.5;color:#222}` +
	`main{max-width:46rem;margin:2rem auto;padding:0 1rem}` +
	`pre{background:#f4f4f4;padding:1rem;overflow:auto}code{font-size:.9em}` +
	`table{border-collapse:collapse}td,th{border:1px solid #ddd;padding:.3rem .6rem;text-align:left}`

// TemplateGuide godoc
// @Summary Template authoring guide
// @Description Explains how templates are cleaned and lists every placeholder ID.
// @Tags docs
// @Produce html
// @Success 200 {string} string "guide page"
// @Router /docs/templates [get]
func (c *DocsController) TemplateGuide(w http.ResponseWriter, r *http.Request) {
	helpers.WriteHTML(w, http.StatusOK, c.page)
}
