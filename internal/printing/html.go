package printing

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"time"
)

var printTemplate = template.Must(template.New("print").Funcs(template.FuncMap{
	"stamp": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04 UTC") },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Doc.Title}}</title>
{{range .Styles}}<style id="{{.ID}}">{{.CSS}}</style>
{{end}}</head>
<body>
<div class="no-print toolbar"><button onclick="window.print()">Print</button></div>
<h1>{{.Doc.Title}}</h1>
<p>Generated {{stamp .Doc.GeneratedAt}} by {{.Doc.GeneratedBy}} &middot; {{.Doc.Period}}</p>
{{range .Doc.Sections}}<h2>{{.Title}}</h2>
<table>
{{if .Header}}<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
{{end}}<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{end}}{{if .Doc.Insights}}<h2>Insights</h2>
<ul>{{range .Doc.Insights}}<li>{{.}}</li>{{end}}</ul>
{{end}}<script>window.addEventListener("load", function () { window.print(); });</script>
</body>
</html>
`))

// HTMLDialog renders the document as a page that opens the browser print
// dialog once loaded.
type HTMLDialog struct {
	w io.Writer
}

func NewHTMLDialog(w io.Writer) *HTMLDialog {
	return &HTMLDialog{w: w}
}

func (h *HTMLDialog) Print(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	err := printTemplate.Execute(&buf, struct {
		Doc    *Document
		Styles []Style
	}{Doc: doc, Styles: doc.Styles()})
	if err != nil {
		return err
	}
	_, err = h.w.Write(buf.Bytes())
	return err
}
