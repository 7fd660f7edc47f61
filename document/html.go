package document

import (
	"html/template"
	"io"
	"net/url"
	"path/filepath"

	"usedcars-report/models"
)

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"fileURL": fileURL,
	"trusted": func(s string) template.HTML { return template.HTML(s) },
	"isCover": func(k models.SectionKind) bool { return k == models.SectionCover },
	"isTable": func(k models.SectionKind) bool { return k == models.SectionTable },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; line-height: 12pt; }
  section { page-break-after: always; }
  section:last-child { page-break-after: auto; }
  h1.title { text-align: center; text-decoration: underline; font-size: 18pt; }
  h1 { font-size: 18pt; }
  h2 { font-size: 14pt; }
  img { display: block; margin: 12pt auto; }
  table { border-collapse: collapse; margin: 0 auto; font-size: 8pt; }
  th, td { border: 0.25pt solid #000; text-align: center; padding: 1pt 2pt; }
  th { background: #808080; color: #f5f5f5; font-weight: bold; }
  thead { display: table-header-group; }
</style>
</head>
<body>
{{range .Sections}}<section>
{{if isCover .Kind}}
  {{with .Logo}}<img src="{{fileURL .Path}}" width="{{.Width}}" height="{{.Height}}" alt="logo">{{end}}
  <h1 class="title">{{.Heading}}</h1>
  {{range .Paragraphs}}<p>{{trusted .}}</p>{{end}}
{{else if isTable .Kind}}
  <h2>{{.Heading}}</h2>
  {{with .Table}}<table>
    <thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
  </table>{{end}}
{{else}}
  <h1>{{.Heading}}</h1>
  {{range .Metrics}}<div><b>{{.Label}}:</b> {{.Value}}</div>{{end}}
  {{range .Charts}}<img src="{{fileURL .Path}}" width="{{.Width}}" height="{{.Height}}" alt="{{.Title}}">{{end}}
{{end}}
</section>
{{end}}</body>
</html>
`))

// WriteHTML renders doc as a standalone HTML page. Images are referenced by
// absolute file URLs.
func WriteHTML(w io.Writer, doc *models.ReportDocument) error {
	return reportTemplate.Execute(w, doc)
}

func fileURL(path string) (template.URL, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return template.URL(u.String()), nil
}
