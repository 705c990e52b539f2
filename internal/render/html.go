package render

import (
	"html/template"
	"io"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// Page is the data behind the HTML result page.
type Page struct {
	Title      string
	Style      string
	Sources    []string
	Categories []string
	Source     string
	Keyword    string
	Entries    []types.Entry
	Info       string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
.card { padding: 15px; background-color: #f9f9f9; border-left: 6px solid #FF37D5; margin-bottom: 15px; }
.card .category { font-size: 20px; font-weight: bold; color: #333; }
.card .definition { font-size: 20px; margin-top: 10px; color: #555; }
.card .footer { font-size: 14px; margin-top: 10px; color: #777; }
.info { color: #1c5d99; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<form method="get" action="">
<label>Filter by Source:
<select name="source">
<option value="">None</option>
{{range .Sources}}<option value="{{.}}"{{if eq . $.Source}} selected{{end}}>{{.}}</option>
{{end}}</select>
</label>
<label>Search:
<select name="keyword">
<option value="">None</option>
{{range .Categories}}<option value="{{.}}"{{if eq . $.Keyword}} selected{{end}}>{{.}}</option>
{{end}}</select>
</label>
<button type="submit">Apply</button>
</form>
<h2>Glossary Search Results</h2>
{{if .Info}}<p class="info">{{.Info}}</p>{{end}}
{{if .Entries}}{{if eq .Style "plain"}}{{range .Entries}}
<div class="entry">
<p><strong>Source:</strong> {{.Source}}</p>
<p><strong>Category:</strong> {{.Category}}</p>
<p><strong>Definition:</strong> {{.Definition}}</p>
{{if .Link}}<p><a href="{{.Link}}" target="_blank">Learn more</a></p>{{end}}
<hr>
</div>{{end}}{{else}}{{range .Entries}}
<div class="card">
<div class="category">{{.Category}}</div>
<div class="definition">{{.Definition}}</div>
<div class="footer"><strong>Source:</strong> {{.Source}}{{if .Link}} | <a href="{{.Link}}" target="_blank">Learn more</a>{{end}}</div>
</div>{{end}}{{end}}
{{else}}<p>No results found. Try adjusting your filters or search keywords.</p>{{end}}
</body>
</html>
`))

// HTML writes the result page. Template escaping covers every field,
// including links.
func HTML(w io.Writer, page Page) error {
	if page.Style != types.StylePlain {
		page.Style = types.StyleCard
	}
	return pageTemplate.Execute(w, page)
}
