package render

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"

	"github.com/diewo77/invoice-builder/internal/layout"
)

// The screen target: each page becomes a fixed-size block and every
// fragment an absolutely positioned element, mirroring the PDF output.
const htmlDocument = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; background: #e8e8ec; font-family: Helvetica, Arial, sans-serif; }
.page { position: relative; width: 210mm; height: 297mm; margin: 8mm auto; background: #fff; box-shadow: 0 1px 4px rgba(0,0,0,.25); overflow: hidden; }
.frag { position: absolute; white-space: nowrap; }
@media print { body { background: #fff; } .page { margin: 0; box-shadow: none; page-break-after: always; } }
</style>
</head>
<body>
{{- range .Pages}}
<div class="page">
{{- range .Fragments}}
{{- if isRect .}}
<div class="frag" style="left:{{mm .X}};top:{{mm .Y}};width:{{mm .W}};height:{{mm .H}};{{rectStyle .}}"></div>
{{- else if isText .}}
<div class="frag" style="left:{{mm .X}};top:{{mm .Y}};width:{{mm .W}};line-height:{{mm .H}};{{textStyle .}}">{{.Text}}</div>
{{- else}}
<img class="frag" style="left:{{mm .X}};top:{{mm .Y}};width:{{mm .W}};height:{{mm .H}}" src="{{dataURI .}}" alt="">
{{- end}}
{{- end}}
</div>
{{- end}}
</body>
</html>
`

var htmlTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"isRect": func(f layout.Fragment) bool { return f.Kind == layout.KindRect },
	"isText": func(f layout.Fragment) bool { return f.Kind == layout.KindText },
	"mm":     func(v float64) template.CSS { return template.CSS(fmt.Sprintf("%.3fmm", v)) },
	"rectStyle": func(f layout.Fragment) template.CSS {
		s := ""
		if f.Filled {
			s += fmt.Sprintf("background:rgb(%d,%d,%d);", f.Fill.R, f.Fill.G, f.Fill.B)
		}
		if f.Stroked {
			s += fmt.Sprintf("border:0.2mm solid rgb(%d,%d,%d);box-sizing:border-box;", f.Stroke.R, f.Stroke.G, f.Stroke.B)
		}
		return template.CSS(s)
	},
	"textStyle": func(f layout.Fragment) template.CSS {
		s := fmt.Sprintf("font-size:%.1fpt;color:rgb(%d,%d,%d);", f.FontSize, f.Color.R, f.Color.G, f.Color.B)
		if f.Bold {
			s += "font-weight:bold;"
		}
		switch f.Align {
		case layout.AlignRight:
			s += "text-align:right;"
		case layout.AlignCenter:
			s += "text-align:center;"
		}
		return template.CSS(s)
	},
	"dataURI": func(f layout.Fragment) template.URL {
		return template.URL("data:image/" + f.ImageFmt + ";base64," + base64.StdEncoding.EncodeToString(f.Image))
	},
}).Parse(htmlDocument))

// WriteHTML renders the document for the screen/print target.
func WriteHTML(doc *layout.Document, w io.Writer) error {
	return htmlTmpl.Execute(w, doc)
}
