package overlay

import (
	"bytes"
	"fmt"
	"html/template"
)

// bannerVars feeds the banner HTML template.
type bannerVars struct {
	BodyWidth int
	FontSize  int
	Color     string
	Lines     []string
}

func renderBannerHTML(vars bannerVars) (string, error) {
	tmpl, err := template.New("banner").Parse(bannerTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

const bannerTemplate = `<html>
  <head>
    <style>
      * {
        margin: 0;
        padding: 0;
        box-sizing: border-box;
        white-space: nowrap;
      }
      html, body {
        height: auto;
        background: transparent;
      }
      body {
        font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
        width: {{.BodyWidth}}px;
        padding: 8px 12px;
        display: inline-flex;
        flex-direction: column;
        gap: 4px;
      }
      .line {
        align-self: flex-start;
        max-width: 100%;
        overflow: hidden;
        text-overflow: ellipsis;
        padding: 4px 10px;
        border-radius: 6px;
        background-color: rgba(0, 0, 0, 0.6);
        border-left: 4px solid {{.Color}};
        font-size: {{.FontSize}}px;
        font-weight: 600;
        color: {{.Color}};
      }
    </style>
  </head>
  <body>
    {{- range .Lines}}
    <div class="line">{{.}}</div>
    {{- end}}
  </body>
</html>`
