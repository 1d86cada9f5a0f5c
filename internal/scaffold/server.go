package scaffold

import (
	"fmt"
	"strings"
	"text/template"
	"time"
)

// timeNow is swapped out in tests to pin the generation timestamp.
var timeNow = time.Now

// serverPyTemplate renders the FastAPI application source. The handler name
// comes straight from FuncName: an invalid identifier propagates into the
// generated file unchanged (known gap, kept for output fidelity).
var serverPyTemplate = template.Must(template.New("server.py").
	Funcs(template.FuncMap{"lower": strings.ToLower}).
	Parse(`from fastapi import FastAPI

app = FastAPI(title="{{.Title}}", version="{{.Version}}")

@app.get("/health")
async def health():
    return {"status": "ok", "timestamp": "{{.Timestamp}}"}
{{range .Endpoints}}
@app.{{lower .Method}}("{{.Path}}")
async def {{.FuncName}}():
    return {"demo": "{{.Summary}}"}
{{end}}`))

type serverTemplateData struct {
	Title     string
	Version   string
	Timestamp string
	Endpoints []Endpoint
}

// BuildServer renders the server scaffold for the request. The health-check
// timestamp is captured once per call, at generation time, so repeated
// requests against the scaffolded app all report the same instant.
func BuildServer(req Request) (string, error) {
	data := serverTemplateData{
		Title:   req.Name,
		Version: req.Version,
		// Microsecond ISO-8601 without zone suffix, the shape FastAPI
		// projects conventionally log for naive UTC instants.
		Timestamp: timeNow().UTC().Format("2006-01-02T15:04:05.000000"),
		Endpoints: req.Endpoints,
	}
	var b strings.Builder
	if err := serverPyTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("scaffold: render server source: %w", err)
	}
	return b.String(), nil
}
