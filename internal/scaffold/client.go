package scaffold

import (
	"fmt"
	"strings"
)

// BaseURL is the fixed base URL the client demo targets.
const BaseURL = "http://localhost:8000"

// BuildClient renders the client demo script: a preamble declaring the base
// URL, then one request invocation and one status/body print per endpoint,
// in input order. Duplicates are kept as-is.
func BuildClient(endpoints []Endpoint) string {
	var b strings.Builder
	b.WriteString("import requests\n")
	fmt.Fprintf(&b, "BASE_URL = %q\n", BaseURL)
	for _, ep := range endpoints {
		fmt.Fprintf(&b, "resp = requests.%s(f\"{BASE_URL}%s\")\n", strings.ToLower(ep.Method), ep.Path)
		b.WriteString("print(resp.status_code, resp.text)\n")
	}
	return b.String()
}
