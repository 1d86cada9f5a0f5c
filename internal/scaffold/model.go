package scaffold

// Core data model consumed by the generators.

// Endpoint describes one operation of the demo API. Method is matched
// case-insensitively by every consumer; FuncName is interpolated verbatim
// into the server scaffold, so callers own its validity as an identifier.
type Endpoint struct {
	Path     string `yaml:"path" json:"path"`
	Method   string `yaml:"method" json:"method"`
	Summary  string `yaml:"summary,omitempty" json:"summary,omitempty"`
	FuncName string `yaml:"func_name" json:"func_name"`
}

// Request carries everything a single generation run needs. It is assembled
// fresh by the caller per run and never mutated by the generators.
type Request struct {
	Name        string     `yaml:"name" json:"name"`
	Version     string     `yaml:"version" json:"version"`
	Description string     `yaml:"description" json:"description"`
	Endpoints   []Endpoint `yaml:"endpoints" json:"endpoints"`
}

// DefaultVersion is used when a request omits the version field.
const DefaultVersion = "0.1.0"

var demoCatalog = []struct {
	name      string
	endpoints []Endpoint
}{
	{
		name: "Todo API",
		endpoints: []Endpoint{
			{Path: "/todos", Method: "GET", Summary: "List todos", FuncName: "list_todos"},
			{Path: "/todos", Method: "POST", Summary: "Create todo", FuncName: "create_todo"},
		},
	},
	{
		name: "Notes API",
		endpoints: []Endpoint{
			{Path: "/notes", Method: "GET", Summary: "List notes", FuncName: "list_notes"},
			{Path: "/notes", Method: "POST", Summary: "Create note", FuncName: "create_note"},
		},
	},
	{
		name: "Calculator API",
		endpoints: []Endpoint{
			{Path: "/add", Method: "GET", Summary: "Add two numbers", FuncName: "add"},
			{Path: "/multiply", Method: "GET", Summary: "Multiply two numbers", FuncName: "multiply"},
		},
	},
}

// DemoNames lists the built-in demo APIs in catalog order.
func DemoNames() []string {
	names := make([]string, 0, len(demoCatalog))
	for _, d := range demoCatalog {
		names = append(names, d.name)
	}
	return names
}

// DemoRequest returns a fully populated Request for a built-in demo.
// The boolean reports whether the name matched a catalog entry.
func DemoRequest(name string) (Request, bool) {
	for _, d := range demoCatalog {
		if d.name == name {
			eps := make([]Endpoint, len(d.endpoints))
			copy(eps, d.endpoints)
			return Request{
				Name:        d.name,
				Version:     DefaultVersion,
				Description: "Auto-generated " + d.name + " demo project.",
				Endpoints:   eps,
			}, true
		}
	}
	return Request{}, false
}

// CustomRequest builds the custom-requirement request. The free-form
// requirement text is accepted but not parsed: the result always carries the
// fixed item-management template, matching the documented behavior of the
// custom path.
func CustomRequest(name, version, description, requirement string) Request {
	_ = requirement
	if name == "" {
		name = "Custom API"
	}
	if version == "" {
		version = DefaultVersion
	}
	if description == "" {
		description = "Generated from natural language requirement."
	}
	return Request{
		Name:        name,
		Version:     version,
		Description: description,
		Endpoints: []Endpoint{
			{Path: "/items", Method: "GET", Summary: "List items", FuncName: "list_items"},
			{Path: "/items", Method: "POST", Summary: "Create item", FuncName: "create_item"},
		},
	}
}
