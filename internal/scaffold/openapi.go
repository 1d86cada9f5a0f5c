package scaffold

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// BuildOpenAPI renders an OpenAPI 3.0.3 document for the request. The
// document is built as a yaml.v3 node tree rather than marshalled from Go
// maps so that key order follows insertion order instead of being re-sorted.
//
// Duplicate (path, method) pairs overwrite the earlier operation entry; last
// write wins. This mirrors the upstream behavior and is intentional.
func BuildOpenAPI(req Request) (string, error) {
	paths := mappingNode()
	for _, ep := range req.Endpoints {
		method := strings.ToLower(ep.Method)
		op := mappingNode(
			scalarNode("summary"), scalarNode(ep.Summary),
			scalarNode("responses"), mappingNode(
				scalarNode("200"), mappingNode(
					scalarNode("description"), scalarNode("Success"),
				),
			),
		)
		item := childMapping(paths, ep.Path)
		setMappingKey(item, method, op)
	}

	root := mappingNode(
		scalarNode("openapi"), scalarNode("3.0.3"),
		scalarNode("info"), mappingNode(
			scalarNode("title"), scalarNode(req.Name),
			scalarNode("version"), scalarNode(req.Version),
			scalarNode("description"), scalarNode(req.Description),
		),
		scalarNode("servers"), sequenceNode(
			mappingNode(scalarNode("url"), scalarNode("{{baseUrl}}")),
		),
		scalarNode("paths"), paths,
	)

	out, err := yaml.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("scaffold: marshal openapi document: %w", err)
	}
	return string(out), nil
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func mappingNode(kv ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: kv}
}

func sequenceNode(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

// childMapping returns the mapping stored under key, appending an empty one
// when the key is not present yet.
func childMapping(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	child := mappingNode()
	m.Content = append(m.Content, scalarNode(key), child)
	return child
}

// setMappingKey inserts or replaces the value stored under key.
func setMappingKey(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, scalarNode(key), value)
}
