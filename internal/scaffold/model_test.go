package scaffold

import (
	"strings"
	"testing"
)

func TestDemoNames(t *testing.T) {
	got := DemoNames()
	want := []string{"Todo API", "Notes API", "Calculator API"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("DemoNames() = %v, want %v", got, want)
	}
}

func TestDemoRequest(t *testing.T) {
	req, ok := DemoRequest("Notes API")
	if !ok {
		t.Fatalf("Notes API should exist")
	}
	if req.Version != DefaultVersion {
		t.Errorf("version = %q, want %q", req.Version, DefaultVersion)
	}
	if len(req.Endpoints) != 2 {
		t.Fatalf("endpoint count = %d, want 2", len(req.Endpoints))
	}
	if req.Endpoints[0].FuncName != "list_notes" || req.Endpoints[1].FuncName != "create_note" {
		t.Errorf("unexpected endpoints: %+v", req.Endpoints)
	}

	if _, ok := DemoRequest("Missing API"); ok {
		t.Errorf("unknown demo name should not resolve")
	}
}

func TestDemoRequest_ReturnsIndependentCopies(t *testing.T) {
	first, _ := DemoRequest("Todo API")
	first.Endpoints[0].Summary = "mutated"
	second, _ := DemoRequest("Todo API")
	if second.Endpoints[0].Summary == "mutated" {
		t.Errorf("catalog entries must not share backing storage with callers")
	}
}

func TestCustomRequest_IgnoresRequirementText(t *testing.T) {
	a := CustomRequest("Custom API", "0.1.0", "desc", "I want a task manager with auth")
	b := CustomRequest("Custom API", "0.1.0", "desc", "something entirely different")
	if len(a.Endpoints) != 2 || len(b.Endpoints) != 2 {
		t.Fatalf("custom path should always carry the fixed two-endpoint template")
	}
	for i := range a.Endpoints {
		if a.Endpoints[i] != b.Endpoints[i] {
			t.Errorf("requirement text must not influence the template: %+v vs %+v", a.Endpoints[i], b.Endpoints[i])
		}
	}
	if a.Endpoints[0].Path != "/items" || a.Endpoints[1].Method != "POST" {
		t.Errorf("unexpected template endpoints: %+v", a.Endpoints)
	}
}

func TestCustomRequest_Defaults(t *testing.T) {
	req := CustomRequest("", "", "", "")
	if req.Name != "Custom API" {
		t.Errorf("name = %q", req.Name)
	}
	if req.Version != DefaultVersion {
		t.Errorf("version = %q", req.Version)
	}
	if req.Description == "" {
		t.Errorf("description should have a default")
	}
}
