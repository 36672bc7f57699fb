package analysis

import (
	"strings"
	"testing"
)

func TestRegistry_DefaultHasAllMethods(t *testing.T) {
	r := Default()
	infos := r.List()
	if len(infos) != 6 {
		t.Fatalf("expected 6 registered methods, got %d", len(infos))
	}

	want := []string{
		"As-Planned vs As-Built",
		"Collapsed As-Built (But-For)",
		"Contemporaneous Period Analysis",
		"Impacted As-Planned",
		"Time Impact Analysis (TIA)",
		"Windows Analysis",
	}
	for i, name := range want {
		if infos[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, infos[i].Name)
		}
		if infos[i].Description == "" {
			t.Errorf("%s: empty description", name)
		}
	}
}

func TestRegistry_GetUnknownListsAvailable(t *testing.T) {
	r := Default()
	_, err := r.Get("Global Impact Technique")
	if err == nil {
		t.Fatal("expected error for unknown method")
	}
	if !strings.Contains(err.Error(), "Windows Analysis") {
		t.Errorf("error should list available methods, got: %v", err)
	}
}

func TestRegistry_ReregisterKeepsFirst(t *testing.T) {
	r := NewRegistry()
	first := &AsPlannedVsAsBuilt{}
	r.Register(first)
	r.Register(&AsPlannedVsAsBuilt{})

	if len(r.List()) != 1 {
		t.Fatalf("expected 1 method after duplicate registration, got %d", len(r.List()))
	}
	m, err := r.Get("As-Planned vs As-Built")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != Method(first) {
		t.Error("duplicate registration should keep the first instance")
	}
}

func TestRegistry_EveryMethodHasPrompts(t *testing.T) {
	for _, info := range Default().List() {
		m, err := Default().Get(info.Name)
		if err != nil {
			t.Fatalf("%s: %v", info.Name, err)
		}
		for _, p := range m.Prompts() {
			if p.Key == "" || p.Label == "" {
				t.Errorf("%s: prompt missing key or label: %+v", info.Name, p)
			}
			if p.Type == "select" && len(p.Options) == 0 {
				t.Errorf("%s: select prompt %q has no options", info.Name, p.Key)
			}
		}
	}
}
