package scope

import "testing"

func TestRegistry(t *testing.T) {
	all := All()
	if len(all) != 4 {
		t.Fatalf("expected 4 scopes, got %d", len(all))
	}
	all[0].Value = "mutated"
	if Values()[0] != Assets {
		t.Error("All must return a copy")
	}

	if s, ok := Lookup(Pages); !ok || s.Display != "Pages" {
		t.Errorf("Lookup(pages) = %+v, %v", s, ok)
	}
	if _, ok := Lookup("users"); ok {
		t.Error("users is not a registered scope")
	}
	if Display("alerts") != "alerts" {
		t.Error("unregistered display should echo the value")
	}

	base := Baseline()
	if len(base) != 2 || base[0].Value != Assets || base[1].Value != Forms {
		t.Errorf("baseline = %+v", base)
	}
}
