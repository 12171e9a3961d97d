package render

import "testing"

func TestSelector_AllowListed(t *testing.T) {
	selector, err := NewSelector("passport_", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	variant := selector.Variant(map[string]any{"nationality": "MY"}, nil)
	if variant != "MY" {
		t.Fatalf("expected MY, got %q", variant)
	}
	if name := selector.TemplateName(variant); name != "passport_MY.html" {
		t.Fatalf("unexpected template name %q", name)
	}
}

func TestSelector_OutsideAllowListDefaults(t *testing.T) {
	selector, err := NewSelector("passport_", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if variant := selector.Variant(map[string]any{"nationality": "FR"}, nil); variant != DefaultVariant {
		t.Fatalf("expected default variant, got %q", variant)
	}
}

func TestSelector_FallsBackToCountryField(t *testing.T) {
	selector, err := NewSelector("passport_", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if variant := selector.Variant(map[string]any{"country": "CN"}, nil); variant != "CN" {
		t.Fatalf("expected CN, got %q", variant)
	}
}

func TestSelector_FallsBackToRecordCountry(t *testing.T) {
	selector, err := NewSelector("passport_", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	customer := map[string]any{
		"demographics": map[string]any{"country": "IN"},
	}
	if variant := selector.Variant(map[string]any{}, customer); variant != "IN" {
		t.Fatalf("expected IN, got %q", variant)
	}
}

func TestSelector_RuleOverride(t *testing.T) {
	selector, err := NewSelector("passport_", `nationality == "FR" ? "MY" : "SG"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if variant := selector.Variant(map[string]any{"nationality": "FR"}, nil); variant != "MY" {
		t.Fatalf("expected rule result MY, got %q", variant)
	}
}

func TestSelector_RuleRuntimeFailureDegrades(t *testing.T) {
	selector, err := NewSelector("passport_", `customer.missing.deeply`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if variant := selector.Variant(map[string]any{"nationality": "FR"}, map[string]any{}); variant != DefaultVariant {
		t.Fatalf("expected default variant on rule failure, got %q", variant)
	}
}

func TestSelector_BadRuleFailsCompile(t *testing.T) {
	if _, err := NewSelector("passport_", `nationality ==`); err == nil {
		t.Fatal("expected compile error")
	}
}
