package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-custdoc/pkg/config"
	"github.com/goliatone/go-custdoc/pkg/fieldmap"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
}

func passportRecord(nationality string) map[string]any {
	return map[string]any{
		"customer_id": "c-100",
		"personal_details": map[string]any{
			"name":          "Lin Wei",
			"date_of_birth": "1992-05-14",
		},
		"demographics": map[string]any{
			"country": "SG",
		},
		"id_documents": map[string]any{
			"passport": map[string]any{
				"passport_number": "KJ1234567",
				"nationality":     nationality,
				"issuing_country": "SG",
				"expiry_date":     "2031-01-02",
			},
		},
	}
}

func passportConfig(t *testing.T) config.Rendering {
	t.Helper()
	cfg, err := config.ParseRendering([]byte(`{
		"template": "passport.html",
		"fields": [
			{"key": "passport_number", "source": "/id_documents/passport/passport_number"},
			{"key": "nationality", "source": "/id_documents/passport/nationality"},
			{"key": "expiry", "source": "/id_documents/passport/expiry_date", "format": "date:%d %b %Y"}
		]
	}`), "passport.json")
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return cfg
}

func TestRenderer_WritesDocument(t *testing.T) {
	templates := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "docs")
	writeTemplate(t, templates, "passport.html",
		`<p>{{ fields.passport_number }} expires {{ fields.expiry }}</p>`)

	engine, err := NewEngine(WithBaseDir(templates))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	renderer, err := NewRenderer(Passport, passportConfig(t), engine, outDir)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	doc, err := renderer.Render(passportRecord("FR"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if doc.Status != StatusRendered {
		t.Fatalf("expected rendered, got %s", doc.Status)
	}
	if want := filepath.Join(outDir, "passport_c-100.html"); doc.Path != want {
		t.Fatalf("expected path %s, got %s", want, doc.Path)
	}

	content, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(content), "KJ1234567 expires 02 Jan 2031") {
		t.Fatalf("unexpected output: %s", content)
	}
}

func TestRenderer_EscapesMarkup(t *testing.T) {
	templates := t.TempDir()
	writeTemplate(t, templates, "passport.html", `<p>{{ fields.nationality }}</p>`)

	engine, err := NewEngine(WithBaseDir(templates))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	renderer, err := NewRenderer(Passport, passportConfig(t), engine, t.TempDir())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	doc, err := renderer.Render(passportRecord(`<script>alert(1)</script>`))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	content, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Contains(string(content), "<script>") {
		t.Fatalf("markup not escaped: %s", content)
	}
}

func TestRenderer_VariantPreferred(t *testing.T) {
	templates := t.TempDir()
	writeTemplate(t, templates, "passport.html", `generic`)
	writeTemplate(t, templates, "passport_SG.html", `singapore variant`)

	engine, err := NewEngine(WithBaseDir(templates))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	renderer, err := NewRenderer(Passport, passportConfig(t), engine, t.TempDir())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	// FR is outside the allow-list, so the SG default variant applies.
	doc, err := renderer.Render(passportRecord("FR"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	content, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(content), "singapore variant") {
		t.Fatalf("expected variant template, got %s", content)
	}
}

func TestRenderer_VariantMissingFallsBackToGeneric(t *testing.T) {
	templates := t.TempDir()
	writeTemplate(t, templates, "passport.html", `generic`)

	engine, err := NewEngine(WithBaseDir(templates))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	renderer, err := NewRenderer(Passport, passportConfig(t), engine, t.TempDir())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	doc, err := renderer.Render(passportRecord("FR"))
	if err != nil {
		t.Fatalf("fallback must not raise: %v", err)
	}
	content, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(content), "generic") {
		t.Fatalf("expected generic template, got %s", content)
	}
}

func TestRenderer_BrokenVariantTemplateSurfaces(t *testing.T) {
	templates := t.TempDir()
	writeTemplate(t, templates, "passport.html", `generic`)
	writeTemplate(t, templates, "passport_SG.html", `{{ broken`)

	engine, err := NewEngine(WithBaseDir(templates))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	renderer, err := NewRenderer(Passport, passportConfig(t), engine, t.TempDir())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	doc, err := renderer.Render(passportRecord("SG"))
	if err == nil {
		t.Fatal("a variant template that fails to parse must not be masked by the generic fallback")
	}
	var notFound TemplateNotFoundError
	if errors.As(err, &notFound) {
		t.Fatalf("expected a load error, got %v", err)
	}
	if doc.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", doc.Status)
	}
}

func TestEngine_MissingTemplateIsTyped(t *testing.T) {
	engine, err := NewEngine(WithBaseDir(t.TempDir()))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	_, err = engine.Template("missing.html")
	var notFound TemplateNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected TemplateNotFoundError, got %v", err)
	}
	if notFound.Name != "missing.html" {
		t.Fatalf("expected missing.html, got %s", notFound.Name)
	}
}

func TestRenderer_GenericMissingFails(t *testing.T) {
	engine, err := NewEngine(WithBaseDir(t.TempDir()))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	renderer, err := NewRenderer(Passport, passportConfig(t), engine, t.TempDir())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	doc, err := renderer.Render(passportRecord("FR"))
	if err == nil {
		t.Fatal("expected an error when the generic template is also missing")
	}
	if doc.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", doc.Status)
	}
}

func TestRenderer_NoPassportIsSkipped(t *testing.T) {
	templates := t.TempDir()
	writeTemplate(t, templates, "passport.html", `generic`)

	engine, err := NewEngine(WithBaseDir(templates))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	renderer, err := NewRenderer(Passport, passportConfig(t), engine, t.TempDir())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	record := passportRecord("SG")
	delete(record["id_documents"].(map[string]any), "passport")

	doc, err := renderer.Render(record)
	if err != nil {
		t.Fatalf("missing passport is not an error: %v", err)
	}
	if doc.Status != StatusSkipped {
		t.Fatalf("expected skipped, got %s", doc.Status)
	}
	if doc.Path != "" {
		t.Fatalf("skipped outcome should not produce a file, got %s", doc.Path)
	}
}

func TestRenderer_ComputedFieldUsesRegistryClock(t *testing.T) {
	templates := t.TempDir()
	writeTemplate(t, templates, "nric.html", `issued {{ fields.issued_on }}`)

	cfg, err := config.ParseRendering([]byte(`{
		"template": "nric.html",
		"fields": [{"key": "issued_on", "source": "func:today", "format": "date:%d %b %Y"}]
	}`), "nric.json")
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}

	engine, err := NewEngine(WithBaseDir(templates))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	fixed := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	funcs := fieldmap.NewRegistry(fieldmap.WithNow(func() time.Time { return fixed }))
	renderer, err := NewRenderer(NRIC, cfg, engine, t.TempDir(), WithFuncRegistry(funcs))
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	doc, err := renderer.Render(map[string]any{"customer_id": "c-1"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	content, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(content), "issued 09 Mar 2024") {
		t.Fatalf("unexpected output: %s", content)
	}
}

func TestRenderer_EmbeddedDefaultsAvailable(t *testing.T) {
	engine, err := NewEngine(WithFS(DefaultTemplates()))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if _, err := engine.Template("passport.html"); err != nil {
		t.Fatalf("embedded passport template should load: %v", err)
	}
	if _, err := engine.Template("nric.html"); err != nil {
		t.Fatalf("embedded nric template should load: %v", err)
	}
}
