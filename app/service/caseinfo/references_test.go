package caseinfo

import "testing"

func TestExtractReferences_ExplicitSection(t *testing.T) {
	text := "Case body here.\n\nReferences:\nHealth Canada\nCPS\n\nAppendix follows."

	got := ExtractReferences(text)
	want := "Health Canada; CPS"

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractReferences_SectionAtEndOfText(t *testing.T) {
	text := "Case body here.\n\nReferences:\nProduct Monograph"

	got := ExtractReferences(text)

	if got != "Product Monograph" {
		t.Errorf("expected Product Monograph, got %q", got)
	}
}

func TestExtractReferences_KeywordScanSortedDeduplicated(t *testing.T) {
	text := "Consult NAPRA guidance. The FDA label notes this. NAPRA repeats."

	got := ExtractReferences(text)
	want := "FDA; NAPRA"

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractReferences_Fallback(t *testing.T) {
	got := ExtractReferences("no recognizable sources anywhere")

	if got != FallbackReferences {
		t.Errorf("expected fallback, got %q", got)
	}
	if got == "" {
		t.Error("references must never be empty")
	}
}
