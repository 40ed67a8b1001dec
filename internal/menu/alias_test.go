package menu

import (
	"testing"

	"comanda/internal/models"
)

func demoMenu() []models.MenuItem {
	return []models.MenuItem{
		{Name: "Hamburguesa", Description: "Clásica con queso", Price: 5.50},
		{Name: "Agua", Description: "Botella 500 ml", Price: 1.00},
		{Name: "Postre", Description: "Brownie de chocolate", Price: 3.25, SpecialNotes: "brownie, dulce"},
	}
}

func TestAliasIndex_ResolvesNameAndPlurals(t *testing.T) {
	ix := BuildAliasIndex(demoMenu())

	cases := map[string]string{
		"hamburguesa":  "Hamburguesa",
		"hamburguesas": "Hamburguesa",
		"agua":         "Agua",
		"aguas":        "Agua",
		"postre":       "Postre",
		"postres":      "Postre",
	}
	for token, want := range cases {
		got, ok := ix.Resolve(token)
		if !ok {
			t.Fatalf("Expected token %q to resolve, but it did not", token)
		}
		if got != want {
			t.Errorf("Expected %q to resolve to %q, got %q", token, want, got)
		}
	}
}

func TestAliasIndex_DerivedAliases(t *testing.T) {
	ix := BuildAliasIndex(demoMenu())

	// Description first word and special-notes tags become aliases.
	if got, ok := ix.Resolve("clásica"); !ok || got != "Hamburguesa" {
		t.Errorf("Expected description alias 'clásica' -> Hamburguesa, got %q (ok=%v)", got, ok)
	}
	if got, ok := ix.Resolve("brownie"); !ok || got != "Postre" {
		t.Errorf("Expected tag alias 'brownie' -> Postre, got %q (ok=%v)", got, ok)
	}
	if got, ok := ix.Resolve("dulce"); !ok || got != "Postre" {
		t.Errorf("Expected tag alias 'dulce' -> Postre, got %q (ok=%v)", got, ok)
	}
}

func TestAliasIndex_ShortDerivedAliasesAreDropped(t *testing.T) {
	items := []models.MenuItem{
		{Name: "Te", Description: "De hierbas", SpecialNotes: "ok"},
	}
	ix := BuildAliasIndex(items)

	// The name itself always registers, noise-length derivations do not.
	if _, ok := ix.Resolve("te"); !ok {
		t.Error("Expected item name to resolve regardless of length")
	}
	if _, ok := ix.Resolve("ok"); ok {
		t.Error("Expected a two-rune tag to be dropped")
	}
	if _, ok := ix.Resolve("de"); ok {
		t.Error("Expected a two-rune description word to be dropped")
	}
}

func TestAliasIndex_LastRegistrationWins(t *testing.T) {
	items := []models.MenuItem{
		{Name: "Flan", SpecialNotes: "dulce"},
		{Name: "Postre", SpecialNotes: "dulce"},
	}
	ix := BuildAliasIndex(items)

	got, ok := ix.Resolve("dulce")
	if !ok || got != "Postre" {
		t.Errorf("Expected the later item to own the shared alias, got %q (ok=%v)", got, ok)
	}
}

func TestAliasIndex_ResolveFuzzy(t *testing.T) {
	ix := BuildAliasIndex(demoMenu())

	got, ok := ix.ResolveFuzzy("hamburgesa", 0.86)
	if !ok || got != "Hamburguesa" {
		t.Errorf("Expected misspelling to resolve to Hamburguesa, got %q (ok=%v)", got, ok)
	}

	if _, ok := ix.ResolveFuzzy("pizza", 0.86); ok {
		t.Error("Expected an unrelated token not to resolve")
	}
}

func TestSimilarity(t *testing.T) {
	if s := Similarity("agua", "agua"); s != 1 {
		t.Errorf("Expected identical strings to score 1, got %f", s)
	}
	if s := Similarity("", ""); s != 1 {
		t.Errorf("Expected empty strings to score 1, got %f", s)
	}
	if s := Similarity("hamburguesa", "hamburgesa"); s < 0.86 {
		t.Errorf("Expected one dropped letter to stay above the cutoff, got %f", s)
	}
	if s := Similarity("agua", "postre"); s > 0.5 {
		t.Errorf("Expected unrelated words to score low, got %f", s)
	}
}
