// Package menu builds the alias lookup used to spot catalog items in free
// text, and renders the menu for the assistant prompt.
package menu

import (
	"regexp"
	"strings"

	"comanda/internal/models"

	"github.com/agnivade/levenshtein"
)

var tagSplit = regexp.MustCompile(`[,|/]`)

// AliasIndex maps lowercase text tokens to canonical menu item names. Exact,
// pluralized and tag-derived aliases all point at the same canonical name.
// When two items produce the same alias the later registration wins; menu
// names are expected to be distinct enough that this stays harmless.
type AliasIndex struct {
	aliases map[string]string
}

// BuildAliasIndex builds the index for the given menu. An empty menu yields
// an empty index.
func BuildAliasIndex(items []models.MenuItem) *AliasIndex {
	ix := &AliasIndex{aliases: make(map[string]string)}
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		low := strings.ToLower(name)
		ix.aliases[low] = name
		// Naive Spanish pluralization.
		if !strings.HasSuffix(low, "s") {
			ix.aliases[low+"s"] = name
		}
		if strings.HasSuffix(low, "a") {
			ix.aliases[low[:len(low)-1]+"as"] = name
		}
		if strings.HasSuffix(low, "o") {
			ix.aliases[low[:len(low)-1]+"os"] = name
		}
		if desc := strings.Fields(strings.ToLower(it.Description)); len(desc) > 0 {
			ix.register(desc[0], name)
		}
		for _, tag := range tagSplit.Split(strings.ToLower(it.SpecialNotes), -1) {
			ix.register(strings.TrimSpace(tag), name)
		}
	}
	return ix
}

// register adds a derived alias, guarding against noise words.
func (ix *AliasIndex) register(alias, name string) {
	if len([]rune(alias)) < 3 {
		return
	}
	ix.aliases[alias] = name
}

// Resolve returns the canonical name for an exact lowercase token.
func (ix *AliasIndex) Resolve(token string) (string, bool) {
	name, ok := ix.aliases[token]
	return name, ok
}

// ResolveFuzzy returns the canonical name of the closest alias whose
// normalized edit similarity with token is at least cutoff.
func (ix *AliasIndex) ResolveFuzzy(token string, cutoff float64) (string, bool) {
	bestScore := 0.0
	bestName := ""
	for alias, name := range ix.aliases {
		if s := Similarity(token, alias); s >= cutoff && s > bestScore {
			bestScore = s
			bestName = name
		}
	}
	return bestName, bestName != ""
}

// Len returns the number of registered aliases.
func (ix *AliasIndex) Len() int {
	return len(ix.aliases)
}

// Similarity returns a normalized edit-similarity ratio in [0,1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
