package extract

import (
	"regexp"
	"strconv"
	"strings"

	"comanda/internal/menu"
	"comanda/internal/models"
)

// fuzzyCutoff is the edit-similarity floor for the fallback matcher. Fuzzy
// matching only runs when the whole text produced zero exact alias hits.
const fuzzyCutoff = 0.86

// Items scans the user side of a conversation for menu mentions and
// quantities and returns one draft item per canonical menu name.
func Items(turns []models.ConversationTurn, menuItems []models.MenuItem, lang string) []models.OrderDraftItem {
	text := strings.ToLower(joinUserTurns(turns, "\n"))
	ix := menu.BuildAliasIndex(menuItems)
	tokens := tokenPattern.FindAllString(text, -1)

	found := map[string]int{}
	for _, tok := range tokens {
		if name, ok := ix.Resolve(tok); ok {
			found[name]++
		}
	}

	// Fuzzy is a last resort: exact matches anywhere suppress it.
	if len(found) == 0 {
		seen := map[string]bool{}
		for _, tok := range tokens {
			if seen[tok] {
				continue
			}
			seen[tok] = true
			if name, ok := ix.ResolveFuzzy(tok, fuzzyCutoff); ok {
				found[name]++
			}
		}
	}

	numbers := numbersInText(text, lang)

	var items []models.OrderDraftItem
	for _, it := range menuItems {
		count, ok := found[it.Name]
		if !ok {
			continue
		}
		qty := quantityBefore(text, strings.ToLower(it.Name), numbers)
		if count > qty {
			qty = count
		}
		items = append(items, models.OrderDraftItem{
			Name:      it.Name,
			Qty:       qty,
			UnitPrice: it.Price,
		})
	}
	return items
}

// quantityBefore finds "<digit-or-numeral> <name>(s|es)?" in the lowered text
// and returns the stated quantity, defaulting to 1.
func quantityBefore(text, nameLow string, numbers map[string]int) int {
	alts := []string{`\d+`}
	for w := range numbers {
		alts = append(alts, regexp.QuoteMeta(w))
	}
	pat, err := regexp.Compile(`\b(` + strings.Join(alts, "|") + `)\s+` + regexp.QuoteMeta(nameLow) + `(es|s)?\b`)
	if err != nil {
		return 1
	}
	m := pat.FindStringSubmatch(text)
	if m == nil {
		return 1
	}
	if n, err := strconv.Atoi(m[1]); err == nil {
		return n
	}
	if n, ok := numbers[m[1]]; ok {
		return n
	}
	return 1
}

func joinUserTurns(turns []models.ConversationTurn, sep string) string {
	var parts []string
	for _, t := range turns {
		if t.Role == models.RoleUser {
			parts = append(parts, t.Content)
		}
	}
	return strings.Join(parts, sep)
}
