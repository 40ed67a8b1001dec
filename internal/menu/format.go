package menu

import (
	"fmt"
	"strings"

	"comanda/internal/models"
)

// maxPromptItems caps how much of the menu goes into the system prompt.
const maxPromptItems = 120

// FormatForPrompt renders the menu as the bulleted text block embedded in
// the assistant's system prompt.
func FormatForPrompt(items []models.MenuItem) string {
	var lines []string
	for i, it := range items {
		if i >= maxPromptItems {
			break
		}
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		cur := it.Currency
		if cur == "" {
			cur = "USD"
		}
		line := fmt.Sprintf("- %s (%s %.2f)", name, cur, it.Price)
		if notes := strings.TrimSpace(it.SpecialNotes); notes != "" {
			line += fmt.Sprintf(" — [%s]", notes)
		}
		if desc := strings.TrimSpace(it.Description); desc != "" {
			line += "\n  " + desc
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
