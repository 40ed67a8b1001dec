package dialogue

import (
	"strings"

	"comanda/internal/extract"
	"comanda/internal/menu"
)

// escalationFuzzyCutoff is the alias similarity floor used when deciding
// whether an off-menu hint actually refers to something on the menu.
const escalationFuzzyCutoff = 0.90

// askKeywords are explicit requests to consult the kitchen.
var askKeywords = []string{
	"pregunta a la cocina", "pregúntale a la cocina", "preguntale a la cocina",
	"consulta con la cocina", "consultar con la cocina", "consulta a la cocina",
	"pueden consultar", "pueden preguntar",
	"ask the kitchen", "check with the kitchen", "consult the kitchen",
	"can you ask",
}

// modifierKeywords introduce a customization; the word that follows decides
// whether the kitchen has to weigh in.
var modifierKeywords = map[string]bool{
	"sin": true, "without": true,
	"con": true, "with": true,
	"extra":  true,
	"doble":  true, "double": true,
	"triple": true,
}

// easyIngredients are customizations staff handle without asking the kitchen.
var easyIngredients = map[string]bool{
	"cebolla": true, "onion": true, "onions": true,
	"salsa": true, "sauce": true,
	"papas": true, "fries": true,
	"picante": true, "spicy": true,
	"sal": true, "salt": true,
	"azucar": true, "azúcar": true, "sugar": true,
	"hielo": true, "ice": true,
	"limon": true, "limón": true, "lemon": true,
	"mayonesa": true, "mayo": true,
	"ketchup": true,
}

// offMenuHints are dessert/topping words that typical base menus lack.
var offMenuHints = []string{
	"almíbar", "almibar", "syrup", "sirope",
	"brownie", "helado", "ice cream", "nutella",
	"caramelo", "caramel", "chantilly", "crema batida", "whipped cream",
	"topping", "miel", "honey", "cheesecake", "flan",
}

// ShouldEscalate decides whether a user message needs a kitchen decision.
// First match wins: explicit ask, non-trivial customization, or an off-menu
// hint with no recognizable menu reference. Generic chatter never escalates.
func ShouldEscalate(text string, ix *menu.AliasIndex) bool {
	low := strings.ToLower(text)

	for _, kw := range askKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}

	tokens := extract.Tokens(low)
	for i, tok := range tokens {
		if modifierKeywords[tok] && i+1 < len(tokens) && !easyIngredients[tokens[i+1]] {
			return true
		}
	}

	for _, hint := range offMenuHints {
		if !strings.Contains(low, hint) {
			continue
		}
		for _, tok := range tokens {
			if _, ok := ix.Resolve(tok); ok {
				return false
			}
			if _, ok := ix.ResolveFuzzy(tok, escalationFuzzyCutoff); ok {
				return false
			}
		}
		return true
	}
	return false
}
