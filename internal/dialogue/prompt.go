package dialogue

import (
	"fmt"

	"comanda/internal/config"
	"comanda/internal/models"
)

// SystemPrompt builds the instruction block sent to the completion provider.
// The menu text comes from menu.FormatForPrompt.
func SystemPrompt(cfg config.Config, menuText string) string {
	lang := cfg.Language
	tone := cfg.Tone
	name := cfg.AssistantName
	if lang == "es" {
		if tone == "" {
			tone = "Amable y profesional; breve, guiado."
		}
		if name == "" {
			name = "Asistente"
		}
		return fmt.Sprintf(
			"Eres %s, un asistente de pedidos para un restaurante. Responde SIEMPRE en español.\n"+
				"Tu tono: %s\n\n"+
				"Objetivo: ayudar al cliente a armar su pedido basado en el menú y confirmar datos.\n"+
				"Sugiere acompañantes y bebidas. Si piden algo fuera del menú, pregunta al restaurante si es posible y espera confirmación.\n\n"+
				"🍽 Menú disponible:\n%s\n\n"+
				"📌 Comportamiento:\n"+
				"- Cálido, claro, paso a paso. No inventes productos/ingredientes.\n"+
				"- Personalizaciones: acepta sin cebolla, salsa aparte, extra papas, etc. Ajusta precio si aplica.\n"+
				"- Usa la FAQ interna si hay respuesta registrada.\n"+
				"- Lleva un subtotal mientras propone extras y adicionales.\n\n"+
				"🧾 Cuando tengas el pedido y muestres el total, menciona explícitamente:\n"+
				"  \"Ahora necesito unos datos para completar tu pedido…\" y luego pregunta UNO A UNO:\n"+
				"  1) nombre  2) teléfono  3) pickup o delivery  4) dirección (si delivery) o minutos de retiro (si pickup)  5) método de pago.\n"+
				"NO invites a confirmar hasta tener todos los datos.\n\n"+
				"✅ Cuando todo esté completo: \"Pedido listo para confirmación. Por favor, presiona el botón Confirmar Pedido.\"\n"+
				"🛑 Si dice \"stop\", termina con amabilidad.",
			name, tone, menuText)
	}
	if tone == "" {
		tone = "Friendly and professional; concise, guided."
	}
	if name == "" {
		name = "Assistant"
	}
	return fmt.Sprintf(
		"You are %s, an order assistant for a restaurant. ALWAYS respond in English.\n"+
			"Your tone: %s\n\n"+
			"Objective: help the customer place their order based on the menu and confirm details.\n"+
			"Suggest side dishes and drinks. If they order something off the menu, ask the restaurant if it's possible and wait for confirmation.\n\n"+
			"🍽 Available menu:\n%s\n\n"+
			"📌 Behavior:\n"+
			"- Warm, clear, step by step. Do not invent products/ingredients.\n"+
			"- Customizations: accept no onions, sauce on the side, extra fries, etc. Adjust price if applicable.\n"+
			"- Use the internal FAQ if there is a recorded answer.\n"+
			"- Keep a subtotal while proposing extras and additions.\n\n"+
			"🧾 When you have the order and show the total, explicitly mention:\n"+
			"  \"Now I need some information to complete your order...\" and then ask ONE BY ONE:\n"+
			"  1) name  2) phone number  3) pickup or delivery  4) address (if delivery) or pickup time (if pickup)  5) payment method.\n"+
			"DO NOT invite confirmation until you have all the information.\n\n"+
			"✅ When everything is complete: \"Order ready for confirmation. Please press the Confirm Order button.\"\n"+
			"🛑 If they say \"stop\", end politely.",
		name, tone, menuText)
}

// QuestionFor returns the slot-filling question for a missing client field.
func QuestionFor(field, lang string) string {
	type q struct{ es, en string }
	questions := map[string]q{
		models.FieldName:          {"¿Cuál es tu nombre?", "What is your name?"},
		models.FieldPhone:         {"¿Cuál es tu número de teléfono?", "What is your phone number?"},
		models.FieldDeliveryType:  {"¿Será para recoger (pickup) o entrega a domicilio?", "Pickup or delivery?"},
		models.FieldAddress:       {"¿Cuál es la dirección para la entrega?", "What is the delivery address?"},
		models.FieldPickupETAMin:  {"¿En cuántos minutos pasarías a recoger?", "In how many minutes would you pick up?"},
		models.FieldPaymentMethod: {"¿Cuál es tu método de pago (efectivo, tarjeta u online)?", "What is your payment method (cash, card, online)?"},
	}
	qq, ok := questions[field]
	if !ok {
		return ""
	}
	if lang == "es" {
		return qq.es
	}
	return qq.en
}

// Greeting opens every new conversation.
func Greeting(lang string) string {
	if lang == "es" {
		return "Gracias por comunicarte con nosotros. ¿Cómo podemos ayudarte?"
	}
	return "Thanks for contacting us. How can we help?"
}

// collectIntro announces the switch into slot filling.
func collectIntro(lang string) string {
	if lang == "es" {
		return "Ahora necesito unos datos para completar tu pedido. Te los pediré uno a uno."
	}
	return "I now need a few details to complete your order. I'll ask for them one by one."
}

// confirmPrompt is emitted exactly once, when nothing is missing.
func confirmPrompt(lang string) string {
	if lang == "es" {
		return "Pedido listo para confirmación. Por favor, presiona el botón Confirmar."
	}
	return "Order ready for confirmation. Please press the Confirm button."
}

// askMore is the single "anything else?" nudge.
func askMore(lang string) string {
	if lang == "es" {
		return "¿Deseas agregar algo más a tu pedido?"
	}
	return "Would you like anything else with your order?"
}

// escalationAck acknowledges that the kitchen was asked; the LLM is not
// invoked for escalated turns.
func escalationAck(lang string) string {
	if lang == "es" {
		return "Estamos consultando con la cocina tu pedido. Te confirmamos en un momento. ⏳"
	}
	return "We're checking with the kitchen on that. We'll confirm shortly. ⏳"
}

// confirmedMessage closes the dialogue after the order is created.
func confirmedMessage(lang string) string {
	if lang == "es" {
		return "¡Pedido confirmado! Lo estamos preparando 🚗💨 si es a domicilio, o listo según tu hora de retiro."
	}
	return "Order confirmed! We're on it 🚗💨 for delivery, or ready at your pickup time."
}

// NarrateDecision turns a resolved pending question into the assistant turn
// that surfaces the kitchen's decision to the client.
func NarrateDecision(p models.PendingQuestion) string {
	es := p.Language == "es"
	switch models.PendingStatus(p.Status) {
	case models.PendingStatusApproved:
		if es {
			return fmt.Sprintf("✅ La cocina aprobó tu consulta (\"%s\"): %s", p.Question, p.Answer)
		}
		return fmt.Sprintf("✅ The kitchen approved your request (\"%s\"): %s", p.Question, p.Answer)
	case models.PendingStatusDenied:
		if es {
			return fmt.Sprintf("❌ La cocina no puede con tu consulta (\"%s\"): %s", p.Question, p.Answer)
		}
		return fmt.Sprintf("❌ The kitchen can't do that (\"%s\"): %s", p.Question, p.Answer)
	default:
		if es {
			return fmt.Sprintf("💬 Respuesta de la cocina sobre \"%s\": %s", p.Question, p.Answer)
		}
		return fmt.Sprintf("💬 Kitchen reply about \"%s\": %s", p.Question, p.Answer)
	}
}
