package pipeline

// Fallbacks are the fixed answers of the terminal fallback branches and of
// the compose-failure recovery path. Which language they are written in is a
// deployment choice, not pipeline behaviour.
type Fallbacks struct {
	UnknownLanguage  string
	NotLookingForPet string
	ComposeFailed    string
}

var fallbacksByLocale = map[string]Fallbacks{
	"en": {
		UnknownLanguage:  "I'm sorry, but I couldn't detect the language of your message.",
		NotLookingForPet: "I'm sorry, but I can only help with adopting dogs and cats.",
		ComposeFailed:    "There was a problem processing your request. Please try again.",
	},
	"de": {
		UnknownLanguage:  "Es tut mir leid, aber ich konnte die Sprache deiner Nachricht nicht erkennen.",
		NotLookingForPet: "Es tut mir leid, aber ich kann nur bei der Adoption von Hunden und Katzen helfen.",
		ComposeFailed:    "Bei der Verarbeitung deiner Anfrage ist ein Problem aufgetreten. Bitte versuche es erneut.",
	},
}

// FallbacksFor returns the fixed answers for a locale, defaulting to English.
func FallbacksFor(locale string) Fallbacks {
	if fb, ok := fallbacksByLocale[locale]; ok {
		return fb
	}
	return fallbacksByLocale["en"]
}
