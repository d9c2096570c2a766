// Package prompts holds the static templates behind every model call of the
// conversation pipeline. Templates carry no logic; placeholders are filled in
// by the completion service right before the call.
package prompts

import (
	_ "embed"

	"github.com/tmc/langchaingo/prompts"
)

//go:embed detect_language.txt
var detectLanguageTemplate string

//go:embed translate_message.txt
var translateMessageTemplate string

//go:embed check_intent.txt
var checkIntentTemplate string

//go:embed extract_filter.txt
var extractFilterTemplate string

//go:embed compose_answer.txt
var composeAnswerTemplate string

var (
	detectLanguage = prompts.NewPromptTemplate(detectLanguageTemplate, []string{"message"})
	translate      = prompts.NewPromptTemplate(translateMessageTemplate, []string{"message", "lang", "workingLang"})
	checkIntent    = prompts.NewPromptTemplate(checkIntentTemplate, []string{"message"})
	extractFilter  = prompts.NewPromptTemplate(extractFilterTemplate, []string{"message"})
	composeAnswer  = prompts.NewPromptTemplate(composeAnswerTemplate, []string{"message", "lang", "pets"})
)

// DetectLanguage renders the language-detection prompt.
func DetectLanguage(message string) (string, error) {
	return detectLanguage.Format(map[string]any{"message": message})
}

// Translate renders the translation prompt for a message in lang, targeting
// the pipeline's working language.
func Translate(message, lang, workingLang string) (string, error) {
	return translate.Format(map[string]any{
		"message":     message,
		"lang":        lang,
		"workingLang": workingLang,
	})
}

// CheckIntent renders the adoption-intent classification prompt.
func CheckIntent(message string) (string, error) {
	return checkIntent.Format(map[string]any{"message": message})
}

// ExtractFilter renders the filter-extraction prompt.
func ExtractFilter(message string) (string, error) {
	return extractFilter.Format(map[string]any{"message": message})
}

// ComposeAnswer renders the answer-composition prompt. pets is the JSON
// representation of the matched catalog entries.
func ComposeAnswer(message, lang, pets string) (string, error) {
	return composeAnswer.Format(map[string]any{
		"message": message,
		"lang":    lang,
		"pets":    pets,
	})
}
