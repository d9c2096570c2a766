package pipeline

import (
	"github.com/schnauzenportal/server/internal/models"
)

// Message is one chat turn. Only the most recent user turn is ever read by
// the stages; the log itself is append-only.
type Message struct {
	Role    string
	Content string
}

const roleUser = "user"

// State is the conversation record threaded through one pipeline run. It is
// owned by that run; nothing is shared across requests.
type State struct {
	Messages          []Message
	Lang              string // ISO 639-1 code or "unknown"
	TranslatedMessage string // message normalised into the working language
	IsLookingForPet   bool
	Filter            models.Filter
	Pets              []models.Pet   // nil until retrieval ran
	Response          *models.Answer // nil until a terminal stage produced it
}

// lastMessage returns the content of the most recent chat turn.
func (s *State) lastMessage() string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[len(s.Messages)-1].Content
}

// Update is the partial result of one stage. Nil fields leave the state
// untouched; set fields replace their counterpart wholesale, except
// AppendMessages which concatenates onto the message log.
type Update struct {
	AppendMessages    []Message
	Lang              *string
	TranslatedMessage *string
	IsLookingForPet   *bool
	Filter            *models.Filter
	Pets              *[]models.Pet
	Response          *models.Answer
}

// apply merges an update into the state. Fields are fully replaced, never
// partially merged; the message log only ever grows.
func (s *State) apply(u Update) {
	s.Messages = append(s.Messages, u.AppendMessages...)
	if u.Lang != nil {
		s.Lang = *u.Lang
	}
	if u.TranslatedMessage != nil {
		s.TranslatedMessage = *u.TranslatedMessage
	}
	if u.IsLookingForPet != nil {
		s.IsLookingForPet = *u.IsLookingForPet
	}
	if u.Filter != nil {
		s.Filter = *u.Filter
	}
	if u.Pets != nil {
		s.Pets = *u.Pets
	}
	if u.Response != nil {
		s.Response = u.Response
	}
}
