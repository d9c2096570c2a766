package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Pet is one catalog entry with its metadata and vector embedding.
type Pet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Type      string             `bson:"type" json:"type"` // "hund" or "katze"
	Breed     string             `bson:"breed" json:"breed"`
	Gender    string             `bson:"gender" json:"gender"`
	Neutered  bool               `bson:"neutered" json:"neutered"`
	BirthYear int                `bson:"birth_year" json:"birth_year"`
	Image     string             `bson:"image" json:"image"` // URL of the pet's photo
	URL       string             `bson:"url" json:"url"`     // URL of the pet's profile page
	Text      string             `bson:"text" json:"text"`   // free-text description, source of the embedding
	Embedding []float32          `bson:"embedding,omitempty" json:"-"`           // never exposed to clients
	Score     float64            `bson:"score,omitempty" json:"score,omitempty"` // vector search score
}

// Filter narrows a pet search. A nil Type means "no constraint".
type Filter struct {
	Type *string `bson:"type,omitempty" json:"type"`
}

// IsEmpty reports whether the filter constrains anything.
func (f Filter) IsEmpty() bool {
	return f.Type == nil
}

// PetPage is one slice of the catalog, as returned by the browse endpoint.
type PetPage struct {
	Total   int64 `json:"total"`
	Skip    int64 `json:"skip"`
	Limit   int64 `json:"limit"`
	Results []Pet `json:"results"`
}
