package models

// IndividualPetAnswer is the per-pet part of a composed answer.
type IndividualPetAnswer struct {
	PetID  string `json:"petId"`
	Image  string `json:"image"`
	URL    string `json:"url"`
	Answer string `json:"answer"`
}

// Answer is the final structured response of a conversation run.
type Answer struct {
	GeneralAnswer        string                `json:"generalAnswer"`
	IndividualPetAnswers []IndividualPetAnswer `json:"individualPetAnswers"`
}
