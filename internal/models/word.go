package models

import "time"

// GeneralCategoryID is the distinguished category every store starts with.
// It cannot be deleted; words from deleted categories are reassigned to it.
const GeneralCategoryID = "general"

type Word struct {
	ID                string    `json:"id"`
	English           string    `json:"english"`
	Turkish           string    `json:"turkish"`
	PartOfSpeech      string    `json:"part_of_speech,omitempty"`
	Level             string    `json:"level,omitempty"`
	IsPhrasalVerb     bool      `json:"is_phrasal_verb"`
	Definition        string    `json:"definition,omitempty"`
	TurkishDefinition string    `json:"turkish_definition,omitempty"`
	Synonyms          []string  `json:"synonyms"`
	Antonyms          []string  `json:"antonyms"`
	Examples          []string  `json:"examples"`
	Category          string    `json:"category"`
	Image             string    `json:"image,omitempty"` // data-URI
	DateAdded         time.Time `json:"date_added"`
}

// WordFields carries the mutable fields of a word for create/edit operations.
type WordFields struct {
	English           string   `json:"english"`
	Turkish           string   `json:"turkish"`
	PartOfSpeech      string   `json:"part_of_speech"`
	Level             string   `json:"level"`
	IsPhrasalVerb     bool     `json:"is_phrasal_verb"`
	Definition        string   `json:"definition"`
	TurkishDefinition string   `json:"turkish_definition"`
	Synonyms          []string `json:"synonyms"`
	Antonyms          []string `json:"antonyms"`
	Examples          []string `json:"examples"`
	Category          string   `json:"category"`
	Image             string   `json:"image"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// WordCount is derived from the word list, never stored authoritatively.
	WordCount int `json:"word_count"`
}

type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	DateCreated time.Time `json:"date_created"`
}
