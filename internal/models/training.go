package models

// Word is one vocabulary card from the reference dataset.
type Word struct {
	ID       int    `json:"id"`
	PT       string `json:"pt"`
	RU       string `json:"ru"`
	Category string `json:"category,omitempty"`
}

// PronounOrder is the fixed set of pronouns a verb is conjugated for,
// in the order they are drilled and graded.
var PronounOrder = []string{"eu", "tu", "ele", "nos", "eles"}

// Verb is one conjugation card from the reference dataset.
type Verb struct {
	ID         int    `json:"id"`
	Infinitive string `json:"infinitive"`
	Eu         string `json:"eu"`
	Tu         string `json:"tu"`
	Ele        string `json:"ele"`
	Nos        string `json:"nos"`
	Eles       string `json:"eles"`
}

// Form returns the conjugated form for a pronoun, or "" for an
// unknown pronoun.
func (v *Verb) Form(pronoun string) string {
	switch pronoun {
	case "eu":
		return v.Eu
	case "tu":
		return v.Tu
	case "ele":
		return v.Ele
	case "nos":
		return v.Nos
	case "eles":
		return v.Eles
	}
	return ""
}

// Question is one vocabulary quiz question. Options is present only for
// the multiple-choice modes.
type Question struct {
	CardID  int      `json:"card_id"`
	Mode    string   `json:"mode"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`
}

// AnswerRequest is the JSON body for POST /api/answer.
type AnswerRequest struct {
	CardID int    `json:"card_id"`
	Mode   string `json:"mode"`
	Answer string `json:"answer"`
}

// AnswerResponse reports the grading outcome. CorrectAnswer is always
// filled so the client can show immediate feedback.
type AnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// ProgressSummary aggregates a user's vocabulary progress.
type ProgressSummary struct {
	Total   int                    `json:"total"`
	Studied int                    `json:"studied"`
	Learned int                    `json:"learned"`
	ByCard  map[int]map[string]int `json:"by_card"`
}

// VerbQuestion is one conjugation drill question.
type VerbQuestion struct {
	VerbID     int      `json:"verb_id"`
	Infinitive string   `json:"infinitive"`
	Pronouns   []string `json:"pronouns"`
}

// VerbAnswerRequest is the JSON body for POST /api/verb/answer. Answers
// maps pronoun to the submitted conjugated form.
type VerbAnswerRequest struct {
	VerbID  int               `json:"verb_id"`
	Answers map[string]string `json:"answers"`
}

// VerbAnswerResponse reports per-pronoun results plus the canonical forms.
type VerbAnswerResponse struct {
	VerbID       int               `json:"verb_id"`
	Infinitive   string            `json:"infinitive"`
	Results      map[string]bool   `json:"results"`
	CorrectForms map[string]string `json:"correct_forms"`
	AllCorrect   bool              `json:"all_correct"`
}

// VerbProgressSummary aggregates a user's conjugation drill progress.
type VerbProgressSummary struct {
	Total    int                    `json:"total"`
	Seen     int                    `json:"seen"`
	Mastered int                    `json:"mastered"`
	ByVerb   map[int]map[string]int `json:"by_verb"`
}

// VerbListItem is one row of GET /api/verb/list.
type VerbListItem struct {
	ID         int    `json:"id"`
	Infinitive string `json:"infinitive"`
}
