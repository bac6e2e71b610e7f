package gemini

import (
	"errors"
	"fmt"

	"training-hub-service/internal/domain"
)

// Wire DTOs for the generateContent endpoint.

type generateContentRequest struct {
	Contents         []contentDTO     `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type contentDTO struct {
	Parts []partDTO `json:"parts"`
}

type partDTO struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType"`
	ResponseSchema   *responseSchema `json:"responseSchema,omitempty"`
}

// responseSchema is the structural description of the JSON shape the model
// must produce.
type responseSchema struct {
	Type        string                     `json:"type"`
	Description string                     `json:"description,omitempty"`
	Properties  map[string]*responseSchema `json:"properties,omitempty"`
	Items       *responseSchema            `json:"items,omitempty"`
	Required    []string                   `json:"required,omitempty"`
}

type generateContentResponse struct {
	Candidates []candidateDTO `json:"candidates"`
}

type candidateDTO struct {
	Content contentDTO `json:"content"`
}

func (r generateContentResponse) firstText() (string, error) {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("response contains no candidates")
	}
	return r.Candidates[0].Content.Parts[0].Text, nil
}

// testSchema constrains the model to a {questions: [{question, options,
// correctAnswer}]} object with all three fields required per item.
func testSchema() *responseSchema {
	return &responseSchema{
		Type: "OBJECT",
		Properties: map[string]*responseSchema{
			"questions": {
				Type:        "ARRAY",
				Description: "An array of test questions.",
				Items: &responseSchema{
					Type: "OBJECT",
					Properties: map[string]*responseSchema{
						"question": {
							Type:        "STRING",
							Description: "The question text.",
						},
						"options": {
							Type:        "ARRAY",
							Description: "An array of 4 possible answers.",
							Items:       &responseSchema{Type: "STRING"},
						},
						"correctAnswer": {
							Type:        "STRING",
							Description: "The correct answer from the options array.",
						},
					},
					Required: []string{"question", "options", "correctAnswer"},
				},
			},
		},
		Required: []string{"questions"},
	}
}

// assignmentSchema constrains the model to a {title, questions: [{question}]}
// object with no options or correct answers.
func assignmentSchema() *responseSchema {
	return &responseSchema{
		Type: "OBJECT",
		Properties: map[string]*responseSchema{
			"title": {
				Type:        "STRING",
				Description: "A concise title for the assignment.",
			},
			"questions": {
				Type:        "ARRAY",
				Description: "An array of 3 to 5 open-ended assignment questions.",
				Items: &responseSchema{
					Type: "OBJECT",
					Properties: map[string]*responseSchema{
						"question": {
							Type:        "STRING",
							Description: "The open-ended question text.",
						},
					},
					Required: []string{"question"},
				},
			},
		},
		Required: []string{"title", "questions"},
	}
}

// Model output payloads. Decoding is strict: a payload that does not carry
// the required fields never reaches the caller.

type testPayload struct {
	Questions []domain.AssessmentQuestion `json:"questions"`
}

func (p testPayload) validate() error {
	if p.Questions == nil {
		return errors.New("missing questions array")
	}
	for i, q := range p.Questions {
		if q.Question == "" {
			return fmt.Errorf("question %d: empty question text", i)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %d: no options", i)
		}
		if q.CorrectAnswer == "" {
			return fmt.Errorf("question %d: missing correct answer", i)
		}
	}
	return nil
}

type assignmentPayload struct {
	Title     string `json:"title"`
	Questions []struct {
		Question string `json:"question"`
	} `json:"questions"`
}

func (p assignmentPayload) validate() error {
	if p.Title == "" {
		return errors.New("missing title")
	}
	if p.Questions == nil {
		return errors.New("missing questions array")
	}
	for i, q := range p.Questions {
		if q.Question == "" {
			return fmt.Errorf("question %d: empty question text", i)
		}
	}
	return nil
}
