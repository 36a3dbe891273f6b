package dto

// QuizQuestionCreateDTO carries one question with its choices. CorrectAnswer must
// match one of Options exactly; it is resolved to that option's generated id when
// the quiz is persisted.
type QuizQuestionCreateDTO struct {
	Prompt        string   `json:"prompt" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
}

type QuizCreateDTO struct {
	Title          string                  `json:"title" binding:"required"`
	PassPercentage *int                    `json:"pass_percentage"` // default 60 when omitted
	Questions      []QuizQuestionCreateDTO `json:"questions" binding:"required,dive"`
}

type QuizOptionResponseDTO struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type QuizQuestionResponseDTO struct {
	ID      uint                    `json:"id"`
	Prompt  string                  `json:"prompt"`
	Options []QuizOptionResponseDTO `json:"options"`
	// CorrectOptionID is only populated for the course owner or an admin.
	CorrectOptionID *uint `json:"correct_option_id,omitempty"`
}

type QuizResponseDTO struct {
	ID             uint                      `json:"id"`
	SectionID      uint                      `json:"section_id"`
	Title          string                    `json:"title"`
	PassPercentage int                       `json:"pass_percentage"`
	Questions      []QuizQuestionResponseDTO `json:"questions"`
}

// QuizSubmitDTO maps question id to the chosen option id. Unanswered questions
// simply grade as incorrect.
type QuizSubmitDTO struct {
	Answers map[uint]uint `json:"answers" binding:"required"`
}

type QuizResultDTO struct {
	Percentage     int   `json:"percentage"`
	CorrectAnswers int   `json:"correct_answers"`
	TotalQuestions int   `json:"total_questions"`
	Passed         bool  `json:"passed"`
	AttemptCount   int64 `json:"attempt_count"`
}

// QuizStatusDTO reports the latest attempt. AttemptCount 0 means the user has
// never submitted and the other fields are zero values.
type QuizStatusDTO struct {
	Percentage   int   `json:"percentage"`
	Passed       bool  `json:"passed"`
	AttemptCount int64 `json:"attempt_count"`
}
