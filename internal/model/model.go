package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	QuizKindMultipleChoice = "multiple_choice"
	QuizKindShortAnswer    = "short_answer"
	QuizKindMixed          = "mixed"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TextStats struct {
	WordCount      int `json:"word_count"`
	SentenceCount  int `json:"sentence_count"`
	ParagraphCount int `json:"paragraph_count"`
	CharacterCount int `json:"character_count"`
}

type Document struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	StorageKey string    `json:"storage_key"`
	Stats      TextStats `json:"stats"`
	Ctime      int64     `json:"ctime"`
}

// QuizQuestion is the union of the two question shapes the model is asked
// to return. Options/CorrectAnswer/Explanation are only meaningful for
// multiple_choice items, ExpectedAnswer only for short_answer items.
type QuizQuestion struct {
	Question       string   `json:"question"`
	Type           string   `json:"type"`
	Options        []string `json:"options,omitempty"`
	CorrectAnswer  string   `json:"correct_answer,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`
	ExpectedAnswer string   `json:"expected_answer,omitempty"`
}

type QuizStats struct {
	TotalQuestions          int     `json:"total_questions"`
	AnsweredQuestions       int     `json:"answered_questions"`
	MultipleChoiceQuestions int     `json:"multiple_choice_questions"`
	CorrectAnswers          int     `json:"correct_answers"`
	AccuracyPercentage      float64 `json:"accuracy_percentage"`
	CompletionPercentage    float64 `json:"completion_percentage"`
}

type QuizAttempt struct {
	ID         string         `json:"id"`
	DocumentID string         `json:"document_id"`
	Kind       string         `json:"kind"`
	Questions  []QuizQuestion `json:"questions"`
	Answers    map[int]string `json:"answers"`
	Correct    int            `json:"correct"`
	Total      int            `json:"total"`
	Ctime      int64          `json:"ctime"`
}

type ConversationSummary struct {
	TotalExchanges       int     `json:"total_exchanges"`
	UserMessages         int     `json:"user_messages"`
	AssistantMessages    int     `json:"assistant_messages"`
	AvgUserMessageLen    float64 `json:"average_user_message_length"`
	AvgAssistantMsgLen   float64 `json:"average_ai_message_length"`
}
