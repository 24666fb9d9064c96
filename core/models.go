package core

// ID is a store-assigned identifier for persisted entities.
// A record has no real ID until it has been inserted into the content store.
type ID int64

// PlaceholderTopicID is the provisional topic reference carried by dependent
// records until the reference resolver rewrites it with a store-assigned id.
const PlaceholderTopicID ID = 1

// Topic is a unit of study within the source material.
type Topic struct {
	Id          ID     `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Chapter groups related topics for navigation. Topics is process-local
// working state; the persisted row carries only title and description,
// with membership expressed through ChapterTopic join rows.
type Chapter struct {
	Id          ID      `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Topics      []Topic `json:"-"`
}

// ChapterTopic is a join row tying a topic to its chapter.
type ChapterTopic struct {
	ChapterId ID `json:"chapter_id"`
	TopicId   ID `json:"topic_id"`
}

// Concept is a titled explanation belonging to exactly one topic.
// TopicTitle keys the resolution phase and is never persisted.
type Concept struct {
	TopicId     ID     `json:"topic_id"`
	TopicTitle  string `json:"-"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	Example     string `json:"example,omitempty"`
}

// Flashcard is a question/answer pair belonging to exactly one topic.
// UserId is nil for system-authored cards.
type Flashcard struct {
	UserId     *string `json:"user_id"`
	TopicId    ID      `json:"topic_id"`
	TopicTitle string  `json:"-"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
}

// Question is a multiple-choice question belonging to exactly one topic.
// CorrectOption is a 0-based index into Options.
type Question struct {
	TopicId       ID       `json:"topic_id"`
	TopicTitle    string   `json:"-"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation,omitempty"`
}
