package services

import (
	"context"
	"fmt"

	"senya/backend/models"
	"senya/backend/progression"
)

const (
	QuestionVideoToText = "video_to_text"
	QuestionTextToVideo = "text_to_video"

	textDistractors  = 3
	videoDistractors = 2
)

// QuizQuestion is one generated question. video_to_text questions carry
// VideoURL, CorrectAnswer and Choices; text_to_video questions carry
// Question, CorrectVideo and Options.
type QuizQuestion struct {
	Type          string   `json:"type"`
	VideoURL      string   `json:"video_url,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Choices       []string `json:"choices,omitempty"`
	Question      string   `json:"question,omitempty"`
	CorrectVideo  string   `json:"correct_video,omitempty"`
	Options       []string `json:"options,omitempty"`
}

// GenerateQuiz builds two questions per active sign of a lesson, with
// distractors drawn from the lesson's other signs.
func (s *ProgressionService) GenerateQuiz(ctx context.Context, lessonID uint) ([]QuizQuestion, error) {
	db := s.read(ctx)
	if _, err := activeLesson(db, lessonID); err != nil {
		return nil, classify(err)
	}
	var signs []models.Sign
	if err := db.Where("lesson_id = ? AND archived = ?", lessonID, false).Order("id").Find(&signs).Error; err != nil {
		return nil, classify(err)
	}
	if len(signs) < 2 {
		return nil, fmt.Errorf("lesson %d has %d active signs, a quiz needs at least 2: %w", lessonID, len(signs), progression.ErrInvalidInput)
	}

	quiz := make([]QuizQuestion, 0, 2*len(signs))
	for i, sign := range signs {
		texts := make([]string, 0, len(signs)-1)
		videos := make([]string, 0, len(signs)-1)
		for j, other := range signs {
			if j == i {
				continue
			}
			texts = append(texts, other.Text)
			videos = append(videos, other.VideoURL)
		}

		choices := append(s.sample(texts, textDistractors), sign.Text)
		s.shuffle(choices)
		quiz = append(quiz, QuizQuestion{
			Type:          QuestionVideoToText,
			VideoURL:      sign.VideoURL,
			CorrectAnswer: sign.Text,
			Choices:       choices,
		})

		options := append(s.sample(videos, videoDistractors), sign.VideoURL)
		s.shuffle(options)
		quiz = append(quiz, QuizQuestion{
			Type:         QuestionTextToVideo,
			Question:     fmt.Sprintf("Which video shows the sign for '%s'?", sign.Text),
			CorrectVideo: sign.VideoURL,
			Options:      options,
		})
	}
	return quiz, nil
}

// sample returns up to k elements of pool in random order. pool is reordered.
func (s *ProgressionService) sample(pool []string, k int) []string {
	s.shuffle(pool)
	if k > len(pool) {
		k = len(pool)
	}
	out := make([]string, k)
	copy(out, pool[:k])
	return out
}

func (s *ProgressionService) shuffle(items []string) {
	for i := len(items) - 1; i > 0; i-- {
		j := s.pick(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
