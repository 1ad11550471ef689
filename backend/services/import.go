package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"senya/backend/models"
	"senya/backend/progression"
)

// SignImportColumns maps sheet columns to sign fields. Row 1 is a header.
type SignImportColumns struct {
	Text       string
	VideoURL   string
	Difficulty string
}

var DefaultSignColumns = SignImportColumns{Text: "A", VideoURL: "B", Difficulty: "C"}

type ImportResult struct {
	TotalProcessed int      `json:"total_processed"`
	Created        int      `json:"created"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`
}

// ImportSigns reads signs for a lesson from the first sheet of an xlsx
// workbook. Bad rows are reported and skipped; good rows are created together.
func (s *ContentService) ImportSigns(ctx context.Context, lessonID uint, r io.Reader, cols SignImportColumns) (ImportResult, error) {
	result := ImportResult{Errors: []string{}}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return result, fmt.Errorf("failed to open workbook: %v: %w", err, progression.ErrInvalidInput)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return result, fmt.Errorf("workbook has no sheets: %w", progression.ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return result, fmt.Errorf("failed to get rows: %v: %w", err, progression.ErrInvalidInput)
	}

	db := s.db.WithContext(ctx)
	if _, err := activeLesson(db, lessonID); err != nil {
		return result, classify(err)
	}

	signs := make([]models.Sign, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		result.TotalProcessed++

		text := cell(row, cols.Text)
		videoURL := cell(row, cols.VideoURL)
		if text == "" || videoURL == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: text and video_url are required", i+1))
			continue
		}
		difficulty := models.Difficulty(strings.ToLower(cell(row, cols.Difficulty)))
		switch difficulty {
		case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
		default:
			difficulty = models.DifficultyBeginner
		}
		signs = append(signs, models.Sign{LessonID: lessonID, Text: text, VideoURL: videoURL, DifficultyLevel: difficulty})
	}

	if len(signs) > 0 {
		if err := db.Create(&signs).Error; err != nil {
			return result, classify(err)
		}
	}
	result.Created = len(signs)
	return result, nil
}

func cell(row []string, column string) string {
	idx := columnToIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// columnToIndex converts a column letter ("A", "AB") to a zero-based index.
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
