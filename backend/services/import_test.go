package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"senya/backend/models"
	"senya/backend/progression"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportSigns(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db, nil, nil)
	unit := seedUnit(t, db, "Unit", 0)
	lesson := seedLesson(t, db, unit.ID, 0, 5)

	buf := workbook(t, [][]interface{}{
		{"text", "video_url", "difficulty"},
		{"hello", "https://cdn.example.com/hello.mp4", "Intermediate"},
		{"thanks", "https://cdn.example.com/thanks.mp4", ""},
		{"", "https://cdn.example.com/empty.mp4", "advanced"},
	})

	res, err := content.ImportSigns(context.Background(), lesson.ID, buf, DefaultSignColumns)
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalProcessed)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, res.Errors, 1)

	var signs []models.Sign
	require.NoError(t, db.Where("lesson_id = ?", lesson.ID).Order("id").Find(&signs).Error)
	require.Len(t, signs, 2)
	assert.Equal(t, models.DifficultyIntermediate, signs[0].DifficultyLevel)
	assert.Equal(t, models.DifficultyBeginner, signs[1].DifficultyLevel)
}

func TestImportSignsRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db, nil, nil)

	_, err := content.ImportSigns(context.Background(), 1, bytes.NewBufferString("not a workbook"), DefaultSignColumns)
	assert.ErrorIs(t, err, progression.ErrInvalidInput)

	buf := workbook(t, [][]interface{}{{"text", "video_url"}})
	_, err = content.ImportSigns(context.Background(), 404, buf, DefaultSignColumns)
	assert.ErrorIs(t, err, progression.ErrNotFound)
}

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 2, columnToIndex("c"))
	assert.Equal(t, 27, columnToIndex("AB"))
}
