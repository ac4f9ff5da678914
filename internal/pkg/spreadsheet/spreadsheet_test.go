package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes the given rows into an in-memory xlsx workbook.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadRows(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Name", "Email"},
		{"Asha Verma", "asha@school.edu"},
		{"  Ravi Kumar  ", "ravi@school.edu"},
	})

	rows, err := ReadRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Number, "row numbers are 1-based sheet positions")
	assert.Equal(t, "Asha Verma", rows[0].Get("name"))
	assert.Equal(t, "asha@school.edu", rows[0].Get("Email"), "header lookup is case insensitive")
	assert.Equal(t, "Ravi Kumar", rows[1].Get("name"), "cell values are trimmed")
}

func TestReadRowsSkipsBlankRows(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"name", "email"},
		{"", ""},
		{"Asha", "asha@school.edu"},
	})

	rows, err := ReadRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Number)
}

func TestReadRowsShortRowLeavesColumnsEmpty(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"email", "listening", "speaking"},
		{"asha@school.edu", "8"},
	})

	rows, err := ReadRows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "8", rows[0].Get("listening"))
	assert.Equal(t, "", rows[0].Get("speaking"))
	assert.Equal(t, "", rows[0].Get("missing-column"))
}

func TestReadRowsHeaderOnly(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{{"name", "email"}})
	_, err := ReadRows(buf)
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestReadRowsUnparseableInput(t *testing.T) {
	_, err := ReadRows(strings.NewReader("this is not an xlsx file"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptySheet)
}
