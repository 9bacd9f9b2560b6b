package fetcher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeTestXLSX(t *testing.T, sheetName string, rows [][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	require.NoError(t, err)
	for _, row := range rows {
		r := sheet.AddRow()
		for _, v := range row {
			r.AddCell().Value = v
		}
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeTestXLSX(t, "Sheet1", [][]string{
		{"track_id", "track_name"},
		{"t1", "Under Pressure"},
	})

	header, rows, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"track_id", "track_name"}, header)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"t1", "Under Pressure"}, rows[0])
}

func TestReadXLSX_SheetByName(t *testing.T) {
	path := writeTestXLSX(t, "Catalog", [][]string{
		{"a"},
		{"1"},
	})

	header, _, err := ReadXLSX(path, XLSXOptions{SheetName: "Catalog"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, header)

	_, _, err = ReadXLSX(path, XLSXOptions{SheetName: "Missing"})
	assert.Error(t, err)
}

func TestReadXLSX_SheetIndexOutOfRange(t *testing.T) {
	path := writeTestXLSX(t, "Sheet1", [][]string{{"a"}, {"1"}})

	_, _, err := ReadXLSX(path, XLSXOptions{SheetIndex: 5})
	assert.Error(t, err)
}

func TestReadXLSX_MissingFile(t *testing.T) {
	_, _, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), XLSXOptions{})
	assert.Error(t, err)
}
