package spreadsheet

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sagra/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeFixture(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestProtocolLoader_Load(t *testing.T) {
	// Given: A directory with one valid workbook and several unusable files
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "forca_muscular.xlsx"), [][]any{
		{"Dia", "Valor"},
		{0, 50},
		{7, 58.5},
		{14, 63},
	})
	writeFixture(t, filepath.Join(dir, "uma_coluna.xlsx"), [][]any{
		{"Dia"},
		{0},
	})
	writeFixture(t, filepath.Join(dir, "texto.xlsx"), [][]any{
		{"Dia", "Valor"},
		{"segunda", "alto"},
	})
	writeFixture(t, filepath.Join(dir, "vazio.xlsx"), [][]any{
		{"Dia", "Valor"},
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "antigo.xls"), []byte("legacy"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notas.txt"), []byte("ignored"), 0o644))

	// When: The protocols are loaded
	protocols, issues, err := NewProtocolLoader(dir, quietLogger()).Load()

	// Then: Only the valid workbook is kept and every other spreadsheet is reported
	require.NoError(t, err)
	require.Len(t, protocols, 1)
	protocol := protocols["forca_muscular"]
	assert.Equal(t, []string{"Dia", "Valor"}, protocol.Columns)
	require.Len(t, protocol.Rows, 3)
	assert.Equal(t, "7", protocol.Rows[1].Day)
	assert.Equal(t, "58.5", protocol.Rows[1].Value)

	files := make([]string, 0, len(issues))
	for _, issue := range issues {
		files = append(files, issue.File)
	}
	assert.Equal(t, []string{"antigo.xls", "texto.xlsx", "uma_coluna.xlsx", "vazio.xlsx"}, files)
}

func TestProtocolLoader_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "planilhas")

	protocols, issues, err := NewProtocolLoader(dir, quietLogger()).Load()

	require.NoError(t, err)
	assert.Empty(t, protocols)
	assert.Empty(t, issues)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestProtocolLoader_Path(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "dor.xlsx"), [][]any{{"Dia", "Valor"}, {0, 8}, {1, 7}})
	loader := NewProtocolLoader(dir, quietLogger())

	path, err := loader.Path("dor")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dor.xlsx"), path)

	_, err = loader.Path("edema")
	assert.ErrorIs(t, err, ErrProtocolNotFound)

	_, err = loader.Path("../dor")
	assert.ErrorIs(t, err, ErrProtocolNotFound)
}

func exportFixtures() ([]entity.Patient, []entity.ProgressWithPhase) {
	surgery := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := surgery.AddDate(0, 0, 14)
	patients := []entity.Patient{{ID: 1, Name: "Ana Costa", SurgeryDate: surgery, RegistrationDate: surgery}}
	progress := []entity.ProgressWithPhase{
		{ID: 1, PatientID: 1, PatientName: "Ana Costa", PhaseID: 1, PhaseLabel: "Fase 1", StartDate: surgery, EndDate: &end, Status: entity.ProgressCompleted},
		{ID: 2, PatientID: 1, PatientName: "Ana Costa", PhaseID: 2, PhaseLabel: "Fase 2", StartDate: end.AddDate(0, 0, 1), Status: entity.ProgressInProgress, Observations: "sem dor"},
	}
	return patients, progress
}

func TestWriteWorkbook(t *testing.T) {
	patients, progress := exportFixtures()
	path := filepath.Join(t.TempDir(), "dados.xlsx")

	require.NoError(t, WriteWorkbook(path, patients, progress))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetPatients, SheetProgress}, f.GetSheetList())

	rows, err := f.GetRows(SheetProgress)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, progressHeader, rows[0])
	assert.Equal(t, "Fase 1", rows[1][4])
	assert.Equal(t, "2024-01-15", rows[1][6])

	name, err := f.GetCellValue(SheetPatients, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ana Costa", name)
}

func TestWriteCSVPair(t *testing.T) {
	patients, progress := exportFixtures()
	dir := t.TempDir()
	patientsPath := filepath.Join(dir, "pacientes.csv")
	progressPath := filepath.Join(dir, "progresso.csv")

	require.NoError(t, WriteCSVPair(patientsPath, progressPath, patients, progress))

	file, err := os.Open(progressPath)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "", records[2][6])
	assert.Equal(t, "sem dor", records[2][8])
	assert.Equal(t, string(entity.ProgressInProgress), records[2][7])

	_, err = os.Stat(patientsPath)
	assert.NoError(t, err)
}
