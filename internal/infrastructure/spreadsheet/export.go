package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"sagra/internal/domain/entity"

	"github.com/xuri/excelize/v2"
)

const (
	SheetPatients = "Pacientes"
	SheetProgress = "Progresso"
)

var patientHeader = []string{"id", "nome", "data_cirurgia", "data_cadastro"}

var progressHeader = []string{
	"id",
	"paciente_id",
	"paciente",
	"fase_id",
	"fase",
	"data_inicio",
	"data_fim",
	"status",
	"observacoes",
}

func patientRecords(patients []entity.Patient) [][]string {
	records := make([][]string, 0, len(patients))
	for _, p := range patients {
		records = append(records, []string{
			strconv.Itoa(p.ID),
			p.Name,
			formatDate(p.SurgeryDate),
			formatDate(p.RegistrationDate),
		})
	}
	return records
}

func progressRecords(progress []entity.ProgressWithPhase) [][]string {
	records := make([][]string, 0, len(progress))
	for _, p := range progress {
		end := ""
		if p.EndDate != nil {
			end = formatDate(*p.EndDate)
		}
		records = append(records, []string{
			strconv.Itoa(p.ID),
			strconv.Itoa(p.PatientID),
			p.PatientName,
			strconv.Itoa(p.PhaseID),
			p.PhaseLabel,
			formatDate(p.StartDate),
			end,
			string(p.Status),
			p.Observations,
		})
	}
	return records
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.DateLayout)
}

// WriteWorkbook writes patients and progress into one workbook with a sheet each.
func WriteWorkbook(path string, patients []entity.Patient, progress []entity.ProgressWithPhase) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []struct {
		name    string
		header  []string
		records [][]string
	}{
		{SheetPatients, patientHeader, patientRecords(patients)},
		{SheetProgress, progressHeader, progressRecords(progress)},
	}

	// The default sheet becomes the first one
	if err := f.SetSheetName("Sheet1", sheets[0].name); err != nil {
		return fmt.Errorf("failed to rename default sheet: %w", err)
	}
	for i, sheet := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
			}
		}
		if err := writeSheet(f, sheet.name, sheet.header, sheet.records, headerStyle); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, records [][]string, headerStyle int) error {
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for rowIdx, record := range records {
		for col, value := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

// WriteCSVPair writes patients and progress into two comma separated files.
func WriteCSVPair(patientsPath, progressPath string, patients []entity.Patient, progress []entity.ProgressWithPhase) error {
	if err := writeCSV(patientsPath, patientHeader, patientRecords(patients)); err != nil {
		return err
	}
	return writeCSV(progressPath, progressHeader, progressRecords(progress))
}

func writeCSV(path string, header []string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}
