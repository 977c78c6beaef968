package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"sagra/cmd/bootstrap"
	"sagra/internal/delivery/dto"

	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"
)

var (
	schedulePatientID  int
	scheduleJSONOutput bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule [surgery-date]",
	Short: "Print the rehabilitation schedule",
	Long: `Prints the phase schedule for a surgery date (YYYY-MM-DD) without storing
anything, or the follow-up view of a registered patient with --patient.

Example:
  sagra schedule 2024-01-01
  sagra schedule --patient 3 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().IntVar(&schedulePatientID, "patient", 0, "Patient ID")
	scheduleCmd.Flags().BoolVar(&scheduleJSONOutput, "json", false, "Output in JSON format")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	if (len(args) == 1) == (schedulePatientID > 0) {
		return errors.New("pass either a surgery date or --patient")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app, err := bootstrap.Open(cfg, cmd.ErrOrStderr(), logger.Silent)
	if err != nil {
		return err
	}
	defer app.Close()

	out := cmd.OutOrStdout()

	if schedulePatientID > 0 {
		view, err := app.Usecases.Schedule.GetPatientSchedule(cmd.Context(), schedulePatientID)
		if err != nil {
			return err
		}
		if scheduleJSONOutput {
			return printJSON(out, view)
		}

		fmt.Fprintf(out, "Patient:    %s (surgery %s)\n", view.Patient.Name, view.Patient.SurgeryDate)
		fmt.Fprintf(out, "Day:        %d (week %d)\n", view.DaysSinceSurgery, view.WeekNumber)
		fmt.Fprintf(out, "Progress:   %.0f%%\n", view.OverallProgress)
		if view.ActivePhase != nil {
			fmt.Fprintf(out, "Phase:      %s\n", view.ActivePhase.Phase)
		}
		fmt.Fprintf(out, "Discharge:  %s\n\n", view.DischargeForecast)
		return printSchedule(out, view.Schedule)
	}

	preview, err := app.Usecases.Schedule.PreviewSchedule(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if scheduleJSONOutput {
		return printJSON(out, preview)
	}

	fmt.Fprintf(out, "Surgery:    %s\n", preview.SurgeryDate)
	fmt.Fprintf(out, "Discharge:  %s\n\n", preview.DischargeForecast)
	return printSchedule(out, preview.Schedule)
}

func printSchedule(out io.Writer, entries []dto.ScheduleEntryResponse) error {
	w := newTabWriter(out)
	fmt.Fprintln(w, "PHASE\tSTART\tEND\tDURATION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Phase, e.StartDate, e.EndDate, e.Duration)
	}
	return w.Flush()
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
