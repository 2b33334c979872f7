package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-availability/internal/domain"
)

var (
	computeStart    string
	computeEnd      string
	computeTimezone string
	computeSlot     int
	computeHours    []string
	computeBusy     []string
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Print the open slots of a window",
	Long: `Compute the open slots of a window and print one per line in the
requested timezone, grouped by local date.

Examples:
  # Default working hours (08:00-20:00), 30 minute slots
  slotctl compute --start 2024-03-04T00:00:00Z --end 2024-03-06T00:00:00Z

  # Short Monday, one meeting
  slotctl compute --start 2024-03-04T09:00:00+09:00 --end 2024-03-04T18:00:00+09:00 \
    --timezone Asia/Tokyo --slot 45 --hours 1=10:00-16:00 \
    --busy 2024-03-04T11:00:00+09:00/2024-03-04T12:00:00+09:00
`,
	Args: cobra.NoArgs,
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().StringVar(&computeStart, "start", "", "Window start (RFC3339)")
	computeCmd.Flags().StringVar(&computeEnd, "end", "", "Window end (RFC3339)")
	computeCmd.Flags().StringVar(&computeTimezone, "timezone", "UTC", "IANA timezone used for working hours and output")
	computeCmd.Flags().IntVar(&computeSlot, "slot", 30, "Slot length in minutes (1-1440)")
	computeCmd.Flags().StringArrayVar(&computeHours, "hours", nil, "Working hours override WEEKDAY=HH:MM-HH:MM, weekday 1 (Monday) to 7 (Sunday)")
	computeCmd.Flags().StringArrayVar(&computeBusy, "busy", nil, "Busy interval START/END (RFC3339)")

	_ = computeCmd.MarkFlagRequired("start")
	_ = computeCmd.MarkFlagRequired("end")

	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, _ []string) error {
	loc, err := domain.LoadTimezone(computeTimezone)
	if err != nil {
		return err
	}

	start, err := time.Parse(time.RFC3339, computeStart)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}

	end, err := time.Parse(time.RFC3339, computeEnd)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}

	duration, err := domain.NewSlotDuration(computeSlot)
	if err != nil {
		return fmt.Errorf("invalid --slot: %w", err)
	}

	prefs, err := parsePreferences(computeHours)
	if err != nil {
		return err
	}

	busy, err := parseBusyIntervals(computeBusy)
	if err != nil {
		return err
	}

	result := domain.NewAvailabilityCalculator().CalculateWindowSlots(
		domain.NewTimeWindow(start, end, loc),
		duration,
		prefs,
		busy,
	)

	return printSlots(cmd.OutOrStdout(), result.Slots, loc)
}

func parsePreferences(values []string) (domain.WorkPreferences, error) {
	starts := make([]domain.WorkingHoursEntry, 0, len(values))
	ends := make([]domain.WorkingHoursEntry, 0, len(values))

	for _, raw := range values {
		start, end, err := parseHours(raw)
		if err != nil {
			return domain.WorkPreferences{}, fmt.Errorf("invalid --hours %q: %w", raw, err)
		}

		starts = append(starts, start)
		ends = append(ends, end)
	}

	return domain.NewWorkPreferences(starts, ends)
}

// parseHours reads WEEKDAY=HH:MM-HH:MM.
func parseHours(raw string) (domain.WorkingHoursEntry, domain.WorkingHoursEntry, error) {
	weekdayPart, rangePart, ok := strings.Cut(raw, "=")
	if !ok {
		return domain.WorkingHoursEntry{}, domain.WorkingHoursEntry{}, fmt.Errorf("expected WEEKDAY=HH:MM-HH:MM")
	}

	weekday, err := strconv.Atoi(strings.TrimSpace(weekdayPart))
	if err != nil {
		return domain.WorkingHoursEntry{}, domain.WorkingHoursEntry{}, fmt.Errorf("weekday: %w", err)
	}

	startPart, endPart, ok := strings.Cut(rangePart, "-")
	if !ok {
		return domain.WorkingHoursEntry{}, domain.WorkingHoursEntry{}, fmt.Errorf("expected HH:MM-HH:MM")
	}

	start, err := parseEntry(weekday, startPart)
	if err != nil {
		return domain.WorkingHoursEntry{}, domain.WorkingHoursEntry{}, err
	}

	end, err := parseEntry(weekday, endPart)
	if err != nil {
		return domain.WorkingHoursEntry{}, domain.WorkingHoursEntry{}, err
	}

	return start, end, nil
}

func parseEntry(weekday int, clock string) (domain.WorkingHoursEntry, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return domain.WorkingHoursEntry{}, fmt.Errorf("time %q: %w", clock, err)
	}

	return domain.NewWorkingHoursEntry(weekday, t.Hour(), t.Minute())
}

func parseBusyIntervals(values []string) ([]domain.BusyInterval, error) {
	busy := make([]domain.BusyInterval, 0, len(values))

	for _, raw := range values {
		startPart, endPart, ok := strings.Cut(raw, "/")
		if !ok {
			return nil, fmt.Errorf("invalid --busy %q: expected START/END", raw)
		}

		start, err := time.Parse(time.RFC3339, startPart)
		if err != nil {
			return nil, fmt.Errorf("invalid --busy %q: %w", raw, err)
		}

		end, err := time.Parse(time.RFC3339, endPart)
		if err != nil {
			return nil, fmt.Errorf("invalid --busy %q: %w", raw, err)
		}

		busy = append(busy, domain.BusyInterval{Start: start, End: end})
	}

	return busy, nil
}

func printSlots(w io.Writer, slots []domain.CandidateSlot, loc *time.Location) error {
	if len(slots) == 0 {
		_, err := fmt.Fprintln(w, "no slots available")

		return err
	}

	for _, day := range domain.GroupSlotsByDay(slots, loc) {
		weekday := domain.WeekdayOf(day.Date)

		for _, s := range day.Slots {
			if _, err := fmt.Fprintf(w, "%s %s %s-%s\n",
				day.Date.Format(time.DateOnly),
				weekday,
				s.Start().In(loc).Format("15:04"),
				s.End().In(loc).Format("15:04"),
			); err != nil {
				return err
			}
		}
	}

	return nil
}
