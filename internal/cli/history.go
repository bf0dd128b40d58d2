package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"hourglass/internal/core/model"
)

var (
	historyHeaderStyle = lipgloss.NewStyle().Bold(true)
	historyTitleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "List completed intervals and focus time per day",
		Aliases: []string{"log", "ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.store.LoadLedger()
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			writeHistory(cmd.OutOrStdout(), records, time.Local, limit)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of most recent intervals to list (0 lists all)")
	return cmd
}

type historyRow struct {
	index  int
	label  string
	length string
	at     string
}

// writeHistory prints the newest limit records, oldest first, followed by
// focus totals per day in loc.
func writeHistory(w io.Writer, records []model.SessionRecord, loc *time.Location, limit int) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No completed intervals yet.")
		return
	}

	rows := historyRows(records, loc)
	start := 0
	if limit > 0 && len(rows) > limit {
		start = len(rows) - limit
	}

	fmt.Fprintln(w, historyTitleStyle.Render(fmt.Sprintf("Intervals (%d of %d)", len(rows)-start, len(rows))))
	fmt.Fprintln(w, historyHeaderStyle.Render(formatHistoryLine("#", "KIND", "LENGTH", "COMPLETED")))
	for _, row := range rows[start:] {
		fmt.Fprintln(w, formatHistoryLine(fmt.Sprintf("%d", row.index), row.label, row.length, row.at))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, historyTitleStyle.Render("Focus per day"))
	for _, day := range focusPerDay(records, loc) {
		sessions := "sessions"
		if day.count == 1 {
			sessions = "session"
		}
		fmt.Fprintf(w, "%s%s%s\n",
			padRight(day.date, 13),
			padRight(fmt.Sprintf("%d %s", day.count, sessions), 13),
			formatMinutes(day.seconds),
		)
	}
}

// historyRows labels breaks the way the timer did when they started: a
// break right after every LongBreakEvery-th focus interval is a long one.
func historyRows(records []model.SessionRecord, loc *time.Location) []historyRow {
	rows := make([]historyRow, 0, len(records))
	workCount := 0
	for i, record := range records {
		longBreak := record.Kind == model.ModeBreak && workCount > 0 && workCount%model.LongBreakEvery == 0
		if record.Kind == model.ModeWork {
			workCount++
		}
		rows = append(rows, historyRow{
			index:  i + 1,
			label:  record.Kind.Label(longBreak),
			length: formatMinutes(record.PlannedSeconds),
			at:     record.CompletedAt.In(loc).Format("2006-01-02 15:04"),
		})
	}
	return rows
}

type dayTotal struct {
	date    string
	count   int
	seconds int
}

func focusPerDay(records []model.SessionRecord, loc *time.Location) []dayTotal {
	var days []dayTotal
	for _, record := range records {
		if record.Kind != model.ModeWork {
			continue
		}
		date := record.CompletedAt.In(loc).Format("2006-01-02")
		if len(days) == 0 || days[len(days)-1].date != date {
			days = append(days, dayTotal{date: date})
		}
		days[len(days)-1].count++
		days[len(days)-1].seconds += record.PlannedSeconds
	}
	return days
}

func formatHistoryLine(index, kind, length, at string) string {
	return padRight(index, 5) + padRight(kind, 12) + padRight(length, 9) + at
}

func formatMinutes(seconds int) string {
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// padRight pads a string to the specified visual width
func padRight(s string, width int) string {
	currentWidth := runewidth.StringWidth(s)
	if currentWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-currentWidth)
}
