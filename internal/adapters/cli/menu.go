// Package cli implements the interactive menu loop. It validates user input
// (date format, integer ids) before anything reaches the store, re-prompting
// on bad input the way the storage contract expects.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	auditStore "diary/internal/adapters/storage/audit"
	eventStore "diary/internal/adapters/storage/event"
	"diary/internal/application/orchestrators"
	eventDomain "diary/internal/domain/event"
)

// Menu drives the interactive session. Reader and writer are injected so
// tests can script a whole session.
type Menu struct {
	in    *bufio.Scanner
	out   io.Writer
	store eventStore.Store
	audit auditStore.Store
}

// New creates a Menu reading choices from in and writing to out.
// PRE: store is non-nil; audit may be a NoopStore
// POST: menu is ready; Run starts the session
func New(in io.Reader, out io.Writer, store eventStore.Store, audit auditStore.Store) *Menu {
	return &Menu{
		in:    bufio.NewScanner(in),
		out:   out,
		store: store,
		audit: audit,
	}
}

// Run executes the menu loop until the user exits or input ends.
// Every iteration performs at most one store operation.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprint(m.out, "\n=== Diary ===\n"+
			"1. List all events\n"+
			"2. Add event\n"+
			"3. Edit event\n"+
			"4. Delete event\n"+
			"5. Mark event completed\n"+
			"6. Sort events by date\n"+
			"0. Exit\n")

		choice, ok := m.prompt("Choose an action: ")
		if !ok {
			return nil
		}
		switch choice {
		case "1":
			m.listEvents(ctx)
		case "2":
			m.addEvent(ctx)
		case "3":
			m.editEvent(ctx)
		case "4":
			m.deleteEvent(ctx)
		case "5":
			m.completeEvent(ctx)
		case "6":
			m.sortEvents(ctx)
		case "0":
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
}

// listEvents renders the aligned event table. A listing failure is reported
// like any other action error; it never ends the session.
func (m *Menu) listEvents(ctx context.Context) {
	events, err := m.store.ListAll(ctx)
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	if len(events) == 0 {
		fmt.Fprintln(m.out, "No events.")
		return
	}
	fmt.Fprintln(m.out, "\nEvents:")
	fmt.Fprintf(m.out, "%-5s %-30s %-10s %-12s %-12s\n", "ID", "Title", "Importance", "Date", "Status")
	fmt.Fprintln(m.out, strings.Repeat("-", 70))
	for _, e := range events {
		status := "Pending"
		if e.Completed {
			status = "Done"
		}
		fmt.Fprintf(m.out, "%-5d %-30s %-10s %-12s %-12s\n",
			e.ID, e.DisplayTitle(), e.Importance, e.Date, status)
	}
}

func (m *Menu) addEvent(ctx context.Context) {
	title, ok := m.prompt("Event title: ")
	if !ok {
		return
	}
	importance, ok := m.prompt("Importance (High/Medium/Low): ")
	if !ok {
		return
	}
	date, ok := m.promptDate("Event date (YYYY-MM-DD): ")
	if !ok {
		return
	}

	deps := orchestrators.AddEventDeps{EventStore: m.store, AuditStore: m.audit}
	e, err := orchestrators.ExecuteAddEvent(ctx, orchestrators.AddEventInput{
		Title:      title,
		Importance: importance,
		Date:       date,
	}, deps)
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Event %d added.\n", e.ID)
}

func (m *Menu) editEvent(ctx context.Context) {
	id, ok := m.promptID("Event id to edit: ")
	if !ok {
		return
	}
	current, err := m.store.GetByID(ctx, id)
	if errors.Is(err, eventDomain.ErrNotFound) {
		fmt.Fprintln(m.out, "Event not found.")
		return
	}
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(m.out, "Leave a field blank to keep its current value.")
	input := orchestrators.EditEventInput{ID: id}
	if title, ok := m.prompt(fmt.Sprintf("New title (%s): ", current.Title)); ok && title != "" {
		input.Title = &title
	}
	if importance, ok := m.prompt(fmt.Sprintf("New importance (%s): ", current.Importance)); ok && importance != "" {
		input.Importance = &importance
	}
	if answer, ok := m.prompt("Change date? (y/n): "); ok && strings.EqualFold(answer, "y") {
		if date, ok := m.promptDate(fmt.Sprintf("New date (%s): ", current.Date)); ok {
			input.Date = &date
		}
	}

	deps := orchestrators.EditEventDeps{EventStore: m.store, AuditStore: m.audit}
	if _, err := orchestrators.ExecuteEditEvent(ctx, input, deps); err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Event updated.")
}

func (m *Menu) deleteEvent(ctx context.Context) {
	id, ok := m.promptID("Event id to delete: ")
	if !ok {
		return
	}
	deps := orchestrators.DeleteEventDeps{EventStore: m.store, AuditStore: m.audit}
	removed, err := orchestrators.ExecuteDeleteEvent(ctx, id, deps)
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	if !removed {
		fmt.Fprintln(m.out, "Event not found.")
		return
	}
	fmt.Fprintln(m.out, "Event deleted.")
}

func (m *Menu) completeEvent(ctx context.Context) {
	id, ok := m.promptID("Event id to mark completed: ")
	if !ok {
		return
	}
	deps := orchestrators.CompleteEventDeps{EventStore: m.store, AuditStore: m.audit}
	found, err := orchestrators.ExecuteCompleteEvent(ctx, id, deps)
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	if !found {
		fmt.Fprintln(m.out, "Event not found.")
		return
	}
	fmt.Fprintln(m.out, "Event marked completed.")
}

func (m *Menu) sortEvents(ctx context.Context) {
	deps := orchestrators.SortEventsDeps{EventStore: m.store, AuditStore: m.audit}
	if err := orchestrators.ExecuteSortEvents(ctx, deps); err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Events sorted by date.")
}

// prompt prints the label and reads one trimmed line.
// Returns false when input is exhausted.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// promptDate re-prompts until the input parses as YYYY-MM-DD.
// The store never sees an unvalidated date from the CLI.
func (m *Menu) promptDate(label string) (string, bool) {
	for {
		s, ok := m.prompt(label)
		if !ok {
			return "", false
		}
		if _, err := time.Parse(eventDomain.DateFormat, s); err == nil {
			return s, true
		}
		fmt.Fprintln(m.out, "Invalid date format. Use YYYY-MM-DD.")
	}
}

// promptID reads one line and requires it to parse as an integer.
// Unlike promptDate this does not loop; a bad id aborts the action, matching
// the original menu behavior.
func (m *Menu) promptID(label string) (int, bool) {
	s, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid id: enter an integer.")
		return 0, false
	}
	return id, true
}
