// Package printers renders schedule data for the terminal.
package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/rotaplan/rota/pkg/reconcile"
	"github.com/rotaplan/rota/pkg/schedule"
)

type PrettyPrint struct {
	ShowRate bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" record")
	default:
		_, _ = c.Println(" records")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Print(" none\n\n")
}

// Employees renders the staff roster.
func (pp *PrettyPrint) Employees(employees ...schedule.Employee) {
	if len(employees) == 0 {
		pp.none()
		return
	}

	table := uitable.New()
	table.MaxColWidth = 40
	if pp.ShowRate {
		table.AddRow("ID", "NAME", "ROLE", "ACTIVE", "RATE")
	} else {
		table.AddRow("ID", "NAME", "ROLE", "ACTIVE")
	}
	inactive := color.New(color.Faint)
	for _, e := range employees {
		name := e.Name
		if !e.Active {
			name = inactive.Sprint(name)
		}
		if pp.ShowRate {
			table.AddRow(e.ID, name, string(e.Role), e.Active, fmt.Sprintf("%.2f", e.HourlyRate))
		} else {
			table.AddRow(e.ID, name, string(e.Role), e.Active)
		}
	}
	fmt.Println(table)
	fmt.Println("")
}

// Shifts renders shifts in grid order, resolving employee names when known.
func (pp *PrettyPrint) Shifts(names map[int]string, shifts ...schedule.Shift) {
	if len(shifts) == 0 {
		pp.none()
		return
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("ID", "DAY", "TIME", "EMPLOYEE")
	unknown := color.New(color.FgHiYellow, color.Italic)
	for _, sh := range shifts {
		who := names[sh.EmployeeID]
		if who == "" {
			who = unknown.Sprintf("employee %d?", sh.EmployeeID)
		}
		table.AddRow(sh.ID, string(sh.Day), sh.Label(), who)
	}
	fmt.Println(table)
	fmt.Println("")
}

// Conflicts renders overlapping shift pairs.
func (pp *PrettyPrint) Conflicts(conflicts ...schedule.Conflict) {
	if len(conflicts) == 0 {
		ok := color.New(color.FgGreen)
		_, _ = ok.Println("no conflicts")
		return
	}

	warn := color.New(color.FgRed, color.Bold)
	for _, c := range conflicts {
		_, _ = warn.Printf("employee %d on %s: ", c.A.EmployeeID, c.A.Day)
		fmt.Printf("shift %d (%s) overlaps shift %d (%s)\n",
			c.A.ID, c.A.Label(), c.B.ID, c.B.Label())
	}
	fmt.Println("")
}

// Report renders a reconciliation report.
func (pp *PrettyPrint) Report(r reconcile.Report) {
	pp.TitleWithCount("active employees", len(r.Active))
	pp.TitleWithCount("inactive employees", len(r.Inactive))
	pp.TitleWithCount("placeholder records", len(r.Sentinels))
	pp.TitleWithCount("orphaned shifts", len(r.Orphans))

	if len(r.Reassigned) > 0 || len(r.Deleted) > 0 || len(r.Removed) > 0 {
		pp.NewLine()
		done := color.New(color.FgGreen)
		_, _ = done.Printf("reassigned %d, deleted %d shifts, removed %d employees\n",
			len(r.Reassigned), len(r.Deleted), len(r.Removed))
	}

	if len(r.Errors) > 0 {
		pp.NewLine()
		warn := color.New(color.FgRed)
		for _, err := range r.Errors {
			_, _ = warn.Printf("  %v\n", err)
		}
	}

	if r.Clean() && len(r.Errors) == 0 {
		ok := color.New(color.FgGreen, color.Bold)
		_, _ = ok.Println("schedule is consistent")
	}
}

// Matches renders fuzzy repair suggestions.
func (pp *PrettyPrint) Matches(matches ...reconcile.Match) {
	if len(matches) == 0 {
		pp.none()
		return
	}
	table := uitable.New()
	table.AddRow("SHIFT", "DAY", "TIME", "SUGGESTED", "SIMILARITY")
	for _, m := range matches {
		table.AddRow(m.Shift.ID, string(m.Shift.Day), m.Shift.Label(),
			m.Employee.Name, fmt.Sprintf("%.0f%%", m.Similarity*100))
	}
	fmt.Println(table)
	fmt.Println("")
}
