// Package schedule holds the core domain types for the staff planner:
// employees, shifts, the weekly grid geometry, and conflict detection.
package schedule

import (
	"fmt"
	"strings"
)

// Role identifies the job an employee is scheduled for.
type Role string

const (
	RoleCook    Role = "cook"
	RoleServer  Role = "server"
	RoleBarman  Role = "barman"
	RoleManager Role = "manager"
	RoleHelper  Role = "helper"
	RolePrep    Role = "prep"
)

// KnownRoles returns all roles in display order.
func KnownRoles() []Role {
	return []Role{RoleCook, RoleServer, RoleBarman, RoleManager, RoleHelper, RolePrep}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, k := range KnownRoles() {
		if r == k {
			return true
		}
	}
	return false
}

// Weekday names a column of the planning grid.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays returns the grid columns in display order, Monday first.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// DayIndex returns the position of d in the week, or -1 when d is unknown.
func DayIndex(d Weekday) int {
	for i, w := range Weekdays() {
		if w == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is a known weekday.
func (d Weekday) Valid() bool {
	return DayIndex(d) >= 0
}

// Opening hours run from 08:00 through 02:59 the next morning, so the grid
// rows are ordered 8..23 then 0..2.
const (
	OpeningHour = 8
	closingWrap = 3
)

// GridHours returns the grid rows in display order.
func GridHours() []int {
	hours := make([]int, 0, 24-OpeningHour+closingWrap)
	for h := OpeningHour; h < 24; h++ {
		hours = append(hours, h)
	}
	for h := 0; h < closingWrap; h++ {
		hours = append(hours, h)
	}
	return hours
}

// ValidSlot reports whether hour/minutes name a cell of the grid.
func ValidSlot(hour, minutes int) bool {
	if minutes != 0 && minutes != 30 {
		return false
	}
	return (hour >= OpeningHour && hour < 24) || (hour >= 0 && hour < closingWrap)
}

// Shift duration bounds, in hours.
const (
	MinDuration = 1
	MaxDuration = 12
)

// Employee is a member of staff that shifts can be assigned to.
type Employee struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Role       Role    `json:"role"`
	Email      string  `json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Active     bool    `json:"active"`
	HourlyRate float64 `json:"hourly_rate,omitempty"`
}

// sentinelNames are placeholder names left behind by earlier deletion bugs.
// Records carrying one are treated as deleted, never as schedulable staff.
var sentinelNames = map[string]bool{
	"deleted":  true,
	"supprimé": true,
	"employé":  true,
}

// SentinelName reports whether name is a deletion placeholder.
func SentinelName(name string) bool {
	return sentinelNames[strings.ToLower(strings.TrimSpace(name))]
}

// Validate checks that e is a well-formed employee record.
func (e Employee) Validate() error {
	if e.ID <= 0 {
		return fmt.Errorf("schedule: employee id must be positive, got %d", e.ID)
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("schedule: employee %d has a blank name", e.ID)
	}
	if !e.Role.Valid() {
		return fmt.Errorf("schedule: employee %d has unknown role %q", e.ID, e.Role)
	}
	if e.HourlyRate < 0 {
		return fmt.Errorf("schedule: employee %d has negative hourly rate %v", e.ID, e.HourlyRate)
	}
	return nil
}

// Schedulable reports whether e can hold shifts: active with a real name.
func (e Employee) Schedulable() bool {
	return e.Active && !SentinelName(e.Name)
}

// Shift is a block of work on the weekly grid.
type Shift struct {
	ID           int     `json:"id"`
	EmployeeID   int     `json:"employee_id"`
	Day          Weekday `json:"day"`
	StartHour    int     `json:"start_hour"`
	StartMinutes int     `json:"start_minutes"`
	Duration     int     `json:"duration"`
}

// Validate checks that s is a well-formed shift record.
func (s Shift) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("schedule: shift id must be positive, got %d", s.ID)
	}
	if s.EmployeeID <= 0 {
		return fmt.Errorf("schedule: shift %d has no employee", s.ID)
	}
	if !s.Day.Valid() {
		return fmt.Errorf("schedule: shift %d has unknown day %q", s.ID, s.Day)
	}
	if !ValidSlot(s.StartHour, s.StartMinutes) {
		return fmt.Errorf("schedule: shift %d starts outside opening hours at %02d:%02d",
			s.ID, s.StartHour, s.StartMinutes)
	}
	if s.Duration < MinDuration || s.Duration > MaxDuration {
		return fmt.Errorf("schedule: shift %d duration %d outside [%d, %d]",
			s.ID, s.Duration, MinDuration, MaxDuration)
	}
	return nil
}

// StartOnTimeline returns the shift start in minutes on an extended timeline
// where the after-midnight hours 0..2 map past 24, so shifts that cross
// midnight compare correctly within one service day.
func (s Shift) StartOnTimeline() int {
	h := s.StartHour
	if h < OpeningHour {
		h += 24
	}
	return h*60 + s.StartMinutes
}

// EndOnTimeline returns the exclusive end of the shift on the extended
// timeline. Intervals are half-open: [start, end).
func (s Shift) EndOnTimeline() int {
	return s.StartOnTimeline() + s.Duration*60
}

// CellKey names the grid cell a shift starts in.
func (s Shift) CellKey() string {
	return CellKey(s.Day, s.StartHour, s.StartMinutes)
}

// CellKey builds the canonical index key for a grid cell.
func CellKey(day Weekday, hour, minutes int) string {
	return fmt.Sprintf("%s_%d_%d", day, hour, minutes)
}

// SlotLabel renders a grid slot as "08:30".
func SlotLabel(hour, minutes int) string {
	return fmt.Sprintf("%02d:%02d", hour, minutes)
}

// Label renders the shift time span as "18:00-02:00".
func (s Shift) Label() string {
	endH := (s.StartHour + s.Duration) % 24
	return fmt.Sprintf("%s-%s", SlotLabel(s.StartHour, s.StartMinutes), SlotLabel(endH, s.StartMinutes))
}
