// Package colorstore persists per-employee display colors so the planner
// paints each person consistently across sessions.
package colorstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Color is an entry of the planner palette. Values are ANSI-256 color codes
// consumable by lipgloss.
type Color struct {
	Foreground string `json:"fg"`
	Background string `json:"bg"`
}

// Palette is the rotation assigned to employees on first sight.
var Palette = []Color{
	{Foreground: "231", Background: "25"},  // blue
	{Foreground: "231", Background: "28"},  // green
	{Foreground: "16", Background: "178"},  // amber
	{Foreground: "231", Background: "90"},  // purple
	{Foreground: "231", Background: "124"}, // red
	{Foreground: "16", Background: "37"},   // teal
	{Foreground: "231", Background: "166"}, // orange
	{Foreground: "16", Background: "247"},  // grey
}

// Store assigns and persists employee colors.
type Store interface {
	ColorFor(employeeID int) (Color, error)
	SetColor(employeeID int, c Color) error
	Reset() error
}

// Load opens a color store rooted at basePath.
func Load(basePath string) (Store, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("colorstore: base path required")
	}
	return &store{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      64 * 1024,
	})}, nil
}

type store struct {
	d *diskv.Diskv
}

const colorPrefix = "colors"

func colorKey(employeeID int) string {
	return fmt.Sprintf("%s-%d", colorPrefix, employeeID)
}

// ColorFor returns the persisted color for an employee, assigning the next
// palette entry on first sight.
func (s *store) ColorFor(employeeID int) (Color, error) {
	key := colorKey(employeeID)
	if s.d.Has(key) {
		data, err := s.d.Read(key)
		if err != nil {
			return Color{}, fmt.Errorf("colorstore: reading color for %d: %w", employeeID, err)
		}
		var c Color
		if err := json.Unmarshal(data, &c); err != nil {
			return Color{}, fmt.Errorf("colorstore: decoding color for %d: %w", employeeID, err)
		}
		return c, nil
	}

	c := Palette[s.assigned()%len(Palette)]
	if err := s.SetColor(employeeID, c); err != nil {
		return Color{}, err
	}
	return c, nil
}

// SetColor pins an explicit color for an employee.
func (s *store) SetColor(employeeID int, c Color) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("colorstore: encoding color for %d: %w", employeeID, err)
	}
	if err := s.d.Write(colorKey(employeeID), data); err != nil {
		return fmt.Errorf("colorstore: writing color for %d: %w", employeeID, err)
	}
	return nil
}

// Reset drops every assignment so the palette starts over.
func (s *store) Reset() error {
	for key := range s.d.Keys(nil) {
		if err := s.d.Erase(key); err != nil {
			return fmt.Errorf("colorstore: erasing %s: %w", key, err)
		}
	}
	return nil
}

// assigned counts stored colors; the next new employee takes the next
// palette slot.
func (s *store) assigned() int {
	n := 0
	for range s.d.Keys(nil) {
		n++
	}
	return n
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// ParseANSI validates a palette value is an ANSI-256 code.
func ParseANSI(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 255 {
		return 0, fmt.Errorf("colorstore: %q is not an ANSI-256 color", s)
	}
	return n, nil
}
