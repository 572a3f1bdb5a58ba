package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/rotaplan/rota/pkg/schedule"
)

const dayColWidth = 4

// Week renders a per-slot occupancy grid for the whole week: days across
// the top, half-hour rows down the side. Occupied slots show the shift
// count in bold, empty slots stay faint.
func (pp *PrettyPrint) Week(shifts ...schedule.Shift) {
	days := schedule.Weekdays()

	tf := color.New(color.FgWhite, color.Italic)
	_, _ = tf.Print("     ")
	for _, d := range days {
		_, _ = tf.Printf("%*s", dayColWidth, strings.ToUpper(string(d)[:3]))
	}
	fmt.Print("\n")

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for _, hour := range schedule.GridHours() {
		for _, minutes := range []int{0, 30} {
			fmt.Printf("%s", schedule.SlotLabel(hour, minutes))
			for _, d := range days {
				n := occupancy(shifts, d, hour, minutes)
				if n == 0 {
					_, _ = l1.Printf("%*s", dayColWidth, "·")
				} else {
					_, _ = l2.Printf("%*d", dayColWidth, n)
				}
			}
			fmt.Print("\n")
		}
	}
	fmt.Print("\n")
}

// occupancy counts shifts covering the given slot, on the extended
// timeline so late shifts fill their after-midnight rows too.
func occupancy(shifts []schedule.Shift, day schedule.Weekday, hour, minutes int) int {
	t := hour
	if t < schedule.OpeningHour {
		t += 24
	}
	at := t*60 + minutes

	n := 0
	for _, sh := range shifts {
		if sh.Day != day {
			continue
		}
		if sh.StartOnTimeline() <= at && at < sh.EndOnTimeline() {
			n++
		}
	}
	return n
}
