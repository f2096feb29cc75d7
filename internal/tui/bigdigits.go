package tui

import "strings"

// 5-row block font for the frame readout. The HUD is glanced at mid-jump;
// the number has to be readable from across the room.
var digitRows = map[rune][5]string{
	'0': {"█████", "█   █", "█   █", "█   █", "█████"},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {"█████", "    █", "█████", "█    ", "█████"},
	'3': {"█████", "    █", " ████", "    █", "█████"},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "█████", "    █", "█████"},
	'6': {"█████", "█    ", "█████", "█   █", "█████"},
	'7': {"█████", "    █", "   █ ", "  █  ", "  █  "},
	'8': {"█████", "█   █", "█████", "█   █", "█████"},
	'9': {"█████", "█   █", "█████", "    █", "█████"},
	'-': {"     ", "     ", "█████", "     ", "     "},
}

// bigNumber renders the text in the block font, one string per row.
func bigNumber(text string) string {
	var rows [5][]string
	for _, r := range text {
		glyph, ok := digitRows[r]
		if !ok {
			continue
		}
		for i := 0; i < 5; i++ {
			rows[i] = append(rows[i], glyph[i])
		}
	}
	lines := make([]string, 5)
	for i := 0; i < 5; i++ {
		lines[i] = strings.Join(rows[i], "  ")
	}
	return strings.Join(lines, "\n")
}
