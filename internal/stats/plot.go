package stats

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	barRune             = '█'
	minBarWidth         = 10
	labelColumnWidth    = 12
	countColumnWidth    = 6
	terminalWidthBackup = 80
)

// RenderHistogram formats buckets as horizontal ANSI bars scaled to the
// terminal width. Width <= 0 autodetects from the terminal, falling back to
// 80 columns when stdout is not a tty.
func RenderHistogram(buckets []Bucket, width int) string {
	if len(buckets) == 0 {
		return "no charges recorded yet"
	}
	if width <= 0 {
		width = detectTerminalWidth()
	}
	barWidth := width - labelColumnWidth - countColumnWidth
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	maxCount := 0
	for _, b := range buckets {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	var sb strings.Builder
	for _, b := range buckets {
		label := fmt.Sprintf("%3d-%-3d", b.Lo, b.Hi)
		bar := ""
		if maxCount > 0 && b.Count > 0 {
			n := b.Count * barWidth / maxCount
			if n == 0 {
				n = 1
			}
			bar = strings.Repeat(string(barRune), n)
		}
		fmt.Fprintf(&sb, "%-*s %s %d\n", labelColumnWidth, label, bar, b.Count)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func detectTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
