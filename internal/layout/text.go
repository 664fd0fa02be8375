package layout

import "strings"

// Item descriptions wider than the description column are cut with a
// trailing ellipsis. The cut is silent: nothing marks the row as truncated
// beyond the ellipsis itself.
const descriptionMaxChars = 45

func truncateDescription(s string) string {
	r := []rune(s)
	if len(r) <= descriptionMaxChars {
		return s
	}
	return string(r[:descriptionMaxChars]) + "..."
}

// wrapLines breaks text into lines of at most maxChars characters, keeping
// explicit newlines, and silently drops everything past maxLines.
func wrapLines(s string, maxChars, maxLines int) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := ""
		for _, w := range words {
			switch {
			case line == "":
				line = w
			case len([]rune(line))+1+len([]rune(w)) <= maxChars:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		out = append(out, line)
	}
	if len(out) > maxLines {
		out = out[:maxLines]
	}
	return out
}
