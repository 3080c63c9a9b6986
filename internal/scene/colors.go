package scene

import (
	"bufio"
	"io"
	"strings"
)

// ParseCategoryColors parses a class -> display color CSV. The first line is
// a header; each data line is "class,color" with any extra columns ignored.
func ParseCategoryColors(r io.Reader) map[string]string {
	colors := make(map[string]string)

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}
		class := strings.TrimSpace(parts[0])
		color := strings.TrimSpace(parts[1])
		if class == "" || color == "" {
			continue
		}
		colors[class] = color
	}
	return colors
}

// ColorForClass returns the mapped color for a class, or DefaultColor.
func ColorForClass(colors map[string]string, class string) string {
	if c, ok := colors[class]; ok {
		return c
	}
	return DefaultColor
}
