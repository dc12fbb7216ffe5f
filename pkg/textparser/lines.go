// Package textparser turns raw specification text into the stream of
// content lines the structural parsers work on.
package textparser

import (
	"bufio"
	"strings"
)

// CommentPrefix marks a comment line once the line has been trimmed.
const CommentPrefix = "#"

// GetLines splits text into trimmed lines, dropping blank lines and comments.
// "\r\n" and "\n" are both line breaks. Order is preserved.
func GetLines(text string) []string {
	lines := make([]string, 0)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if isContent(line) {
			lines = append(lines, line)
		}
	}

	return lines
}

func isContent(line string) bool {
	return line != "" && !strings.HasPrefix(line, CommentPrefix)
}
