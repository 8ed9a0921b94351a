package loader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/oakwood-commons/prcx/internal/hash40"
)

// ParseLabels reads a label table in the ParamLabels.csv layout: one
// "0xhash,label" pair per line. Blank lines and lines with an empty label
// column are skipped; lines whose hash column is not a valid hex literal are
// an error.
func ParseLabels(input string) ([]hash40.Label, error) {
	var labels []hash40.Label

	scanner := bufio.NewScanner(strings.NewReader(input))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		hexPart, name, _ := strings.Cut(line, ",")
		h, err := hash40.ParseHex(strings.TrimSpace(hexPart))
		if err != nil {
			return nil, fmt.Errorf("labels line %d: %w", lineNo, err)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		labels = append(labels, hash40.Label{Hash: h, Name: name})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading labels: %w", err)
	}
	return labels, nil
}

// LoadLabelsFile reads and parses a label table from disk.
func LoadLabelsFile(path string) ([]hash40.Label, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLabels(string(data))
}
