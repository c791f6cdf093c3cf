package texts

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads blank-line separated paragraphs from path, one passage each.
func LoadFile(path string, maxLen int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only text file.
			_ = cerr
		}
	}()

	var passages []string
	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		if text := Normalize(strings.Join(current, " "), maxLen); text != "" {
			passages = append(passages, text)
		}
		current = current[:0]
	}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	if len(passages) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTexts)
	}
	return passages, nil
}
