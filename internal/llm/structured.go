package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
type SchemaValidator[T any] func(T) error

// ExtractJSON pulls the first JSON object out of raw model output and
// decodes it into T. Markdown fences and chatter around the object are
// ignored, and bare leading decimals such as .8 are repaired.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := firstObject(stripFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(fixBareDecimals(block)), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// LooksLikeJSON reports whether raw contains something shaped like an object.
func LooksLikeJSON(raw string) bool {
	return firstObject(stripFences(raw)) != ""
}

func stripFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// jsonScanner tracks whether a byte position is inside a JSON string.
type jsonScanner struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it is structural (outside strings).
func (s *jsonScanner) step(c byte) bool {
	switch {
	case s.escaped:
		s.escaped = false
		return false
	case s.inString && c == '\\':
		s.escaped = true
		return false
	case c == '"':
		s.inString = !s.inString
		return false
	}
	return !s.inString
}

// firstObject returns the first balanced {...} block, or "".
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	var sc jsonScanner
	depth := 0
	for i := start; i < len(s); i++ {
		if !sc.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// fixBareDecimals rewrites .8 and -.3 outside strings as 0.8 and -0.3.
func fixBareDecimals(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var sc jsonScanner
	last := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		structural := sc.step(c)
		if structural && c == '.' && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
			switch last {
			case 0, ':', ',', '[', '{', '-':
				b.WriteByte('0')
			}
		}
		b.WriteByte(c)
		if structural && c != ' ' && c != '\n' && c != '\t' && c != '\r' {
			last = c
		}
	}
	return b.String()
}
