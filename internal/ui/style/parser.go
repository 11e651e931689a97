// Package style is the small CSS dialect the overlay is styled with: ".class" and "#id"
// selectors (comma separated groups allowed) with "key: value;" declarations. No
// combinators, no @rules.
package style

import (
	"os"
	"strings"
)

// Load reads and parses a CSS file.
func Load(path string) (*Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

// Parse parses CSS content. Blocks with unsupported selectors are skipped; an
// unterminated block ends parsing. Later rules override earlier for the same selector.
func Parse(content string) *Stylesheet {
	sheet := &Stylesheet{}
	s := stripComments(content)
	for {
		open := strings.Index(s, "{")
		if open == -1 {
			break
		}
		close := findMatchingBrace(s, open)
		if close == -1 {
			break
		}
		props := parseDeclarations(strings.TrimSpace(s[open+1 : close]))
		for _, sel := range strings.Split(s[:open], ",") {
			sel = strings.TrimSpace(sel)
			if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') || strings.ContainsAny(sel, " >+~:") {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
		}
		s = s[close+1:]
	}
	return sheet
}

func stripComments(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "/*")
		if start == -1 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])
		end := strings.Index(s[start+2:], "*/")
		if end == -1 {
			return b.String()
		}
		s = s[start+2+end+2:]
	}
}

func findMatchingBrace(s string, openIdx int) int {
	depth := 1
	for i := openIdx + 1; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseDeclarations(body string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(body, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k != "" {
			props[k] = strings.TrimSpace(v)
		}
	}
	return props
}
