// Package parser classifies raw input lines.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import "strings"

// ExitToken is the reserved word that ends a session at any prompt.
const ExitToken = "exit"

// Kind identifies what an input line asks for.
type Kind int

const (
	KindEmpty Kind = iota
	KindExit
	KindMeta
	KindSingle
	KindPair
)

// Command is the parsed form of one input line.
type Command struct {
	Kind   Kind
	First  string // element name (KindSingle, KindPair)
	Second string // element name (KindPair)
	Meta   string // "/help", "/trace", ... (KindMeta)
	Arg    string // optional meta-command argument
}

// Leading verbs that may precede a pair ("mix water and fire").
var combineVerbs = map[string]bool{
	"combine": true,
	"mix":     true,
	"merge":   true,
	"fuse":    true,
}

// Word separators between two element names.
var pairWords = map[string]bool{
	"and":  true,
	"with": true,
}

// Parse converts a raw input line into a Command.
func Parse(input string) Command {
	words := strings.Fields(input)
	if len(words) == 0 {
		return Command{}
	}

	if len(words) == 1 && IsExit(words[0]) {
		return Command{Kind: KindExit}
	}

	if strings.HasPrefix(words[0], "/") {
		cmd := Command{Kind: KindMeta, Meta: strings.ToLower(words[0])}
		if len(words) > 1 {
			cmd.Arg = strings.Join(words[1:], " ")
		}
		return cmd
	}

	if first, second, ok := splitPair(words); ok {
		return Command{Kind: KindPair, First: first, Second: second}
	}
	return Command{Kind: KindSingle, First: strings.Join(words, " ")}
}

// IsExit reports whether token is the exit token, ignoring case and
// surrounding whitespace.
func IsExit(token string) bool {
	return strings.EqualFold(strings.TrimSpace(token), ExitToken)
}

// Normalize trims a name and collapses internal whitespace runs.
func Normalize(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// splitPair splits "a + b", "a+b", "a and b" or "mix a with b" into two names.
// Both sides must be non-empty.
func splitPair(words []string) (string, string, bool) {
	line := strings.Join(words, " ")
	if i := strings.Index(line, "+"); i >= 0 {
		first := Normalize(line[:i])
		second := Normalize(line[i+1:])
		if combineVerbs[strings.ToLower(firstWord(first))] {
			first = Normalize(strings.TrimSpace(first)[len(firstWord(first)):])
		}
		if first == "" || second == "" {
			return "", "", false
		}
		return first, second, true
	}

	if len(words) > 1 && combineVerbs[strings.ToLower(words[0])] {
		words = words[1:]
	}
	for i, w := range words {
		if pairWords[strings.ToLower(w)] && i > 0 && i < len(words)-1 {
			return strings.Join(words[:i], " "), strings.Join(words[i+1:], " "), true
		}
	}
	return "", "", false
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
