package token

import "fmt"

// ErrorKind enumerates the lexical error taxonomy.
type ErrorKind int

const (
	UnterminatedString ErrorKind = iota
	UnterminatedComment
	BadExponent
	BadHexLiteral
	CharCodeOutOfRange
	UnrecognisedCharacter
)

var errorKindMessages = map[ErrorKind]string{
	UnterminatedString:    "unterminated string literal",
	UnterminatedComment:   "unterminated comment",
	BadExponent:           "malformed exponent in real literal",
	BadHexLiteral:         "malformed hexadecimal literal",
	CharCodeOutOfRange:    "character code out of range (0..255)",
	UnrecognisedCharacter: "unrecognised character",
}

// LexError is a hard lexical error; it carries the {line, column} the
// diagnostic format requires.
type LexError struct {
	Kind   ErrorKind
	Line   int
	Column int
	Detail string
}

func (e *LexError) Error() string {
	msg := errorKindMessages[e.Kind]
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Line, e.Column, msg)
}
