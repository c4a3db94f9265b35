package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/typeinfer/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
	sawNewline   bool // a line terminator was skipped since the last token

	// Type of the last token returned; decides whether '/' opens a regular
	// expression or divides.
	prev token.TokenType
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		if l.atEOF() {
			return
		}
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

// atEOF reports whether the whole input has been consumed. A NUL byte in
// the input is an ordinary character.
func (l *Lexer) atEOF() bool {
	return l.readPosition > len(l.input)
}

// operators is ordered so that longer lexemes are tried first.
var operators = []string{
	"===", "!==", "**=", ">>>", "...",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "<<", ">>", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "**",
	"=", "+", "-", "*", "/", "%", "&", "|", "^", "~", "!", "<", ">", "?",
	",", ";", ":", ".", "(", ")", "{", "}", "[", "]",
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	start, line, col := l.position, l.line, l.column
	newline := l.sawNewline
	l.sawNewline = false

	var tok token.Token
	switch {
	case l.atEOF():
		tok = token.Token{Type: token.EOF, Lexeme: ""}
		start = len(l.input)
	case isLetter(l.ch):
		ident := l.readIdentifier()
		tok = token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Literal: ident}
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		tok = l.readNumber()
	case l.ch == '"' || l.ch == '\'':
		tok = l.readString(l.ch)
	case l.ch == '`':
		tok = l.readTemplate()
	case l.ch == '/' && regexAllowed(l.prev):
		tok = l.readRegExp()
	default:
		tok = l.readOperator()
	}

	tok.Line = line
	tok.Column = col
	tok.Offset = start
	tok.NewlineBefore = newline
	l.prev = tok.Type
	return tok
}

func (l *Lexer) readOperator() token.Token {
	rest := l.input[l.position:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			for range op {
				l.readChar()
			}
			return token.Token{Type: token.TokenType(op), Lexeme: op, Literal: op}
		}
	}
	ch := l.ch
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Lexeme: string(ch), Literal: fmt.Sprintf("unexpected character %q", ch)}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readString reads a quoted string. The lexeme keeps the quotes, the literal
// holds the value with escape sequences resolved.
func (l *Lexer) readString(quote rune) token.Token {
	position := l.position
	var value strings.Builder
	l.readChar() // opening quote
	for {
		switch l.ch {
		case quote:
			l.readChar()
			return token.Token{Type: token.STRING, Lexeme: l.input[position:l.position], Literal: value.String()}
		case '\n':
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[position:l.position], Literal: "unterminated string literal"}
		case '\\':
			l.readChar()
			l.readEscape(&value)
		default:
			if l.atEOF() {
				return token.Token{Type: token.ILLEGAL, Lexeme: l.input[position:l.position], Literal: "unterminated string literal"}
			}
			value.WriteRune(l.ch)
			l.readChar()
		}
	}
}

// readTemplate reads a template literal, substitutions included, as one
// token. Only its extent matters to the parser.
func (l *Lexer) readTemplate() token.Token {
	position := l.position
	if !l.skipTemplate() {
		return token.Token{Type: token.ILLEGAL, Lexeme: l.input[position:l.position], Literal: "unterminated template literal"}
	}
	return token.Token{Type: token.TEMPLATE, Lexeme: l.input[position:l.position]}
}

// skipTemplate advances past the template starting at the current backquote.
func (l *Lexer) skipTemplate() bool {
	l.readChar() // opening backquote
	for !l.atEOF() {
		switch {
		case l.ch == '`':
			l.readChar()
			return true
		case l.ch == '\\':
			l.readChar()
			l.readChar()
		case l.ch == '$' && l.peekChar() == '{':
			l.readChar()
			l.readChar()
			if !l.skipSubstitution() {
				return false
			}
		default:
			l.readChar()
		}
	}
	return false
}

// skipSubstitution advances past the '}' closing a ${...} substitution.
func (l *Lexer) skipSubstitution() bool {
	depth := 0
	for !l.atEOF() {
		switch l.ch {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				l.readChar()
				return true
			}
			depth--
		case '\'', '"':
			if tok := l.readString(l.ch); tok.Type == token.ILLEGAL {
				return false
			}
			continue
		case '`':
			if !l.skipTemplate() {
				return false
			}
			continue
		}
		l.readChar()
	}
	return false
}

// readRegExp reads a regular expression literal with its flags.
func (l *Lexer) readRegExp() token.Token {
	position := l.position
	inClass := false
	l.readChar() // opening slash
	for {
		if l.atEOF() || l.ch == '\n' {
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[position:l.position], Literal: "unterminated regular expression literal"}
		}
		switch {
		case l.ch == '\\':
			l.readChar()
			if l.atEOF() || l.ch == '\n' {
				continue
			}
		case l.ch == '[':
			inClass = true
		case l.ch == ']':
			inClass = false
		case l.ch == '/' && !inClass:
			l.readChar()
			for isLetter(l.ch) {
				l.readChar()
			}
			return token.Token{Type: token.REGEXP, Lexeme: l.input[position:l.position]}
		}
		l.readChar()
	}
}

// regexAllowed reports whether a '/' following a token of type prev starts
// a regular expression rather than a division.
func regexAllowed(prev token.TokenType) bool {
	switch prev {
	case token.IDENT, token.NUMBER, token.STRING, token.TEMPLATE, token.REGEXP,
		token.RPAREN, token.RBRACKET, token.RBRACE,
		token.THIS, token.TRUE, token.FALSE, token.NULL, token.INCR, token.DECR:
		return false
	}
	return true
}

func (l *Lexer) readEscape(value *strings.Builder) {
	switch l.ch {
	case 'n':
		value.WriteByte('\n')
	case 't':
		value.WriteByte('\t')
	case 'r':
		value.WriteByte('\r')
	case 'b':
		value.WriteByte('\b')
	case 'f':
		value.WriteByte('\f')
	case 'v':
		value.WriteByte('\v')
	case '0':
		value.WriteByte(0)
	case '\n':
		// line continuation
	case 'x':
		if r, ok := l.readHexEscape(2); ok {
			value.WriteRune(r)
			return
		}
	case 'u':
		if r, ok := l.readHexEscape(4); ok {
			value.WriteRune(r)
			return
		}
	default:
		if l.atEOF() {
			return
		}
		value.WriteRune(l.ch)
	}
	l.readChar()
}

// readHexEscape consumes n hex digits following the escape letter. On success
// the lexer is left on the first char after the digits.
func (l *Lexer) readHexEscape(n int) (rune, bool) {
	start := l.readPosition
	end := start + n
	if end > len(l.input) {
		return 0, false
	}
	v, err := strconv.ParseUint(l.input[start:end], 16, 32)
	if err != nil {
		return 0, false
	}
	for i := 0; i <= n; i++ {
		l.readChar()
	}
	return rune(v), true
}

func (l *Lexer) readNumber() token.Token {
	position := l.position
	base := 10

	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 10 {
			l.readChar()
			l.readChar()
		}
	}

	if base != 10 {
		for isHexDigit(l.ch) {
			l.readChar()
		}
		lexeme := l.input[position:l.position]
		val, err := strconv.ParseInt(lexeme, 0, 64)
		if err != nil {
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "invalid numeric literal"}
		}
		return token.Token{Type: token.NUMBER, Lexeme: lexeme, Literal: float64(val)}
	}

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekChar2())) {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	lexeme := l.input[position:l.position]
	val, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "invalid numeric literal"}
	}
	return token.Token{Type: token.NUMBER, Lexeme: lexeme, Literal: val}
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$' || (ch >= 0x80 && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekChar2() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	_, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	pos2 := l.readPosition + w
	if pos2 >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos2:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' || l.ch == '\v' || l.ch == '\f' || l.ch == 0xFEFF || l.ch == 0xA0 {
			if l.ch == '\n' {
				l.sawNewline = true
			}
			l.readChar()
		}
		// Handle comments
		if l.ch == '/' {
			if l.peekChar() == '/' {
				l.readChar() // consume first /
				l.readChar() // consume second /
				for l.ch != '\n' && !l.atEOF() {
					l.readChar()
				}
				continue
			} else if l.peekChar() == '*' {
				l.readChar() // consume /
				l.readChar() // consume *
				for !l.atEOF() {
					if l.ch == '*' && l.peekChar() == '/' {
						l.readChar() // consume *
						l.readChar() // consume /
						break
					}
					if l.ch == '\n' {
						l.sawNewline = true
					}
					l.readChar()
				}
				continue
			}
		}
		break
	}
}
