package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string      // Raw source text of the token
	Literal interface{} // Decoded value: float64 for NUMBER, string for STRING and identifiers
	Line    int
	Column  int
	Offset  int // Byte offset of the first character in the source

	// NewlineBefore is set when at least one line terminator separates this
	// token from the previous one. Automatic semicolon insertion relies on it.
	NewlineBefore bool
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Lexeme)
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + literals
	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER"
	STRING TokenType = "STRING"

	// Template and regular expression literals are lexed whole
	TEMPLATE TokenType = "TEMPLATE"
	REGEXP   TokenType = "REGEXP"

	// Assignment
	ASSIGN          TokenType = "="
	PLUS_ASSIGN     TokenType = "+="
	MINUS_ASSIGN    TokenType = "-="
	ASTERISK_ASSIGN TokenType = "*="
	SLASH_ASSIGN    TokenType = "/="
	PERCENT_ASSIGN  TokenType = "%="
	POWER_ASSIGN    TokenType = "**="

	// Arithmetic
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	POWER    TokenType = "**"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	INCR     TokenType = "++"
	DECR     TokenType = "--"

	// Bitwise
	AMPERSAND TokenType = "&"
	PIPE      TokenType = "|"
	CARET     TokenType = "^"
	TILDE     TokenType = "~"
	LSHIFT    TokenType = "<<"
	RSHIFT    TokenType = ">>"
	URSHIFT   TokenType = ">>>"

	// Logical and comparison
	BANG          TokenType = "!"
	AND           TokenType = "&&"
	OR            TokenType = "||"
	NULLISH       TokenType = "??"
	EQ            TokenType = "=="
	NOT_EQ        TokenType = "!="
	STRICT_EQ     TokenType = "==="
	STRICT_NOT_EQ TokenType = "!=="
	LT            TokenType = "<"
	GT            TokenType = ">"
	LTE           TokenType = "<="
	GTE           TokenType = ">="
	QUESTION      TokenType = "?"
	ARROW         TokenType = "=>"
	ELLIPSIS      TokenType = "..."

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	DOT       TokenType = "."
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	FUNCTION   TokenType = "FUNCTION"
	VAR        TokenType = "VAR"
	LET        TokenType = "LET"
	CONST      TokenType = "CONST"
	RETURN     TokenType = "RETURN"
	IF         TokenType = "IF"
	ELSE       TokenType = "ELSE"
	WHILE      TokenType = "WHILE"
	TRUE       TokenType = "TRUE"
	FALSE      TokenType = "FALSE"
	NULL       TokenType = "NULL"
	IN         TokenType = "IN"
	INSTANCEOF TokenType = "INSTANCEOF"
	TYPEOF     TokenType = "TYPEOF"
	NEW        TokenType = "NEW"
	THIS       TokenType = "THIS"
	FOR        TokenType = "FOR"
	DO         TokenType = "DO"
	SWITCH     TokenType = "SWITCH"
	CASE       TokenType = "CASE"
	DEFAULT    TokenType = "DEFAULT"
	TRY        TokenType = "TRY"
	CATCH      TokenType = "CATCH"
	FINALLY    TokenType = "FINALLY"
	THROW      TokenType = "THROW"
	BREAK      TokenType = "BREAK"
	CONTINUE   TokenType = "CONTINUE"
)

var keywords = map[string]TokenType{
	"function":   FUNCTION,
	"var":        VAR,
	"let":        LET,
	"const":      CONST,
	"return":     RETURN,
	"if":         IF,
	"else":       ELSE,
	"while":      WHILE,
	"true":       TRUE,
	"false":      FALSE,
	"null":       NULL,
	"in":         IN,
	"instanceof": INSTANCEOF,
	"typeof":     TYPEOF,
	"new":        NEW,
	"this":       THIS,
	"for":        FOR,
	"do":         DO,
	"switch":     SWITCH,
	"case":       CASE,
	"default":    DEFAULT,
	"try":        TRY,
	"catch":      CATCH,
	"finally":    FINALLY,
	"throw":      THROW,
	"break":      BREAK,
	"continue":   CONTINUE,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsAssignment reports whether t is '=' or one of the compound assignments.
func IsAssignment(t TokenType) bool {
	switch t {
	case ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, ASTERISK_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN, POWER_ASSIGN:
		return true
	}
	return false
}
