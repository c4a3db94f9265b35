package parser

import (
	"fmt"

	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/diagnostics"
	"github.com/funvibe/typeinfer/internal/lexer"
	"github.com/funvibe/typeinfer/internal/token"
)

const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // = += -= ...
	CONDITIONAL // a ? b : c
	LOGICAL_OR  // || ??
	LOGICAL_AND // &&
	BIT_OR      // |
	BIT_XOR     // ^
	BIT_AND     // &
	EQUALITY    // == != === !==
	RELATIONAL  // < > <= >= in instanceof
	SHIFT       // << >> >>>
	SUM         // + -
	PRODUCT     // * / %
	EXPONENT    // **
	PREFIX      // -x !x typeof x
	POSTFIX     // x++ x--
	CALL        // f(x) a.b a[b]
)

// MaxRecursionDepth bounds expression nesting so hostile input cannot blow
// the goroutine stack.
const MaxRecursionDepth = 500

var precedences = map[token.TokenType]int{
	token.ASSIGN:          ASSIGNMENT,
	token.PLUS_ASSIGN:     ASSIGNMENT,
	token.MINUS_ASSIGN:    ASSIGNMENT,
	token.ASTERISK_ASSIGN: ASSIGNMENT,
	token.SLASH_ASSIGN:    ASSIGNMENT,
	token.PERCENT_ASSIGN:  ASSIGNMENT,
	token.POWER_ASSIGN:    ASSIGNMENT,
	token.QUESTION:        CONDITIONAL,
	token.OR:              LOGICAL_OR,
	token.NULLISH:         LOGICAL_OR,
	token.AND:             LOGICAL_AND,
	token.PIPE:            BIT_OR,
	token.CARET:           BIT_XOR,
	token.AMPERSAND:       BIT_AND,
	token.EQ:              EQUALITY,
	token.NOT_EQ:          EQUALITY,
	token.STRICT_EQ:       EQUALITY,
	token.STRICT_NOT_EQ:   EQUALITY,
	token.LT:              RELATIONAL,
	token.GT:              RELATIONAL,
	token.LTE:             RELATIONAL,
	token.GTE:             RELATIONAL,
	token.IN:              RELATIONAL,
	token.INSTANCEOF:      RELATIONAL,
	token.LSHIFT:          SHIFT,
	token.RSHIFT:          SHIFT,
	token.URSHIFT:         SHIFT,
	token.PLUS:            SUM,
	token.MINUS:           SUM,
	token.ASTERISK:        PRODUCT,
	token.SLASH:           PRODUCT,
	token.PERCENT:         PRODUCT,
	token.POWER:           EXPONENT,
	token.INCR:            POSTFIX,
	token.DECR:            POSTFIX,
	token.LPAREN:          CALL,
	token.DOT:             CALL,
	token.LBRACKET:        CALL,
	token.TEMPLATE:        CALL,
}

// Precedence returns the binding power of an operator token, or 0 for tokens
// that are not infix operators.
func Precedence(t token.TokenType) int {
	return precedences[t]
}

// RightAssociative reports whether chains of t group to the right.
func RightAssociative(t token.TokenType) bool {
	return precedences[t] == ASSIGNMENT || t == token.POWER
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Option configures a Parser.
type Option func(*Parser)

// WithTypeAnnotations accepts `name: type` parameter annotations, as found in
// the rewritten output of the annotation emitter.
func WithTypeAnnotations() Option {
	return func(p *Parser) { p.typeAnnotations = true }
}

// WithFile sets the file name recorded on the program and on diagnostics.
func WithFile(name string) Option {
	return func(p *Parser) { p.file = name }
}

type Parser struct {
	stream *lexer.TokenStream
	file   string
	errors []*diagnostics.DiagnosticError

	curToken  token.Token
	peekToken token.Token

	typeAnnotations bool
	depth           int

	// Opening parenthesis of each grouped expression
	parens map[ast.Expression]token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(stream *lexer.TokenStream, opts ...Option) *Parser {
	p := &Parser{
		stream:         stream,
		prefixParseFns: make(map[token.TokenType]prefixParseFn),
		infixParseFns:  make(map[token.TokenType]infixParseFn),
		parens:         make(map[ast.Expression]token.Token),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.NULL, p.parseNull)
	p.registerPrefix(token.THIS, p.parseThis)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACE, p.parseObjectLiteral)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(token.FUNCTION, p.parseFunctionExpression)
	p.registerPrefix(token.NEW, p.parseNewExpression)
	p.registerPrefix(token.TEMPLATE, p.parseTemplateLiteral)
	p.registerPrefix(token.REGEXP, p.parseRegExpLiteral)
	p.registerPrefix(token.ELLIPSIS, p.parseSpreadElement)
	p.registerPrefix(token.ILLEGAL, p.parseIllegal)
	for _, op := range []token.TokenType{token.BANG, token.MINUS, token.PLUS, token.TILDE, token.TYPEOF, token.INCR, token.DECR} {
		p.registerPrefix(op, p.parsePrefixExpression)
	}

	for op, prec := range precedences {
		switch {
		case prec == ASSIGNMENT || op == token.POWER:
			p.registerInfix(op, p.parseRightAssocBinaryExpression)
		case prec == CALL || op == token.QUESTION || prec == POSTFIX:
			// registered individually below
		default:
			p.registerInfix(op, p.parseBinaryExpression)
		}
	}
	p.registerInfix(token.QUESTION, p.parseConditionalExpression)
	p.registerInfix(token.INCR, p.parsePostfixExpression)
	p.registerInfix(token.DECR, p.parsePostfixExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.DOT, p.parseMemberExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)
	p.registerInfix(token.TEMPLATE, p.parseTaggedTemplate)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

// Parse lexes and parses src in one step.
func Parse(file, src string, opts ...Option) (*ast.Program, []*diagnostics.DiagnosticError) {
	opts = append([]Option{WithFile(file)}, opts...)
	p := New(lexer.NewTokenStream(lexer.New(src)), opts...)
	program := p.ParseProgram()
	program.End = len(src)
	return program, p.Errors()
}

func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.Next()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	err := diagnostics.NewError(code, tok, fmt.Sprintf(format, args...))
	err.File = p.file
	p.errors = append(p.errors, err)
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError(diagnostics.ErrP002, p.peekToken, "expected %s, got %s", describe(t), describeToken(p.peekToken))
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.addError(diagnostics.ErrP001, tok, "unexpected %s", describeToken(tok))
}

func describe(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.EOF:
		return "end of file"
	}
	return fmt.Sprintf("'%s'", token.TokenType(t))
}

func describeToken(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return fmt.Sprintf("identifier '%s'", tok.Lexeme)
	}
	return fmt.Sprintf("'%s'", tok.Lexeme)
}

// canInsertSemicolon reports whether a statement may end before peekToken.
func (p *Parser) canInsertSemicolon() bool {
	return p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.RBRACE) ||
		p.peekTokenIs(token.EOF) || p.peekToken.NewlineBefore
}

// consumeSemicolon ends a statement, applying automatic semicolon insertion.
// It returns false when the statement runs into an unexpected token.
func (p *Parser) consumeSemicolon() bool {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return true
	}
	if p.canInsertSemicolon() {
		return true
	}
	if p.peekTokenIs(token.ILLEGAL) {
		p.nextToken()
		p.parseIllegal()
		p.skipToStatementBoundary()
		return false
	}
	p.addError(diagnostics.ErrP004, p.peekToken, "expected ';', got %s", describeToken(p.peekToken))
	p.skipToStatementBoundary()
	return false
}

// skipToStatementBoundary advances to the last token of the broken statement.
// Bracketed groups are skipped whole, so a '}' inside the broken statement
// does not end the enclosing block.
func (p *Parser) skipToStatementBoundary() {
	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) &&
		!p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) && !p.peekToken.NewlineBefore {
		p.nextToken()
		if isOpener(p.curToken.Type) {
			p.skipBalanced()
		}
	}
}

// skipBalanced advances from an opening '(', '{' or '[' to its matching
// closer and leaves curToken there. Only the nesting depth is tracked.
func (p *Parser) skipBalanced() bool {
	open := p.curToken
	depth := 0
	for {
		switch {
		case isOpener(p.curToken.Type):
			depth++
		case isCloser(p.curToken.Type):
			depth--
			if depth == 0 {
				return true
			}
		case p.curTokenIs(token.ILLEGAL):
			p.parseIllegal()
		case p.curTokenIs(token.EOF):
			p.addError(diagnostics.ErrP002, p.curToken, "expected a match for '%s' at %d:%d, got end of file",
				open.Lexeme, open.Line, open.Column)
			return false
		}
		p.nextToken()
	}
}

func isOpener(t token.TokenType) bool {
	return t == token.LPAREN || t == token.LBRACE || t == token.LBRACKET
}

func isCloser(t token.TokenType) bool {
	return t == token.RPAREN || t == token.RBRACE || t == token.RBRACKET
}

// startToken returns the token an expression starts with, counting the
// opening parenthesis of a grouped expression.
func (p *Parser) startToken(expr ast.Expression) token.Token {
	if lparen, ok := p.parens[expr]; ok {
		return lparen
	}
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		return p.startToken(e.Left)
	case *ast.CallExpression:
		return p.startToken(e.Callee)
	}
	return expr.GetToken()
}
