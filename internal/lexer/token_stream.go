package lexer

import "github.com/funvibe/typeinfer/internal/token"

// TokenStream buffers lexer output so the parser can look ahead.
type TokenStream struct {
	lexer  *Lexer
	buffer []token.Token
}

func NewTokenStream(l *Lexer) *TokenStream {
	return &TokenStream{lexer: l}
}

// Next returns the next token. After EOF it keeps returning EOF.
func (s *TokenStream) Next() token.Token {
	if len(s.buffer) > 0 {
		tok := s.buffer[0]
		s.buffer = s.buffer[1:]
		return tok
	}
	return s.lexer.NextToken()
}

// Peek returns up to n upcoming tokens without consuming them. The slice ends
// early at EOF.
func (s *TokenStream) Peek(n int) []token.Token {
	for len(s.buffer) < n {
		if len(s.buffer) > 0 && s.buffer[len(s.buffer)-1].Type == token.EOF {
			break
		}
		s.buffer = append(s.buffer, s.lexer.NextToken())
	}
	if n > len(s.buffer) {
		n = len(s.buffer)
	}
	return s.buffer[:n]
}

// Tokenize lexes the whole input, including the trailing EOF token.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}
