package parser

import (
	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/diagnostics"
	"github.com/funvibe/typeinfer/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.addError(diagnostics.ErrP006, p.curToken, "expression too complex: recursion depth limit exceeded")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		// x \n ++y is two statements, never a postfix increment
		if (p.peekTokenIs(token.INCR) || p.peekTokenIs(token.DECR)) && p.peekToken.NewlineBefore {
			break
		}
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}

	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	if p.peekTokenIs(token.ARROW) && !p.peekToken.NewlineBefore {
		return p.parseArrowFunction(p.curToken)
	}
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(float64)
	return &ast.NumberLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(string)
	return &ast.StringLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNull() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parseThis() ast.Expression {
	return &ast.UnknownNode{Token: p.curToken, Name: ast.ThisExpressionName, End: p.curToken.End()}
}

func (p *Parser) parseIllegal() ast.Expression {
	msg, _ := p.curToken.Literal.(string)
	if msg == "" {
		msg = "illegal token"
	}
	p.addError(diagnostics.ErrP003, p.curToken, "%s", msg)
	return nil
}

// parseGroupedExpression parses a parenthesized expression, a comma
// sequence, or the parameter list of an arrow function.
func (p *Parser) parseGroupedExpression() ast.Expression {
	lparen := p.curToken
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return p.parseArrowFunction(lparen)
	}
	p.nextToken() // consume '('
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	sequence := false
	for p.peekTokenIs(token.COMMA) {
		sequence = true
		p.nextToken()
		p.nextToken()
		if p.parseExpression(ASSIGNMENT-1) == nil {
			return nil
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if p.peekTokenIs(token.ARROW) && !p.peekToken.NewlineBefore {
		return p.parseArrowFunction(lparen)
	}
	if sequence {
		return &ast.UnknownNode{Token: lparen, Name: ast.SequenceExpressionName, End: p.curToken.End()}
	}
	p.parens[exp] = lparen
	return exp
}

// parseArrowFunction parses from the end of the parameters, with '=>' as
// peekToken. start is the first token of the parameters.
func (p *Parser) parseArrowFunction(start token.Token) ast.Expression {
	if !p.expectPeek(token.ARROW) {
		return nil
	}
	if p.peekTokenIs(token.LBRACE) {
		p.nextToken()
		p.parseBlockStatement()
	} else {
		p.nextToken()
		if p.parseExpression(ASSIGNMENT-1) == nil {
			return nil
		}
	}
	return &ast.UnknownNode{Token: start, Name: ast.ArrowFunctionName, End: p.curToken.End()}
}

func (p *Parser) parseSpreadElement() ast.Expression {
	tok := p.curToken
	p.nextToken()
	if p.parseExpression(ASSIGNMENT-1) == nil {
		return nil
	}
	return &ast.UnknownNode{Token: tok, Name: ast.SpreadElementName, End: p.curToken.End()}
}

func (p *Parser) parseTemplateLiteral() ast.Expression {
	return &ast.UnknownNode{Token: p.curToken, Name: ast.TemplateLiteralName, End: p.curToken.End()}
}

func (p *Parser) parseTaggedTemplate(tag ast.Expression) ast.Expression {
	return &ast.UnknownNode{Token: p.startToken(tag), Name: ast.TaggedTemplateName, End: p.curToken.End()}
}

func (p *Parser) parseRegExpLiteral() ast.Expression {
	return &ast.UnknownNode{Token: p.curToken, Name: ast.RegExpLiteralName, End: p.curToken.End()}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	if p.parseExpression(PREFIX) == nil {
		return nil
	}
	return &ast.UnknownNode{Token: tok, Name: ast.UnaryExpressionName, End: p.curToken.End()}
}

func (p *Parser) parsePostfixExpression(left ast.Expression) ast.Expression {
	return &ast.UnknownNode{Token: p.startToken(left), Name: ast.PostfixExpressionName, End: p.curToken.End()}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expression := &ast.BinaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Type,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseRightAssocBinaryExpression parses assignments and '**', which group
// to the right: a = b = c is a = (b = c).
func (p *Parser) parseRightAssocBinaryExpression(left ast.Expression) ast.Expression {
	expression := &ast.BinaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Type,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence - 1)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseConditionalExpression(left ast.Expression) ast.Expression {
	start := p.startToken(left)
	p.nextToken()
	if p.parseExpression(ASSIGNMENT-1) == nil {
		return nil
	}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	if p.parseExpression(ASSIGNMENT-1) == nil {
		return nil
	}
	return &ast.UnknownNode{Token: start, Name: ast.ConditionalExpressionName, End: p.curToken.End()}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curToken, Callee: callee}
	args, ok := p.parseExpressionList(token.RPAREN)
	if !ok {
		return nil
	}
	call.Arguments = args
	call.RParen = p.curToken
	return call
}

// parseExpressionList parses comma-separated expressions up to end, starting
// at the opening delimiter and leaving curToken on end.
func (p *Parser) parseExpressionList(end token.TokenType) ([]ast.Expression, bool) {
	list := []ast.Expression{}
	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	for {
		expr := p.parseExpression(ASSIGNMENT - 1)
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		if p.peekTokenIs(end) { // trailing comma
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}

func (p *Parser) parseMemberExpression(left ast.Expression) ast.Expression {
	start := p.startToken(left)
	// Keywords are valid property names: a.new, a.in
	if p.peekTokenIs(token.IDENT) || token.LookupIdent(p.peekToken.Lexeme) != token.IDENT {
		p.nextToken()
	} else {
		p.peekError(token.IDENT)
		return nil
	}
	return &ast.UnknownNode{Token: start, Name: ast.MemberExpressionName, End: p.curToken.End()}
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	start := p.startToken(left)
	p.nextToken()
	if p.parseExpression(LOWEST) == nil {
		return nil
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.UnknownNode{Token: start, Name: ast.MemberExpressionName, End: p.curToken.End()}
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	obj := &ast.ObjectLiteral{Token: p.curToken, Properties: []*ast.Property{}}

	for !p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		var key *ast.Identifier
		switch {
		case p.curTokenIs(token.IDENT):
			key = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		case p.curTokenIs(token.STRING):
			value, _ := p.curToken.Literal.(string)
			key = &ast.Identifier{Token: p.curToken, Value: value}
		case p.curTokenIs(token.NUMBER), token.LookupIdent(p.curToken.Lexeme) != token.IDENT:
			key = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		default:
			p.noPrefixParseFnError(p.curToken)
			return nil
		}

		prop := &ast.Property{Key: key}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			prop.Value = p.parseExpression(ASSIGNMENT - 1)
			if prop.Value == nil {
				return nil
			}
		} else if p.curTokenIs(token.IDENT) {
			prop.Value = key
		} else {
			p.peekError(token.COLON)
			return nil
		}
		obj.Properties = append(obj.Properties, prop)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	obj.RBrace = p.curToken
	return obj
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.curToken
	if _, ok := p.parseExpressionList(token.RBRACKET); !ok {
		return nil
	}
	return &ast.UnknownNode{Token: tok, Name: ast.ArrayLiteralName, End: p.curToken.End()}
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if _, ok := p.parseParameters(); !ok {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.parseBlockStatement()
	return &ast.UnknownNode{Token: tok, Name: ast.FunctionExpressionName, End: p.curToken.End()}
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	if p.parseExpression(POSTFIX) == nil {
		return nil
	}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		if _, ok := p.parseExpressionList(token.RPAREN); !ok {
			return nil
		}
	}
	return &ast.UnknownNode{Token: tok, Name: ast.NewExpressionName, End: p.curToken.End()}
}
