package parser

import (
	"github.com/funvibe/typeinfer/internal/ast"
	"github.com/funvibe/typeinfer/internal/diagnostics"
	"github.com/funvibe/typeinfer/internal/token"
)

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{File: p.file, Statements: []ast.Statement{}}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.skipToStatementBoundary()
		}
		p.nextToken()
	}
	program.End = p.curToken.Offset
	return program
}

// parseStatement parses one statement starting at curToken and leaves
// curToken on the statement's last token. It returns nil after reporting an
// error.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.VAR, token.LET, token.CONST:
		return p.parseVariableStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.BREAK, token.CONTINUE:
		return p.parseJumpStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMICOLON:
		return &ast.UnknownNode{Token: p.curToken, Name: ast.EmptyStatementName, End: p.curToken.End()}
	case token.IDENT:
		if p.peekTokenIs(token.COLON) {
			return p.parseLabeledStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken, Statements: []ast.Statement{}}
	p.nextToken() // consume '{'

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.skipToStatementBoundary()
		}
		p.nextToken()
	}

	if !p.curTokenIs(token.RBRACE) {
		p.addError(diagnostics.ErrP002, p.curToken, "expected '}', got %s", describeToken(p.curToken))
	}
	block.RBrace = p.curToken
	return block
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.canInsertSemicolon() {
		p.consumeSemicolon()
		return stmt
	}
	p.nextToken()
	stmt.Argument = p.parseExpression(LOWEST)
	if stmt.Argument == nil {
		return nil
	}
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	fn := &ast.FunctionDeclaration{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fn.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	fn.LParen = p.curToken
	params, ok := p.parseParameters()
	if !ok {
		return nil
	}
	fn.Parameters = params
	fn.RParen = p.curToken

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStatement()
	return fn
}

// parseParameters parses a parameter list starting at '(' and leaves
// curToken on ')'.
func (p *Parser) parseParameters() ([]*ast.Parameter, bool) {
	params := []*ast.Parameter{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		param := &ast.Parameter{Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}

		if p.peekTokenIs(token.COLON) {
			annotation, ok := p.parseTypeAnnotation()
			if !ok {
				return nil, false
			}
			param.TypeAnnotation = annotation
		}
		if p.peekTokenIs(token.ASSIGN) {
			// Default values do not affect inference; parse and drop them.
			param.HasDefault = true
			p.nextToken()
			p.nextToken()
			if p.parseExpression(ASSIGNMENT) == nil {
				return nil, false
			}
		}
		params = append(params, param)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RPAREN) {
			return nil, false
		}
		return params, true
	}
}

// parseTypeAnnotation parses `: type` with the ':' as peekToken.
func (p *Parser) parseTypeAnnotation() (*ast.TypeAnnotation, bool) {
	p.nextToken() // ':'
	colon := p.curToken
	if !p.typeAnnotations {
		p.addError(diagnostics.ErrP005, colon, "type annotations can only be used in TypeScript files")
	}
	if !p.peekTokenIs(token.IDENT) && !p.peekTokenIs(token.NULL) {
		p.peekError(token.IDENT)
		return nil, false
	}
	p.nextToken()
	return &ast.TypeAnnotation{
		Token: colon,
		Type:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
	}, true
}

// parseVariableStatement keeps only the declared names; initializers are
// parsed for validity and dropped.
func (p *Parser) parseVariableStatement() ast.Statement {
	stmt := &ast.UnknownNode{Token: p.curToken, Name: ast.VariableStatementName}
	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Declares = append(stmt.Declares, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})

		if p.peekTokenIs(token.COLON) {
			if _, ok := p.parseTypeAnnotation(); !ok {
				return nil
			}
		}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			if p.parseExpression(ASSIGNMENT) == nil {
				return nil
			}
		}
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	p.consumeSemicolon()
	stmt.End = p.curToken.End()
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.UnknownNode{Token: p.curToken, Name: ast.IfStatementName}
	if !p.parseCondition() {
		return nil
	}
	p.nextToken()
	if p.parseStatement() == nil {
		return nil
	}
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		if p.parseStatement() == nil {
			return nil
		}
	}
	stmt.End = p.curToken.End()
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.UnknownNode{Token: p.curToken, Name: ast.WhileStatementName}
	if !p.parseCondition() {
		return nil
	}
	p.nextToken()
	if p.parseStatement() == nil {
		return nil
	}
	stmt.End = p.curToken.End()
	return stmt
}

// parseCondition parses `( expr )` following an if/while keyword.
func (p *Parser) parseCondition() bool {
	if !p.expectPeek(token.LPAREN) {
		return false
	}
	p.nextToken()
	if p.parseExpression(LOWEST) == nil {
		return false
	}
	return p.expectPeek(token.RPAREN)
}

// parseForStatement covers every for form. The header is skipped as a
// balanced group; only a leading var declaration is kept for hoisting.
func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.UnknownNode{Token: p.curToken, Name: ast.ForStatementName}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if p.peekTokenIs(token.VAR) {
		if next := p.stream.Peek(1); len(next) == 1 && next[0].Type == token.IDENT {
			stmt.Declares = append(stmt.Declares, &ast.Identifier{Token: next[0], Value: next[0].Lexeme})
		}
	}
	if !p.skipBalanced() {
		return nil
	}
	p.nextToken()
	if p.parseStatement() == nil {
		return nil
	}
	stmt.End = p.curToken.End()
	return stmt
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	stmt := &ast.UnknownNode{Token: p.curToken, Name: ast.DoWhileStatementName}
	p.nextToken()
	if p.parseStatement() == nil {
		return nil
	}
	if !p.expectPeek(token.WHILE) || !p.parseCondition() {
		return nil
	}
	// A semicolon is always inserted after do-while.
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	stmt.End = p.curToken.End()
	return stmt
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	stmt := &ast.UnknownNode{Token: p.curToken, Name: ast.SwitchStatementName}
	if !p.expectPeek(token.LPAREN) || !p.skipBalanced() {
		return nil
	}
	if !p.expectPeek(token.LBRACE) || !p.skipBalanced() {
		return nil
	}
	stmt.End = p.curToken.End()
	return stmt
}

func (p *Parser) parseTryStatement() ast.Statement {
	stmt := &ast.UnknownNode{Token: p.curToken, Name: ast.TryStatementName}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.parseBlockStatement()

	handled := false
	if p.peekTokenIs(token.CATCH) {
		p.nextToken()
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			if !p.skipBalanced() {
				return nil
			}
		}
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		p.parseBlockStatement()
		handled = true
	}
	if p.peekTokenIs(token.FINALLY) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		p.parseBlockStatement()
		handled = true
	}
	if !handled {
		p.addError(diagnostics.ErrP002, p.peekToken, "expected 'catch' or 'finally', got %s", describeToken(p.peekToken))
		return nil
	}
	stmt.End = p.curToken.End()
	return stmt
}

func (p *Parser) parseThrowStatement() ast.Statement {
	stmt := &ast.UnknownNode{Token: p.curToken, Name: ast.ThrowStatementName}
	if p.peekToken.NewlineBefore || p.peekTokenIs(token.EOF) {
		p.addError(diagnostics.ErrP001, p.peekToken, "expected an expression after 'throw', got %s", describeToken(p.peekToken))
		return nil
	}
	p.nextToken()
	if p.parseExpression(LOWEST) == nil {
		return nil
	}
	p.consumeSemicolon()
	stmt.End = p.curToken.End()
	return stmt
}

// parseJumpStatement parses break and continue with an optional label.
func (p *Parser) parseJumpStatement() ast.Statement {
	name := ast.BreakStatementName
	if p.curTokenIs(token.CONTINUE) {
		name = ast.ContinueStatementName
	}
	stmt := &ast.UnknownNode{Token: p.curToken, Name: name}
	if p.peekTokenIs(token.IDENT) && !p.peekToken.NewlineBefore {
		p.nextToken()
	}
	p.consumeSemicolon()
	stmt.End = p.curToken.End()
	return stmt
}

func (p *Parser) parseLabeledStatement() ast.Statement {
	stmt := &ast.UnknownNode{Token: p.curToken, Name: ast.LabeledStatementName}
	p.nextToken() // ':'
	p.nextToken()
	if p.parseStatement() == nil {
		return nil
	}
	stmt.End = p.curToken.End()
	return stmt
}
