package ast

// Visitor has one method per node type. Adding a node type breaks every
// visitor until it handles the new type.
type Visitor interface {
	VisitProgram(node *Program)
	VisitExpressionStatement(node *ExpressionStatement)
	VisitStringLiteral(node *StringLiteral)
	VisitNumberLiteral(node *NumberLiteral)
	VisitBooleanLiteral(node *BooleanLiteral)
	VisitNullLiteral(node *NullLiteral)
	VisitObjectLiteral(node *ObjectLiteral)
	VisitIdentifier(node *Identifier)
	VisitFunctionDeclaration(node *FunctionDeclaration)
	VisitBlockStatement(node *BlockStatement)
	VisitReturnStatement(node *ReturnStatement)
	VisitBinaryExpression(node *BinaryExpression)
	VisitCallExpression(node *CallExpression)
	VisitUnknownNode(node *UnknownNode)
}
