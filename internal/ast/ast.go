package ast

import "github.com/lunar-lang/lunar/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of a parsed source: an ordered sequence of blocks.
type Program struct {
	Blocks []*Block
	span   lexer.Span
}

// Span returns the span covering the entire program.
func (p *Program) Span() lexer.Span { return p.span }

// NewProgram constructs a program node.
func NewProgram(blocks []*Block, span lexer.Span) *Program {
	return &Program{Blocks: blocks, span: span}
}

// SetSpan updates the program span.
func (p *Program) SetSpan(span lexer.Span) {
	p.span = span
}

// Block is an ordered sequence of statements forming one scope.
type Block struct {
	Stmts []Stmt
	span  lexer.Span
}

// Span returns the block span.
func (b *Block) Span() lexer.Span { return b.span }

// NewBlock constructs a block node.
func NewBlock(stmts []Stmt, span lexer.Span) *Block {
	return &Block{Stmts: stmts, span: span}
}

// SetSpan updates the block span.
func (b *Block) SetSpan(span lexer.Span) {
	b.span = span
}

// AssignStmt binds Value to Name. IsLocal selects a binding in the innermost
// frame; otherwise the nearest existing binding is overwritten, falling back
// to the global frame.
type AssignStmt struct {
	Name    *Ident
	Value   Expr
	IsLocal bool
	span    lexer.Span
}

// Span returns the statement span.
func (s *AssignStmt) Span() lexer.Span { return s.span }

// NewAssignStmt constructs an assignment statement node.
func NewAssignStmt(name *Ident, value Expr, isLocal bool, span lexer.Span) *AssignStmt {
	return &AssignStmt{
		Name:    name,
		Value:   value,
		IsLocal: isLocal,
		span:    span,
	}
}

func (*AssignStmt) stmtNode() {}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	Value Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *ReturnStmt) Span() lexer.Span { return s.span }

// NewReturnStmt constructs a return statement node.
func NewReturnStmt(value Expr, span lexer.Span) *ReturnStmt {
	return &ReturnStmt{Value: value, span: span}
}

func (*ReturnStmt) stmtNode() {}

// IfStmt represents a conditional with an optional else block. An elseif
// chain is represented as an else block holding a single nested IfStmt.
type IfStmt struct {
	Condition Expr
	Then      *Block
	Else      *Block
	span      lexer.Span
}

// Span returns the statement span.
func (s *IfStmt) Span() lexer.Span { return s.span }

// NewIfStmt constructs an if statement node.
func NewIfStmt(cond Expr, then, els *Block, span lexer.Span) *IfStmt {
	return &IfStmt{
		Condition: cond,
		Then:      then,
		Else:      els,
		span:      span,
	}
}

func (*IfStmt) stmtNode() {}

// WhileStmt represents a while loop.
type WhileStmt struct {
	Condition Expr
	Body      *Block
	span      lexer.Span
}

// Span returns the statement span.
func (s *WhileStmt) Span() lexer.Span { return s.span }

// NewWhileStmt constructs a while loop node.
func NewWhileStmt(cond Expr, body *Block, span lexer.Span) *WhileStmt {
	return &WhileStmt{Condition: cond, Body: body, span: span}
}

func (*WhileStmt) stmtNode() {}

// ForStmt represents a numeric for loop. Step is nil when omitted.
type ForStmt struct {
	Init *AssignStmt
	Stop Expr
	Step Expr
	Body *Block
	span lexer.Span
}

// Span returns the statement span.
func (s *ForStmt) Span() lexer.Span { return s.span }

// NewForStmt constructs a for loop node.
func NewForStmt(init *AssignStmt, stop, step Expr, body *Block, span lexer.Span) *ForStmt {
	return &ForStmt{
		Init: init,
		Stop: stop,
		Step: step,
		Body: body,
		span: span,
	}
}

func (*ForStmt) stmtNode() {}

// ExprStmt represents a bare expression statement.
type ExprStmt struct {
	Expr Expr
	span lexer.Span
}

// Span returns the statement span.
func (s *ExprStmt) Span() lexer.Span { return s.span }

// NewExprStmt constructs an expression statement node.
func NewExprStmt(expr Expr, span lexer.Span) *ExprStmt {
	return &ExprStmt{Expr: expr, span: span}
}

func (*ExprStmt) stmtNode() {}

// Ident represents an identifier.
type Ident struct {
	Name string
	span lexer.Span
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{Name: name, span: span}
}

func (*Ident) exprNode() {}

// Literal holds a constant value: int64, float64, string, bool or nil. The
// interpreter may also store an already evaluated runtime value here when it
// builds a synthetic call block.
type Literal struct {
	Value any
	span  lexer.Span
}

// Span returns the literal span.
func (l *Literal) Span() lexer.Span { return l.span }

// NewLiteral constructs a literal node.
func NewLiteral(value any, span lexer.Span) *Literal {
	return &Literal{Value: value, span: span}
}

func (*Literal) exprNode() {}

// BinaryExpr represents an infix operation.
type BinaryExpr struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *BinaryExpr) Span() lexer.Span { return e.span }

// NewBinaryExpr constructs a binary expression node.
func NewBinaryExpr(left Expr, op lexer.Token, right Expr, span lexer.Span) *BinaryExpr {
	return &BinaryExpr{
		Left:  left,
		Op:    op,
		Right: right,
		span:  span,
	}
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a prefix operation (not, #, -).
type UnaryExpr struct {
	Op      lexer.Token
	Operand Expr
	span    lexer.Span
}

// Span returns the expression span.
func (e *UnaryExpr) Span() lexer.Span { return e.span }

// NewUnaryExpr constructs a unary expression node.
func NewUnaryExpr(op lexer.Token, operand Expr, span lexer.Span) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand, span: span}
}

func (*UnaryExpr) exprNode() {}

// GroupedExpr represents a parenthesized expression.
type GroupedExpr struct {
	Inner Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *GroupedExpr) Span() lexer.Span { return e.span }

// NewGroupedExpr constructs a grouped expression node.
func NewGroupedExpr(inner Expr, span lexer.Span) *GroupedExpr {
	return &GroupedExpr{Inner: inner, span: span}
}

func (*GroupedExpr) exprNode() {}

// Function is a function definition, usable both as a statement (which binds
// it under Name) and as an expression (which yields the function itself).
// Name is empty for anonymous functions.
type Function struct {
	Name    string
	Params  []string
	Body    *Block
	IsLocal bool
	span    lexer.Span
}

// Span returns the function span.
func (f *Function) Span() lexer.Span { return f.span }

// NewFunction constructs a function definition node.
func NewFunction(name string, params []string, body *Block, isLocal bool, span lexer.Span) *Function {
	return &Function{
		Name:    name,
		Params:  params,
		Body:    body,
		IsLocal: isLocal,
		span:    span,
	}
}

func (*Function) exprNode() {}
func (*Function) stmtNode() {}

// CallExpr invokes the function bound to Name. It is also a statement.
type CallExpr struct {
	Name *Ident
	Args []Expr
	span lexer.Span
}

// Span returns the call span.
func (c *CallExpr) Span() lexer.Span { return c.span }

// NewCallExpr constructs a function call node.
func NewCallExpr(name *Ident, args []Expr, span lexer.Span) *CallExpr {
	return &CallExpr{Name: name, Args: args, span: span}
}

func (*CallExpr) exprNode() {}
func (*CallExpr) stmtNode() {}
