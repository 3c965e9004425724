package rusty

import (
	"strings"
)

// Expr is an expression node. Each node owns its children exclusively.
type Expr interface {
	String() string
	Eval(interp *Interpreter, env *Environment) (Value, error)
	exprNode()
}

// Stmt is a statement node
type Stmt interface {
	String() string
	Exec(interp *Interpreter, env *Environment) error
	stmtNode()
}

type LiteralExpr struct {
	Value Value
}

type VariableExpr struct {
	Name Token
}

type AssignExpr struct {
	Name  Token
	Value Expr
}

type UnaryExpr struct {
	Operator Token
	Right    Expr
}

type BinaryExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

// LogicalExpr is `and` / `or`, which short-circuit
type LogicalExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

type GroupingExpr struct {
	Expression Expr
}

type CallExpr struct {
	Callee Expr
	Paren  Token
	Args   []Expr
}

type GetExpr struct {
	Object Expr
	Name   Token
}

// MethodExpr is `object.name(args)`
type MethodExpr struct {
	Object Expr
	Name   Token
	Args   []Expr
}

type ArrayExpr struct {
	Bracket  Token
	Elements []Expr
}

func (*LiteralExpr) exprNode()  {}
func (*VariableExpr) exprNode() {}
func (*AssignExpr) exprNode()   {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*LogicalExpr) exprNode()  {}
func (*GroupingExpr) exprNode() {}
func (*CallExpr) exprNode()     {}
func (*GetExpr) exprNode()      {}
func (*MethodExpr) exprNode()   {}
func (*ArrayExpr) exprNode()    {}

type ExpressionStmt struct {
	Expression Expr
}

type PrintStmt struct {
	Keyword    Token
	Expression Expr
}

// VarStmt declares a variable. Initializer is nil for `var x;`
type VarStmt struct {
	Name        Token
	Initializer Expr
}

type BlockStmt struct {
	Statements []Stmt
}

// IfStmt has a nil Else when there is no else branch
type IfStmt struct {
	Keyword   Token
	Condition Expr
	Then      Stmt
	Else      Stmt
}

type WhileStmt struct {
	Keyword   Token
	Condition Expr
	Body      Stmt
}

type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

// ReturnStmt has a nil Value for a bare `return`
type ReturnStmt struct {
	Keyword Token
	Value   Expr
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}

// Print renders a program back into source text that parses to an
// equivalent program
func Print(statements []Stmt) string {
	p := printer{}
	for _, statement := range statements {
		p.stmt(statement)
		p.sb.WriteString("\n")
	}
	return p.sb.String()
}

func joinExprs(exprs []Expr) string {
	s := make([]string, len(exprs))
	for i, expr := range exprs {
		s[i] = expr.String()
	}
	return strings.Join(s, ", ")
}
