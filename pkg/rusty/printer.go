package rusty

import (
	"strings"
)

func (literalExpr *LiteralExpr) String() string {
	if s, ok := literalExpr.Value.(StringValue); ok {
		return `"` + string(s) + `"`
	}
	return Stringify(literalExpr.Value)
}

func (variableExpr *VariableExpr) String() string {
	return variableExpr.Name.Lexeme
}

func (assignExpr *AssignExpr) String() string {
	return assignExpr.Name.Lexeme + " = " + assignExpr.Value.String()
}

func (unaryExpr *UnaryExpr) String() string {
	return unaryExpr.Operator.Lexeme + unaryExpr.Right.String()
}

func (binaryExpr *BinaryExpr) String() string {
	return binaryExpr.Left.String() + " " + binaryExpr.Operator.Lexeme + " " + binaryExpr.Right.String()
}

func (logicalExpr *LogicalExpr) String() string {
	return logicalExpr.Left.String() + " " + logicalExpr.Operator.Lexeme + " " + logicalExpr.Right.String()
}

func (groupingExpr *GroupingExpr) String() string {
	return "(" + groupingExpr.Expression.String() + ")"
}

func (callExpr *CallExpr) String() string {
	return callExpr.Callee.String() + "(" + joinExprs(callExpr.Args) + ")"
}

func (getExpr *GetExpr) String() string {
	return getExpr.Object.String() + "." + getExpr.Name.Lexeme
}

func (methodExpr *MethodExpr) String() string {
	return methodExpr.Object.String() + "." + methodExpr.Name.Lexeme + "(" + joinExprs(methodExpr.Args) + ")"
}

func (arrayExpr *ArrayExpr) String() string {
	return "[" + joinExprs(arrayExpr.Elements) + "]"
}

func (expressionStmt *ExpressionStmt) String() string { return printStmt(expressionStmt) }
func (printStatement *PrintStmt) String() string     { return printStmt(printStatement) }
func (varStmt *VarStmt) String() string              { return printStmt(varStmt) }
func (blockStmt *BlockStmt) String() string          { return printStmt(blockStmt) }
func (ifStmt *IfStmt) String() string                { return printStmt(ifStmt) }
func (whileStmt *WhileStmt) String() string          { return printStmt(whileStmt) }
func (functionStmt *FunctionStmt) String() string    { return printStmt(functionStmt) }
func (returnStmt *ReturnStmt) String() string        { return printStmt(returnStmt) }

func printStmt(statement Stmt) string {
	p := printer{}
	p.stmt(statement)
	return p.sb.String()
}

// printer indents nested statements. Indentation is only written where
// the printer itself starts a line, so multi-line string literals are
// reproduced verbatim.
type printer struct {
	sb    strings.Builder
	depth int
}

func (p *printer) indent() {
	for range p.depth {
		p.sb.WriteString("    ")
	}
}

func (p *printer) block(statements []Stmt) {
	p.sb.WriteString("{\n")
	p.depth++
	for _, statement := range statements {
		p.indent()
		p.stmt(statement)
		p.sb.WriteString("\n")
	}
	p.depth--
	p.indent()
	p.sb.WriteString("}")
}

func (p *printer) stmt(statement Stmt) {
	switch s := statement.(type) {
	case *ExpressionStmt:
		p.sb.WriteString(s.Expression.String() + ";")
	case *PrintStmt:
		p.sb.WriteString("print " + s.Expression.String() + ";")
	case *VarStmt:
		p.sb.WriteString("var " + s.Name.Lexeme)
		if s.Initializer != nil {
			p.sb.WriteString(" = " + s.Initializer.String())
		}
		p.sb.WriteString(";")
	case *BlockStmt:
		p.block(s.Statements)
	case *IfStmt:
		p.sb.WriteString("if (" + s.Condition.String() + ") ")
		p.stmt(s.Then)
		if s.Else != nil {
			p.sb.WriteString(" else ")
			p.stmt(s.Else)
		}
	case *WhileStmt:
		p.sb.WriteString("while (" + s.Condition.String() + ") ")
		p.stmt(s.Body)
	case *FunctionStmt:
		params := make([]string, len(s.Params))
		for i, param := range s.Params {
			params[i] = param.Lexeme
		}
		p.sb.WriteString("fun " + s.Name.Lexeme + "(" + strings.Join(params, ", ") + ") ")
		p.block(s.Body)
	case *ReturnStmt:
		if s.Value == nil {
			p.sb.WriteString("return;")
		} else {
			p.sb.WriteString("return " + s.Value.String() + ";")
		}
	}
}
