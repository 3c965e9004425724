package rusty

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// DumpFormat selects how Dump renders a program
type DumpFormat string

const (
	DumpSource DumpFormat = "source"
	DumpYAML   DumpFormat = "yaml"
	DumpJSON   DumpFormat = "json"
)

func ParseDumpFormat(s string) (DumpFormat, error) {
	switch format := DumpFormat(strings.ToLower(strings.TrimSpace(s))); format {
	case DumpSource, DumpYAML, DumpJSON:
		return format, nil
	}
	return "", fmt.Errorf("unknown dump format %q (want source, yaml or json)", s)
}

// Dump renders the syntax tree of a program. Node fields keep their
// declaration order.
func Dump(statements []Stmt, format DumpFormat) ([]byte, error) {
	if format == DumpSource {
		return []byte(Print(statements)), nil
	}
	nodes := stmtNodes(statements)
	switch format {
	case DumpYAML:
		return yaml.MarshalWithOptions(nodes, yaml.Indent(2))
	case DumpJSON:
		return yaml.MarshalWithOptions(nodes, yaml.JSON())
	}
	return nil, fmt.Errorf("unknown dump format %q", format)
}

func node(kind string, fields ...yaml.MapItem) yaml.MapSlice {
	return append(yaml.MapSlice{{Key: "node", Value: kind}}, fields...)
}

func field(key string, value any) yaml.MapItem {
	return yaml.MapItem{Key: key, Value: value}
}

func stmtNodes(statements []Stmt) []any {
	nodes := make([]any, len(statements))
	for i, statement := range statements {
		nodes[i] = stmtNode(statement)
	}
	return nodes
}

func exprNodes(exprs []Expr) []any {
	nodes := make([]any, len(exprs))
	for i, expr := range exprs {
		nodes[i] = exprNode(expr)
	}
	return nodes
}

func stmtNode(statement Stmt) any {
	switch s := statement.(type) {
	case *ExpressionStmt:
		return node("expression", field("expr", exprNode(s.Expression)))
	case *PrintStmt:
		return node("print", field("line", s.Keyword.Line), field("expr", exprNode(s.Expression)))
	case *VarStmt:
		n := node("var", field("name", s.Name.Lexeme), field("line", s.Name.Line))
		if s.Initializer != nil {
			n = append(n, field("init", exprNode(s.Initializer)))
		}
		return n
	case *BlockStmt:
		return node("block", field("body", stmtNodes(s.Statements)))
	case *IfStmt:
		n := node("if",
			field("line", s.Keyword.Line),
			field("cond", exprNode(s.Condition)),
			field("then", stmtNode(s.Then)))
		if s.Else != nil {
			n = append(n, field("else", stmtNode(s.Else)))
		}
		return n
	case *WhileStmt:
		return node("while",
			field("line", s.Keyword.Line),
			field("cond", exprNode(s.Condition)),
			field("body", stmtNode(s.Body)))
	case *FunctionStmt:
		params := make([]string, len(s.Params))
		for i, param := range s.Params {
			params[i] = param.Lexeme
		}
		return node("fun",
			field("name", s.Name.Lexeme),
			field("line", s.Name.Line),
			field("params", params),
			field("body", stmtNodes(s.Body)))
	case *ReturnStmt:
		n := node("return", field("line", s.Keyword.Line))
		if s.Value != nil {
			n = append(n, field("value", exprNode(s.Value)))
		}
		return n
	}
	return nil
}

func exprNode(expr Expr) any {
	switch e := expr.(type) {
	case *LiteralExpr:
		return node("literal", field("type", TypeName(e.Value)), field("value", literalValue(e.Value)))
	case *VariableExpr:
		return node("variable", field("name", e.Name.Lexeme))
	case *AssignExpr:
		return node("assign", field("name", e.Name.Lexeme), field("value", exprNode(e.Value)))
	case *UnaryExpr:
		return node("unary", field("op", e.Operator.Lexeme), field("right", exprNode(e.Right)))
	case *BinaryExpr:
		return node("binary",
			field("op", e.Operator.Lexeme),
			field("left", exprNode(e.Left)),
			field("right", exprNode(e.Right)))
	case *LogicalExpr:
		return node("logical",
			field("op", e.Operator.Lexeme),
			field("left", exprNode(e.Left)),
			field("right", exprNode(e.Right)))
	case *GroupingExpr:
		return node("grouping", field("expr", exprNode(e.Expression)))
	case *CallExpr:
		return node("call", field("callee", exprNode(e.Callee)), field("args", exprNodes(e.Args)))
	case *GetExpr:
		return node("get", field("object", exprNode(e.Object)), field("name", e.Name.Lexeme))
	case *MethodExpr:
		return node("method",
			field("object", exprNode(e.Object)),
			field("name", e.Name.Lexeme),
			field("args", exprNodes(e.Args)))
	case *ArrayExpr:
		return node("array", field("elements", exprNodes(e.Elements)))
	}
	return nil
}

func literalValue(value Value) any {
	switch v := value.(type) {
	case NumberValue:
		return float64(v)
	case StringValue:
		return string(v)
	case BoolValue:
		return bool(v)
	}
	return nil
}
