package rusty

import (
	"fmt"
	"log/slog"
)

func (literalExpr *LiteralExpr) Eval(interp *Interpreter, env *Environment) (Value, error) {
	return literalExpr.Value, nil
}

func (variableExpr *VariableExpr) Eval(interp *Interpreter, env *Environment) (Value, error) {
	value, err := env.Get(variableExpr.Name.Lexeme)
	if err != nil {
		return nil, atLine(err, variableExpr.Name.Line)
	}
	return value, nil
}

func (assignExpr *AssignExpr) Eval(interp *Interpreter, env *Environment) (Value, error) {
	value, err := assignExpr.Value.Eval(interp, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(assignExpr.Name.Lexeme, value); err != nil {
		return nil, atLine(err, assignExpr.Name.Line)
	}
	return value, nil
}

func (unaryExpr *UnaryExpr) Eval(interp *Interpreter, env *Environment) (Value, error) {
	right, err := unaryExpr.Right.Eval(interp, env)
	if err != nil {
		return nil, err
	}
	switch unaryExpr.Operator.Kind {
	case TokenMinus:
		if n, ok := right.(NumberValue); ok {
			return -n, nil
		}
		return nil, runtimeError(ErrTypeMismatch, unaryExpr.Operator.Line, "Operand must be a number.")
	case TokenBang:
		return BoolValue(!Truthy(right)), nil
	}
	panic("unreachable")
}

func (binaryExpr *BinaryExpr) Eval(interp *Interpreter, env *Environment) (Value, error) {
	left, err := binaryExpr.Left.Eval(interp, env)
	if err != nil {
		return nil, err
	}
	right, err := binaryExpr.Right.Eval(interp, env)
	if err != nil {
		return nil, err
	}
	line := binaryExpr.Operator.Line

	switch binaryExpr.Operator.Kind {
	case TokenEqualEqual:
		return BoolValue(left.Equals(right)), nil
	case TokenBangEqual:
		return BoolValue(!left.Equals(right)), nil
	case TokenPlus:
		if l, ok := left.(StringValue); ok {
			if r, ok := right.(StringValue); ok {
				return l + r, nil
			}
		}
		l, lok := left.(NumberValue)
		r, rok := right.(NumberValue)
		if !lok || !rok {
			return nil, runtimeError(ErrTypeMismatch, line, "Operands must be two numbers or two strings.")
		}
		return l + r, nil
	}

	l, lok := left.(NumberValue)
	r, rok := right.(NumberValue)
	if !lok || !rok {
		return nil, runtimeError(ErrTypeMismatch, line, "Operands must be numbers.")
	}

	switch binaryExpr.Operator.Kind {
	case TokenMinus:
		return l - r, nil
	case TokenStar:
		return l * r, nil
	case TokenSlash:
		if r == 0 {
			return nil, runtimeError(ErrDivisionByZero, line, "Division by zero.")
		}
		return l / r, nil
	case TokenGreater:
		return BoolValue(l > r), nil
	case TokenGreaterEqual:
		return BoolValue(l >= r), nil
	case TokenLess:
		return BoolValue(l < r), nil
	case TokenLessEqual:
		return BoolValue(l <= r), nil
	}
	panic("unreachable")
}

func (logicalExpr *LogicalExpr) Eval(interp *Interpreter, env *Environment) (Value, error) {
	left, err := logicalExpr.Left.Eval(interp, env)
	if err != nil {
		return nil, err
	}
	if logicalExpr.Operator.Kind == TokenOr {
		if Truthy(left) {
			return left, nil
		}
	} else if !Truthy(left) {
		return left, nil
	}
	return logicalExpr.Right.Eval(interp, env)
}

func (groupingExpr *GroupingExpr) Eval(interp *Interpreter, env *Environment) (Value, error) {
	return groupingExpr.Expression.Eval(interp, env)
}

func (callExpr *CallExpr) Eval(interp *Interpreter, env *Environment) (Value, error) {
	callee, err := callExpr.Callee.Eval(interp, env)
	if err != nil {
		return nil, err
	}
	args, err := evalExprs(interp, env, callExpr.Args)
	if err != nil {
		return nil, err
	}
	return interp.call(callee, args, callExpr.Paren.Line)
}

func (getExpr *GetExpr) Eval(interp *Interpreter, env *Environment) (Value, error) {
	object, err := getExpr.Object.Eval(interp, env)
	if err != nil {
		return nil, err
	}
	name, line := getExpr.Name.Lexeme, getExpr.Name.Line

	switch o := object.(type) {
	case ObjectValue:
		if value, ok := o[name]; ok {
			return value, nil
		}
	case *NamespaceValue:
		if value, ok := o.Members[name]; ok {
			return value, nil
		}
	case ArrayValue:
		if name == "length" {
			return NumberValue(len(o)), nil
		}
		return nil, runtimeError(ErrProperty, line, "Array has no property '%s'.", name)
	case StringValue:
		if name == "length" {
			return NumberValue(o.Length()), nil
		}
		return nil, runtimeError(ErrProperty, line, "String has no property '%s'.", name)
	default:
		return nil, runtimeError(ErrProperty, line, "Cannot access properties of non-object value.")
	}
	return nil, runtimeError(ErrProperty, line, "Property '%s' not found.", name)
}

func (methodExpr *MethodExpr) Eval(interp *Interpreter, env *Environment) (Value, error) {
	object, err := methodExpr.Object.Eval(interp, env)
	if err != nil {
		return nil, err
	}
	// Arguments are evaluated before the method is looked up.
	args, err := evalExprs(interp, env, methodExpr.Args)
	if err != nil {
		return nil, err
	}
	name, line := methodExpr.Name.Lexeme, methodExpr.Name.Line

	var members map[string]Value
	switch o := object.(type) {
	case ObjectValue:
		members = o
	case *NamespaceValue:
		members = o.Members
	default:
		return nil, runtimeError(ErrProperty, line, "Cannot call methods on non-object value.")
	}
	method, ok := members[name]
	if !ok {
		return nil, runtimeError(ErrProperty, line, "Method '%s' not found.", name)
	}
	switch method.(type) {
	case *FunctionValue, NativeFunctionValue:
	default:
		return nil, runtimeError(ErrNotCallable, line, "Property '%s' is not a method.", name)
	}
	return interp.call(method, args, line)
}

func (arrayExpr *ArrayExpr) Eval(interp *Interpreter, env *Environment) (Value, error) {
	elements, err := evalExprs(interp, env, arrayExpr.Elements)
	if err != nil {
		return nil, err
	}
	return ArrayValue(elements), nil
}

func evalExprs(interp *Interpreter, env *Environment, exprs []Expr) ([]Value, error) {
	values := make([]Value, 0, len(exprs))
	for _, expr := range exprs {
		value, err := expr.Eval(interp, env)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

func (expressionStmt *ExpressionStmt) Exec(interp *Interpreter, env *Environment) error {
	_, err := expressionStmt.Expression.Eval(interp, env)
	return err
}

func (printStatement *PrintStmt) Exec(interp *Interpreter, env *Environment) error {
	value, err := printStatement.Expression.Eval(interp, env)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(interp.out, Stringify(value))
	return err
}

func (varStmt *VarStmt) Exec(interp *Interpreter, env *Environment) error {
	var value Value = NilValue{}
	if varStmt.Initializer != nil {
		var err error
		if value, err = varStmt.Initializer.Eval(interp, env); err != nil {
			return err
		}
	}
	env.Define(varStmt.Name.Lexeme, value)
	return nil
}

func (blockStmt *BlockStmt) Exec(interp *Interpreter, env *Environment) error {
	return execBlock(interp, env.Child(), blockStmt.Statements)
}

func (ifStmt *IfStmt) Exec(interp *Interpreter, env *Environment) error {
	condition, err := ifStmt.Condition.Eval(interp, env)
	if err != nil {
		return err
	}
	if Truthy(condition) {
		return ifStmt.Then.Exec(interp, env)
	}
	if ifStmt.Else != nil {
		return ifStmt.Else.Exec(interp, env)
	}
	return nil
}

func (whileStmt *WhileStmt) Exec(interp *Interpreter, env *Environment) error {
	for {
		condition, err := whileStmt.Condition.Eval(interp, env)
		if err != nil {
			return err
		}
		if !Truthy(condition) {
			return nil
		}
		if err := whileStmt.Body.Exec(interp, env); err != nil {
			return err
		}
	}
}

func (functionStmt *FunctionStmt) Exec(interp *Interpreter, env *Environment) error {
	env.Define(functionStmt.Name.Lexeme, &FunctionValue{Decl: functionStmt, Closure: env})
	return nil
}

// Return escapes to the nearest function call as a returnSignal
func (returnStmt *ReturnStmt) Exec(interp *Interpreter, env *Environment) error {
	var value Value = NilValue{}
	if returnStmt.Value != nil {
		var err error
		if value, err = returnStmt.Value.Eval(interp, env); err != nil {
			return err
		}
	}
	return &returnSignal{value: value, line: returnStmt.Keyword.Line}
}

func execBlock(interp *Interpreter, env *Environment, statements []Stmt) error {
	for _, statement := range statements {
		if err := statement.Exec(interp, env); err != nil {
			return err
		}
	}
	return nil
}

func (interp *Interpreter) call(callee Value, args []Value, line int) (Value, error) {
	switch fn := callee.(type) {
	case *FunctionValue:
		if len(args) != len(fn.Decl.Params) {
			return nil, runtimeError(ErrArity, line,
				"Expected %d arguments but got %d.", len(fn.Decl.Params), len(args))
		}
		if interp.callDepth >= interp.maxCallDepth {
			return nil, runtimeError(ErrStackOverflow, line, "Stack overflow.")
		}
		interp.callDepth++
		defer func() { interp.callDepth-- }()

		callEnv := fn.Closure.Child()
		for i, param := range fn.Decl.Params {
			callEnv.Define(param.Lexeme, args[i])
		}
		err := execBlock(interp, callEnv, fn.Decl.Body)
		if err != nil {
			// Catch the bubbling return here
			if retSignal, ok := err.(*returnSignal); ok {
				return retSignal.value, nil
			}
			return nil, err
		}
		return NilValue{}, nil

	case NativeFunctionValue:
		if !fn.Arity.Accepts(len(args)) {
			return nil, runtimeError(ErrArity, line,
				"Expected %v arguments but got %d.", fn.Arity, len(args))
		}
		interp.logger.Trace("native call", slog.String("fn", fn.Name), slog.Int("args", len(args)))
		value, err := fn.Exec(args)
		if err != nil {
			interp.logger.Debug("native call failed",
				slog.String("fn", fn.Name), slog.Int("line", line), slog.Any("error", err))
			return nil, &RuntimeError{Message: err.Error(), Line: line, kind: ErrNative, cause: err}
		}
		if value == nil {
			return NilValue{}, nil
		}
		return value, nil
	}
	return nil, runtimeError(ErrNotCallable, line, "Can only call functions.")
}

// atLine fills in the line of a runtime error raised without one
func atLine(err error, line int) error {
	if runtimeErr, ok := err.(*RuntimeError); ok && runtimeErr.Line == 0 {
		runtimeErr.Line = line
	}
	return err
}
