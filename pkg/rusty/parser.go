package rusty

const (
	DefaultMaxParseDepth = 256
	maxArgs              = 255
)

type Parser struct {
	tokens   []Token
	current  int
	depth    int
	maxDepth int
	// Newlines are insignificant while inside ( ) or [ ]
	grouping int
}

type ParserOption func(*Parser)

// WithMaxDepth bounds how deeply expressions and statements may nest
func WithMaxDepth(n int) ParserOption {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// Parse builds the statements of a program. The token slice must end
// with TokenEOF, as produced by Scan. The first grammar violation is
// returned and no partial program.
func Parse(tokens []Token, opts ...ParserOption) ([]Stmt, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		tokens = append(tokens, Token{Kind: TokenEOF})
	}
	p := &Parser{tokens: tokens, maxDepth: DefaultMaxParseDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p.program()
}

// ParseSource scans and parses source text
func ParseSource(source string, opts ...ParserOption) ([]Stmt, error) {
	tokens, err := Scan(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens, opts...)
}

func (p *Parser) program() ([]Stmt, error) {
	statements := make([]Stmt, 0)
	for {
		p.skipSeparators()
		if p.isAtEnd() {
			return statements, nil
		}
		statement, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)
	}
}

func (p *Parser) declaration() (Stmt, error) {
	if p.match(TokenVar) {
		return p.varDeclaration()
	}
	if p.match(TokenFun) {
		return p.function()
	}
	return p.statement()
}

func (p *Parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(TokenIdentifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var initializer Expr
	if p.match(TokenEqual) {
		p.skipNewlines()
		if initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if err := p.terminator("Expect ';' or newline after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Initializer: initializer}, nil
}

func (p *Parser) function() (Stmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	name, err := p.consume(TokenIdentifier, "Expect function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenLeftParen, "Expect '(' after function name."); err != nil {
		return nil, err
	}
	params := make([]Token, 0)
	p.grouping++
	if !p.check(TokenRightParen) {
		for {
			if len(params) >= maxArgs {
				p.grouping--
				return nil, p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(TokenIdentifier, "Expect parameter name.")
			if err != nil {
				p.grouping--
				return nil, err
			}
			params = append(params, param)
			if !p.match(TokenComma) {
				break
			}
		}
	}
	p.grouping--
	if _, err := p.consume(TokenRightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenLeftBrace, "Expect '{' before function body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) statement() (Stmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch {
	case p.match(TokenPrint):
		return p.printStatement()
	case p.match(TokenIf):
		return p.ifStatement()
	case p.match(TokenWhile):
		return p.whileStatement()
	case p.match(TokenReturn):
		return p.returnStatement()
	case p.match(TokenLeftBrace):
		statements, err := p.block()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Statements: statements}, nil
	}
	return p.expressionStatement()
}

func (p *Parser) printStatement() (Stmt, error) {
	keyword := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.terminator("Expect ';' or newline after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{Keyword: keyword, Expression: value}, nil
}

func (p *Parser) returnStatement() (Stmt, error) {
	keyword := p.previous()
	var value Expr
	if !p.check(TokenSemicolon) && !p.check(TokenNewline) && !p.isAtEnd() {
		var err error
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if err := p.terminator("Expect ';' or newline after return value."); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *Parser) ifStatement() (Stmt, error) {
	keyword := p.previous()
	condition, err := p.condition("'if'", "if condition")
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}

	// An else on a following line still belongs to this if
	var elseBranch Stmt
	save := p.current
	p.skipNewlines()
	if p.match(TokenElse) {
		p.skipNewlines()
		if elseBranch, err = p.statement(); err != nil {
			return nil, err
		}
	} else {
		p.current = save
	}
	return &IfStmt{Keyword: keyword, Condition: condition, Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) whileStatement() (Stmt, error) {
	keyword := p.previous()
	condition, err := p.condition("'while'", "condition")
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Keyword: keyword, Condition: condition, Body: body}, nil
}

// condition parses the parenthesized condition of if and while
func (p *Parser) condition(after, what string) (Expr, error) {
	if _, err := p.consume(TokenLeftParen, "Expect '(' after "+after+"."); err != nil {
		return nil, err
	}
	p.grouping++
	condition, err := p.expression()
	p.grouping--
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenRightParen, "Expect ')' after "+what+"."); err != nil {
		return nil, err
	}
	return condition, nil
}

// block parses declarations up to the closing brace. The opening brace
// has already been consumed.
func (p *Parser) block() ([]Stmt, error) {
	statements := make([]Stmt, 0)
	for {
		p.skipSeparators()
		if p.check(TokenRightBrace) || p.isAtEnd() {
			break
		}
		statement, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)
	}
	if _, err := p.consume(TokenRightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.terminator("Expect ';' or newline after expression."); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expression: expr}, nil
}

func (p *Parser) expression() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.assignment()
}

func (p *Parser) assignment() (Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.match(TokenEqual) {
		equals := p.previous()
		index := p.current - 1
		p.skipNewlines()
		if err := p.enter(); err != nil {
			return nil, err
		}
		value, err := p.assignment()
		p.leave()
		if err != nil {
			return nil, err
		}
		if variable, ok := expr.(*VariableExpr); ok {
			return &AssignExpr{Name: variable.Name, Value: value}, nil
		}
		return nil, &ParseError{Message: "Invalid assignment target.", Token: equals, Index: index}
	}
	return expr, nil
}

func (p *Parser) or() (Expr, error) {
	return p.logical(p.and, TokenOr)
}

func (p *Parser) and() (Expr, error) {
	return p.logical(p.equality, TokenAnd)
}

func (p *Parser) equality() (Expr, error) {
	return p.binary(p.comparison, TokenBangEqual, TokenEqualEqual)
}

func (p *Parser) comparison() (Expr, error) {
	return p.binary(p.term, TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
}

func (p *Parser) term() (Expr, error) {
	return p.binary(p.factor, TokenMinus, TokenPlus)
}

func (p *Parser) factor() (Expr, error) {
	return p.binary(p.unary, TokenSlash, TokenStar)
}

// binary parses a left-associative chain of operands separated by one of
// kinds. A newline may follow the operator. Every link of the chain nests
// the tree one level deeper and counts against the depth limit.
func (p *Parser) binary(operand func() (Expr, error), kinds ...TokenKind) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	links := 0
	defer func() { p.depth -= links }()
	for p.match(kinds...) {
		operator := p.previous()
		links++
		if err := p.enter(); err != nil {
			return nil, err
		}
		p.skipNewlines()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) logical(operand func() (Expr, error), kind TokenKind) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	links := 0
	defer func() { p.depth -= links }()
	for p.match(kind) {
		operator := p.previous()
		links++
		if err := p.enter(); err != nil {
			return nil, err
		}
		p.skipNewlines()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(TokenBang, TokenMinus) {
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Operator: operator, Right: right}, nil
	}
	return p.call()
}

func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	links := 0
	defer func() { p.depth -= links }()
	for {
		if p.check(TokenLeftParen) || p.check(TokenDot) {
			links++
			if err := p.enter(); err != nil {
				return nil, err
			}
		}
		if p.match(TokenLeftParen) {
			args, paren, err := p.arguments()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Callee: expr, Paren: paren, Args: args}
		} else if p.match(TokenDot) {
			name, err := p.consume(TokenIdentifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			if p.match(TokenLeftParen) {
				args, _, err := p.arguments()
				if err != nil {
					return nil, err
				}
				expr = &MethodExpr{Object: expr, Name: name, Args: args}
			} else {
				expr = &GetExpr{Object: expr, Name: name}
			}
		} else {
			return expr, nil
		}
	}
}

// arguments parses a call's argument list after its opening paren and
// returns the closing paren
func (p *Parser) arguments() ([]Expr, Token, error) {
	p.grouping++
	args := make([]Expr, 0)
	if !p.check(TokenRightParen) {
		for {
			if len(args) >= maxArgs {
				p.grouping--
				return nil, Token{}, p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				p.grouping--
				return nil, Token{}, err
			}
			args = append(args, arg)
			if !p.match(TokenComma) {
				break
			}
		}
	}
	p.grouping--
	paren, err := p.consume(TokenRightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, Token{}, err
	}
	return args, paren, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(TokenFalse):
		return &LiteralExpr{Value: BoolValue(false)}, nil
	case p.match(TokenTrue):
		return &LiteralExpr{Value: BoolValue(true)}, nil
	case p.match(TokenNil):
		return &LiteralExpr{Value: NilValue{}}, nil
	case p.match(TokenNumber):
		return &LiteralExpr{Value: NumberValue(p.previous().Literal.(float64))}, nil
	case p.match(TokenString):
		return &LiteralExpr{Value: StringValue(p.previous().Literal.(string))}, nil
	case p.match(TokenIdentifier):
		return &VariableExpr{Name: p.previous()}, nil
	case p.match(TokenLeftParen):
		p.grouping++
		expr, err := p.expression()
		p.grouping--
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(TokenRightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &GroupingExpr{Expression: expr}, nil
	case p.match(TokenLeftBracket):
		return p.array()
	}
	return nil, p.errorAt(p.peek(), "Expect expression.")
}

func (p *Parser) array() (Expr, error) {
	bracket := p.previous()
	p.grouping++
	elements := make([]Expr, 0)
	if !p.check(TokenRightBracket) {
		for {
			element, err := p.expression()
			if err != nil {
				p.grouping--
				return nil, err
			}
			elements = append(elements, element)
			if !p.match(TokenComma) {
				break
			}
		}
	}
	p.grouping--
	if _, err := p.consume(TokenRightBracket, "Expect ']' after array elements."); err != nil {
		return nil, err
	}
	return &ArrayExpr{Bracket: bracket, Elements: elements}, nil
}

// terminator accepts ';' or a newline. End of input also ends a
// statement but is left for the caller to see.
func (p *Parser) terminator(message string) error {
	if p.match(TokenSemicolon, TokenNewline) || p.isAtEnd() {
		return nil
	}
	return p.errorAt(p.peek(), message)
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorAt(p.peek(), "Nesting too deep.")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) skipNewlines() {
	for p.tokens[p.current].Kind == TokenNewline {
		p.current++
	}
}

// skipSeparators skips blank lines and stray semicolons between
// declarations
func (p *Parser) skipSeparators() {
	for p.tokens[p.current].Kind == TokenNewline || p.tokens[p.current].Kind == TokenSemicolon {
		p.current++
	}
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind TokenKind, message string) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TokenEOF
}

func (p *Parser) peek() Token {
	if p.grouping > 0 {
		p.skipNewlines()
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) errorAt(token Token, message string) *ParseError {
	return &ParseError{Message: message, Token: token, Index: p.current}
}
