// parser.go — recursive-descent parser for SynthFlow.
//
// The parser consumes the token stream from lexer.go (NEWLINE tokens are
// filtered on construction; they exist only so the lexer reports positions on
// multi-line input) and produces the typed AST of ast.go. It stops at the
// first syntactic violation with a *ParseError carrying the offending token's
// position; no recovery is attempted.
//
// Precedence ladder, lowest to highest:
//
//	assignment / compound assignment (right-assoc)
//	||
//	&&
//	== !=
//	< > <= >=
//	+ -
//	* / %
//	unary - !
//	primary, then postfix chain of .member, .member(args), [index], (args), ++, --
//
// Bodies of if/while/for/try/fn are always normalised to *Block; when a bare
// statement is supplied the parser synthesises a one-statement block around
// it.
package synthflow

import (
	"fmt"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Parse scans and parses a complete SynthFlow source string.
func Parse(src string) ([]Statement, error) {
	lex := NewLexer(src)
	toks, err := lex.Scan()
	if err != nil {
		return nil, err
	}
	return NewParser(toks).Program()
}

// ParseError is a syntactic failure with a 1-based source position.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parser turns a token sequence into statements.
type Parser struct {
	toks []Token
	i    int
}

// NewParser builds a parser over the token stream, dropping NEWLINE tokens.
func NewParser(toks []Token) *Parser {
	kept := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.Type != NEWLINE {
			kept = append(kept, t)
		}
	}
	return &Parser{toks: kept}
}

// Program parses top-level statements until EOF.
func (p *Parser) Program() ([]Statement, error) {
	var out []Statement
	for !p.atEnd() {
		if p.match(SEMICOLON) {
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

////////////////////////////////////////////////////////////////////////////////
//                                   PLUMBING
////////////////////////////////////////////////////////////////////////////////

func (p *Parser) atEnd() bool { return p.peek().Type == EOF }

func (p *Parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.i]
}

func (p *Parser) peekN(n int) Token {
	idx := p.i + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) prev() Token { return p.toks[p.i-1] }

func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.i++
	}
	return p.toks[p.i-1]
}

func (p *Parser) match(tts ...TokenType) bool {
	for _, tt := range tts {
		if p.peek().Type == tt {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) need(tt TokenType, msg string) (Token, error) {
	if p.peek().Type == tt {
		return p.advance(), nil
	}
	return Token{}, p.errAt(p.peek(), msg)
}

func (p *Parser) errAt(tok Token, msg string) error {
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg}
}

func (p *Parser) errUnexpected(tok Token) error {
	what := tok.Lexeme
	if tok.Type == EOF {
		what = "end of input"
	}
	return p.errAt(tok, fmt.Sprintf("unexpected token %q", what))
}

func posOf(tok Token) Pos { return Pos{Line: tok.Line, Col: tok.Col} }

// blockify wraps a bare statement in a one-statement block.
func blockify(stmt Statement) *Block {
	if b, ok := stmt.(*Block); ok {
		return b
	}
	return &Block{Pos: stmt.Position(), Statements: []Statement{stmt}}
}

func isTypeKeyword(tt TokenType) bool {
	switch tt {
	case TYPE_INT, TYPE_FLOAT, TYPE_STRING, TYPE_BOOL, TYPE_ARRAY, TYPE_MAP:
		return true
	}
	return false
}

var typeKeywordNames = map[TokenType]string{
	TYPE_INT:    "int",
	TYPE_FLOAT:  "float",
	TYPE_STRING: "string",
	TYPE_BOOL:   "bool",
	TYPE_ARRAY:  "array",
	TYPE_MAP:    "map",
}

// parseTypeName accepts a type keyword or identifier used as an annotation.
func (p *Parser) parseTypeName() (string, error) {
	t := p.peek()
	if isTypeKeyword(t.Type) {
		p.advance()
		return typeKeywordNames[t.Type], nil
	}
	if t.Type == IDENT {
		p.advance()
		return t.Literal.(string), nil
	}
	return "", p.errAt(t, "expected type after ':'")
}

////////////////////////////////////////////////////////////////////////////////
//                                  STATEMENTS
////////////////////////////////////////////////////////////////////////////////

func (p *Parser) parseStatement() (Statement, error) {
	switch p.peek().Type {
	case LET:
		return p.parseVarDecl(false)
	case CONST:
		return p.parseVarDecl(true)
	case FN:
		return p.parseFnDecl()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case FOR:
		return p.parseFor()
	case RETURN:
		return p.parseReturn()
	case BREAK:
		tok := p.advance()
		p.match(SEMICOLON)
		return &BreakStmt{Pos: posOf(tok)}, nil
	case CONTINUE:
		tok := p.advance()
		p.match(SEMICOLON)
		return &ContinueStmt{Pos: posOf(tok)}, nil
	case TRY:
		return p.parseTry()
	case IMPORT:
		return p.parseImport()
	case STRUCT:
		return p.parseStruct()
	case LBRACE:
		// A '{' in statement position is a block unless it opens a keyed map
		// literal, in which case the expression statement path takes it.
		// Empty braces stay a block here.
		if p.looksLikeMap() && p.peekN(1).Type != RBRACE {
			break
		}
		return p.parseBlock()
	case INVALID:
		return nil, p.errAt(p.peek(), "unrecognised character")
	}
	return p.parseExprStmt()
}

func (p *Parser) parseExprStmt() (Statement, error) {
	tok := p.peek()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.match(SEMICOLON)
	return &ExprStmt{Pos: posOf(tok), Expr: expr}, nil
}

func (p *Parser) parseVarDecl(isConst bool) (Statement, error) {
	tok := p.advance() // let / const
	nameTok, err := p.need(IDENT, "expected identifier after '"+tok.Lexeme+"'")
	if err != nil {
		return nil, err
	}
	decl := &VarDecl{
		Pos:     posOf(tok),
		Name:    nameTok.Literal.(string),
		IsConst: isConst,
	}
	if p.match(COLON) {
		decl.TypeName, err = p.parseTypeName()
		if err != nil {
			return nil, err
		}
		decl.IsNullable = p.match(QUESTION)
	}
	if p.match(ASSIGN) {
		decl.Initializer, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	p.match(SEMICOLON)
	return decl, nil
}

func (p *Parser) parseFnDecl() (Statement, error) {
	tok := p.advance() // fn
	nameTok, err := p.need(IDENT, "expected function name after 'fn'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}
	params, variadic, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	// Return type is recorded by the grammar but discarded.
	if p.match(ARROW) {
		if _, err := p.parseTypeName(); err != nil {
			return nil, err
		}
		p.match(QUESTION)
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &FnDecl{
		Pos:      posOf(tok),
		Name:     nameTok.Literal.(string),
		Params:   params,
		Variadic: variadic,
		Body:     blockify(body),
	}, nil
}

// parseParams consumes parameters up to and including the closing ')'.
func (p *Parser) parseParams() ([]Param, string, error) {
	var params []Param
	var variadic string
	if p.match(RPAREN) {
		return params, variadic, nil
	}
	for {
		if p.match(ELLIPSIS) {
			nameTok, err := p.need(IDENT, "expected parameter name after '...'")
			if err != nil {
				return nil, "", err
			}
			variadic = nameTok.Literal.(string)
			break // variadic must be last
		}
		nameTok, err := p.need(IDENT, "expected parameter name")
		if err != nil {
			return nil, "", err
		}
		param := Param{Name: nameTok.Literal.(string)}
		if p.match(COLON) {
			param.TypeName, err = p.parseTypeName()
			if err != nil {
				return nil, "", err
			}
			param.IsNullable = p.match(QUESTION)
		}
		params = append(params, param)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(RPAREN, "expected ')' after parameters"); err != nil {
		return nil, "", err
	}
	return params, variadic, nil
}

func (p *Parser) parseBlock() (Statement, error) {
	tok, err := p.need(LBRACE, "expected '{' at start of block")
	if err != nil {
		return nil, err
	}
	block := &Block{Pos: posOf(tok)}
	for !p.atEnd() && p.peek().Type != RBRACE {
		if p.match(SEMICOLON) {
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if _, err := p.need(RBRACE, "expected '}' at end of block"); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseIf() (Statement, error) {
	tok := p.advance() // if
	if _, err := p.need(LPAREN, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after if condition"); err != nil {
		return nil, err
	}
	thenStmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	node := &IfStmt{Pos: posOf(tok), Condition: cond, Then: blockify(thenStmt)}
	if p.match(ELSE) {
		elseStmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		node.Else = blockify(elseStmt)
	}
	return node, nil
}

func (p *Parser) parseWhile() (Statement, error) {
	tok := p.advance() // while
	if _, err := p.need(LPAREN, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Pos: posOf(tok), Condition: cond, Body: blockify(body)}, nil
}

func (p *Parser) parseFor() (Statement, error) {
	tok := p.advance() // for
	if _, err := p.need(LPAREN, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	node := &ForStmt{Pos: posOf(tok)}
	var err error

	switch p.peek().Type {
	case LET:
		node.Init, err = p.parseVarDecl(false) // consumes the ';'
		if err != nil {
			return nil, err
		}
	case SEMICOLON:
		p.advance()
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Init = &ExprStmt{Pos: posOf(tok), Expr: expr}
		p.match(SEMICOLON)
	}

	if p.peek().Type != SEMICOLON {
		node.Condition, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	p.match(SEMICOLON)

	if p.peek().Type != RPAREN {
		node.Increment, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(RPAREN, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	node.Body = blockify(body)
	return node, nil
}

func (p *Parser) parseReturn() (Statement, error) {
	tok := p.advance() // return
	node := &ReturnStmt{Pos: posOf(tok)}
	switch p.peek().Type {
	case SEMICOLON, RBRACE, EOF:
	default:
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Value = val
	}
	p.match(SEMICOLON)
	return node, nil
}

func (p *Parser) parseTry() (Statement, error) {
	tok := p.advance() // try
	tryStmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(CATCH, "expected 'catch' after try block"); err != nil {
		return nil, err
	}
	if _, err := p.need(LPAREN, "expected '(' after 'catch'"); err != nil {
		return nil, err
	}
	errTok, err := p.need(IDENT, "expected error variable name in catch")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after error variable"); err != nil {
		return nil, err
	}
	catchStmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &TryStmt{
		Pos:    posOf(tok),
		Try:    blockify(tryStmt),
		ErrVar: errTok.Literal.(string),
		Catch:  blockify(catchStmt),
	}, nil
}

func (p *Parser) parseImport() (Statement, error) {
	tok := p.advance() // import
	nameTok, err := p.need(IDENT, "expected module name after 'import'")
	if err != nil {
		return nil, err
	}
	node := &ImportStmt{Pos: posOf(tok), Module: nameTok.Literal.(string)}
	if p.match(FROM) {
		pathTok, err := p.need(STRING, "expected string path after 'from'")
		if err != nil {
			return nil, err
		}
		node.Path = pathTok.Literal.(string)
	}
	if p.match(AS) {
		aliasTok, err := p.need(IDENT, "expected alias after 'as'")
		if err != nil {
			return nil, err
		}
		node.Alias = aliasTok.Literal.(string)
	}
	p.match(SEMICOLON)
	return node, nil
}

func (p *Parser) parseStruct() (Statement, error) {
	tok := p.advance() // struct
	nameTok, err := p.need(IDENT, "expected struct name after 'struct'")
	if err != nil {
		return nil, err
	}
	node := &StructDecl{Pos: posOf(tok), Name: nameTok.Literal.(string)}
	if p.match(EXTENDS) {
		parentTok, err := p.need(IDENT, "expected parent struct name after 'extends'")
		if err != nil {
			return nil, err
		}
		node.Parent = parentTok.Literal.(string)
	}
	if _, err := p.need(LBRACE, "expected '{' after struct name"); err != nil {
		return nil, err
	}
	for !p.atEnd() && p.peek().Type != RBRACE {
		switch p.peek().Type {
		case FN:
			method, err := p.parseFnDecl()
			if err != nil {
				return nil, err
			}
			node.Methods = append(node.Methods, method.(*FnDecl))
		case IDENT:
			fieldTok := p.advance()
			if _, err := p.need(COLON, "expected ':' after field name"); err != nil {
				return nil, err
			}
			typeName, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			node.Fields = append(node.Fields, StructField{
				Name:     fieldTok.Literal.(string),
				TypeName: typeName,
			})
			p.match(COMMA)
		default:
			return nil, p.errAt(p.peek(), "expected field or method in struct")
		}
	}
	if _, err := p.need(RBRACE, "expected '}' at end of struct"); err != nil {
		return nil, err
	}
	return node, nil
}

////////////////////////////////////////////////////////////////////////////////
//                                 EXPRESSIONS
////////////////////////////////////////////////////////////////////////////////

func (p *Parser) parseExpression() (Expression, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (Expression, error) {
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	switch p.peek().Type {
	case ASSIGN:
		p.advance()
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		if idx, ok := expr.(*IndexExpr); ok {
			return &IndexAssignExpr{Array: idx.Array, Index: idx.Index, Value: value}, nil
		}
		return &AssignExpr{Target: expr, Value: value}, nil
	case PLUS_EQ, MINUS_EQ, STAR_EQ, SLASH_EQ:
		opTok := p.advance()
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &CompoundAssignExpr{Target: expr, Op: opTok.Lexeme, Value: value}, nil
	}
	return expr, nil
}

func (p *Parser) parseOr() (Expression, error) {
	expr, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: "||", Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseAnd() (Expression, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: "&&", Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseEquality() (Expression, error) {
	expr, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.match(EQ, NEQ) {
		op := "=="
		if p.prev().Type == NEQ {
			op = "!="
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseComparison() (Expression, error) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.match(LESS, GREATER, LESS_EQ, GREATER_EQ) {
		var op string
		switch p.prev().Type {
		case LESS:
			op = "<"
		case GREATER:
			op = ">"
		case LESS_EQ:
			op = "<="
		default:
			op = ">="
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseTerm() (Expression, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.match(PLUS, MINUS) {
		op := "+"
		if p.prev().Type == MINUS {
			op = "-"
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseFactor() (Expression, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.match(STAR, SLASH, PERCENT) {
		var op string
		switch p.prev().Type {
		case STAR:
			op = "*"
		case SLASH:
			op = "/"
		default:
			op = "%"
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseUnary() (Expression, error) {
	switch p.peek().Type {
	case MINUS, BANG:
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: opTok.Lexeme, Operand: operand}, nil
	case PLUS_PLUS, MINUS_MINUS:
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UpdateExpr{Target: operand, Op: opTok.Lexeme, Prefix: true}, nil
	}
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(primary)
}

// parsePostfix consumes the chain of member access, method call, indexing,
// direct call (on a bare identifier), and postfix update.
func (p *Parser) parsePostfix(expr Expression) (Expression, error) {
	for {
		switch p.peek().Type {
		case DOT:
			p.advance()
			nameTok, err := p.need(IDENT, "expected identifier after '.'")
			if err != nil {
				return nil, err
			}
			name := nameTok.Literal.(string)
			if p.peek().Type == LPAREN {
				p.advance()
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				expr = &MethodCall{Object: expr, Name: name, Args: args}
			} else {
				expr = &MemberExpr{Object: expr, Member: name}
			}
		case LBRACKET:
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.need(RBRACKET, "expected ']' after index"); err != nil {
				return nil, err
			}
			expr = &IndexExpr{Array: expr, Index: index}
		case LPAREN:
			ident, ok := expr.(*Identifier)
			if !ok {
				return nil, p.errAt(p.peek(), "only named functions are callable")
			}
			p.advance()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Callee: ident.Name, Args: args}
		case PLUS_PLUS, MINUS_MINUS:
			opTok := p.advance()
			expr = &UpdateExpr{Target: expr, Op: opTok.Lexeme, Prefix: false}
		default:
			return expr, nil
		}
	}
}

// parseArgs consumes call arguments up to and including the closing ')'.
func (p *Parser) parseArgs() ([]Expression, error) {
	var args []Expression
	if p.match(RPAREN) {
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(RPAREN, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (Expression, error) {
	t := p.peek()
	switch t.Type {
	case INTEGER:
		p.advance()
		return &IntLit{Value: t.Literal.(int64)}, nil
	case FLOAT:
		p.advance()
		return &FloatLit{Value: t.Literal.(float64)}, nil
	case STRING:
		p.advance()
		return &StringLit{Value: t.Literal.(string)}, nil
	case INTERP_STRING:
		p.advance()
		return p.parseInterpolated(t)
	case BOOLEAN:
		p.advance()
		return &BoolLit{Value: t.Literal.(bool)}, nil
	case NULL:
		p.advance()
		return &NullLit{}, nil
	case SELF:
		p.advance()
		return &Identifier{Name: "self"}, nil
	case IDENT:
		p.advance()
		return &Identifier{Name: t.Literal.(string)}, nil
	case LBRACKET:
		p.advance()
		return p.parseArrayLiteral()
	case LBRACE:
		if p.looksLikeMap() {
			return p.parseMapLiteral()
		}
		return nil, p.errAt(t, "unexpected '{' in expression")
	case MATCH:
		return p.parseMatch()
	case LPAREN:
		return p.parseLambdaOrGrouping()
	case INVALID:
		return nil, p.errAt(t, "unrecognised character")
	}

	// Type keywords are valid only as conversion calls: int(x), string(x), ...
	if isTypeKeyword(t.Type) {
		p.advance()
		name := typeKeywordNames[t.Type]
		if p.peek().Type != LPAREN {
			return nil, p.errAt(t, fmt.Sprintf("unexpected type keyword %q - use as call: %s(value)", name, name))
		}
		p.advance()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &CallExpr{Callee: name, Args: args}, nil
	}

	return nil, p.errUnexpected(t)
}

func (p *Parser) parseArrayLiteral() (Expression, error) {
	node := &ArrayLit{}
	if p.match(RBRACKET) {
		return node, nil
	}
	for {
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Elements = append(node.Elements, elem)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(RBRACKET, "expected ']' at end of array literal"); err != nil {
		return nil, err
	}
	return node, nil
}

// looksLikeMap peeks past a '{' to decide between map literal and block:
// empty braces, a string key, or `identifier :` all mean map literal.
func (p *Parser) looksLikeMap() bool {
	if p.peek().Type != LBRACE {
		return false
	}
	next := p.peekN(1)
	switch next.Type {
	case RBRACE, STRING:
		return true
	case IDENT:
		return p.peekN(2).Type == COLON
	}
	return false
}

func (p *Parser) parseMapLiteral() (Expression, error) {
	p.advance() // '{'
	node := &MapLit{}
	if p.match(RBRACE) {
		return node, nil
	}
	for {
		var key string
		switch p.peek().Type {
		case STRING:
			key = p.advance().Literal.(string)
		case IDENT:
			key = p.advance().Literal.(string)
		default:
			return nil, p.errAt(p.peek(), "expected string or identifier as map key")
		}
		if _, err := p.need(COLON, "expected ':' after map key"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Entries = append(node.Entries, MapEntry{Key: key, Value: value})
		if !p.match(COMMA) {
			break
		}
		if p.peek().Type == RBRACE {
			break // trailing comma
		}
	}
	if _, err := p.need(RBRACE, "expected '}' at end of map literal"); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseMatch() (Expression, error) {
	p.advance() // match
	subject, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LBRACE, "expected '{' after match subject"); err != nil {
		return nil, err
	}
	node := &MatchExpr{Subject: subject}
	for !p.atEnd() && p.peek().Type != RBRACE {
		var pattern Expression
		t := p.peek()
		if t.Type == IDENT && t.Literal.(string) == "_" {
			p.advance()
		} else {
			pattern, err = p.parseMatchPattern()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.need(FAT_ARROW, "expected '=>' in match case"); err != nil {
			return nil, err
		}
		result, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Cases = append(node.Cases, MatchCase{Pattern: pattern, Result: result})
		p.match(COMMA)
	}
	if _, err := p.need(RBRACE, "expected '}' after match cases"); err != nil {
		return nil, err
	}
	return node, nil
}

// parseMatchPattern is restricted to primary expressions: literals or
// identifiers compared for equality against the subject.
func (p *Parser) parseMatchPattern() (Expression, error) {
	t := p.peek()
	switch t.Type {
	case INTEGER:
		p.advance()
		return &IntLit{Value: t.Literal.(int64)}, nil
	case FLOAT:
		p.advance()
		return &FloatLit{Value: t.Literal.(float64)}, nil
	case STRING:
		p.advance()
		return &StringLit{Value: t.Literal.(string)}, nil
	case BOOLEAN:
		p.advance()
		return &BoolLit{Value: t.Literal.(bool)}, nil
	case NULL:
		p.advance()
		return &NullLit{}, nil
	case MINUS:
		p.advance()
		operand, err := p.parseMatchPattern()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "-", Operand: operand}, nil
	case IDENT:
		p.advance()
		return &Identifier{Name: t.Literal.(string)}, nil
	}
	return nil, p.errAt(t, "match patterns must be literals or identifiers")
}

// parseLambdaOrGrouping resolves '(' by trying a lambda parameter list
// followed by '=>'; on failure it rewinds and parses a grouped expression.
func (p *Parser) parseLambdaOrGrouping() (Expression, error) {
	save := p.i
	p.advance() // '('

	if params, variadic, ok := p.tryLambdaHead(); ok {
		if p.peek().Type == LBRACE {
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			return &LambdaExpr{Params: params, Variadic: variadic, BlockBody: body.(*Block)}, nil
		}
		body, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &LambdaExpr{Params: params, Variadic: variadic, ExprBody: body}, nil
	}

	p.i = save
	p.advance() // '('
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after expression"); err != nil {
		return nil, err
	}
	return expr, nil
}

// tryLambdaHead attempts `params... ) =>` from just after '('. It reports
// failure without consuming input decisions — the caller rewinds.
func (p *Parser) tryLambdaHead() ([]Param, string, bool) {
	save := p.i
	var params []Param
	var variadic string

	if p.peek().Type != RPAREN {
		for {
			if p.match(ELLIPSIS) {
				if p.peek().Type != IDENT {
					p.i = save
					return nil, "", false
				}
				variadic = p.advance().Literal.(string)
				break
			}
			if p.peek().Type != IDENT {
				p.i = save
				return nil, "", false
			}
			param := Param{Name: p.advance().Literal.(string)}
			if p.match(COLON) {
				name, err := p.parseTypeName()
				if err != nil {
					p.i = save
					return nil, "", false
				}
				param.TypeName = name
				param.IsNullable = p.match(QUESTION)
			}
			params = append(params, param)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if !p.match(RPAREN) || !p.match(FAT_ARROW) {
		p.i = save
		return nil, "", false
	}
	return params, variadic, true
}

// parseInterpolated splits the decoded body of an interpolated string into
// literal text and ${...} sub-expressions, re-lexing and re-parsing each
// captured substring with a nested lexer/parser.
func (p *Parser) parseInterpolated(tok Token) (Expression, error) {
	body := tok.Literal.(string)
	node := &InterpolatedStr{}

	pos := 0
	for pos < len(body) {
		open := strings.Index(body[pos:], "${")
		if open < 0 {
			node.Parts = append(node.Parts, StringPart{Text: body[pos:]})
			break
		}
		open += pos
		if open > pos {
			node.Parts = append(node.Parts, StringPart{Text: body[pos:open]})
		}
		end := strings.Index(body[open+2:], "}")
		if end < 0 {
			return nil, p.errAt(tok, "unclosed interpolation in string")
		}
		exprSrc := body[open+2 : open+2+end]
		expr, err := p.parseEmbedded(tok, exprSrc)
		if err != nil {
			return nil, err
		}
		node.Parts = append(node.Parts, StringPart{Expr: expr})
		pos = open + 2 + end + 1
	}
	return node, nil
}

func (p *Parser) parseEmbedded(tok Token, src string) (Expression, error) {
	lex := NewLexer(src)
	toks, err := lex.Scan()
	if err != nil {
		return nil, p.errAt(tok, fmt.Sprintf("invalid interpolated expression: %s", src))
	}
	nested := NewParser(toks)
	expr, err := nested.parseExpression()
	if err != nil {
		return nil, p.errAt(tok, fmt.Sprintf("invalid interpolated expression: %s", src))
	}
	if !nested.atEnd() {
		return nil, p.errAt(tok, fmt.Sprintf("invalid interpolated expression: %s", src))
	}
	return expr, nil
}
