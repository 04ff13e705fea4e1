package formula

import "strings"

// Grammar (precedence low to high):
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ ("**" | "^") unary ]
//	primary = number | identifier | "(" expr ")"
//
// Exponentiation is right-associative and binds tighter than a unary sign on
// its left, so -2**2 == -4 and 2**-1 == 0.5.

var disallowedKeywords = map[string]string{
	"and":    "boolean logic",
	"or":     "boolean logic",
	"not":    "boolean logic",
	"AND":    "boolean logic",
	"OR":     "boolean logic",
	"NOT":    "boolean logic",
	"if":     "conditional expression",
	"else":   "conditional expression",
	"lambda": "lambda",
	"for":    "comprehension",
	"in":     "membership test",
	"is":     "identity test",
	"True":   "boolean literal",
	"False":  "boolean literal",
	"true":   "boolean literal",
	"false":  "boolean literal",
	"None":   "null literal",
	"null":   "null literal",
}

func describeOperator(op string) string {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		return "comparison " + op
	case "=", ":=":
		return "assignment"
	case "&&", "||", "!":
		return "boolean logic"
	case ".":
		return "attribute access"
	case "[", "]":
		return "indexing"
	case ",":
		return "tuple"
	case ";":
		return "statement separator"
	case "{", "}", ":", "->":
		return "unsupported syntax " + op
	}
	return "operator " + op
}

type parser struct {
	toks []token
	pos  int
}

// Parse turns src into an expression tree. It never evaluates anything.
func Parse(src string) (Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, parseError(0, "empty formula")
	}
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.typ != tokEOF {
		return nil, p.unexpected(tok)
	}
	return expr, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	tok := p.toks[p.pos]
	if tok.typ != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) unexpected(tok token) error {
	switch tok.typ {
	case tokOther:
		return disallowed(tok.pos, describeOperator(tok.text))
	case tokString:
		return disallowed(tok.pos, "string literal")
	case tokIdent:
		if what, ok := disallowedKeywords[tok.text]; ok {
			return disallowed(tok.pos, what)
		}
	case tokEOF:
		return parseError(tok.pos, "unexpected end of formula")
	}
	return parseError(tok.pos, "unexpected %q", tok.text)
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		var op Op
		switch tok.typ {
		case tokPlus:
			op = OpAdd
		case tokMinus:
			op = OpSub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right, Pos: tok.pos}
	}
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		var op Op
		switch tok.typ {
		case tokStar:
			op = OpMul
		case tokSlash:
			op = OpDiv
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right, Pos: tok.pos}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	switch p.peek().typ {
	case tokPlus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpAdd, Operand: operand}, nil
	case tokMinus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpSub, Operand: operand}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.typ != tokPow {
		return base, nil
	}
	p.advance()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: OpPow, Left: base, Right: exp, Pos: tok.pos}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.advance()

	var expr Expr
	switch tok.typ {
	case tokNumber:
		expr = &Number{Value: tok.num}
	case tokIdent:
		if what, ok := disallowedKeywords[tok.text]; ok {
			return nil, disallowed(tok.pos, what)
		}
		expr = &Variable{Name: tok.text, Pos: tok.pos}
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		closing := p.advance()
		if closing.typ != tokRParen {
			if closing.typ == tokOther || closing.typ == tokString {
				return nil, p.unexpected(closing)
			}
			return nil, parseError(closing.pos, "missing closing parenthesis")
		}
		expr = inner
	default:
		return nil, p.unexpected(tok)
	}

	// A primary directly followed by "(", "." or "[" would be a call,
	// attribute access or subscript in a general expression language.
	switch next := p.peek(); {
	case next.typ == tokLParen:
		return nil, disallowed(next.pos, "function call")
	case next.typ == tokOther && next.text == ".":
		return nil, disallowed(next.pos, "attribute access")
	case next.typ == tokOther && next.text == "[":
		return nil, disallowed(next.pos, "indexing")
	}
	return expr, nil
}
