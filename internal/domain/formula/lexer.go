package formula

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokLParen
	tokRParen
	tokString
	// tokOther is an operator or punctuation that belongs to a general
	// expression language (comparisons, indexing, attribute access, ...) but
	// not to the formula grammar. It lexes so the parser can name it.
	tokOther
)

type token struct {
	typ  tokenType
	text string
	num  float64
	pos  int
}

// otherOperators are recognised so they can be reported as disallowed
// rather than as garbage. Longest match first.
var otherOperators = []string{
	"==", "!=", "<=", ">=", "//", "<<", ">>", "&&", "||", ":=", "->",
	"<", ">", "=", "!", "%", "&", "|", "~", "@", ".", ",", "[", "]", "{", "}", ":", ";",
}

type lexer struct {
	src string
	pos int
}

func tokenize(src string) ([]token, error) {
	lx := &lexer{src: src}
	var out []token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.typ == tokEOF {
			return out, nil
		}
	}
}

func (lx *lexer) next() (token, error) {
	lx.skipSpace()
	if lx.pos >= len(lx.src) {
		return token{typ: tokEOF, pos: lx.pos}, nil
	}

	start := lx.pos
	r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])

	switch {
	case r == '*' && strings.HasPrefix(lx.src[lx.pos:], "**"):
		lx.pos += 2
		return token{typ: tokPow, text: "**", pos: start}, nil
	case r == '^':
		lx.pos += size
		return token{typ: tokPow, text: "^", pos: start}, nil
	case r == '+':
		lx.pos += size
		return token{typ: tokPlus, text: "+", pos: start}, nil
	case r == '-' || r == '−':
		lx.pos += size
		return token{typ: tokMinus, text: "-", pos: start}, nil
	case r == '*' || r == '×':
		lx.pos += size
		return token{typ: tokStar, text: "*", pos: start}, nil
	case r == '/' && !strings.HasPrefix(lx.src[lx.pos:], "//"):
		lx.pos += size
		return token{typ: tokSlash, text: "/", pos: start}, nil
	case r == '÷':
		lx.pos += size
		return token{typ: tokSlash, text: "/", pos: start}, nil
	case r == '(':
		lx.pos += size
		return token{typ: tokLParen, text: "(", pos: start}, nil
	case r == ')':
		lx.pos += size
		return token{typ: tokRParen, text: ")", pos: start}, nil
	case r == '"' || r == '\'':
		return lx.lexString(r)
	case isDigit(r) || (r == '.' && lx.peekDigit(1)):
		return lx.lexNumber()
	case r == '_' || unicode.IsLetter(r):
		return lx.lexIdent(), nil
	}

	for _, op := range otherOperators {
		if strings.HasPrefix(lx.src[lx.pos:], op) {
			lx.pos += len(op)
			return token{typ: tokOther, text: op, pos: start}, nil
		}
	}
	return token{}, parseError(start, "unexpected character %q", r)
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		lx.pos += size
	}
}

func (lx *lexer) peekDigit(offset int) bool {
	i := lx.pos + offset
	return i < len(lx.src) && lx.src[i] >= '0' && lx.src[i] <= '9'
}

func (lx *lexer) lexNumber() (token, error) {
	start := lx.pos
	for lx.pos < len(lx.src) && isDigit(rune(lx.src[lx.pos])) {
		lx.pos++
	}
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '.' {
		lx.pos++
		for lx.pos < len(lx.src) && isDigit(rune(lx.src[lx.pos])) {
			lx.pos++
		}
	}
	if lx.pos < len(lx.src) && (lx.src[lx.pos] == 'e' || lx.src[lx.pos] == 'E') {
		save := lx.pos
		lx.pos++
		if lx.pos < len(lx.src) && (lx.src[lx.pos] == '+' || lx.src[lx.pos] == '-') {
			lx.pos++
		}
		if !lx.peekDigit(0) {
			lx.pos = save
		} else {
			for lx.pos < len(lx.src) && isDigit(rune(lx.src[lx.pos])) {
				lx.pos++
			}
		}
	}

	text := lx.src[start:lx.pos]
	// "10abc" or "1.2.3" are malformed literals, not a number followed by
	// something else.
	if lx.pos < len(lx.src) {
		r, _ := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return token{}, parseError(start, "malformed number near %q", lx.src[start:])
		}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, parseError(start, "malformed number %q", text)
	}
	return token{typ: tokNumber, text: text, num: v, pos: start}, nil
}

func (lx *lexer) lexIdent() token {
	start := lx.pos
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		lx.pos += size
	}
	text := lx.src[start:lx.pos]
	return token{typ: tokIdent, text: text, pos: start}
}

func (lx *lexer) lexString(quote rune) (token, error) {
	start := lx.pos
	lx.pos++
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		lx.pos += size
		if r == '\\' && lx.pos < len(lx.src) {
			lx.pos++
			continue
		}
		if r == quote {
			return token{typ: tokString, text: lx.src[start:lx.pos], pos: start}, nil
		}
	}
	return token{}, parseError(start, "unterminated string literal")
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
