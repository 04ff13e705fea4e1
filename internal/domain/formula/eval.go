// Package formula evaluates the restricted arithmetic expressions used by
// FORMULA-mode estimate lines.
//
// Only numeric literals, + - * / and exponentiation, unary signs,
// parentheses and identifiers taken from the supplied environment are
// accepted. There are no functions, no attribute access and no way to reach
// anything outside the environment map.
package formula

// Eval evaluates a parsed expression. Every identifier is checked against
// env before any arithmetic happens, so an unknown variable is always
// reported in preference to an arithmetic failure.
func Eval(expr Expr, env map[string]float64) (float64, error) {
	var missing *Variable
	expr.walk(func(e Expr) {
		if missing != nil {
			return
		}
		if v, ok := e.(*Variable); ok {
			if _, found := env[v.Name]; !found {
				missing = v
			}
		}
	})
	if missing != nil {
		return 0, &Error{Kind: KindUnknownVariable, Detail: missing.Name, Pos: missing.Pos}
	}
	return expr.eval(env)
}

// Evaluate parses and evaluates src against env.
func Evaluate(src string, env map[string]float64) (float64, error) {
	expr, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return Eval(expr, env)
}
