package fromtext

import (
	"fmt"

	"github.com/dinothaurs/cs131interpretor/pkg/element"
)

// Parse reads fromtext source and returns the top-level struct and func
// definitions as an element.Element tree, ready for interp.Interpreter.Run
// or brewin.Interpreter.Run.
//
// Grammar (informal):
//
//	program    := toplevel*
//	toplevel   := "(" "struct" NAME field* ")"
//	            | "(" "func" NAME "(" param* ")" TYPE stmt* ")"
//	field      := "(" "field" NAME TYPE ")"
//	param      := "(" NAME TYPE ")"
//	stmt       := "(" "vardef" NAME TYPE ")"
//	            | "(" "=" NAME expr ")"
//	            | "(" "call" NAME expr* ")"
//	            | "(" "return" expr? ")"
//	            | "(" "if" expr "(" stmt* ")" ("(" stmt* ")")? ")"
//	            | "(" "for" (stmt|"_") expr (stmt|"_") "(" stmt* ")" ")"
//	            | "(" "try" "(" stmt* ")" catcher* ")"
//	            | "(" "raise" expr ")"
//	catcher    := "(" "catch" STRING "(" stmt* ")" ")"
//	expr       := INT | STRING | "true" | "false" | "nil" | NAME
//	            | "(" "neg" expr ")" | "(" "!" expr ")"
//	            | "(" "new" NAME ")"
//	            | "(" BINOP expr expr ")"
//	            | "(" "call" NAME expr* ")"
func Parse(src string) ([]element.Element, error) {
	toks, err := newLexer(src).tokenize()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}

	var tops []element.Element
	for p.peek().kind != tokEOF {
		top, err := p.parseTop()
		if err != nil {
			return nil, err
		}
		tops = append(tops, top)
	}
	return tops, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.advance()
	if t.kind != kind {
		return token{}, fmt.Errorf("fromtext: expected %s on line %d, got %q", what, t.line, t.text)
	}
	return t, nil
}

func (p *parser) expectSymbol(text string) error {
	t, err := p.expect(tokSymbol, "'"+text+"'")
	if err != nil {
		return err
	}
	if t.text != text {
		return fmt.Errorf("fromtext: expected %q on line %d, got %q", text, t.line, t.text)
	}
	return nil
}

func (p *parser) lparen() error {
	_, err := p.expect(tokLParen, "'('")
	return err
}

func (p *parser) rparen() error {
	_, err := p.expect(tokRParen, "')'")
	return err
}

func (p *parser) symbol() (string, error) {
	t, err := p.expect(tokSymbol, "a name")
	if err != nil {
		return "", err
	}
	return t.text, nil
}

// parseTop reads one (struct ...) or (func ...) form.
func (p *parser) parseTop() (element.Element, error) {
	if err := p.lparen(); err != nil {
		return nil, err
	}
	kw, err := p.symbol()
	if err != nil {
		return nil, err
	}
	switch kw {
	case "struct":
		return p.parseStructBody()
	case "func":
		return p.parseFuncBody()
	default:
		return nil, fmt.Errorf("fromtext: unknown top-level form %q on line %d", kw, p.peek().line)
	}
}

func (p *parser) parseStructBody() (element.Element, error) {
	name, err := p.symbol()
	if err != nil {
		return nil, err
	}
	var fields []element.Element
	for p.peek().kind == tokLParen {
		if err := p.lparen(); err != nil {
			return nil, err
		}
		if err := p.expectSymbol("field"); err != nil {
			return nil, err
		}
		fname, err := p.symbol()
		if err != nil {
			return nil, err
		}
		ftype, err := p.symbol()
		if err != nil {
			return nil, err
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		fields = append(fields, element.Field(fname, ftype))
	}
	if err := p.rparen(); err != nil {
		return nil, err
	}
	return element.StructDef(name, fields), nil
}

func (p *parser) parseFuncBody() (element.Element, error) {
	name, err := p.symbol()
	if err != nil {
		return nil, err
	}
	if err := p.lparen(); err != nil {
		return nil, err
	}
	var params []element.Element
	for p.peek().kind == tokLParen {
		if err := p.lparen(); err != nil {
			return nil, err
		}
		pname, err := p.symbol()
		if err != nil {
			return nil, err
		}
		ptype, err := p.symbol()
		if err != nil {
			return nil, err
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		params = append(params, element.VarDef(pname, ptype))
	}
	if err := p.rparen(); err != nil {
		return nil, err
	}
	retType, err := p.symbol()
	if err != nil {
		return nil, err
	}
	var body []element.Element
	for p.peek().kind == tokLParen {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if err := p.rparen(); err != nil {
		return nil, err
	}
	return element.Func(name, params, retType, body), nil
}

// parseStmtList reads "(" stmt* ")".
func (p *parser) parseStmtList() ([]element.Element, error) {
	if err := p.lparen(); err != nil {
		return nil, err
	}
	var stmts []element.Element
	for p.peek().kind == tokLParen {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if err := p.rparen(); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) parseStmt() (element.Element, error) {
	if err := p.lparen(); err != nil {
		return nil, err
	}
	kw, err := p.symbol()
	if err != nil {
		return nil, err
	}
	switch kw {
	case "vardef":
		name, err := p.symbol()
		if err != nil {
			return nil, err
		}
		typ, err := p.symbol()
		if err != nil {
			return nil, err
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		return element.VarDef(name, typ), nil

	case "=":
		name, err := p.symbol()
		if err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		return element.Assign(name, val), nil

	case "call":
		call, err := p.parseCallTail()
		if err != nil {
			return nil, err
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		return call, nil

	case "return":
		if p.peek().kind == tokRParen {
			if err := p.rparen(); err != nil {
				return nil, err
			}
			return element.Return(nil), nil
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		return element.Return(val), nil

	case "if":
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		thenStmts, err := p.parseStmtList()
		if err != nil {
			return nil, err
		}
		var elseStmts []element.Element
		if p.peek().kind == tokLParen {
			elseStmts, err = p.parseStmtList()
			if err != nil {
				return nil, err
			}
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		return element.If(cond, thenStmts, elseStmts), nil

	case "for":
		initStmt, err := p.parseOptionalStmt()
		if err != nil {
			return nil, err
		}
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		updateStmt, err := p.parseOptionalStmt()
		if err != nil {
			return nil, err
		}
		body, err := p.parseStmtList()
		if err != nil {
			return nil, err
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		return element.For(initStmt, cond, updateStmt, body), nil

	case "try":
		body, err := p.parseStmtList()
		if err != nil {
			return nil, err
		}
		var catchers []element.Element
		for p.peek().kind == tokLParen {
			c, err := p.parseCatch()
			if err != nil {
				return nil, err
			}
			catchers = append(catchers, c)
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		return element.Try(body, catchers), nil

	case "raise":
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		return element.Raise(expr), nil

	default:
		return nil, fmt.Errorf("fromtext: unknown statement form %q on line %d", kw, p.peek().line)
	}
}

// parseOptionalStmt reads either the placeholder symbol "_" (absent
// init/update clause in a for loop) or a full statement form.
func (p *parser) parseOptionalStmt() (element.Element, error) {
	if p.peek().kind == tokSymbol && p.peek().text == "_" {
		p.advance()
		return nil, nil
	}
	return p.parseStmt()
}

func (p *parser) parseCatch() (element.Element, error) {
	if err := p.lparen(); err != nil {
		return nil, err
	}
	if err := p.expectSymbol("catch"); err != nil {
		return nil, err
	}
	tag, err := p.expect(tokString, "a string exception tag")
	if err != nil {
		return nil, err
	}
	body, err := p.parseStmtList()
	if err != nil {
		return nil, err
	}
	if err := p.rparen(); err != nil {
		return nil, err
	}
	return element.Catch(tag.text, body), nil
}

// parseCallTail reads NAME expr* after the leading "call" keyword has
// already been consumed, without the closing paren (the caller owns it,
// since call doubles as both a statement and an expression form).
func (p *parser) parseCallTail() (element.Element, error) {
	name, err := p.symbol()
	if err != nil {
		return nil, err
	}
	var args []element.Element
	for p.peek().kind != tokRParen {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return element.Call(name, args...), nil
}

var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"&&": true, "||": true,
}

func (p *parser) parseExpr() (element.Element, error) {
	t := p.peek()
	switch t.kind {
	case tokInt:
		p.advance()
		return element.IntLit(t.ival), nil
	case tokString:
		p.advance()
		return element.StringLit(t.text), nil
	case tokSymbol:
		p.advance()
		switch t.text {
		case "true":
			return element.BoolLit(true), nil
		case "false":
			return element.BoolLit(false), nil
		case "nil":
			return element.NilLit(), nil
		default:
			return element.Var(t.text), nil
		}
	case tokLParen:
		return p.parseExprForm()
	default:
		return nil, fmt.Errorf("fromtext: unexpected token on line %d", t.line)
	}
}

func (p *parser) parseExprForm() (element.Element, error) {
	if err := p.lparen(); err != nil {
		return nil, err
	}
	kw, err := p.symbol()
	if err != nil {
		return nil, err
	}

	switch {
	case kw == "neg":
		operand, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		return element.Neg(operand), nil

	case kw == "!":
		operand, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		return element.Not(operand), nil

	case kw == "new":
		typeName, err := p.symbol()
		if err != nil {
			return nil, err
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		return element.NewStruct(typeName), nil

	case kw == "call":
		call, err := p.parseCallTail()
		if err != nil {
			return nil, err
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		return call, nil

	case binaryOps[kw]:
		left, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.rparen(); err != nil {
			return nil, err
		}
		return element.Binary(kw, left, right), nil

	default:
		return nil, fmt.Errorf("fromtext: unknown expression form %q on line %d", kw, p.peek().line)
	}
}
