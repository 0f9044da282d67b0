package parser

import (
	"fmt"

	"sheetcalc/internal/ast"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/fix"
	"sheetcalc/internal/token"
)

// parseExpr реализует precedence climbing.
// minPrec - минимальный приоритет, который этот вызов может забрать.
func (p *Parser) parseExpr(minPrec int) (ast.Expr, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}

	for {
		tok := p.lx.Peek()
		prec := binaryPrec(tok.Kind)
		if prec == precNone || prec < minPrec {
			break
		}
		opTok := p.advance()

		right, ok := p.parseExpr(prec + 1)
		if !ok {
			return nil, false
		}
		left = &ast.Binary{
			Sp: left.Span().Cover(right.Span()),
			Op: binaryOp(opTok.Kind),
			X:  left,
			Y:  right,
		}
	}
	return left, true
}

// parseUnary: '-' unary | primary.
// Минус без левого операнда считается унарным; его операнд не забирает бинарные операторы.
func (p *Parser) parseUnary() (ast.Expr, bool) {
	if !p.at(token.Minus) {
		return p.parsePrimary()
	}
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	minus := p.advance()
	x, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	return &ast.Unary{Sp: minus.Span.Cover(x.Span()), Op: ast.ExprUnaryNeg, X: x}, true
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Number:
		p.advance()
		return &ast.Literal{Sp: tok.Span, Value: tok.Value, Ref: tok.Ref}, true

	case token.LParen:
		return p.parseGroup()

	case token.Function:
		return p.parseCall()

	case token.Invalid:
		p.unexpected(tok, "")
		return nil, false

	case token.EOF:
		p.report(diag.SynExpectOperand, p.diagSpan(tok), "expected an operand, found end of formula").Emit()
		return nil, false

	case token.Symbol:
		p.unexpected(tok, "unexpected character")
		return nil, false

	default:
		p.report(diag.SynExpectOperand, tok.Span, fmt.Sprintf("expected an operand before '%s'", tok.Text)).Emit()
		return nil, false
	}
}

// parseGroup: '(' expr(0) ')'. Скобки сбрасывают минимальный приоритет в 0.
func (p *Parser) parseGroup() (ast.Expr, bool) {
	open := p.advance()
	inner, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	if _, ok := p.closeParen(open); !ok {
		return nil, false
	}
	return inner, true
}

// closeParen consumes the ')' matching open.
func (p *Parser) closeParen(open token.Token) (token.Token, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.RParen:
		return p.advance(), true
	case token.EOF:
		end := p.diagSpan(tok)
		p.report(diag.SynUnclosedParen, open.Span, "unclosed '('").
			WithNote(end, "formula ends here").
			WithFixes(fix.InsertText("insert ')'", end, ")")).
			Emit()
		return tok, false
	default:
		p.unexpected(tok, "expected ')'")
		return tok, false
	}
}

// parseCall: Function '(' expr(0) (',' expr(0))* ')'. Число аргументов
// проверяется по арности builtin'а.
func (p *Parser) parseCall() (ast.Expr, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	fnTok := p.advance()
	open := p.lx.Peek()
	if open.Kind != token.LParen {
		if open.Kind == token.Invalid {
			p.unexpected(open, "")
			return nil, false
		}
		p.report(diag.SynExpectLParen, p.diagSpan(open), fmt.Sprintf("expected '(' after %s", fnTok.Text)).
			WithFixes(fix.InsertText("insert '('", p.diagSpan(open), "(")).
			Emit()
		return nil, false
	}
	p.advance()

	var args []ast.Expr
	for {
		if next := p.lx.Peek(); next.Kind == token.Comma || next.Kind == token.RParen {
			p.report(diag.SynExpectArgument, p.diagSpan(next), fmt.Sprintf("missing argument to %s", fnTok.Text)).Emit()
			return nil, false
		}
		arg, ok := p.parseExpr(0)
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}

	closeTok, ok := p.closeParen(open)
	if !ok {
		return nil, false
	}
	sp := fnTok.Span.Cover(closeTok.Span)

	fn := fnTok.Func
	if len(args) != fn.Arity() {
		p.report(diag.SynArity, sp,
			fmt.Sprintf("%s takes %d argument%s, got %d", fn, fn.Arity(), plural(fn.Arity()), len(args))).Emit()
		return nil, false
	}

	switch fn.Arity() {
	case 1:
		return &ast.Call1{Sp: sp, Fn: fn, Arg: args[0]}, true
	default:
		return &ast.Call2{Sp: sp, Fn: fn, A: args[0], B: args[1]}, true
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
