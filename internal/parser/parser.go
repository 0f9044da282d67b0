package parser

import (
	"sheetcalc/internal/ast"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/lexer"
	"sheetcalc/internal/source"
	"sheetcalc/internal/token"
)

// DefaultMaxDepth bounds expression nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 256

type Options struct {
	// MaxDepth limits nesting of parentheses, calls and negations.
	MaxDepth int
	Reporter diag.Reporter
}

// Parser: состояние парсера на одну формулу
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	depth    int
	failed   bool
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// Parse reads one complete formula from lx. The first error stops parsing:
// there is never a partial tree. Lexer failures were already reported by the
// lexer and are not reported again.
func Parse(lx *lexer.Lexer, opts Options) (ast.Expr, bool) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	p := Parser{
		lx:       lx,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	if p.at(token.EOF) {
		p.report(diag.SynEmptyFormula, p.lx.Peek().Span, "formula is empty").Emit()
		return nil, false
	}

	expr, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}

	switch tok := p.lx.Peek(); tok.Kind {
	case token.EOF:
	case token.RParen:
		p.report(diag.SynUnmatchedParen, tok.Span, "unmatched ')'").Emit()
		return nil, false
	default:
		p.unexpected(tok, "expected an operator or end of formula")
		return nil, false
	}

	// a sticky lexer failure always fails the parse
	if lx.Invalid() || p.failed {
		return nil, false
	}
	return expr, true
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// advance съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan: лучший span для диагностики: на EOF указываем сразу после последнего токена
func (p *Parser) diagSpan(tok token.Token) source.Span {
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	p.failed = true
	return diag.ReportError(p.opts.Reporter, code, sp, msg)
}

// unexpected reports tok where something else was required. An Invalid
// token carries the lexer's own diagnostic, so nothing new is reported.
func (p *Parser) unexpected(tok token.Token, msg string) {
	p.failed = true
	if tok.Kind == token.Invalid {
		return
	}
	what := "'" + tok.Text + "'"
	if tok.Kind == token.EOF {
		what = "end of formula"
	}
	p.report(diag.SynUnexpectedToken, p.diagSpan(tok), msg+", found "+what).Emit()
}

// enter tracks nesting; false once MaxDepth is exceeded. The report points at
// the last consumed token: looking ahead here could make the lexer report a
// second failure.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth <= p.opts.MaxDepth {
		return true
	}
	if p.lx.Invalid() {
		p.failed = true
		return false
	}
	p.report(diag.SynTooDeep, p.lastSpan, "formula is nested too deeply").Emit()
	return false
}

func (p *Parser) leave() {
	p.depth--
}
