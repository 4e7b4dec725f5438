package keon

import (
	"github.com/eternal-io/keon/kerr"
	"github.com/eternal-io/keon/lexer"
	"github.com/eternal-io/keon/token"
)

// Parser is a hand-written recursive-descent deserialization driver with
// one-token lookahead, the same resource shape as the teacher's lexer: one
// mutable Parser exists per call and is not shared across goroutines (spec
// §5). It is not built from participle's grammar machinery (see DESIGN.md)
// because the grammar it drives is resolved by the visitor's own runtime
// requests, not by a static set of productions.
type Parser struct {
	lex    *lexer.Lexer
	peeked *token.Token
	budget int
	logger Logger
}

// NewParser creates a Parser over input. filename is cosmetic: it is
// recorded in token positions but not in reported error positions.
func NewParser(filename, input string) *Parser {
	return &Parser{lex: lexer.New(filename, input), budget: defaultRecursionBudget}
}

func (p *Parser) peek() (token.Token, error) {
	if p.peeked == nil {
		tok, err := p.lex.Next()
		if err != nil {
			return token.Token{}, err
		}
		p.peeked = &tok
	}
	return *p.peeked, nil
}

func (p *Parser) advance() (token.Token, error) {
	tok, err := p.peek()
	if err != nil {
		return tok, err
	}
	p.peeked = nil
	return tok, nil
}

func posOf(tok token.Token) kerr.Position { return kerr.FromTokenPos(tok.Pos) }

// Offset reports how far into the source the most recently completed
// DeserializeAny call read, letting a caller slice the remaining,
// not-yet-parsed input off and hand it to a fresh Parser (spec §8's
// back-to-back-values-in-one-string testable property). It is only
// meaningful right after a top-level call returns, before any further
// peek/advance.
func (p *Parser) Offset() int { return p.lex.Consumed() }

// enter is called once per visitor dispatch to enforce the recursion budget
// (spec §3); it is cheaper than threading a depth parameter through every
// parse* method.
func (p *Parser) enter(pos kerr.Position) error {
	if p.budget <= 0 {
		return kerr.New(kerr.ExceededRecursionLimit, pos, "exceeded recursion limit")
	}
	p.budget--
	if p.logger != nil {
		p.logger.Tracef("keon: dispatch at %s, budget=%d", pos, p.budget)
	}
	return nil
}

// leave restores the budget enter charged, so the limit bounds nesting depth
// rather than the total number of values parsed across the whole document.
func (p *Parser) leave() { p.budget++ }

// ParseAll parses exactly one value and then requires the input be
// exhausted, matching the "single top-level value, no streaming" non-goal.
func ParseAll(filename, input string, v Visitor) (any, error) {
	p := NewParser(filename, input)
	val, err := p.DeserializeAny(v)
	if err != nil {
		return nil, err
	}
	tok, err := p.advance()
	if err != nil {
		return nil, err
	}
	if tok.Kind != token.EOF {
		return nil, kerr.New(kerr.ExpectedEof, posOf(tok), "expected end of input, found %s", tokenShapeName(tok.Kind))
	}
	return val, nil
}

// DeserializeAny implements Deserializer: parse exactly one value starting
// at the current token and invoke exactly one of v's Visit* methods, per
// spec §4.2's leading-token dispatch table.
func (p *Parser) DeserializeAny(v Visitor) (any, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if err := p.enter(posOf(tok)); err != nil {
		return nil, err
	}
	defer p.leave()

	switch tok.Kind {
	case token.EOF:
		return nil, kerr.New(kerr.UnexpectedEof, posOf(tok), "unexpected end of input, expected a value")
	case token.Literal:
		p.advance()
		return p.dispatchLiteral(tok, v)
	case token.Question:
		p.advance()
		return p.parseOption(v)
	case token.Percent:
		p.advance()
		return p.parseMayary(v)
	case token.LBrack:
		p.advance()
		return p.parseSeqBody(v)
	case token.LBrace:
		p.advance()
		return p.parseMapBody(v)
	case token.LParen:
		p.advance()
		return p.parseParen(v)
	case token.Ident:
		p.advance()
		return p.parseEnum(tok.Text, v)
	default:
		return nil, kerr.New(kerr.UnexpectedToken, posOf(tok), "unexpected token %s", tokenShapeName(tok.Kind))
	}
}

func (p *Parser) dispatchLiteral(tok token.Token, v Visitor) (any, error) {
	lit := tok.Lit
	switch lit.Kind {
	case token.LitBool:
		return v.VisitBool(lit.Bool)
	case token.LitI64:
		return v.VisitI64(lit.I64)
	case token.LitU64:
		return v.VisitU64(lit.U64)
	case token.LitF64:
		return v.VisitF64(lit.F64)
	case token.LitChar:
		return v.VisitChar(lit.Char)
	case token.LitBorrowedStr:
		return v.VisitStr(lit.Str)
	case token.LitOwnedStr:
		return v.VisitString(lit.Str)
	case token.LitBorrowedBytes:
		return v.VisitBytes(lit.Bytes)
	case token.LitOwnedBytes:
		return v.VisitByteBuf(lit.Bytes)
	default:
		return nil, kerr.New(kerr.UnexpectedToken, posOf(tok), "unrecognized literal kind")
	}
}

// parseOption implements the '?' row of the dispatch table: '?' has already
// been consumed.
func (p *Parser) parseOption(v Visitor) (any, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind.IsDelimiter() || tok.Kind == token.EOF {
		return v.VisitNone()
	}
	return v.VisitSome(p)
}

// parseMayary implements the '%' row of the dispatch table: '%' has already
// been consumed.
func (p *Parser) parseMayary(v Visitor) (any, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind.IsDelimiter() || tok.Kind == token.EOF {
		return v.VisitSeq(emptySeqAccess{})
	}
	return v.VisitNewtypeStruct(p)
}

func (p *Parser) parseSeqBody(v Visitor) (any, error) {
	return v.VisitSeq(&seqAccessor{p: p, closer: token.RBrack, strict: false})
}

func (p *Parser) parseMapBody(v Visitor) (any, error) {
	return v.VisitMap(&mapAccessor{p: p})
}

// parseTupleBody drives a tuple's comma-separated element list, per §4.2.3's
// strict/docile mode rules. firstElemFn, when non-nil, supplies the first
// element (used for the rule-3/rule-4 embedded-enum forms); it receives
// whatever element-visitor the caller's VisitSeq implementation passes to
// NextElement for that slot.
func (p *Parser) parseTupleBody(v Visitor, closer token.Kind, strict bool, firstElemFn func(Visitor) (any, error)) (any, error) {
	return v.VisitSeq(&seqAccessor{p: p, closer: closer, strict: strict, firstElemFn: firstElemFn})
}

// parseEnum implements the `Ident(name)` row of the dispatch table and the
// enum-keyed map entry form: an identifier (optionally followed by
// "::Variant") has already been consumed as name; resolves to variant V
// (discarding the preceding type name) or to name itself when no "::"
// follows.
func (p *Parser) parseEnum(name string, v Visitor) (any, error) {
	variant := name
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.PathSep {
		p.advance()
		variantTok, err := p.advance()
		if err != nil {
			return nil, err
		}
		if variantTok.Kind != token.Ident {
			return nil, kerr.New(kerr.ExpectedVariant, posOf(variantTok), "expected variant name after '::'")
		}
		variant = variantTok.Text
	}
	return v.VisitEnum(&enumAccessor{p: p, variant: variant})
}

// parseParen implements §4.2.3 in full: '(' has already been consumed.
func (p *Parser) parseParen(v Visitor) (any, error) {
	t1, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch t1.Kind {
	case token.RParen:
		// Rule 1: empty head.
		p.advance()
		return p.parseAfterHead(false, v)

	case token.Ident:
		nameTok, err := p.advance()
		if err != nil {
			return nil, err
		}
		t2, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch t2.Kind {
		case token.RParen:
			// Rule 2: named head (the name is discarded).
			p.advance()
			return p.parseAfterHead(true, v)
		case token.PathSep:
			// Rule 3: "(N::V, ...)" -- enum embedded as the first element.
			p.advance()
			variantTok, err := p.advance()
			if err != nil {
				return nil, err
			}
			if variantTok.Kind != token.Ident {
				return nil, kerr.New(kerr.ExpectedVariant, posOf(variantTok), "expected variant name after '::'")
			}
			variant := variantTok.Text
			return p.parseTupleBody(v, token.RParen, true, func(ev Visitor) (any, error) {
				return ev.VisitEnum(&enumAccessor{p: p, variant: variant})
			})
		default:
			// Rule 4: "(V, ...)" -- variant-first tuple.
			variant := nameTok.Text
			return p.parseTupleBody(v, token.RParen, true, func(ev Visitor) (any, error) {
				return ev.VisitEnum(&enumAccessor{p: p, variant: variant})
			})
		}

	default:
		// No rule matched: the already-open '(' is this tuple's own opener.
		return p.parseTupleBody(v, token.RParen, true, nil)
	}
}

// parseAfterHead implements step 4/5 of §4.2.3, once a (possibly empty)
// head has been fully consumed (including its closing ')').
func (p *Parser) parseAfterHead(named bool, v Visitor) (any, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.Kind == token.EOF:
		return v.VisitUnit()
	case tok.Kind == token.LParen:
		p.advance()
		return p.parseTupleBody(v, token.RParen, false, nil) // docile
	case tok.Kind == token.LBrace:
		p.advance()
		return p.parseMapBody(v)
	case tok.Kind == token.Percent:
		p.advance()
		return p.parseMayary(v)
	case tok.Kind.IsDelimiter():
		// Leave the delimiter for the enclosing accessor (comma, closing
		// bracket, fat arrow, ...); it doesn't belong to this unit.
		return v.VisitUnit()
	case !named:
		// An empty head followed by a token with no recognized continuation
		// (a literal, an identifier, '[', ...; e.g. "() 1") falls back to a
		// bare strict tuple body. The head's own ')' was consumed before
		// this call, so this branch sees the token after it.
		return p.parseTupleBody(v, token.RParen, true, nil)
	default:
		return nil, kerr.New(kerr.ExpectedNonUnitStruct, posOf(tok), "expected a value form after a named head")
	}
}

//------------------------------------------------------------------------------
// Accessors

// emptySeqAccess is the zero-element producer used for nullary tuples
// (mayary/tuple-variant forms with no payload).
type emptySeqAccess struct{}

func (emptySeqAccess) SizeHint() (int, bool)                             { return 0, true }
func (emptySeqAccess) NextElement(Visitor) (any, bool, error)            { return nil, false, nil }

// seqAccessor drives both plain sequence/tuple bodies (strict=false,
// firstElemFn=nil) and the stricter tuple-body rules of §4.2.3
// (single-element tuples require a trailing comma; an empty body is an
// error) when strict is true. firstElemFn, when set, supplies the value for
// slot zero instead of a plain recursive parse (used by the rule-3/4
// embedded-enum tuple forms).
type seqAccessor struct {
	p           *Parser
	closer      token.Kind
	strict      bool
	firstElemFn func(Visitor) (any, error)

	count int
	done  bool
}

func (a *seqAccessor) SizeHint() (int, bool) { return 0, false }

func (a *seqAccessor) NextElement(v Visitor) (any, bool, error) {
	if a.done {
		return nil, false, nil
	}
	tok, err := a.p.peek()
	if err != nil {
		return nil, false, err
	}

	if a.count == 0 && a.firstElemFn == nil {
		if tok.Kind == a.closer {
			if a.strict {
				return nil, false, kerr.New(kerr.ExpectedComma, posOf(tok), "tuple body may not be empty")
			}
			a.p.advance()
			a.done = true
			return nil, false, nil
		}
	} else if a.count > 0 {
		switch tok.Kind {
		case a.closer:
			if a.strict && a.count == 1 {
				return nil, false, kerr.New(kerr.ExpectedComma, posOf(tok), "single-element tuple requires a trailing comma")
			}
			a.p.advance()
			a.done = true
			return nil, false, nil
		case token.Comma:
			a.p.advance()
			tok, err = a.p.peek()
			if err != nil {
				return nil, false, err
			}
			if tok.Kind == a.closer {
				a.p.advance()
				a.done = true
				return nil, false, nil
			}
		default:
			return nil, false, kerr.New(kerr.ExpectedComma, posOf(tok), "expected ',' or closing delimiter")
		}
	}

	var val any
	if a.count == 0 && a.firstElemFn != nil {
		val, err = a.firstElemFn(v)
	} else {
		val, err = a.p.DeserializeAny(v)
	}
	if err != nil {
		return nil, false, err
	}
	a.count++
	return val, true, nil
}

// mapEntryKind records which of §4.2.2's three entry grammars produced the
// most recently read key, so NextValue knows how to read the value half.
type mapEntryKind int

const (
	entryStructField mapEntryKind = iota
	entryEnumKeyed
	entryArbitrary
)

// mapAccessor drives a `{ ... }` body per §4.2.2: each entry is one of a
// struct field (`ident: value`), an enum-keyed entry
// (`ident ("::" ident)? "=>" value`), or an arbitrary-keyed entry
// (`expr "=>" value`).
type mapAccessor struct {
	p       *Parser
	curKind mapEntryKind
	count   int
	done    bool
}

func (a *mapAccessor) NextKey(v Visitor) (any, bool, error) {
	if a.done {
		return nil, false, nil
	}
	tok, err := a.p.peek()
	if err != nil {
		return nil, false, err
	}

	if a.count == 0 {
		if tok.Kind == token.RBrace {
			a.p.advance()
			a.done = true
			return nil, false, nil
		}
	} else {
		switch tok.Kind {
		case token.RBrace:
			a.p.advance()
			a.done = true
			return nil, false, nil
		case token.Comma:
			a.p.advance()
			tok, err = a.p.peek()
			if err != nil {
				return nil, false, err
			}
			if tok.Kind == token.RBrace {
				a.p.advance()
				a.done = true
				return nil, false, nil
			}
		default:
			return nil, false, kerr.New(kerr.ExpectedComma, posOf(tok), "expected ',' or '}'")
		}
	}
	a.count++

	if tok.Kind == token.Ident {
		identTok, err := a.p.advance()
		if err != nil {
			return nil, false, err
		}
		next, err := a.p.peek()
		if err != nil {
			return nil, false, err
		}
		if next.Kind == token.Colon {
			a.p.advance()
			a.curKind = entryStructField
			val, err := v.VisitString(identTok.Text)
			return val, true, err
		}
		a.curKind = entryEnumKeyed
		val, err := a.p.parseEnum(identTok.Text, v)
		return val, true, err
	}

	a.curKind = entryArbitrary
	val, err := a.p.DeserializeAny(v)
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (a *mapAccessor) NextValue(v Visitor) (any, error) {
	switch a.curKind {
	case entryStructField:
		return a.p.DeserializeAny(v)
	case entryEnumKeyed, entryArbitrary:
		tok, err := a.p.advance()
		if err != nil {
			return nil, err
		}
		if tok.Kind != token.FatArrow {
			return nil, kerr.New(kerr.ExpectedFatArrow, posOf(tok), "expected '=>'")
		}
		return a.p.DeserializeAny(v)
	default:
		panic("unreachable mapEntryKind")
	}
}

// enumAccessor is handed to VisitEnum once an identifier (and optional
// "::Variant") has been consumed; it also implements VariantAccess itself
// since the two roles never need independent state.
type enumAccessor struct {
	p       *Parser
	variant string
}

func (e *enumAccessor) Variant() (string, VariantAccess, error) {
	return e.variant, e, nil
}

func (e *enumAccessor) UnitVariant() error {
	tok, err := e.p.peek()
	if err != nil {
		return err
	}
	if tok.Kind.IsDelimiter() || tok.Kind == token.EOF {
		return nil
	}
	return kerr.New(kerr.ExpectedUnitVariant, posOf(tok), "expected unit variant")
}

func (e *enumAccessor) NewtypeVariant(v Visitor) (any, error) {
	tok, err := e.p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.Percent:
		e.p.advance()
		return e.p.DeserializeAny(v)
	case token.LParen:
		e.p.advance()
		val, err := e.p.DeserializeAny(v)
		if err != nil {
			return nil, err
		}
		closeTok, err := e.p.advance()
		if err != nil {
			return nil, err
		}
		if closeTok.Kind == token.Comma {
			closeTok, err = e.p.advance()
			if err != nil {
				return nil, err
			}
		}
		if closeTok.Kind != token.RParen {
			return nil, kerr.New(kerr.ExpectedNewtypeVariant, posOf(closeTok), "expected ')' closing newtype variant")
		}
		return val, nil
	default:
		return nil, kerr.New(kerr.ExpectedNewtypeVariant, posOf(tok), "expected '%value' or '(value)' newtype variant")
	}
}

func (e *enumAccessor) TupleVariant(v Visitor) (any, error) {
	tok, err := e.p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.Percent:
		e.p.advance()
		return v.VisitSeq(emptySeqAccess{})
	case token.LParen:
		e.p.advance()
		return e.p.parseTupleBody(v, token.RParen, false, nil)
	default:
		return nil, kerr.New(kerr.ExpectedTupleVariant, posOf(tok), "expected '%' or '(' tuple variant")
	}
}

func (e *enumAccessor) StructVariant(v Visitor) (any, error) {
	tok, err := e.p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != token.LBrace {
		return nil, kerr.New(kerr.ExpectedStructVariant, posOf(tok), "expected '{' struct variant")
	}
	e.p.advance()
	return e.p.parseMapBody(v)
}
