// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package tenscript

import (
	"fmt"
	"strconv"
	"strings"
)

// SexpKind discriminates the untyped s-expression tree produced by the
// second compilation pass.
type SexpKind uint8

const (
	SexpList SexpKind = iota
	SexpIdent
	SexpAtom
	SexpString
	SexpInteger
	SexpFloat
	SexpPercent
)

// Sexp is one node of the parenthesized tree: a list of sub-terms, or a
// scalar leaf. Exactly one of its fields is meaningful, chosen by Kind.
type Sexp struct {
	Kind    SexpKind
	Terms   []Sexp // SexpList
	Ident   string // SexpIdent
	Atom    string // SexpAtom
	Str     string // SexpString
	Integer int64  // SexpInteger
	Float   float64
	Percent float64
}

func (s Sexp) String() string {
	switch s.Kind {
	case SexpList:
		var b strings.Builder
		b.WriteByte('(')
		for i, term := range s.Terms {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(term.String())
		}
		b.WriteByte(')')
		return b.String()
	case SexpIdent:
		return s.Ident
	case SexpAtom:
		return ":" + s.Atom
	case SexpString:
		// The scanner has no escapes and ends a string at its first '"',
		// so the raw text between quotes rescans unchanged.
		return `"` + s.Str + `"`
	case SexpPercent:
		return strconv.FormatFloat(s.Percent, 'f', -1, 64) + "%"
	case SexpFloat:
		// Keep a decimal point so a whole float does not rescan as an integer.
		text := strconv.FormatFloat(s.Float, 'f', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
		return text
	case SexpInteger:
		return strconv.FormatInt(s.Integer, 10)
	default:
		return ""
	}
}

// SexpErrorKind enumerates the ways parsing a token stream into a Sexp
// tree can fail.
type SexpErrorKind uint8

const (
	MatchExhausted SexpErrorKind = iota
	ConsumeFailed
)

// SexpParseError reports a tree-parse failure at the offending token.
type SexpParseError struct {
	Kind     SexpErrorKind
	Expected string // set for ConsumeFailed
	Token    ScannedToken
}

func (e *SexpParseError) Error() string {
	switch e.Kind {
	case ConsumeFailed:
		return fmt.Sprintf("expected %s at %s, found %s", e.Expected, e.Token.Loc, e.Token.Tok)
	default:
		return fmt.Sprintf("unexpected token %s at %s", e.Token.Tok, e.Token.Loc)
	}
}

// ParseSexp scans source and parses it into a single Sexp tree.
func ParseSexp(source string) (Sexp, error) {
	tokens, err := Scan(source)
	if err != nil {
		return Sexp{}, err
	}
	return ParseSexpTokens(tokens)
}

// ParseSexpTokens parses an already-scanned token stream into a Sexp tree.
func ParseSexpTokens(tokens []ScannedToken) (Sexp, error) {
	p := &sexpParser{tokens: tokens}
	sexp, err := p.sexp()
	if err != nil {
		err.Token = p.currentScanned()
		return Sexp{}, err
	}
	return sexp, nil
}

type sexpParser struct {
	tokens []ScannedToken
	index  int
}

func (p *sexpParser) currentScanned() ScannedToken { return p.tokens[p.index] }
func (p *sexpParser) current() Token               { return p.currentScanned().Tok }
func (p *sexpParser) increment()                   { p.index++ }

func (p *sexpParser) sexp() (Sexp, *SexpParseError) {
	tok := p.current()
	p.increment()
	switch tok.Kind {
	case TokParen:
		if tok.Paren == '(' {
			return p.list()
		}
		return Sexp{}, &SexpParseError{Kind: MatchExhausted}
	case TokIdent:
		return Sexp{Kind: SexpIdent, Ident: tok.Ident}, nil
	case TokFloat:
		return Sexp{Kind: SexpFloat, Float: tok.Float}, nil
	case TokInteger:
		return Sexp{Kind: SexpInteger, Integer: tok.Integer}, nil
	case TokPercent:
		return Sexp{Kind: SexpPercent, Percent: tok.Float}, nil
	case TokAtom:
		return Sexp{Kind: SexpAtom, Atom: tok.Ident}, nil
	case TokString:
		return Sexp{Kind: SexpString, Str: tok.Ident}, nil
	default:
		return Sexp{}, &SexpParseError{Kind: MatchExhausted}
	}
}

func (p *sexpParser) list() (Sexp, *SexpParseError) {
	var terms []Sexp
	for {
		tok := p.current()
		if tok.Kind == TokEOF || (tok.Kind == TokParen && tok.Paren == ')') {
			break
		}
		term, err := p.sexp()
		if err != nil {
			return Sexp{}, err
		}
		terms = append(terms, term)
	}
	tok := p.current()
	if !(tok.Kind == TokParen && tok.Paren == ')') {
		return Sexp{}, &SexpParseError{Kind: ConsumeFailed, Expected: "right paren"}
	}
	p.increment()
	return Sexp{Kind: SexpList, Terms: terms}, nil
}
