package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/smf/log"
	"github.com/ardnew/smf/pkg"
)

// Option configures a parse.
type Option func(*config)

type config struct {
	logger log.Logger
	file   string
}

// WithLogger sets the logger used to trace parsing.
// The zero value [log.Logger] discards everything.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithFile sets the source name reported in parse errors.
func WithFile(name string) Option {
	return func(c *config) { c.file = name }
}

// ParseReader parses a material tree from an io.Reader.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses a material tree from a string.
func ParseString(ctx context.Context, s string, opts ...Option) (*Node, error) {
	var cfg config

	for _, opt := range opts {
		opt(&cfg)
	}

	p := &parser{
		input:  []byte(s),
		pos:    0,
		line:   1,
		col:    1,
		file:   cfg.file,
		logger: cfg.logger,
		ctx:    ctx,
	}

	root, err := p.parseMaterial()
	if err != nil {
		p.logger.DebugContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("item_count", len(root.Children)))

	return root, nil
}

// parser holds the parser state.
type parser struct {
	input  []byte
	pos    int
	line   int
	col    int
	file   string
	logger log.Logger
	ctx    context.Context //nolint:containedctx
}

// parseMaterial parses: Identifier? '{' Item* '}' EOF.
func (p *parser) parseMaterial() (*Node, error) {
	p.skipWhitespaceAndComments()

	root := &Node{Kind: KindMaterial, Pos: p.position()}
	shader := &Node{Kind: KindShader, Pos: p.position()}

	if isIdentifierStart(p.peek()) {
		id := p.parseIdentifier()
		shader.Text = id.Text
		shader.Children = []*Node{id}

		p.skipWhitespaceAndComments()

		if !p.expect('{') {
			return nil, newParseError(p, "{")
		}
	} else if !p.expect('{') {
		return nil, newParseError(p, "identifier", "{")
	}

	root.Children = append(root.Children, shader)

	for {
		p.skipWhitespaceAndComments()

		if p.eof() {
			return nil, newParseError(p, "}")
		}

		if p.expect('}') {
			break
		}

		// Stray separators between items are harmless
		if p.expect(';') {
			continue
		}

		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}

		p.logger.TraceContext(p.ctx, "parse item",
			slog.String("kind", item.Kind.String()),
			slog.String("name", item.Text),
			slog.String("pos", item.Pos.String()))

		root.Children = append(root.Children, item)
	}

	p.skipWhitespaceAndComments()

	if !p.eof() {
		return nil, newParseError(p, "EOF")
	}

	return root, nil
}

// parseItem parses: VarDecl | Block.
func (p *parser) parseItem() (*Node, error) {
	pos := p.position()

	if !isIdentifierStart(p.peek()) {
		return nil, newParseError(p, "var", "identifier", "}")
	}

	id := p.parseIdentifier()

	p.skipWhitespaceAndComments()

	// A block may itself be named "var"
	if id.Text == "var" && p.peek() != '{' {
		return p.parseVarDecl(pos)
	}

	return p.parseBlock(pos, id)
}

// parseVarDecl parses the remainder of: 'var' Identifier '=' Value ';'.
func (p *parser) parseVarDecl(pos Position) (*Node, error) {
	if !isIdentifierStart(p.peek()) {
		return nil, newParseError(p, "identifier")
	}

	name := p.parseIdentifier()

	p.skipWhitespaceAndComments()

	if !p.expect('=') {
		return nil, newParseError(p, "=")
	}

	p.skipWhitespaceAndComments()

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	p.skipWhitespaceAndComments()

	if !p.expect(';') {
		return nil, newParseError(p, ";")
	}

	return &Node{
		Kind:     KindVariable,
		Text:     name.Text,
		Pos:      pos,
		Children: []*Node{name, value},
	}, nil
}

// parseBlock parses the remainder of: Identifier '{' Proxy* '}'.
func (p *parser) parseBlock(pos Position, id *Node) (*Node, error) {
	kind := KindBlock

	switch id.Text {
	case "SetupProxies":
		kind = KindSetupProxies
	case "RenderProxies":
		kind = KindRenderProxies
	}

	if !p.expect('{') {
		return nil, newParseError(p, "{")
	}

	block := &Node{Kind: kind, Text: id.Text, Pos: pos}

	for {
		p.skipWhitespaceAndComments()

		if p.eof() {
			return nil, newParseError(p, "}")
		}

		if p.expect('}') {
			break
		}

		if p.expect(';') {
			continue
		}

		proxy, err := p.parseProxy()
		if err != nil {
			return nil, err
		}

		block.Children = append(block.Children, proxy)
	}

	return block, nil
}

// parseProxy parses: Identifier '{' Param* '}'.
func (p *parser) parseProxy() (*Node, error) {
	pos := p.position()

	if !isIdentifierStart(p.peek()) {
		return nil, newParseError(p, "identifier", "}")
	}

	id := p.parseIdentifier()

	p.skipWhitespaceAndComments()

	if !p.expect('{') {
		return nil, newParseError(p, "{")
	}

	proxy := &Node{
		Kind:     KindProxy,
		Text:     id.Text,
		Pos:      pos,
		Children: []*Node{id},
	}

	for {
		p.skipWhitespaceAndComments()

		if p.eof() {
			return nil, newParseError(p, "}")
		}

		if p.expect('}') {
			break
		}

		if p.expect(';') {
			continue
		}

		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}

		proxy.Children = append(proxy.Children, param)
	}

	return proxy, nil
}

// parseParam parses: Identifier '=' Reference ';'.
func (p *parser) parseParam() (*Node, error) {
	pos := p.position()

	if !isIdentifierStart(p.peek()) {
		return nil, newParseError(p, "identifier", "}")
	}

	id := p.parseIdentifier()

	p.skipWhitespaceAndComments()

	if !p.expect('=') {
		return nil, newParseError(p, "=")
	}

	p.skipWhitespaceAndComments()

	ref, err := p.parseReference()
	if err != nil {
		return nil, err
	}

	p.skipWhitespaceAndComments()

	if !p.expect(';') {
		return nil, newParseError(p, ";")
	}

	return &Node{
		Kind:     KindProxyParameter,
		Text:     id.Text,
		Pos:      pos,
		Children: []*Node{id, ref},
	}, nil
}

// parseReference parses: Identifier '[' Digits ']' | Identifier | Value.
func (p *parser) parseReference() (*Node, error) {
	pos := p.position()

	if !isIdentifierStart(p.peek()) {
		return p.parseValue()
	}

	id := p.parseIdentifier()

	p.skipWhitespaceAndComments()

	if !p.expect('[') {
		return &Node{
			Kind:     KindVariableReference,
			Text:     id.Text,
			Pos:      pos,
			Children: []*Node{id},
		}, nil
	}

	p.skipWhitespaceAndComments()

	idxPos := p.position()

	digits := p.scanDigits()
	if digits == "" {
		return nil, newParseError(p, "digit")
	}

	p.skipWhitespaceAndComments()

	if !p.expect(']') {
		return nil, newParseError(p, "]")
	}

	return &Node{
		Kind: KindArrayIndexReference,
		Text: string(p.input[pos.Offset:p.pos]),
		Pos:  pos,
		Children: []*Node{
			id,
			{Kind: KindInteger, Text: digits, Pos: idxPos},
		},
	}, nil
}

// parseValue parses: String | Number | Array.
func (p *parser) parseValue() (*Node, error) {
	pos := p.position()

	var (
		lit *Node
		err error
	)

	switch ch := p.peek(); {
	case ch == '[':
		lit, err = p.parseArray()
	case ch == '"':
		lit, err = p.parseString()
	case isNumberStart(ch):
		lit, err = p.parseNumber()
	default:
		return nil, newParseError(p, "string", "number", "[")
	}

	if err != nil {
		return nil, err
	}

	return &Node{
		Kind:     KindValue,
		Text:     lit.Text,
		Pos:      pos,
		Children: []*Node{lit},
	}, nil
}

// parseArray parses: '[' (Literal (',' Literal)*)? ']'.
func (p *parser) parseArray() (*Node, error) {
	pos := p.position()
	p.advance() // skip '['

	array := &Node{Kind: KindArray, Pos: pos}

	p.skipWhitespaceAndComments()

	if !p.expect(']') {
		for {
			p.skipWhitespaceAndComments()

			var (
				elem *Node
				err  error
			)

			switch ch := p.peek(); {
			case ch == '"':
				elem, err = p.parseString()
			case isNumberStart(ch):
				elem, err = p.parseNumber()
			default:
				return nil, newParseError(p, "string", "number")
			}

			if err != nil {
				return nil, err
			}

			array.Children = append(array.Children, elem)

			p.skipWhitespaceAndComments()

			if p.expect(',') {
				continue
			}

			if p.expect(']') {
				break
			}

			return nil, newParseError(p, ",", "]")
		}
	}

	array.Text = string(p.input[pos.Offset:p.pos])

	return array, nil
}

// parseString parses a double-quoted string literal, quotes included.
func (p *parser) parseString() (*Node, error) {
	pos := p.position()
	p.advance() // skip opening quote

	for {
		if p.eof() || p.peek() == '\n' {
			return nil, newParseError(p, `"`)
		}

		ch := p.peek()
		p.advance()

		if ch == '\\' {
			if !p.eof() {
				p.advance() // skip escaped char
			}

			continue
		}

		if ch == '"' {
			break
		}
	}

	return &Node{
		Kind: KindString,
		Text: string(p.input[pos.Offset:p.pos]),
		Pos:  pos,
	}, nil
}

// parseNumber parses a numeric literal into a [KindNumber] wrapper around
// the node of its lexical class.
func (p *parser) parseNumber() (*Node, error) {
	pos := p.position()

	signed := p.peek() == '+' || p.peek() == '-'
	if signed {
		p.advance()
	}

	if p.scanDigits() == "" {
		return nil, newParseError(p, "digit")
	}

	nonIntegral := false

	if p.expect('.') {
		if p.scanDigits() == "" {
			return nil, newParseError(p, "digit")
		}

		nonIntegral = true
	}

	if p.peek() == 'e' || p.peek() == 'E' {
		p.advance()

		if p.peek() == '+' || p.peek() == '-' {
			p.advance()
		}

		if p.scanDigits() == "" {
			return nil, newParseError(p, "digit")
		}

		nonIntegral = true
	}

	var kind Kind

	switch {
	case p.expect('f'):
		kind = KindFloat
	case p.expect('d'):
		kind = KindDouble
	case nonIntegral && signed:
		kind = KindSignedNonIntegral
	case nonIntegral:
		kind = KindNonIntegral
	case signed:
		kind = KindSignedInteger
	default:
		kind = KindInteger
	}

	text := string(p.input[pos.Offset:p.pos])

	return &Node{
		Kind:     KindNumber,
		Text:     text,
		Pos:      pos,
		Children: []*Node{{Kind: kind, Text: text, Pos: pos}},
	}, nil
}

// parseIdentifier parses an identifier token.
// The caller must ensure the current rune satisfies isIdentifierStart.
func (p *parser) parseIdentifier() *Node {
	pos := p.position()

	p.advance()

	for !p.eof() && isIdentifierContinue(p.peek()) {
		p.advance()
	}

	return &Node{
		Kind: KindIdentifier,
		Text: string(p.input[pos.Offset:p.pos]),
		Pos:  pos,
	}
}

func (p *parser) scanDigits() string {
	start := p.pos

	for !p.eof() && isDigit(p.peek()) {
		p.advance()
	}

	return string(p.input[start:p.pos])
}

// Helper methods

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

func (p *parser) peekN(n int) string {
	if p.pos+n > len(p.input) {
		return string(p.input[p.pos:])
	}

	return string(p.input[p.pos : p.pos+n])
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) expect(ch rune) bool {
	if !p.eof() && p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}

// found describes the rune at the current position for error messages.
func (p *parser) found() string {
	if p.eof() {
		return "EOF"
	}

	return strconv.QuoteRune(p.peek())
}

func (p *parser) skipWhitespace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.advance()
	}
}

func (p *parser) skipWhitespaceAndComments() {
	for {
		p.skipWhitespace()

		if p.eof() {
			return
		}

		// Line comment
		if p.peekN(2) == "//" {
			p.skipLineComment()

			continue
		}

		// Block comment
		if p.peekN(2) == "/*" {
			p.skipBlockComment()

			continue
		}

		break
	}
}

func (p *parser) skipLineComment() {
	for !p.eof() && p.peek() != '\n' {
		p.advance()
	}

	if !p.eof() {
		p.advance() // skip '\n'
	}
}

func (p *parser) skipBlockComment() {
	p.advance() // skip '/'
	p.advance() // skip '*'

	for !p.eof() {
		if p.peekN(2) == "*/" {
			p.advance() // skip '*'
			p.advance() // skip '/'

			return
		}

		p.advance()
	}
}

// Character classification

func isIdentifierStart(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
	) || r == '_' || r == '$' || r == '%'
}

func isIdentifierContinue(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
		unicode.Mn, // Mark, Nonspacing
		unicode.Mc, // Mark, Spacing Combining
		unicode.Nd, // Number, Decimal Digit
		unicode.Pc, // Punctuation, Connector
		unicode.Other_ID_Continue,
	)
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isNumberStart(r rune) bool {
	return isDigit(r) || r == '+' || r == '-'
}
