package expression

// node is an element of a parsed expression tree.
type node interface {
	position() int
}

type numberNode struct {
	pos int
	val value
}

type identNode struct {
	pos  int
	name string
}

type unaryNode struct {
	pos int
	op  string
	x   node
}

type binaryNode struct {
	pos  int
	op   string
	l, r node
}

type ternaryNode struct {
	pos             int
	cond, then, els node
}

type callNode struct {
	pos  int
	fn   string
	args []node
}

func (n *numberNode) position() int  { return n.pos }
func (n *identNode) position() int   { return n.pos }
func (n *unaryNode) position() int   { return n.pos }
func (n *binaryNode) position() int  { return n.pos }
func (n *ternaryNode) position() int { return n.pos }
func (n *callNode) position() int    { return n.pos }

// Binary operator precedence, higher binds tighter. Follows SystemVerilog.
var precedence = map[string]int{
	"||":  1,
	"&&":  2,
	"|":   3,
	"^":   4,
	"&":   5,
	"==":  6,
	"!=":  6,
	"===": 6,
	"!==": 6,
	"<":   7,
	"<=":  7,
	">":   7,
	">=":  7,
	"<<":  8,
	">>":  8,
	"+":   9,
	"-":   9,
	"*":   10,
	"/":   10,
	"%":   10,
	"**":  11,
}

type parser struct {
	src    string
	tokens []token
	pos    int
	depth  int // Open parentheses
}

// parse builds the expression tree for src.
func parse(src string) (node, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, tokens: tokens}
	if p.peek().kind == tokEOF {
		return nil, &Error{Kind: ErrSyntax, Expr: src, Pos: -1, Detail: ""}
	}
	n, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		if t.kind == tokRParen {
			return nil, p.fail(ErrUnbalancedParentheses, t)
		}
		return nil, p.fail(ErrSyntax, t)
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) fail(kind ErrorKind, t token) error {
	if t.kind == tokEOF {
		if p.depth > 0 {
			kind = ErrUnbalancedParentheses
		}
		return &Error{Kind: kind, Expr: p.src, Pos: t.pos, Detail: "end of expression"}
	}
	return &Error{Kind: kind, Expr: p.src, Pos: t.pos, Detail: t.text}
}

func (p *parser) ternary() (node, error) {
	cond, err := p.binary(1)
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokQuestion {
		return cond, nil
	}
	q := p.advance()
	then, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokColon {
		return nil, p.fail(ErrSyntax, t)
	}
	p.advance()
	els, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return &ternaryNode{pos: q.pos, cond: cond, then: then, els: els}, nil
}

// binary parses operators of at least the given precedence by precedence climbing.
func (p *parser) binary(min int) (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOperator {
			return left, nil
		}
		prec, ok := precedence[t.text]
		if !ok || prec < min {
			return left, nil
		}
		p.advance()
		right, err := p.binary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &binaryNode{pos: t.pos, op: t.text, l: left, r: right}
	}
}

func (p *parser) unary() (node, error) {
	t := p.peek()
	if t.kind == tokOperator {
		switch t.text {
		case "-", "+", "~", "!":
			p.advance()
			x, err := p.unary()
			if err != nil {
				return nil, err
			}
			return &unaryNode{pos: t.pos, op: t.text, x: x}, nil
		}
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	t := p.advance()
	switch t.kind {
	case tokNumber:
		return &numberNode{pos: t.pos, val: t.value}, nil
	case tokIdent:
		switch t.text {
		case "true":
			return &numberNode{pos: t.pos, val: valueOf(1)}, nil
		case "false":
			return &numberNode{pos: t.pos, val: valueOf(0)}, nil
		}
		return &identNode{pos: t.pos, name: t.text}, nil
	case tokSysFunc:
		return p.call(t)
	case tokLParen:
		p.depth++
		n, err := p.ternary()
		if err != nil {
			return nil, err
		}
		if c := p.peek(); c.kind != tokRParen {
			return nil, p.fail(ErrUnbalancedParentheses, c)
		}
		p.advance()
		p.depth--
		return n, nil
	case tokRParen:
		if p.depth == 0 {
			return nil, p.fail(ErrUnbalancedParentheses, t)
		}
	}
	return nil, p.fail(ErrSyntax, t)
}

func (p *parser) call(fn token) (node, error) {
	if t := p.advance(); t.kind != tokLParen {
		return nil, p.fail(ErrSyntax, t)
	}
	p.depth++
	var args []node
	for {
		arg, err := p.ternary()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		t := p.peek()
		if t.kind == tokComma {
			p.advance()
			continue
		}
		if t.kind != tokRParen {
			return nil, p.fail(ErrUnbalancedParentheses, t)
		}
		p.advance()
		p.depth--
		break
	}
	if len(args) != sysFuncs[fn.text] {
		return nil, &Error{Kind: ErrSyntax, Expr: p.src, Pos: fn.pos, Detail: fn.text}
	}
	return &callNode{pos: fn.pos, fn: fn.text, args: args}, nil
}

// walkIdents calls fn for every identifier in n, left to right.
func walkIdents(n node, fn func(*identNode)) {
	switch n := n.(type) {
	case *identNode:
		fn(n)
	case *unaryNode:
		walkIdents(n.x, fn)
	case *binaryNode:
		walkIdents(n.l, fn)
		walkIdents(n.r, fn)
	case *ternaryNode:
		walkIdents(n.cond, fn)
		walkIdents(n.then, fn)
		walkIdents(n.els, fn)
	case *callNode:
		for _, a := range n.args {
			walkIdents(a, fn)
		}
	}
}
