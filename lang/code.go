package lang

import (
	"iter"
	"slices"
)

// Code is a node of a parsed expression tree.
//
// The set of node types is closed: [Literal], [GetVariable],
// [DefineVariable], [SetVariable], [BinaryOp], [UnaryOp], [Conditional],
// [FunctionDefinition], [FunctionCall], [PrintAndReturn], and [NoOp].
// Each node owns its children.
type Code interface {
	// Evaluable reports whether the node can be passed to [Environment.Eval].
	Evaluable() bool
	// IsCall reports whether the node is a [FunctionCall].
	IsCall() bool
	// Name returns the variable or function name the node binds or refers
	// to, or the empty string.
	Name() string

	code()
}

// Literal is a number, a boolean, or a named constant.
type Literal struct {
	Value  Value
	Source string // lexeme as written
}

// GetVariable reads a variable.
type GetVariable struct {
	Ident string
}

// DefineVariable binds a new variable in the current frame.
type DefineVariable struct {
	Ident string
	Expr  Code
}

// SetVariable reassigns a bound variable in the current frame.
type SetVariable struct {
	Ident string
	Expr  Code
}

// BinaryOp applies a two-operand operator.
type BinaryOp struct {
	Op          string
	Left, Right Code

	fn binaryFunc
}

// UnaryOp applies a one-operand operator.
type UnaryOp struct {
	Op      string
	Operand Code

	fn unaryFunc
}

// Conditional evaluates Then or Else depending on Cond.
// A nil Else makes the one-armed form, which yields false when untaken.
type Conditional struct {
	Cond, Then, Else Code
}

// FunctionDefinition installs a function after checking it for recursion.
type FunctionDefinition struct {
	Ident  string
	Params []string
	Body   []Code
}

// FunctionCall invokes a function from the shared table.
type FunctionCall struct {
	Ident string
	Args  []Code
}

// PrintAndReturn writes the value of Expr to the environment output and
// yields it unchanged.
type PrintAndReturn struct {
	Expr Code
}

// NoOp stands in for a function definition still waiting for its end
// keyword. It cannot be evaluated.
type NoOp struct{}

// NewBinaryOp returns the node for operator op applied to left and right.
func NewBinaryOp(op string, left, right Code) (*BinaryOp, error) {
	fn, ok := binaryFuncs[op]
	if !ok {
		return nil, ErrSyntax.Errorf("Unknown binary op - %s", op)
	}

	return &BinaryOp{Op: op, Left: left, Right: right, fn: fn}, nil
}

// NewUnaryOp returns the node for operator op applied to operand.
func NewUnaryOp(op string, operand Code) (*UnaryOp, error) {
	fn, ok := unaryFuncs[op]
	if !ok {
		return nil, ErrSyntax.Errorf("Unknown unary op - %s", op)
	}

	return &UnaryOp{Op: op, Operand: operand, fn: fn}, nil
}

func (*Literal) Evaluable() bool            { return true }
func (*GetVariable) Evaluable() bool        { return true }
func (*DefineVariable) Evaluable() bool     { return true }
func (*SetVariable) Evaluable() bool        { return true }
func (*BinaryOp) Evaluable() bool           { return true }
func (*UnaryOp) Evaluable() bool            { return true }
func (*Conditional) Evaluable() bool        { return true }
func (*FunctionDefinition) Evaluable() bool { return true }
func (*FunctionCall) Evaluable() bool       { return true }
func (*PrintAndReturn) Evaluable() bool     { return true }
func (NoOp) Evaluable() bool                { return false }

func (*Literal) IsCall() bool            { return false }
func (*GetVariable) IsCall() bool        { return false }
func (*DefineVariable) IsCall() bool     { return false }
func (*SetVariable) IsCall() bool        { return false }
func (*BinaryOp) IsCall() bool           { return false }
func (*UnaryOp) IsCall() bool            { return false }
func (*Conditional) IsCall() bool        { return false }
func (*FunctionDefinition) IsCall() bool { return false }
func (*FunctionCall) IsCall() bool       { return true }
func (*PrintAndReturn) IsCall() bool     { return false }
func (NoOp) IsCall() bool                { return false }

func (*Literal) Name() string              { return "" }
func (c *GetVariable) Name() string        { return c.Ident }
func (c *DefineVariable) Name() string     { return c.Ident }
func (c *SetVariable) Name() string        { return c.Ident }
func (*BinaryOp) Name() string             { return "" }
func (*UnaryOp) Name() string              { return "" }
func (*Conditional) Name() string          { return "" }
func (c *FunctionDefinition) Name() string { return c.Ident }
func (c *FunctionCall) Name() string       { return c.Ident }
func (*PrintAndReturn) Name() string       { return "" }
func (NoOp) Name() string                  { return "" }

func (*Literal) code()            {}
func (*GetVariable) code()        {}
func (*DefineVariable) code()     {}
func (*SetVariable) code()        {}
func (*BinaryOp) code()           {}
func (*UnaryOp) code()            {}
func (*Conditional) code()        {}
func (*FunctionDefinition) code() {}
func (*FunctionCall) code()       {}
func (*PrintAndReturn) code()     {}
func (NoOp) code()                {}

// children returns the direct sub-expressions of c that run when c runs.
// The body of a nested function definition only runs when that function is
// called, so it is not a child.
func children(c Code) []Code {
	switch c := c.(type) {
	case *DefineVariable:
		return []Code{c.Expr}
	case *SetVariable:
		return []Code{c.Expr}
	case *BinaryOp:
		return []Code{c.Left, c.Right}
	case *UnaryOp:
		return []Code{c.Operand}
	case *Conditional:
		if c.Else == nil {
			return []Code{c.Cond, c.Then}
		}

		return []Code{c.Cond, c.Then, c.Else}
	case *FunctionCall:
		return c.Args
	case *PrintAndReturn:
		return []Code{c.Expr}
	default:
		return nil
	}
}

// Calls returns an iterator over the distinct names of functions called
// anywhere within body, in order of first appearance.
func Calls(body ...Code) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		stack := slices.Clone(body)
		slices.Reverse(stack)

		for len(stack) > 0 {
			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if c.IsCall() {
				if _, ok := seen[c.Name()]; !ok {
					seen[c.Name()] = struct{}{}
					if !yield(c.Name()) {
						return
					}
				}
			}

			kids := children(c)
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, kids[i])
			}
		}
	}
}
