package interp

import (
	"fmt"

	"github.com/lunar-lang/lunar/internal/ast"
	"github.com/lunar-lang/lunar/internal/runtime"
)

// outcome is what executing a statement or block produced. returned marks a
// return in flight; it unwinds enclosing blocks up to the call boundary.
type outcome struct {
	value    runtime.Value
	returned bool
}

// execBlock runs a block in its own frame. The frame is popped on every exit
// path. When top is set, the value of the last expression or call statement
// is kept as the block's value.
func (i *Interpreter) execBlock(block *ast.Block, top bool) (outcome, error) {
	var out outcome
	i.env.AddLevel()
	defer i.env.PopLevel()

	i.logger.Debug("block enter", "depth", i.env.Depth(), "statements", len(block.Stmts))

	for _, stmt := range block.Stmts {
		res, err := i.execStmt(stmt)
		if err != nil {
			return outcome{}, err
		}
		if res.returned {
			i.logger.Debug("block return", "depth", i.env.Depth())
			return res, nil
		}
		if top && res.value != nil {
			out.value = res.value
		}
	}

	i.logger.Debug("block exit", "depth", i.env.Depth())
	return out, nil
}

// execStmt runs one statement. Only expression and call statements report a
// value when no return is in flight.
func (i *Interpreter) execStmt(stmt ast.Stmt) (outcome, error) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		v, err := i.evalExpr(s.Value)
		if err != nil {
			return outcome{}, err
		}
		i.env.Set(s.Name.Name, v, s.IsLocal)
		return outcome{}, nil

	case *ast.ReturnStmt:
		v, err := i.evalExpr(s.Value)
		if err != nil {
			return outcome{}, err
		}
		return outcome{value: v, returned: true}, nil

	case *ast.ExprStmt:
		v, err := i.evalExpr(s.Expr)
		if err != nil {
			return outcome{}, err
		}
		return outcome{value: v}, nil

	case *ast.CallExpr:
		v, err := i.call(s)
		if err != nil {
			return outcome{}, err
		}
		return outcome{value: v}, nil

	case *ast.Function:
		if s.Name != "" {
			i.env.Set(s.Name, &runtime.Function{Decl: s}, s.IsLocal)
		}
		return outcome{}, nil

	case *ast.IfStmt:
		return i.execIf(s)

	case *ast.WhileStmt:
		return i.execWhile(s)

	case *ast.ForStmt:
		return i.execFor(s)

	default:
		return outcome{}, unsupportedf("", stmt.Span(), "cannot execute %T", stmt)
	}
}

func (i *Interpreter) execIf(s *ast.IfStmt) (outcome, error) {
	cond, err := i.evalExpr(s.Condition)
	if err != nil {
		return outcome{}, err
	}

	if runtime.Truthy(cond) {
		return i.execBody(s.Then)
	}
	if s.Else != nil {
		return i.execBody(s.Else)
	}
	return outcome{}, nil
}

func (i *Interpreter) execWhile(s *ast.WhileStmt) (outcome, error) {
	for {
		cond, err := i.evalExpr(s.Condition)
		if err != nil {
			return outcome{}, err
		}
		if !runtime.Truthy(cond) {
			return outcome{}, nil
		}

		res, err := i.execBody(s.Body)
		if err != nil || res.returned {
			return res, err
		}
	}
}

// execFor runs a numeric for loop. Bounds and step are evaluated once; the
// loop variable is rebound from an internal counter before every iteration.
// advance steps a loop counter. It reports false when an integer counter
// would leave the int64 range, which is past any reachable stop value.
func advance(counter, step runtime.Value) (runtime.Value, bool) {
	c, cok := counter.(runtime.Int)
	s, sok := step.(runtime.Int)
	if cok && sok {
		n, ok := addInts(c, s)
		return n, ok
	}
	return runtime.Float(toFloat(counter) + toFloat(step)), true
}

func (i *Interpreter) execFor(s *ast.ForStmt) (outcome, error) {
	start, err := i.evalExpr(s.Init.Value)
	if err != nil {
		return outcome{}, err
	}
	stop, err := i.evalExpr(s.Stop)
	if err != nil {
		return outcome{}, err
	}
	var step runtime.Value = runtime.Int(1)
	if s.Step != nil {
		if step, err = i.evalExpr(s.Step); err != nil {
			return outcome{}, err
		}
	}

	for _, bound := range []runtime.Value{start, stop, step} {
		if !runtime.IsNumber(bound) {
			return outcome{}, typeErrorf("for", s.Span(),
				"'for' bounds must be numbers, got %s", bound.Kind())
		}
	}

	if numberSign(step) == 0 {
		return outcome{}, unsupportedf("for", s.Span(), "'for' step must not be zero")
	}
	ascending := numberSign(step) > 0

	i.env.AddLevel()
	defer i.env.PopLevel()

	counter := start
	for {
		cmp := compareNumbers(counter, stop)
		if (ascending && cmp > 0) || (!ascending && cmp < 0) {
			return outcome{}, nil
		}

		i.env.Set(s.Init.Name.Name, counter, true)

		res, err := i.execBody(s.Body)
		if err != nil || res.returned {
			return res, err
		}

		if cmp == 0 {
			return outcome{}, nil
		}
		next, ok := advance(counter, step)
		if !ok {
			return outcome{}, nil
		}
		counter = next
	}
}

// execBody runs a nested control-flow block. Its expression values are not
// program results.
func (i *Interpreter) execBody(block *ast.Block) (outcome, error) {
	res, err := i.execBlock(block, false)
	if err != nil || res.returned {
		return res, err
	}
	return outcome{}, nil
}

// call invokes a function by substitution: the arguments are evaluated in
// the caller's environment, then a block of local parameter bindings followed
// by a copy of the body runs on the caller's frame stack.
func (i *Interpreter) call(c *ast.CallExpr) (runtime.Value, error) {
	name := c.Name.Name

	bound, ok := i.env.Get(name)
	if !ok {
		return nil, nameErrorf(name, c.Span(), "undefined function %q", name)
	}
	fn, ok := bound.(*runtime.Function)
	if !ok {
		return nil, nameErrorf(name, c.Span(), "%q is a %s, not a function", name, bound.Kind())
	}
	if len(c.Args) != fn.Arity() {
		return nil, &RuntimeError{
			Kind:    ArityError,
			Message: fmt.Sprintf("%s expects %d argument(s), got %d", name, fn.Arity(), len(c.Args)),
			Name:    name,
			Span:    c.Span(),
		}
	}

	stmts := make([]ast.Stmt, 0, len(c.Args)+len(fn.Decl.Body.Stmts))
	for idx, arg := range c.Args {
		v, err := i.evalExpr(arg)
		if err != nil {
			return nil, err
		}
		param := ast.NewIdent(fn.Decl.Params[idx], arg.Span())
		stmts = append(stmts, ast.NewAssignStmt(param, ast.NewLiteral(v, arg.Span()), true, arg.Span()))
	}
	stmts = append(stmts, fn.Decl.Body.Stmts...)

	i.logger.Debug("call", "function", name, "arity", fn.Arity(), "depth", i.env.Depth())

	res, err := i.execBlock(ast.NewBlock(stmts, fn.Decl.Body.Span()), false)
	if err != nil {
		return nil, err
	}
	if res.returned {
		return res.value, nil
	}
	return runtime.Nil{}, nil
}
