// Package script verifies Lua code produced for the jsprog daemon.
//
// The code is parsed and compiled with gopher-lua but never run. On top
// of what the Lua compiler catches, every call to a daemon function is
// checked against the daemon's API table.
package script

import (
	"errors"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/ast"
	"github.com/yuin/gopher-lua/parse"

	"github.com/dshills/joyprog/internal/daemon"
)

// Call is a call to a daemon function found in a chunk.
type Call struct {
	Name string
	Line int
	Args int
}

// Result summarizes a chunk that passed the check.
type Result struct {
	Calls []Call
	Proto *lua.FunctionProto
}

// Check parses and compiles the given lines as one chunk. The first
// problem found is returned as a *CheckError.
func Check(chunk string, lines []string) (*Result, error) {
	src := strings.Join(lines, "\n") + "\n"

	stmts, err := parse.Parse(strings.NewReader(src), chunk)
	if err != nil {
		return nil, syntaxError(chunk, err)
	}

	w := &walker{chunk: chunk}
	w.stmts(stmts)
	if w.err != nil {
		return nil, w.err
	}

	proto, err := lua.Compile(stmts, chunk)
	if err != nil {
		return nil, &CheckError{Chunk: chunk, Message: err.Error(), Err: ErrCompile}
	}
	return &Result{Calls: w.calls, Proto: proto}, nil
}

func syntaxError(chunk string, err error) *CheckError {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return &CheckError{
			Chunk:   chunk,
			Line:    perr.Pos.Line,
			Message: perr.Message,
			Err:     ErrSyntax,
		}
	}
	return &CheckError{Chunk: chunk, Message: err.Error(), Err: ErrSyntax}
}

type walker struct {
	chunk string
	calls []Call
	err   *CheckError
}

func (w *walker) fail(line int, kind error, format string, args ...any) {
	if w.err != nil {
		return
	}
	w.err = &CheckError{
		Chunk:   w.chunk,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
		Err:     kind,
	}
}

func (w *walker) stmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		if w.err != nil {
			return
		}
		w.stmt(s)
	}
}

func (w *walker) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.AssignStmt:
		w.exprs(s.Lhs)
		w.exprs(s.Rhs)
	case *ast.LocalAssignStmt:
		w.exprs(s.Exprs)
	case *ast.FuncCallStmt:
		w.expr(s.Expr)
	case *ast.DoBlockStmt:
		w.stmts(s.Stmts)
	case *ast.WhileStmt:
		w.expr(s.Condition)
		w.stmts(s.Stmts)
	case *ast.RepeatStmt:
		w.stmts(s.Stmts)
		w.expr(s.Condition)
	case *ast.IfStmt:
		w.expr(s.Condition)
		w.stmts(s.Then)
		w.stmts(s.Else)
	case *ast.NumberForStmt:
		w.expr(s.Init)
		w.expr(s.Limit)
		w.expr(s.Step)
		w.stmts(s.Stmts)
	case *ast.GenericForStmt:
		w.exprs(s.Exprs)
		w.stmts(s.Stmts)
	case *ast.FuncDefStmt:
		w.expr(s.Func)
	case *ast.ReturnStmt:
		w.exprs(s.Exprs)
	}
}

func (w *walker) exprs(exprs []ast.Expr) {
	for _, e := range exprs {
		w.expr(e)
	}
}

func (w *walker) expr(e ast.Expr) {
	if e == nil || w.err != nil {
		return
	}
	switch e := e.(type) {
	case *ast.FuncCallExpr:
		w.call(e)
		w.expr(e.Func)
		w.expr(e.Receiver)
		w.exprs(e.Args)
	case *ast.AttrGetExpr:
		w.expr(e.Object)
		w.expr(e.Key)
	case *ast.TableExpr:
		for _, f := range e.Fields {
			w.expr(f.Key)
			w.expr(f.Value)
		}
	case *ast.LogicalOpExpr:
		w.expr(e.Lhs)
		w.expr(e.Rhs)
	case *ast.RelationalOpExpr:
		w.expr(e.Lhs)
		w.expr(e.Rhs)
	case *ast.StringConcatOpExpr:
		w.expr(e.Lhs)
		w.expr(e.Rhs)
	case *ast.ArithmeticOpExpr:
		w.expr(e.Lhs)
		w.expr(e.Rhs)
	case *ast.UnaryMinusOpExpr:
		w.expr(e.Expr)
	case *ast.UnaryNotOpExpr:
		w.expr(e.Expr)
	case *ast.UnaryLenOpExpr:
		w.expr(e.Expr)
	case *ast.FunctionExpr:
		w.stmts(e.Stmts)
	}
}

func (w *walker) call(e *ast.FuncCallExpr) {
	ident, ok := e.Func.(*ast.IdentExpr)
	if !ok || !strings.HasPrefix(ident.Value, daemon.Prefix) {
		return
	}

	sig, ok := daemon.Lookup(ident.Value)
	if !ok {
		w.fail(e.Line(), ErrUnknownFunction, "%s is not provided by the daemon", ident.Value)
		return
	}

	n := len(e.Args)
	if n > 0 && multiValued(e.Args[n-1]) {
		// The final expression may expand to any number of values.
		if n-1 > sig.MaxArgs {
			w.fail(e.Line(), ErrArity, "%s takes at most %d arguments, got %d or more", ident.Value, sig.MaxArgs, n-1)
			return
		}
	} else if !sig.Accepts(n) {
		w.fail(e.Line(), ErrArity, "%s takes %s, got %d", ident.Value, sig, n)
		return
	}

	w.calls = append(w.calls, Call{Name: ident.Value, Line: e.Line(), Args: n})
}

func multiValued(e ast.Expr) bool {
	switch e.(type) {
	case *ast.FuncCallExpr, *ast.Comma3Expr:
		return true
	}
	return false
}
