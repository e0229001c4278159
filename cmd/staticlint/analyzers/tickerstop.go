package analyzers

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

// TickerStopAnalyzer reports time.NewTicker and time.NewTimer results that
// are bound to a local variable which is never stopped and never leaves the
// function: not returned, passed to a call, stored, or captured by a
// closure that stops it.
var TickerStopAnalyzer = &analysis.Analyzer{
	Name:     "tickerstop",
	Doc:      "report time.Ticker and time.Timer values that are never stopped",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runTickerStop,
}

func runTickerStop(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	type creation struct {
		call *ast.CallExpr
		name string
	}
	created := make(map[*types.Var]creation)
	released := make(map[*types.Var]bool)

	filter := []ast.Node{(*ast.CallExpr)(nil), (*ast.Ident)(nil)}
	insp.WithStack(filter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push || len(stack) < 2 {
			return true
		}
		parent := stack[len(stack)-2]

		switch n := n.(type) {
		case *ast.CallExpr:
			name, ok := timerConstructor(pass, n)
			if !ok {
				return true
			}
			if v := boundVar(pass, parent, n); v != nil {
				if _, seen := created[v]; !seen {
					created[v] = creation{call: n, name: name}
				}
			}
		case *ast.Ident:
			v, ok := pass.TypesInfo.Uses[n].(*types.Var)
			if !ok || v.IsField() {
				return true
			}
			if sel, ok := parent.(*ast.SelectorExpr); ok && sel.X == n {
				switch sel.Sel.Name {
				case "C", "Reset":
				default:
					released[v] = true
				}
				return true
			}
			if assign, ok := parent.(*ast.AssignStmt); ok && inExprs(assign.Lhs, n) {
				return true
			}
			released[v] = true
		}
		return true
	})

	for v, c := range created {
		if !released[v] {
			pass.Reportf(c.call.Pos(), "%s result assigned to %s is never stopped", c.name, v.Name())
		}
	}
	return nil, nil
}

// timerConstructor reports whether call is time.NewTicker or time.NewTimer.
func timerConstructor(pass *analysis.Pass, call *ast.CallExpr) (string, bool) {
	fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != "time" {
		return "", false
	}
	switch fn.Name() {
	case "NewTicker", "NewTimer":
		return "time." + fn.Name(), true
	}
	return "", false
}

// boundVar returns the local variable that call is assigned to, if any.
func boundVar(pass *analysis.Pass, parent ast.Node, call *ast.CallExpr) *types.Var {
	var ident *ast.Ident
	switch p := parent.(type) {
	case *ast.AssignStmt:
		if len(p.Lhs) != len(p.Rhs) {
			return nil
		}
		for i, rhs := range p.Rhs {
			if rhs == call {
				ident, _ = p.Lhs[i].(*ast.Ident)
			}
		}
	case *ast.ValueSpec:
		if len(p.Names) != len(p.Values) {
			return nil
		}
		for i, val := range p.Values {
			if val == call {
				ident = p.Names[i]
			}
		}
	}
	if ident == nil || ident.Name == "_" {
		return nil
	}

	obj := pass.TypesInfo.Defs[ident]
	if obj == nil {
		obj = pass.TypesInfo.Uses[ident]
	}
	v, ok := obj.(*types.Var)
	if !ok || v.IsField() || v.Parent() == pass.Pkg.Scope() {
		return nil
	}
	return v
}

func inExprs(exprs []ast.Expr, n ast.Expr) bool {
	for _, e := range exprs {
		if e == n {
			return true
		}
	}
	return false
}
