// Package noclock provides a linter that flags time.Now() calls in
// packages that must take the current instant as a parameter. The
// schedule engine evaluates tasks for arbitrary instants, so a hidden
// clock read anywhere inside it is a bug.
package noclock

import (
	"go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer reports time.Now() calls in clock-free packages.
var Analyzer = &analysis.Analyzer{
	Name: "noclock",
	Doc:  "flags time.Now() in packages that must receive time explicitly",
	Run:  run,
}

// packages lists the package path fragments the check applies to.
// Everything else may read the clock (services inject it, binaries use
// the real one).
var packages = []string{
	"internal/schedule",
	"internal/domain",
}

func init() {
	Analyzer.Flags.Func("packages",
		"comma-separated package path fragments to check",
		func(s string) error {
			packages = strings.Split(s, ",")
			return nil
		})
}

func run(pass *analysis.Pass) (any, error) {
	if !checkedPackage(pass.Pkg.Path()) {
		return nil, nil
	}

	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			if !isTimeNow(call) {
				return true
			}
			if hasNolintComment(file, pass, call) {
				return true
			}

			pass.Reportf(call.Pos(), "time.Now() is not allowed here; thread the instant through as a parameter")
			return true
		})
	}

	return nil, nil
}

func checkedPackage(path string) bool {
	for _, fragment := range packages {
		if strings.Contains(path, strings.TrimSpace(fragment)) {
			return true
		}
	}
	return false
}

// isTimeNow checks if the call expression is time.Now().
func isTimeNow(call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	if sel.Sel.Name != "Now" {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	return ident.Name == "time"
}

// hasNolintComment checks for a //nolint or //nolint:noclock comment on
// the call's line or the line before it.
func hasNolintComment(file *ast.File, pass *analysis.Pass, call *ast.CallExpr) bool {
	pos := pass.Fset.Position(call.Pos())

	for _, cg := range file.Comments {
		for _, comment := range cg.List {
			commentPos := pass.Fset.Position(comment.Pos())
			if commentPos.Line != pos.Line && commentPos.Line != pos.Line-1 {
				continue
			}
			text := comment.Text
			if !strings.Contains(text, "nolint") {
				continue
			}
			if !strings.Contains(text, ":") || strings.Contains(text, "noclock") {
				return true
			}
		}
	}

	return false
}
