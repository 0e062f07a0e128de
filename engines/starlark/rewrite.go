package starlark

import (
	"slices"
	"strconv"

	"go.starlark.net/resolve"
	"go.starlark.net/syntax"
)

// rootFunc is the builtin that free names are rewritten into, so that a
// name is looked up only when evaluation reaches it.
const rootFunc = "__root__"

type namePos struct {
	line, col int32
}

// freeNames resolves f and returns the position of every identifier that is
// not bound inside the expression, plus the distinct names in source order.
func freeNames(f *syntax.File) (map[namePos]string, []string, error) {
	err := resolve.File(f, func(string) bool { return true }, func(string) bool { return false })
	if err != nil {
		return nil, nil, err
	}

	free := make(map[namePos]string)
	var names []string
	syntax.Walk(f, func(n syntax.Node) bool {
		id, ok := n.(*syntax.Ident)
		if !ok {
			return true
		}
		if b, ok := id.Binding.(*resolve.Binding); ok && b.Scope == resolve.Predeclared {
			free[namePos{id.NamePos.Line, id.NamePos.Col}] = id.Name
			if !slices.Contains(names, id.Name) {
				names = append(names, id.Name)
			}
		}
		return true
	})
	return free, names, nil
}

// rewriter replaces free identifiers with __root__("name") calls. It works
// on an unresolved tree parsed from the same source as the one passed to
// freeNames, so positions line up.
type rewriter struct {
	free map[namePos]string
}

func (r rewriter) expr(e syntax.Expr) syntax.Expr {
	switch x := e.(type) {
	case nil:
		return nil
	case *syntax.Ident:
		name, ok := r.free[namePos{x.NamePos.Line, x.NamePos.Col}]
		if !ok {
			return x
		}
		return &syntax.CallExpr{
			Fn:     &syntax.Ident{NamePos: x.NamePos, Name: rootFunc},
			Lparen: x.NamePos,
			Args: []syntax.Expr{&syntax.Literal{
				Token:    syntax.STRING,
				TokenPos: x.NamePos,
				Raw:      strconv.Quote(name),
				Value:    name,
			}},
			Rparen: x.NamePos,
		}
	case *syntax.ParenExpr:
		x.X = r.expr(x.X)
	case *syntax.CallExpr:
		x.Fn = r.expr(x.Fn)
		r.list(x.Args)
	case *syntax.DotExpr:
		x.X = r.expr(x.X)
	case *syntax.IndexExpr:
		x.X = r.expr(x.X)
		x.Y = r.expr(x.Y)
	case *syntax.SliceExpr:
		x.X = r.expr(x.X)
		x.Lo = r.expr(x.Lo)
		x.Hi = r.expr(x.Hi)
		x.Step = r.expr(x.Step)
	case *syntax.UnaryExpr:
		x.X = r.expr(x.X)
	case *syntax.BinaryExpr:
		x.X = r.expr(x.X)
		x.Y = r.expr(x.Y)
	case *syntax.CondExpr:
		x.Cond = r.expr(x.Cond)
		x.True = r.expr(x.True)
		x.False = r.expr(x.False)
	case *syntax.ListExpr:
		r.list(x.List)
	case *syntax.TupleExpr:
		r.list(x.List)
	case *syntax.DictExpr:
		r.list(x.List)
	case *syntax.DictEntry:
		x.Key = r.expr(x.Key)
		x.Value = r.expr(x.Value)
	case *syntax.LambdaExpr:
		r.list(x.Params)
		x.Body = r.expr(x.Body)
	case *syntax.Comprehension:
		x.Body = r.expr(x.Body)
		for _, clause := range x.Clauses {
			switch c := clause.(type) {
			case *syntax.ForClause:
				c.X = r.expr(c.X)
			case *syntax.IfClause:
				c.Cond = r.expr(c.Cond)
			}
		}
	}
	return e
}

func (r rewriter) list(exprs []syntax.Expr) {
	for i, e := range exprs {
		exprs[i] = r.expr(e)
	}
}
