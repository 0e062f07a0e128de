package expr

import (
	"strings"

	"github.com/expr-lang/expr/ast"
)

const (
	rootFunc   = "__root__"
	memberFunc = "__member__"
	scopeVar   = "__scope__"
)

// declarations records names bound by let and identifiers used as callees,
// neither of which may be rewritten into scope lookups.
type declarations struct {
	names   map[string]bool
	callees map[*ast.IdentifierNode]bool
}

func newDeclarations() *declarations {
	return &declarations{
		names:   make(map[string]bool),
		callees: make(map[*ast.IdentifierNode]bool),
	}
}

func (d *declarations) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.VariableDeclaratorNode:
		d.names[n.Name] = true
	case *ast.CallNode:
		if callee, ok := n.Callee.(*ast.IdentifierNode); ok {
			d.callees[callee] = true
		}
	}
}

// navigation rewrites free identifiers into __root__(__scope__, "name") and
// property access into __member__(__scope__, target, property, optional).
// Method calls, let bindings and closure pointers are left alone.
type navigation struct {
	decls *declarations
	names []string
}

func (p *navigation) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		if p.skip(n) {
			return
		}
		p.record(n.Value)
		ast.Patch(node, &ast.CallNode{
			Callee:    &ast.IdentifierNode{Value: rootFunc},
			Arguments: []ast.Node{&ast.IdentifierNode{Value: scopeVar}, &ast.StringNode{Value: n.Value}},
		})
	case *ast.MemberNode:
		if n.Method {
			return
		}
		ast.Patch(node, &ast.CallNode{
			Callee: &ast.IdentifierNode{Value: memberFunc},
			Arguments: []ast.Node{
				&ast.IdentifierNode{Value: scopeVar},
				n.Node,
				n.Property,
				&ast.BoolNode{Value: n.Optional},
			},
		})
	}
}

func (p *navigation) skip(n *ast.IdentifierNode) bool {
	switch {
	case p.decls.callees[n]:
		return true
	case p.decls.names[n.Value]:
		return true
	case n.Value == scopeVar, n.Value == rootFunc, n.Value == memberFunc:
		return true
	case strings.HasPrefix(n.Value, "$"):
		return true
	default:
		return false
	}
}

func (p *navigation) record(name string) {
	for _, existing := range p.names {
		if existing == name {
			return
		}
	}
	p.names = append(p.names, name)
}
