package main

import (
	"go/ast"

	"github.com/loopcontext/trcat"
)

// isRequestType reports whether typ is trcat.Request or *trcat.Request.
func (e *keyExtractor) isRequestType(typ ast.Expr) bool {
	var sel *ast.SelectorExpr
	switch t := typ.(type) {
	case *ast.SelectorExpr:
		sel = t
	case *ast.StarExpr:
		sel, _ = t.X.(*ast.SelectorExpr)
	}
	if sel == nil {
		return false
	}
	id, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	return id.Name == e.trcatName && sel.Sel.Name == "Request"
}

func (e *keyExtractor) visitCompositeLit(cl *ast.CompositeLit) {
	switch t := cl.Type.(type) {
	case *ast.SelectorExpr:
		if e.isRequestType(t) {
			e.addRequest(cl)
		}
	case *ast.ArrayType:
		if e.isRequestType(t.Elt) {
			for _, elt := range cl.Elts {
				if inner, ok := elt.(*ast.CompositeLit); ok && inner.Type == nil {
					e.addRequest(inner)
				}
			}
		}
	case *ast.MapType:
		if e.isRequestType(t.Value) {
			for _, elt := range cl.Elts {
				kve, ok := elt.(*ast.KeyValueExpr)
				if !ok {
					continue
				}
				if inner, ok := kve.Value.(*ast.CompositeLit); ok && inner.Type == nil {
					e.addRequest(inner)
				}
			}
		}
	}
}

// addRequest records the message of a Request literal. Literals without a
// constant Source are ignored.
func (e *keyExtractor) addRequest(cl *ast.CompositeLit) {
	var key trcat.Key
	numerus := false
	for _, elt := range cl.Elts {
		kve, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		name, ok := kve.Key.(*ast.Ident)
		if !ok {
			continue
		}
		switch name.Name {
		case "Context":
			key.Context = e.extractString(kve.Value)
		case "Source":
			key.Source = e.extractString(kve.Value)
		case "Disambiguation":
			key.Disambiguation = e.extractString(kve.Value)
		case "Count":
			numerus = true
		}
	}
	if key.Source == "" {
		return
	}
	e.add(key, numerus, cl.Pos())
}
