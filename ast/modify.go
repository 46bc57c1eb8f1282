package ast

import "fortio.org/log"

// Modify rebuilds the tree bottom up: children first, then f is applied to the
// node carrying the already modified children. The input tree is left untouched.
// The first error returned by f stops the walk.
func Modify(node Node, f func(Node) (Node, error)) (Node, error) {
	if o, ok := node.(Operation); ok && len(o.Children) > 0 {
		children := make([]Node, len(o.Children))
		for i, c := range o.Children {
			nc, err := Modify(c, f)
			if err != nil {
				return nil, err
			}
			children[i] = nc
		}
		o.Children = children // o is a copy, the original still has its own slice.
		node = o
	} else {
		log.Debugf("Modify leaf %T %v", node, node)
	}
	return f(node)
}

// ModifyNoErr is Modify for functions that can't fail.
func ModifyNoErr(node Node, f func(Node) Node) Node {
	res, _ := Modify(node, func(n Node) (Node, error) {
		return f(n), nil
	})
	return res
}
