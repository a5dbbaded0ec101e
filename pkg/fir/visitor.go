package fir

import "log"

// Visitor receives declarations dispatched by Accept.  Descending into a
// class is the visitor's decision: call AcceptChildren on the class to do so.
type Visitor interface {
	VisitRegularClass(c *RegularClass)
	VisitTypeAlias(a *TypeAlias)
	VisitCallableMember(m CallableMember)
}

// Accept dispatches d to the matching Visit method of v.
func Accept(d Declaration, v Visitor) {
	switch t := d.(type) {
	case *RegularClass:
		v.VisitRegularClass(t)
	case *TypeAlias:
		v.VisitTypeAlias(t)
	case CallableMember:
		v.VisitCallableMember(t)
	default:
		log.Panicf("fatal (unknown declaration type): %T", d)
	}
}

// AcceptChildren dispatches each member declaration to v.
func (c *RegularClass) AcceptChildren(v Visitor) {
	for _, d := range c.declarations {
		Accept(d, v)
	}
}
