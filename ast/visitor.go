package ast

type Visitor interface {
	VisitLiteral(*Literal) error
	VisitExpression(*Expression) error
	Build(t *Template) (string, error)
	Release()
}
