package ast

type NodeType int

const (
	NodeLiteral NodeType = iota
	NodeExpression
)

// Node is one segment of a compiled template.
type Node interface {
	Type() NodeType
	Accept(v Visitor) error
	Fingerprint() uint64
}
