package ast

import "github.com/Konsultn-Engineering/ejsql/utils"

// Literal is template text copied to the output verbatim.
type Literal struct {
	Text string
}

func NewLiteral(text string) *Literal {
	return &Literal{Text: text}
}

func (l *Literal) Type() NodeType           { return NodeLiteral }
func (l *Literal) Accept(vis Visitor) error { return vis.VisitLiteral(l) }
func (l *Literal) Fingerprint() uint64 {
	return utils.FingerprintString("lit:" + l.Text)
}
