package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/segmentio/fasthash/fnv1a"
)

// Dump renders node as an S-expression. Spans are not included, so two
// parses of the same source always dump identically.
func Dump(node Node) string {
	var b strings.Builder
	dump(&b, node)
	return b.String()
}

func dump(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Program:
		b.WriteString("(program")
		for _, block := range n.Blocks {
			b.WriteByte(' ')
			dump(b, block)
		}
		b.WriteByte(')')

	case *Block:
		b.WriteString("(block")
		for _, stmt := range n.Stmts {
			b.WriteByte(' ')
			dump(b, stmt)
		}
		b.WriteByte(')')

	case *AssignStmt:
		if n.IsLocal {
			b.WriteString("(local ")
		} else {
			b.WriteString("(assign ")
		}
		b.WriteString(n.Name.Name)
		b.WriteByte(' ')
		dump(b, n.Value)
		b.WriteByte(')')

	case *ReturnStmt:
		b.WriteString("(return ")
		dump(b, n.Value)
		b.WriteByte(')')

	case *IfStmt:
		b.WriteString("(if ")
		dump(b, n.Condition)
		b.WriteByte(' ')
		dump(b, n.Then)
		if n.Else != nil {
			b.WriteByte(' ')
			dump(b, n.Else)
		}
		b.WriteByte(')')

	case *WhileStmt:
		b.WriteString("(while ")
		dump(b, n.Condition)
		b.WriteByte(' ')
		dump(b, n.Body)
		b.WriteByte(')')

	case *ForStmt:
		b.WriteString("(for ")
		dump(b, n.Init)
		b.WriteByte(' ')
		dump(b, n.Stop)
		if n.Step != nil {
			b.WriteByte(' ')
			dump(b, n.Step)
		}
		b.WriteByte(' ')
		dump(b, n.Body)
		b.WriteByte(')')

	case *ExprStmt:
		b.WriteString("(expr ")
		dump(b, n.Expr)
		b.WriteByte(')')

	case *Ident:
		b.WriteString(n.Name)

	case *Literal:
		b.WriteString(FormatLiteral(n.Value))

	case *BinaryExpr:
		b.WriteByte('(')
		b.WriteString(n.Op.Lexeme)
		b.WriteByte(' ')
		dump(b, n.Left)
		b.WriteByte(' ')
		dump(b, n.Right)
		b.WriteByte(')')

	case *UnaryExpr:
		b.WriteByte('(')
		b.WriteString(n.Op.Lexeme)
		b.WriteByte(' ')
		dump(b, n.Operand)
		b.WriteByte(')')

	case *GroupedExpr:
		b.WriteString("(group ")
		dump(b, n.Inner)
		b.WriteByte(')')

	case *Function:
		if n.IsLocal {
			b.WriteString("(local-function ")
		} else {
			b.WriteString("(function ")
		}
		if n.Name != "" {
			b.WriteString(n.Name)
			b.WriteByte(' ')
		}
		b.WriteByte('(')
		b.WriteString(strings.Join(n.Params, " "))
		b.WriteString(") ")
		dump(b, n.Body)
		b.WriteByte(')')

	case *CallExpr:
		b.WriteString("(call ")
		b.WriteString(n.Name.Name)
		for _, arg := range n.Args {
			b.WriteByte(' ')
			dump(b, arg)
		}
		b.WriteByte(')')

	default:
		fmt.Fprintf(b, "<%T>", node)
	}
}

// FormatLiteral renders a literal payload the way it appears in source.
func FormatLiteral(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Fingerprint returns a structural FNV-1a hash of the tree rooted at node.
// Spans do not contribute, only node kinds and their payloads.
func Fingerprint(node Node) uint64 {
	h := fnv1a.Init64
	Walk(node, func(n Node) bool {
		h = fnv1a.AddString64(h, fmt.Sprintf("%T", n))
		switch n := n.(type) {
		case *Block:
			h = fnv1a.AddUint64(h, uint64(len(n.Stmts)))
		case *AssignStmt:
			h = addBool(h, n.IsLocal)
		case *IfStmt:
			h = addBool(h, n.Else != nil)
		case *ForStmt:
			h = addBool(h, n.Step != nil)
		case *Ident:
			h = fnv1a.AddString64(h, n.Name)
		case *Literal:
			h = fnv1a.AddString64(h, FormatLiteral(n.Value))
		case *BinaryExpr:
			h = fnv1a.AddString64(h, n.Op.Lexeme)
		case *UnaryExpr:
			h = fnv1a.AddString64(h, n.Op.Lexeme)
		case *Function:
			h = fnv1a.AddString64(h, n.Name)
			h = addBool(h, n.IsLocal)
			for _, p := range n.Params {
				h = fnv1a.AddString64(h, p)
			}
		case *CallExpr:
			h = fnv1a.AddUint64(h, uint64(len(n.Args)))
		}
		return true
	})
	return h
}

func addBool(h uint64, b bool) uint64 {
	if b {
		return fnv1a.AddUint64(h, 1)
	}
	return fnv1a.AddUint64(h, 0)
}
