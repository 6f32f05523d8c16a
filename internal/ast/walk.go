package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, block := range n.Blocks {
			Walk(block, fn)
		}

	case *Block:
		for _, stmt := range n.Stmts {
			Walk(stmt, fn)
		}

	case *AssignStmt:
		Walk(n.Name, fn)
		Walk(n.Value, fn)

	case *ReturnStmt:
		Walk(n.Value, fn)

	case *IfStmt:
		Walk(n.Condition, fn)
		Walk(n.Then, fn)
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *WhileStmt:
		Walk(n.Condition, fn)
		Walk(n.Body, fn)

	case *ForStmt:
		Walk(n.Init, fn)
		Walk(n.Stop, fn)
		if n.Step != nil {
			Walk(n.Step, fn)
		}
		Walk(n.Body, fn)

	case *ExprStmt:
		Walk(n.Expr, fn)

	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *UnaryExpr:
		Walk(n.Operand, fn)

	case *GroupedExpr:
		Walk(n.Inner, fn)

	case *Function:
		Walk(n.Body, fn)

	case *CallExpr:
		Walk(n.Name, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *Ident, *Literal:
		// leaves
	}
}
