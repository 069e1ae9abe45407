package ast

// WalkStmts calls fn for each statement in stmts in source order,
// descending into both branches of when blocks. Returning false from fn
// skips the statement's children.
func WalkStmts(stmts []Stmt, fn func(Stmt) bool) {
	for _, s := range stmts {
		if !fn(s) {
			continue
		}
		if w, ok := s.(*When); ok {
			WalkStmts(w.Then, fn)
			WalkStmts(w.Else, fn)
		}
	}
}

// Declared returns the name a statement introduces into its module's
// namespace, or nil for statements that declare nothing.
func Declared(s Stmt) Identifier {
	switch v := s.(type) {
	case *Wire:
		return v.Name
	case *Reg:
		return v.Name
	case *RegReset:
		return v.Name
	case *Inst:
		return v.Name
	case *Node:
		return v.Name
	case *SMem:
		return v.Name
	case *CMem:
		return v.Name
	case *MPort:
		return v.Name
	default:
		return nil
	}
}
