package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// The String methods print FIRRTL source that parses back to an equal
// tree.

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func (n Name) String() string {
	return string(n)
}

func (i Info) String() string {
	if i == "" {
		return ""
	}
	return "@[" + string(i) + "]"
}

// withInfo appends " @[...]" to s when info is present.
func withInfo(s string, info Info) string {
	if info == "" {
		return s
	}
	return s + " " + info.String()
}

// declName prints an identifier in a position where a bare number would
// read as an integer literal.
func declName(id Identifier) string {
	if n, ok := id.(ID); ok {
		return "`" + n.String() + "`"
	}
	return id.String()
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}

func widthSuffix(w *Width) string {
	if w == nil {
		return ""
	}
	return fmt.Sprintf("<%d>", *w)
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func (r *Ref) String() string {
	return declName(r.Name)
}

func (r *RefDot) String() string {
	return r.Parent.String() + "." + r.Field.String()
}

func (r *RefIdxInt) String() string {
	return fmt.Sprintf("%s[%d]", r.Parent, r.Index)
}

func (r *RefIdxExpr) String() string {
	return fmt.Sprintf("%s[%s]", r.Parent, r.Index)
}

func (e *UIntNoInit) String() string {
	return "UInt" + widthSuffix(e.Width)
}

func (e *UIntInit) String() string {
	return fmt.Sprintf("UInt%s(%d)", widthSuffix(e.Width), e.Value)
}

func (e *SIntNoInit) String() string {
	return "SInt" + widthSuffix(e.Width)
}

func (e *SIntInit) String() string {
	return fmt.Sprintf("SInt%s(%d)", widthSuffix(e.Width), e.Value)
}

func (e *Mux) String() string {
	return fmt.Sprintf("mux(%s, %s, %s)", e.Cond, e.High, e.Low)
}

func (e *ValidIf) String() string {
	return fmt.Sprintf("validif(%s, %s)", e.Cond, e.Value)
}

func (e *PrimOp2Expr) String() string {
	return fmt.Sprintf("%s(%s, %s)", e.Op, e.Lhs, e.Rhs)
}

func (e *PrimOp1Expr) String() string {
	return fmt.Sprintf("%s(%s)", e.Op, e.Arg)
}

func (e *PrimOp1Expr1Int) String() string {
	return fmt.Sprintf("%s(%s, %d)", e.Op, e.Arg, e.Param)
}

func (e *PrimOp1Expr2Int) String() string {
	return fmt.Sprintf("%s(%s, %d, %d)", e.Op, e.Arg, e.Hi, e.Lo)
}

func constPrefix(c bool) string {
	if c {
		return "const "
	}
	return ""
}

func (t *GroundType) String() string {
	return constPrefix(t.Const) + t.Ground.String()
}

func (t *AggregateType) String() string {
	return constPrefix(t.Const) + t.Aggregate.String()
}

func (*ClockType) String() string      { return "Clock" }
func (*ResetType) String() string      { return "Reset" }
func (*AsyncResetType) String() string { return "AsyncReset" }

func (t *UIntType) String() string {
	return "UInt" + widthSuffix(t.Width)
}

func (t *SIntType) String() string {
	return "SInt" + widthSuffix(t.Width)
}

func (b *BundleType) String() string {
	if len(b.Fields) == 0 {
		return "{}"
	}
	parts := make([]string, len(b.Fields))
	for i, f := range b.Fields {
		parts[i] = f.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func (v *VectorType) String() string {
	return fmt.Sprintf("%s[%d]", v.Elem, v.Size)
}

func (f *Field) String() string {
	s := fmt.Sprintf("%s : %s", f.Name, f.Type)
	if f.Flipped {
		return "flip " + s
	}
	return s
}

func (s *Wire) String() string {
	return withInfo(fmt.Sprintf("wire %s : %s", declName(s.Name), s.Type), s.Info)
}

func (s *Reg) String() string {
	return withInfo(fmt.Sprintf("reg %s : %s, %s", declName(s.Name), s.Type, s.Clock), s.Info)
}

func (s *RegReset) String() string {
	return withInfo(fmt.Sprintf("regreset %s : %s, %s, %s, %s",
		declName(s.Name), s.Type, s.Clock, s.Reset, s.Init), s.Info)
}

func (s *Inst) String() string {
	return withInfo(fmt.Sprintf("inst %s of %s", declName(s.Name), declName(s.Module)), s.Info)
}

func (s *Node) String() string {
	return withInfo(fmt.Sprintf("node %s = %s", declName(s.Name), s.Value), s.Info)
}

func (s *Connect) String() string {
	return withInfo(fmt.Sprintf("connect %s, %s", s.Loc, s.Value), s.Info)
}

func (s *Invalidate) String() string {
	return withInfo("invalidate "+s.Target.String(), s.Info)
}

func (s *When) String() string {
	var b strings.Builder

	b.WriteString(withInfo(fmt.Sprintf("when %s :", s.Cond), s.Info))
	for _, stmt := range s.Then {
		b.WriteString("\n" + indent(stmt.String()))
	}
	if s.Else != nil {
		b.WriteString("\nelse :")
		for _, stmt := range s.Else {
			b.WriteString("\n" + indent(stmt.String()))
		}
	}

	return b.String()
}

func label(name Identifier) string {
	if name == nil {
		return ""
	}
	return " : " + declName(name)
}

func (s *Printf) String() string {
	args := ""
	if len(s.Args) > 0 {
		args = ", " + joinExprs(s.Args)
	}
	return withInfo(fmt.Sprintf("printf(%s, %s, \"%s\"%s)%s",
		s.Clock, s.Enable, s.Format, args, label(s.Name)), s.Info)
}

func (s *Assert) String() string {
	return withInfo(fmt.Sprintf("assert(%s, %s, %s, \"%s\")%s",
		s.Clock, s.Pred, s.Enable, s.Message, label(s.Name)), s.Info)
}

func (s *Stop) String() string {
	return withInfo(fmt.Sprintf("stop(%s, %s, %d)%s",
		s.Clock, s.Enable, s.Code, label(s.Name)), s.Info)
}

func (s *Skip) String() string {
	return withInfo("skip", s.Info)
}

func (s *SMem) String() string {
	str := fmt.Sprintf("smem %s : %s", declName(s.Name), s.Type)
	if s.ReadUnderWrite != RUWUnspecified {
		str += ", " + s.ReadUnderWrite.String()
	}
	return withInfo(str, s.Info)
}

func (s *CMem) String() string {
	return withInfo(fmt.Sprintf("cmem %s : %s", declName(s.Name), s.Type), s.Info)
}

func (s *MPort) String() string {
	return withInfo(fmt.Sprintf("%s mport %s = %s[%s], %s",
		s.Dir, declName(s.Name), declName(s.Mem), s.Index, s.Clock), s.Info)
}

func (p *Port) String() string {
	return withInfo(fmt.Sprintf("%s %s : %s", p.Dir, declName(p.Name), p.Type), p.Info)
}

func (m *Module) String() string {
	var b strings.Builder

	if m.Public {
		b.WriteString("public ")
	}
	b.WriteString(withInfo(fmt.Sprintf("module %s :", declName(m.Name)), m.Info))
	for _, p := range m.Ports {
		b.WriteString("\n" + indent(p.String()))
	}
	for _, s := range m.Stmts {
		b.WriteString("\n" + indent(s.String()))
	}

	return b.String()
}

func (m *ExtModule) String() string {
	var b strings.Builder

	b.WriteString(withInfo(fmt.Sprintf("extmodule %s :", declName(m.Name)), m.Info))
	for _, p := range m.Ports {
		b.WriteString("\n" + indent(p.String()))
	}
	if m.DefName != nil {
		b.WriteString("\n" + indent("defname = "+declName(m.DefName)))
	}
	for _, p := range m.Params {
		b.WriteString("\n" + indent(p.String()))
	}

	return b.String()
}

func (p *IntParam) String() string {
	return fmt.Sprintf("parameter %s = %d", declName(p.Name), p.Value)
}

func (p *StringParam) String() string {
	return fmt.Sprintf("parameter %s = \"%s\"", declName(p.Name), p.Value)
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (c *Circuit) String() string {
	var b strings.Builder

	b.WriteString("FIRRTL version " + c.Version.String() + "\n")
	b.WriteString(withInfo(fmt.Sprintf("circuit %s :", declName(c.Name)), c.Info))
	for _, m := range c.Modules {
		b.WriteString("\n" + indent(m.String()))
	}
	b.WriteString("\n")

	return b.String()
}
