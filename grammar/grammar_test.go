package grammar_test

import (
	"os"
	"strconv"
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firrtl/grammar"
	"firrtl/internal/ast"
	firlexer "firrtl/internal/lexer"
)

const richSource = `FIRRTL version 4.0.0
circuit Top : @[top.scala 1:1]
  extmodule BlackBox :
    input in : UInt<8>
    output out : UInt<8>
    defname = bb_impl
    parameter WIDTH = 8
    parameter MODE = "fast"
  public module Top :
    input clock : Clock
    input reset : AsyncReset
    input sel : UInt<1>
    input vec : { 0 : UInt<4>, 1 : SInt<4> }[2]
    output out : const UInt<8>

    inst bb of BlackBox
    regreset r : UInt<8>, clock, reset, UInt<8>(0hff)
    node m = mux(sel, bits(r, 7, 0), pad(vec[0].0, 8))
    node v = validif(sel, not(r))
    cmem table : UInt<8>[16]
    infer mport port = table[r], clock
    when sel :
      connect bb.in, m
    else when eq(r, UInt(0)) :
      connect bb.in, v
    else :
      invalidate bb.in
    printf(clock, sel, "r=%d\n", r) : p0
    assert(clock, sel, UInt<1>(1), "sel low") @[top.scala 9:3]
    stop(clock, sel, 1)
    skip
    connect out, bb.out
`

func ref(name string) *ast.Ref {
	return &ast.Ref{Name: ast.Name(name)}
}

func dot(parent ast.Reference, field string) *ast.RefDot {
	return &ast.RefDot{Parent: parent, Field: ast.Name(field)}
}

func uintType(w uint32) *ast.GroundType {
	return &ast.GroundType{Ground: &ast.UIntType{Width: ast.NewWidth(w)}}
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../examples/" + name)
	require.NoError(t, err)
	return string(data)
}

func TestParseFileGCD(t *testing.T) {
	tree, err := grammar.ParseFile("../examples/gcd.fir")
	require.NoError(t, err)

	assert.Equal(t, "3", tree.Major)
	assert.Equal(t, "GCD", *tree.Name.Ident)
	require.Len(t, tree.Modules, 1)
	require.NotNil(t, tree.Modules[0].Module)
	assert.Len(t, tree.Modules[0].Module.Body.Ports, 3)
	assert.Len(t, tree.Modules[0].Module.Body.Stmts, 8)
}

func TestConvertGCD(t *testing.T) {
	circuit, err := grammar.ParseCircuit("gcd.fir", readFixture(t, "gcd.fir"))
	require.NoError(t, err)

	assert.Equal(t, ast.Version{Major: 3, Minor: 3, Patch: 0}, circuit.Version)
	assert.Equal(t, ast.Identifier(ast.Name("GCD")), circuit.Name)
	require.Len(t, circuit.Modules, 1)

	module, ok := circuit.Modules[0].(*ast.Module)
	require.True(t, ok)
	assert.Equal(t, ast.Info("src/main/scala/gcd/GCD.scala 15:7"), module.Info)
	require.Len(t, module.Ports, 3)
	require.Len(t, module.Stmts, 8)

	assert.Equal(t, &ast.Port{
		Dir:  ast.Input,
		Name: ast.Name("clock"),
		Type: &ast.GroundType{Ground: &ast.ClockType{}},
		Info: "src/main/scala/gcd/GCD.scala 15:7",
	}, module.Ports[0])

	io := module.Ports[2]
	assert.Equal(t, ast.Output, io.Dir)
	bundle := io.Type.(*ast.AggregateType).Aggregate.(*ast.BundleType)
	require.Len(t, bundle.Fields, 5)
	assert.Equal(t, &ast.Field{Flipped: true, Name: ast.Name("value1"), Type: uintType(16)}, bundle.Fields[0])
	assert.False(t, bundle.Fields[3].Flipped)

	assert.Equal(t, &ast.Reg{
		Name:  ast.Name("x"),
		Type:  &ast.GroundType{Ground: &ast.UIntType{}},
		Clock: ref("clock"),
		Info:  "src/main/scala/gcd/GCD.scala 24:15",
	}, module.Stmts[0])

	assert.Equal(t, &ast.Node{
		Name:  ast.Name("_T"),
		Value: &ast.PrimOp2Expr{Op: ast.OpGt, Lhs: ref("x"), Rhs: ref("y")},
		Info:  "src/main/scala/gcd/GCD.scala 27:10",
	}, module.Stmts[2])

	when := module.Stmts[3].(*ast.When)
	assert.Equal(t, ref("_T"), when.Cond)
	require.Len(t, when.Then, 3)
	require.Len(t, when.Else, 3)
	assert.Equal(t, &ast.PrimOp1Expr1Int{Op: ast.OpTail, Arg: ref("_x_T"), Param: 1}, when.Then[1].(*ast.Node).Value)

	loading := module.Stmts[4].(*ast.When)
	assert.Equal(t, dot(ref("io"), "loadingValues"), loading.Cond)
	assert.Nil(t, loading.Else)

	eq := module.Stmts[6].(*ast.Node).Value
	assert.Equal(t, &ast.PrimOp2Expr{
		Op:  ast.OpEq,
		Lhs: ref("y"),
		Rhs: &ast.UIntInit{Width: ast.NewWidth(1), Value: 0},
	}, eq)
}

func TestConvertSRAM(t *testing.T) {
	circuit, err := grammar.ParseCircuit("sram.fir", readFixture(t, "sram.fir"))
	require.NoError(t, err)

	module := circuit.Module("OneReadOneWritePortSRAM").(*ast.Module)
	require.Len(t, module.Ports, 3)
	require.Len(t, module.Stmts, 6)

	smem := module.Stmts[0].(*ast.SMem)
	assert.Equal(t, &ast.AggregateType{Aggregate: &ast.VectorType{
		Elem: &ast.AggregateType{Aggregate: &ast.VectorType{Elem: uintType(2), Size: 4}},
		Size: 8,
	}}, smem.Type)

	wen := module.Stmts[1].(*ast.When)
	require.Len(t, wen.Then, 5)
	assert.Equal(t, &ast.MPort{
		Dir:   ast.MPortWrite,
		Name:  ast.Name("MPORT"),
		Mem:   ast.Name("mem"),
		Index: dot(ref("io"), "waddr"),
		Clock: ref("clock"),
		Info:  "src/main/scala/gcd/SRAM.scala 24:14",
	}, wen.Then[0])

	mask := wen.Then[1].(*ast.When)
	assert.Equal(t, &ast.RefIdxInt{Parent: dot(ref("io"), "wmask"), Index: 0}, mask.Cond)
	assert.Equal(t, &ast.Connect{
		Loc:   &ast.RefIdxInt{Parent: ref("MPORT"), Index: 0},
		Value: &ast.RefIdxInt{Parent: dot(ref("io"), "wdata"), Index: 0},
		Info:  "src/main/scala/gcd/SRAM.scala 24:14",
	}, mask.Then[0])

	assert.IsType(t, &ast.Wire{}, module.Stmts[2])
	assert.IsType(t, &ast.Invalidate{}, module.Stmts[3])

	ren := module.Stmts[4].(*ast.When)
	require.Len(t, ren.Then, 2)
	read := ren.Then[1].(*ast.MPort)
	assert.Equal(t, ast.MPortRead, read.Dir)
	assert.Equal(t, ref("_WIRE"), read.Index)
}

func TestConvertRichCircuit(t *testing.T) {
	circuit, err := grammar.ParseCircuit("top.fir", richSource)
	require.NoError(t, err)

	assert.Equal(t, ast.Version{Major: 4}, circuit.Version)
	assert.Equal(t, ast.Info("top.scala 1:1"), circuit.Info)
	require.Len(t, circuit.Modules, 2)

	bb := circuit.Modules[0].(*ast.ExtModule)
	assert.Equal(t, ast.Identifier(ast.Name("bb_impl")), bb.DefName)
	assert.Equal(t, []ast.Parameter{
		&ast.IntParam{Name: ast.Name("WIDTH"), Value: 8},
		&ast.StringParam{Name: ast.Name("MODE"), Value: "fast"},
	}, bb.Params)

	top := circuit.Modules[1].(*ast.Module)
	assert.True(t, top.Public)

	vec := top.Ports[3].Type.(*ast.AggregateType).Aggregate.(*ast.VectorType)
	assert.Equal(t, int64(2), vec.Size)
	fields := vec.Elem.(*ast.AggregateType).Aggregate.(*ast.BundleType).Fields
	assert.Equal(t, ast.Identifier(ast.ID(0)), fields[0].Name)
	assert.Equal(t, ast.Identifier(ast.ID(1)), fields[1].Name)

	out := top.Ports[4].Type.(*ast.GroundType)
	assert.True(t, out.Const)

	stmts := top.Stmts
	require.Len(t, stmts, 12)

	assert.Equal(t, &ast.Inst{Name: ast.Name("bb"), Module: ast.Name("BlackBox")}, stmts[0])
	assert.Equal(t, &ast.UIntInit{Width: ast.NewWidth(8), Value: 255}, stmts[1].(*ast.RegReset).Init)

	assert.Equal(t, &ast.Mux{
		Cond: ref("sel"),
		High: &ast.PrimOp1Expr2Int{Op: ast.OpBits, Arg: ref("r"), Hi: 7, Lo: 0},
		Low: &ast.PrimOp1Expr1Int{
			Op:    ast.OpPad,
			Arg:   &ast.RefDot{Parent: &ast.RefIdxInt{Parent: ref("vec"), Index: 0}, Field: ast.ID(0)},
			Param: 8,
		},
	}, stmts[2].(*ast.Node).Value)

	assert.Equal(t, &ast.ValidIf{
		Cond:  ref("sel"),
		Value: &ast.PrimOp1Expr{Op: ast.OpNot, Arg: ref("r")},
	}, stmts[3].(*ast.Node).Value)

	assert.IsType(t, &ast.CMem{}, stmts[4])
	infer := stmts[5].(*ast.MPort)
	assert.Equal(t, ast.MPortInfer, infer.Dir)
	assert.Equal(t, ast.Identifier(ast.Name("port")), infer.Name)

	when := stmts[6].(*ast.When)
	require.Len(t, when.Else, 1)
	chained := when.Else[0].(*ast.When)
	assert.Equal(t, &ast.PrimOp2Expr{Op: ast.OpEq, Lhs: ref("r"), Rhs: &ast.UIntInit{Value: 0}}, chained.Cond)
	require.Len(t, chained.Else, 1)
	assert.Equal(t, &ast.Invalidate{Target: dot(ref("bb"), "in")}, chained.Else[0])

	printf := stmts[7].(*ast.Printf)
	assert.Equal(t, `r=%d\n`, printf.Format)
	assert.Equal(t, []ast.Expr{ref("r")}, printf.Args)
	assert.Equal(t, ast.Identifier(ast.Name("p0")), printf.Name)

	assertStmt := stmts[8].(*ast.Assert)
	assert.Equal(t, "sel low", assertStmt.Message)
	assert.Equal(t, ast.Info("top.scala 9:3"), assertStmt.Info)
	assert.Nil(t, assertStmt.Name)

	assert.Equal(t, int64(1), stmts[9].(*ast.Stop).Code)
	assert.Equal(t, &ast.Skip{}, stmts[10])
}

func TestPrintedCircuitReparses(t *testing.T) {
	sources := map[string]string{
		"gcd.fir":  readFixture(t, "gcd.fir"),
		"sram.fir": readFixture(t, "sram.fir"),
		"top.fir":  richSource,
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			first, err := grammar.ParseCircuit(name, src)
			require.NoError(t, err)

			printed := first.String()
			second, err := grammar.ParseCircuit(name, printed)
			require.NoError(t, err, "printed source:\n%s", printed)

			assert.Equal(t, first, second)
			assert.Equal(t, printed, second.String())
		})
	}
}

func TestEscapedNames(t *testing.T) {
	src := "FIRRTL version 3.3.0\ncircuit `7` :\n  module `7` :\n    output `1` : UInt<1>\n    connect `1`, UInt<1>(0)\n"

	circuit, err := grammar.ParseCircuit("ids.fir", src)
	require.NoError(t, err)
	assert.Equal(t, ast.Identifier(ast.ID(7)), circuit.Name)

	module := circuit.Modules[0].(*ast.Module)
	assert.Equal(t, ast.Identifier(ast.ID(1)), module.Ports[0].Name)
	assert.Equal(t, src, circuit.String())
}

func TestEmptyModules(t *testing.T) {
	src := "FIRRTL version 3.3.0\ncircuit A :\n  module A :\n  extmodule B :\n"

	circuit, err := grammar.ParseCircuit("empty.fir", src)
	require.NoError(t, err)
	require.Len(t, circuit.Modules, 2)
	assert.Empty(t, circuit.Modules[0].(*ast.Module).Stmts)
	assert.Nil(t, circuit.Modules[1].(*ast.ExtModule).DefName)
}

func TestLexicalErrorSurfaces(t *testing.T) {
	src := "FIRRTL version 3.3.0\ncircuit A :\n  module A :\n    node x = ?\n"

	_, err := grammar.ParseString("bad.fir", src)
	var tokErr *firlexer.InvalidTokenError
	require.ErrorAs(t, err, &tokErr)
	assert.Equal(t, "?", tokErr.Text)
	assert.Equal(t, 4, tokErr.Pos.Line)
}

func TestSyntaxError(t *testing.T) {
	src := "FIRRTL version 3.3.0\ncircuit A :\n  module A B\n"

	_, err := grammar.ParseString("bad.fir", src)
	require.Error(t, err)

	var pe participle.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Position().Line)
	assert.Equal(t, "bad.fir", pe.Position().Filename)
}

func TestConversionError(t *testing.T) {
	src := "FIRRTL version 3.3.0\ncircuit A :\n  module A :\n    wire w : UInt<99999999999>\n"

	_, err := grammar.ParseCircuit("wide.fir", src)
	var convErr *grammar.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, 4, convErr.Position().Line)
	assert.Contains(t, convErr.Message(), "width")
}

func TestLiteralOverflowKeepsNumError(t *testing.T) {
	src := "FIRRTL version 3.3.0\ncircuit A :\n  module A :\n    node x = SInt<80>(-0hFFFFFFFFFFFFFFFFFFFF)\n"

	_, err := grammar.ParseCircuit("big.fir", src)
	var convErr *grammar.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "-0hFFFFFFFFFFFFFFFFFFFF", convErr.Text)
	assert.ErrorIs(t, err, strconv.ErrRange)

	_, err = grammar.ParseCircuit("wide.fir", "FIRRTL version 3.3.0\ncircuit A :\n  module A :\n    wire w : UInt<99999999999>\n")
	require.ErrorAs(t, err, &convErr)
	assert.NoError(t, convErr.Unwrap())
}

func TestParseFileMissing(t *testing.T) {
	_, err := grammar.ParseFile("../examples/does-not-exist.fir")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
