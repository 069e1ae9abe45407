package ast

type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

type Port struct {
	Dir  Direction
	Name Identifier
	Type Type
	Info Info
}

// CircuitModule is a *Module or an *ExtModule.
type CircuitModule interface {
	String() string
	ModuleName() Identifier
	isCircuitModule()
}

type Module struct {
	Public bool
	Name   Identifier
	Ports  []*Port
	Stmts  []Stmt
	Info   Info
}

// ExtModule has no body; it is implemented outside the circuit. DefName
// is nil when the declaration gives none.
type ExtModule struct {
	Name    Identifier
	Ports   []*Port
	DefName Identifier
	Params  []Parameter
	Info    Info
}

func (*Module) isCircuitModule()    {}
func (*ExtModule) isCircuitModule() {}

func (m *Module) ModuleName() Identifier    { return m.Name }
func (m *ExtModule) ModuleName() Identifier { return m.Name }

type Parameter interface {
	String() string
	ParamName() Identifier
	isParameter()
}

type IntParam struct {
	Name  Identifier
	Value int64
}

// StringParam holds Value as written between the quotes.
type StringParam struct {
	Name  Identifier
	Value string
}

func (*IntParam) isParameter()    {}
func (*StringParam) isParameter() {}

func (p *IntParam) ParamName() Identifier    { return p.Name }
func (p *StringParam) ParamName() Identifier { return p.Name }

type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

type Circuit struct {
	Version Version
	Name    Identifier
	Info    Info
	Modules []CircuitModule
}

// Module looks up a module or extmodule by name.
func (c *Circuit) Module(name string) CircuitModule {
	for _, m := range c.Modules {
		if m.ModuleName().String() == name {
			return m
		}
	}
	return nil
}
