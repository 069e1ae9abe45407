package errors

import (
	"fmt"

	"firrtl/internal/ast"
	"firrtl/internal/lexer"
	"firrtl/token"
)

// declSite is where a circuit or module name appears in the source.
type declSite struct {
	pos    token.Position
	length int
}

// Lint reports structural warnings for a circuit that parsed. source must
// be the text the circuit was parsed from; it is used to place warnings.
func Lint(source string, circuit *ast.Circuit) []CompilerError {
	if circuit == nil {
		return nil
	}

	top, modules := declSites(source)
	var warnings []CompilerError

	name := circuit.Name.String()
	if circuit.Module(name) == nil && !hasPublicModule(circuit) {
		names := make([]string, 0, len(circuit.Modules))
		for _, m := range circuit.Modules {
			names = append(names, m.ModuleName().String())
		}
		builder := NewWarning(WarningMissingMain,
			fmt.Sprintf("circuit '%s' has no module named '%s'", name, name), top.pos).
			WithLength(top.length).
			WithNote("the main module of a circuit must share the circuit's name")
		for _, similar := range findSimilarNames(name, names) {
			builder = builder.WithReplacement(
				fmt.Sprintf("rename the circuit to '%s'", similar),
				fmt.Sprintf("circuit %s :", similar))
		}
		warnings = append(warnings, builder.Build())
	}

	first := make(map[string]declSite)
	for i, m := range circuit.Modules {
		var site declSite
		if i < len(modules) {
			site = modules[i]
		}
		mname := m.ModuleName().String()
		prev, seen := first[mname]
		if !seen {
			first[mname] = site
			continue
		}
		warnings = append(warnings, NewWarning(WarningDuplicateModule,
			fmt.Sprintf("module '%s' is declared more than once", mname), site.pos).
			WithLength(site.length).
			WithNote(fmt.Sprintf("first declared at %s", prev.pos)).
			Build())
	}

	return warnings
}

func hasPublicModule(circuit *ast.Circuit) bool {
	for _, m := range circuit.Modules {
		if mod, ok := m.(*ast.Module); ok && mod.Public {
			return true
		}
	}
	return false
}

// declSites finds the circuit name and each module or extmodule name in
// declaration order.
func declSites(source string) (declSite, []declSite) {
	var (
		top     declSite
		modules []declSite
		prev    token.Kind
	)
	l := lexer.New(source)
	for {
		ts, ok := l.NextToken()
		if !ok || ts.Err() != nil {
			return top, modules
		}
		site := declSite{pos: ts.Pos, length: ts.Span.Len()}
		switch prev {
		case token.Circuit:
			top = site
		case token.Module, token.ExtModule:
			modules = append(modules, site)
		}
		prev = ts.Token.Kind
	}
}
