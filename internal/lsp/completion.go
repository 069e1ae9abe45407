package lsp

import (
	"slices"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"firrtl/internal/ast"
	"firrtl/token"
)

// completionItems lists the reserved words, the primitive operations and,
// when the document parsed, the module and signal names it declares.
func completionItems(circuit *ast.Circuit) []protocol.CompletionItem {
	keywords := token.Keywords()
	slices.Sort(keywords)

	ops := append(token.Operators(), token.ParamOperators...)
	slices.Sort(ops)

	keywordKind := protocol.CompletionItemKindKeyword
	functionKind := protocol.CompletionItemKindFunction
	detail := "primitive operation"

	items := make([]protocol.CompletionItem, 0, len(keywords)+len(ops))
	for _, kw := range keywords {
		items = append(items, protocol.CompletionItem{Label: kw, Kind: &keywordKind})
	}
	for _, op := range ops {
		items = append(items, protocol.CompletionItem{
			Label:      op,
			Kind:       &functionKind,
			Detail:     &detail,
			InsertText: ptrString(op + "("),
		})
	}

	if circuit != nil {
		items = append(items, declaredItems(circuit)...)
	}
	return items
}

func declaredItems(circuit *ast.Circuit) []protocol.CompletionItem {
	moduleKind := protocol.CompletionItemKindModule
	variableKind := protocol.CompletionItemKindVariable

	var items []protocol.CompletionItem
	seen := map[string]bool{}
	add := func(name ast.Identifier, kind *protocol.CompletionItemKind, detail string) {
		if name == nil {
			return
		}
		label := name.String()
		if seen[label] {
			return
		}
		seen[label] = true
		items = append(items, protocol.CompletionItem{Label: label, Kind: kind, Detail: ptrString(detail)})
	}

	for _, m := range circuit.Modules {
		add(m.ModuleName(), &moduleKind, "module")
	}
	for _, m := range circuit.Modules {
		module, ok := m.(*ast.Module)
		if !ok {
			continue
		}
		for _, p := range module.Ports {
			add(p.Name, &variableKind, module.Name.String()+" port")
		}
		ast.WalkStmts(module.Stmts, func(s ast.Stmt) bool {
			add(ast.Declared(s), &variableKind, module.Name.String())
			return true
		})
	}
	return items
}
