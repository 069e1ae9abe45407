package token

var keywords = map[string]Kind{
	"Clock":            Clock,
	"Reset":            Reset,
	"AsyncReset":       AsyncReset,
	"UInt":             UInt,
	"SInt":             SInt,
	"probe":            ProbeType,
	"Probe":            Probe,
	"Analog":           Analog,
	"Fixed":            Fixed,
	"flip":             Flip,
	"mux":              Mux,
	"validif":          ValidIf,
	"smem":             SMem,
	"cmem":             CMem,
	"write":            Write,
	"read":             Read,
	"infer":            Infer,
	"mport":            Mport,
	"data-type":        DataType,
	"depth":            Depth,
	"read-latency":     ReadLatency,
	"write-latency":    WriteLatency,
	"read-under-write": ReadUnderWrite,
	"reader":           Reader,
	"writer":           Writer,
	"readwriter":       Readwriter,
	"wire":             Wire,
	"reg":              Reg,
	"regreset":         RegReset,
	"inst":             Inst,
	"of":               Of,
	"node":             Node,
	"invalidate":       Invalidate,
	"attach":           Attach,
	"when":             When,
	"else":             Else,
	"stop":             Stop,
	"printf":           Printf,
	"assert":           Assert,
	"skip":             Skip,
	"input":            Input,
	"output":           Output,
	"module":           Module,
	"extmodule":        ExtModule,
	"defname":          DefName,
	"parameter":        Parameter,
	"intmodule":        IntModule,
	"intrinsic":        Intrinsic,
	"FIRRTL":           FIRRTL,
	"version":          Version,
	"circuit":          Circuit,
	"connect":          Connect,
	"public":           Public,
	"define":           Define,
	"const":            Const,
}

var operators = map[string]Kind{
	"add":  E2Op,
	"sub":  E2Op,
	"mul":  E2Op,
	"div":  E2Op,
	"rem":  E2Op,
	"lt":   E2Op,
	"leq":  E2Op,
	"gt":   E2Op,
	"geq":  E2Op,
	"eq":   E2Op,
	"neq":  E2Op,
	"dshl": E2Op,
	"dshr": E2Op,
	"and":  E2Op,
	"or":   E2Op,
	"xor":  E2Op,
	"cat":  E2Op,

	"asUInt":       E1Op,
	"asSInt":       E1Op,
	"asClock":      E1Op,
	"asAsyncReset": E1Op,
	"cvt":          E1Op,
	"neg":          E1Op,
	"not":          E1Op,
	"andr":         E1Op,
	"orr":          E1Op,
	"xorr":         E1Op,
}

var punctuation = map[string]Kind{
	"/":   Slash,
	"[":   LeftSquare,
	"]":   RightSquare,
	"<":   LeftAngle,
	">":   RightAngle,
	"{":   LeftBracket,
	"}":   RightBracket,
	"(":   LeftParenthesis,
	")":   RightParenthesis,
	"@":   AtSymbol,
	"`":   Backtick,
	".":   Period,
	"%[[": AnnoStart,
	"]]":  AnnoEnd,
	"<<":  DoubleLeft,
	">>":  DoubleRight,
	",":   Symbol,
	":":   Symbol,
	"=":   Symbol,
	"%":   Symbol,
}

// LookupWord classifies a bare word as a keyword, a one- or two-operand
// operator name, or an identifier.
func LookupWord(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	if k, ok := operators[word]; ok {
		return k
	}
	return Identifier
}

// LookupPunct classifies punctuation text. Unknown text yields Error.
func LookupPunct(text string) Kind {
	if k, ok := punctuation[text]; ok {
		return k
	}
	return Error
}

// Keywords returns the reserved words, used for editor completion.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}
	return words
}

// Operators returns the operator names recognised as words. The
// parameterised operators (pad, shl, shr, head, tail, bits) are only
// recognised with a trailing "(" and are listed separately.
func Operators() []string {
	ops := make([]string, 0, len(operators))
	for op := range operators {
		ops = append(ops, op)
	}
	return ops
}

// ParamOperators lists the operators that take integer parameters.
var ParamOperators = []string{"pad", "shl", "shr", "head", "tail", "bits"}
