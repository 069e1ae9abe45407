package errors

// Error codes for the FIRRTL toolchain.
// These codes are used in diagnostics and documentation to provide
// consistent error identification across the CLI and language server.
//
// Error code ranges:
// E0100-E0199: Lexical errors
// E0200-E0299: Parser and AST construction errors
// E0800-E0899: Warning codes
// E0900-E0999: Tooling errors

const (
	// E0100: Input that matches no token
	ErrorInvalidToken = "E0100"

	// E0101: Integer literal that does not fit in 64 bits
	ErrorInvalidInteger = "E0101"

	// E0102: Backtick escape that does not hold an integer
	ErrorMalformedEscape = "E0102"

	// E0200: Token sequence that does not match the grammar
	ErrorSyntax = "E0200"

	// E0201: Width, size, or index out of range
	ErrorInvalidWidth = "E0201"

	// E0800: Circuit has no main module
	WarningMissingMain = "E0800"

	// E0801: Two modules share a name
	WarningDuplicateModule = "E0801"

	// E0900: File could not be read
	ErrorIO = "E0900"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorInvalidToken:
		return "Input does not form a valid FIRRTL token"
	case ErrorInvalidInteger:
		return "Integer literal is out of range"
	case ErrorMalformedEscape:
		return "Escaped identifier must contain only an integer"
	case ErrorSyntax:
		return "Unexpected token"
	case ErrorInvalidWidth:
		return "Width, vector size, or index does not fit its range"
	case WarningMissingMain:
		return "Circuit has no module with the circuit's name"
	case WarningDuplicateModule:
		return "Module name is declared more than once"
	case ErrorIO:
		return "Input file could not be read"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code >= "E0800" && code < "E0900" || (code != "" && code[0] == 'W')
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Lexer"
	case code >= "E0200" && code < "E0300":
		return "Parser"
	case code >= "E0800" && code < "E0900":
		return "Warning"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
