package config

// ConfigFileNames are the recognized deployment config file names, in lookup order.
var ConfigFileNames = []string{"strata.yaml", "strata.yml"}

// TypeNameCapacity is the size of the buffer the `type` method writes into,
// terminator included. Names longer than TypeNameCapacity-1 bytes are truncated.
const TypeNameCapacity = 16

// Built-in type names
const (
	BooleanTypeName   = "boolean"
	Integer32TypeName = "integer32"
	TextTypeName      = "text"
	FunctionTypeName  = "function"
	UUIDTypeName      = "uuid"
)

// Built-in method names
const (
	SizeofMethodName  = "sizeof"
	TypeMethodName    = "type"
	LengthMethodName  = "length"
	NotMethodName     = "not"
	VersionMethodName = "version"
)

// Operator pseudo-names. Operators live in the same table as methods.
const (
	AssignOpName  = "assign"
	EqualOpName   = "equal"
	InequalOpName = "inequal"
	LessOpName    = "less"
	GreaterOpName = "greater"
	AddOpName     = "add"
	SubOpName     = "sub"
	MulOpName     = "mul"
	AndOpName     = "and"
	OrOpName      = "or"
	ConcatOpName  = "concat"
)

// CastPrefix prefixes the method name of a cast entry, e.g. "cast:text".
const CastPrefix = "cast:"

// Validation modes
const (
	ValidationChecked   = "checked"
	ValidationUnchecked = "unchecked"
)
