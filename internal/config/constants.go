package config

// SourceFileExtensions are all recognized input file extensions
var SourceFileExtensions = []string{".js", ".cjs", ".mjs"}

// AnnotatedFileExt is the extension of the rewritten, annotated source.
const AnnotatedFileExt = ".ts"

// ConfigFileName is looked up next to the entry file and in its parents.
const ConfigFileName = "typeinfer.yaml"

// Type names handed out by the front-end
const (
	NumberTypeName  = "number"
	StringTypeName  = "string"
	BooleanTypeName = "boolean"
	NullTypeName    = "null"
	ObjectTypeName  = "object"
	AnyTypeName     = "any"
	UnknownTypeName = "unknown"
)

// Unsolved parameter policies
const (
	UnsolvedOmit    = "omit"
	UnsolvedUnknown = "unknown"
)

// Accepted compiler option values, compared case-insensitively.
var (
	Targets = []string{
		"ES3", "ES5", "ES6", "ES2015", "ES2016", "ES2017", "ES2018", "ES2019",
		"ES2020", "ES2021", "ES2022", "ES2023", "ESNext",
	}
	ModuleKinds = []string{
		"None", "CommonJS", "AMD", "UMD", "System", "ES6", "ES2015", "ES2020",
		"ES2022", "ESNext", "Node16", "NodeNext", "Preserve",
	}
	ModuleResolutionKinds = []string{
		"Classic", "Node", "Node10", "Node16", "NodeNext", "Bundler",
	}
)
