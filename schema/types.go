package schema

// Config is the canonical input of one transform call.
//
// Field tags name the keyed-mapping key a host uses; `required:"true"`
// marks keys whose absence is a decode error.
type Config struct {
	Env                 map[string]string `mapstructure:"env"`
	Define              map[string]string `mapstructure:"define"`
	Code                string            `mapstructure:"code" required:"true"`
	Filename            string            `mapstructure:"filename" required:"true"`
	ModuleID            string            `mapstructure:"module_id"`
	ProjectRoot         string            `mapstructure:"project_root"`
	Loader              Loader            `mapstructure:"loader"`
	Target              Target            `mapstructure:"target"`
	Format              Format            `mapstructure:"format"`
	Platform            Platform          `mapstructure:"platform"`
	LegalComments       LegalComments     `mapstructure:"legal_comments"`
	JSXPragma           string            `mapstructure:"jsx_pragma"`
	JSXPragmaFrag       string            `mapstructure:"jsx_pragma_frag"`
	JSXImportSource     string            `mapstructure:"jsx_import_source"`
	Banner              string            `mapstructure:"banner"`
	Footer              string            `mapstructure:"footer"`
	Drop                []Drop            `mapstructure:"drop"`
	LineLimit           int               `mapstructure:"line_limit"`
	SourceMaps          bool              `mapstructure:"source_maps"`
	Minify              bool              `mapstructure:"minify"`
	KeepNames           bool              `mapstructure:"keep_names"`
	IsDevelopment       bool              `mapstructure:"is_development"`
	ReplaceEnv          bool              `mapstructure:"replace_env"`
	AutomaticJSXRuntime bool              `mapstructure:"automatic_jsx_runtime"`
}

// Output is the success payload of a transform.
type Output struct {
	Code          string       `mapstructure:"code"`
	Map           string       `mapstructure:"map"`
	LegalComments string       `mapstructure:"legal_comments"`
	Warnings      []Diagnostic `mapstructure:"warnings"`
}

// Diagnostics is the payload returned when the source could not be
// transformed. It is a regular value, not an adapter failure.
type Diagnostics struct {
	Errors   []Diagnostic `mapstructure:"diagnostics"`
	Warnings []Diagnostic `mapstructure:"warnings"`
}

// Severity of a single diagnostic entry.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one structured message produced by the transform.
type Diagnostic struct {
	Message        string          `mapstructure:"message"`
	ID             string          `mapstructure:"id"`
	Severity       Severity        `mapstructure:"severity"`
	File           string          `mapstructure:"file"`
	CodeHighlights []CodeHighlight `mapstructure:"code_highlights"`
	Hints          []string        `mapstructure:"hints"`
}

// CodeHighlight points at a span of the input source.
type CodeHighlight struct {
	Message string         `mapstructure:"message"`
	Loc     SourceLocation `mapstructure:"loc"`
}

// SourceLocation is a 1-based, inclusive line/column span.
type SourceLocation struct {
	StartLine int `mapstructure:"start_line"`
	StartCol  int `mapstructure:"start_col"`
	EndLine   int `mapstructure:"end_line"`
	EndCol    int `mapstructure:"end_col"`
}

// Result is what the transform returns: exactly one of Output or
// Diagnostics is set.
type Result struct {
	Output      *Output
	Diagnostics *Diagnostics
}

// Succeeded returns a Result carrying out.
func Succeeded(out Output) Result {
	return Result{Output: &out}
}

// Failed returns a Result carrying diags.
func Failed(diags Diagnostics) Result {
	return Result{Diagnostics: &diags}
}

// Valid reports whether exactly one arm of the result is set.
func (r Result) Valid() bool {
	return (r.Output == nil) != (r.Diagnostics == nil)
}
