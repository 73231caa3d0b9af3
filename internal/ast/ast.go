// Package ast defines the parse tree produced by internal/sassparser: the
// Stylesheet a Loader hands to the evaluator. The shape follows the teacher's
// ast.ImportRecord / Index32 bookkeeping style, and statements and
// expressions are encoded the way the teacher encodes JS and CSS AST nodes:
// a node struct embeds a Loc and a narrow marker-interface Data field
// (js_ast.Expr{Loc, Data E}, css_ast.Rule{Loc, Data R}) rather than a tag
// enum with a big union struct.
package ast

import "github.com/go-sass/sassc/internal/logger"

// Syntax is the source dialect a Stylesheet was parsed from. It never
// changes the value algebra, only how significant whitespace/braces are.
type Syntax uint8

const (
	SyntaxSCSS Syntax = iota
	SyntaxIndented
	SyntaxCSS
)

func (s Syntax) String() string {
	switch s {
	case SyntaxIndented:
		return "indented"
	case SyntaxCSS:
		return "css"
	default:
		return "scss"
	}
}

// Source pairs a canonical Identifier with the text it was parsed from.
// The text is retained only long enough to parse and to render caret
// excerpts in diagnostics; nothing past that point should hold onto it.
type Source struct {
	Identifier Identifier
	Syntax     Syntax
	Contents   string

	// PrettyPath is what diagnostics print instead of the full identifier,
	// mirroring logger.Source.PrettyPath.
	PrettyPath string
}

func (s Source) LoggerSource() logger.Source {
	return logger.Source{
		Index:          0,
		KeyPath:        logger.Path{Text: s.Identifier.String()},
		PrettyPath:     s.PrettyPath,
		Contents:       s.Contents,
		IdentifierName: s.Identifier.Basename(),
	}
}

// Stylesheet is the root of a parsed module: its top-level statements plus
// the statically-discoverable @use/@forward/@import records, hoisted out
// during parsing the way the teacher hoists ast.ImportRecord out of the JS
// AST so the scanner can walk them without re-descending the tree.
type Stylesheet struct {
	Source  Source
	Body    []Statement
	Loads   []LoadRecord
}

// LoadKind distinguishes the three statements that pull in another module.
type LoadKind uint8

const (
	LoadUse LoadKind = iota
	LoadForward
	LoadImport
)

func (k LoadKind) String() string {
	switch k {
	case LoadForward:
		return "@forward"
	case LoadImport:
		return "@import"
	default:
		return "@use"
	}
}

// LoadRecord is one statically-known load target, hoisted out of the body
// for the Loader to resolve and coalesce. It points back at the Statement
// (by index into Stylesheet.Body) that carries the rest of the details
// (the "with"/"show"/"hide" configuration, the "as" clause, etc).
type LoadRecord struct {
	Kind        LoadKind
	URL         string
	Range       logger.Range
	StmtIndex   int
}

// Statement is a top-level or nested node in a Stylesheet's body. It is a
// closed sum type: the only implementations are the S* types below, and
// isStatement is unexported so external packages cannot add new ones.
type Statement struct {
	Loc  logger.Loc
	Data S
}

type S interface{ isStatement() }

type SVariableDecl struct {
	Namespace string // empty unless written "$ns.$name"
	Name      string
	Value     Expr
	Default   bool // "!default"
	Global    bool // "!global"
}

type SStyleRule struct {
	Selector []InterpolatedChunk // raw selector text with #{} spans
	Body     []Statement
}

type SDeclaration struct {
	Property  []InterpolatedChunk
	Value     *Expr // nil if the declaration only has a nested Body ("font: { ... }")
	Important bool
	Body      []Statement
}

type SUse struct {
	URL         string
	Namespace   string // "" means derive from URL, "*" means global
	Configuration []ConfigVar
	Range       logger.Range
}

type SForward struct {
	URL           string
	Prefix        string
	ShowOnly      []string
	Hide          []string
	Configuration []ConfigVar
	Range         logger.Range
}

type SImport struct {
	// Sass allows a comma-separated list of targets on one @import; each
	// becomes its own entry, matching the original's statement semantics.
	Targets []ImportTarget
	Range   logger.Range
}

type ImportTarget struct {
	URL       string
	IsPlainCSS bool // "url(...)" / ".css" / has a protocol -> never resolved as a module
	MediaQuery []InterpolatedChunk
}

// ConfigVar is one "$name: value" entry of a @use/@forward "with (...)" list.
type ConfigVar struct {
	Name    string
	Value   Expr
	Default bool
}

type SFunctionDecl struct {
	Name   string
	Params []Param
	Body   []Statement
}

type SMixinDecl struct {
	Name       string
	Params     []Param
	AcceptsContent bool
	Body       []Statement
}

type Param struct {
	Name    string
	Default *Expr // nil means required
	IsRest  bool
}

type SInclude struct {
	Namespace string
	Name      string
	Args      ArgumentInvocation
	Content   *ContentBlock // non-nil if "@include x { ... }"
}

type ContentBlock struct {
	Params []Param
	Body   []Statement
}

type SContentRule struct {
	Args ArgumentInvocation
}

type SIf struct {
	Clauses []IfClause
	Else    []Statement // nil if no @else
}

type IfClause struct {
	Condition Expr
	Body      []Statement
}

type SEach struct {
	Variables []string
	List      Expr
	Body      []Statement
}

type SFor struct {
	Variable  string
	From, To  Expr
	Exclusive bool // "to" vs "through"
	Body      []Statement
}

type SWhile struct {
	Condition Expr
	Body      []Statement
}

type SReturn struct {
	Value Expr
}

type SAtRoot struct {
	Query string // raw "(with: ...)" / "(without: ...)" text, empty means default
	Body  []Statement
}

type SMedia struct {
	Query []InterpolatedChunk
	Body  []Statement
}

type SSupports struct {
	Condition []InterpolatedChunk
	Body      []Statement
}

type SDebug struct{ Value Expr }
type SWarn struct{ Value Expr }
type SError struct{ Value Expr }

// SPlainAtRule is a passthrough at-rule the evaluator does not give special
// meaning to ("@font-face", "@keyframes", vendor at-rules, ...): its prelude
// is interpolated and its body (if any) is evaluated and re-nested as-is.
type SPlainAtRule struct {
	Name    string
	Prelude []InterpolatedChunk
	Body    []Statement // nil if it has no block ("@charset \"utf-8\";")
}

type SComment struct {
	Text        string
	IsPreserved bool // "/*! ... */" survives the "compressed" output style
}

func (*SVariableDecl) isStatement() {}
func (*SStyleRule) isStatement()    {}
func (*SDeclaration) isStatement()  {}
func (*SUse) isStatement()          {}
func (*SForward) isStatement()      {}
func (*SImport) isStatement()       {}
func (*SFunctionDecl) isStatement() {}
func (*SMixinDecl) isStatement()    {}
func (*SInclude) isStatement()      {}
func (*SContentRule) isStatement()  {}
func (*SIf) isStatement()           {}
func (*SEach) isStatement()         {}
func (*SFor) isStatement()          {}
func (*SWhile) isStatement()        {}
func (*SReturn) isStatement()       {}
func (*SAtRoot) isStatement()       {}
func (*SMedia) isStatement()        {}
func (*SSupports) isStatement()     {}
func (*SDebug) isStatement()        {}
func (*SWarn) isStatement()         {}
func (*SError) isStatement()        {}
func (*SPlainAtRule) isStatement()  {}
func (*SComment) isStatement()      {}
