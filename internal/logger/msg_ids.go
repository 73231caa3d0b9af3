package logger

// Deprecation warnings are given a message ID so that the "silenceDeprecations"
// option can turn specific ones off. Errors do not get a message ID because
// you cannot turn an error into a non-error (that would make an invalid
// compilation succeed). Diagnostics with no specific deprecation behind them
// use MsgID_None.
type MsgID = uint8

const (
	MsgID_None MsgID = iota

	// Legacy call syntax and APIs slated for removal
	MsgID_CallString
	MsgID_ElseIf
	MsgID_MoveVariableEdits
	MsgID_NewGlobal
	MsgID_ColorFunctions
	MsgID_LegacyJSAPI
	MsgID_MixedDecls

	// Behavior changes in the value algebra
	MsgID_SlashDiv
	MsgID_StrictUnary
	MsgID_FunctionUnits
	MsgID_DurationPrecision
	MsgID_AbsPercent
	MsgID_UnitlessIndex

	// Module system
	MsgID_GlobalBuiltin
	MsgID_ImportRule

	MsgID_END // Keep this at the end; used only for tests
)

var tagToMsgID = map[string]MsgID{
	"call-string":        MsgID_CallString,
	"elseif":              MsgID_ElseIf,
	"move-variable-edits": MsgID_MoveVariableEdits,
	"new-global":          MsgID_NewGlobal,
	"color-functions":     MsgID_ColorFunctions,
	"legacy-js-api":       MsgID_LegacyJSAPI,
	"mixed-decls":         MsgID_MixedDecls,
	"slash-div":           MsgID_SlashDiv,
	"strict-unary":        MsgID_StrictUnary,
	"function-units":      MsgID_FunctionUnits,
	"duration-precision":  MsgID_DurationPrecision,
	"abs-percent":         MsgID_AbsPercent,
	"unitless-index":      MsgID_UnitlessIndex,
	"global-builtin":      MsgID_GlobalBuiltin,
	"import":              MsgID_ImportRule,
}

var msgIDToTag map[MsgID]string

func init() {
	msgIDToTag = make(map[MsgID]string, len(tagToMsgID))
	for tag, id := range tagToMsgID {
		msgIDToTag[id] = tag
	}
}

// StringToMsgIDs records that the deprecation named by "tag" (one entry of
// the "silenceDeprecations" option) should be reported at "logLevel".
func StringToMsgIDs(tag string, logLevel LogLevel, overrides map[MsgID]LogLevel) {
	if id, ok := tagToMsgID[tag]; ok {
		overrides[id] = logLevel
	}
	// Unknown tags are ignored: a deprecation may have been renamed or
	// removed since calling code was written against an older version.
}

func MsgIDToString(id MsgID) string {
	return msgIDToTag[id]
}
