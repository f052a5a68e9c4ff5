package lang

import "strconv"

// Kind identifies the syntactic role of a [Node].
type Kind int

const (
	// KindInvalid is the zero value and never produced by the parser.
	KindInvalid Kind = iota
	// KindMaterial is the root node.
	KindMaterial
	// KindShader holds the shader identifier preceding the material body.
	KindShader
	// KindVariable is a "var name = value;" declaration.
	KindVariable
	// KindSetupProxies is a block of proxies run at setup time.
	KindSetupProxies
	// KindRenderProxies is a block of proxies run at render time.
	KindRenderProxies
	// KindBlock is any other named top-level block.
	KindBlock
	// KindProxy is a named proxy invocation inside a block.
	KindProxy
	// KindProxyParameter is a "name = reference;" entry of a proxy.
	KindProxyParameter
	// KindVariableReference names a variable.
	KindVariableReference
	// KindArrayIndexReference names one element of an array variable.
	KindArrayIndexReference
	// KindValue wraps a literal string, number or array.
	KindValue
	// KindIdentifier is a bare name.
	KindIdentifier
	// KindString is a quoted string literal, quotes included.
	KindString
	// KindNumber wraps exactly one numeric class node.
	KindNumber
	// KindInteger is an unsigned integral literal.
	KindInteger
	// KindSignedInteger is an integral literal with a leading sign.
	KindSignedInteger
	// KindFloat is a numeric literal with an 'f' suffix.
	KindFloat
	// KindDouble is a numeric literal with a 'd' suffix.
	KindDouble
	// KindNonIntegral is an unsuffixed literal with a fraction or exponent.
	KindNonIntegral
	// KindSignedNonIntegral is a signed [KindNonIntegral].
	KindSignedNonIntegral
	// KindArray is a bracketed list of literals.
	KindArray
)

//nolint:gochecknoglobals
var kindName = [...]string{
	KindInvalid:             "Invalid",
	KindMaterial:            "Material",
	KindShader:              "Shader",
	KindVariable:            "Variable",
	KindSetupProxies:        "SetupProxies",
	KindRenderProxies:       "RenderProxies",
	KindBlock:               "Block",
	KindProxy:               "Proxy",
	KindProxyParameter:      "ProxyParameter",
	KindVariableReference:   "VariableReference",
	KindArrayIndexReference: "ArrayIndexReference",
	KindValue:               "Value",
	KindIdentifier:          "Identifier",
	KindString:              "String",
	KindNumber:              "Number",
	KindInteger:             "Integer",
	KindSignedInteger:       "SignedInteger",
	KindFloat:               "Float",
	KindDouble:              "Double",
	KindNonIntegral:         "NonIntegral",
	KindSignedNonIntegral:   "SignedNonIntegral",
	KindArray:               "Array",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindName) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}

	return kindName[k]
}

// IsNumeric reports whether k is one of the numeric lexical classes.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInteger, KindSignedInteger, KindFloat, KindDouble,
		KindNonIntegral, KindSignedNonIntegral:
		return true
	default:
		return false
	}
}

// IsBlock reports whether k is a top-level proxy block kind.
func (k Kind) IsBlock() bool {
	return k == KindSetupProxies || k == KindRenderProxies || k == KindBlock
}
