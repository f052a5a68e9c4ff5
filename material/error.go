package material

import "github.com/ardnew/smf/pkg"

// Predefined errors (sentinel values).
// Errors returned by this package carry node, pos and text attributes and
// match one of these through errors.Is.
var (
	ErrMissingShaderIdentifier = pkg.NewError("missing shader identifier")
	ErrExpectedIdentifier      = pkg.NewError("expected identifier")
	ErrNoShaderSpecified       = pkg.NewError("no shader specified")
	ErrMalformedNumber         = pkg.NewError("malformed number")
	ErrUnsupportedValueKind    = pkg.NewError("unsupported value kind")
	ErrInvalidArraySize        = pkg.NewError("invalid array size")
	ErrUnsupportedArrayElement = pkg.NewError("unsupported array element")
	ErrMalformedIndex          = pkg.NewError("malformed array index")
	ErrInvalidReferenceShape   = pkg.NewError("invalid reference shape")

	ErrAmbiguousArrayElementType = pkg.NewError(
		"ambiguous array element type",
	)
	ErrArrayLiteralNotAllowedAsParameter = pkg.NewError(
		"array literal not allowed as parameter",
	)
)
