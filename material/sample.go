package material

import _ "embed"

// Sample is the source of a small but complete UnlitGeneric material.
//
//go:embed UnlitGeneric.smf
var Sample string
