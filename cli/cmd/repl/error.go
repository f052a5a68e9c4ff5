package repl

import "github.com/ardnew/smf/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds = pkg.NewError("history index out of range")
	ErrNoLoader    = pkg.NewError("no material loader")
	ErrNoEditPath  = pkg.NewError("material has no file to edit")
)
