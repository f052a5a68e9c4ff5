package cmd

import "github.com/ardnew/smf/pkg"

var (
	ErrOpenSource  = pkg.NewError("open source")
	ErrFormat      = pkg.NewError("format material")
	ErrYAMLMarshal = pkg.NewError("marshal YAML")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrCheck       = pkg.NewError("material check failed")
	ErrWatch       = pkg.NewError("watch source")
)
