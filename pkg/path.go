package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// debugBinary matches the default output name of the dlv debugger.
var debugBinary = regexp.MustCompile(`^__debug_bin\d*$`)

// Prefix returns the executable's base name without extension or leading
// dots. It names the configuration and cache directories and, upper-cased,
// prefixes the environment variables that override them. A dlv debug binary
// is reported as [Name].
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		exe, err := os.Executable()
		if err != nil {
			exe = os.Args[0]
		}

		id := filepath.Base(exe)
		id = strings.TrimSuffix(id, filepath.Ext(id))
		id = strings.TrimLeft(id, ".")

		if id == "" || debugBinary.MatchString(id) {
			return Name
		}

		return id
	},
)

// EnvVar returns the name of the environment variable for key, such as
// SMF_CONFIG_DIR for "config_dir".
func EnvVar(key string) string {
	id := strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			return r
		default:
			return '_'
		}
	}, Prefix()+"_"+key)

	return strings.ToUpper(id)
}

// ConfigDir returns the configuration directory: $SMF_CONFIG_DIR if set,
// otherwise [Prefix] under the user configuration directory.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string { return userDir("config_dir", os.UserConfigDir, ".config") },
)

// CacheDir returns the directory for history, profiles and the catalog:
// $SMF_CACHE_DIR if set, otherwise [Prefix] under the user cache directory.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string { return userDir("cache_dir", os.UserCacheDir, ".cache") },
)

// CatalogPath returns the default path of the material catalog database.
//
//nolint:gochecknoglobals
var CatalogPath = sync.OnceValue(
	func() string { return filepath.Join(CacheDir(), "catalog.db") },
)

// userDir resolves a per-user directory. When base fails, the hidden
// directory fallback under $HOME is used, and the working directory after
// that.
func userDir(key string, base func() (string, error), fallback string) string {
	if dir := os.Getenv(EnvVar(key)); dir != "" {
		return dir
	}

	dir, err := base()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return filepath.Join(".", fallback, Prefix())
		}

		dir = filepath.Join(home, fallback)
	}

	return filepath.Join(dir, Prefix())
}
