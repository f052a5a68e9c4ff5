package material

import (
	"log/slog"
	"sort"

	"github.com/ardnew/smf/lang"
)

func sortedKeys[T any](m map[string]T) []string {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// nodeAttrs describes n for errors and log records.
func nodeAttrs(n *lang.Node) []slog.Attr {
	if n == nil {
		return []slog.Attr{slog.String("node", "<nil>")}
	}

	return []slog.Attr{
		slog.String("node", n.Kind.String()),
		slog.String("pos", n.Pos.String()),
		slog.String("text", n.Text),
	}
}
