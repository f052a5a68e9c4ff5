package query

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/smf/material"
)

// FormatResult renders an expression result on one line.
//
// Strings are quoted, lists are written as [a, b] and maps as {k: v} with
// keys in lexical order. A nil result is the empty string.
func FormatResult(result any) string {
	var b strings.Builder

	formatValue(&b, result)

	return b.String()
}

func formatValue(b *strings.Builder, v any) {
	switch v := v.(type) {
	case nil:

	case bool:
		b.WriteString(strconv.FormatBool(v))

	case int:
		b.WriteString(strconv.Itoa(v))

	case int64:
		b.WriteString(strconv.FormatInt(v, 10))

	case float64:
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))

	case string:
		b.WriteString(strconv.Quote(v))

	case material.Value:
		if s, err := material.Literal(v); err == nil {
			b.WriteString(s)
		} else {
			b.WriteString(v.String())
		}

	case []any:
		b.WriteByte('[')

		for i, e := range v {
			if i > 0 {
				b.WriteString(", ")
			}

			formatValue(b, e)
		}

		b.WriteByte(']')

	case map[string]any:
		b.WriteByte('{')

		for i, k := range slices.Sorted(maps.Keys(v)) {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(k)
			b.WriteString(": ")
			formatValue(b, v[k])
		}

		b.WriteByte('}')

	default:
		fmt.Fprint(b, v)
	}
}
