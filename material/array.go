package material

import (
	"log/slog"

	"github.com/ardnew/smf/lang"
)

// unifyArray converts an array literal of 2, 3 or 4 numeric elements into
// the array variant of its widest element class.
func unifyArray(n *lang.Node) (Value, error) {
	if n == nil || n.Kind != lang.KindArray {
		return nil, ErrUnsupportedValueKind.With(nodeAttrs(n)...)
	}

	size := len(n.Children)
	if size < 2 || size > 4 {
		return nil, ErrInvalidArraySize.
			With(nodeAttrs(n)...).
			With(slog.Int("size", size))
	}

	classes := make([]*lang.Node, size)
	w := widthUnknown

	for i, elem := range n.Children {
		switch {
		case elem == nil:
			return nil, ErrUnsupportedArrayElement.
				With(slog.Int("index", i))

		case elem.Kind == lang.KindNumber:
			class, ok := numberClass(elem)
			if !ok {
				return nil, ErrAmbiguousArrayElementType.
					With(nodeAttrs(elem)...).
					With(slog.Int("index", i))
			}

			classes[i] = class

		case elem.Kind.IsNumeric():
			classes[i] = elem

		default:
			return nil, ErrUnsupportedArrayElement.
				With(nodeAttrs(elem)...).
				With(slog.Int("index", i))
		}

		// Widen, never narrow
		w = max(w, widthOf(classes[i].Kind))
	}

	switch w {
	case widthInteger:
		elems, err := parseElements[Integer](classes, w)
		if err != nil {
			return nil, err
		}

		return intArray(elems), nil

	case widthFloat:
		elems, err := parseElements[Float](classes, w)
		if err != nil {
			return nil, err
		}

		return floatArray(elems), nil

	default:
		elems, err := parseElements[Double](classes, w)
		if err != nil {
			return nil, err
		}

		return doubleArray(elems), nil
	}
}

// parseElements parses every class node at width w.
func parseElements[T Integer | Float | Double](
	classes []*lang.Node,
	w width,
) ([]T, error) {
	elems := make([]T, len(classes))

	for i, class := range classes {
		v, err := parseNumber(class, w)
		if err != nil {
			return nil, err
		}

		elems[i] = v.(T) //nolint:forcetypeassert
	}

	return elems, nil
}

func intArray(e []Integer) Value {
	switch len(e) {
	case 2:
		return Array2{int32(e[0]), int32(e[1])}
	case 3:
		return Array3{int32(e[0]), int32(e[1]), int32(e[2])}
	default:
		return Array4{int32(e[0]), int32(e[1]), int32(e[2]), int32(e[3])}
	}
}

func floatArray(e []Float) Value {
	switch len(e) {
	case 2:
		return Array2F{float32(e[0]), float32(e[1])}
	case 3:
		return Array3F{float32(e[0]), float32(e[1]), float32(e[2])}
	default:
		return Array4F{float32(e[0]), float32(e[1]), float32(e[2]), float32(e[3])}
	}
}

func doubleArray(e []Double) Value {
	switch len(e) {
	case 2:
		return Array2D{float64(e[0]), float64(e[1])}
	case 3:
		return Array3D{float64(e[0]), float64(e[1]), float64(e[2])}
	default:
		return Array4D{float64(e[0]), float64(e[1]), float64(e[2]), float64(e[3])}
	}
}
