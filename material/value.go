package material

import (
	"strconv"
	"strings"
)

// ValueKind identifies the concrete type of a [Value].
type ValueKind int

const (
	KindNone ValueKind = iota
	KindFloat
	KindDouble
	KindInteger
	KindString
	KindArray2
	KindArray3
	KindArray4
	KindArray2F
	KindArray3F
	KindArray4F
	KindArray2D
	KindArray3D
	KindArray4D
)

//nolint:gochecknoglobals
var valueKindName = [...]string{
	KindNone:    "NONE",
	KindFloat:   "FLOAT",
	KindDouble:  "DOUBLE",
	KindInteger: "INTEGER",
	KindString:  "STRING",
	KindArray2:  "ARRAY2",
	KindArray3:  "ARRAY3",
	KindArray4:  "ARRAY4",
	KindArray2F: "ARRAY2F",
	KindArray3F: "ARRAY3F",
	KindArray4F: "ARRAY4F",
	KindArray2D: "ARRAY2D",
	KindArray3D: "ARRAY3D",
	KindArray4D: "ARRAY4D",
}

func (k ValueKind) String() string {
	if k < 0 || int(k) >= len(valueKindName) {
		return "ValueKind(" + strconv.Itoa(int(k)) + ")"
	}

	return valueKindName[k]
}

// ParseValueKind returns the kind named s, as printed by
// [ValueKind.String].
func ParseValueKind(s string) (ValueKind, bool) {
	for k, name := range valueKindName {
		if name == s {
			return ValueKind(k), true
		}
	}

	return KindNone, false
}

// Len returns the number of array elements of kind k, or 0 for scalars.
func (k ValueKind) Len() int {
	switch k {
	case KindArray2, KindArray2F, KindArray2D:
		return 2
	case KindArray3, KindArray3F, KindArray3D:
		return 3
	case KindArray4, KindArray4F, KindArray4D:
		return 4
	default:
		return 0
	}
}

// Elem returns the scalar kind of the elements of array kind k.
// Scalar kinds return themselves.
func (k ValueKind) Elem() ValueKind {
	switch k {
	case KindArray2, KindArray3, KindArray4:
		return KindInteger
	case KindArray2F, KindArray3F, KindArray4F:
		return KindFloat
	case KindArray2D, KindArray3D, KindArray4D:
		return KindDouble
	default:
		return k
	}
}

// Value is a typed material value.
// The set of implementations is closed; see the Kind constants.
type Value interface {
	Kind() ValueKind
	String() string

	value()
}

type (
	// None is the absence of a value.
	None struct{}
	// Float is a 32-bit floating point scalar.
	Float float32
	// Double is a 64-bit floating point scalar.
	Double float64
	// Integer is a 32-bit signed integer scalar.
	Integer int32
	// String is an unquoted string.
	String string

	Array2 [2]int32
	Array3 [3]int32
	Array4 [4]int32

	Array2F [2]float32
	Array3F [3]float32
	Array4F [4]float32

	Array2D [2]float64
	Array3D [3]float64
	Array4D [4]float64
)

func (None) Kind() ValueKind    { return KindNone }
func (Float) Kind() ValueKind   { return KindFloat }
func (Double) Kind() ValueKind  { return KindDouble }
func (Integer) Kind() ValueKind { return KindInteger }
func (String) Kind() ValueKind  { return KindString }
func (Array2) Kind() ValueKind  { return KindArray2 }
func (Array3) Kind() ValueKind  { return KindArray3 }
func (Array4) Kind() ValueKind  { return KindArray4 }
func (Array2F) Kind() ValueKind { return KindArray2F }
func (Array3F) Kind() ValueKind { return KindArray3F }
func (Array4F) Kind() ValueKind { return KindArray4F }
func (Array2D) Kind() ValueKind { return KindArray2D }
func (Array3D) Kind() ValueKind { return KindArray3D }
func (Array4D) Kind() ValueKind { return KindArray4D }

func (None) value()    {}
func (Float) value()   {}
func (Double) value()  {}
func (Integer) value() {}
func (String) value()  {}
func (Array2) value()  {}
func (Array3) value()  {}
func (Array4) value()  {}
func (Array2F) value() {}
func (Array3F) value() {}
func (Array4F) value() {}
func (Array2D) value() {}
func (Array3D) value() {}
func (Array4D) value() {}

func (None) String() string      { return KindNone.String() }
func (v Float) String() string   { return debug(KindFloat, fmtFloat(float32(v))) }
func (v Double) String() string  { return debug(KindDouble, fmtDouble(float64(v))) }
func (v Integer) String() string { return debug(KindInteger, fmtInt(int32(v))) }
func (v String) String() string  { return debug(KindString, strconv.Quote(string(v))) }
func (v Array2) String() string  { return debug(KindArray2, join(v[:], fmtInt)) }
func (v Array3) String() string  { return debug(KindArray3, join(v[:], fmtInt)) }
func (v Array4) String() string  { return debug(KindArray4, join(v[:], fmtInt)) }
func (v Array2F) String() string { return debug(KindArray2F, join(v[:], fmtFloat)) }
func (v Array3F) String() string { return debug(KindArray3F, join(v[:], fmtFloat)) }
func (v Array4F) String() string { return debug(KindArray4F, join(v[:], fmtFloat)) }
func (v Array2D) String() string { return debug(KindArray2D, join(v[:], fmtDouble)) }
func (v Array3D) String() string { return debug(KindArray3D, join(v[:], fmtDouble)) }
func (v Array4D) String() string { return debug(KindArray4D, join(v[:], fmtDouble)) }

func debug(k ValueKind, inner string) string {
	return k.String() + "(" + inner + ")"
}

func fmtInt(v int32) string      { return strconv.FormatInt(int64(v), 10) }
func fmtFloat(v float32) string  { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func fmtDouble(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func join[T any](elems []T, format func(T) string) string {
	s := make([]string, len(elems))
	for i, e := range elems {
		s[i] = format(e)
	}

	return strings.Join(s, ", ")
}

// Native returns v as a plain Go value: nil, float32, float64, int32,
// string, or a slice of int32, float32 or float64.
func Native(v Value) any {
	switch v := v.(type) {
	case Float:
		return float32(v)
	case Double:
		return float64(v)
	case Integer:
		return int32(v)
	case String:
		return string(v)
	case Array2:
		return v[:]
	case Array3:
		return v[:]
	case Array4:
		return v[:]
	case Array2F:
		return v[:]
	case Array3F:
		return v[:]
	case Array4F:
		return v[:]
	case Array2D:
		return v[:]
	case Array3D:
		return v[:]
	case Array4D:
		return v[:]
	default:
		return nil
	}
}

// ElementAt returns element i of array value v as a scalar [Value].
// It reports false if v is not an array or i is out of range.
func ElementAt(v Value, i int) (Value, bool) {
	if v == nil || i < 0 || i >= v.Kind().Len() {
		return nil, false
	}

	switch e := Native(v).(type) {
	case []int32:
		return Integer(e[i]), true
	case []float32:
		return Float(e[i]), true
	case []float64:
		return Double(e[i]), true
	default:
		return nil, false
	}
}
