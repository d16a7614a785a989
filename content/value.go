package content

import (
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

// Value kinds. The zero Value is Absent.
const (
	KindAbsent Kind = iota
	KindNull
	KindString
	KindInt
	KindFloat
	KindBool
	KindColor
	KindStrings
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindColor:
		return "color"
	case KindStrings:
		return "strings"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a tagged union of the property types a Store can hold.
// Absent and Null are distinct: Absent means "no entry", Null is an
// explicitly stored empty value that stops resolution.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	c    color.NRGBA
	ss   []string
}

// Absent returns the absent value.
func Absent() Value { return Value{} }

// Null returns the explicit null value.
func Null() Value { return Value{kind: KindNull} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean value.
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.i = 1
	}
	return v
}

// Color returns a color value.
func Color(c color.NRGBA) Value { return Value{kind: KindColor, c: c} }

// Strings returns a string-list value. The slice is copied.
func Strings(ss []string) Value { return Value{kind: KindStrings, ss: slices.Clone(ss)} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the absent value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNull reports whether v is the explicit null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload, or "" for other kinds.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// AsInt returns the integer payload.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the float payload. Integers are widened.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.i != 0, v.kind == KindBool }

// AsColor returns the color payload.
func (v Value) AsColor() (color.NRGBA, bool) { return v.c, v.kind == KindColor }

// AsStrings returns the string-list payload. The returned slice must not be modified.
func (v Value) AsStrings() ([]string, bool) { return v.ss, v.kind == KindStrings }

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindInt, KindBool:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindColor:
		return v.c == o.c
	case KindStrings:
		return slices.Equal(v.ss, o.ss)
	}
	return true
}

// Text renders the value the way a text control displays it.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.i != 0)
	case KindColor:
		return fmt.Sprintf("#%02x%02x%02x%02x", v.c.R, v.c.G, v.c.B, v.c.A)
	case KindStrings:
		return strings.Join(v.ss, ", ")
	}
	return ""
}

// Canonical returns an unambiguous serialization of the value, suitable
// for composing cache keys. Distinct values never share a serialization.
func (v Value) Canonical() string {
	var b strings.Builder
	v.appendCanonical(&b)
	return b.String()
}

func (v Value) appendCanonical(b *strings.Builder) {
	switch v.kind {
	case KindAbsent:
		b.WriteString("a")
	case KindNull:
		b.WriteString("n")
	case KindString:
		b.WriteString("s")
		writeLenPrefixed(b, v.s)
	case KindInt:
		b.WriteString("i")
		b.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		b.WriteString("f")
		b.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindBool:
		b.WriteString("b")
		b.WriteString(strconv.FormatInt(v.i, 10))
	case KindColor:
		b.WriteString("c")
		b.WriteString(v.Text())
	case KindStrings:
		b.WriteString("l")
		b.WriteString(strconv.Itoa(len(v.ss)))
		b.WriteByte(';')
		for _, s := range v.ss {
			writeLenPrefixed(b, s)
		}
	}
}

// writeLenPrefixed writes s as "<len>:<s>" so that no separator inside s
// can be confused with the end of the component.
func writeLenPrefixed(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

// String implements fmt.Stringer for debugging.
func (v Value) String() string {
	return v.kind.String() + "(" + v.Text() + ")"
}
