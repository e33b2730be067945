package runtime

import (
	"math"
	"strconv"
	"strings"
)

// Display is the form written by print and produced by string conversion:
// strings appear without quotes, everything else as Inspect renders it.
func Display(v Value) string {
	if s, ok := v.(StringValue); ok {
		return s.Val
	}
	return Inspect(v)
}

// Inspect renders a value the way it would be written in source. Nested
// values inside lists and maps are always inspected.
func Inspect(v Value) string {
	var b strings.Builder
	inspect(&b, v, map[Value]bool{})
	return b.String()
}

func inspect(b *strings.Builder, v Value, seen map[Value]bool) {
	switch val := v.(type) {
	case nil, NullValue:
		b.WriteString("null")
	case IntValue:
		b.WriteString(strconv.FormatInt(val.Val, 10))
	case FloatValue:
		b.WriteString(formatFloat(val.Val))
	case BoolValue:
		b.WriteString(strconv.FormatBool(val.Val))
	case StringValue:
		b.WriteByte('"')
		b.WriteString(val.Val)
		b.WriteByte('"')
	case *ListValue:
		if seen[val] {
			b.WriteString("[...]")
			return
		}
		seen[val] = true
		b.WriteByte('[')
		for idx, el := range val.Elements {
			if idx > 0 {
				b.WriteByte(',')
			}
			inspect(b, el, seen)
		}
		b.WriteByte(']')
		delete(seen, val)
	case *MapValue:
		if seen[val] {
			b.WriteString("map {...}")
			return
		}
		seen[val] = true
		b.WriteString("map {")
		val.Each(func(key string, item Value) {
			b.WriteString(key)
			b.WriteByte(':')
			inspect(b, item, seen)
			b.WriteByte(',')
		})
		b.WriteByte('}')
		delete(seen, val)
	case Callable:
		writeSignature(b, val.Signature())
	default:
		b.WriteString("<" + TypeOf(v) + ">")
	}
}

// writeSignature renders `ret name(type a,type b) {}`.
func writeSignature(b *strings.Builder, sig Signature) {
	b.WriteString(sig.ReturnType)
	b.WriteByte(' ')
	b.WriteString(sig.Name)
	b.WriteByte('(')
	for idx, p := range sig.Params {
		if idx > 0 {
			b.WriteByte(',')
		}
		if p.IsConst {
			b.WriteString("const ")
		}
		b.WriteString(p.Type)
		b.WriteByte(' ')
		b.WriteString(p.Name)
	}
	b.WriteString(") {}")
}

// formatFloat prints the shortest representation that round-trips, always
// keeping a fractional part so floats stay distinguishable from ints.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
