// Package value implements the expression language's tagged Value
// sum type (spec §4.12/§9's "multiple numeric types promoting across
// operations" strategy): a single Go struct with a Kind discriminant,
// playing the role the teacher's codec layer gives explicit wire-type
// tags (PIOP/DECS message framing) -- here the tag distinguishes
// Integer/Rational/Series/List/Bool/String/Symbol instead of wire
// message kinds.
package value

import (
	"fmt"
	"sort"
	"strings"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
)

// Kind discriminates the Value union.
type Kind int

const (
	KindInteger Kind = iota
	KindRational
	KindSeries
	KindList
	KindBool
	KindString
	KindSymbol
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindRational:
		return "Rational"
	case KindSeries:
		return "Series"
	case KindList:
		return "List"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindSymbol:
		return "Symbol"
	default:
		return "Unknown"
	}
}

// Value is the tagged union every evaluator expression reduces to.
// Exactly one of the typed fields is meaningful, selected by Kind.
type Value struct {
	Kind   Kind
	Int    bigrat.Z
	Rat    bigrat.Q
	Series fps.FPS
	List   []Value
	Bool   bool
	Str    string
}

func Integer(z bigrat.Z) Value  { return Value{Kind: KindInteger, Int: z} }
func Rational(q bigrat.Q) Value { return Value{Kind: KindRational, Rat: q} }
func Series(f fps.FPS) Value    { return Value{Kind: KindSeries, Series: f} }
func List(vs []Value) Value     { return Value{Kind: KindList, List: vs} }
func Bool(b bool) Value         { return Value{Kind: KindBool, Bool: b} }
func String(s string) Value     { return Value{Kind: KindString, Str: s} }
func Symbol(name string) Value  { return Value{Kind: KindSymbol, Str: name} }

// AsRational promotes Integer/Rational values to a single Q, the
// promotion every arithmetic dispatch entry needs before calling into
// bigrat (spec §9: "Integer->Rational->FPS" promotion chain).
func (v Value) AsRational() (bigrat.Q, bool) {
	switch v.Kind {
	case KindInteger:
		return bigrat.QFromZ(v.Int), true
	case KindRational:
		return v.Rat, true
	default:
		return bigrat.Q{}, false
	}
}

// AsSeries promotes Integer/Rational/Series values to an FPS in the
// given variable/truncation, the "Series + Integer promotes integer to
// constant FPS" rule of spec §9.
func (v Value) AsSeries(fallback fps.FPS) (fps.FPS, bool) {
	switch v.Kind {
	case KindSeries:
		return v.Series, true
	case KindInteger, KindRational:
		q, _ := v.AsRational()
		return fps.Constant(q, fallback.Variable(), fallback.TruncationOrder()), true
	default:
		return fps.FPS{}, false
	}
}

// IsNumeric reports whether v is an Integer, Rational, or Series --
// the classes arithmetic dispatch entries accept.
func (v Value) IsNumeric() bool {
	switch v.Kind {
	case KindInteger, KindRational, KindSeries:
		return true
	default:
		return false
	}
}

// String renders v using the display rules of spec §6: integers in
// decimal, rationals as p/q (or bare integer if q=1), FPS in
// descending-exponent order with O(q^N) suffix, lists as [a, b, c].
func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return v.Int.String()
	case KindRational:
		return v.Rat.String()
	case KindSeries:
		return formatSeries(v.Series)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindString:
		return v.Str
	case KindSymbol:
		return v.Str
	case KindList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<unknown>"
	}
}

func formatSeries(f fps.FPS) string {
	terms := f.TermsDesc()
	if len(terms) == 0 {
		return appendOrder("0", f)
	}
	var b strings.Builder
	for i, t := range terms {
		coeff := t.Coeff
		neg := coeff.Sign() < 0
		abs := coeff
		if neg {
			abs = coeff.Neg()
		}
		sign := "+"
		if neg {
			sign = "−"
		}
		if i == 0 {
			if neg {
				b.WriteString("−")
			}
		} else {
			b.WriteString(" " + sign + " ")
		}
		b.WriteString(monoString(abs, t.Exp))
	}
	return appendOrder(b.String(), f)
}

func monoString(abs bigrat.Q, exp int) string {
	one := abs.Cmp(bigrat.QOne) == 0
	switch {
	case exp == 0:
		return abs.String()
	case exp == 1:
		if one {
			return "q"
		}
		return abs.String() + "*q"
	default:
		if one {
			return fmt.Sprintf("q^%d", exp)
		}
		return fmt.Sprintf("%s*q^%d", abs.String(), exp)
	}
}

func appendOrder(body string, f fps.FPS) string {
	if f.IsPolynomial() {
		return body
	}
	return fmt.Sprintf("%s + O(q^%d)", body, f.TruncationOrder())
}

// Cmp provides a total order for Sort/min/max over like-kinded numeric
// values; it returns an error-signalling false for mismatched kinds.
func Cmp(a, b Value) (int, bool) {
	qa, okA := a.AsRational()
	qb, okB := b.AsRational()
	if okA && okB {
		return qa.Cmp(qb), true
	}
	if a.Kind == KindString && b.Kind == KindString {
		return strings.Compare(a.Str, b.Str), true
	}
	return 0, false
}

// SortList sorts a list of numeric or string values ascending,
// returning ok=false if elements are not mutually comparable.
func SortList(vs []Value) ([]Value, bool) {
	out := make([]Value, len(vs))
	copy(out, vs)
	ok := true
	sort.SliceStable(out, func(i, j int) bool {
		c, cmpOK := Cmp(out[i], out[j])
		if !cmpOK {
			ok = false
			return false
		}
		return c < 0
	})
	return out, ok
}
