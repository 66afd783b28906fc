package eval

import (
	"sort"

	"qkangaroo/internal/analysis"
	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/fps"
	"qkangaroo/internal/polyalg"
	"qkangaroo/internal/qseries"
	"qkangaroo/internal/relations"
	"qkangaroo/internal/telescoping"
	"qkangaroo/internal/value"
)

// builtin is the dispatch table's call shape (spec §9: "(&[Value],
// &mut Environment) -> Result<Value, EvalError>").
type builtin func(args []value.Value, env *Environment) (value.Value, error)

// aliases resolves alternate spellings to their canonical dispatch
// name before lookup (spec §4.12: "numbpart <-> partition_count").
var aliases = map[string]string{
	"partition_count": "numbpart",
}

// table is a representative cross-section of the canonical dispatch
// table spec §4.12 describes spanning ~114 names; it wires one or more
// entries from qseries, analysis, relations, polyalg and telescoping
// (hypergeom and mocktheta have no entry), rather than reproducing the
// full name list (see
// DESIGN.md for which names were chosen and why the rest were left
// unwired).
var table map[string]builtin

func init() {
	table = map[string]builtin{
		"numbpart":     biNumbpart,
		"aqprod":       biAqprod,
		"qbin":         biQbin,
		"etaq":         biEtaq,
		"sift":         biSift,
		"qfactor":      biQfactor,
		"prodmake":     biProdmake,
		"etamake":      biEtamake,
		"qdegree":      biQdegree,
		"findcong":     biFindcong,
		"findhom":      biFindhom,
		"findprod":     biFindprod,
		"poly_gcd":     biPolyGcd,
		"resultant":    biResultant,
		"q_gosper":     biQGosper,
		"q_petkovsek":  biQPetkovsek,
		"prove_eta_id": biProveEtaID,
		"type":         biType,
		"coeff":        biCoeff,
		"degree":       biDegree,
		"numer":        biNumer,
		"denom":        biDenom,
		"nops":         biNops,
		"op":           biOp,
		"sort":         biSort,
		"min":          biMinMax(false),
		"max":          biMinMax(true),
		"cat":          biCat,
		"evalb":        biEvalb,
	}
}

// canonicalNames returns every dispatch name (including aliases), used
// for UnknownFunction suggestions.
func canonicalNames() []string {
	names := make([]string, 0, len(table)+len(aliases))
	for n := range table {
		names = append(names, n)
	}
	for n := range aliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Call resolves aliases and dispatches name(args) against env.
func Call(name string, args []value.Value, env *Environment) (value.Value, error) {
	resolved := name
	if canon, ok := aliases[name]; ok {
		resolved = canon
	}
	fn, ok := table[resolved]
	if !ok {
		return value.Value{}, unknownFunction(name, suggest(name, canonicalNames()))
	}
	return fn(args, env)
}

func asInt(v value.Value, fn string, idx int) (int, error) {
	q, ok := v.AsRational()
	if !ok || !q.IsInteger() {
		return 0, argType(fn, idx, "Integer", v.Kind.String())
	}
	return int(q.Numer().Int64()), nil
}

func biNumbpart(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, wrongArgCount("numbpart", 1, len(args))
	}
	n, err := asInt(args[0], "numbpart", 0)
	if err != nil {
		return value.Value{}, err
	}
	z, ferr := qseries.Numbpart(n, env.Variable)
	if ferr != nil {
		return value.Value{}, internalError(ferr.Error())
	}
	return value.Integer(z), nil
}

func biAqprod(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 3 {
		return value.Value{}, wrongArgCount("aqprod", 3, len(args))
	}
	a, ok := args[0].AsRational()
	if !ok {
		return value.Value{}, argType("aqprod", 0, "Rational", args[0].Kind.String())
	}
	n, err := asInt(args[1], "aqprod", 1)
	if err != nil {
		return value.Value{}, err
	}
	N, err := asInt(args[2], "aqprod", 2)
	if err != nil {
		return value.Value{}, err
	}
	f, ferr := qseries.Aqprod(a, env.Variable, n, N)
	if ferr != nil {
		return value.Value{}, internalError(ferr.Error())
	}
	return value.Series(f), nil
}

func biQbin(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, wrongArgCount("qbin", 2, len(args))
	}
	n, err := asInt(args[0], "qbin", 0)
	if err != nil {
		return value.Value{}, err
	}
	k, err := asInt(args[1], "qbin", 1)
	if err != nil {
		return value.Value{}, err
	}
	f, ferr := qseries.Qbin(n, k, env.Variable)
	if ferr != nil {
		return value.Value{}, internalError(ferr.Error())
	}
	return value.Series(f), nil
}

func biEtaq(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 3 {
		return value.Value{}, wrongArgCount("etaq", 3, len(args))
	}
	b, err := asInt(args[0], "etaq", 0)
	if err != nil {
		return value.Value{}, err
	}
	tt, err := asInt(args[1], "etaq", 1)
	if err != nil {
		return value.Value{}, err
	}
	N, err := asInt(args[2], "etaq", 2)
	if err != nil {
		return value.Value{}, err
	}
	f, ferr := qseries.Etaq(b, tt, env.Variable, N)
	if ferr != nil {
		return value.Value{}, internalError(ferr.Error())
	}
	return value.Series(f), nil
}

func biSift(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 4 {
		return value.Value{}, wrongArgCount("sift", 4, len(args))
	}
	if args[0].Kind != value.KindSeries {
		return value.Value{}, argType("sift", 0, "Series", args[0].Kind.String())
	}
	m, err := asInt(args[1], "sift", 1)
	if err != nil {
		return value.Value{}, err
	}
	k, err := asInt(args[2], "sift", 2)
	if err != nil {
		return value.Value{}, err
	}
	N, err := asInt(args[3], "sift", 3)
	if err != nil {
		return value.Value{}, err
	}
	f, ferr := analysis.Sift(args[0].Series, m, k, N)
	if ferr != nil {
		return value.Value{}, outOfRange(ferr.Error())
	}
	return value.Series(f), nil
}

func biQfactor(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, wrongArgCount("qfactor", 2, len(args))
	}
	if args[0].Kind != value.KindSeries {
		return value.Value{}, argType("qfactor", 0, "Series", args[0].Kind.String())
	}
	N, err := asInt(args[1], "qfactor", 1)
	if err != nil {
		return value.Value{}, err
	}
	prod, ferr := analysis.Qfactor(args[0].Series, N)
	if ferr != nil {
		return value.Value{}, internalError(ferr.Error())
	}
	return qProductToValue(prod), nil
}

func qProductToValue(p analysis.QProduct) value.Value {
	out := make([]value.Value, 0, len(p.Factors)+1)
	out = append(out, value.Rational(p.Scalar))
	for _, d := range p.Sorted() {
		out = append(out, value.List([]value.Value{
			value.Integer(bigrat.ZFromInt64(int64(d))),
			value.Integer(bigrat.ZFromInt64(int64(p.Factors[d]))),
		}))
	}
	return value.List(out)
}

func biProdmake(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, wrongArgCount("prodmake", 2, len(args))
	}
	if args[0].Kind != value.KindSeries {
		return value.Value{}, argType("prodmake", 0, "Series", args[0].Kind.String())
	}
	N, err := asInt(args[1], "prodmake", 1)
	if err != nil {
		return value.Value{}, err
	}
	res, ferr := analysis.Prodmake(args[0].Series, N)
	if ferr != nil {
		return value.Value{}, internalError(ferr.Error())
	}
	out := make([]value.Value, 0, len(res.Exponents))
	for n, c := range res.Exponents {
		out = append(out, value.List([]value.Value{
			value.Integer(bigrat.ZFromInt64(int64(n))),
			value.Rational(c),
		}))
	}
	return value.List(out), nil
}

func biEtamake(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, wrongArgCount("etamake", 2, len(args))
	}
	if args[0].Kind != value.KindSeries {
		return value.Value{}, argType("etamake", 0, "Series", args[0].Kind.String())
	}
	N, err := asInt(args[1], "etamake", 1)
	if err != nil {
		return value.Value{}, err
	}
	eq, ferr := analysis.Etamake(args[0].Series, N)
	if ferr != nil {
		return value.Value{}, internalError(ferr.Error())
	}
	out := make([]value.Value, 0, len(eq.Factors)+1)
	out = append(out, value.Rational(eq.QShift))
	for _, d := range eq.Sorted() {
		out = append(out, value.List([]value.Value{
			value.Integer(bigrat.ZFromInt64(int64(d))),
			value.Rational(eq.Factors[d]),
		}))
	}
	return value.List(out), nil
}

func biQdegree(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, wrongArgCount("qdegree", 1, len(args))
	}
	if args[0].Kind != value.KindSeries {
		return value.Value{}, argType("qdegree", 0, "Series", args[0].Kind.String())
	}
	d, ferr := analysis.QDegree(args[0].Series)
	if ferr != nil {
		return value.Value{}, outOfRange(ferr.Error())
	}
	return value.Integer(bigrat.ZFromInt64(int64(d))), nil
}

func biFindcong(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 3 {
		return value.Value{}, wrongArgCount("findcong", 3, len(args))
	}
	if args[0].Kind != value.KindSeries {
		return value.Value{}, argType("findcong", 0, "Series", args[0].Kind.String())
	}
	if args[1].Kind != value.KindList {
		return value.Value{}, argType("findcong", 1, "List", args[1].Kind.String())
	}
	moduli := make([]int, len(args[1].List))
	for i, m := range args[1].List {
		n, err := asInt(m, "findcong", 1)
		if err != nil {
			return value.Value{}, err
		}
		moduli[i] = n
	}
	N, err := asInt(args[2], "findcong", 2)
	if err != nil {
		return value.Value{}, err
	}
	congs := relations.FindCong(args[0].Series, moduli, N)
	out := make([]value.Value, len(congs))
	for i, c := range congs {
		residues := make([]value.Value, len(c.Residues))
		for j, r := range c.Residues {
			residues[j] = value.Integer(bigrat.ZFromInt64(int64(r)))
		}
		out[i] = value.List([]value.Value{
			value.Integer(bigrat.ZFromInt64(int64(c.Modulus))),
			value.List(residues),
		})
	}
	return value.List(out), nil
}

func seriesListToRows(v value.Value, fn string, idx, n int) ([][]bigrat.Q, error) {
	if v.Kind != value.KindList {
		return nil, argType(fn, idx, "List", v.Kind.String())
	}
	rows := make([][]bigrat.Q, len(v.List))
	for i, e := range v.List {
		if e.Kind != value.KindSeries {
			return nil, argType(fn, idx, "List of Series", "List containing "+e.Kind.String())
		}
		row, err := relations.SeriesFromFPS(e.Series, n)
		if err != nil {
			return nil, internalError(err.Error())
		}
		rows[i] = row
	}
	return rows, nil
}

func biFindhom(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 3 {
		return value.Value{}, wrongArgCount("findhom", 3, len(args))
	}
	degree, err := asInt(args[1], "findhom", 1)
	if err != nil {
		return value.Value{}, err
	}
	topshift, err := asInt(args[2], "findhom", 2)
	if err != nil {
		return value.Value{}, err
	}
	rows, err := seriesListToRows(args[0], "findhom", 0, env.DefaultOrder)
	if err != nil {
		return value.Value{}, err
	}
	rels := relations.FindHom(rows, degree, topshift)
	out := make([]value.Value, len(rels))
	for i, r := range rels {
		coeffs := make([]value.Value, len(r.Coeffs))
		for j, c := range r.Coeffs {
			coeffs[j] = value.Rational(c)
		}
		out[i] = value.List(coeffs)
	}
	return value.List(out), nil
}

func biFindprod(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, wrongArgCount("findprod", 2, len(args))
	}
	if args[0].Kind != value.KindList {
		return value.Value{}, argType("findprod", 0, "List", args[0].Kind.String())
	}
	series := make([]fps.FPS, len(args[0].List))
	for i, e := range args[0].List {
		if e.Kind != value.KindSeries {
			return value.Value{}, argType("findprod", 0, "List of Series", "List containing "+e.Kind.String())
		}
		series[i] = e.Series
	}
	maxCoeff, err := asInt(args[1], "findprod", 1)
	if err != nil {
		return value.Value{}, err
	}
	combos := relations.FindProd(series, maxCoeff, env.DefaultOrder)
	out := make([]value.Value, len(combos))
	for i, c := range combos {
		coeffs := make([]value.Value, len(c.Coeffs))
		for j, e := range c.Coeffs {
			coeffs[j] = value.Integer(bigrat.ZFromInt64(int64(e)))
		}
		out[i] = value.List(coeffs)
	}
	return value.List(out), nil
}

func biPolyGcd(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, wrongArgCount("poly_gcd", 2, len(args))
	}
	p, err := listToPoly(args[0], "poly_gcd", 0)
	if err != nil {
		return value.Value{}, err
	}
	q, err := listToPoly(args[1], "poly_gcd", 1)
	if err != nil {
		return value.Value{}, err
	}
	g, ferr := polyalg.Gcd(p, q)
	if ferr != nil {
		return value.Value{}, internalError(ferr.Error())
	}
	return polyToValue(g), nil
}

func biResultant(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, wrongArgCount("resultant", 2, len(args))
	}
	p, err := listToPoly(args[0], "resultant", 0)
	if err != nil {
		return value.Value{}, err
	}
	q, err := listToPoly(args[1], "resultant", 1)
	if err != nil {
		return value.Value{}, err
	}
	r, ferr := polyalg.Resultant(p, q)
	if ferr != nil {
		return value.Value{}, internalError(ferr.Error())
	}
	return reduceQ(r), nil
}

func listToPoly(v value.Value, fn string, idx int) (polyalg.Poly, error) {
	if v.Kind != value.KindList {
		return polyalg.Poly{}, argType(fn, idx, "List of coefficients", v.Kind.String())
	}
	coeffs := make([]bigrat.Q, len(v.List))
	for i, e := range v.List {
		q, ok := e.AsRational()
		if !ok {
			return polyalg.Poly{}, argType(fn, idx, "List of Rational", "List containing "+e.Kind.String())
		}
		coeffs[i] = q
	}
	return polyalg.New(coeffs...), nil
}

func polyToValue(p polyalg.Poly) value.Value {
	coeffs := p.Coeffs()
	out := make([]value.Value, len(coeffs))
	for i, c := range coeffs {
		out[i] = reduceQ(c)
	}
	return value.List(out)
}

func biQGosper(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 4 {
		return value.Value{}, wrongArgCount("q_gosper", 4, len(args))
	}
	num, err := listToPoly(args[0], "q_gosper", 0)
	if err != nil {
		return value.Value{}, err
	}
	den, err := listToPoly(args[1], "q_gosper", 1)
	if err != nil {
		return value.Value{}, err
	}
	q, ok := args[2].AsRational()
	if !ok {
		return value.Value{}, argType("q_gosper", 2, "Rational", args[2].Kind.String())
	}
	maxDeg, err := asInt(args[3], "q_gosper", 3)
	if err != nil {
		return value.Value{}, err
	}
	cert, found, ferr := telescoping.QGosper(polyalg.RationalFunc{Num: num, Den: den}, q, maxDeg, maxDeg)
	if ferr != nil {
		return value.Value{}, internalError(ferr.Error())
	}
	if !found {
		return value.Bool(false), nil
	}
	return value.List([]value.Value{value.Bool(true), polyToValue(cert.X)}), nil
}

func biQPetkovsek(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, wrongArgCount("q_petkovsek", 2, len(args))
	}
	if args[0].Kind != value.KindList {
		return value.Value{}, argType("q_petkovsek", 0, "List", args[0].Kind.String())
	}
	target := make([]bigrat.Q, len(args[0].List))
	for i, e := range args[0].List {
		q, ok := e.AsRational()
		if !ok {
			return value.Value{}, argType("q_petkovsek", 0, "List of Rational", "List containing "+e.Kind.String())
		}
		target[i] = q
	}
	q, ok := args[1].AsRational()
	if !ok {
		return value.Value{}, argType("q_petkovsek", 1, "Rational", args[1].Kind.String())
	}
	candidates := []bigrat.Q{bigrat.QOne, bigrat.QOne.Neg()}
	ratio, found, ferr := telescoping.QPetkovsek(target, q, candidates, 4, 4)
	if ferr != nil {
		return value.Value{}, internalError(ferr.Error())
	}
	if !found {
		return value.Bool(false), nil
	}
	return value.List([]value.Value{
		value.Rational(ratio.Coeff),
		value.Integer(bigrat.ZFromInt64(int64(ratio.QExp))),
		value.Integer(bigrat.ZFromInt64(int64(ratio.Shift))),
	}), nil
}

func biProveEtaID(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 3 {
		return value.Value{}, wrongArgCount("prove_eta_id", 3, len(args))
	}
	lhs, err := listToExponents(args[0], "prove_eta_id", 0)
	if err != nil {
		return value.Value{}, err
	}
	rhs, err := listToExponents(args[1], "prove_eta_id", 1)
	if err != nil {
		return value.Value{}, err
	}
	level, err := asInt(args[2], "prove_eta_id", 2)
	if err != nil {
		return value.Value{}, err
	}
	ok := telescoping.ProveEtaIdentity(
		telescoping.EtaQuotient{N: level, Exponents: lhs},
		telescoping.EtaQuotient{N: level, Exponents: rhs},
	)
	return value.Bool(ok), nil
}

func listToExponents(v value.Value, fn string, idx int) (map[int]int, error) {
	if v.Kind != value.KindList {
		return nil, argType(fn, idx, "List of [delta,exponent] pairs", v.Kind.String())
	}
	out := make(map[int]int)
	for _, e := range v.List {
		if e.Kind != value.KindList || len(e.List) != 2 {
			return nil, argType(fn, idx, "[delta,exponent] pair", e.Kind.String())
		}
		delta, err := asInt(e.List[0], fn, idx)
		if err != nil {
			return nil, err
		}
		exp, err := asInt(e.List[1], fn, idx)
		if err != nil {
			return nil, err
		}
		out[delta] = exp
	}
	return out, nil
}

func biType(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, wrongArgCount("type", 1, len(args))
	}
	return value.String(args[0].Kind.String()), nil
}

func biCoeff(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, wrongArgCount("coeff", 2, len(args))
	}
	if args[0].Kind != value.KindSeries {
		return value.Value{}, argType("coeff", 0, "Series", args[0].Kind.String())
	}
	k, err := asInt(args[1], "coeff", 1)
	if err != nil {
		return value.Value{}, err
	}
	c, ferr := args[0].Series.Coeff(k)
	if ferr != nil {
		return value.Value{}, outOfRange(ferr.Error())
	}
	return reduceQ(c), nil
}

func biDegree(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, wrongArgCount("degree", 1, len(args))
	}
	if args[0].Kind == value.KindList {
		p, err := listToPoly(args[0], "degree", 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.Integer(bigrat.ZFromInt64(int64(p.Degree()))), nil
	}
	return value.Value{}, argType("degree", 0, "List (polynomial coefficients)", args[0].Kind.String())
}

func biNumer(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, wrongArgCount("numer", 1, len(args))
	}
	q, ok := args[0].AsRational()
	if !ok {
		return value.Value{}, argType("numer", 0, "Rational", args[0].Kind.String())
	}
	return value.Integer(q.Numer()), nil
}

func biDenom(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, wrongArgCount("denom", 1, len(args))
	}
	q, ok := args[0].AsRational()
	if !ok {
		return value.Value{}, argType("denom", 0, "Rational", args[0].Kind.String())
	}
	return value.Integer(q.Denom()), nil
}

func biNops(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, wrongArgCount("nops", 1, len(args))
	}
	if args[0].Kind != value.KindList {
		return value.Value{}, argType("nops", 0, "List", args[0].Kind.String())
	}
	return value.Integer(bigrat.ZFromInt64(int64(len(args[0].List)))), nil
}

func biOp(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, wrongArgCount("op", 2, len(args))
	}
	i, err := asInt(args[0], "op", 0)
	if err != nil {
		return value.Value{}, err
	}
	if args[1].Kind != value.KindList {
		return value.Value{}, argType("op", 1, "List", args[1].Kind.String())
	}
	if i < 1 || i > len(args[1].List) {
		return value.Value{}, outOfRange("op: index out of 1..nops(L) range")
	}
	return args[1].List[i-1], nil
}

func biSort(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, wrongArgCount("sort", 1, len(args))
	}
	if args[0].Kind != value.KindList {
		return value.Value{}, argType("sort", 0, "List", args[0].Kind.String())
	}
	sorted, ok := value.SortList(args[0].List)
	if !ok {
		return value.Value{}, argType("sort", 0, "List of mutually comparable values", "mixed-kind List")
	}
	return value.List(sorted), nil
}

func biMinMax(wantMax bool) builtin {
	return func(args []value.Value, env *Environment) (value.Value, error) {
		name := "min"
		if wantMax {
			name = "max"
		}
		if len(args) == 0 {
			return value.Value{}, wrongArgCount(name, 1, 0)
		}
		best := args[0]
		for _, a := range args[1:] {
			c, ok := value.Cmp(a, best)
			if !ok {
				return value.Value{}, argType(name, 0, "mutually comparable values", a.Kind.String())
			}
			if (wantMax && c > 0) || (!wantMax && c < 0) {
				best = a
			}
		}
		return best, nil
	}
}

func biCat(args []value.Value, env *Environment) (value.Value, error) {
	out := ""
	for _, a := range args {
		out += a.String()
	}
	return value.Symbol(out), nil
}

func biEvalb(args []value.Value, env *Environment) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, wrongArgCount("evalb", 1, len(args))
	}
	if args[0].Kind != value.KindBool {
		return value.Value{}, argType("evalb", 0, "Bool", args[0].Kind.String())
	}
	return args[0], nil
}
