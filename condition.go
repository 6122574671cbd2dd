package navigate

// Condition is a predicate over a path's query parameters. Conditions are
// composed into preconditions with Guard.
type Condition interface {
	Match(v View) bool
}

// ConditionFunc adapts a function to a Condition.
type ConditionFunc func(v View) bool

// Match implements Condition.
func (f ConditionFunc) Match(v View) bool { return f(v) }

// HasParams returns a Condition that matches when every field is present,
// even with an empty value ("?token=").
func HasParams(fields ...string) Condition {
	return fieldCheck{fields: fields, ok: func(v View, f string) bool {
		return v.HasField(f)
	}}
}

// HasValues returns a Condition that matches when every field is present
// with a non-empty scalar value. Use it for parameters such as tokens or
// ids where "?token=" must not count.
func HasValues(fields ...string) Condition {
	return fieldCheck{fields: fields, ok: func(v View, f string) bool {
		s, ok := v.GetString(f)
		return ok && s != ""
	}}
}

// ParamEquals returns a Condition that matches when the field exists and
// equals value. Query values are compared decoded, so "?q=a%20b" equals
// "a b".
func ParamEquals(field, value string) Condition {
	return ParamIn(field, value)
}

// ParamIn returns a Condition that matches when the field exists and equals
// one of values. ParamIn with no values never matches.
//
//	navigate.Guard("staff", navigate.ParamIn("role", "admin", "editor"), "/forbidden")
func ParamIn(field string, values ...string) Condition {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return fieldCheck{fields: []string{field}, ok: func(v View, f string) bool {
		s, ok := v.GetString(f)
		if !ok {
			return false
		}
		_, in := set[s]
		return in
	}}
}

// fieldCheck matches when ok holds for every field.
type fieldCheck struct {
	fields []string
	ok     func(v View, field string) bool
}

func (c fieldCheck) Match(v View) bool {
	for _, f := range c.fields {
		if !c.ok(v, f) {
			return false
		}
	}
	return true
}

// And returns a Condition that matches when all conditions match. And with
// no conditions always matches.
func And(cs ...Condition) Condition {
	return allOf(cs)
}

type allOf []Condition

func (cs allOf) Match(v View) bool {
	for _, c := range cs {
		if !c.Match(v) {
			return false
		}
	}
	return true
}

// Or returns a Condition that matches when any condition matches. Or with no
// conditions never matches.
func Or(cs ...Condition) Condition {
	return anyOf(cs)
}

type anyOf []Condition

func (cs anyOf) Match(v View) bool {
	for _, c := range cs {
		if c.Match(v) {
			return true
		}
	}
	return false
}

// Not returns a Condition that matches when c does not.
func Not(c Condition) Condition {
	return ConditionFunc(func(v View) bool { return !c.Match(v) })
}

// Guard returns a Precondition that passes when cond matches the query
// parameters of the navigated path and redirects to redirect otherwise.
//
// The redirect may carry a "next" parameter so the target can send the
// user back once the condition holds:
//
//	r.RegisterPrecondition(navigate.Guard("signed-in",
//	    navigate.HasValues("token"),
//	    "/login?next=%2Faccount",
//	))
func Guard(id string, cond Condition, redirect string) Precondition {
	return Precondition{
		ID: id,
		Action: func(path string) string {
			if cond.Match(InspectPath(path)) {
				return path
			}
			return redirect
		},
	}
}
