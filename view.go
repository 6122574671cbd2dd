package navigate

import (
	"strings"

	"github.com/tidwall/gjson"
)

// View provides field access over a path's query parameters for Condition
// matching.
//
// A field is either a parameter name ("tab") or a parameter name followed
// by a gjson path into that parameter's value, when the value is JSON
// ("filter.kind" reads "kind" from ?filter={"kind":"open"}). A parameter
// whose name itself contains dots is matched first.
type View interface {
	// HasField returns true if the field exists.
	HasField(field string) bool

	// GetString returns the field's value, or false if it is missing or is
	// a JSON object, array or null.
	GetString(field string) (string, bool)
}

// ParamsView returns a View over params.
func ParamsView(params Params) View {
	return paramsView{params: params}
}

// InspectPath returns a View over the query parameters of path.
func InspectPath(path string) View {
	return ParamsView(DecodeQuery(path))
}

type paramsView struct {
	params Params
}

func (v paramsView) HasField(field string) bool {
	if _, ok := v.params[field]; ok {
		return true
	}
	r, ok := v.json(field)
	return ok && r.Exists()
}

func (v paramsView) GetString(field string) (string, bool) {
	if s, ok := v.params[field]; ok {
		return s, true
	}
	r, ok := v.json(field)
	if !ok || !r.Exists() {
		return "", false
	}
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return r.String(), true
	default:
		return "", false
	}
}

// json resolves "name.rest" against the JSON value of parameter name.
func (v paramsView) json(field string) (gjson.Result, bool) {
	name, rest, ok := strings.Cut(field, ".")
	if !ok || rest == "" {
		return gjson.Result{}, false
	}
	raw, ok := v.params[name]
	if !ok || !gjson.Valid(raw) {
		return gjson.Result{}, false
	}
	return gjson.Get(raw, rest), true
}
