package navigate

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ErrInvalidManifest is returned when a manifest cannot be parsed or fails
// validation.
var ErrInvalidManifest = errors.New("navigate: invalid manifest")

// Manifest is a declarative route table. Operations are referenced by name
// and bound at load time, since functions cannot be written down.
//
// JSON:
//
//	{
//	  "preconditions": [
//	    {"id": "signed-in", "nonEmpty": ["token"], "redirect": "/login"},
//	    {"id": "staff", "oneOf": {"role": ["admin", "editor"]}, "redirect": "/home"}
//	  ],
//	  "routes": [
//	    {"path": "/home", "operation": "home", "preconditions": ["signed-in"]},
//	    {"path": "/login", "operation": "login"}
//	  ]
//	}
//
// YAML uses the same field names.
type Manifest struct {
	Preconditions []PreconditionSpec `yaml:"preconditions"`
	Routes        []RouteSpec        `yaml:"routes"`
}

// PreconditionSpec declares a Guard precondition. The guard passes when
// every Require field is present, every NonEmpty field has a value, every
// Equals field has the given value and every OneOf field has one of the
// listed values. Fields follow View syntax.
type PreconditionSpec struct {
	ID       string              `yaml:"id"`
	Require  []string            `yaml:"require"`
	NonEmpty []string            `yaml:"nonEmpty"`
	Equals   map[string]string   `yaml:"equals"`
	OneOf    map[string][]string `yaml:"oneOf"`
	Redirect string              `yaml:"redirect"`
}

// RouteSpec declares a route whose operation is looked up by name.
type RouteSpec struct {
	Path          string   `yaml:"path"`
	Operation     string   `yaml:"operation"`
	Preconditions []string `yaml:"preconditions"`
}

// Operations maps the operation names used in a manifest to their
// implementations.
type Operations map[string]Operation

// ParseManifest decodes a manifest. Input starting with '{' is read as JSON
// with gjson, anything else as YAML. JSON fields of the wrong shape, such as
// "routes": "x", fail with ErrInvalidManifest naming the field
// ("routes: want array, got String").
func ParseManifest(data []byte) (Manifest, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return parseJSONManifest(trimmed)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	return m, nil
}

func parseJSONManifest(data []byte) (Manifest, error) {
	if !gjson.ValidBytes(data) {
		return Manifest{}, fmt.Errorf("%w: malformed JSON", ErrInvalidManifest)
	}

	root := gjson.ParseBytes(data)
	jr := &jsonReader{}
	var m Manifest

	for i, v := range jr.array(root.Get("preconditions"), "preconditions") {
		at := fmt.Sprintf("preconditions[%d]", i)
		if !jr.object(v, at) {
			break
		}
		m.Preconditions = append(m.Preconditions, PreconditionSpec{
			ID:       jr.str(v.Get("id"), at+".id"),
			Require:  jr.strs(v.Get("require"), at+".require"),
			NonEmpty: jr.strs(v.Get("nonEmpty"), at+".nonEmpty"),
			Equals:   jr.strMap(v.Get("equals"), at+".equals"),
			OneOf:    jr.strsMap(v.Get("oneOf"), at+".oneOf"),
			Redirect: jr.str(v.Get("redirect"), at+".redirect"),
		})
	}

	for i, v := range jr.array(root.Get("routes"), "routes") {
		at := fmt.Sprintf("routes[%d]", i)
		if !jr.object(v, at) {
			break
		}
		m.Routes = append(m.Routes, RouteSpec{
			Path:          jr.str(v.Get("path"), at+".path"),
			Operation:     jr.str(v.Get("operation"), at+".operation"),
			Preconditions: jr.strs(v.Get("preconditions"), at+".preconditions"),
		})
	}

	if jr.err != nil {
		return Manifest{}, jr.err
	}
	return m, nil
}

// jsonReader reads manifest fields with gjson, keeping the first shape
// error. Missing and null fields read as zero values.
type jsonReader struct {
	err error
}

func (jr *jsonReader) fail(at, want string, got gjson.Result) {
	if jr.err == nil {
		jr.err = fmt.Errorf("%w: %s: want %s, got %s", ErrInvalidManifest, at, want, got.Type)
	}
}

func absent(r gjson.Result) bool {
	return !r.Exists() || r.Type == gjson.Null
}

func (jr *jsonReader) array(r gjson.Result, at string) []gjson.Result {
	if absent(r) {
		return nil
	}
	if !r.IsArray() {
		jr.fail(at, "array", r)
		return nil
	}
	return r.Array()
}

func (jr *jsonReader) object(r gjson.Result, at string) bool {
	if !r.IsObject() {
		jr.fail(at, "object", r)
		return false
	}
	return true
}

func (jr *jsonReader) str(r gjson.Result, at string) string {
	if absent(r) {
		return ""
	}
	if r.Type != gjson.String {
		jr.fail(at, "string", r)
		return ""
	}
	return r.Str
}

func (jr *jsonReader) strs(r gjson.Result, at string) []string {
	arr := jr.array(r, at)
	if len(arr) == 0 {
		return nil
	}
	out := make([]string, len(arr))
	for i, v := range arr {
		out[i] = jr.str(v, fmt.Sprintf("%s[%d]", at, i))
	}
	return out
}

func (jr *jsonReader) strMap(r gjson.Result, at string) map[string]string {
	if absent(r) || !jr.object(r, at) {
		return nil
	}
	var out map[string]string
	r.ForEach(func(k, v gjson.Result) bool {
		if out == nil {
			out = make(map[string]string)
		}
		out[k.Str] = jr.str(v, at+"."+k.Str)
		return true
	})
	return out
}

func (jr *jsonReader) strsMap(r gjson.Result, at string) map[string][]string {
	if absent(r) || !jr.object(r, at) {
		return nil
	}
	var out map[string][]string
	r.ForEach(func(k, v gjson.Result) bool {
		if out == nil {
			out = make(map[string][]string)
		}
		out[k.Str] = jr.strs(v, at+"."+k.Str)
		return true
	})
	return out
}

// Apply validates the manifest, binds operations from ops and registers
// everything on r. Nothing is registered unless the whole manifest is valid.
//
// Routes may name preconditions that are registered in code rather than
// declared in the manifest.
func (m Manifest) Apply(r *Router, ops Operations) error {
	preconditions := make([]Precondition, 0, len(m.Preconditions))
	for i, spec := range m.Preconditions {
		p, err := spec.build()
		if err != nil {
			return fmt.Errorf("precondition %d: %w", i, err)
		}
		preconditions = append(preconditions, p)
	}

	routes := make([]Route, 0, len(m.Routes))
	for i, spec := range m.Routes {
		route, err := spec.bind(ops)
		if err != nil {
			return fmt.Errorf("route %d: %w", i, err)
		}
		routes = append(routes, route)
	}

	for _, p := range preconditions {
		r.RegisterPrecondition(p)
	}
	r.MassAdd(routes...)
	return nil
}

func (s PreconditionSpec) build() (Precondition, error) {
	if s.ID == "" {
		return Precondition{}, fmt.Errorf("%w: missing id", ErrInvalidManifest)
	}
	if !ValidPath(s.Redirect) || s.Redirect == "" {
		return Precondition{}, fmt.Errorf("%w: %q: invalid redirect %q", ErrInvalidManifest, s.ID, s.Redirect)
	}

	conds := make([]Condition, 0, 2+len(s.Equals)+len(s.OneOf))
	if len(s.Require) > 0 {
		conds = append(conds, HasParams(s.Require...))
	}
	if len(s.NonEmpty) > 0 {
		conds = append(conds, HasValues(s.NonEmpty...))
	}
	for _, f := range sortedKeys(s.Equals) {
		conds = append(conds, ParamEquals(f, s.Equals[f]))
	}
	for _, f := range sortedKeys(s.OneOf) {
		if len(s.OneOf[f]) == 0 {
			return Precondition{}, fmt.Errorf("%w: %q: oneOf %q has no values", ErrInvalidManifest, s.ID, f)
		}
		conds = append(conds, ParamIn(f, s.OneOf[f]...))
	}
	if len(conds) == 0 {
		return Precondition{}, fmt.Errorf("%w: %q: no conditions", ErrInvalidManifest, s.ID)
	}

	return Guard(s.ID, And(conds...), s.Redirect), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s RouteSpec) bind(ops Operations) (Route, error) {
	if s.Path == "" || !ValidPath(s.Path) || strings.ContainsAny(s.Path, "?#") {
		return Route{}, fmt.Errorf("%w: invalid path %q", ErrInvalidManifest, s.Path)
	}
	op, ok := ops[s.Operation]
	if !ok {
		return Route{}, fmt.Errorf("%q: %w %q", s.Path, ErrUnknownOperation, s.Operation)
	}
	return Route{
		Path:          s.Path,
		Preconditions: s.Preconditions,
		Operation:     op,
	}, nil
}

// LoadManifest parses data and applies it to r.
//
// Example:
//
//	err := navigate.LoadManifest(r, routesJSON, navigate.Operations{
//	    "home":  showHome,
//	    "login": showLogin,
//	})
func LoadManifest(r *Router, data []byte, ops Operations) error {
	m, err := ParseManifest(data)
	if err != nil {
		return err
	}
	return m.Apply(r, ops)
}
