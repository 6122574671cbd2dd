package navigate

import (
	"testing"
)

func TestHasParams(t *testing.T) {
	view := ParamsView(Params{
		"tab":    "open",
		"filter": `{"kind":"open"}`,
	})

	t.Run("matches when all params present", func(t *testing.T) {
		if !HasParams("tab", "filter").Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("matches nested JSON fields", func(t *testing.T) {
		if !HasParams("tab", "filter.kind").Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("fails when any param missing", func(t *testing.T) {
		if HasParams("tab", "missing").Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("matches with no params (vacuous truth)", func(t *testing.T) {
		if !HasParams().Match(view) {
			t.Error("expected match for empty field list")
		}
	})
}

func TestParamEquals(t *testing.T) {
	view := ParamsView(Params{
		"role":   "admin",
		"filter": `{"limit":10,"tags":["a"]}`,
	})

	t.Run("matches exact value", func(t *testing.T) {
		if !ParamEquals("role", "admin").Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("fails on wrong value", func(t *testing.T) {
		if ParamEquals("role", "guest").Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("fails on missing param", func(t *testing.T) {
		if ParamEquals("missing", "").Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("matches JSON number as text", func(t *testing.T) {
		if !ParamEquals("filter.limit", "10").Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("fails on JSON array", func(t *testing.T) {
		if ParamEquals("filter.tags", `["a"]`).Match(view) {
			t.Error("expected no match")
		}
	})
}

func TestAndOrNot(t *testing.T) {
	view := ParamsView(Params{"a": "1", "b": "2"})

	t.Run("and matches when all match", func(t *testing.T) {
		if !And(HasParams("a"), ParamEquals("b", "2")).Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("and fails when any fails", func(t *testing.T) {
		if And(HasParams("a"), HasParams("c")).Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("and with no conditions (vacuous truth)", func(t *testing.T) {
		if !And().Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("or matches when any matches", func(t *testing.T) {
		if !Or(HasParams("c"), HasParams("a")).Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("or fails when none match", func(t *testing.T) {
		if Or(HasParams("c"), HasParams("d")).Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("or with no conditions", func(t *testing.T) {
		if Or().Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("not inverts", func(t *testing.T) {
		if Not(HasParams("a")).Match(view) || !Not(HasParams("c")).Match(view) {
			t.Error("Not did not invert")
		}
	})

	t.Run("condition func", func(t *testing.T) {
		c := ConditionFunc(func(v View) bool {
			s, _ := v.GetString("a")
			return s == "1"
		})
		if !c.Match(view) {
			t.Error("expected match")
		}
	})
}

func TestGuard(t *testing.T) {
	p := Guard("has-order", And(HasParams("order"), Not(ParamEquals("order", ""))), "/orders")

	t.Run("passes path through when condition matches", func(t *testing.T) {
		if got := p.Action("/checkout?order=7"); got != "/checkout?order=7" {
			t.Errorf("Action = %q, want unchanged path", got)
		}
	})

	t.Run("redirects when condition fails", func(t *testing.T) {
		for _, path := range []string{"/checkout", "/checkout?order="} {
			if got := p.Action(path); got != "/orders" {
				t.Errorf("Action(%q) = %q, want /orders", path, got)
			}
		}
	})

	t.Run("guards a route", func(t *testing.T) {
		rec := &recorder{}
		r := New(WithObserver(rec))
		r.RegisterPrecondition(p)
		r.Register(Route{Path: "/checkout", Preconditions: []string{"has-order"}})
		r.Register(Route{Path: "/orders"})

		if !r.Route("/checkout?order=7") {
			t.Error("expected guarded route to run")
		}
		if r.Route("/checkout") {
			t.Error("expected guarded route to redirect")
		}
		equalEvents(t, rec.events,
			"will /checkout?order=7",
			"did /checkout?order=7",
			"will /orders",
			"did /orders",
			"precondition has-order /checkout",
		)
	})
}

func TestHasValues(t *testing.T) {
	view := InspectPath(`/wizard?token=&user=7&filter=%7B%22scope%22%3A%22%22%7D`)

	t.Run("matches non-empty values", func(t *testing.T) {
		if !HasValues("user").Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("fails on empty value", func(t *testing.T) {
		if HasValues("token").Match(view) {
			t.Error("expected no match for ?token=")
		}
		if !HasParams("token").Match(view) {
			t.Error("HasParams should still see ?token=")
		}
	})

	t.Run("fails on empty JSON field", func(t *testing.T) {
		if HasValues("filter.scope").Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("fails on missing param", func(t *testing.T) {
		if HasValues("user", "missing").Match(view) {
			t.Error("expected no match")
		}
	})
}

func TestParamIn(t *testing.T) {
	view := InspectPath("/admin?role=editor&q=a%20b")

	t.Run("matches any listed value", func(t *testing.T) {
		if !ParamIn("role", "admin", "editor").Match(view) {
			t.Error("expected match")
		}
	})

	t.Run("fails on unlisted value", func(t *testing.T) {
		if ParamIn("role", "admin", "owner").Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("no values never matches", func(t *testing.T) {
		if ParamIn("role").Match(view) {
			t.Error("expected no match")
		}
	})

	t.Run("compares decoded values", func(t *testing.T) {
		if !ParamEquals("q", "a b").Match(view) {
			t.Error("expected match against unescaped value")
		}
		if ParamEquals("q", "a%20b").Match(view) {
			t.Error("expected no match against escaped value")
		}
	})
}
