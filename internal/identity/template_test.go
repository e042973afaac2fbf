package identity

import "testing"

func mapLookup(m map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func TestExpand_ResolvesVar(t *testing.T) {
	got := Expand("Hello ${OPERATOR_NAME}.", mapLookup(map[string]string{"OPERATOR_NAME": "Alice"}))
	if got != "Hello Alice." {
		t.Errorf("got %q", got)
	}
}

func TestExpand_FirstNonEmptyWins(t *testing.T) {
	vars := map[string]string{"SECOND": "two"}
	got := Expand("${FIRST||SECOND||fallback}", mapLookup(vars))
	if got != "two" {
		t.Errorf("got %q, want two", got)
	}
}

func TestExpand_LiteralFallback(t *testing.T) {
	got := Expand("${ASSISTANT_NAME||the assistant}", mapLookup(nil))
	if got != "the assistant" {
		t.Errorf("got %q", got)
	}
}

func TestExpand_ResolvedEmptyValueIsSkipped(t *testing.T) {
	vars := map[string]string{"A": "", "B": "bee"}
	got := Expand("${A||B}", mapLookup(vars))
	if got != "bee" {
		t.Errorf("got %q, want bee", got)
	}
}

func TestExpand_NothingResolvesToEmpty(t *testing.T) {
	got := Expand("x${MISSING_ONE||MISSING_TWO}y", mapLookup(nil))
	if got != "xy" {
		t.Errorf("got %q, want xy", got)
	}
}

func TestExpand_LowercaseSegmentIsLiteral(t *testing.T) {
	// "name" is not var-shaped, so it must never hit the lookup.
	lookup := func(name string) (string, bool) {
		t.Errorf("lookup called for %q", name)
		return "", false
	}
	got := Expand("${name}", lookup)
	if got != "name" {
		t.Errorf("got %q, want name", got)
	}
}

func TestExpand_SegmentsAreTrimmed(t *testing.T) {
	vars := map[string]string{"NAME": "Alice"}
	got := Expand("${ NAME || nobody }", mapLookup(vars))
	if got != "Alice" {
		t.Errorf("got %q, want Alice", got)
	}
}

func TestExpand_MultiplePlaceholders(t *testing.T) {
	vars := map[string]string{"A": "1", "B": "2"}
	got := Expand("${A}+${B}=${C||3}", mapLookup(vars))
	if got != "1+2=3" {
		t.Errorf("got %q", got)
	}
}

func TestExpand_PlainTextUntouched(t *testing.T) {
	src := "no placeholders here, not even $HOME or {braces}"
	if got := Expand(src, mapLookup(nil)); got != src {
		t.Errorf("got %q", got)
	}
}

func TestExpand_EmptyBody(t *testing.T) {
	if got := Expand("a${}b", mapLookup(nil)); got != "ab" {
		t.Errorf("got %q, want ab", got)
	}
}

func TestChainLookup_EnvEmptyFallsThrough(t *testing.T) {
	env := mapLookup(map[string]string{"NAME": ""})
	vars := mapLookup(map[string]string{"NAME": "from-settings"})

	v, ok := ChainLookup(env, vars)("NAME")
	if !ok || v != "from-settings" {
		t.Errorf("got %q, %v", v, ok)
	}
}

func TestChainLookup_FirstSourceWins(t *testing.T) {
	env := mapLookup(map[string]string{"NAME": "from-env"})
	vars := mapLookup(map[string]string{"NAME": "from-settings"})

	v, ok := ChainLookup(env, vars)("NAME")
	if !ok || v != "from-env" {
		t.Errorf("got %q, %v", v, ok)
	}
}

func TestChainLookup_Miss(t *testing.T) {
	if v, ok := ChainLookup(mapLookup(nil))("NAME"); ok {
		t.Errorf("unexpected hit: %q", v)
	}
}
