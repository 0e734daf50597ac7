package config

import (
	"testing"
	"time"
)

func TestOptionsGetStringDefault(t *testing.T) {
	var o Options
	if got := o.GetString("missing", "fallback"); got != "fallback" {
		t.Fatalf("GetString on nil Options = %q, want fallback", got)
	}
	o = Options{"key": "value"}
	if got := o.GetString("key", "fallback"); got != "value" {
		t.Fatalf("GetString(key) = %q, want value", got)
	}
	if got := o.GetString("key", "fallback"); got == "" {
		t.Fatal("unexpected empty string")
	}
}

func TestOptionsGetIntAcceptsNumericTypes(t *testing.T) {
	o := Options{"a": 5, "b": int64(6), "c": float64(7), "d": "not-a-number"}
	if got := o.GetInt("a", 0); got != 5 {
		t.Fatalf("GetInt(a) = %d, want 5", got)
	}
	if got := o.GetInt("b", 0); got != 6 {
		t.Fatalf("GetInt(b) = %d, want 6", got)
	}
	if got := o.GetInt("c", 0); got != 7 {
		t.Fatalf("GetInt(c) = %d, want 7", got)
	}
	if got := o.GetInt("d", 99); got != 99 {
		t.Fatalf("GetInt(d) = %d, want fallback 99", got)
	}
}

func TestOptionsGetDurationParsesStringsAndSeconds(t *testing.T) {
	o := Options{"a": "2s", "b": 3, "c": "garbage"}
	if got := o.GetDuration("a", 0); got != 2*time.Second {
		t.Fatalf("GetDuration(a) = %v, want 2s", got)
	}
	if got := o.GetDuration("b", 0); got != 3*time.Second {
		t.Fatalf("GetDuration(b) = %v, want 3s", got)
	}
	if got := o.GetDuration("c", time.Minute); got != time.Minute {
		t.Fatalf("GetDuration(c) = %v, want fallback 1m", got)
	}
}

func TestOptionsGetBool(t *testing.T) {
	o := Options{"a": true}
	if !o.GetBool("a", false) {
		t.Fatal("GetBool(a) should be true")
	}
	if o.GetBool("missing", true) != true {
		t.Fatal("GetBool(missing) should return the fallback")
	}
}

func TestOptionsGetStringSliceAcceptsBothSliceShapes(t *testing.T) {
	o := Options{
		"strs": []string{"a", "b"},
		"ifcs": []interface{}{"c", "d", 5},
	}
	if got := o.GetStringSlice("strs", nil); len(got) != 2 {
		t.Fatalf("GetStringSlice(strs) = %v, want 2 entries", got)
	}
	got := o.GetStringSlice("ifcs", nil)
	if len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Fatalf("GetStringSlice(ifcs) = %v, want [c d] (non-string entries dropped)", got)
	}
}
