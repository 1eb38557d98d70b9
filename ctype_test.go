package scribe

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type mapped struct {
	Client string
	Server string
}

// Every defined wire tag must map to a non-empty native type for both
// roles. The server role always uses the opaque resource handle for
// objects, named interface or not.
func TestCTypeTotality(t *testing.T) {
	want := map[string]mapped{
		"int":    {"int32_t", "int32_t"},
		"uint":   {"uint32_t", "uint32_t"},
		"fixed":  {"wl_fixed_t", "wl_fixed_t"},
		"fd":     {"int32_t", "int32_t"},
		"string": {"const char *", "const char *"},
		"array":  {"wl_array *", "wl_array *"},
		"object": {"struct ::wl_object *", "struct ::wl_resource *"},
		"new_id": {"struct ::wl_object *", "struct ::wl_resource *"},
	}

	got := make(map[string]mapped, len(want))
	tags := maps.Keys(want)
	slices.Sort(tags)
	for _, tag := range tags {
		got[tag] = mapped{
			Client: cType(tag, "", false),
			Server: cType(tag, "", true),
		}
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cType mismatch (-want +got):\n%s", diff)
	}
}

func TestCTypeNamedInterface(t *testing.T) {
	if got, want := cType("object", "foo", true), "struct ::wl_resource *"; got != want {
		t.Errorf("server object type = %q, want %q", got, want)
	}
	if got, want := cType("object", "foo", false), "struct ::foo *"; got != want {
		t.Errorf("client object type = %q, want %q", got, want)
	}
	if got, want := cType("new_id", "wl_surface", false), "struct ::wl_surface *"; got != want {
		t.Errorf("client new_id type = %q, want %q", got, want)
	}
}

// Unrecognized tags pass through verbatim so that new wire types do
// not break generation.
func TestCTypePassthrough(t *testing.T) {
	for _, server := range []bool{false, true} {
		if got := cType("enum32", "", server); got != "enum32" {
			t.Errorf("cType(enum32, server=%t) = %q, want passthrough", server, got)
		}
	}
}

// The rich rendering differs from the raw one only for strings.
func TestAPIType(t *testing.T) {
	if got, want := apiType("string", "", false), "const std::string &"; got != want {
		t.Errorf("apiType(string) = %q, want %q", got, want)
	}
	for _, tag := range []string{"int", "uint", "fixed", "fd", "array", "object", "new_id"} {
		if got, want := apiType(tag, "", true), cType(tag, "", true); got != want {
			t.Errorf("apiType(%s) = %q, want cType %q", tag, got, want)
		}
	}
}
