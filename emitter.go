package scribe

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/marcusbritanicus/wayland-scribe/internal/set"
	"github.com/marcusbritanicus/wayland-scribe/internal/xslices"
	"github.com/marcusbritanicus/wayland-scribe/protocol"
)

// emitter is an append-only text buffer. Generation renders whole
// artifacts into memory so that the IR-to-text transform can be
// tested without touching the filesystem.
type emitter struct {
	buf bytes.Buffer
}

func (e *emitter) put(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
}

func (e *emitter) putln(format string, args ...any) {
	e.put(format+"\n", args...)
}

func (e *emitter) String() string {
	return e.buf.String()
}

// generator renders one artifact for one role. The role is fixed at
// construction; the per-argument rendering helpers below are shared
// between the four role/artifact emitters.
type generator struct {
	emitter

	server     bool
	prefix     string
	source     string
	headerPath string
	includes   []string

	proto   *protocol.Protocol
	ignored set.Set[string]
}

func (s *Scribe) newGenerator(proto *protocol.Protocol) *generator {
	ignored := set.New("wl_display")
	if s.server {
		ignored.Add("wl_registry")
	}

	return &generator{
		server:     s.server,
		prefix:     s.prefix,
		source:     s.specPath,
		headerPath: s.headerPath,
		includes:   s.includes,
		proto:      proto,
		ignored:    ignored,
	}
}

// ignore reports whether an interface is one of the bootstrap objects
// provided by libwayland itself rather than by generated code.
func (g *generator) ignore(name string) bool {
	return g.ignored.Has(name)
}

func (g *generator) cType(a protocol.Arg) string {
	return cType(a.Type, a.Interface, g.server)
}

func (g *generator) apiType(a protocol.Arg) string {
	return apiType(a.Type, a.Interface, g.server)
}

func (g *generator) strip(name string, capitalize bool) string {
	return stripInterfaceName(name, g.prefix, capitalize)
}

// protoFile is the protocol name as it appears in the C transport
// header file names, with underscores normalized to dashes.
func (g *generator) protoFile() string {
	return strings.ReplaceAll(g.proto.Name, "_", "-")
}

// prologue writes the provenance comment, the inclusion guard for
// header artifacts, and the caller-supplied extra includes.
func (g *generator) prologue(isHeader bool) {
	g.putln("// This file was generated by %s %s", scannerName, Version)
	g.putln("// Source: %s", g.source)
	g.putln("")
	if isHeader {
		g.putln("#pragma once")
		g.putln("")
	}
	for _, inc := range g.includes {
		g.putln("#include %s", inc)
	}
	g.putln("#include <string>")
}

// printEvent renders a public API signature for one op, starting at
// the name and ending at the closing parenthesis. On the receiving
// side a new_id argument is not a user-visible parameter: the server
// sees the bare id, the client sees an (interface, version) pair for
// unbound requests and nothing at all otherwise.
func (g *generator) printEvent(e protocol.Op, omitNames, withResource, capitalize bool) {
	g.put("%s( ", camelCase(e.Name, capitalize))

	comma := false
	if g.server {
		switch {
		case e.Request:
			g.put("Resource *%s", pick(omitNames, "", "resource"))
			comma = true
		case withResource:
			g.put("struct ::wl_resource *%s", pick(omitNames, "", "resource"))
			comma = true
		}
	}

	for _, a := range e.Args {
		newID := a.Type == "new_id"

		if newID && !g.server && ((a.Interface == "") != e.Request) {
			continue
		}

		if comma {
			g.put(", ")
		}
		comma = true

		if newID {
			if g.server {
				if e.Request {
					g.put("uint32_t")
					if !omitNames {
						g.put(" %s", a.Name)
					}
					continue
				}
			} else if e.Request {
				g.put("const struct ::wl_interface *%s, uint32_t%s",
					pick(omitNames, "", "interface"), pick(omitNames, "", " version"))
				continue
			}
		}

		t := g.apiType(a)
		g.put("%s%s%s", t, typeSpace(t), pick(omitNames, "", a.Name))
	}
	g.put(" )")
}

// printEventHandlerSignature renders the low-level handler signature
// that libwayland invokes: raw C types, camel-cased argument names,
// and the role-specific leading parameters.
func (g *generator) printEventHandlerSignature(e protocol.Op, interfaceName string) {
	g.put("handle%s( ", camelCase(e.Name, true))

	if g.server {
		g.put("::wl_client *, ")
		g.put("struct wl_resource *resource")
	} else {
		g.put("void *data, ")
		g.put("struct ::%s *", interfaceName)
	}

	for _, a := range e.Args {
		g.put(", ")
		argName := camelCase(a.Name, false)

		if g.server && a.Type == "new_id" {
			g.put("uint32_t %s", argName)
			continue
		}

		t := g.cType(a)
		g.put("%s%s%s", t, pick(strings.HasSuffix(t, "*"), "", " "), argName)
	}
	g.put(" )")
}

// printEnums renders the enum declarations of one interface, entries
// in document order, literal values verbatim.
func (g *generator) printEnums(enums []protocol.Enum) {
	for _, en := range enums {
		g.putln("")
		g.putln("        enum class %s {", en.Name)
		for _, entry := range en.Entries {
			g.put("            %s_%s = %s,", en.Name, entry.Name, entry.Value)
			if entry.Summary != "" {
				g.put(" // %s", entry.Summary)
			}
			g.put("\n")
		}
		g.putln("        };")
	}
}

// printArrayDescriptors emits the transient wl_array descriptors that
// must be built right before a low-level call with array arguments.
func (g *generator) printArrayDescriptors(e protocol.Op) {
	arrays := xslices.Filter(e.Args, func(a protocol.Arg) bool { return a.Type == "array" })
	for _, a := range arrays {
		g.putln("    struct wl_array %s_data;", a.Name)
		g.putln("    %s_data.size = %s.size();", a.Name, a.Name)
		g.putln("    %s_data.data = static_cast<void *>(const_cast<char *>(%s.constData()));", a.Name, a.Name)
		g.putln("    %s_data.alloc = 0;", a.Name)
		g.putln("")
	}
}

// newIDReturn is the return type of a client request wrapper: the
// created object's type when the request carries a new_id argument,
// void otherwise.
func (g *generator) newIDReturn(e protocol.Op) string {
	newID := e.NewID()
	switch {
	case newID == nil:
		return "void "
	case newID.Interface == "":
		return "void *"
	default:
		return "struct ::" + newID.Interface + " *"
	}
}

func typeSpace(t string) string {
	if strings.HasSuffix(t, "&") || strings.HasSuffix(t, "*") {
		return ""
	}
	return " "
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
