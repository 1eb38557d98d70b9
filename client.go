package scribe

import (
	"github.com/marcusbritanicus/wayland-scribe/protocol"
)

// clientHeader renders the client-role class declarations: typed
// request wrappers plus protected virtual hooks for inbound events.
func (g *generator) clientHeader(interfaces []protocol.Interface) {
	if g.headerPath == "" {
		g.putln("#include \"%s-client.h\"", g.protoFile())
	} else {
		g.putln("#include <%s/%s-client.h>", g.headerPath, g.protoFile())
	}

	g.putln("struct wl_registry;")
	g.putln("")

	g.putln("")
	g.putln("namespace Wayland {")
	g.putln("namespace Client {")

	needsNewLine := false
	for _, iface := range interfaces {
		if g.ignore(iface.Name) {
			continue
		}

		if needsNewLine {
			g.putln("")
		}
		needsNewLine = true

		name := camelCase(iface.Name, true)

		g.putln("    class %s", name)
		g.putln("    {")
		g.putln("    public:")
		g.putln("        %s(struct ::wl_registry *registry, uint32_t id, int version);", name)
		g.putln("        %s(struct ::%s *object);", name, iface.Name)
		g.putln("        %s();", name)
		g.putln("")
		g.putln("        virtual ~%s();", name)
		g.putln("")
		g.putln("        void init(struct ::wl_registry *registry, uint32_t id, int version);")
		g.putln("        void init(struct ::%s *object);", iface.Name)
		g.putln("")
		g.putln("        struct ::%s *object() { return m_%s; }", iface.Name, iface.Name)
		g.putln("        const struct ::%s *object() const { return m_%s; }", iface.Name, iface.Name)
		g.putln("        static %s *fromObject(struct ::%s *object);", name, iface.Name)
		g.putln("")
		g.putln("        bool isInitialized() const;")
		g.putln("")
		g.putln("        uint32_t version() const;")
		g.putln("")
		g.putln("        static const struct ::wl_interface *interface();")

		g.printEnums(iface.Enums)

		if len(iface.Requests) > 0 {
			g.putln("")
			for _, e := range iface.Requests {
				g.put("        %s", g.newIDReturn(e))
				g.printEvent(e, false, false, false)
				g.putln(";")
			}
		}

		hasEvents := len(iface.Events) > 0

		if hasEvents {
			g.putln("")
			g.putln("    protected:")
			for _, e := range iface.Events {
				g.put("        virtual void ")
				g.printEvent(e, false, false, false)
				g.putln(";")
			}
		}

		g.putln("")
		g.putln("    private:")

		if hasEvents {
			g.putln("        void init_listener();")
			g.putln("        static const struct %s_listener m_%s_listener;", iface.Name, iface.Name)
			for _, e := range iface.Events {
				g.put("        static void ")
				g.printEventHandlerSignature(e, iface.Name)
				g.putln(";")
			}
		}

		g.putln("        struct ::%s *m_%s;", iface.Name, iface.Name)
		g.putln("    };")
	}
	g.putln("}")
	g.putln("}")
	g.putln("")
}

// clientCode renders the client-role definitions: registry binding,
// request wrappers calling the libwayland entry points, and the
// listener glue that routes inbound events to the virtual hooks.
func (g *generator) clientCode(interfaces []protocol.Interface) {
	if g.headerPath == "" {
		g.putln("#include \"%s-client.h\"", g.protoFile())
		g.putln("#include \"%s-client.hpp\"", g.protoFile())
	} else {
		g.putln("#include <%s/%s-client.h>", g.headerPath, g.protoFile())
		g.putln("#include <%s/%s-client.hpp>", g.headerPath, g.protoFile())
	}

	g.putln("")

	// wl_registry_bind is part of the protocol, so we can't use it
	// here. Core libwayland API does the same thing a generated
	// wl_registry_bind would.
	g.putln("static inline void *wlRegistryBind(struct ::wl_registry *registry, uint32_t name, const struct ::wl_interface *interface, uint32_t version) {")
	g.putln("    const uint32_t bindOpCode = 0;")
	g.put("    return (void *) wl_proxy_marshal_constructor_versioned((struct wl_proxy *) registry, ")
	g.putln(" bindOpCode, interface, version, name, interface->name, version, nullptr);")
	g.putln("}")
	g.putln("")

	needsNewLine := false
	for _, iface := range interfaces {
		if g.ignore(iface.Name) {
			continue
		}

		if needsNewLine {
			g.putln("")
		}
		needsNewLine = true

		name := camelCase(iface.Name, true)
		hasEvents := len(iface.Events) > 0

		g.putln("Wayland::Client::%s::%s(struct ::wl_registry *registry, uint32_t id, int version) {", name, name)
		g.putln("    init(registry, id, version);")
		g.putln("}")
		g.putln("")

		g.putln("Wayland::Client::%s::%s(struct ::%s *obj)", name, name, iface.Name)
		g.putln("    : m_%s(obj) {", iface.Name)
		if hasEvents {
			g.putln("    init_listener();")
		}
		g.putln("}")
		g.putln("")

		g.putln("Wayland::Client::%s::%s()", name, name)
		g.putln("    : m_%s(nullptr) {", iface.Name)
		g.putln("}")
		g.putln("")

		g.putln("Wayland::Client::%s::~%s() {", name, name)
		g.putln("}")
		g.putln("")

		g.putln("void Wayland::Client::%s::init(struct ::wl_registry *registry, uint32_t id, int version) {", name)
		g.putln("    m_%s = static_cast<struct ::%s *>(wlRegistryBind(registry, id, &%s_interface, version));",
			iface.Name, iface.Name, iface.Name)
		if hasEvents {
			g.putln("    init_listener();")
		}
		g.putln("}")
		g.putln("")

		g.putln("void Wayland::Client::%s::init(struct ::%s *obj) {", name, iface.Name)
		g.putln("    m_%s = obj;", iface.Name)
		if hasEvents {
			g.putln("    init_listener();")
		}
		g.putln("}")
		g.putln("")

		g.putln("Wayland::Client::%s *Wayland::Client::%s::fromObject(struct ::%s *object) {", name, name, iface.Name)
		if hasEvents {
			g.putln("    if (wl_proxy_get_listener((struct ::wl_proxy *)object) != (void *)&m_%s_listener)", iface.Name)
			g.putln("        return nullptr;")
		}
		g.putln("    return static_cast<Wayland::Client::%s *>(%s_get_user_data(object));", name, iface.Name)
		g.putln("}")
		g.putln("")

		g.putln("bool Wayland::Client::%s::isInitialized() const {", name)
		g.putln("    return m_%s != nullptr;", iface.Name)
		g.putln("}")
		g.putln("")

		g.putln("uint32_t Wayland::Client::%s::version() const {", name)
		g.putln("    return wl_proxy_get_version(reinterpret_cast<wl_proxy*>(m_%s));", iface.Name)
		g.putln("}")
		g.putln("")

		g.putln("const struct wl_interface *Wayland::Client::%s::interface() {", name)
		g.putln("    return &::%s_interface;", iface.Name)
		g.putln("}")

		for _, e := range iface.Requests {
			g.putln("")
			newID := e.NewID()

			g.put("%sWayland::Client::%s::", g.newIDReturn(e), name)
			g.printEvent(e, false, false, false)
			g.putln(" {")

			g.printArrayDescriptors(e)

			actualArgs := len(e.Args)
			if newID != nil {
				actualArgs--
			}

			g.put("    %s::%s_%s( ", pick(newID != nil, "return ", ""), iface.Name, e.Name)
			g.put("m_%s%s", iface.Name, pick(actualArgs > 0, ", ", ""))
			comma := false
			for _, a := range e.Args {
				isNewID := a.Type == "new_id"

				if isNewID && a.Interface != "" {
					continue
				}

				if comma {
					g.put(", ")
				}
				comma = true

				switch {
				case isNewID:
					g.put("interface, version")
				case a.Type == "string":
					g.put("%s.c_str()", a.Name)
				case a.Type == "array":
					g.put("&%s_data", a.Name)
				case g.cType(a) == g.apiType(a):
					g.put("%s", a.Name)
				}
			}
			g.putln(" );")

			if e.Destructor() {
				g.putln("    m_%s = nullptr;", iface.Name)
			}

			g.putln("}")
		}

		if hasEvents {
			g.putln("")
			for _, e := range iface.Events {
				g.put("void Wayland::Client::%s::", name)
				g.printEvent(e, true, false, false)
				g.putln(" {")
				g.putln("}")
				g.putln("")

				g.put("void Wayland::Client::%s::", name)
				g.printEventHandlerSignature(e, iface.Name)
				g.putln(" {")
				g.put("    static_cast<Wayland::Client::%s *>(data)->%s( ", name, camelCase(e.Name, false))
				comma := false
				for _, a := range e.Args {
					if comma {
						g.put(", ")
					}
					comma = true

					argName := camelCase(a.Name, false)
					if a.Type == "string" {
						g.put("std::string(%s)", argName)
					} else {
						g.put("%s", argName)
					}
				}
				g.putln(" );")
				g.putln("}")
				g.putln("")
			}

			g.putln("const struct %s_listener Wayland::Client::%s::m_%s_listener = {", iface.Name, name, iface.Name)
			for _, e := range iface.Events {
				g.putln("    Wayland::Client::%s::handle%s,", name, camelCase(e.Name, true))
			}
			g.putln("};")
			g.putln("")

			g.putln("void Wayland::Client::%s::init_listener() {", name)
			g.putln("    %s_add_listener(m_%s, &m_%s_listener, this);", iface.Name, iface.Name, iface.Name)
			g.putln("}")
		}
	}
	g.putln("")
}
