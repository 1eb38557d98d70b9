package scribe

import (
	"github.com/marcusbritanicus/wayland-scribe/protocol"
)

// serverHeader renders the server-role class declarations. Every
// interface becomes a class owning a multimap of bound Resources,
// with virtual per-request hooks and typed send wrappers per event.
func (g *generator) serverHeader(interfaces []protocol.Interface) {
	g.putln(`#include "wayland-server-core.h"`)

	if g.headerPath == "" {
		g.putln("#include \"%s-server.h\"\n", g.protoFile())
	} else {
		g.putln("#include <%s/%s-server.h>\n", g.headerPath, g.protoFile())
	}

	g.putln("#include <iostream>")
	g.putln("#include <map>")
	g.putln("#include <string>")
	g.putln("#include <utility>")

	g.putln("")
	g.putln("")
	g.putln("namespace Wayland {")
	g.putln("namespace Server {")

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
		stripped := g.strip(iface.Name, false)

		g.putln("    class %s {", name)
		g.putln("    public:")
		g.putln("        %s(struct ::wl_client *client, uint32_t id, int version);", name)
		g.putln("        %s(struct ::wl_display *display, int version);", name)
		g.putln("        %s(struct ::wl_resource *resource);", name)
		g.putln("        %s();", name)
		g.putln("")
		g.putln("        virtual ~%s();", name)
		g.putln("")
		g.putln("        class Resource {")
		g.putln("        public:")
		g.putln("            Resource() : %sObject(nullptr), handle(nullptr) {}", stripped)
		g.putln("            virtual ~Resource() {}")
		g.putln("")
		g.putln("            %s *%sObject;", name, stripped)
		g.putln("            %s *object() { return %sObject; } ", name, stripped)
		g.putln("            struct ::wl_resource *handle;")
		g.putln("")
		g.putln("            struct ::wl_client *client() const { return wl_resource_get_client(handle); }")
		g.putln("            int version() const { return wl_resource_get_version(handle); }")
		g.putln("")
		g.putln("            static Resource *fromResource(struct ::wl_resource *resource);")
		g.putln("        };")
		g.putln("")
		g.putln("        void init(struct ::wl_client *client, uint32_t id, int version);")
		g.putln("        void init(struct ::wl_display *display, int version);")
		g.putln("        void init(struct ::wl_resource *resource);")
		g.putln("")
		g.putln("        Resource *add(struct ::wl_client *client, int version);")
		g.putln("        Resource *add(struct ::wl_client *client, uint32_t id, int version);")
		g.putln("        Resource *add(struct wl_list *resource_list, struct ::wl_client *client, uint32_t id, int version);")
		g.putln("")
		g.putln("        Resource *resource() { return m_resource; }")
		g.putln("        const Resource *resource() const { return m_resource; }")
		g.putln("")
		g.putln("        std::multimap<struct ::wl_client*, Resource*> resourceMap() { return m_resource_map; }")
		g.putln("        const std::multimap<struct ::wl_client*, Resource*> resourceMap() const { return m_resource_map; }")
		g.putln("")
		g.putln("        bool isGlobal() const { return m_global != nullptr; }")
		g.putln("        bool isResource() const { return m_resource != nullptr; }")
		g.putln("")
		g.putln("        static const struct ::wl_interface *interface();")
		g.putln("        static std::string interfaceName() { return interface()->name; }")
		g.putln("        static int interfaceVersion() { return interface()->version; }")
		g.putln("")

		g.printEnums(iface.Enums)

		if len(iface.Events) > 0 {
			g.putln("")
			for _, e := range iface.Events {
				g.put("        void send")
				g.printEvent(e, false, false, true)
				g.putln(";")
				g.put("        void send")
				g.printEvent(e, false, true, true)
				g.putln(";")
			}
		}

		g.putln("")
		g.putln("    protected:")
		g.putln("        virtual Resource *allocate();")
		g.putln("")
		g.putln("        virtual void bindResource(Resource *resource);")
		g.putln("        virtual void destroyResource(Resource *resource);")

		if len(iface.Requests) > 0 {
			g.putln("")
			for _, e := range iface.Requests {
				g.put("        virtual void ")
				g.printEvent(e, false, false, false)
				g.putln(";")
			}
		}

		g.putln("")
		g.putln("    private:")
		g.putln("        static void bind_func(struct ::wl_client *client, void *data, uint32_t version, uint32_t id);")
		g.putln("        static void destroy_func(struct ::wl_resource *client_resource);")
		g.putln("        static void display_destroy_func(struct ::wl_listener *listener, void *data);")
		g.putln("")
		g.putln("        Resource *bind(struct ::wl_client *client, uint32_t id, int version);")
		g.putln("        Resource *bind(struct ::wl_resource *handle);")

		if len(iface.Requests) > 0 {
			g.putln("")
			g.putln("        static const struct ::%s_interface m_%s_interface;", iface.Name, iface.Name)
			g.putln("")
			for _, e := range iface.Requests {
				g.put("        static void ")
				g.printEventHandlerSignature(e, name)
				g.putln(";")
			}
		}

		g.putln("")
		g.putln("        std::multimap<struct ::wl_client*, Resource*> m_resource_map;")
		g.putln("        Resource *m_resource = nullptr;")
		g.putln("        struct ::wl_global *m_global = nullptr;")
		g.putln("        struct DisplayDestroyedListener : ::wl_listener {")
		g.putln("            %s *parent;", name)
		g.putln("        };")
		g.putln("        DisplayDestroyedListener m_displayDestroyedListener;")
		g.putln("    };")
	}

	g.putln("}")
	g.putln("}")
	g.putln("")
}

// serverCode renders the server-role definitions: constructors, the
// global/resource binding machinery, the positional request dispatch
// table, the handler thunks, and the event send wrappers.
func (g *generator) serverCode(interfaces []protocol.Interface) {
	if g.headerPath == "" {
		g.putln("#include \"%s-server.h\"", g.protoFile())
		g.putln("#include \"%s-server.hpp\"", g.protoFile())
	} else {
		g.putln("#include <%s/%s-server.h>", g.headerPath, g.protoFile())
		g.putln("#include <%s/%s-server.hpp>", g.headerPath, g.protoFile())
	}

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
		stripped := g.strip(iface.Name, false)

		g.putln("Wayland::Server::%s::%s(struct ::wl_client *client, uint32_t id, int version) {", name, name)
		g.putln("    m_resource_map.clear();")
		g.putln("    init(client, id, version);")
		g.putln("}")
		g.putln("")

		g.putln("Wayland::Server::%s::%s(struct ::wl_display *display, int version) {", name, name)
		g.putln("    m_resource_map.clear();")
		g.putln("    init(display, version);")
		g.putln("}")
		g.putln("")

		g.putln("Wayland::Server::%s::%s(struct ::wl_resource *resource) {", name, name)
		g.putln("    m_resource_map.clear();")
		g.putln("    init(resource);")
		g.putln("}")
		g.putln("")

		g.putln("Wayland::Server::%s::%s() {", name, name)
		g.putln("    m_resource_map.clear();")
		g.putln("}")
		g.putln("")

		g.putln("Wayland::Server::%s::~%s() {", name, name)
		g.putln("    for (auto it = m_resource_map.begin(); it != m_resource_map.end(); ) {")
		g.putln("        Resource *resourcePtr = it->second;")
		g.putln("")
		g.putln("        // Detach the Resource object pointed to by resourcePtr")
		g.putln("        resourcePtr->%sObject = nullptr;", stripped)
		g.putln("    }")
		g.putln("")
		g.putln("    if (m_resource)")
		g.putln("        m_resource->%sObject = nullptr;", stripped)
		g.putln("")
		g.putln("    if (m_global) {")
		g.putln("        wl_global_destroy(m_global);")
		g.putln("        wl_list_remove(&m_displayDestroyedListener.link);")
		g.putln("    }")
		g.putln("}")
		g.putln("")

		g.putln("void Wayland::Server::%s::init(struct ::wl_client *client, uint32_t id, int version) {", name)
		g.putln("    m_resource = bind(client, id, version);")
		g.putln("}")
		g.putln("")

		g.putln("void Wayland::Server::%s::init(struct ::wl_resource *resource) {", name)
		g.putln("    m_resource = bind(resource);")
		g.putln("}")
		g.putln("")

		g.putln("Wayland::Server::%s::Resource *Wayland::Server::%s::add(struct ::wl_client *client, int version) {", name, name)
		g.putln("    Resource *resource = bind(client, 0, version);")
		g.putln("    m_resource_map.insert(std::pair{client, resource});")
		g.putln("    return resource;")
		g.putln("}")
		g.putln("")

		g.putln("Wayland::Server::%s::Resource *Wayland::Server::%s::add(struct ::wl_client *client, uint32_t id, int version) {", name, name)
		g.putln("    Resource *resource = bind(client, id, version);")
		g.putln("    m_resource_map.insert(std::pair{client, resource});")
		g.putln("    return resource;")
		g.putln("}")
		g.putln("")

		g.putln("void Wayland::Server::%s::init(struct ::wl_display *display, int version) {", name)
		g.putln("    m_global = wl_global_create(display, &::%s_interface, version, this, bind_func);", iface.Name)
		g.putln("    m_displayDestroyedListener.notify = %s::display_destroy_func;", name)
		g.putln("    m_displayDestroyedListener.parent = this;")
		g.putln("    wl_display_add_destroy_listener(display, &m_displayDestroyedListener);")
		g.putln("}")
		g.putln("")

		g.putln("const struct wl_interface *Wayland::Server::%s::interface() {", name)
		g.putln("    return &::%s_interface;", iface.Name)
		g.putln("}")
		g.putln("")

		g.putln("Wayland::Server::%s::Resource *Wayland::Server::%s::allocate() {", name, name)
		g.putln("    return new Resource;")
		g.putln("}")
		g.putln("")

		g.putln("void Wayland::Server::%s::bindResource(Resource *) {", name)
		g.putln("}")
		g.putln("")

		g.putln("void Wayland::Server::%s::destroyResource(Resource *) {", name)
		g.putln("}")
		g.putln("")

		g.putln("void Wayland::Server::%s::bind_func(struct ::wl_client *client, void *data, uint32_t version, uint32_t id) {", name)
		g.putln("    %s *that = static_cast<%s *>(data);", name, name)
		g.putln("    that->add(client, id, version);")
		g.putln("}")
		g.putln("")

		g.putln("void Wayland::Server::%s::display_destroy_func(struct ::wl_listener *listener, void *) {", name)
		g.putln("    %s *that = static_cast<%s::DisplayDestroyedListener *>(listener)->parent;", name, name)
		g.putln("    that->m_global = nullptr;")
		g.putln("}")
		g.putln("")

		g.putln("void Wayland::Server::%s::destroy_func(struct ::wl_resource *client_resource) {", name)
		g.putln("    Resource *resource = Resource::fromResource(client_resource);")
		g.putln("    %s *that = resource->%sObject;", name, stripped)
		g.putln("    if (that) {")
		g.putln("        auto it = that->m_resource_map.begin();")
		g.putln("        while ( it != that->m_resource_map.end() ) {")
		g.putln("            if ( it->first == resource->client() ) {")
		g.putln("                it = that->m_resource_map.erase( it );")
		g.putln("            }")
		g.putln("")
		g.putln("            else {")
		g.putln("                ++it;")
		g.putln("            }")
		g.putln("        }")
		g.putln("        that->destroyResource(resource);")
		g.putln("")
		g.putln("        that = resource->%sObject;", stripped)
		g.putln("        if (that && that->m_resource == resource)")
		g.putln("            that->m_resource = nullptr;")
		g.putln("    }")
		g.putln("    delete resource;")
		g.putln("}")
		g.putln("")

		hasRequests := len(iface.Requests) > 0

		interfaceMember := "nullptr"
		if hasRequests {
			interfaceMember = "&m_" + iface.Name + "_interface"
		}

		g.putln("Wayland::Server::%s::Resource *Wayland::Server::%s::bind(struct ::wl_client *client, uint32_t id, int version) {", name, name)
		g.putln("    struct ::wl_resource *handle = wl_resource_create(client, &::%s_interface, version, id);", iface.Name)
		g.putln("    return bind(handle);")
		g.putln("}")
		g.putln("")

		g.putln("Wayland::Server::%s::Resource *Wayland::Server::%s::bind(struct ::wl_resource *handle) {", name, name)
		g.putln("    Resource *resource = allocate();")
		g.putln("    resource->%sObject = this;", stripped)
		g.putln("")
		g.putln("    wl_resource_set_implementation(handle, %s, resource, destroy_func);", interfaceMember)
		g.putln("    resource->handle = handle;")
		g.putln("    bindResource(resource);")
		g.putln("    return resource;")
		g.putln("}")
		g.putln("")

		g.putln("Wayland::Server::%s::Resource *Wayland::Server::%s::Resource::fromResource(struct ::wl_resource *resource) {", name, name)
		g.putln("    if (!resource)")
		g.putln("        return nullptr;")
		g.putln("    if (wl_resource_instance_of(resource, &::%s_interface, %s))", iface.Name, interfaceMember)
		g.putln("        return static_cast<Resource *>(wl_resource_get_user_data(resource));")
		g.putln("    return nullptr;")
		g.putln("}")

		if hasRequests {
			g.putln("")
			g.put("const struct ::%s_interface Wayland::Server::%s::m_%s_interface = {", iface.Name, name, iface.Name)
			comma := false
			for _, e := range iface.Requests {
				if comma {
					g.put(",")
				}
				comma = true
				g.put("\n")
				g.put("    Wayland::Server::%s::handle%s", name, camelCase(e.Name, true))
			}
			g.put("\n")
			g.putln("};")

			for _, e := range iface.Requests {
				g.putln("")
				g.put("void Wayland::Server::%s::", name)
				g.printEvent(e, true, false, false)
				g.putln(" {")
				g.putln("}")
			}
			g.putln("")

			for _, e := range iface.Requests {
				g.putln("")
				g.put("void Wayland::Server::%s::", name)
				g.printEventHandlerSignature(e, name)
				g.putln(" {")
				g.putln("    Resource *r = Resource::fromResource(resource);")
				g.putln("    if (!r->%sObject) {", stripped)

				if e.Destructor() {
					g.putln("        wl_resource_destroy(resource);")
				}

				g.putln("        return;")
				g.putln("    }")
				g.put("    static_cast<%s *>(r->%sObject)->%s(r", name, stripped, camelCase(e.Name, false))
				for _, a := range e.Args {
					g.put(", ")
					argName := camelCase(a.Name, false)

					switch {
					case g.cType(a) == g.apiType(a):
						g.put("%s", argName)
					case a.Type == "string":
						g.put("std::string(%s)", argName)
					}
				}
				g.putln(" );")
				g.putln("}")
			}
		}

		for _, e := range iface.Events {
			eventName := camelCase(e.Name, true)

			g.putln("")
			g.put("void Wayland::Server::%s::send", name)
			g.printEvent(e, false, false, true)
			g.putln(" {")
			g.putln("    if ( !m_resource ) {")
			g.putln("        return;")
			g.putln("    }")
			g.put("    send%s( m_resource->handle", eventName)
			for _, a := range e.Args {
				g.put(", ")
				g.put("%s", a.Name)
			}
			g.putln(" );")
			g.putln("}")
			g.putln("")

			g.put("void Wayland::Server::%s::send", name)
			g.printEvent(e, false, true, true)
			g.putln(" {")

			g.printArrayDescriptors(e)

			g.put("    %s_send_%s( ", iface.Name, e.Name)
			g.put("resource")
			for _, a := range e.Args {
				g.put(", ")
				switch {
				case a.Type == "string":
					g.put("%s.c_str()", a.Name)
				case a.Type == "array":
					g.put("&%s_data", a.Name)
				case g.cType(a) == g.apiType(a):
					g.put("%s", a.Name)
				}
			}
			g.putln(" );")
			g.putln("}")
			g.putln("")
		}
	}
	g.putln("")
}
