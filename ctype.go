package scribe

// cType maps a wire type tag to the C type used by the low-level
// libwayland calling convention. The server role always represents
// objects as opaque wl_resource handles; the client role uses the
// named interface struct when one is known. Unrecognized tags pass
// through verbatim so that future wire types do not break generation.
func cType(tag, iface string, server bool) string {
	switch tag {
	case "string":
		return "const char *"
	case "int":
		return "int32_t"
	case "uint":
		return "uint32_t"
	case "fixed":
		return "wl_fixed_t"
	case "fd":
		return "int32_t"
	case "array":
		return "wl_array *"
	case "object", "new_id":
		if server {
			return "struct ::wl_resource *"
		}
		if iface == "" {
			return "struct ::wl_object *"
		}
		return "struct ::" + iface + " *"
	default:
		return tag
	}
}

// apiType is the rich rendering used in the public generated API.
// It agrees with cType for everything except strings, which marshal
// to std::string at the public boundary.
func apiType(tag, iface string, server bool) string {
	if tag == "string" {
		return "const std::string &"
	}
	return cType(tag, iface, server)
}
