package protocol

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
)

var (
	// ErrMalformedDocument is returned when the document has no root
	// element or the root element is not <protocol>.
	ErrMalformedDocument = errors.New("document is not a wayland protocol file")

	// ErrMissingProtocolName is returned when the root element has no
	// non-empty name attribute.
	ErrMissingProtocolName = errors.New("missing protocol name")
)

// Read parses a protocol-specification XML document. Unknown elements
// at any level are skipped so that documents written against newer
// revisions of the format still parse. Malformed XML is reported via
// the decoder's own *xml.SyntaxError, which carries a line number.
func Read(r io.Reader) (*Protocol, error) {
	d := xml.NewDecoder(r)

	root, err := nextStart(d)
	if err != nil {
		return nil, err
	}
	if root.Name.Local != "protocol" {
		return nil, ErrMalformedDocument
	}

	proto := Protocol{Name: attr(root, "name")}
	if proto.Name == "" {
		return nil, ErrMissingProtocolName
	}

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return &proto, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "interface" {
				if err := d.Skip(); err != nil {
					return nil, err
				}
				continue
			}

			iface, err := readInterface(d, t)
			if err != nil {
				return nil, err
			}
			proto.Interfaces = append(proto.Interfaces, iface)

		case xml.EndElement:
			return &proto, nil
		}
	}
}

func readInterface(d *xml.Decoder, start xml.StartElement) (Interface, error) {
	iface := Interface{
		Name:    attr(start, "name"),
		Version: attrInt(start, "version", 1),
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return iface, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "event":
				op, err := readOp(d, t, false)
				if err != nil {
					return iface, err
				}
				iface.Events = append(iface.Events, op)

			case "request":
				op, err := readOp(d, t, true)
				if err != nil {
					return iface, err
				}
				iface.Requests = append(iface.Requests, op)

			case "enum":
				enum, err := readEnum(d, t)
				if err != nil {
					return iface, err
				}
				iface.Enums = append(iface.Enums, enum)

			default:
				if err := d.Skip(); err != nil {
					return iface, err
				}
			}

		case xml.EndElement:
			return iface, nil
		}
	}
}

func readOp(d *xml.Decoder, start xml.StartElement, request bool) (Op, error) {
	op := Op{
		Request: request,
		Name:    attr(start, "name"),
		Type:    attr(start, "type"),
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return op, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "arg" {
				op.Args = append(op.Args, Arg{
					Name:      attr(t, "name"),
					Type:      attr(t, "type"),
					Interface: attr(t, "interface"),
					Summary:   attr(t, "summary"),
					AllowNull: attrBool(t, "allowNull"),
				})
			}
			if err := d.Skip(); err != nil {
				return op, err
			}

		case xml.EndElement:
			return op, nil
		}
	}
}

func readEnum(d *xml.Decoder, start xml.StartElement) (Enum, error) {
	enum := Enum{Name: attr(start, "name")}

	for {
		tok, err := d.Token()
		if err != nil {
			return enum, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "entry" {
				enum.Entries = append(enum.Entries, Entry{
					Name:    attr(t, "name"),
					Value:   attr(t, "value"),
					Summary: attr(t, "summary"),
				})
			}
			if err := d.Skip(); err != nil {
				return enum, err
			}

		case xml.EndElement:
			return enum, nil
		}
	}
}

// nextStart skips past the XML prolog, comments, and character data
// to the document's root element.
func nextStart(d *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, ErrMalformedDocument
		}
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func attrInt(start xml.StartElement, name string, def int) int {
	v, err := strconv.Atoi(attr(start, name))
	if err != nil {
		return def
	}
	return v
}

func attrBool(start xml.StartElement, name string) bool {
	return attr(start, name) == "true"
}
