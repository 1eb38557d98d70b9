// Package protocol defines the types necessary for reading a Wayland
// protocol-specification XML file.
package protocol

import "strconv"

// Protocol is one parsed protocol document: its name and its
// interfaces in document order.
type Protocol struct {
	Name       string
	Interfaces []Interface
}

// Interface is one named protocol object type. Requests, events, and
// enums keep their declaration order; the generated dispatch tables
// are positional, so the order is load-bearing.
type Interface struct {
	Name    string
	Version int

	Enums    []Enum
	Events   []Op
	Requests []Op
}

// Op is a single request or event. Request reports which of the two
// it is; Type is "destructor" for requests that tear down the
// underlying handle and empty otherwise.
type Op struct {
	Request bool
	Name    string
	Type    string

	Args []Arg
}

// Destructor reports whether invoking the op also destroys the
// resource it was invoked on.
func (o Op) Destructor() bool {
	return o.Type == "destructor"
}

// NewID returns the op's first new_id argument, or nil if there is
// none. Multiple new_id arguments on one op are not a defined
// protocol case; only the first is ever considered.
func (o Op) NewID() *Arg {
	for i := range o.Args {
		if o.Args[i].Type == "new_id" {
			return &o.Args[i]
		}
	}
	return nil
}

// Arg is one typed argument of an Op. Interface names the object type
// for object and new_id arguments; empty means "any object".
type Arg struct {
	Name      string
	Type      string
	Interface string
	Summary   string
	AllowNull bool
}

type Enum struct {
	Name    string
	Entries []Entry
}

// Entry keeps Value as the literal text from the document so that hex
// constants survive into the generated code unconverted.
type Entry struct {
	Name    string
	Value   string
	Summary string
}

func (e Entry) Int() (int, error) {
	v, err := strconv.ParseInt(e.Value, 0, 0)
	return int(v), err
}
