package scribe

import (
	"strings"
	"testing"

	"github.com/marcusbritanicus/wayland-scribe/protocol"
)

const greeterDoc = `<protocol name="greeter">
  <interface name="greeter" version="1">
    <request name="say_hello">
      <arg name="name" type="string"/>
    </request>
    <event name="hello">
      <arg name="greeting" type="string"/>
    </event>
  </interface>
</protocol>`

func parse(t *testing.T, doc string) *protocol.Protocol {
	t.Helper()

	proto, err := protocol.Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("read protocol: %v", err)
	}
	return proto
}

func render(t *testing.T, doc string, server bool) (hdr, src string) {
	t.Helper()

	proto := parse(t, doc)

	s := New()
	s.SetRunMode("test.xml", server, Both, "")

	g := s.newGenerator(proto)
	g.prologue(true)
	if server {
		g.serverHeader(proto.Interfaces)
	} else {
		g.clientHeader(proto.Interfaces)
	}
	hdr = g.String()

	g = s.newGenerator(proto)
	g.prologue(false)
	if server {
		g.serverCode(proto.Interfaces)
	} else {
		g.clientCode(proto.Interfaces)
	}
	src = g.String()

	return hdr, src
}

func wantContains(t *testing.T, artifact, text string, wants ...string) {
	t.Helper()

	for _, want := range wants {
		if !strings.Contains(text, want) {
			t.Errorf("%s: missing %q", artifact, want)
		}
	}
}

func wantOrder(t *testing.T, artifact, text string, first, second string) {
	t.Helper()

	i := strings.Index(text, first)
	j := strings.Index(text, second)
	switch {
	case i < 0:
		t.Errorf("%s: missing %q", artifact, first)
	case j < 0:
		t.Errorf("%s: missing %q", artifact, second)
	case i > j:
		t.Errorf("%s: %q emitted after %q", artifact, first, second)
	}
}
