package scribe

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcusbritanicus/wayland-scribe/protocol"
)

func TestSetRunModeOutputNames(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		server  bool
		file    Artifact
		output  string
		wantHdr string
		wantSrc string
	}{
		{"derived server", "greeter.xml", true, Both, "", "greeter-server.hpp", "greeter-server.cpp"},
		{"derived client", "greeter.xml", false, Both, "", "greeter-client.hpp", "greeter-client.cpp"},
		{"derived nested", "specs/wlr-layer-shell.xml", true, Both, "", "specs/wlr-layer-shell-server.hpp", "specs/wlr-layer-shell-server.cpp"},
		{"explicit both", "greeter.xml", true, Both, "gen/greeter", "gen/greeter.hpp", "gen/greeter.cpp"},
		{"source only bare", "greeter.xml", false, SourceOnly, "gen", "", "gen.cpp"},
		{"source only suffixed", "greeter.xml", false, SourceOnly, "gen.cc", "", "gen.cc"},
		{"header only bare", "greeter.xml", false, HeaderOnly, "gen", "gen.hpp", ""},
		{"header only suffixed", "greeter.xml", false, HeaderOnly, "gen.hh", "gen.hh", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.SetRunMode(tt.spec, tt.server, tt.file, tt.output)
			if s.outputHdr != tt.wantHdr {
				t.Errorf("header path = %q, want %q", s.outputHdr, tt.wantHdr)
			}
			if s.outputSrc != tt.wantSrc {
				t.Errorf("source path = %q, want %q", s.outputSrc, tt.wantSrc)
			}
		})
	}
}

func writeSpec(t *testing.T, doc string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "greeter.xml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessWritesBothArtifacts(t *testing.T) {
	spec := writeSpec(t, greeterDoc)

	s := New()
	s.SetRunMode(spec, true, Both, "")
	s.SetArgs("", "", nil)

	if err := s.Process(); err != nil {
		t.Fatalf("Process: %v", err)
	}

	base := strings.TrimSuffix(spec, ".xml") + "-server"
	hdr, err := os.ReadFile(base + ".hpp")
	if err != nil {
		t.Fatalf("header artifact: %v", err)
	}
	src, err := os.ReadFile(base + ".cpp")
	if err != nil {
		t.Fatalf("source artifact: %v", err)
	}

	for _, text := range []string{string(hdr), string(src)} {
		if !strings.HasPrefix(text, "// This file was generated by wayland-scribe "+Version+"\n// Source: "+spec+"\n") {
			t.Error("artifact does not start with the provenance comment")
		}
	}
	if !strings.Contains(string(hdr), "#pragma once") {
		t.Error("header artifact is missing the inclusion guard")
	}
	if strings.Contains(string(src), "#pragma once") {
		t.Error("source artifact must not carry an inclusion guard")
	}
}

func TestProcessDeterministic(t *testing.T) {
	spec := writeSpec(t, greeterDoc)

	run := func() (string, string) {
		s := New()
		s.SetRunMode(spec, false, Both, "")
		s.SetArgs("wayland", "", []string{"iostream"})
		if err := s.Process(); err != nil {
			t.Fatalf("Process: %v", err)
		}

		base := strings.TrimSuffix(spec, ".xml") + "-client"
		hdr, err := os.ReadFile(base + ".hpp")
		if err != nil {
			t.Fatal(err)
		}
		src, err := os.ReadFile(base + ".cpp")
		if err != nil {
			t.Fatal(err)
		}
		return string(hdr), string(src)
	}

	hdr1, src1 := run()
	hdr2, src2 := run()
	if hdr1 != hdr2 || src1 != src2 {
		t.Error("repeated runs produced different artifacts")
	}
}

func TestProcessAuxiliaryArgs(t *testing.T) {
	spec := writeSpec(t, greeterDoc)

	s := New()
	s.SetRunMode(spec, true, HeaderOnly, "")
	s.SetArgs("wayland-cpp", "", []string{"iostream", "cstring"})

	if err := s.Process(); err != nil {
		t.Fatalf("Process: %v", err)
	}

	hdr, err := os.ReadFile(strings.TrimSuffix(spec, ".xml") + "-server.hpp")
	if err != nil {
		t.Fatal(err)
	}

	text := string(hdr)
	for _, want := range []string{
		"#include <iostream>",
		"#include <cstring>",
		"#include <wayland-cpp/greeter-server.h>",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("header: missing %q", want)
		}
	}
	if _, err := os.Stat(strings.TrimSuffix(spec, ".xml") + "-server.cpp"); !errors.Is(err, os.ErrNotExist) {
		t.Error("header-only run wrote a source artifact")
	}
}

func TestProcessUnopenableInput(t *testing.T) {
	s := New()
	s.SetRunMode(filepath.Join(t.TempDir(), "missing.xml"), true, Both, "")

	err := s.Process()
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Process: err = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestProcessFailsBeforeWriting(t *testing.T) {
	spec := writeSpec(t, `<protocol><interface name="a"/></protocol>`)

	s := New()
	s.SetRunMode(spec, true, Both, "")

	err := s.Process()
	if !errors.Is(err, protocol.ErrMissingProtocolName) {
		t.Fatalf("Process: err = %v, want ErrMissingProtocolName", err)
	}

	base := strings.TrimSuffix(spec, ".xml") + "-server"
	for _, path := range []string{base + ".hpp", base + ".cpp"} {
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("failed run left artifact %s behind", path)
		}
	}
}
