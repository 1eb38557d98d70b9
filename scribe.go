// Package scribe reads Wayland protocol specifications in XML format
// and generates C++ wrapper classes for either the server or the
// client side of the protocol.
package scribe

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/marcusbritanicus/wayland-scribe/internal/debug"
	"github.com/marcusbritanicus/wayland-scribe/protocol"
)

const (
	scannerName = "wayland-scribe"

	// Version is printed by the CLI and stamped into the provenance
	// comment at the top of every generated file.
	Version = "v1.1.0"
)

// Artifact selects which of the two output files a run generates.
type Artifact int

const (
	Both Artifact = iota
	SourceOnly
	HeaderOnly
)

var (
	headerSuffixes = []string{".h", ".hh", ".hpp"}
	sourceSuffixes = []string{".cc", ".cpp"}
)

func hasAnySuffix(name string, suffixes []string) bool {
	return slices.ContainsFunc(suffixes, func(s string) bool {
		return strings.HasSuffix(name, s)
	})
}

// Scribe is one configured generation run: a spec file, a role, an
// artifact selection, and the auxiliary arguments. Configure it with
// SetRunMode and SetArgs, then call Process.
type Scribe struct {
	server bool
	file   Artifact

	specPath  string
	outputSrc string
	outputHdr string

	headerPath string
	prefix     string
	includes   []string
}

func New() *Scribe {
	return &Scribe{}
}

// SetRunMode sets the input document, the role, the artifact
// selection, and an optional explicit output base name. When output
// is empty the base name is derived from the spec path: the .xml
// suffix is stripped and a role suffix appended. An explicit output
// that already carries a recognized header/source suffix is used
// verbatim for single-artifact runs.
func (s *Scribe) SetRunMode(specFile string, server bool, file Artifact, output string) {
	s.specPath = specFile
	s.server = server
	s.file = file

	if output == "" {
		suffix := "-client"
		if server {
			suffix = "-server"
		}
		output = strings.TrimSuffix(specFile, ".xml") + suffix
	}

	switch file {
	case Both:
		s.outputSrc = output + ".cpp"
		s.outputHdr = output + ".hpp"

	case SourceOnly:
		s.outputSrc = output
		if !hasAnySuffix(output, sourceSuffixes) {
			s.outputSrc = output + ".cpp"
		}

	case HeaderOnly:
		s.outputHdr = output
		if !hasAnySuffix(output, headerSuffixes) {
			s.outputHdr = output + ".hpp"
		}
	}
}

// SetArgs sets the auxiliary arguments: the search path under which
// the C transport headers live, the interface prefix to strip, and
// extra include directives copied verbatim into both artifacts.
func (s *Scribe) SetArgs(headerPath, prefix string, includes []string) {
	s.headerPath = headerPath
	s.prefix = prefix

	s.includes = s.includes[:0]
	for _, inc := range includes {
		s.includes = append(s.includes, "<"+inc+">")
	}
}

// Process runs one generation pass: parse the spec document, render
// the requested artifacts fully in memory, then write them out. On
// error nothing has been written.
func (s *Scribe) Process() error {
	f, err := os.Open(s.specPath)
	if err != nil {
		return fmt.Errorf("open spec file: %w", err)
	}
	defer f.Close()

	proto, err := protocol.Read(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.specPath, err)
	}
	debug.Printf("parsed protocol %q: %d interfaces", proto.Name, len(proto.Interfaces))

	var hdr, src string

	if s.file == Both || s.file == HeaderOnly {
		g := s.newGenerator(proto)
		g.prologue(true)
		if s.server {
			g.serverHeader(proto.Interfaces)
		} else {
			g.clientHeader(proto.Interfaces)
		}
		hdr = g.String()
	}

	if s.file == Both || s.file == SourceOnly {
		g := s.newGenerator(proto)
		g.prologue(false)
		if s.server {
			g.serverCode(proto.Interfaces)
		} else {
			g.clientCode(proto.Interfaces)
		}
		src = g.String()
	}

	if hdr != "" {
		if err := os.WriteFile(s.outputHdr, []byte(hdr), 0o644); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		debug.Printf("wrote %s (%d bytes)", s.outputHdr, len(hdr))
	}
	if src != "" {
		if err := os.WriteFile(s.outputSrc, []byte(src), 0o644); err != nil {
			return fmt.Errorf("write source: %w", err)
		}
		debug.Printf("wrote %s (%d bytes)", s.outputSrc, len(src))
	}

	return nil
}
