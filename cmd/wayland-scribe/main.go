// Command wayland-scribe generates C++ wrapper classes from a Wayland
// protocol specification XML file.
//
// Usage:
//
//	wayland-scribe --[server|client] specfile [options] --[source|header] output
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	scribe "github.com/marcusbritanicus/wayland-scribe"
	"github.com/spf13/pflag"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("wayland-scribe: ")

	var (
		server     = pflag.String("server", "", "Generate the server-side wrapper code for the given protocol.")
		client     = pflag.String("client", "", "Generate the client-side wrapper code for the given protocol.")
		source     = pflag.Bool("source", false, "Generate only the source file.")
		header     = pflag.Bool("header", false, "Generate only the header file.")
		headerPath = pflag.String("header-path", "", "Path to the C header of this protocol (optional).")
		prefix     = pflag.String("prefix", "", "Prefix of interfaces (to be stripped; optional).")
		includes   = pflag.StringArray("add-include", nil, "Add an extra include directive (repeatable; optional).")
		version    = pflag.BoolP("version", "v", false, "Print version information and exit.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Wayland::Scribe %s\n\n", scribe.Version)
		fmt.Fprintf(os.Stderr, "Usage:\n  wayland-scribe --[server|client] specfile [options] --[source|header] output\n\nOptions:\n")
		fmt.Fprint(os.Stderr, pflag.CommandLine.FlagUsages())
	}
	pflag.Parse()

	if *version {
		fmt.Printf("Wayland::Scribe %s\n", scribe.Version)
		return
	}

	if (*server != "") == (*client != "") {
		fmt.Fprintln(os.Stderr, "[Error]: Please specify exactly one of --server or --client")
		fmt.Fprintln(os.Stderr, "")
		pflag.Usage()
		os.Exit(1)
	}

	spec := *client
	if *server != "" {
		spec = *server
	}

	if _, err := os.Stat(spec); err != nil {
		log.Fatalf("unable to locate the file %s", spec)
	}

	file := scribe.Both
	switch {
	case *source && !*header:
		file = scribe.SourceOnly
	case *header && !*source:
		file = scribe.HeaderOnly
	}

	output := ""
	if pflag.NArg() > 0 {
		output = pflag.Arg(0)
	}
	if pflag.NArg() > 1 {
		log.Printf("[Warning]: ignoring the extra arguments: (%s)", strings.Join(pflag.Args()[1:], " "))
	}

	s := scribe.New()
	s.SetRunMode(spec, *server != "", file, output)
	s.SetArgs(*headerPath, *prefix, *includes)

	if err := s.Process(); err != nil {
		log.Fatal(err)
	}
}
