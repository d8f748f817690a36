// egrep - print lines matching a pattern
//
// Supports a restricted POSIX extended regular expression syntax: literals,
// '.', bracket lists, grouping, alternation, '*', '+', '?' and the '^' and
// '$' anchors on the whole pattern.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coregx/egrep"
)

// version is set at build time via -ldflags.
var version = "dev"

const (
	shortUsage = "usage: egrep [--color=auto|always|never] [-d] PATTERN [FILE]..."
	longUsage  = `With no FILE, or when FILE is -, read standard input.

Options:
  --color=WHEN      highlight matches: auto (default), always or never
  -d                print the parse tree and automaton to stderr
  -h, --help        show this help message
  --version         show egrep version and exit

Exit status is 0 if any line matched, 1 if none did, and 2 on error.
`

	stdinName = "(standard input)"

	colorMatch = "\x1b[01;31m"
	colorReset = "\x1b[m"
)

type colorMode int

const (
	colorAuto colorMode = iota
	colorAlways
	colorNever
)

// options is the parsed command line.
type options struct {
	color   colorMode
	debug   bool
	help    bool
	version bool
	pattern string
	files   []string
}

var errMissingPattern = errors.New("missing pattern")

// parseArgs parses the command line manually rather than with the "flag"
// package, so that a pattern starting with '-' can follow "--".
func parseArgs(args []string) (options, error) {
	var opts options

	var i int
	for i = 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-d":
			opts.debug = true
		case "-h", "--help":
			opts.help = true
			return opts, nil
		case "-version", "--version":
			opts.version = true
			return opts, nil
		case "--color", "--colour":
			opts.color = colorAuto
		default:
			value, ok := strings.CutPrefix(arg, "--color=")
			if !ok {
				value, ok = strings.CutPrefix(arg, "--colour=")
			}
			if !ok {
				return opts, fmt.Errorf("flag provided but not defined: %s", arg)
			}
			switch value {
			case "auto":
				opts.color = colorAuto
			case "always":
				opts.color = colorAlways
			case "never":
				opts.color = colorNever
			default:
				return opts, fmt.Errorf("invalid argument %q for --color", value)
			}
		}
	}

	if i >= len(args) {
		return opts, errMissingPattern
	}
	opts.pattern = args[i]
	opts.files = args[i+1:]
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		errorExitf("%v\n%s", err, shortUsage)
	}
	if opts.help {
		fmt.Printf("egrep %s\n\n%s\n\n%s", version, shortUsage, longUsage)
		os.Exit(0)
	}
	if opts.version {
		fmt.Printf("egrep version %s\n", version)
		os.Exit(0)
	}

	colorize := opts.color == colorAlways ||
		(opts.color == colorAuto && isTerminal(os.Stdout.Fd()))
	os.Exit(run(opts, colorize, os.Stdin, os.Stdout, os.Stderr))
}

// run searches every input named in opts and returns the exit status.
func run(opts options, colorize bool, stdin io.Reader, stdout, stderr io.Writer) int {
	m, err := egrep.Compile(opts.pattern)
	if err != nil {
		fmt.Fprintf(stderr, "egrep: Invalid pattern syntax: %v\n", err)
		return 2
	}
	if opts.debug {
		dump(stderr, m)
	}

	files := opts.files
	if len(files) == 0 {
		files = []string{"-"}
	}

	s := &searcher{
		matcher:       m,
		out:           bufio.NewWriter(stdout),
		colorize:      colorize,
		printFilename: len(files) > 1,
	}
	defer s.out.Flush()

	failed := false
	for _, file := range files {
		if err := s.searchFile(file, stdin); err != nil {
			s.out.Flush()
			warnf(stderr, "%v", err)
			failed = true
		}
	}

	switch {
	case failed:
		return 2
	case s.matched:
		return 0
	default:
		return 1
	}
}

type searcher struct {
	matcher       *egrep.Matcher
	out           *bufio.Writer
	colorize      bool
	printFilename bool
	matched       bool
}

func (s *searcher) searchFile(file string, stdin io.Reader) error {
	if file == "-" {
		return s.search(stdinName, stdin)
	}

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.search(file, f)
}

// search prints every line of r that matches. Lines are byte strings; a
// missing final newline is tolerated.
func (s *searcher) search(name string, r io.Reader) error {
	br := bufio.NewReaderSize(r, 64*1024)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			s.printLine(name, trimNewline(line))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading from %s: %w", name, err)
		}
	}
}

func (s *searcher) printLine(name string, line []byte) {
	if !s.colorize {
		if !s.matcher.Match(line) {
			return
		}
		s.writePrefix(name)
		s.out.Write(line)
		s.out.WriteByte('\n')
		s.matched = true
		return
	}

	match := s.matcher.Find(line)
	if match == nil {
		return
	}
	s.matched = true
	s.writePrefix(name)
	if match.IsEmpty() {
		s.out.Write(line)
	} else {
		s.out.Write(line[:match.Start()])
		s.out.WriteString(colorMatch)
		s.out.Write(match.Bytes())
		s.out.WriteString(colorReset)
		s.out.Write(line[match.End():])
	}
	s.out.WriteByte('\n')
}

func (s *searcher) writePrefix(name string) {
	if s.printFilename {
		s.out.WriteString(name)
		s.out.WriteByte(':')
	}
}

// trimNewline drops the line terminator, either "\n" or "\r\n".
func trimNewline(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}

// dump prints the parse tree, automaton and search strategy of m.
func dump(w io.Writer, m *egrep.Matcher) {
	engine := m.Engine()
	fmt.Fprintf(w, "tree: %s\n", engine.Tree())
	fmt.Fprintf(w, "prefix ok: %v, anchored: %v\n", m.PrefixOK(), m.Anchored())
	fmt.Fprintf(w, "strategy: %s\n", engine.Strategy())
	if pf := engine.Prefilter(); pf != nil {
		fmt.Fprintf(w, "prefilter: %s\n", pf)
	}
	fmt.Fprint(w, engine.NFA().Dump())
}

// errorExitf prints an error message and exits with status 2.
func errorExitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "egrep: "+format+"\n", args...)
	os.Exit(2)
}

// warnf prints a non-fatal error message.
func warnf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "egrep: "+format+"\n", args...)
}
