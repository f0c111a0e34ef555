package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/peri/ast"
	"github.com/pontaoski/peri/errors"
	"github.com/pontaoski/peri/interpreter"
	"github.com/pontaoski/peri/lexer"
	"github.com/pontaoski/peri/parser"
	"github.com/pontaoski/peri/reader"
	"github.com/pontaoski/peri/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/peri", "main")

const (
	exitOK = iota
	exitFailure
	exitLexError
	exitParseError
	exitRuntimeError
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func exitCode(err error) int {
	var coder cli.ExitCoder
	if stderrors.As(err, &coder) {
		return coder.ExitCode()
	}

	switch tracerr.Unwrap(err).(type) {
	case errors.LexError:
		return exitLexError
	case errors.ParseError:
		return exitParseError
	case errors.RuntimeError:
		return exitRuntimeError
	}
	return exitFailure
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code := exitOK
	reported := false

	report := func(c *cli.Context, err error) {
		if reported {
			return
		}
		reported = true
		code = exitCode(err)

		if c != nil && c.Bool("trace") {
			fmt.Fprintln(stderr, tracerr.SprintSourceColor(err))
			return
		}
		fmt.Fprintf(stderr, "error: %s\n", tracerr.Unwrap(err))
	}

	app := newApp(stdin)
	app.Writer = stdout
	app.ErrWriter = stderr
	app.ExitErrHandler = report

	if err := app.Run(args); err != nil {
		report(nil, err)
	}
	return code
}

func newApp(stdin io.Reader) *cli.App {
	return &cli.App{
		Name:  "peri",
		Usage: "peri interpreter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "manifest",
				Value: manifestName,
				Usage: "path of the module manifest",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "one of CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG, TRACE",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print stack traces and source context for errors",
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "write a module manifest",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return cli.Exit("no module name provided", exitFailure)
					}

					path := c.String("manifest")
					if err := writeManifest(path, periModule{Package: name, Entry: "main.peri"}); err != nil {
						return err
					}

					plog.Infof("wrote %s for %s", path, name)
					return nil
				},
			},
			{
				Name:      "run",
				Usage:     "run a source file, or the manifest entry when none is given",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					path, err := sourcePath(c)
					if err != nil {
						return err
					}

					program, err := load(path, stdin)
					if err != nil {
						return err
					}

					_, err = interpreter.Run(program, c.App.Writer)
					return err
				},
			},
			{
				Name:      "tokens",
				Usage:     "dump the tokens of a source file",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					path, err := sourcePath(c)
					if err != nil {
						return err
					}

					tokens, err := tokenize(path, stdin)
					if err != nil {
						return err
					}

					fmt.Fprintln(c.App.Writer, repr.String(tokens, repr.Indent("  ")))
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree of a source file",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					path, err := sourcePath(c)
					if err != nil {
						return err
					}

					program, err := load(path, stdin)
					if err != nil {
						return err
					}

					fmt.Fprintln(c.App.Writer, repr.String(program, repr.Indent("  ")))
					return nil
				},
			},
			{
				Name:      "fmt",
				Usage:     "print a source file in canonical form",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					path, err := sourcePath(c)
					if err != nil {
						return err
					}

					program, err := load(path, stdin)
					if err != nil {
						return err
					}

					out, err := ast.Format(program)
					if err != nil {
						return err
					}

					fmt.Fprint(c.App.Writer, out)
					return nil
				},
			},
		},
	}
}

func setupLogging(c *cli.Context) error {
	level := c.String("log-level")
	if level == "" {
		m, err := loadManifestIfPresent(c.String("manifest"))
		if err != nil {
			return err
		}
		if m != nil {
			level = m.LogLevel
		}
	}
	if level == "" {
		level = "NOTICE"
	}

	l, err := capnslog.ParseLevel(strings.ToUpper(level))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid log level %q", level), exitFailure)
	}

	capnslog.SetFormatter(capnslog.NewPrettyFormatter(c.App.ErrWriter, l >= capnslog.DEBUG))
	capnslog.SetGlobalLogLevel(l)
	return nil
}

// sourcePath returns the file argument, falling back to the manifest entry.
func sourcePath(c *cli.Context) (string, error) {
	if path := c.Args().First(); path != "" {
		return path, nil
	}

	m, err := loadManifestIfPresent(c.String("manifest"))
	if err != nil {
		return "", err
	}
	if m == nil || m.Entry == "" {
		return "", cli.Exit(fmt.Sprintf("no source file provided and no entry in %s", c.String("manifest")), exitFailure)
	}
	return m.entryPath(), nil
}

func tokenize(path string, stdin io.Reader) ([]types.Token, error) {
	src, name, err := reader.ReadSource(path, stdin)
	if err != nil {
		return nil, err
	}
	return lexer.Tokenize(src, name)
}

// load lexes and parses the whole file before anything is executed.
func load(path string, stdin io.Reader) (ast.Program, error) {
	tokens, err := tokenize(path, stdin)
	if err != nil {
		return ast.Program{}, err
	}

	program, err := parser.Parse(tokens)
	if err != nil {
		return ast.Program{}, err
	}

	plog.Debugf("%s: %d statements", path, len(program.Statements))
	return program, nil
}
