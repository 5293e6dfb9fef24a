// Command stradac compiles a single Strada source file to C99 (§6):
//
//	stradac [--shared] [-g] [-w] <input.strada> <output.c>
//	stradac --dump-tokens <input.strada>
//
// It wires the four pipeline stages — lexer (via pkg/parser), parser,
// semantic analysis, codegen — and reports the first fatal diagnostic in
// "file:line:col: kind: message" form (§7), exiting non-zero. The teacher
// declares github.com/urfave/cli/v2 in its own go.mod but never calls it;
// this is where that dependency finally gets used. --dump-tokens runs
// internal/lexer standalone and prints its token stream, bypassing the
// parser entirely.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gaarutyunov/strada/internal/cpath"
	"github.com/gaarutyunov/strada/internal/lexer"
	"github.com/gaarutyunov/strada/pkg/codegen"
	"github.com/gaarutyunov/strada/pkg/parser"
	"github.com/gaarutyunov/strada/pkg/semantic"
)

func main() {
	app := &cli.App{
		Name:      "stradac",
		Usage:     "compile a Strada source file to C99",
		ArgsUsage: "<input.strada> <output.c>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "shared",
				Usage: "emit a shared-library ABI (default-visibility exports, module-init hook)",
			},
			&cli.BoolFlag{
				Name:    "g",
				Aliases: []string{"debug"},
				Usage:   "emit #line directives back to the Strada source",
			},
			&cli.BoolFlag{
				Name:    "w",
				Aliases: []string{"warn"},
				Usage:   "enable semantic-analysis warnings",
			},
			&cli.BoolFlag{
				Name:  "dump-tokens",
				Usage: "print the lexed token stream for <input.strada> and exit, instead of compiling",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("dump-tokens") {
		if c.NArg() != 1 {
			return cli.Exit("usage: stradac --dump-tokens <input.strada>", 2)
		}
		inPath := c.Args().Get(0)
		source, err := os.ReadFile(inPath)
		if err != nil {
			return cli.Exit(fmt.Sprintf("%s: %v", inPath, err), 1)
		}
		toks, err := lexer.Tokenize(inPath, source)
		if err != nil {
			return cli.Exit(err, 1)
		}
		fmt.Fprint(c.App.Writer, lexer.DumpTokens(toks))
		return nil
	}

	if c.NArg() != 2 {
		return cli.Exit("usage: stradac [--shared] [-g] [-w] <input.strada> <output.c>", 2)
	}
	inPath := c.Args().Get(0)
	outPath := c.Args().Get(1)

	source, err := os.ReadFile(inPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v", inPath, err), 1)
	}

	p, err := parser.New()
	if err != nil {
		return cli.Exit(err, 1)
	}
	prog, err := p.ParseBytes(inPath, source)
	if err != nil {
		return cli.Exit(err, 1)
	}

	analyzer := semantic.New(c.Bool("w"))
	if err := analyzer.Run(prog); err != nil {
		return cli.Exit(err, 1)
	}
	for _, w := range analyzer.Warnings {
		fmt.Fprintln(c.App.ErrWriter, w.String())
	}

	gen := codegen.New(analyzer.Table, codegen.Options{
		Shared: c.Bool("shared"),
		Lines:  c.Bool("g"),
	})
	out, err := gen.Generate(prog)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := cpath.WriteFile(outPath, out, 0o644); err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v", outPath, err), 1)
	}
	return nil
}
