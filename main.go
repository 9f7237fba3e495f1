package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/heyvito/eql/eql"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func abort(f string, args ...interface{}) {
	_, _ = fmt.Fprintf(stderr, "%s %s\n", red.Sprint("-"), fmt.Sprintf(f, args...))
	os.Exit(1)
}

func info(f string, args ...interface{}) {
	_, _ = fmt.Fprintf(stderr, "%s %s\n", green.Sprint("+"), fmt.Sprintf(f, args...))
}

func warn(f string, args ...interface{}) {
	_, _ = fmt.Fprintf(stderr, "%s %s\n", yellow.Sprint("!"), fmt.Sprintf(f, args...))
}

type Context struct {
	Strict        bool
	Keys          []string
	CaseSensitive bool
	Format        string
	Verbose       bool
}

func (c *Context) parser() *eql.Parser {
	if !c.Strict {
		return eql.NewParser()
	}
	return eql.NewStrictParser(c.Keys, c.CaseSensitive)
}

// splitKeys accepts whitespace and/or comma separated key lists.
func splitKeys(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

func quoteValue(v string) string {
	if v == "" || strings.IndexFunc(v, unicode.IsSpace) >= 0 {
		return `"` + v + `"`
	}
	return v
}

func render(w io.Writer, format string, pairs *eql.Pairs) error {
	switch format {
	case "json":
		data, err := json.Marshal(pairs)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(pairs)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		var err error
		pairs.Each(func(k, v string) bool {
			_, err = fmt.Fprintf(w, "%s=%s\n", k, quoteValue(v))
			return err == nil
		})
		return err
	}
}

// describe formats err for the terminal, with a caret under the offending
// position when err came from the parser.
func describe(input string, err error) string {
	var perr *eql.ParseError
	if !errors.As(err, &perr) {
		return err.Error()
	}
	lines := strings.SplitN(perr.Caret(input), "\n", 2)
	return fmt.Sprintf("%s\n    %s\n    %s", err, lines[0], red.Sprint(lines[1]))
}

func run(c *Context, inputs []string) error {
	p := c.parser()
	if c.Verbose {
		if c.Strict {
			info("Strict mode, accepting keys: %s", strings.Join(c.Keys, ", "))
			if !c.CaseSensitive {
				info("Keys are matched case-insensitively")
			}
		} else {
			info("Accepting any key")
		}
	}

	for i, input := range inputs {
		pairs, err := p.Parse(input)
		if err != nil {
			return fmt.Errorf("input %d: %s", i+1, describe(input, err))
		}
		if c.Verbose {
			info("Input %d: parsed %d pair(s)", i+1, pairs.Len())
		}
		if pairs.Len() == 0 && c.Verbose {
			warn("Input %d is empty", i+1)
		}
		if err = render(stdout, c.Format, pairs); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func main() {
	app := cli.App{
		Name:      "eql",
		Usage:     "parse key=value strings",
		ArgsUsage: "[INPUT...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "keys", EnvVars: []string{"EQL_KEYS"}, Usage: "only accept these keys (space or comma separated)"},
			&cli.BoolFlag{Name: "case-sensitive", EnvVars: []string{"EQL_CASE_SENSITIVE"}, Usage: "match --keys case-sensitively"},
			&cli.StringFlag{Name: "format", EnvVars: []string{"EQL_FORMAT"}, Value: "text", Usage: "output format: text, json or yaml"},
			&cli.BoolFlag{Name: "no-color", EnvVars: []string{"EQL_NO_COLOR"}},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("no-color") {
				color.NoColor = true
			}

			format := strings.ToLower(strings.TrimSpace(c.String("format")))
			if format != "text" && format != "json" && format != "yaml" {
				abort("Invalid format '%s'", format)
			}

			inputs := c.Args().Slice()
			if len(inputs) == 0 {
				lines, err := readLines(os.Stdin)
				if err != nil {
					abort("Error reading stdin: %s", err)
				}
				inputs = lines
			}

			ctx := Context{
				Strict:        c.IsSet("keys"),
				Keys:          splitKeys(c.String("keys")),
				CaseSensitive: c.Bool("case-sensitive"),
				Format:        format,
				Verbose:       c.Bool("verbose"),
			}

			if err := run(&ctx, inputs); err != nil {
				abort("Error parsing %s", err)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		panic(err)
	}
}
