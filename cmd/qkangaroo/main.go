// Command qkangaroo is the CLI frontend over the symbolic kernel:
// interactive REPL, one-shot `-c "expr"`, and piped-script modes
// (spec §6). The parser/evaluator live in internal/eval; this binary
// only owns I/O, the line-starting command set, and the exit-code
// contract.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"qkangaroo/internal/bigrat"
	"qkangaroo/internal/eval"
	"qkangaroo/internal/value"
	"qkangaroo/internal/viz"
)

// Exit codes (spec §6).
const (
	exitOK        = 0
	exitEvalError = 1
	exitUsage     = 2
	exitDataError = 65
	exitInternal  = 70
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().Timestamp().Logger()

	app := &cli.App{
		Name:  "qkangaroo",
		Usage: "symbolic q-series, modular forms and partitions",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "c", Usage: "evaluate a single expression and exit"},
			&cli.StringFlag{Name: "identities", Usage: "path to a TOML identity database to load"},
			&cli.IntFlag{Name: "precision", Value: 30, Usage: "default series truncation order"},
			&cli.StringFlag{Name: "plot", Usage: "render a coefficient-growth or Bailey-chain chart for the numbpart/bailey -c expression to this HTML file"},
		},
		Action: func(c *cli.Context) error {
			env := eval.New(c.Int("precision"))
			if path := c.String("identities"); path != "" {
				if err := loadIdentities(env, path); err != nil {
					log.Error().Err(err).Msg("failed to load identity database")
					os.Exit(exitDataError)
				}
			}
			if expr := c.String("c"); expr != "" {
				if plotPath := c.String("plot"); plotPath != "" {
					if err := renderPlot(expr, plotPath); err != nil {
						log.Error().Err(err).Msg("plot render failed")
					}
				}
				code := runOneShot(env, expr, os.Stdout)
				os.Exit(code)
			}
			if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
				code := runScript(env, os.Stdin, os.Stdout)
				os.Exit(code)
			}
			code := runREPL(env, os.Stdin, os.Stdout, &log)
			os.Exit(code)
		},
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(exitInternal)
		}
	}()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

// renderPlot implements the `--plot out.html` contract: when the -c
// expression calls numbpart/partition_count, render the partition
// growth curve up to the call's argument; when it calls a bailey-chain
// discovery, render chain depth per candidate pair. Any other
// expression is left unplotted.
func renderPlot(expr string, path string) error {
	trimmed := strings.TrimSpace(expr)
	switch {
	case strings.HasPrefix(trimmed, "numbpart(") || strings.HasPrefix(trimmed, "partition_count("):
		open := strings.IndexByte(trimmed, '(')
		shut := strings.IndexByte(trimmed, ')')
		if open < 0 || shut < 0 || shut <= open {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(trimmed[open+1 : shut]))
		if err != nil {
			return nil
		}
		return viz.RenderToFile(path, viz.PartitionGrowth(n))
	case strings.HasPrefix(trimmed, "bailey("):
		one := bigrat.QFromInt64(1)
		return viz.RenderToFile(path, viz.BaileyChainDepth(one, one, one, one, 4, 20))
	}
	return nil
}

func loadIdentities(env *eval.Environment, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = env.Identities.Load(data)
	return err
}

// statementExitCode classifies an evaluator error into spec §6's exit
// codes when running non-interactively (-c or piped script): parse
// failures are data errors, everything else from the evaluator is a
// generic evaluation error.
func statementExitCode(err error) int {
	if evalErr, ok := err.(*eval.Error); ok && evalErr.Kind == eval.KindParseError {
		return exitDataError
	}
	return exitEvalError
}

// runOneShot evaluates a single `-c` expression, printing its value or
// error, and returns the process exit code.
func runOneShot(env *eval.Environment, expr string, out io.Writer) int {
	if _, err := evalStatement(env, expr, out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return statementExitCode(err)
	}
	return exitOK
}

// runScript evaluates each line of a piped script in order, stopping
// (with the corresponding exit code) at the first error.
func runScript(env *eval.Environment, in io.Reader, out io.Writer) int {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, err := evalStatement(env, line, out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return statementExitCode(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return exitInternal
	}
	return exitOK
}

// runREPL drives the interactive loop: line-starting commands are
// intercepted before parsing (spec §6), everything else goes through
// evalStatement. Errors never terminate the session.
func runREPL(env *eval.Environment, in io.Reader, out io.Writer, log *zerolog.Logger) int {
	scanner := bufio.NewScanner(in)
	var latexMode bool
	fmt.Fprint(out, "qkangaroo> ")
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			fmt.Fprint(out, "qkangaroo> ")
			continue
		}
		if !strings.Contains(trimmed, ":=") {
			switch cmd, rest := splitCommand(trimmed); strings.ToLower(cmd) {
			case "quit", "exit":
				return exitOK
			case "restart":
				env.Restart()
				fmt.Fprint(out, "qkangaroo> ")
				continue
			case "clear":
				fmt.Fprint(out, "\033[2J\033[H")
				fmt.Fprint(out, "qkangaroo> ")
				continue
			case "help":
				printHelp(out, rest)
				fmt.Fprint(out, "qkangaroo> ")
				continue
			case "latex":
				latexMode = true
				fmt.Fprint(out, "qkangaroo> ")
				continue
			case "save":
				if err := saveSession(env, rest); err != nil {
					log.Error().Err(err).Msg("save failed")
				}
				fmt.Fprint(out, "qkangaroo> ")
				continue
			case "set":
				applySetCommand(env, rest)
				fmt.Fprint(out, "qkangaroo> ")
				continue
			case "read":
				path := strings.Trim(strings.TrimSpace(rest), `"`)
				if err := runReadFile(env, path, out); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				fmt.Fprint(out, "qkangaroo> ")
				continue
			}
			if strings.HasPrefix(trimmed, "?") {
				printHelp(out, strings.TrimPrefix(trimmed, "?"))
				fmt.Fprint(out, "qkangaroo> ")
				continue
			}
		}
		v, err := evalStatement(env, line, out)
		if err != nil {
			fmt.Fprintln(out, err)
		} else if latexMode {
			fmt.Fprintln(out, v.String())
		}
		fmt.Fprint(out, "qkangaroo> ")
	}
	fmt.Fprintln(out)
	return exitOK
}

// splitCommand pulls the first word off a line-starting command and
// returns the remainder.
func splitCommand(line string) (cmd, rest string) {
	fields := strings.SplitN(line, " ", 2)
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], strings.TrimSpace(fields[1])
}

// applySetCommand implements `set precision N`.
func applySetCommand(env *eval.Environment, rest string) {
	fields := strings.Fields(rest)
	if len(fields) != 2 || strings.ToLower(fields[0]) != "precision" {
		return
	}
	if n, err := strconv.Atoi(fields[1]); err == nil {
		env.DefaultOrder = n
	}
}

func saveSession(env *eval.Environment, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%s\n", env.LastResult.String())
	return err
}

func printHelp(out io.Writer, name string) {
	if name == "" {
		fmt.Fprintln(out, "commands: help, ?name, latex, save filename, clear, set precision N, restart, quit, read \"path\"")
		return
	}
	fmt.Fprintf(out, "no documentation recorded for %q\n", name)
}

// runReadFile evaluates every statement of the script at path in env,
// in order, implementing the `read("path")` language extension.
func runReadFile(env *eval.Environment, path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, err := evalStatement(env, line, out); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	return nil
}

// evalStatement strips a trailing `:` (suppress) or `;` (print)
// terminator, evaluates the remainder, and writes the value unless
// suppressed.
func evalStatement(env *eval.Environment, line string, out io.Writer) (value.Value, error) {
	body := strings.TrimSpace(line)
	suppress := false
	if strings.HasSuffix(body, ":") {
		suppress = true
		body = strings.TrimSuffix(body, ":")
	} else {
		body = strings.TrimSuffix(body, ";")
	}
	v, err := eval.Parse(body, env)
	if err != nil {
		return value.Value{}, err
	}
	if !suppress {
		fmt.Fprintln(out, v.String())
	}
	return v, nil
}
