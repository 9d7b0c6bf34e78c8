// Package pathdata parses and minifies SVG path data. Specification: https://www.w3.org/TR/SVG11/paths.html#PathData.
package pathdata

import (
	"fmt"
	"strconv"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/svgmin"
)

// Command is a single path command with its arguments as written. Cmd is the upper-case command letter.
type Command struct {
	Cmd  byte
	Rel  bool
	Args []float64
}

// Path is a sequence of commands.
type Path []Command

func (c Command) String() string {
	letter := c.Cmd
	if c.Rel {
		letter += 'a' - 'A'
	}
	return fmt.Sprintf("%c%v", letter, c.Args)
}

// Arity returns the number of arguments of a command letter, or -1 for unknown letters.
func Arity(cmd byte) int {
	switch cmd {
	case 'M', 'm', 'L', 'l', 'T', 't':
		return 2
	case 'H', 'h', 'V', 'v':
		return 1
	case 'C', 'c':
		return 6
	case 'S', 's', 'Q', 'q':
		return 4
	case 'A', 'a':
		return 7
	case 'Z', 'z':
		return 0
	}
	return -1
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

func skipSeparators(b []byte, i int) int {
	for i < len(b) && isSeparator(b[i]) {
		i++
	}
	return i
}

// Parse parses path data. Repeated argument groups become separate commands, extra pairs after a moveto become lineto commands. Errors are of kind svgmin.InvalidPathData.
func Parse(b []byte) (Path, error) {
	var cmds Path
	i := skipSeparators(b, 0)
	for i < len(b) {
		c := b[i]
		n := Arity(c)
		if n == -1 {
			if parse.Number(b[i:]) != 0 {
				if len(cmds) == 0 {
					return nil, svgmin.NewError(svgmin.InvalidPathData, b, i, "path data must start with a moveto command")
				}
				return nil, svgmin.NewError(svgmin.InvalidPathData, b, i, "too many arguments")
			}
			return nil, svgmin.NewError(svgmin.InvalidPathData, b, i, "unknown command '%c'", c)
		} else if len(cmds) == 0 && c != 'M' && c != 'm' {
			return nil, svgmin.NewError(svgmin.InvalidPathData, b, i, "path data must start with a moveto command")
		}
		cmdStart := i
		i = skipSeparators(b, i+1)

		cmd := c
		rel := 'a' <= c
		if rel {
			cmd -= 'a' - 'A'
		}
		if n == 0 {
			cmds = append(cmds, Command{Cmd: cmd, Rel: rel})
			continue
		}

		groups := 0
		for i < len(b) && Arity(b[i]) == -1 {
			args := make([]float64, n)
			for j := 0; j < n; j++ {
				if len(b) <= i {
					return nil, svgmin.NewError(svgmin.InvalidPathData, b, i, "expected %d arguments for '%c'", n, c)
				}
				if cmd == 'A' && (j == 3 || j == 4) {
					// flags are a single character and may be written without separators
					if b[i] != '0' && b[i] != '1' {
						return nil, svgmin.NewError(svgmin.InvalidPathData, b, i, "invalid arc flag")
					}
					args[j] = float64(b[i] - '0')
					i = skipSeparators(b, i+1)
					continue
				}
				m := parse.Number(b[i:])
				if m == 0 {
					if Arity(b[i]) != -1 {
						return nil, svgmin.NewError(svgmin.InvalidPathData, b, i, "expected %d arguments for '%c'", n, c)
					}
					return nil, svgmin.NewError(svgmin.InvalidPathData, b, i, "unexpected character '%c'", b[i])
				}
				f, err := strconv.ParseFloat(string(b[i:i+m]), 64)
				if err != nil {
					return nil, svgmin.NewError(svgmin.InvalidPathData, b, i, "invalid number")
				}
				args[j] = f
				i = skipSeparators(b, i+m)
			}

			if groups == 0 || cmd != 'M' {
				cmds = append(cmds, Command{Cmd: cmd, Rel: rel, Args: args})
			} else {
				cmds = append(cmds, Command{Cmd: 'L', Rel: rel, Args: args})
			}
			groups++
		}
		if groups == 0 {
			return nil, svgmin.NewError(svgmin.InvalidPathData, b, cmdStart, "expected %d arguments for '%c'", n, c)
		}
	}
	return cmds, nil
}
