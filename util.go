package hederalegacy

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var labelColor = color.New(color.FgCyan, color.Bold)

// Printer writes the human readable output of a run. Diagnostics go through
// the logger instead.
type Printer struct {
	Out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{Out: out}
}

func (p *Printer) Println(args ...any) {
	_, _ = fmt.Fprintln(p.Out, args...)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.Out, format, args...)
}

// Print writes a label followed by an indented dump of v.
func (p *Printer) Print(label string, v any) {
	_, _ = fmt.Fprintf(p.Out, "%s\n%s\n", labelColor.Sprint(label), Indent(v))
}

func Indent(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return x
	case fmt.Stringer:
		if _, isJsonMarshaler := v.(json.Marshaler); !isJsonMarshaler {
			return x.String()
		}
	}

	j, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return IndentBraces(fmt.Sprintf("%+v", v))
	}
	return string(j)
}

// IndentBraces breaks a brace/bracket delimited dump onto indented lines.
func IndentBraces(input string) string {
	var out strings.Builder
	indent := 0
	newline := false

	for i := 0; i < len(input); i++ {
		next := input[i]

		switch next {
		case '[', '{':
			if newline {
				out.WriteString(strings.Repeat(" ", indent*2))
				newline = false
			}
			indent++
			out.WriteByte(next)
			out.WriteString("\n" + strings.Repeat(" ", indent*2))
		case ']', '}':
			if indent > 0 {
				indent--
			}
			out.WriteString("\n" + strings.Repeat(" ", indent*2))
			out.WriteByte(next)
		case ',':
			out.WriteString(",\n")
			newline = true
		default:
			if newline {
				if next == ' ' {
					continue
				}
				out.WriteString(strings.Repeat(" ", indent*2))
				newline = false
			}
			out.WriteByte(next)
		}
	}

	return out.String()
}
