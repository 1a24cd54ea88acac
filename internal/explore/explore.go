// Package explore is an interactive MIR browser over a compiled
// ir.IrModule: a developer tool, not part of the compiled program's
// interface.
package explore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/zacolang/zaco/internal/ir"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Explorer holds the module under inspection and the session's history.
type Explorer struct {
	module  *ir.IrModule
	history []string
}

func New(module *ir.IrModule) *Explorer {
	return &Explorer{module: module}
}

// Start runs the read-eval-print loop until the user quits or input ends.
// Lines are read through liner from the terminal; in is not read. Command
// output goes to out.
func (e *Explorer) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	historyFile := filepath.Join(os.TempDir(), ".zaco_explore_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s %s\n", bold("zaco explore"), dim(e.module.String()))
	fmt.Fprintln(out, dim("Type :help for commands, :quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(text string) (c []string) {
		if strings.HasPrefix(text, ":") {
			for _, cmd := range []string{":help", ":quit", ":funcs", ":structs", ":struct", ":dump", ":externs", ":strings"} {
				if strings.HasPrefix(cmd, text) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	for {
		input, err := line.Prompt("mir> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)
		e.history = append(e.history, input)

		if input == ":quit" || input == ":q" || input == ":exit" {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}

		e.handle(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (e *Explorer) handle(input string, out io.Writer) {
	fields := strings.Fields(input)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case ":help":
		e.printHelp(out)
	case ":funcs":
		e.listFuncs(out)
	case ":structs":
		e.listStructs(out)
	case ":externs":
		e.listExterns(out)
	case ":strings":
		e.listStrings(out)
	case ":struct":
		if len(args) < 1 {
			fmt.Fprintf(out, "%s: usage :struct <name>\n", red("Error"))
			return
		}
		e.showStruct(args[0], out)
	case ":dump":
		if len(args) < 1 {
			fmt.Fprintf(out, "%s: usage :dump <func>\n", red("Error"))
			return
		}
		e.dumpFunc(args[0], out)
	default:
		fmt.Fprintf(out, "%s: unknown command %q, try :help\n", yellow("Warning"), cmd)
	}
}

func (e *Explorer) printHelp(out io.Writer) {
	fmt.Fprintln(out, bold("Commands:"))
	fmt.Fprintf(out, "  %s            list every function in the module\n", cyan(":funcs"))
	fmt.Fprintf(out, "  %s          list every struct layout\n", cyan(":structs"))
	fmt.Fprintf(out, "  %s <name>   show one struct's fields and size\n", cyan(":struct"))
	fmt.Fprintf(out, "  %s <func>     dump a function's textual MIR\n", cyan(":dump"))
	fmt.Fprintf(out, "  %s          list declared runtime/cross-module externs\n", cyan(":externs"))
	fmt.Fprintf(out, "  %s          list interned string literals\n", cyan(":strings"))
	fmt.Fprintf(out, "  %s            exit\n", cyan(":quit"))
}

func (e *Explorer) listFuncs(out io.Writer) {
	names := make([]string, 0, len(e.module.Functions))
	byName := make(map[string]*ir.IrFunction, len(e.module.Functions))
	for _, fn := range e.module.Functions {
		names = append(names, fn.Name)
		byName[fn.Name] = fn
	}
	sort.Strings(names)
	for _, name := range names {
		fn := byName[name]
		exported := ""
		if fn.IsExported {
			exported = yellow(" export")
		}
		fmt.Fprintf(out, "  %s  (%d params, %d blocks)%s\n", cyan(fn.Name), len(fn.Params), len(fn.Blocks), exported)
	}
}

func (e *Explorer) listStructs(out io.Writer) {
	for _, s := range e.module.Structs {
		fmt.Fprintf(out, "  %s  (%d fields)\n", cyan(s.Name), len(s.Fields))
	}
}

func (e *Explorer) listExterns(out io.Writer) {
	for _, ext := range e.module.ExternFunctions {
		fmt.Fprintf(out, "  %s\n", cyan(ext.Name))
	}
}

func (e *Explorer) listStrings(out io.Writer) {
	for i, s := range e.module.StringLiterals {
		fmt.Fprintf(out, "  %d: %q\n", i, s)
	}
}

func (e *Explorer) showStruct(name string, out io.Writer) {
	s := e.module.FindStruct(name)
	if s == nil {
		fmt.Fprintf(out, "%s: no such struct %q\n", red("Error"), name)
		return
	}
	offset := 0
	for _, f := range s.Fields {
		fmt.Fprintf(out, "  +%-4d %-16s %s\n", offset, f.Name, f.Type.String())
		offset += f.Type.SizeBytes()
	}
	fmt.Fprintf(out, "  %s %d bytes\n", dim("total"), offset)
}

func (e *Explorer) dumpFunc(name string, out io.Writer) {
	fn := e.module.FindFunction(name)
	if fn == nil {
		fmt.Fprintf(out, "%s: no such function %q\n", red("Error"), name)
		return
	}
	fmt.Fprint(out, fn.DumpIR())
}
