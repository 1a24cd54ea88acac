package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/zacolang/zaco/internal/codegen"
	"github.com/zacolang/zaco/internal/codegen/llvmgen"
	"github.com/zacolang/zaco/internal/driver"
	"github.com/zacolang/zaco/internal/errs"
	"github.com/zacolang/zaco/internal/explore"
	"github.com/zacolang/zaco/internal/manifest"
)

var (
	Version = "dev"
	Commit  = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	versionFlag := flag.Bool("version", false, "print version information")
	helpFlag := flag.Bool("help", false, "show help")
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	switch flag.Arg(0) {
	case "compile":
		os.Exit(runCompile(flag.Args()[1:]))
	case "explore":
		os.Exit(runExplore(flag.Args()[1:]))
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("zaco %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
}

func printHelp() {
	fmt.Println(bold("zaco - whole-program compiler"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  zaco <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <input>     Compile a program to an object file or executable\n", cyan("compile"))
	fmt.Printf("  %s <input>     Browse a compiled module's MIR interactively\n", cyan("explore"))
	fmt.Println()
	fmt.Println("compile flags:")
	fmt.Println("  -o <path>        Output artifact path (default a.out)")
	fmt.Println("  --emit <mode>    exe, obj, or ir (default exe)")
	fmt.Println("  --manifest <path>  Read zaco.yaml instead of flags")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s\n", cyan("zaco compile main.ts"))
	fmt.Printf("  %s\n", cyan("zaco compile main.ts -o prog --emit obj"))
	fmt.Printf("  %s\n", cyan("zaco compile main.ts --emit ir"))
}

// runCompile implements the compile subcommand: parse + resolve + check +
// lower + merge via internal/driver, then hand the merged module to
// llvmgen or dump its textual IR directly. Exit codes follow spec.md §6:
// 0 success, 1 user error (parse/resolver/checker/lowerer), 2 internal
// error (codegen failure or verifier rejection).
func runCompile(args []string) int {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	output := fs.String("o", "a.out", "output artifact path")
	emit := fs.String("emit", "exe", "emit mode: exe, obj, or ir")
	manifestPath := fs.String("manifest", "", "read configuration from a zaco.yaml instead of flags")
	fs.Parse(args)

	entry := ""
	outputPath := *output
	emitMode := *emit
	var modulePaths []string

	if *manifestPath != "" {
		cfg, err := manifest.Load(*manifestPath)
		if err != nil {
			return reportAndExit(err)
		}
		entry = cfg.Entry
		outputPath = cfg.Output
		emitMode = string(cfg.Emit)
		modulePaths = cfg.ModulePaths
	} else if fs.NArg() > 0 {
		entry = fs.Arg(0)
	}

	if entry == "" {
		fmt.Fprintf(os.Stderr, "%s: missing input file\n", red("Error"))
		fmt.Println("Usage: zaco compile <input> [-o output] [--emit exe|obj|ir]")
		return 1
	}

	emitKind, err := parseEmitKind(emitMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", red("Error"), err)
		return 1
	}

	entry, err = filepath.Abs(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", red("Error"), err)
		return 1
	}

	resolver := driver.NewModuleResolver(filepath.Dir(entry), modulePaths)

	units, err := driver.Load(entry, resolver)
	if err != nil {
		return reportAndExit(err)
	}

	fmt.Printf("%s resolving and checking %s\n", cyan("→"), filepath.Base(entry))
	module, err := driver.Compile(units, resolver, entry)
	if err != nil {
		return reportAndExit(err)
	}

	if emitKind == codegen.EmitIR {
		fmt.Print(module.DumpIR())
		return 0
	}

	fmt.Printf("%s generating native code\n", cyan("→"))
	backend := llvmgen.New()
	if err := backend.Emit(module, codegen.Options{OutputPath: outputPath, Emit: emitKind}); err != nil {
		return reportAndExit(err)
	}

	fmt.Printf("%s wrote %s\n", green("✓"), outputPath)
	return 0
}

// runExplore compiles input the same way runCompile does, then hands the
// merged module to an interactive MIR browser instead of codegen.
func runExplore(args []string) int {
	fs := flag.NewFlagSet("explore", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "%s: missing input file\n", red("Error"))
		fmt.Println("Usage: zaco explore <input>")
		return 1
	}

	entry, err := filepath.Abs(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", red("Error"), err)
		return 1
	}

	resolver := driver.NewModuleResolver(filepath.Dir(entry), nil)

	units, err := driver.Load(entry, resolver)
	if err != nil {
		return reportAndExit(err)
	}
	module, err := driver.Compile(units, resolver, entry)
	if err != nil {
		return reportAndExit(err)
	}

	explore.New(module).Start(os.Stdin, os.Stdout)
	return 0
}

func parseEmitKind(mode string) (codegen.EmitKind, error) {
	switch mode {
	case "exe":
		return codegen.EmitExecutable, nil
	case "obj":
		return codegen.EmitObject, nil
	case "ir":
		return codegen.EmitIR, nil
	default:
		return 0, fmt.Errorf("unknown emit mode %q (want exe, obj, or ir)", mode)
	}
}

// reportAndExit renders err to stderr, preferring the structured span and
// phase carried by an errs.ReportError, and maps its phase to the process
// exit code spec.md §6 assigns it.
func reportAndExit(err error) int {
	rep, ok := errs.AsReport(err)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: %s\n", red("Error"), err)
		return 2
	}

	if rep.Span != nil {
		fmt.Fprintf(os.Stderr, "%s %s: %s: %s\n", red("Error"), rep.Span.Start, rep.Code, rep.Message)
	} else {
		fmt.Fprintf(os.Stderr, "%s %s: %s\n", red("Error"), rep.Code, rep.Message)
	}

	if rep.Phase == "codegen" {
		return 2
	}
	return 1
}
