package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/teris-io/cli"

	"github.com/pscal-toolchain/core/pkg/astjson"
	"github.com/pscal-toolchain/core/pkg/emitter"
	"github.com/pscal-toolchain/core/pkg/sema"
	"github.com/pscal-toolchain/core/pkg/symbol"
)

var Description = strings.ReplaceAll(`
pscaljson2bc reads an AST previously dumped to JSON by another frontend and
drives the bytecode emitter over it, so a frontend never has to link the
emitter itself: it parses its own source language, emits the shared JSON AST
schema, and hands the rest of the pipeline to this tool.
`, "\n", " ")

var JSON2BC = cli.New(Description).
	WithArg(cli.NewArg("input", "The AST JSON file to read, or '-' for stdin").
		AsOptional().WithType(cli.TypeString)).
	WithOption(cli.NewOption("o", "Bytecode output path (default out.bc)").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("dump-bytecode", "Also print a disassembly of the compiled chunk").
		WithType(cli.TypeBool)).
	WithOption(cli.NewOption("dump-bytecode-only", "Print the disassembly and skip writing the bytecode file").
		WithType(cli.TypeBool)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	inputPath := "-"
	if len(args) > 0 {
		inputPath = args[0]
	}

	data, err := readInput(inputPath)
	if err != nil {
		fmt.Printf("ERROR: Unable to read AST JSON: %s\n", err)
		return -1
	}

	root, err := astjson.Load(data)
	if err != nil {
		fmt.Printf("ERROR: Unable to parse AST JSON: %s\n", err)
		return -1
	}

	// The JSON already carries var_type_annotated for every node; annotating
	// again with a fresh Context fills in anything the producing frontend
	// left at Void (e.g. a frontend that skips semantic annotation and
	// leans on this tool to finish the job) without discarding what's there.
	ctx := symbol.NewContext()
	sema.New(ctx, nil).Annotate(root)

	em := &emitter.NopEmitter{}
	chunk := &emitter.Chunk{}
	if ok := em.CompileProgram(root, chunk); !ok {
		fmt.Printf("ERROR: Unable to complete 'codegen' pass\n")
		return -1
	}

	_, dumpOnly := options["dump-bytecode-only"]
	_, dump := options["dump-bytecode"]

	if !dumpOnly {
		outPath := "out.bc"
		if v, ok := options["o"]; ok && v != "" {
			outPath = v
		}
		if err := os.WriteFile(outPath, chunk.Bytes, 0o644); err != nil {
			fmt.Printf("ERROR: Unable to write output file: %s\n", err)
			return -1
		}
	}

	if dump || dumpOnly {
		fmt.Println(em.Disassemble(chunk, "program", ctx.Procedure))
	}

	return 0
}

func readInput(path string) ([]byte, error) {
	if path == "-" || path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func main() { os.Exit(JSON2BC.Run(os.Args, os.Stdout)) }
