package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/schemakit/schemakit"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "schemakit CLI\n\nUsage:\n  schemakit validate [-format auto|json|yaml] [-v] file...\n\nNotes:\n  - Validates each document against the built-in Experiment demo type.\n  - Prints one violation per line; exits 1 when any document is invalid.")
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var format string
	var verbose bool
	fs.StringVar(&format, "format", "auto", "input format: auto, json, yaml")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	_ = fs.Parse(args)
	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		os.Exit(2)
	}

	logger := newLogger(verbose)
	defer func() { _ = logger.Sync() }()

	typ := experimentType()
	invalid := false
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			fatalf("reading %s: %v", f, err)
		}
		ent, err := decode(typ, f, format, data)
		if err != nil {
			fatalf("%s: %v", f, err)
		}
		msgs := ent.ErrorMessages()
		logger.Debug("validated document",
			zap.String("file", f),
			zap.String("type", typ.Name()),
			zap.Int("violations", len(msgs)))
		for _, msg := range msgs {
			fmt.Fprintf(os.Stdout, "%s: %s\n", f, msg)
		}
		if len(msgs) > 0 {
			invalid = true
		}
	}
	if invalid {
		os.Exit(1)
	}
}

func decode(typ *schemakit.Type, file, format string, data []byte) (*schemakit.Entity, error) {
	switch format {
	case "json":
		return typ.FromJSON(data)
	case "yaml":
		return typ.FromYAML(data)
	case "auto":
		switch strings.ToLower(filepath.Ext(file)) {
		case ".yaml", ".yml":
			return typ.FromYAML(data)
		default:
			return typ.FromJSON(data)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// experimentType is the demo record type the validate command checks
// documents against.
func experimentType() *schemakit.Type {
	return schemakit.NewType("Experiment", func(b *schemakit.Builder) {
		b.Field("name", schemakit.KindString)
		b.Field("subject", schemakit.Options("user", "visitor", "email", "listing", "market"))
		b.Field("treatments", schemakit.Array(schemakit.KindString))
		b.FieldDefault("percent_exposed", schemakit.KindInt, 100)
		b.Field("design", schemakit.Nullable(schemakit.Pattern("^https?://")))
		b.Constraint("expected percent_exposed to not exceed 100, got %v",
			func(e *schemakit.Entity) []any {
				if n, ok := schemakit.AsInt64(e.Lookup("percent_exposed")); ok && n > 100 {
					return []any{n}
				}
				return nil
			})
	})
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.DisableCaller = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "schemakit: "+format+"\n", a...)
	os.Exit(1)
}
