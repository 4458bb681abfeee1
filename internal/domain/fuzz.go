package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/consept/internal/adapter"
	m "github.com/mouse-blink/consept/internal/model"
)

const (
	cppExt        = ".cpp"
	fuzzBinary    = "tmp/fuzz/fuzz_output"
	crashPrefix   = "crash-"
	harnessSuffix = "_fuzz" + cppExt
)

// FuzzArgs configures a libFuzzer run.
type FuzzArgs struct {
	Source    m.Path
	Sanitizer m.Sanitizer
	Runs      int
	ShowDiff  bool
}

// HarnessArgs configures harness generation without running the fuzzer.
type HarnessArgs struct {
	Source    m.Path
	OutputDir m.Path
}

// BuildFuzzTarget appends a harness for fn to lines, comments out the entry
// function and adds the headers the harness needs. A missing entry function
// is left alone.
func BuildFuzzTarget(synth *HarnessSynthesizer, lines m.Lines, tu *m.TranslationUnit, fn m.FunctionSignature, entry string) (string, error) {
	target := synth.Synthesize(lines, fn)

	if extent, ok := FindEntryRange(tu, entry); ok {
		excluded, err := ExcludeLineRange(target, extent.Start, extent.End)
		if err != nil {
			return "", err
		}

		target = excluded
	}

	return IncludeLibraries(target.String(), FuzzIncludes...), nil
}

// FuzzCommands returns the script lines building and running the fuzzer
// for the mounted source file.
func FuzzCommands(file string, sanitizer m.Sanitizer, runs int) []string {
	return []string{
		fmt.Sprintf("clang++ -g -fsanitize=%s,fuzzer -o %s %s/%s", sanitizer, fuzzBinary, m.ToolFuzz.ContainerDir(), file),
		fmt.Sprintf("%s -runs=%d", fuzzBinary, runs),
		"cp ./crash* " + m.ToolFuzz.ContainerDir(),
	}
}

// Fuzz lets the user pick a function, synthesizes its harness and runs
// libFuzzer on it.
func (w *workflow) Fuzz(ctx context.Context, args FuzzArgs) error {
	source, err := w.resolveCppSource(args.Source)
	if err != nil {
		return err
	}

	if _, err := m.ParseSanitizer(string(args.Sanitizer)); err != nil {
		return err
	}

	lines, tu, err := w.parseSource(ctx, source)
	if err != nil {
		return err
	}

	fn, err := SelectFuzzTarget(w.ui, IndexFunctions(tu, w.settings.entry()))
	if err != nil {
		return err
	}

	target, err := BuildFuzzTarget(NewHarnessSynthesizer(), lines, tu, fn, w.settings.entry())
	if err != nil {
		return err
	}

	if args.ShowDiff {
		w.ui.Println(DiffPreview(lines.String(), target))
	}

	handler := w.toolHandler(m.ToolFuzz)
	if err := handler.Reset(); err != nil {
		return err
	}

	name := filepath.Base(string(source))
	if err := w.FS.WriteFile(handler.MountPath(name), []byte(target), 0o644); err != nil {
		return fmt.Errorf("failed to write fuzz target: %w", err)
	}

	if err := w.ensureImage(ctx, m.ToolFuzz, ""); err != nil {
		return err
	}

	handler.OpenScript()

	for _, command := range FuzzCommands(name, args.Sanitizer, args.Runs) {
		if err := handler.AddCommand(command); err != nil {
			return err
		}
	}

	out, err := handler.Run(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		w.logger.WithError(err).Error("fuzzer run failed")
		w.ui.Println("\nNo results produced by the fuzzer")

		return nil
	}

	w.reportFuzzRun(handler, string(out))

	return nil
}

// Harness writes one fuzz target per function with parameters into
// args.OutputDir. Targets are synthesized concurrently, each with its own
// synthesizer.
func (w *workflow) Harness(ctx context.Context, args HarnessArgs) ([]m.Path, error) {
	source, err := w.resolveCppSource(args.Source)
	if err != nil {
		return nil, err
	}

	lines, tu, err := w.parseSource(ctx, source)
	if err != nil {
		return nil, err
	}

	outDir := args.OutputDir
	if outDir == "" {
		outDir = w.toolHandler(m.ToolFuzz).MountPath("harness")
	}

	if err := w.FS.EnsureDir(outDir); err != nil {
		return nil, err
	}

	index := IndexFunctions(tu, w.settings.entry())
	stem := strings.TrimSuffix(filepath.Base(string(source)), filepath.Ext(string(source)))

	var targets []m.FunctionSignature

	for _, line := range index.Lines() {
		if fn := index.Details[line]; fn.ParamCount() > 0 {
			targets = append(targets, fn)
		}
	}

	paths := make([]m.Path, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, fn := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			target, err := BuildFuzzTarget(NewHarnessSynthesizer(), lines, tu, fn, w.settings.entry())
			if err != nil {
				return fmt.Errorf("failed to build harness for %s: %w", fn.Name, err)
			}

			path := w.FS.JoinPath(string(outDir), fmt.Sprintf("%s_%s_%d%s", stem, fn.Name, fn.Line, harnessSuffix))
			if err := w.FS.WriteFile(path, []byte(target), 0o644); err != nil {
				return err
			}

			paths[i] = path

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.Sort(paths)

	for _, path := range paths {
		w.ui.Println("Harness written to " + string(path))
	}

	return paths, nil
}

// resolveCppSource checks the extension and searches for bare file names.
func (w *workflow) resolveCppSource(source m.Path) (m.Path, error) {
	if filepath.Ext(string(source)) != cppExt {
		return "", fmt.Errorf("%w: for fuzzing, one specific cpp file needs to be entered (%s)", adapter.ErrInvalidExtension, source)
	}

	if filepath.Base(string(source)) == string(source) {
		return w.FS.FindFile(string(source), ".")
	}

	return source, nil
}

func (w *workflow) reportFuzzRun(handler *ToolHandler, output string) {
	w.ui.Println(output)

	faults := ExtractSanitizerFaults(output)
	if len(faults) == 0 {
		w.ui.Println("\nNo errors found by the fuzzer")
		return
	}

	w.ui.Println("\n ========= FUZZER ERRORS =========")

	for _, fault := range faults {
		w.ui.Println(fault)
	}

	crashes, err := w.FS.FindFiles(handler.MountDir(), "")
	if err != nil {
		w.logger.WithError(err).Warn("failed to list crash inputs")
		return
	}

	for _, crash := range crashes {
		if strings.HasPrefix(filepath.Base(string(crash)), crashPrefix) {
			w.ui.Println("Crash input saved to " + string(crash))
		}
	}
}
