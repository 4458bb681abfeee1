package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	m "github.com/mouse-blink/consept/internal/model"
)

const (
	annotatedPrefix = "annotated_"
	kleeOutDir      = "klee-out-0"
	kleeMessages    = "messages.txt"
	kleeBitcode     = "test.bc"
	ktestSuffix     = ".ktest"
)

// ConcolicArgs configures a KLEE run.
type ConcolicArgs struct {
	// CompileDB is a compile_commands.json whose first entry compiles the
	// annotated source.
	CompileDB m.Path
	TimeLimit int
	SaveTests bool
	// TestsDir receives the saved test dump.
	TestsDir m.Path
	// ReportDir receives the YAML fault report. Empty disables it.
	ReportDir m.Path
	ShowDiff  bool
}

// Concolic annotates the tested source, runs KLEE on it and prints every
// fault with the inputs that caused it.
func (w *workflow) Concolic(ctx context.Context, args ConcolicArgs) error {
	if args.TimeLimit <= 0 {
		return fmt.Errorf("the time limit must be a positive integer")
	}

	commands, err := w.CompileDB.Load(args.CompileDB)
	if err != nil {
		return err
	}

	entry := commands[0]
	annotatedName := filepath.Base(entry.File)

	source, err := w.locateTestedSource(args.CompileDB, entry)
	if err != nil {
		return err
	}

	handler := w.toolHandler(m.ToolConcolic)
	if err := handler.Reset(); err != nil {
		return err
	}

	if err := w.annotateForKlee(ctx, source, handler.MountPath(annotatedName), args.ShowDiff); err != nil {
		return err
	}

	if err := w.ensureImage(ctx, m.ToolConcolic, ""); err != nil {
		return err
	}

	handler.OpenScript()
	w.logger.WithField("tool", m.ToolConcolic).Info("created new script, will now run KLEE")

	for _, command := range KleeCommands(entry, handler.MountDir(), args.TimeLimit) {
		if err := handler.AddCommand(command); err != nil {
			return err
		}
	}

	out, err := handler.Run(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		w.logger.WithError(err).Error("KLEE run failed")
		w.ui.Println("\nNo tests were generated")

		return nil
	}

	w.ui.Println(string(out))

	stats, err := handler.Exec(ctx, "klee-stats tmp/concolic/"+kleeOutDir)
	if err != nil {
		w.logger.WithError(err).Warn("failed to collect KLEE statistics")
	} else {
		w.ui.Println(string(stats))
	}

	faults, err := w.outputFaults(handler)
	if err != nil {
		return err
	}

	dump, ok := w.analyzeKTests(ctx, handler)

	if len(faults) > 0 {
		var inputs m.ObjectInputs
		if ok {
			inputs = AttributeInputsToFaults(dump, len(faults))
		}

		w.ui.Println(RenderFaultReport(faults, inputs))
		w.saveFaultReport(args.ReportDir, source, faults, inputs)
	} else {
		w.ui.Println("\nNo errors found by the generated tests")
	}

	if args.SaveTests && ok {
		return w.saveTests(args.TestsDir, dump)
	}

	return nil
}

// KleeCommands returns the script lines compiling the annotated source to
// bitcode and running KLEE on it. The compile command is the database
// entry's, with the absolute host directories of the annotated source
// replaced by the container mount.
func KleeCommands(entry m.CompileCommand, mountDir m.Path, timeLimit int) []string {
	containerDir := m.ToolConcolic.ContainerDir()
	bitcode := containerDir + "/" + kleeBitcode

	command := entry.Command
	for _, dir := range []string{string(mountDir), filepath.Dir(entry.File)} {
		if filepath.IsAbs(dir) {
			command = strings.ReplaceAll(command, dir, containerDir)
		}
	}

	return []string{
		fmt.Sprintf("%s -o %s", command, bitcode),
		fmt.Sprintf("klee --external-calls=all --max-time=%d %s", timeLimit, bitcode),
	}
}

// TestedSourceName returns the name of the source that an annotated file
// was derived from.
func TestedSourceName(annotatedName string) string {
	return strings.Replace(filepath.Base(annotatedName), annotatedPrefix, "", 1)
}

// locateTestedSource prefers the tested source next to the database entry
// and falls back to searching around the database.
func (w *workflow) locateTestedSource(db m.Path, entry m.CompileCommand) (m.Path, error) {
	name := TestedSourceName(entry.File)

	dir := filepath.Dir(entry.File)
	if !filepath.IsAbs(dir) && entry.Directory != "" {
		dir = filepath.Join(entry.Directory, dir)
	}

	candidate := w.FS.JoinPath(dir, name)
	if info, err := w.FS.FileInfo(candidate); err == nil && !info.IsDir() {
		return candidate, nil
	}

	return w.FS.FindFile(name, m.Path(filepath.Dir(string(db))))
}

func (w *workflow) annotateForKlee(ctx context.Context, source, target m.Path, showDiff bool) error {
	lines, tu, err := w.parseSource(ctx, source)
	if err != nil {
		return err
	}

	index := IndexLocalVariables(tu, w.settings.entry())

	selection, err := SelectVariables(w.ui, index)
	if err != nil {
		return err
	}

	annotated := IncludeLibraryOnce(InsertSymbolicAnnotations(lines, selection, index).String(), KleeInclude)

	if showDiff {
		w.ui.Println(DiffPreview(lines.String(), annotated))
	}

	if err := w.FS.WriteFile(target, []byte(annotated), 0o644); err != nil {
		return fmt.Errorf("failed to write annotated source: %w", err)
	}

	return nil
}

func (w *workflow) outputFaults(handler *ToolHandler) ([]string, error) {
	content, err := w.FS.ReadFile(handler.MountPath(kleeOutDir, kleeMessages))
	if err != nil {
		return nil, fmt.Errorf("failed to read KLEE messages: %w", err)
	}

	faults := ExtractFaultLines(string(content), w.settings.FaultPrefix)

	if len(faults) > 0 {
		w.ui.Println("\n ========= ERROR OUTPUTS =========")

		for _, fault := range faults {
			w.ui.Println(fault)
		}
	}

	w.ui.Println("\n ========= END OF ERROR OUTPUTS =========")

	return faults, nil
}

// analyzeKTests runs ktest-tool over every generated test. Failures are
// logged and reported as no result.
func (w *workflow) analyzeKTests(ctx context.Context, handler *ToolHandler) (string, bool) {
	outDir := handler.MountPath(kleeOutDir)

	files, err := w.FS.FindFiles(outDir, ktestSuffix)
	if err != nil {
		w.logger.WithError(err).Error("failed to list ktest files")
		return "", false
	}

	args := make([]string, 0, len(files))

	for _, file := range files {
		rel, err := filepath.Rel(string(outDir), string(file))
		if err != nil {
			continue
		}

		args = append(args, "tmp/"+string(m.ToolConcolic)+"/"+kleeOutDir+"/"+filepath.ToSlash(rel))
	}

	slices.Sort(args)

	w.logger.Info("fetching tests")

	out, err := handler.Exec(ctx, strings.TrimSpace("ktest-tool "+strings.Join(args, " ")))
	if err != nil {
		w.ui.Println(fmt.Sprintf("\nError executing ktest-tool: %v", err))
		w.logger.WithError(err).Error("ktest-tool failed")

		return "", false
	}

	w.logger.Info("tests generated successfully")

	return string(out), true
}

func (w *workflow) saveFaultReport(dir, source m.Path, faults []string, inputs m.ObjectInputs) {
	if dir == "" {
		return
	}

	report := BuildFaultReport(faults, inputs)
	report.Source = source

	path, err := w.Reports.SaveFaultReport(dir, report)
	if err != nil {
		w.logger.WithError(err).Warn("failed to save fault report")
		return
	}

	w.logger.WithField("path", path).Info("fault report saved")
}

func (w *workflow) saveTests(dir m.Path, dump string) error {
	if dir == "" {
		dir = "."
	}

	name, err := w.ui.Prompt("Enter the name of the file to save the tests to: ")
	if err != nil {
		return err
	}

	path, err := w.Reports.SaveTests(dir, name, dump)
	if err != nil {
		return err
	}

	w.ui.Println("Tests saved to file: " + string(path))

	return nil
}
