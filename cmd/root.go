// Package cmd provides the root command and CLI setup for consept.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mouse-blink/consept/internal/adapter"
	"github.com/mouse-blink/consept/internal/config"
	"github.com/mouse-blink/consept/internal/controller"
	"github.com/mouse-blink/consept/internal/domain"
	"github.com/mouse-blink/consept/internal/logging"
)

var cfg config.Config
var logger *logrus.Logger
var workflow domain.Workflow
var closeWorkflow func() error

// newWorkflow wires the adapters behind the workflow. Tests replace it.
var newWorkflow = productionWorkflow

var configFile string

// flagKeys maps flag names to the configuration keys they override.
var flagKeys = map[string]string{
	"workspace":       config.KeyWorkspace,
	"dockerfiles":     config.KeyDockerfiles,
	"entry":           config.KeyEntryFunction,
	"rebuild":         config.KeyRebuildImages,
	"keep-containers": config.KeyKeepContainers,
	"log-level":       config.KeyLogLevel,
	"log-format":      config.KeyLogFormat,
	"time-limit":      config.KeyTimeLimit,
	"runs":            config.KeyFuzzRuns,
	"sanitizer":       config.KeySanitizer,
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consept",
		Short: "Concolic, fuzz and mutation testing for C++",
		Long: `Consept drives KLEE, libFuzzer and Dextool against a C++ project.

Every tool runs in its own container built from <dockerfiles>/<tool>. The
tool's mount folder <workspace>/tmp/<tool> is shared with the container and
holds the instrumented sources, the run script and the results.`,
		SilenceUsage:       true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (YAML or TOML)")
	flags.String("workspace", ".", "directory holding the tmp/<tool> mount folders")
	flags.String("dockerfiles", "docker", "directory holding one Dockerfile folder per tool")
	flags.String("entry", domain.DefaultEntryFunction, "entry function of the tested program")
	flags.Bool("rebuild", false, "rebuild tool images even when they exist")
	flags.Bool("keep-containers", false, "keep tool containers after they stop")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", logging.FormatText, "log format (text or json)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	v := viper.New()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	loaded, err := config.Load(v, configFile)
	if err != nil {
		return err
	}

	if loaded.Workspace, err = filepath.Abs(loaded.Workspace); err != nil {
		return err
	}

	if loaded.Dockerfiles, err = filepath.Abs(loaded.Dockerfiles); err != nil {
		return err
	}

	log, err := logging.New(logging.Options{
		Level:  loaded.Log.Level,
		Format: loaded.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	wf, closer, err := newWorkflow(cmd, loaded, log)
	if err != nil {
		return err
	}

	cfg, logger, workflow, closeWorkflow = loaded, log, wf, closer

	logger.WithFields(logrus.Fields{
		"command":   cmd.Name(),
		"workspace": cfg.Workspace,
	}).Debug("configuration loaded")

	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeWorkflow == nil {
		return nil
	}

	closer := closeWorkflow
	closeWorkflow = nil

	return closer()
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}

		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}

	return nil
}

func settingsFrom(c config.Config) domain.Settings {
	return domain.Settings{
		Workspace:      c.Workspace,
		Dockerfiles:    c.Dockerfiles,
		EntryFunction:  c.EntryFunction,
		FaultPrefix:    c.Concolic.FaultPrefix,
		Images:         c.Images,
		RebuildImages:  c.RebuildImages,
		KeepContainers: c.KeepContainers,
	}
}

func productionWorkflow(cmd *cobra.Command, c config.Config, log *logrus.Logger) (domain.Workflow, func() error, error) {
	docker, err := adapter.NewDockerAdapter(log)
	if err != nil {
		return nil, nil, err
	}

	fs := adapter.NewLocalSourceFSAdapter()
	ui := controller.NewUI(cmd, controller.IsTTY(os.Stdout))

	wf := domain.NewWorkflow(settingsFrom(c), domain.Adapters{
		FS:         fs,
		Parser:     adapter.NewTreeSitterCppAdapter(),
		CompileDB:  adapter.NewLocalCompileDBAdapter(),
		ToolConfig: adapter.NewTOMLConfigAdapter(fs),
		Containers: docker,
		Reports:    adapter.NewReportStore(fs),
	}, ui, log)

	return wf, docker.Close, nil
}
