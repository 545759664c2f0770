package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-req-sync/internal/config"
	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/models"
)

// state is shared by every command of one tree.
type state struct {
	flags     *config.Flags
	build     Builder
	buildInfo models.AppBuildInfo

	jsonOut bool
	verbose bool
	logFile string

	rt *Runtime
}

// NewRootCmd returns the reqsync command tree.
func NewRootCmd(buildInfo models.AppBuildInfo) *cobra.Command {
	return newRootCmd(buildInfo, Build)
}

func newRootCmd(buildInfo models.AppBuildInfo, build Builder) *cobra.Command {
	st := &state{build: build, buildInfo: buildInfo}

	root := &cobra.Command{
		Use:   "reqsync",
		Short: "Synchronize API request collections with a Git repository",
		Long: `reqsync mirrors local API request collections to a GitHub or GitLab
repository as YAML files and merges changes made on other machines.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: st.setup,
	}

	st.bindFlags(root, defaultLogFile())

	root.AddCommand(
		newVersionCmd(st),
		newStatusCmd(st),
		newPullCmd(st),
		newPushCmd(st),
		newPushAllCmd(st),
		newPushRequestCmd(st),
		newResolveCmd(st),
		newEnableCmd(st),
		newDisableCmd(st),
		newRemoveRemoteCmd(st),
		newPingCmd(st),
		newServeCmd(st),
	)
	for _, cmd := range root.Commands() {
		if cmd.RunE != nil {
			cmd.RunE = st.closing(cmd.RunE)
		}
	}
	return root
}

func (st *state) bindFlags(cmd *cobra.Command, logFile string) {
	fs := cmd.PersistentFlags()
	st.flags = config.BindFlags(fs)
	fs.BoolVar(&st.jsonOut, "json", false, "Print results as JSON")
	fs.BoolVarP(&st.verbose, "verbose", "v", false, "Log at debug level")
	fs.StringVar(&st.logFile, "log-file", logFile, "Log file path")
}

// setup loads the configuration and builds the runtime. The version command
// needs neither.
func (st *state) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	cfg, err := config.GetStructuredConfig(st.flags.Config())
	if err != nil {
		return err
	}

	log := st.newLogger()
	rt, err := st.build(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	st.rt = rt
	return nil
}

// closing releases the runtime after run, also when run fails.
func (st *state) closing(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if cerr := st.teardown(cmd.Context()); err == nil {
			err = cerr
		}
		return err
	}
}

func (st *state) teardown(ctx context.Context) error {
	if st.rt == nil {
		return nil
	}
	err := st.rt.Close(context.WithoutCancel(ctx))
	st.rt = nil
	return err
}

func (st *state) newLogger() *logger.Logger {
	log := logger.NewFileLogger("reqsync", st.logFile)
	level := zerolog.InfoLevel
	if st.verbose {
		level = zerolog.DebugLevel
	}
	return &logger.Logger{Logger: log.Level(level)}
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "go-req-sync", "reqsync.log")
	}
	return filepath.Join(dir, "go-req-sync", "reqsync.log")
}
