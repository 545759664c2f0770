package cli

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-req-sync/internal/handler"
	"github.com/MKhiriev/go-req-sync/internal/server"
	"github.com/MKhiriev/go-req-sync/internal/workers"
	"github.com/MKhiriev/go-req-sync/models"
)

// NewDaemonCmd returns the reqsyncd command: the control API server with
// the auto-push worker. It logs to stdout unless --log-file is given.
func NewDaemonCmd(buildInfo models.AppBuildInfo) *cobra.Command {
	return newDaemonCmd(buildInfo, Build)
}

func newDaemonCmd(buildInfo models.AppBuildInfo, build Builder) *cobra.Command {
	st := &state{build: build, buildInfo: buildInfo}

	cmd := newServeCmd(st)
	cmd.Use = "reqsyncd"
	cmd.PersistentPreRunE = st.setup
	cmd.RunE = st.closing(cmd.RunE)
	st.bindFlags(cmd, "")
	return cmd
}

func newServeCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:           "serve",
		Short:         "Run the local control API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := st.newServer()
			if err != nil {
				return err
			}
			srv.RunServer()
			return nil
		},
	}
}

func (st *state) newServer() (server.Server, error) {
	cfg, log := st.rt.Config, st.rt.Logger
	log.Info().Stringer("build", st.buildInfo).Str("addr", cfg.Server.HTTPAddress).Msg("starting control API")

	handlers, err := handler.NewHandlers(st.rt.Services, cfg.Server, st.buildInfo, log)
	if err != nil {
		return nil, err
	}

	w := workers.NewWorkers()
	if cfg.Workers.AutoPushInterval > 0 {
		w = workers.NewWorkers(workers.NewAutoPushWorker(
			st.rt.Services.SyncService,
			cfg.Workers.AutoPushInterval,
			log.GetChildLogger(),
		))
	}

	return server.NewServer(handlers, w, cfg.Server, log)
}
