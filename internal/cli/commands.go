package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-req-sync/internal/service"
	"github.com/MKhiriev/go-req-sync/internal/tui"
	"github.com/MKhiriev/go-req-sync/models"
)

const (
	keepLocal  = "local"
	keepRemote = "remote"
)

var errInvalidKeep = errors.New(`--keep must be "local" or "remote"`)

func newVersionCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := models.NewAppBuildInfo(st.buildInfo.Version, st.buildInfo.Date, st.buildInfo.Commit)
			return st.render(cmd, info, func(w io.Writer) {
				fmt.Fprintf(w, "version: %s\ndate:    %s\ncommit:  %s\n", info.Version, info.Date, info.Commit)
			})
		},
	}
}

func newStatusCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the sync state of every collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := st.rt.Services.SyncService.Status(cmd.Context())
			if err != nil {
				return err
			}
			return st.render(cmd, rows, func(w io.Writer) {
				fmt.Fprintln(w, tui.RenderStatusTable(rows, time.Now()))
			})
		},
	}
}

func newPullCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "pull [collection-id]",
		Short: "Import remote changes",
		Long:  "Without arguments every remote collection is pulled. Dirty collections with remote changes are reported as conflicts.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sync := st.rt.Services.SyncService
			if len(args) == 1 {
				outcome, err := sync.PullCollection(cmd.Context(), args[0])
				if err != nil {
					return st.conflictHint(cmd, err)
				}
				res := models.PullResult{Outcomes: map[string]models.PullOutcome{args[0]: outcome}}
				return st.render(cmd, res, func(w io.Writer) { printPull(w, res) })
			}

			res, err := sync.Pull(cmd.Context())
			if err != nil {
				return err
			}
			return st.render(cmd, res, func(w io.Writer) { printPull(w, res) })
		},
	}
}

func newPushCmd(st *state) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "push <collection-id>",
		Short: "Push one collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			res, err := st.rt.Services.SyncService.PushCollection(ctx, id, st.pushOptions())
			if conflict, ok := service.AsConflict(err); ok && interactive {
				return st.promptResolve(cmd, conflict)
			}
			if err != nil {
				return st.conflictHint(cmd, err)
			}
			return st.render(cmd, res, func(w io.Writer) { printPush(w, res) })
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask which side wins on conflict")
	return cmd
}

func newPushAllCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "push-all",
		Short: "Push every dirty or never-synced collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := st.rt.Services.SyncService.PushAll(cmd.Context())
			if err != nil {
				return err
			}
			return st.render(cmd, res, func(w io.Writer) { printPushAll(w, res) })
		},
	}
}

func newPushRequestCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "push-request <collection-id> <request-id>",
		Short: "Push a single request file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := st.rt.Services.SyncService.PushRequest(cmd.Context(), args[0], args[1], st.pushOptions())
			if err != nil {
				return err
			}
			return st.render(cmd, res, func(w io.Writer) {
				if res.Deferred {
					fmt.Fprintf(w, "%s: remote changed, collection marked for a full push\n", res.Path)
					return
				}
				fmt.Fprintf(w, "%s: pushed\n", res.Path)
			})
		},
	}
}

func newResolveCmd(st *state) *cobra.Command {
	var keep string

	cmd := &cobra.Command{
		Use:   "resolve <collection-id>",
		Short: "Resolve a conflict by keeping one side",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var choice tui.Choice
			switch strings.ToLower(keep) {
			case keepLocal:
				choice = tui.ChoiceKeepLocal
			case keepRemote:
				choice = tui.ChoiceKeepRemote
			default:
				return errInvalidKeep
			}

			if err := st.resolver(args[0])(cmd.Context(), choice); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: kept %s\n", args[0], choice)
			return nil
		},
	}
	cmd.Flags().StringVar(&keep, "keep", "", `Side to keep: "local" or "remote"`)
	_ = cmd.MarkFlagRequired("keep")
	return cmd
}

func newEnableCmd(st *state) *cobra.Command {
	return newToggleCmd(st, "enable", "Enable sync for a collection", true)
}

func newDisableCmd(st *state) *cobra.Command {
	return newToggleCmd(st, "disable", "Disable sync for a collection", false)
}

func newToggleCmd(st *state, use, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <collection-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.rt.Services.SyncService.SetSyncEnabled(cmd.Context(), args[0], enabled); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: sync %sd\n", args[0], use)
			return nil
		},
	}
}

func newRemoveRemoteCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-remote <collection-id>",
		Short: "Delete the remote copy of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.rt.Services.SyncService.RemoveRemoteCollection(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: remote copy removed\n", args[0])
			return nil
		},
	}
}

func newPingCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the remote repository is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ok, err := st.rt.Services.SyncService.TestConnection(cmd.Context())
			if err != nil {
				return err
			}
			res := map[string]bool{"ok": ok}
			return st.render(cmd, res, func(w io.Writer) {
				if ok {
					fmt.Fprintln(w, "remote reachable")
					return
				}
				fmt.Fprintln(w, "remote unreachable: check repository, branch and token")
			})
		},
	}
}

func (st *state) pushOptions() service.PushOptions {
	return service.PushOptions{Sanitize: st.rt.Config.Sanitize.Enabled}
}

func (st *state) resolver(collectionID string) tui.Resolver {
	sync := st.rt.Services.SyncService
	return func(ctx context.Context, choice tui.Choice) error {
		switch choice {
		case tui.ChoiceKeepLocal:
			_, err := sync.ForceKeepLocal(ctx, collectionID, st.pushOptions())
			return err
		case tui.ChoiceKeepRemote:
			return sync.ForceKeepRemote(ctx, collectionID)
		}
		return nil
	}
}

func (st *state) promptResolve(cmd *cobra.Command, conflict *service.ConflictError) error {
	name := conflict.CollectionName
	if name == "" {
		name = conflict.CollectionID
	}
	_, err := tui.RunConflictPrompt(
		cmd.Context(),
		name,
		conflict.Paths,
		st.resolver(conflict.CollectionID),
		cmd.InOrStdin(),
		cmd.OutOrStdout(),
	)
	return err
}

// conflictHint adds the resolve command to a conflict error.
func (st *state) conflictHint(cmd *cobra.Command, err error) error {
	if conflict, ok := service.AsConflict(err); ok {
		w := cmd.ErrOrStderr()
		fmt.Fprintf(w, "conflicting files:\n")
		for _, p := range conflict.Paths {
			fmt.Fprintf(w, "  %s\n", p)
		}
		fmt.Fprintf(w, "run `reqsync resolve %s --keep local|remote`\n", conflict.CollectionID)
	}
	return err
}
