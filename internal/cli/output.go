package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-req-sync/models"
)

// render writes v as indented JSON when --json is set, text otherwise.
func (st *state) render(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if st.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func printPush(w io.Writer, res models.PushResult) {
	if len(res.Pushed) == 0 && len(res.Deleted) == 0 {
		fmt.Fprintf(w, "%s: up to date\n", res.CollectionID)
		return
	}
	fmt.Fprintf(w, "%s: %d written, %d deleted, %d unchanged", res.CollectionID, len(res.Pushed), len(res.Deleted), len(res.Skipped))
	if res.CommitID != "" {
		fmt.Fprintf(w, " (commit %s)", shortID(res.CommitID))
	}
	fmt.Fprintln(w)
	for _, p := range res.Pushed {
		fmt.Fprintf(w, "  + %s\n", p)
	}
	for _, p := range res.Deleted {
		fmt.Fprintf(w, "  - %s\n", p)
	}
}

func printPushAll(w io.Writer, res models.PushAllResult) {
	for _, id := range sortedKeys(res.Pushed) {
		printPush(w, res.Pushed[id])
	}
	printProblems(w, res.Conflicts, res.Failures)
	if len(res.Pushed)+len(res.Conflicts)+len(res.Failures) == 0 {
		fmt.Fprintln(w, "nothing to push")
	}
}

func printPull(w io.Writer, res models.PullResult) {
	for _, id := range sortedKeys(res.Outcomes) {
		fmt.Fprintf(w, "%s: %s\n", id, res.Outcomes[id])
	}
	printProblems(w, res.Conflicts, res.Failures)
	if len(res.Outcomes)+len(res.Conflicts)+len(res.Failures) == 0 {
		fmt.Fprintln(w, "no remote collections")
	}
}

func printProblems(w io.Writer, conflicts map[string][]string, failures map[string]string) {
	for _, id := range sortedKeys(conflicts) {
		fmt.Fprintf(w, "%s: conflict in %s\n", id, strings.Join(conflicts[id], ", "))
	}
	for _, id := range sortedKeys(failures) {
		fmt.Fprintf(w, "%s: failed: %s\n", id, failures[id])
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}
