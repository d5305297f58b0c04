package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kmccarty/recordvault/internal/vault"
)

func init() {
	cmd := &cobra.Command{
		Use:   "context [description]",
		Short: "Assemble relevant records for a task",
		Long:  "Search and score records, then greedily pack them into a token budget.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runContext,
	}

	cmd.Flags().String("kind", "", "Filter by kind")
	cmd.Flags().IntP("budget", "b", 4000, "Max tokens in output")

	RootCmd.AddCommand(cmd)
}

func runContext(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	budget, _ := cmd.Flags().GetInt("budget")
	query := strings.Join(args, " ")

	v, cfg, err := openVault()
	if err != nil {
		exitErr("open vault", err)
	}

	result, err := v.Context(cmd.Context(), vault.ContextParams{
		Query:     query,
		Kind:      kind,
		Principal: cfg.Principal,
		Budget:    budget,
	})
	if err != nil {
		exitErr("context", err)
	}

	b, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(b))
}
