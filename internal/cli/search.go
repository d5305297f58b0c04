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
		Use:   "search [query]",
		Short: "Search records by keyword",
		Long:  "Search record content and tags, ranked by relevance score.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().String("kind", "", "Filter by kind")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	v, cfg, err := openVault()
	if err != nil {
		exitErr("open vault", err)
	}

	results, err := v.Search(cmd.Context(), vault.SearchParams{
		Query:     query,
		Kind:      kind,
		Principal: cfg.Principal,
		Limit:     limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if len(results) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(results, "", "  ")
	fmt.Println(string(b))
}
