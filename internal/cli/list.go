package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmccarty/recordvault/internal/vault"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records",
		Run:   runList,
	}

	cmd.Flags().String("category", "", "Filter by category")
	cmd.Flags().String("kind", "", "Filter by kind")
	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("ids-only", false, "Only output record ids")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")
	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	v, cfg, err := openVault()
	if err != nil {
		exitErr("open vault", err)
	}

	records, err := v.List(cmd.Context(), vault.ListParams{
		Category:  category,
		Kind:      kind,
		Principal: cfg.Principal,
		Limit:     limit,
	})
	if err != nil {
		exitErr("list", err)
	}

	if idsOnly {
		for _, r := range records {
			fmt.Println(r.ID)
		}
		return
	}

	b, _ := json.MarshalIndent(records, "", "  ")
	fmt.Println(string(b))
}
