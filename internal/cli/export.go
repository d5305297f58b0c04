package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records as JSON",
		Long:  "Export records with decoded content. Filter by category with --category.",
		Run:   runExport,
	}

	cmd.Flags().String("category", "", "Filter by category")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")

	v, _, err := openVault()
	if err != nil {
		exitErr("open vault", err)
	}

	records, err := v.ExportAll(cmd.Context(), category)
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(records, "", "  ")
	fmt.Println(string(b))
}
