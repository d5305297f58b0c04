package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kmccarty/recordvault/internal/vault"
)

func init() {
	cmd := &cobra.Command{
		Use:   "organize [id]",
		Short: "File a record under categories and a hierarchy",
		Args:  cobra.ExactArgs(1),
		Run:   runOrganize,
	}

	cmd.Flags().String("categories", "", "Comma-separated category names")
	cmd.Flags().String("hierarchy", "", "Hierarchy name to append to")

	RootCmd.AddCommand(cmd)

	catCmd := &cobra.Command{
		Use:   "category [name]",
		Short: "List record ids in a category",
		Args:  cobra.ExactArgs(1),
		Run:   runCategory,
	}
	RootCmd.AddCommand(catCmd)

	hierCmd := &cobra.Command{
		Use:   "hierarchy [name]",
		Short: "List record ids in a hierarchy, in insertion order",
		Args:  cobra.ExactArgs(1),
		Run:   runHierarchy,
	}
	RootCmd.AddCommand(hierCmd)
}

func runOrganize(cmd *cobra.Command, args []string) {
	catsStr, _ := cmd.Flags().GetString("categories")
	hierarchy, _ := cmd.Flags().GetString("hierarchy")

	var categories []string
	for _, c := range strings.Split(catsStr, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			categories = append(categories, c)
		}
	}

	v, _, err := openVault()
	if err != nil {
		exitErr("open vault", err)
	}

	if err := v.Organize(cmd.Context(), vault.OrganizeParams{
		ID:         args[0],
		Categories: categories,
		Hierarchy:  hierarchy,
	}); err != nil {
		exitErr("organize", err)
	}

	fmt.Printf(`{"ok":true,"id":%q}`+"\n", args[0])
}

func runCategory(cmd *cobra.Command, args []string) {
	v, _, err := openVault()
	if err != nil {
		exitErr("open vault", err)
	}
	for _, id := range v.GetByCategory(args[0]) {
		fmt.Println(id)
	}
}

func runHierarchy(cmd *cobra.Command, args []string) {
	v, _, err := openVault()
	if err != nil {
		exitErr("open vault", err)
	}
	for _, id := range v.GetByHierarchy(args[0]) {
		fmt.Println(id)
	}
}
