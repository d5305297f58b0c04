package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Retrieve a record by id",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	v, cfg, err := openVault()
	if err != nil {
		exitErr("open vault", err)
	}

	rec, err := v.Retrieve(cmd.Context(), args[0], cfg.Principal)
	if err != nil {
		exitErr("get", err)
	}

	b, _ := json.MarshalIndent(rec, "", "  ")
	fmt.Println(string(b))
}
