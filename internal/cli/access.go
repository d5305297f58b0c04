package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "access [id]",
		Short: "Set the permitted principals for a record",
		Long: "Replace the full permitted-principal set for a record, then report\n" +
			"the gate decision for the current principal. Rules live for the life\n" +
			"of the process; library callers hold the vault open.",
		Args: cobra.ExactArgs(1),
		Run:  runAccess,
	}

	cmd.Flags().String("allow", "", "Comma-separated principals (empty denies everyone)")
	cmd.Flags().String("check", "", "Principal to evaluate after setting the rule")

	RootCmd.AddCommand(cmd)
}

func runAccess(cmd *cobra.Command, args []string) {
	allowStr, _ := cmd.Flags().GetString("allow")
	check, _ := cmd.Flags().GetString("check")

	var principals []string
	for _, p := range strings.Split(allowStr, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			principals = append(principals, p)
		}
	}

	v, cfg, err := openVault()
	if err != nil {
		exitErr("open vault", err)
	}

	if err := v.SetAccess(args[0], principals); err != nil {
		exitErr("access", err)
	}

	if check == "" {
		check = cfg.Principal
	}
	d := v.CheckAccess(args[0], check)
	fmt.Printf(`{"ok":true,"id":%q,"principal":%q,"decision":%q}`+"\n", args[0], check, d.String())
}
