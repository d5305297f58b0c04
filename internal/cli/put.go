package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kmccarty/recordvault/internal/model"
	"github.com/kmccarty/recordvault/internal/vault"
)

func init() {
	cmd := &cobra.Command{
		Use:   "put [content]",
		Short: "Store a record",
		Long:  "Store a record. Content can be a positional arg or piped via stdin.",
		Run:   runPut,
	}

	cmd.Flags().StringP("id", "i", "", "Record id (generated when omitted)")
	cmd.Flags().String("kind", "", "Kind (memory profile: factual, procedural, episodic, semantic)")
	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
	cmd.Flags().StringP("priority", "p", "normal", "Priority: low, normal, high, critical")
	cmd.Flags().String("category", "", "Category name")
	cmd.Flags().String("source", "", "Origin label, also the storing principal")
	cmd.Flags().Float64("confidence", 0, "Confidence in [0,1]")

	RootCmd.AddCommand(cmd)
}

func runPut(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	kind, _ := cmd.Flags().GetString("kind")
	tagsStr, _ := cmd.Flags().GetString("tags")
	priority, _ := cmd.Flags().GetString("priority")
	category, _ := cmd.Flags().GetString("category")
	source, _ := cmd.Flags().GetString("source")
	confidence, _ := cmd.Flags().GetFloat64("confidence")

	// Content: positional arg first, then stdin.
	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}
	if strings.TrimSpace(content) == "" {
		exitErr("put", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	var tags []string
	if tagsStr != "" {
		for _, t := range strings.Split(tagsStr, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				tags = append(tags, t)
			}
		}
	}

	v, cfg, err := openVault()
	if err != nil {
		exitErr("open vault", err)
	}
	if source == "" {
		source = cfg.Principal
	}

	rec, err := v.Store(cmd.Context(), vault.StoreParams{
		ID:      id,
		Content: content,
		Metadata: model.Metadata{
			Kind:       kind,
			Priority:   priority,
			Tags:       tags,
			Category:   category,
			Source:     source,
			Confidence: confidence,
		},
	})
	if err != nil {
		exitErr("put", err)
	}

	b, _ := json.Marshal(rec)
	fmt.Println(string(b))
}
