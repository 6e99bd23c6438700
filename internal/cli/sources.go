package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured source groups",
	Long: `Display every configured source group with its adapter, post kind,
origin count, and history partition. Groups come from the config file when
one defines them, otherwise from the built-in set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("%-28s %-6s %-19s %-8s %s\n", "GROUP", "KIND", "POST", "ORIGINS", "HISTORY")
		for _, g := range cfg.Groups {
			fmt.Printf("%-28s %-6s %-19s %-8d %s\n",
				g.Name, g.Adapter, g.Kind, len(g.Origins), g.History)
		}
		fmt.Printf("\n%d groups configured\n", len(cfg.Groups))

		if verbose {
			fmt.Println()
			for _, g := range cfg.Groups {
				fmt.Printf("%s\n  tags: %s #%s\n  origins:\n    %s\n",
					g.Name, g.HashtagEn, g.CategoryFa, strings.Join(g.Origins, "\n    "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
