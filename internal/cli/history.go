package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mokhberai/mokhber/internal/history"
)

var historyTail int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history <group>",
	Short: "Show the posting history of a source group",
	Long: `Display the history partition of a group: where it lives, how many
items it records, and the most recent identifiers (the file is sorted, so
"recent" means lexicographically last).

Example:
  mokhber history "Huberman Lab"
  mokhber history "Popular Science" --tail 25 --history-dir /var/lib/mokhber`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if historyDir != "" {
			cfg.History.Dir = historyDir
		}

		var partition string
		for _, g := range cfg.Groups {
			if g.Name == args[0] {
				partition = g.History
				break
			}
		}
		if partition == "" {
			return fmt.Errorf("unknown group %q (see 'mokhber sources')", args[0])
		}

		store := history.NewStore(cfg.History.Dir)
		rec, err := store.Load(partition)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		fmt.Printf("Partition: %s\n", store.Path(partition))
		fmt.Printf("Recorded:  %d items\n", rec.Len())

		ids := rec.Sorted()
		if historyTail > 0 && len(ids) > historyTail {
			ids = ids[len(ids)-historyTail:]
		}
		if len(ids) > 0 {
			fmt.Println()
			for _, id := range ids {
				fmt.Println(id)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyTail, "tail", 10, "show only the last N identifiers (0 for all)")
	historyCmd.Flags().StringVar(&historyDir, "history-dir", "", "directory holding history files (default: current directory)")
}
