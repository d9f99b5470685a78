package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlsh-dev/sqlsh/pkg/dialect"
)

func newDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the supported SQL dialects",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range dialect.List() {
				d, ok := dialect.Get(name)
				if !ok {
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-10s driver=%s\n", name, d.Driver)
			}
		},
	}
}
