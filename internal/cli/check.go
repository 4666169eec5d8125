// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thurinj/mtuq/contract"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var view string
	var norm string

	cmd := &cobra.Command{
		Use:   "check <samples.csv>...",
		Short: "Check that misfit tables carry the parameters of a view",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := contract.Lookup(view)
			if err != nil {
				return err
			}
			n, err := parseNorm(norm)
			if err != nil {
				return err
			}
			stores, err := loadSurfaces(args, n)
			if err != nil {
				return err
			}
			for i, s := range stores {
				if err := v.Check(s); err != nil {
					return fmt.Errorf("%s: %w", args[i], err)
				}
				rootOpts.logger.Debug("store checked", "path", args[i], "kind", s.Kind(), "points", s.Len())
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s view ok (%s, %d points, parameters %s)\n",
					args[i], v.Name, s.Kind(), s.Len(), strings.Join(s.Parameters(), ","))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", contract.Lune.Name, "parameter view (see views below)")
	cmd.Flags().StringVar(&norm, "norm", "l2", "misfit norm of the tables (l1|l2)")
	cmd.Long = "Views: " + viewNames()

	return cmd
}

func viewNames() string {
	var names []string
	for _, v := range contract.Views() {
		names = append(names, fmt.Sprintf("%s {%s}", v.Name, strings.Join(v.Required, ",")))
	}

	return strings.Join(names, "; ")
}
