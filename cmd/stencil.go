/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notargets/golbm/equilibrium"
	"github.com/notargets/golbm/stencils"
)

// StencilCmd lists the known stencils or prints one with its weights
var StencilCmd = &cobra.Command{
	Use:   "stencil [label]",
	Short: "List the known stencils, or print one with its lattice weights",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, label := range stencils.Labels() {
				fmt.Fprintf(out, "%-6s orderings: %s\n", label, strings.Join(stencils.Orderings(label), ", "))
			}
			return
		}
		ordering, _ := cmd.Flags().GetString("ordering")
		var s stencils.Stencil
		if s, err = stencils.Get(args[0], ordering); err != nil {
			return
		}
		fmt.Fprintf(out, "%s: dimension %d, %d directions, symmetric %v\n",
			stencils.Identify(s), s.Dim(), s.Q(), stencils.IsSymmetric(s))
		w, wErr := equilibrium.Weights(s)
		inv := s.InverseIndex()
		for q, d := range s {
			fmt.Fprintf(out, "%3d %12v  inverse %3d", q, []int(d), inv[q])
			if wErr == nil {
				fmt.Fprintf(out, "  w = %s", w[q].RatString())
			}
			fmt.Fprintln(out)
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(StencilCmd)
	StencilCmd.Flags().StringP("ordering", "o", "", "direction ordering, default "+stencils.DefaultOrdering)
}
