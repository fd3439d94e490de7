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
	"log/slog"
	"math"

	"github.com/spf13/cobra"

	"github.com/notargets/golbm/methods"
	"github.com/notargets/golbm/symbolic"
)

// RuleCmd derives the collision rule of a method
var RuleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Derive and print the collision rule of a method",
	Long: `
Derives the collision rule f -> d of the method described by the input file.
With --numeric the rule is evaluated on a perturbed rest state and compared to
a floating point moment space collision,

golbm rule -I method.yaml --numeric --values omega=1.8`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			m  *methods.MomentBasedMethod
			cr *methods.CollisionRule
		)
		if m, err = buildMethod(cmd); err != nil {
			return
		}
		eqOnly, _ := cmd.Flags().GetBool("equilibrium")
		numeric, _ := cmd.Flags().GetBool("numeric")
		if eqOnly {
			cr = m.Equilibrium()
		} else if cr, err = m.CollisionRule(); err != nil {
			return
		}
		slog.Debug("collision rule", "subexpressions", len(cr.Subexpressions),
			"relaxation rates", cr.Hints.RelaxationRates)
		out := cmd.OutOrStdout()
		fmt.Fprint(out, cr.String())
		if !numeric {
			return
		}
		values, _ := cmd.Flags().GetStringToString("values")
		return checkNumeric(cmd, m, cr, values)
	},
}

func init() {
	rootCmd.AddCommand(RuleCmd)
	RuleCmd.Flags().StringP("inputConditionsFile", "I", "",
		"YAML file for method parameters like:\n\t- Stencil\n\t- Method\n\t- RelaxationRates")
	RuleCmd.Flags().Bool("equilibrium", false, "derive the equilibrium instead of the full collision")
	RuleCmd.Flags().Bool("numeric", false, "evaluate the rule and report conservation errors")
	RuleCmd.Flags().StringToString("values", nil, "symbol values for the numeric check, like omega=1.8,F_0=1e-3")
}

func checkNumeric(cmd *cobra.Command, m *methods.MomentBasedMethod, cr *methods.CollisionRule,
	raw map[string]string) (err error) {
	var (
		out     = cmd.OutOrStdout()
		params  = make(map[symbolic.Symbol]float64, len(raw))
		weights []symbolic.Expr
		s       = m.Stencil()
	)
	for k, v := range raw {
		var e symbolic.Expr
		if e, err = symbolic.Parse(v); err != nil {
			return fmt.Errorf("value of %s: %w", k, err)
		}
		f, ok := e.Float64()
		if !ok {
			return fmt.Errorf("value of %s is not a number: %s", k, v)
		}
		params[symbolic.Symbol(k)] = f
	}
	if weights, err = m.Weights(); err != nil {
		return
	}
	f := make([]float64, len(s))
	inputs := make(map[symbolic.Symbol]float64, len(params)+len(s))
	for k, v := range params {
		inputs[k] = v
	}
	for q, sym := range m.PreCollisionPDFSymbols() {
		w, _ := weights[q].Float64()
		f[q] = w * (1 + 0.01*math.Sin(float64(q+1)))
		inputs[sym] = f[q]
	}
	vals, err := cr.Evaluate(inputs)
	if err != nil {
		return fmt.Errorf("%w, pass symbol values with --values", err)
	}
	post := make([]float64, len(s))
	for q, sym := range m.PostCollisionPDFSymbols() {
		post[q] = vals[sym]
	}
	var (
		dRho float64
		dMom = make([]float64, s.Dim())
	)
	for q, d := range s {
		dRho += post[q] - f[q]
		for i, c := range d {
			dMom[i] += float64(c) * (post[q] - f[q])
		}
	}
	fmt.Fprintf(out, "Density change: %.3e\nMomentum change: %.3e\n", dRho, dMom)
	if eqOnly, _ := cmd.Flags().GetBool("equilibrium"); eqOnly {
		return
	}
	op, err := m.NumericOperator()
	if err != nil {
		return
	}
	ref, err := op.Collide(f, params)
	if err != nil {
		return
	}
	var maxDiff float64
	for q := range ref {
		maxDiff = math.Max(maxDiff, math.Abs(ref[q]-post[q]))
	}
	fmt.Fprintf(out, "Max deviation from moment space collision: %.3e\n", maxDiff)
	return
}
