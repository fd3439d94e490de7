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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/golbm/InputParameters"
	"github.com/notargets/golbm/methods"
	"github.com/notargets/golbm/moments"
)

// MethodCmd builds a method from an input file and prints its moment table
var MethodCmd = &cobra.Command{
	Use:   "method",
	Short: "Build a moment based method and print its relaxation table, weights and shear rate",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var m *methods.MomentBasedMethod
		if m, err = buildMethod(cmd); err != nil {
			return
		}
		return printMethod(cmd.OutOrStdout(), m)
	},
}

func init() {
	rootCmd.AddCommand(MethodCmd)
	MethodCmd.Flags().StringP("inputConditionsFile", "I", "",
		"YAML file for method parameters like:\n\t- Stencil\n\t- Method\n\t- RelaxationRates")
}

// buildMethod reads the -I file, falling back to the "input" config key.
func buildMethod(cmd *cobra.Command) (m *methods.MomentBasedMethod, err error) {
	var (
		data []byte
		file string
		mp   = &InputParameters.MethodParameters{}
	)
	if file, _ = cmd.Flags().GetString("inputConditionsFile"); len(file) == 0 {
		file = viper.GetString("input")
	}
	if len(file) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Example File:%s\n", InputParameters.ExampleFile)
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
	}
	if data, err = os.ReadFile(file); err != nil {
		return
	}
	if err = mp.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	if viper.GetBool("verbose") {
		mp.Print()
	}
	return mp.Build()
}

func printMethod(out io.Writer, m *methods.MomentBasedMethod) (err error) {
	fmt.Fprint(out, m.String())
	weights, err := m.Weights()
	if err != nil {
		return
	}
	w := make([]string, len(weights))
	for q, wq := range weights {
		w[q] = wq.String()
	}
	fmt.Fprintf(out, "Weights: [%s]\n", strings.Join(w, " "))
	rate, err := m.ShearRelaxationRate()
	switch {
	case err == nil:
		fmt.Fprintf(out, "Shear relaxation rate: %s\n", rate)
	case errors.Is(err, methods.ErrNoShearMoments), errors.Is(err, methods.ErrAmbiguousShearRate):
		fmt.Fprintf(out, "Shear relaxation rate: %v\n", err)
	default:
		return
	}
	cond, err := moments.ConditionNumber(m.Moments(), m.Stencil())
	if err != nil {
		return
	}
	fmt.Fprintf(out, "Moment matrix condition number: %.4g\n", cond)
	if fm := m.ForceModel(); fm != nil {
		fmt.Fprintf(out, "Force model: %s %v\n", fm.Name(), fm.Force())
	}
	return nil
}
