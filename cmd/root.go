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
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:   "golbm",
	Short: "Moment based lattice Boltzmann collision operators",
	Long: `
Builds moment based lattice Boltzmann methods (SRT, TRT, raw and orthogonal MRT)
and derives their collision rules in exact arithmetic,

golbm method -I method.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		level := slog.LevelInfo
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		switch mode := strings.ToLower(viper.GetString("profile")); mode {
		case "":
		case "cpu":
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		case "mem":
			profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		default:
			err = fmt.Errorf("unknown profile mode %q, use cpu or mem", mode)
		}
		return
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.golbm.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().String("profile", "", "write a cpu or mem profile to the current directory")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".golbm")
	}
	viper.SetEnvPrefix("GOLBM")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}
