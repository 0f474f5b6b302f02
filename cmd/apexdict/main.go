// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the apexdict CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the apexdict CLI.
var rootCmd = &cobra.Command{
	Use:   "apexdict",
	Short: "Generate editor completion dictionaries from PL/SQL catalog exports",
	Long: `apexdict transforms a tabular export of Oracle APEX package, procedure,
and argument metadata into a filtered JSON dictionary used by the editor
extension for autocompletion.

The generate command runs the full pass: it loads the alias allow-list,
reads the catalog export (CSV or a SQLite snapshot), groups rows into
packages and procedures, renders call signatures, and writes the
dictionary file. The inspect command reads an export without writing
anything, for a quick look at what a generate run would consume.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./apexdict.yaml or ~/.config/apexdict/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("apexdict")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "apexdict"))
		}
	}

	viper.SetEnvPrefix("APEXDICT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
