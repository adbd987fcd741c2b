// Command cdokit validates equation-input case files: it loads a case,
// builds the domain configuration and prints a setup summary, failing
// on any configuration error a solver run would hit at startup.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "cdokit",
	Short:   "Configure and check equation inputs for CDO discretizations",
	Version: version,
}

var checkCmd = &cobra.Command{
	Use:   "check <case.yaml>",
	Short: "Load a case file, build the domain and print a setup summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("seal", false,
		"seal the domain after building, as the solve phase would")
	checkCmd.Flags().BoolP("quiet", "q", false,
		"suppress the summary, only report errors")
	_ = viper.BindPFlag("seal", checkCmd.Flags().Lookup("seal"))
	_ = viper.BindPFlag("quiet", checkCmd.Flags().Lookup("quiet"))

	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
