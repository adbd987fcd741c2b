package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cdokit/cdokit/config"
)

func runCheck(cmd *cobra.Command, args []string) error {
	c, err := config.Load(args[0])
	if err != nil {
		return err
	}

	d, err := c.Build()
	if err != nil {
		return fmt.Errorf("building domain: %w", err)
	}

	// Route configuration warnings to the command output.
	d.SetWarnFunc(func(format string, a ...any) {
		cmd.PrintErrf("warning: "+format+"\n", a...)
	})

	if viper.GetBool("seal") {
		d.Seal()
	}
	if !viper.GetBool("quiet") {
		cmd.Print(d.String())
	}
	cmd.Printf("case %s: ok (%d equations)\n", args[0], len(d.Equations()))
	return nil
}
