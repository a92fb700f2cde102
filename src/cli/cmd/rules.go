package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofmeright/tailor/src/lint"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available style rules",
	Long: `List every registered style rule in evaluation order, with whether
it runs by default and whether the loaded config turns it on.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-22s %-8s %s\n", "RULE", "DEFAULT", "ENABLED")

	for _, name := range lint.Ordered() {
		r, err := lint.Get(name)
		if err != nil {
			return err
		}
		enabled := r.DefaultEnabled()
		if rc, ok := cfg.Lint.Rules[name]; ok && rc.Enabled != nil {
			enabled = *rc.Enabled
		}
		fmt.Fprintf(w, "%-22s %-8s %s\n", name, onOff(r.DefaultEnabled()), onOff(enabled))
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
