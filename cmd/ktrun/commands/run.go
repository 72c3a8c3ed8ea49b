package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [targets...]",
		Short: "Run the specified test targets, or all targets when none are given",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parallelism, err := cmd.Flags().GetInt("parallelism")
			if err != nil {
				return err
			}
			c.app.SetParallelism(parallelism)
			return c.app.Run(cmd.Context(), args)
		},
	}
	cmd.Flags().IntP("parallelism", "p", 0, "Maximum number of targets run concurrently (0 = number of CPUs)")
	return cmd
}
