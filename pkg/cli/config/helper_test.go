package config_test

import (
	"context"
	"testing"

	"github.com/urfave/cli/v3"
)

func flagNames(flags []cli.Flag) []string {
	var names []string
	for _, f := range flags {
		names = append(names, f.Names()[0])
	}
	return names
}

// runCommand parses args against flags and runs action with the parsed command
func runCommand(t *testing.T, flags []cli.Flag, args []string, action func(cmd *cli.Command) error) error {
	t.Helper()
	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return action(c)
		},
	}
	return cmd.Run(context.Background(), append([]string{"test"}, args...))
}
