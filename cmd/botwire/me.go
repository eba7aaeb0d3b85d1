package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the bot account the token belongs to",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		u, err := c.GetMe(cmd.Context())
		if err != nil {
			return err
		}
		color.Green("✓ authorized as @%s (%s, id %d)", u.Username, u.FirstName, u.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
}
