package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <username>",
	Short: "Issue a bearer token for an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db, log)

		app, err := NewCompositionRoot(cfg, db, log)
		if err != nil {
			return err
		}
		defer app.Close()

		u, err := app.FindUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		raw, err := app.Tokens().Issue(u.ID.String(), u.Username, u.Role)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), raw)
		return err
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
