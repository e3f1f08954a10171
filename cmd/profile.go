package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lectiz/internal/profile"
	"github.com/abhisek/lectiz/internal/quiz"
)

var registerCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Create a profile and make it active",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := newProfileService(st).Register(cmd.Context(), strings.Join(args, " "))
		switch {
		case errors.Is(err, profile.ErrEmptyName):
			return fmt.Errorf("name must not be empty")
		case errors.Is(err, profile.ErrNotRemembered):
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
		case err != nil:
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s). Starting level: %s\n", p.DisplayName, p.ID, p.StartingDifficulty())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out the active profile (data is kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := newProfileService(st)
		p, err := svc.Resume(cmd.Context())
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No active profile.")
			return nil
		}
		if err := svc.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged out %s.\n", p.DisplayName)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the active profile's reading attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := newProfileService(st).Resume(cmd.Context())
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("no active profile; run `lectiz register <name>` first")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s, next level: %s\n\n", p.DisplayName, p.StartingDifficulty())
		if len(p.History) == 0 {
			fmt.Fprintln(out, "No attempts yet.")
			return nil
		}
		printReport(out, historyReport(p.History, limit))
		fmt.Fprintf(out, "%d attempts\n", len(p.History))
		return nil
	},
}

// historyReport lists attempts newest first, at most limit rows when limit
// is positive.
func historyReport(history []quiz.Attempt, limit int) *report {
	r := newReport("Date", "Score", "%", "Difficulty").alignRight(1, 2)
	for i := len(history) - 1; i >= 0; i-- {
		if limit > 0 && len(r.rows) == limit {
			break
		}
		a := history[i]
		r.add(
			a.Timestamp.Local().Format(timestampLayout),
			fmt.Sprintf("%d/%d", a.Score, a.QuestionCount),
			fmt.Sprintf("%.0f%%", a.Accuracy()*100),
			string(a.Difficulty),
		)
	}
	return r
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 0, "Number of attempts to show (0 = all)")
}
