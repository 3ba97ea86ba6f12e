package root

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kosharny/ThunderpickMove/internal/engine"
	"github.com/kosharny/ThunderpickMove/internal/ui"
)

func newBattleCmd() *cobra.Command {
	var rounds int

	cmd := &cobra.Command{
		Use:   "battle",
		Short: "Answer today's body-language battle questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			questions := engine.DailyBattleQuestions(a.svc.Now())
			if rounds > 0 && rounds < len(questions) {
				questions = questions[:rounds]
			}

			out := cmd.OutOrStdout()
			in := bufio.NewScanner(cmd.InOrStdin())
			fmt.Fprintln(out, ui.Heading(ui.IconSwords, "Body Language Battle"))

			answers := make([]string, 0, len(questions))
			for i, q := range questions {
				fmt.Fprintln(out, "")
				fmt.Fprintf(out, "%s %s\n", ui.H2.Render(fmt.Sprintf("%d/%d", i+1, len(questions))), q.Scenario)
				fmt.Fprintln(out, ui.Muted.Render(q.Description))
				for j, o := range q.Options {
					fmt.Fprintf(out, "  %d) %s\n", j+1, o)
				}
				fmt.Fprint(out, ui.Key.Render("> "))
				if !in.Scan() {
					break
				}
				answer := pickOption(q.Options, in.Text())
				answers = append(answers, answer)
				if answer == q.CorrectAnswer {
					fmt.Fprintln(out, ui.Good.Render("Correct"))
				} else {
					fmt.Fprintln(out, ui.Bad.Render("Wrong")+" "+ui.Muted.Render("→ "+q.CorrectAnswer))
				}
			}
			if err := in.Err(); err != nil {
				return fmt.Errorf("read answers: %w", err)
			}

			score := engine.ScoreBattle(questions, answers)
			before := a.svc.Progress(ctx)
			p := a.svc.FinishBattle(ctx, score, len(questions))

			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Score", fmt.Sprintf("%d/%d (+%d XP)", score, len(questions), score*engine.BattleXPPerAnswer)))
			if score == len(questions) && score > 0 {
				fmt.Fprintln(out, ui.Gold.Render(fmt.Sprintf("%s Perfect round! +%d body score", ui.IconTrophy, engine.PerfectBattleBonus)))
			}
			printNewBadges(cmd, before.UnlockedBadges, p.UnlockedBadges)
			return nil
		},
	}

	cmd.Flags().IntVarP(&rounds, "rounds", "n", 0, "Limit the number of questions (0 = full round)")
	return cmd
}

// pickOption accepts a 1-based option number or the option text.
func pickOption(options []string, input string) string {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	for _, o := range options {
		if strings.EqualFold(o, input) {
			return o
		}
	}
	return input
}
