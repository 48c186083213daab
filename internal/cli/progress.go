package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/wellpath/internal/constants"
)

type ProgressCmd struct {
	JSON bool `help:"Print the summary as JSON."`
}

func (c *ProgressCmd) Run(ctx *Context) error {
	day, err := ctx.OpenToday()
	if err != nil {
		return err
	}
	sum, err := day.Session.Summary()
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(ctx, sum)
	}

	ctx.println(headerStyle.Render(fmt.Sprintf("Day %d of %d (%d remaining)", sum.Day, constants.ChallengeDays, sum.DaysRemaining)))
	ctx.printf("Today:   %d/%d tasks (%d%%), %d/%d points\n",
		sum.Progress.Completed, sum.Progress.Total, sum.Progress.Percentage,
		sum.Progress.Points, sum.Progress.PossiblePoints)
	ctx.printf("         %s\n", sum.Message)
	ctx.printf("Total:   %d points\n", sum.TotalPoints)

	streak := fmt.Sprintf("Streak:  %d day(s)", sum.Streak)
	if sum.StreakBonus > 0 {
		streak += fmt.Sprintf(" (+%d streak bonus)", sum.StreakBonus)
	}
	ctx.println(streak)

	if len(sum.Badges) > 0 {
		var badges []string
		for _, b := range sum.Badges {
			badges = append(badges, b.Icon+" "+b.Title)
		}
		ctx.printf("Badges:  %s\n", strings.Join(badges, ", "))
	}
	if sum.NextMilestone != nil {
		ctx.printf("Next:    %s %s in %d day(s)\n", sum.NextMilestone.Icon, sum.NextMilestone.Title, sum.NextMilestone.Days-sum.Streak)
	}
	return nil
}
