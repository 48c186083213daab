package cli

import (
	"fmt"

	"github.com/julianstephens/wellpath/internal/constants"
)

type CompleteCmd struct {
	TaskID string `arg:"" help:"ID of the task to complete (see 'wellpath today')."`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	day, err := ctx.OpenToday()
	if err != nil {
		return err
	}

	res, err := day.Complete(c.TaskID)
	if err != nil {
		return err
	}

	if !res.Created {
		ctx.printf("Already completed today: %s\n", c.TaskID)
	} else {
		ctx.println(successStyle.Render(fmt.Sprintf("✓ Completed %s (+%d points)", c.TaskID, res.Record.PointsEarned)))
	}
	if res.PerfectDayAwarded {
		ctx.println(successStyle.Render(fmt.Sprintf("🏆 Perfect day! +%d bonus points", constants.PerfectDayBonus)))
	}
	ctx.printf("%d/%d tasks (%d%%), %d total points\n", res.Progress.Completed, res.Progress.Total, res.Progress.Percentage, res.TotalPoints)
	return nil
}
