package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/tracker"
)

type TodayCmd struct {
	Day      int  `help:"Preview another challenge day (1-30) instead of the current one."`
	Tomorrow bool `help:"Preview tomorrow's schedule."`
	JSON     bool `help:"Print the schedule as JSON."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	if c.Day != 0 || c.Tomorrow {
		return c.preview(ctx)
	}

	day, err := ctx.OpenToday()
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(ctx, day.Schedule)
	}

	progress := day.Session.Progress()
	ctx.println(headerStyle.Render(fmt.Sprintf("Day %d of %d - %s", day.Number, constants.ChallengeDays, day.Date)))
	ctx.printf("%s", renderSchedule(day.Schedule))
	if day.Plan != nil && len(day.Plan.Tasks) > 0 {
		ctx.println(slotStyle.Render("CHALLENGE"))
		ctx.printf("%s", renderPlan(*day.Plan, day.Session.CompletedIDs()))
	}
	ctx.println()
	ctx.printf("%d/%d tasks (%d%%) - %s\n", progress.Completed, progress.Total, progress.Percentage, tracker.Message(progress.Percentage))
	return nil
}

func (c *TodayCmd) preview(ctx *Context) error {
	profile, err := ctx.LoadProfile()
	if err != nil {
		return err
	}

	var sched models.DaySchedule
	if c.Tomorrow {
		sched, err = ctx.synthesizer().Preview(profile, profile.EffectiveDay())
	} else {
		sched, err = ctx.synthesizer().SynthesizeDay(profile, c.Day, nil)
	}
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(ctx, sched)
	}

	ctx.println(headerStyle.Render(fmt.Sprintf("Preview of day %d of %d", sched.Day, constants.ChallengeDays)))
	ctx.printf("%s", renderSchedule(sched))
	ctx.printf("Up to %d points\n", sched.TotalPoints())
	return nil
}

func writeJSON(ctx *Context, v any) error {
	enc := json.NewEncoder(ctx.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
