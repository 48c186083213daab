package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/wellpath/internal/engine"
	"github.com/julianstephens/wellpath/internal/storage"
	"github.com/julianstephens/wellpath/internal/tracker"
)

type ChallengeShowCmd struct {
	Day  int  `arg:"" optional:"" help:"Challenge day to show (1-30). Defaults to the current day."`
	JSON bool `help:"Print the day plan as JSON."`
}

func (c *ChallengeShowCmd) Run(ctx *Context) error {
	profile, err := ctx.LoadProfile()
	if err != nil {
		return err
	}
	ch, err := ctx.Store.LoadChallenge(ctx.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no challenge saved, run 'wellpath onboard' first: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to load challenge: %w", err)
	}

	day := c.Day
	if day == 0 {
		day = profile.EffectiveDay()
	}
	plan, err := engine.ChallengeDay(ch, day)
	if err != nil {
		return err
	}

	if c.JSON {
		return writeJSON(ctx, plan)
	}

	// Completions are keyed by the calendar date they happened on, which
	// for the current day is today rather than the planned date.
	date := plan.Date
	if day == profile.EffectiveDay() {
		if date, err = ctx.Today(); err != nil {
			return err
		}
	}
	records, err := ctx.Store.GetCompletionsForDate(ctx.UserID, date)
	if err != nil {
		return fmt.Errorf("failed to load completions: %w", err)
	}
	completed := tracker.CompletedIDs(records)

	ctx.println(headerStyle.Render(fmt.Sprintf("Challenge day %d of %d (%s)", plan.Day, ch.TotalDays, plan.Date)))
	ctx.printf("%s", renderPlan(plan, completed))
	ctx.printf("Day total: %d points\n", plan.TotalPoints)
	return nil
}
