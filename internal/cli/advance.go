package cli

import (
	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/tracker"
)

type AdvanceCmd struct{}

func (c *AdvanceCmd) Run(ctx *Context) error {
	if _, err := ctx.LoadProfile(); err != nil {
		return err
	}
	day, err := tracker.AdvanceDay(ctx.Store, ctx.UserID)
	if err != nil {
		return err
	}
	ctx.printf("Advanced to day %d of %d\n", day, constants.ChallengeDays)
	return nil
}
