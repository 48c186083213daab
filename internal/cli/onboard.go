package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/wellpath/internal/backup"
	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/engine"
	"github.com/julianstephens/wellpath/internal/logger"
	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/storage"
	"github.com/julianstephens/wellpath/internal/utils"
)

type OnboardCmd struct {
	Name  string `help:"Display name."`
	Start string `help:"Challenge start date (YYYY-MM-DD). Defaults to today."`
	From  string `help:"Read survey answers from a YAML file instead of prompting." type:"existingfile"`
	Force bool   `help:"Restart the challenge even if onboarding was already completed."`
}

func (c *OnboardCmd) Run(ctx *Context) error {
	existing, err := ctx.Store.GetProfile(ctx.UserID)
	switch {
	case err == nil:
		if existing.OnboardingCompleted && !c.Force {
			return fmt.Errorf("user %q has already completed onboarding; use --force to restart the challenge", ctx.UserID)
		}
		if existing.OnboardingCompleted {
			if err := ctx.snapshotBefore(backup.ReasonOnboard); err != nil {
				return err
			}
		}
	case errors.Is(err, storage.ErrNotFound):
		existing = models.Profile{UserID: ctx.UserID}
	default:
		return fmt.Errorf("failed to load profile: %w", err)
	}

	var answers SurveyAnswers
	if c.From != "" {
		answers, err = LoadSurvey(c.From)
		if err != nil {
			return err
		}
	} else {
		answers.DisplayName = existing.DisplayName
		if err := NewSurveyForm(&answers).Run(); err != nil {
			return fmt.Errorf("survey cancelled: %w", err)
		}
	}
	if c.Name != "" {
		answers.DisplayName = c.Name
	}

	start := c.Start
	if start == "" {
		if start, err = ctx.Today(); err != nil {
			return err
		}
	}

	_, err = ctx.Onboard(existing, answers, start)
	return err
}

// Onboard applies the survey to profile, restarts the challenge on start
// and saves both the profile and the generated challenge.
func (c *Context) Onboard(profile models.Profile, answers SurveyAnswers, start string) (models.Challenge, error) {
	if err := answers.Validate(); err != nil {
		return models.Challenge{}, err
	}
	if _, err := utils.ParseDate(start); err != nil {
		return models.Challenge{}, fmt.Errorf("invalid start date: %w", err)
	}

	profile = answers.Apply(profile)
	profile.UserID = c.UserID
	profile.ChallengeStartDate = start
	profile.CurrentDay = constants.FirstDay
	profile.OnboardingCompleted = true

	gen, err := engine.NewGenerator(c.strategy())
	if err != nil {
		return models.Challenge{}, err
	}
	ch, err := gen.Generate(profile)
	if err != nil {
		return models.Challenge{}, err
	}

	if err := c.Store.SaveProfile(profile); err != nil {
		return models.Challenge{}, fmt.Errorf("failed to save profile: %w", err)
	}
	if err := c.Store.SaveChallenge(profile.UserID, ch); err != nil {
		return models.Challenge{}, fmt.Errorf("failed to save challenge: %w", err)
	}
	logger.Info("Challenge generated", "user", profile.UserID, "start", start, "strategy", ch.Strategy, "points", ch.EstimatedPoints)

	name := profile.DisplayName
	if name == "" {
		name = profile.UserID
	}
	c.printf("Welcome, %s! Your %d-day challenge starts on %s.\n", name, ch.TotalDays, ch.StartDate)
	if len(ch.FocusAreas) > 0 {
		c.printf("Focus areas: %s\n", strings.Join(ch.FocusAreas, ", "))
	} else {
		c.println("Focus areas: daily essentials")
	}
	c.printf("Estimated points: %d\n", ch.EstimatedPoints)
	return ch, nil
}

func (c *Context) strategy() engine.Strategy {
	if len(c.Strategy.Rules) == 0 {
		return engine.DefaultStrategy()
	}
	return c.Strategy
}
