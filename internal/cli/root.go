package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/engine"
	"github.com/julianstephens/wellpath/internal/logger"
	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/storage"
	"github.com/julianstephens/wellpath/internal/tracker"
	"github.com/julianstephens/wellpath/internal/utils"
)

type Context struct {
	Store       storage.Provider
	UserID      string
	Strategy    engine.Strategy
	Synthesizer *engine.Synthesizer

	// Out receives command output. Nil means stdout.
	Out io.Writer
	// Now is the clock used for "today". Nil means time.Now.
	Now func() time.Time
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) synthesizer() *engine.Synthesizer {
	if c.Synthesizer == nil {
		c.Synthesizer = engine.NewSynthesizer()
	}
	return c.Synthesizer
}

// Today returns the current date in the configured timezone.
func (c *Context) Today() (string, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return "", err
	}
	return c.now().In(loc).Format(constants.DateFormat), nil
}

// LoadProfile returns the onboarded profile for the context user.
func (c *Context) LoadProfile() (models.Profile, error) {
	if c.UserID == "" {
		return models.Profile{}, &engine.ProfileIncompleteError{Field: "user_id"}
	}
	profile, err := c.Store.GetProfile(c.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Profile{}, fmt.Errorf("no profile for user %q, run 'wellpath onboard' first: %w", c.UserID, err)
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if !profile.OnboardingCompleted {
		return models.Profile{}, &engine.ProfileIncompleteError{Field: "onboarding_completed"}
	}
	return profile, nil
}

// OpenToday opens the user's current challenge day for today's date.
func (c *Context) OpenToday() (*tracker.Day, error) {
	profile, err := c.LoadProfile()
	if err != nil {
		return nil, err
	}
	today, err := c.Today()
	if err != nil {
		return nil, err
	}
	return tracker.OpenDay(c.Store, c.synthesizer(), profile, today, tracker.WithClock(c.now))
}

type userMessager interface {
	UserMessage() string
}

// FormatError renders err for the terminal. Typed engine errors show their
// user-facing message; anything else is printed as is.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var um userMessager
	if errors.As(err, &um) {
		logger.Debug("Command failed", "error", err)
		return "Error: " + um.UserMessage()
	}
	return fmt.Sprintf("Error: %v", err)
}
