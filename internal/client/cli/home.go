package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/onboarding/internal/client/models"
	"github.com/dmitrijs2005/onboarding/internal/client/viewmodel"
)

var errOnboardingClosed = errors.New("onboarding closed")

// home is what the user lands on after any successful sign-in. New users
// are walked through onboarding first.
func (a *App) home(ctx context.Context, u *models.User) error {
	a.setUser(u)
	printlnFn(fmt.Sprintf("Welcome, %s!", u.Fullname))

	if u.HasSeenOnboarding {
		return nil
	}
	err := a.presentOnboarding(ctx)
	if errors.Is(err, errOnboardingClosed) {
		return nil
	}
	return err
}

// Whoami prints the current profile.
func (a *App) Whoami(ctx context.Context) error {
	u, err := a.profiles.FetchCurrentUser(ctx)
	if err != nil {
		a.showError("Error fetching user", err)
		return err
	}
	a.setUser(u)

	printlnFn(fmt.Sprintf("uid:        %s", u.UID))
	printlnFn(fmt.Sprintf("email:      %s", u.Email))
	printlnFn(fmt.Sprintf("fullname:   %s", u.Fullname))
	printlnFn(fmt.Sprintf("onboarded:  %t", u.HasSeenOnboarding))
	return nil
}

// Onboarding replays the walkthrough on request.
func (a *App) Onboarding(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("You need to log in first.")
		return nil
	}
	err := a.presentOnboarding(ctx)
	if errors.Is(err, errOnboardingClosed) {
		return nil
	}
	return err
}

// presentOnboarding pages through the walkthrough. Enter moves forward,
// "b" goes back and "q" closes it without finishing. Pressing Enter on the
// last page is "Get Started", which records that onboarding was seen.
func (a *App) presentOnboarding(ctx context.Context) error {
	pages := viewmodel.Pages(a.config.OnboardingPages)
	vm := viewmodel.NewOnboarding(len(pages))
	getStarted := viewmodel.ButtonStyle{Enabled: true, Background: viewmodel.Purple, Title: viewmodel.White}

	for i := 0; i < len(pages); {
		p := pages[i]
		printlnFn(fmt.Sprintf("\n[%d/%d] %s\n%s\n", i+1, len(pages), p.Title, p.Description))

		prompt := "Enter: next, b: back, q: close"
		if vm.ShouldShowGetStartedButton(i) {
			printlnFn(getStarted.Render("Get Started"))
			prompt = "Enter: get started, b: back, q: close"
		}

		answer, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}

		switch strings.ToLower(answer) {
		case "q":
			return errOnboardingClosed
		case "b":
			if i > 0 {
				i--
			}
			continue
		}

		if !vm.ShouldShowGetStartedButton(i) {
			i++
			continue
		}

		u, err := a.profiles.MarkOnboardingSeen(ctx)
		if err != nil {
			a.showError("Error updating user", err)
			return err
		}
		a.setUser(u)
		printlnFn("You're all set!")
		return nil
	}
	return nil
}
