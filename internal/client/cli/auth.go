package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/onboarding/internal/client/viewmodel"
	"github.com/dmitrijs2005/onboarding/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errIncompleteForm = errors.New("form is incomplete")

// submit draws the form's submit button and refuses incomplete forms.
func (a *App) submit(f viewmodel.Form, label string) error {
	printlnFn(viewmodel.ButtonTint(f).Render(label))
	if !f.FormIsValid() {
		printlnFn("Please fill in all fields.")
		return errIncompleteForm
	}
	return nil
}

func (a *App) showError(prefix string, err error) {
	printlnFn(prefix + ": " + err.Error())
}

// authenticateUser shows the login prompt when nobody is signed in.
func (a *App) authenticateUser(ctx context.Context) {
	if a.isLoggedIn() {
		return
	}
	if a.restored {
		a.restored = false
		if err := a.resume(ctx); err == nil {
			return
		}
	}
	printlnFn("You are not logged in. Use 'login', 'register', 'google' or 'reset'.")
}

// resume picks up the session saved by a previous run. A session the
// server no longer accepts is dropped.
func (a *App) resume(ctx context.Context) error {
	u, err := a.profiles.FetchCurrentUser(ctx)
	if err != nil {
		a.logger.Info(ctx, "saved session rejected", "error", err)
		a.auth.Logout(ctx)
		return err
	}
	return a.home(ctx, u)
}

// Login signs in with email and password, then opens the home screen.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.submit(viewmodel.LoginForm{Email: email, Password: string(password)}, "Log In"); err != nil {
		return err
	}

	if _, err := a.auth.Login(ctx, email, string(password)); err != nil {
		a.showError("Error logging in", err)
		return err
	}

	u, err := a.profiles.FetchCurrentUser(ctx)
	if err != nil {
		a.showError("Error fetching user", err)
		a.auth.Logout(ctx)
		return err
	}
	return a.home(ctx, u)
}

// Register creates an account and its profile, then opens the home screen.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	fullname, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := viewmodel.RegistrationForm{Email: email, Password: string(password), Fullname: fullname}
	if err := a.submit(form, "Sign Up"); err != nil {
		return err
	}

	u, err := a.auth.Register(ctx, email, string(password), fullname)
	if err != nil {
		a.showError("Error signing up", err)
		return err
	}
	return a.home(ctx, u)
}

// Google runs "Sign in with Google", then opens the home screen.
func (a *App) Google(ctx context.Context) error {
	u, err := a.auth.SignInWithFederatedProvider(ctx, a.presenter)
	if err != nil {
		a.showError("Error signing in with Google", err)
		return err
	}
	return a.home(ctx, u)
}

// ResetPassword asks the server to email a reset link.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if err := a.submit(viewmodel.ResetPasswordForm{Email: email}, "Send Reset Link"); err != nil {
		return err
	}

	if err := a.auth.ResetPassword(ctx, email); err != nil {
		a.showError("Error sending reset link", err)
		return err
	}
	printlnFn("We sent a link to your email to reset your password.")
	return nil
}

// NewPassword completes a reset with the token from the emailed link.
func (a *App) NewPassword(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if token == "" || len(password) == 0 {
		printlnFn("Please fill in all fields.")
		return errIncompleteForm
	}

	if err := a.api.ConfirmPasswordReset(ctx, token, string(password)); err != nil {
		a.showError("Error setting new password", err)
		return err
	}
	printlnFn("Password updated. You can log in now.")
	return nil
}

// Logout ends the session and goes back to the login prompt. It never fails.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.setUser(nil)
	printlnFn("Logged out.")
	a.authenticateUser(ctx)
	return nil
}
