package viewmodel

// OnboardingPage is one screen of the first-run walkthrough.
type OnboardingPage struct {
	Title       string
	Description string
}

// DefaultOnboardingPages is the walkthrough shown to new users.
var DefaultOnboardingPages = []OnboardingPage{
	{
		Title:       "Metrics",
		Description: "Extract valuable insights and come up with data driven product initiatives to help grow your business",
	},
	{
		Title:       "Dashboard",
		Description: "Everything you need all in one place, available through our dashboard feature",
	},
	{
		Title:       "Get Notified",
		Description: "Get notified when important stuff is happening, so you don't miss out on the action",
	},
}

type Onboarding struct {
	itemCount int
}

func NewOnboarding(itemCount int) Onboarding {
	return Onboarding{itemCount: itemCount}
}

// ShouldShowGetStartedButton is true only on the last page.
func (o Onboarding) ShouldShowGetStartedButton(index int) bool {
	return index == o.itemCount-1
}

// Pages returns the first n default pages; n outside 1..len falls back to all of them.
func Pages(n int) []OnboardingPage {
	if n <= 0 || n > len(DefaultOnboardingPages) {
		n = len(DefaultOnboardingPages)
	}
	return DefaultOnboardingPages[:n]
}
