package handler

const (
	// DateTimeLocalFormat is the layout of the datetime-local input on the
	// post form
	DateTimeLocalFormat = "2006-01-02T15:04"

	// loginPath is where auth-required flows send anonymous users
	loginPath = "/auth/login"
)
