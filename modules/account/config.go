package account

// Config holds the account module's routing configuration.
type Config struct {
	// PostLoginRedirect is where OAuth callbacks land when the original
	// request carried no explicit callback URL.
	PostLoginRedirect string `env:"ACCOUNT_POST_LOGIN_REDIRECT" envDefault:"/dashboard"`

	// SignInPath is where failed OAuth callbacks send the browser, with an
	// error code in the query string.
	SignInPath string `env:"ACCOUNT_SIGNIN_PATH" envDefault:"/auth/login"`

	// CallbackParam names the query parameter carrying the post-login
	// destination through the OAuth round trip.
	CallbackParam string `env:"ACCOUNT_CALLBACK_PARAM" envDefault:"callbackUrl"`
}
