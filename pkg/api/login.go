package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CaptchaRequiredError indicates that the server requires a reCAPTCHA
// verification before the login can continue.
type CaptchaRequiredError struct {
	// RecaptchaURL is the address where the reCAPTCHA can be solved.
	RecaptchaURL string
}

// Error implements error.Error.
func (e *CaptchaRequiredError) Error() string {
	return "a reCAPTCHA verification is required to log in: " + e.RecaptchaURL
}

// TOTPRequiredError indicates that the account has two-factor authentication
// enabled and a verification code is required to finish the login.
type TOTPRequiredError struct {
	// Token is the two-factor token to pass to TOTPVerify together with the
	// verification code.
	Token string
}

// Error implements error.Error.
func (e *TOTPRequiredError) Error() string {
	return "a two-factor verification code is required to log in"
}

// LoginKey is the API key produced by a successful login.
type LoginKey struct {
	Key       string `json:"key"`
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"user_id"`
	Source    string `json:"source"`
	Revoked   bool   `json:"revoked"`
}

// loginResponse is the union of the fields that the login endpoint can
// return. The variants are discriminated by their marker fields.
type loginResponse struct {
	Success bool `json:"success"`

	// Key is present on successful logins.
	Key *LoginKey `json:"key"`

	// RecaptchaNeeded and RecaptchaURL are present when a reCAPTCHA
	// verification is required.
	RecaptchaNeeded bool   `json:"recaptcha_needed"`
	RecaptchaURL    string `json:"recaptcha_url"`

	// TOTPNeeded and Token are present when two-factor verification is
	// required.
	TOTPNeeded bool   `json:"totp_needed"`
	Token      string `json:"token"`
}

// resolve converts a login response into a key or a typed error.
func (r *loginResponse) resolve() (*LoginKey, error) {
	if r.RecaptchaNeeded {
		return nil, &CaptchaRequiredError{RecaptchaURL: r.RecaptchaURL}
	}
	if r.TOTPNeeded {
		return nil, &TOTPRequiredError{Token: r.Token}
	}
	if r.Key == nil {
		return nil, fmt.Errorf("login response carries no API key")
	}
	return r.Key, nil
}

// Login retrieves an API key from username and password authentication. The
// recaptchaResponse parameter may be empty; if the server demands a
// verification, a CaptchaRequiredError is returned. If the account has
// two-factor authentication enabled, a TOTPRequiredError carrying the
// verification token is returned and the login must be finished with
// TOTPVerify.
func (c *Client) Login(ctx context.Context, username, password, recaptchaResponse string) (*LoginKey, error) {
	form := url.Values{
		"username":        {username},
		"password":        {password},
		"force_recaptcha": {"false"},
		"source":          {"desktop"},
	}
	if recaptchaResponse != "" {
		form.Set("recaptcha_response", recaptchaResponse)
	}

	response := &loginResponse{}
	if err := c.callJSON(ctx, http.MethodPost, V2("login"), withFormBody(form), response); err != nil {
		return nil, fmt.Errorf("unable to log in: %w", err)
	}
	return response.resolve()
}

// TOTPVerify completes a login with the two-factor verification code.
func (c *Client) TOTPVerify(ctx context.Context, token string, code uint64) (*LoginKey, error) {
	form := url.Values{
		"token": {token},
		"code":  {strconv.FormatUint(code, 10)},
	}

	response := &loginResponse{}
	if err := c.callJSON(ctx, http.MethodPost, V2("totp/verify"), withFormBody(form), response); err != nil {
		return nil, fmt.Errorf("unable to verify two-factor code: %w", err)
	}
	return response.resolve()
}
