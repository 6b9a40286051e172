package playstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/playapi/playapi/protocol"
)

// GenerateToken authenticates with email and password and returns the
// long-lived auth token. The token is not stored on the session; callers
// decide whether to install it with Session.SetToken and whether to persist
// it.
func (c *Client) GenerateToken(ctx context.Context, email, password string) (string, error) {
	form := c.loginParams(email, password)
	form.Set("service", "androidmarket")
	form.Set("app", "com.android.vending")
	return c.login(ctx, "login", form)
}

// GenerateAC2DMToken authenticates against the push-registration service.
// The resulting token is consumed by checkin and c2dm registration, not by
// catalog calls.
func (c *Client) GenerateAC2DMToken(ctx context.Context, email, password string) (string, error) {
	form := c.loginParams(email, password)
	form.Set("service", "ac2dm")
	form.Set("add_account", "1")
	form.Set("app", "com.google.android.gsf")
	return c.login(ctx, "ac2dm login", form)
}

func (c *Client) login(ctx context.Context, op string, form url.Values) (string, error) {
	body, err := c.transport.PostForm(ctx, c.base+loginPath, form, defaultHeaders(c.session))
	if err != nil {
		return "", err
	}

	kv := protocol.ParseKeyValues(string(body))
	token, ok := kv["Auth"]
	if !ok {
		return "", &AuthError{Op: op, Reason: kv["Error"]}
	}

	c.logger.Debug().Str("op", op).Msg("authenticated")
	return token, nil
}

// loginParams assembles the parameter set both login variants share. Most
// likely not all of these are required, but the stock client sends them.
func (c *Client) loginParams(email, password string) url.Values {
	lang, country := c.session.LanguageCountry()

	form := url.Values{}
	form.Set("Email", email)
	form.Set("Passwd", password)
	form.Set("accountType", accountType)
	form.Set("has_permission", "1")
	form.Set("source", "android")
	form.Set("device_country", country)
	form.Set("lang", lang)
	form.Set("sdk_version", strconv.Itoa(c.session.Profile().SdkVersion()))
	form.Set("client_sig", clientSignature)
	return form
}

// GenerateGSFID performs the two-step checkin handshake and returns the hex
// device identity. Step one sends a credential-free checkin request and
// receives a numeric device id and a security token; step two re-sends the
// request with both plus the account cookies, matching the identity to the
// account. The identity is returned, not installed on the session, and is
// unusable if step two failed.
func (c *Client) GenerateGSFID(ctx context.Context, email, ac2dmToken string) (string, error) {
	request := c.session.Profile().CheckinRequest()

	resp, err := c.checkin(ctx, request)
	if err != nil {
		return "", fmt.Errorf("checkin step 1: %w", err)
	}
	gsfID := strconv.FormatUint(resp.AndroidID, 16)

	request = c.session.Profile().CheckinRequest()
	request.ID = int64(resp.AndroidID)
	request.SecurityToken = resp.SecurityToken
	request.AccountCookie = []string{"[" + email + "]", ac2dmToken}

	if _, err := c.checkin(ctx, request); err != nil {
		return "", fmt.Errorf("checkin step 2: %w", err)
	}

	c.logger.Debug().Str("gsf_id", gsfID).Msg("device identity established")
	return gsfID, nil
}

// checkin posts one checkin request and decodes the response.
func (c *Client) checkin(ctx context.Context, request *protocol.CheckinRequest) (*protocol.CheckinResponse, error) {
	headers := defaultHeaders(c.session)
	headers["Content-Type"] = "application/x-protobuffer"

	body, err := c.transport.Post(ctx, c.base+checkinPath, protocol.Marshal(request), headers)
	if err != nil {
		return nil, err
	}
	return protocol.ParseCheckinResponse(body)
}

// C2DMRegister registers an application for push messages and returns the
// server's key=value response. It requires a session with a device
// identity and performs an ac2dm login internally.
func (c *Client) C2DMRegister(ctx context.Context, application, sender, email, password string) (map[string]string, error) {
	gsfID := c.session.GSFID()
	if gsfID == "" {
		return nil, fmt.Errorf("c2dm register: session has no device identity")
	}
	deviceID, err := strconv.ParseUint(gsfID, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("c2dm register: malformed device identity %q: %w", gsfID, err)
	}

	token, err := c.GenerateAC2DMToken(ctx, email, password)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("app", application)
	form.Set("sender", sender)
	form.Set("device", strconv.FormatUint(deviceID, 10))

	headers := defaultHeaders(c.session)
	headers["Authorization"] = "GoogleLogin auth=" + token

	body, err := c.transport.PostForm(ctx, c.base+c2dmRegisterPath, form, headers)
	if err != nil {
		return nil, err
	}
	return protocol.ParseKeyValues(string(body)), nil
}
