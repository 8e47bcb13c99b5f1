package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"resty.dev/v3"

	"vetgate/internal/wizard"
	domainerrors "vetgate/pkg/domain-errors"
)

// Register submits a registration. Without document parts the payload goes as
// plain JSON; with them it becomes a multipart form whose `data` field holds
// the JSON payload (including documents_metadata) and each file travels as a
// `document_<index>` part.
func (c *Client) Register(ctx context.Context, payload wizard.RegistrationPayload, documents []wizard.DocumentPart) error {
	started := time.Now()

	req := c.http.R().SetContext(ctx)
	if len(documents) == 0 {
		res, err := req.SetBody(payload).Post(epRegister)
		return c.finish(epRegister, res, err, started)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "encode registration payload")
	}
	fields := []*resty.MultipartField{{
		Name:   "data",
		Values: []string{string(data)},
	}}
	for _, part := range documents {
		fields = append(fields, &resty.MultipartField{
			Name:        fmt.Sprintf("document_%d", part.Meta.Index),
			FileName:    part.File.Filename,
			ContentType: part.File.ContentType,
			Reader:      bytes.NewReader(part.File.Data),
		})
	}
	res, err := req.SetMultipartFields(fields...).Post(epRegister)
	return c.finish(epRegister, res, err, started)
}

// Login authenticates with an email-or-phone identifier and unwraps the
// double-nested response envelope into the user and token pair.
func (c *Client) Login(ctx context.Context, identifier, password string, rememberMe bool) (User, SessionTokens, error) {
	started := time.Now()
	var envelope loginEnvelope
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"login":       identifier,
			"password":    password,
			"remember_me": rememberMe,
		}).
		SetResult(&envelope).
		Post(epLogin)
	if err := c.finish(epLogin, res, err, started); err != nil {
		return User{}, SessionTokens{}, err
	}
	if !envelope.Success || !envelope.Data.Success {
		return User{}, SessionTokens{}, domainerrors.New(domainerrors.CodeUnauthorized, "login rejected")
	}
	return envelope.Data.Data.User, envelope.Data.Data.Session, nil
}

// CurrentUser fetches the authenticated user's full profile.
func (c *Client) CurrentUser(ctx context.Context) (Me, error) {
	started := time.Now()
	var envelope meEnvelope
	res, err := c.http.R().SetContext(ctx).SetResult(&envelope).Get(epMe)
	if err := c.finish(epMe, res, err, started); err != nil {
		return Me{}, err
	}
	if !envelope.Success {
		return Me{}, domainerrors.New(domainerrors.CodeRemote, "profile fetch rejected")
	}
	return envelope.Data, nil
}

// Logout tears the remote session down. A failure is reported but the local
// session is cleared regardless by the caller.
func (c *Client) Logout(ctx context.Context) error {
	started := time.Now()
	res, err := c.http.R().SetContext(ctx).Post(epLogout)
	return c.finish(epLogout, res, err, started)
}

// Refresh renews the token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (SessionTokens, error) {
	started := time.Now()
	var envelope refreshEnvelope
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"refresh_token": refreshToken}).
		SetResult(&envelope).
		Post(epRefresh)
	if err := c.finish(epRefresh, res, err, started); err != nil {
		return SessionTokens{}, err
	}
	if !envelope.Success {
		return SessionTokens{}, domainerrors.New(domainerrors.CodeUnauthorized, "refresh rejected")
	}
	return envelope.Data, nil
}

// CheckEmail reports whether an email is still available for registration.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	started := time.Now()
	var envelope checkEmailEnvelope
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("email", email).
		SetResult(&envelope).
		Get(epCheckEmail)
	if err := c.finish(epCheckEmail, res, err, started); err != nil {
		return false, err
	}
	return envelope.Available, nil
}

// atoiQuery formats integers for query params.
func atoiQuery(n int) string { return strconv.Itoa(n) }
