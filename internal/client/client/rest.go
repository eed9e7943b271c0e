package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactdir/internal/client/models"
	"github.com/dmitrijs2005/contactdir/internal/common"
	"github.com/dmitrijs2005/contactdir/internal/logging"
	"github.com/dmitrijs2005/contactdir/internal/netx"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	pathMe       = "/api/auth/me"
	pathSignup   = "/api/auth/signup"
	pathLogin    = "/login"
	pathLogout   = "/logout"
	pathContacts = "/api/contacts"
	pathContact  = "/api/contacts/{id}"
	pathPicture  = "/api/contacts/{id}/picture"
	pathExport   = "/api/contacts/export"
)

// RESTClient implements Client on top of resty. The underlying resty client
// owns a cookie jar, so the session cookie set by Login or Signup is sent
// with every later call.
type RESTClient struct {
	http *resty.Client
	log  logging.Logger
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient returns a client for the backend at baseURL. timeout bounds
// every request; zero disables the bound.
func NewRESTClient(baseURL string, timeout time.Duration, log logging.Logger) *RESTClient {
	if log == nil {
		log = logging.Nop()
	}

	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{log: log})

	c := &RESTClient{http: r, log: log}

	r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(common.RequestIDHeaderName) == "" {
			req.SetHeader(common.RequestIDHeaderName, uuid.NewString())
		}
		return nil
	})
	r.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.log.Debug(resp.Request.Context(), "request completed",
			"method", resp.Request.Method,
			"path", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
			"request_id", resp.Request.Header.Get(common.RequestIDHeaderName),
		)
		return nil
	})
	r.OnError(func(req *resty.Request, err error) {
		c.log.Warn(req.Context(), "request failed",
			"method", req.Method,
			"path", req.URL,
			"request_id", req.Header.Get(common.RequestIDHeaderName),
			"error", err,
		)
	})

	return c
}

func (c *RESTClient) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// mapError converts a resty transport error into the package taxonomy.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if netx.IsTransportError(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// checkStatus turns a non-2xx response into *APIError.
func checkStatus(op string, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	return fmt.Errorf("%s: %w", op, newAPIError(resp.StatusCode(), resp.Body()))
}

func decode(op string, resp *resty.Response, v any) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}
	return nil
}

// Me returns the identity bound to the current session cookie.
func (c *RESTClient) Me(ctx context.Context) (*AuthStatus, error) {
	resp, err := c.request(ctx).Get(pathMe)
	if err != nil {
		return nil, mapError("me", err)
	}
	if err := checkStatus("me", resp); err != nil {
		return nil, err
	}

	var st AuthStatus
	if err := decode("me", resp, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Login posts the credentials as a form, the way a browser login page does.
// The backend answers with a redirect; landing on a URL that carries an
// "error" marker means the credentials were rejected.
func (c *RESTClient) Login(ctx context.Context, username string, password []byte) error {
	resp, err := c.request(ctx).
		SetHeader("Accept", "text/html,application/json").
		SetFormData(map[string]string{
			"username": username,
			"password": string(password),
		}).
		Post(pathLogin)
	if err != nil {
		return mapError("login", err)
	}
	if err := checkStatus("login", resp); err != nil {
		return err
	}
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		if raw.Request.URL.Query().Has("error") {
			return fmt.Errorf("login: %w", &APIError{Kind: ErrUnauthorized, Status: http.StatusUnauthorized, Message: "Invalid username or password."})
		}
	}
	return nil
}

// Signup registers a new account. The backend logs the new user in on 201.
func (c *RESTClient) Signup(ctx context.Context, username string, password []byte) error {
	resp, err := c.request(ctx).
		SetBody(map[string]string{
			"username": username,
			"password": string(password),
		}).
		Post(pathSignup)
	if err != nil {
		return mapError("signup", err)
	}
	return checkStatus("signup", resp)
}

// Logout ends the server session.
func (c *RESTClient) Logout(ctx context.Context) error {
	resp, err := c.request(ctx).
		SetHeader("Accept", "text/html,application/json").
		Post(pathLogout)
	if err != nil {
		return mapError("logout", err)
	}
	return checkStatus("logout", resp)
}

// ListContacts fetches the directory. An empty search means no filter, so
// the query parameter is omitted entirely.
func (c *RESTClient) ListContacts(ctx context.Context, search string) ([]models.Contact, error) {
	req := c.request(ctx)
	if search != "" {
		req.SetQueryParam("search", search)
	}
	resp, err := req.Get(pathContacts)
	if err != nil {
		return nil, mapError("list contacts", err)
	}
	if err := checkStatus("list contacts", resp); err != nil {
		return nil, err
	}

	var out []models.Contact
	if err := decode("list contacts", resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// formRequest encodes a submission as multipart/form-data. The picture part
// is attached only when a file was selected; the backend accepts both.
func (c *RESTClient) formRequest(ctx context.Context, form models.ContactForm) *resty.Request {
	req := c.request(ctx).SetMultipartFormData(map[string]string{
		"name":    form.Name,
		"address": form.Address,
	})
	if form.HasPicture() {
		ct := form.Picture.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		req.SetMultipartField("picture", form.Picture.FileName, ct, bytes.NewReader(form.Picture.Data))
	}
	return req
}

// CreateContact adds a contact owned by the current user.
func (c *RESTClient) CreateContact(ctx context.Context, form models.ContactForm) error {
	resp, err := c.formRequest(ctx, form).Post(pathContacts)
	if err != nil {
		return mapError("create contact", err)
	}
	return checkStatus("create contact", resp)
}

// UpdateContact replaces name and address of a contact, and its picture when
// the form carries one.
func (c *RESTClient) UpdateContact(ctx context.Context, id models.ID, form models.ContactForm) error {
	resp, err := c.formRequest(ctx, form).
		SetPathParam("id", id.String()).
		Put(pathContact)
	if err != nil {
		return mapError("update contact", err)
	}
	return checkStatus("update contact", resp)
}

// DeleteContact removes a contact. Only 204 No Content counts as success.
func (c *RESTClient) DeleteContact(ctx context.Context, id models.ID) error {
	resp, err := c.request(ctx).
		SetPathParam("id", id.String()).
		Delete(pathContact)
	if err != nil {
		return mapError("delete contact", err)
	}
	if resp.StatusCode() == http.StatusNoContent {
		return nil
	}
	if err := checkStatus("delete contact", resp); err != nil {
		return err
	}
	return fmt.Errorf("delete contact: %w", &APIError{
		Kind:    ErrUnexpectedStatus,
		Status:  resp.StatusCode(),
		Message: ExtractMessage(resp.Body()),
	})
}

// Picture downloads the picture of a contact. version is sent as the ts
// query parameter so a changed contact never hits a stale HTTP cache entry.
func (c *RESTClient) Picture(ctx context.Context, id models.ID, version models.Version) ([]byte, string, error) {
	req := c.request(ctx).
		SetHeader("Accept", "image/*").
		SetPathParam("id", id.String())
	if version != "" {
		req.SetQueryParam("ts", string(version))
	}
	resp, err := req.Get(pathPicture)
	if err != nil {
		return nil, "", mapError("picture", err)
	}
	if err := checkStatus("picture", resp); err != nil {
		return nil, "", err
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}

// Export downloads the CSV export of the directory.
func (c *RESTClient) Export(ctx context.Context) ([]byte, error) {
	resp, err := c.request(ctx).
		SetHeader("Accept", "text/csv").
		Get(pathExport)
	if err != nil {
		return nil, mapError("export", err)
	}
	if err := checkStatus("export", resp); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// restyLogger routes resty's internal warnings into the structured logger.
type restyLogger struct {
	log logging.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error(context.Background(), fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Warn(context.Background(), fmt.Sprintf(format, v...), "component", "resty")
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Debug(context.Background(), fmt.Sprintf(format, v...), "component", "resty")
}
