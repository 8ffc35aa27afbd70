// Package reqres is a client for the ReqRes demo API (https://reqres.in), built on apiclient.
// Every call returns the raw response alongside the decoded body so that tests can check
// status codes for both the success and the error paths.
package reqres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/qaforge/web-tests/apiclient"
	"github.com/qaforge/web-tests/servicedef"
)

const FreeAPIKey = "reqres-free-v1"

type Client struct {
	api *apiclient.Client
}

// New wraps an API client. If apiKey is non-empty it is sent with every request.
func New(opts apiclient.Options, apiKey string) *Client {
	if apiKey != "" {
		headers := make(map[string]string, len(opts.Headers)+1)
		for k, v := range opts.Headers {
			headers[k] = v
		}
		headers[servicedef.APIKeyHeader] = apiKey
		opts.Headers = headers
	}
	return &Client{api: apiclient.New(opts)}
}

// API returns the underlying client, for requests that have no helper here.
func (c *Client) API() *apiclient.Client {
	return c.api
}

func userPath(id int) string {
	return servicedef.PathUsers + "/" + strconv.Itoa(id)
}

func (c *Client) ListUsers(ctx context.Context, page int) (servicedef.UserList, *resty.Response, error) {
	var out servicedef.UserList
	resp, err := c.api.Get(ctx, servicedef.PathUsers,
		apiclient.WithQuery("page", strconv.Itoa(page)), apiclient.WithResult(&out))
	return out, resp, err
}

// GetUser returns the user with the given ID. An unknown ID gives a 404 response, not an error.
func (c *Client) GetUser(ctx context.Context, id int) (servicedef.User, *resty.Response, error) {
	var out servicedef.SingleUser
	resp, err := c.api.Get(ctx, userPath(id), apiclient.WithResult(&out))
	return out.Data, resp, err
}

func (c *Client) CreateUser(ctx context.Context, params servicedef.UserParams) (servicedef.CreatedUser, *resty.Response, error) {
	var out servicedef.CreatedUser
	resp, err := c.api.Post(ctx, servicedef.PathUsers, params, apiclient.WithResult(&out))
	return out, resp, err
}

func (c *Client) UpdateUser(ctx context.Context, id int, params servicedef.UserParams) (servicedef.UpdatedUser, *resty.Response, error) {
	var out servicedef.UpdatedUser
	resp, err := c.api.Put(ctx, userPath(id), params, apiclient.WithResult(&out))
	return out, resp, err
}

func (c *Client) DeleteUser(ctx context.Context, id int) (*resty.Response, error) {
	return c.api.Delete(ctx, userPath(id))
}

// Login posts credentials. An undefined password is sent as null, which the API rejects
// with ErrorMissingPassword.
func (c *Client) Login(ctx context.Context, params servicedef.LoginParams) (servicedef.AuthResult, *resty.Response, error) {
	return c.auth(ctx, servicedef.PathLogin, params)
}

func (c *Client) Register(ctx context.Context, params servicedef.LoginParams) (servicedef.AuthResult, *resty.Response, error) {
	return c.auth(ctx, servicedef.PathRegister, params)
}

func (c *Client) auth(ctx context.Context, path string, params servicedef.LoginParams) (servicedef.AuthResult, *resty.Response, error) {
	var out servicedef.AuthResult
	resp, err := c.api.Post(ctx, path, params, apiclient.WithResult(&out), apiclient.WithError(&out))
	return out, resp, err
}

// Body parses a response body as an untyped JSON value, for checks on fields the typed
// results do not model.
func Body(resp *resty.Response) ldvalue.Value {
	if resp == nil {
		return ldvalue.Null()
	}
	return ldvalue.Parse(resp.Body())
}

// ExpectStatus returns an error unless resp has the given status.
func ExpectStatus(resp *resty.Response, status int) error {
	if resp == nil {
		return fmt.Errorf("expected status %d, got no response", status)
	}
	if resp.StatusCode() != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, resp.StatusCode(), resp.String())
	}
	return nil
}
