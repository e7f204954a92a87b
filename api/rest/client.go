package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/CircleCI-Public/circleci-env-vars/settings"
	"github.com/CircleCI-Public/circleci-env-vars/version"
)

// Client performs JSON requests against the CircleCI v1.1 REST API.
// The token is sent as the circle-token query parameter on every request.
type Client struct {
	baseURL     *url.URL
	circleToken string
	client      *http.Client
}

// New returns a Client rooted at baseURL. A nil httpClient means http.DefaultClient.
func New(baseURL *url.URL, circleToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:     baseURL,
		circleToken: circleToken,
		client:      httpClient,
	}
}

// NewFromConfig builds a Client from the host, endpoint, token and HTTP client in cfg.
func NewFromConfig(cfg *settings.Config) (*Client, error) {
	u, err := cfg.ServerURL()
	if err != nil {
		return nil, err
	}
	return New(u, cfg.Token, cfg.HTTPClient), nil
}

// NewRequest resolves u against the base URL, appends the token to the query
// parameters already set on u and JSON encodes payload when it is not nil.
func (c *Client) NewRequest(method string, u *url.URL, payload interface{}) (req *http.Request, err error) {
	var r io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		r = buf
		err = json.NewEncoder(buf).Encode(payload)
		if err != nil {
			return nil, err
		}
	}

	resolved := c.baseURL.ResolveReference(u)
	params := resolved.Query()
	params.Set("circle-token", c.circleToken)
	resolved.RawQuery = params.Encode()

	req, err = http.NewRequest(method, resolved.String(), r)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// DoRequest sends req. A 200 or 201 response body is decoded into resp when
// both are non-empty; any other status is returned as an *HTTPError.
func (c *Client) DoRequest(req *http.Request, resp interface{}) (statusCode int, err error) {
	httpResp, err := c.client.Do(req)
	if err != nil {
		// url.Error carries the full URL, token included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = req.URL.Path
		}
		return 0, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return httpResp.StatusCode, errors.Wrap(err, "reading response body")
	}

	if httpResp.StatusCode != http.StatusOK && httpResp.StatusCode != http.StatusCreated {
		return httpResp.StatusCode, &HTTPError{Code: httpResp.StatusCode, Body: string(body)}
	}

	if resp != nil && len(bytes.TrimSpace(body)) > 0 {
		if err = json.Unmarshal(body, resp); err != nil {
			return httpResp.StatusCode, errors.Wrap(err, "decoding response body")
		}
	}
	return httpResp.StatusCode, nil
}

// HTTPError is returned for any response whose status is not 200 or 201.
type HTTPError struct {
	Code int
	Body string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("received code %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("received code %d (%s)", e.Code, http.StatusText(e.Code))
}
