package igtrade

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const requestTimeout = 30 * time.Second

// transport wraps a resty client with the headers and error mapping the
// gateway expects on every call. Rate limited requests honour the
// Retry-After header before being retried.
type transport struct {
	rc *resty.Client
}

func newTransport(baseURL string) *transport {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(requestTimeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		SetRetryAfter(func(client *resty.Client, resp *resty.Response) (time.Duration, error) {
			if resp != nil && resp.StatusCode() == http.StatusTooManyRequests {
				if ra := resp.Header().Get("Retry-After"); ra != "" {
					if secs, err := strconv.Atoi(ra); err == nil {
						return time.Duration(secs) * time.Second, nil
					}
				}
				return 10 * time.Second, nil
			}
			return 0, nil
		}).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err == nil && resp.StatusCode() == http.StatusTooManyRequests
		})
	rc.SetHeader("Accept", "application/json; charset=UTF-8")
	rc.SetHeader("Content-Type", "application/json; charset=UTF-8")
	return &transport{rc: rc}
}

// requestOptions carries the per-request parts of a gateway call.
type requestOptions struct {
	headers map[string]string
	params  url.Values
	body    any
}

// request performs a single call against the gateway. The endpoint version
// is sent in the VERSION header, as the platform multiplexes API versions
// per request rather than per URL. A non-2xx response is returned as an
// *APIError together with the raw response so callers can still inspect
// headers.
func (t *transport) request(ctx context.Context, method, endpoint string, version int, opt requestOptions, out any) (*resty.Response, error) {
	r := t.rc.R().SetContext(ctx)
	r.SetHeader("VERSION", strconv.Itoa(version))
	for k, v := range opt.headers {
		r.SetHeader(k, v)
	}
	if opt.params != nil {
		r.SetQueryParamsFromValues(opt.params)
	}
	if opt.body != nil {
		r.SetBody(opt.body)
	}
	if out != nil {
		r.SetResult(out)
	}
	var errBody apiErrorBody
	r.SetError(&errBody)

	logrus.WithFields(logrus.Fields{
		"method":   method,
		"endpoint": endpoint,
		"version":  version,
	}).Debug("ig api request")

	resp, err := r.Execute(method, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Code: errBody.ErrorCode}
		if apiErr.Code == "" {
			// Gateways occasionally answer with HTML; keep a readable slice of it.
			msg := strings.TrimSpace(string(resp.Body()))
			if len(msg) > 200 {
				cut := 200
				for cut > 0 && !utf8.RuneStart(msg[cut]) {
					cut--
				}
				msg = msg[:cut]
			}
			apiErr.Message = msg
		}
		logrus.WithFields(logrus.Fields{
			"method":   method,
			"endpoint": endpoint,
			"status":   resp.StatusCode(),
			"code":     apiErr.Code,
		}).Debug("ig api error")
		return resp, apiErr
	}
	return resp, nil
}
