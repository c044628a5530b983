package http

import (
	"fmt"
	"io"
	"log"
	net_http "net/http"
	"runtime"

	"github.com/csvlab/csvlab/pkg/version"
	"github.com/hashicorp/go-retryablehttp"
)

var _userAgent string
var client *retryablehttp.Client

func RetryableClient() *retryablehttp.Client {
	if client == nil {
		client = retryablehttp.NewClient()
		client.Logger = log.New(io.Discard, "", 0)
	}
	return client
}

func Get(url string, accept string) (*net_http.Response, error) {
	req, err := retryablehttp.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	return do(req, accept)
}

func Post(url string, contentType string, body []byte) (*net_http.Response, error) {
	req, err := retryablehttp.NewRequest("POST", url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	return do(req, "")
}

func do(req *retryablehttp.Request, accept string) (*net_http.Response, error) {
	req.Header.Set("User-Agent", userAgent())
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := RetryableClient().Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func userAgent() string {
	if _userAgent == "" {
		_userAgent = fmt.Sprintf("csvlab/%s (%s)", version.Version(), runtime.GOOS)
	}
	return _userAgent
}
