package installer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultPort is the port the Remote PKG Installer listens on.
const DefaultPort = 12801

const (
	installPath      = "/api/install"
	installType      = "direct"
	defaultUserAgent = "pkgdrop/dev"
)

var (
	// ErrHostRequired is returned before any request when the target host is blank.
	ErrHostRequired = errors.New("target host is required")
	// ErrRemote marks a non-success response from the install endpoint.
	ErrRemote = errors.New("install endpoint rejected request")
)

// Sender sends install commands to a device. Implemented by *Client.
type Sender interface {
	Install(ctx context.Context, host, pkgURL string) error
}

var _ Sender = (*Client)(nil)

// Options configure a Client. Zero values use defaults.
type Options struct {
	Port      int
	Timeout   time.Duration // zero means no timeout
	UserAgent string
	Logger    *zap.Logger
}

// Client talks to the installer endpoint on a device.
type Client struct {
	port  int
	resty *resty.Client
}

// NewClient builds a Client. Retries are disabled: every Install call issues
// exactly one request.
func NewClient(opts Options) *Client {
	port := opts.Port
	if port <= 0 {
		port = DefaultPort
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rc := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent).
		SetLogger(logger.Named("http").Sugar())

	return &Client{port: port, resty: rc}
}

// Request is the JSON body accepted by /api/install.
type Request struct {
	Type     string   `json:"type"`
	Packages []string `json:"packages"`
}

// Install asks the device at host to download and install pkgURL. A nil error
// only means the device accepted the request.
func (c *Client) Install(ctx context.Context, host, pkgURL string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	endpoint, err := c.EndpointURL(host)
	if err != nil {
		return err
	}

	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(Request{Type: installType, Packages: []string{pkgURL}}).
		Post(endpoint)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	if !resp.IsSuccess() {
		return &RemoteError{StatusCode: resp.StatusCode()}
	}
	return nil
}

// EndpointURL returns the install URL for host. A port already present in
// host wins over the configured one.
func (c *Client) EndpointURL(host string) (string, error) {
	trimmed := strings.TrimSpace(host)
	trimmed = strings.TrimPrefix(trimmed, "http://")
	trimmed = strings.TrimSuffix(trimmed, "/")
	if trimmed == "" {
		return "", ErrHostRequired
	}
	if strings.ContainsAny(trimmed, "/?#@ ") {
		return "", fmt.Errorf("invalid host %q", host)
	}

	hostPort := trimmed
	if _, _, err := net.SplitHostPort(trimmed); err != nil {
		hostPort = net.JoinHostPort(strings.Trim(trimmed, "[]"), strconv.Itoa(c.port))
	}
	return "http://" + hostPort + installPath, nil
}

// RemoteError carries the status returned by a device that refused an install.
type RemoteError struct {
	StatusCode int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("api %s returned status %d", installPath, e.StatusCode)
}

// Is reports ErrRemote so callers can match without unwrapping the type.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}
