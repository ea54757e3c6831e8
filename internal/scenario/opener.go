package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// ErrSourceTooLarge is returned once a source exceeds the configured size cap.
var ErrSourceTooLarge = errors.New("source exceeds size limit")

// Opener resolves a locator into a readable stream.
type Opener interface {
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
}

// SourceOpener reads http(s) URLs, file URLs and plain filesystem paths.
type SourceOpener struct {
	Client  *http.Client
	MaxSize int64 // bytes; zero or less means unlimited
}

// NewSourceOpener builds an opener whose HTTP client gives up after timeout
// (zero waits indefinitely).
func NewSourceOpener(timeout time.Duration, maxSize int64) *SourceOpener {
	return &SourceOpener{
		Client:  &http.Client{Timeout: timeout},
		MaxSize: maxSize,
	}
}

// Open implements Opener.
func (o *SourceOpener) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	switch {
	case hasScheme(locator, "http"), hasScheme(locator, "https"):
		rc, err = o.fetch(ctx, locator)
	case hasScheme(locator, "file"):
		u, parseErr := url.Parse(locator)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid file URL: %w", parseErr)
		}
		rc, err = os.Open(u.Path)
	default:
		rc, err = os.Open(locator)
	}
	if err != nil {
		return nil, err
	}
	if o.MaxSize > 0 {
		rc = &limitedReadCloser{r: rc, c: rc, remaining: o.MaxSize + 1}
	}
	return rc, nil
}

func (o *SourceOpener) fetch(ctx context.Context, locator string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected HTTP status %s", resp.Status)
	}
	return resp.Body, nil
}

func hasScheme(locator, scheme string) bool {
	return len(locator) > len(scheme)+3 &&
		strings.EqualFold(locator[:len(scheme)+3], scheme+"://")
}

// limitedReadCloser fails with ErrSourceTooLarge once more than the allowed
// number of bytes has been read.
type limitedReadCloser struct {
	r         io.Reader
	c         io.Closer
	remaining int64
}

func (l *limitedReadCloser) Read(p []byte) (int, error) {
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining <= 0 {
		return n, ErrSourceTooLarge
	}
	return n, err
}

func (l *limitedReadCloser) Close() error {
	return l.c.Close()
}
