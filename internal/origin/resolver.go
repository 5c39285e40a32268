package origin

import (
	"errors"
	"net/url"
	"strings"
)

var (
	// ErrCrossOrigin is returned when the browser refused to expose the
	// embedding page's location.
	ErrCrossOrigin = errors.New("origin: parent location not readable")

	// ErrNoReferrer is returned when the referrer is absent or unparsable.
	ErrNoReferrer = errors.New("origin: referrer unavailable")
)

// Context is what the form knows about where it runs.
type Context struct {
	// Embedded is true when the form was rendered inside another page's frame.
	Embedded bool
	// ParentHost is the embedding page's hostname as read by the page script.
	// It is empty when cross-origin access was denied.
	ParentHost string
	// Referrer is the embedding page URL (document.referrer inside the frame).
	Referrer string
	// Host is the form's own hostname.
	Host string
}

// Resolver produces the hostname that should decide the redirect domain.
type Resolver interface {
	ResolveHost(ctx Context) (string, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx Context) (string, error)

func (f ResolverFunc) ResolveHost(ctx Context) (string, error) { return f(ctx) }

// LocationResolver reads the embedding page's location directly.
type LocationResolver struct{}

func (LocationResolver) ResolveHost(ctx Context) (string, error) {
	host := strings.TrimSpace(ctx.ParentHost)
	if host == "" {
		return "", ErrCrossOrigin
	}
	return host, nil
}

// ReferrerResolver derives the hostname from the referrer URL.
type ReferrerResolver struct{}

func (ReferrerResolver) ResolveHost(ctx Context) (string, error) {
	ref := strings.TrimSpace(ctx.Referrer)
	if ref == "" {
		return "", ErrNoReferrer
	}
	u, err := url.Parse(ref)
	if err != nil || u.Hostname() == "" {
		return "", ErrNoReferrer
	}
	return u.Hostname(), nil
}

// Fallback tries Primary and, on any error, Secondary. When both fail it
// returns an empty hostname, which classifies as production.
type Fallback struct {
	Primary   Resolver
	Secondary Resolver
	// OnFallback is called with the primary error, if set.
	OnFallback func(err error)
}

func (f Fallback) ResolveHost(ctx Context) (string, error) {
	host, err := f.Primary.ResolveHost(ctx)
	if err == nil {
		return host, nil
	}
	if f.OnFallback != nil {
		f.OnFallback(err)
	}
	host, err = f.Secondary.ResolveHost(ctx)
	if err != nil {
		return "", nil
	}
	return host, nil
}
