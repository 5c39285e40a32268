package origin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationResolver(t *testing.T) {
	host, err := LocationResolver{}.ResolveHost(Context{ParentHost: "logeix.webflow.io"})
	require.NoError(t, err)
	assert.Equal(t, "logeix.webflow.io", host)

	_, err = LocationResolver{}.ResolveHost(Context{ParentHost: "  "})
	assert.ErrorIs(t, err, ErrCrossOrigin)
}

func TestReferrerResolver(t *testing.T) {
	host, err := ReferrerResolver{}.ResolveHost(Context{Referrer: "https://logeix.webflow.io/pricing?x=1"})
	require.NoError(t, err)
	assert.Equal(t, "logeix.webflow.io", host)

	_, err = ReferrerResolver{}.ResolveHost(Context{})
	assert.ErrorIs(t, err, ErrNoReferrer)

	_, err = ReferrerResolver{}.ResolveHost(Context{Referrer: "not a url"})
	assert.ErrorIs(t, err, ErrNoReferrer)
}

func TestFallbackUsesSecondaryOnDenial(t *testing.T) {
	var seen error
	f := Fallback{
		Primary: ResolverFunc(func(Context) (string, error) {
			return "", ErrCrossOrigin
		}),
		Secondary:  ReferrerResolver{},
		OnFallback: func(err error) { seen = err },
	}

	var host string
	var err error
	require.NotPanics(t, func() {
		host, err = f.ResolveHost(Context{Embedded: true, Referrer: "https://staging.webflow.io/"})
	})
	require.NoError(t, err)
	assert.Equal(t, "staging.webflow.io", host)
	assert.ErrorIs(t, seen, ErrCrossOrigin)
}

func TestFallbackSkipsSecondaryOnSuccess(t *testing.T) {
	f := Fallback{
		Primary: LocationResolver{},
		Secondary: ResolverFunc(func(Context) (string, error) {
			return "", errors.New("should not be called")
		}),
	}
	host, err := f.ResolveHost(Context{ParentHost: "logeix.com"})
	require.NoError(t, err)
	assert.Equal(t, "logeix.com", host)
}

func TestFallbackBothFailing(t *testing.T) {
	f := Fallback{Primary: LocationResolver{}, Secondary: ReferrerResolver{}}
	host, err := f.ResolveHost(Context{Embedded: true})
	assert.NoError(t, err)
	assert.Empty(t, host)
}
