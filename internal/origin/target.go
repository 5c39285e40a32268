package origin

import (
	"net/url"
	"strings"

	"github.com/wolfman30/leadform/internal/submission"
)

const (
	DefaultStagingMarker    = "webflow.io"
	DefaultProductionDomain = "https://logeix.com"
	DefaultStagingDomain    = "https://logeix.webflow.io"

	schedulePath = "/schedule"
	thankYouPath = "/thank-you"
)

// Classifier maps a hostname onto one of the known base domains.
type Classifier struct {
	StagingMarker    string
	ProductionDomain string
	StagingDomain    string
}

// DefaultClassifier uses the production and staging marketing sites.
func DefaultClassifier() Classifier {
	return Classifier{
		StagingMarker:    DefaultStagingMarker,
		ProductionDomain: DefaultProductionDomain,
		StagingDomain:    DefaultStagingDomain,
	}
}

// Classify returns the staging domain when host contains the staging marker
// and the production domain otherwise.
func (c Classifier) Classify(host string) string {
	if c.StagingMarker != "" && strings.Contains(host, c.StagingMarker) {
		return c.StagingDomain
	}
	return c.ProductionDomain
}

// Targeter resolves the post-submission redirect.
type Targeter struct {
	classifier Classifier
	embedded   Resolver
}

// NewTargeter builds a Targeter whose embedded lookup reads the parent
// location and falls back to the referrer. onFallback may be nil.
func NewTargeter(classifier Classifier, onFallback func(error)) *Targeter {
	return &Targeter{
		classifier: classifier,
		embedded: Fallback{
			Primary:    LocationResolver{},
			Secondary:  ReferrerResolver{},
			OnFallback: onFallback,
		},
	}
}

// Domain returns exactly one base domain for ctx.
func (t *Targeter) Domain(ctx Context) string {
	if !ctx.Embedded {
		return t.classifier.Classify(ctx.Host)
	}
	host, _ := t.embedded.ResolveHost(ctx)
	return t.classifier.Classify(host)
}

// TargetURL builds the redirect for a finalised submission: the scheduling
// page for qualified leads, the thank-you page otherwise.
func TargetURL(domain string, s *submission.Submission) string {
	domain = strings.TrimRight(domain, "/")
	if !s.Qualified {
		return domain + thankYouPath
	}
	return domain + schedulePath + "?name=" + escape(s.Name) + "&email=" + escape(s.Email)
}

// componentUnescaper undoes the QueryEscape encodings that encodeURIComponent
// leaves as literals, and writes spaces as %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escape percent-encodes a query value byte for byte like encodeURIComponent,
// which is what the marketing site's scheduling page expects.
func escape(v string) string {
	return componentUnescaper.Replace(url.QueryEscape(v))
}
