package form

import (
	"net"
	"net/url"
	"strings"

	"github.com/wolfman30/leadform/internal/origin"
	"github.com/wolfman30/leadform/internal/submission"
)

// Form field names posted by the rendered form.
const (
	fieldToken          = "token"
	fieldName           = "name"
	fieldEmail          = "email"
	fieldPhone          = "phone"
	fieldWebsite        = "websiteUrl"
	fieldBusinessModel  = "Business-Model"
	fieldRevenue        = "Monthly-Revenue"
	fieldSpend          = "Monthly-Spend"
	fieldOtherText      = "Marketing-Channel-Other-Text"
	fieldAgencyMessage  = "Agency-Message"
	fieldPageSource     = "Page-Source"
	fieldReferrer       = "referrer"
	fieldEmbedded       = "embedded"
	fieldParentHost     = "parentHost"
	fieldParentReferrer = "parentReferrer"

	sourceParam = "source"

	asciiWhitespace = " \t\n\f\r"
)

// decodeSubmission replays posted values through the submission setters so
// the qualification flag and channel rules apply exactly as on the page.
// Text values are kept as posted; only the email is stripped, as the browser
// does for type=email inputs.
func decodeSubmission(values url.Values) *submission.Submission {
	s := submission.New()
	s.Name = values.Get(fieldName)
	s.Email = strings.Trim(values.Get(fieldEmail), asciiWhitespace)
	s.Phone = values.Get(fieldPhone)
	s.WebsiteURL = values.Get(fieldWebsite)
	s.SetBusinessModel(submission.BusinessModel(values.Get(fieldBusinessModel)))
	s.SetMonthlyRevenue(values.Get(fieldRevenue))
	s.MonthlySpend = values.Get(fieldSpend)

	for _, opt := range submission.Channels {
		if values.Get(opt.ID) == string(opt.Value) {
			s.SetChannel(opt.Value, true)
		}
	}
	if s.HasChannel(submission.ChannelOther) {
		s.OtherMarketingChannel = values.Get(fieldOtherText)
	}

	s.AgencyMessage = values.Get(fieldAgencyMessage)
	s.PageSource = values.Get(fieldPageSource)
	return s
}

// embedding is the frame state reported by the page script. It is echoed
// into the hidden inputs of a re-rendered form, which then runs at the top
// level and can no longer observe its original parent.
type embedding struct {
	Embedded       bool
	ParentHost     string
	ParentReferrer string
	// Referer seen when the frame was loaded.
	Referrer       string
}

func decodeEmbedding(values url.Values) embedding {
	return embedding{
		Embedded:       values.Get(fieldEmbedded) == "true",
		ParentHost:     strings.TrimSpace(values.Get(fieldParentHost)),
		ParentReferrer: strings.TrimSpace(values.Get(fieldParentReferrer)),
		Referrer:       strings.TrimSpace(values.Get(fieldReferrer)),
	}
}

// context builds the resolver input. The page script's document.referrer
// wins over the Referer captured when the frame loaded.
func (e embedding) context(requestHost string) origin.Context {
	referrer := e.ParentReferrer
	if referrer == "" {
		referrer = e.Referrer
	}
	return origin.Context{
		Embedded:   e.Embedded,
		ParentHost: e.ParentHost,
		Referrer:   referrer,
		Host:       hostname(requestHost),
	}
}

func hostname(hostport string) string {
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host
	}
	return hostport
}
