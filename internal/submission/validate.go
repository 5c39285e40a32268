package submission

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// emailPattern is the "valid e-mail address" grammar browsers apply to
// <input type="email">. It accepts dotless domains such as localhost.
var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// Validate applies the same required-field rules the rendered form enforces in
// the browser, and no stricter ones: a whitespace-only text value is present.
// Region decides which bracket labels are accepted.
func (s *Submission) Validate(region Region) error {
	req := s.Requirements()

	err := validation.ValidateStruct(s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Email, validation.Required, validation.Match(emailPattern)),
		validation.Field(&s.Phone, validation.Required),
		validation.Field(&s.WebsiteURL, validation.Required),
		validation.Field(&s.BusinessModel, validation.Required, validation.In(modelValues()...)),
		validation.Field(&s.MonthlyRevenue,
			validation.When(req.Revenue, validation.Required, validation.In(stringValues(RevenueBrackets(region))...)),
		),
		validation.Field(&s.MonthlySpend,
			validation.When(req.Spend, validation.Required, validation.In(stringValues(SpendBrackets(region))...)),
		),
		validation.Field(&s.MarketingChannels,
			validation.When(req.Channels, validation.Each(validation.In(channelValues()...))),
		),
		validation.Field(&s.OtherMarketingChannel, validation.When(req.OtherChannel, validation.Required)),
		validation.Field(&s.AgencyMessage, validation.When(req.Message, validation.Required)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func modelValues() []interface{} {
	out := make([]interface{}, 0, len(BusinessModels))
	for _, o := range BusinessModels {
		out = append(out, o.Value)
	}
	return out
}

func channelValues() []interface{} {
	out := make([]interface{}, 0, len(Channels))
	for _, o := range Channels {
		out = append(out, o.Value)
	}
	return out
}

func stringValues(values []string) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
