package submission

import "slices"

// Submission is the lead captured by the qualification form.
type Submission struct {
	Name                  string        `json:"name"`
	Email                 string        `json:"email"`
	Phone                 string        `json:"phone"`
	WebsiteURL            string        `json:"websiteUrl"`
	BusinessModel         BusinessModel `json:"businessModel"`
	MonthlyRevenue        string        `json:"monthlyRevenue"`
	MonthlySpend          string        `json:"monthlySpend"`
	MarketingChannels     []Channel     `json:"marketingChannels"`
	OtherMarketingChannel string        `json:"otherMarketingChannel"`
	AgencyMessage         string        `json:"agencyMessage"`
	PageSource            string        `json:"pageSource"`
	Qualified             bool          `json:"qualified"`
}

// New returns an empty submission as it exists when the form is first rendered.
func New() *Submission {
	return &Submission{MarketingChannels: []Channel{}}
}

// SetBusinessModel records the selected business model and recomputes qualification.
func (s *Submission) SetBusinessModel(model BusinessModel) {
	s.BusinessModel = model
	s.Requalify()
}

// SetMonthlyRevenue records the revenue bracket and recomputes qualification.
func (s *Submission) SetMonthlyRevenue(bracket string) {
	s.MonthlyRevenue = bracket
	s.Requalify()
}

// Requalify recomputes the qualified flag from the current field values.
func (s *Submission) Requalify() bool {
	s.Qualified = Qualify(s.BusinessModel, s.MonthlyRevenue)
	return s.Qualified
}

// IsAgency reports whether the respondent picked the agency/consultant model.
func (s *Submission) IsAgency() bool {
	return s.BusinessModel == ModelAgency
}

// HasChannel reports whether ch is currently selected.
func (s *Submission) HasChannel(ch Channel) bool {
	return slices.Contains(s.MarketingChannels, ch)
}

// SetChannel adds or removes exactly one marketing channel. Unchecking Other
// also drops the free-text channel so it no longer takes part in validation.
func (s *Submission) SetChannel(ch Channel, checked bool) {
	if checked {
		if !s.HasChannel(ch) {
			s.MarketingChannels = append(s.MarketingChannels, ch)
		}
		return
	}
	s.MarketingChannels = slices.DeleteFunc(s.MarketingChannels, func(c Channel) bool {
		return c == ch
	})
	if ch == ChannelOther {
		s.OtherMarketingChannel = ""
	}
}
