package submission

// Requirements describes which conditional inputs are shown and required for
// the current state of a submission.
type Requirements struct {
	// Revenue and Spend are shown and required.
	Revenue bool
	Spend   bool
	// Channels are shown; picking any is optional.
	Channels bool
	// OtherChannel is the free-text box revealed by the Other checkbox.
	OtherChannel bool
	// Message is the agency/consultant free-text field.
	Message bool
}

// RequirementsFor returns the visibility rules for a business model.
func RequirementsFor(model BusinessModel) Requirements {
	if model == ModelAgency {
		return Requirements{Message: true}
	}
	return Requirements{Revenue: true, Spend: true, Channels: true}
}

// Requirements returns the rules for the submission's current state.
func (s *Submission) Requirements() Requirements {
	req := RequirementsFor(s.BusinessModel)
	req.OtherChannel = req.Channels && s.HasChannel(ChannelOther)
	return req
}
