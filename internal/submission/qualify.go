package submission

// Qualify reports whether a lead is sales-ready. Dropshippers, agencies and
// pre-revenue startups are never qualified.
func Qualify(model BusinessModel, revenue string) bool {
	if model == ModelDropshipping || model == ModelAgency {
		return false
	}
	return revenue != RevenueZero
}
