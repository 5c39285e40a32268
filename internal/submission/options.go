package submission

// BusinessModel is the single-select commercial type of the respondent.
type BusinessModel string

const (
	ModelDTCBrand            BusinessModel = "DTC Brand"
	ModelOnlineRetailer      BusinessModel = "Online Retailer"
	ModelOmnichannelRetailer BusinessModel = "Online & Offline Retailer"
	ModelDropshipping        BusinessModel = "Dropshipping"
	ModelAgency              BusinessModel = "Agency or Consultant"
)

// Channel is a marketing channel checkbox label.
type Channel string

const (
	ChannelSEO            Channel = "SEO"
	ChannelGoogleShopping Channel = "Google Shopping"
	ChannelGoogleSearch   Channel = "Google Search"
	ChannelFacebook       Channel = "FB/IG"
	ChannelOther          Channel = "Other"
)

// RevenueZero is the pre-revenue bracket. It carries no currency symbol.
const RevenueZero = "Zero (Startup)"

// Option is a selectable choice rendered by the form.
type Option[T ~string] struct {
	ID    string
	Value T
}

// BusinessModels lists the business model radio options in display order.
var BusinessModels = []Option[BusinessModel]{
	{ID: "dtc-brand", Value: ModelDTCBrand},
	{ID: "online-retailer", Value: ModelOnlineRetailer},
	{ID: "online-offline-retailer", Value: ModelOmnichannelRetailer},
	{ID: "dropshipping", Value: ModelDropshipping},
	{ID: "agency-consultant", Value: ModelAgency},
}

// Channels lists the marketing channel checkboxes. The ID doubles as the
// form field name.
var Channels = []Option[Channel]{
	{ID: "Marketing-Channel-SEO", Value: ChannelSEO},
	{ID: "Marketing-Channel-Google-Shopping", Value: ChannelGoogleShopping},
	{ID: "Marketing-Channel-Google-Search", Value: ChannelGoogleSearch},
	{ID: "Marketing-Channel-FB-IG", Value: ChannelFacebook},
	{ID: "Marketing-Channel-Other", Value: ChannelOther},
}

type bracket struct {
	min int
	max int // 0 means open ended
}

var revenueBrackets = []bracket{
	{0, 15000},
	{15000, 29999},
	{30000, 49999},
	{50000, 79999},
	{80000, 149999},
	{150000, 0},
}

var spendBrackets = []bracket{
	{0, 10000},
	{10000, 14999},
	{15000, 0},
}

// RevenueBrackets returns the monthly revenue labels for region, starting with
// the pre-revenue bracket.
func RevenueBrackets(region Region) []string {
	out := []string{RevenueZero}
	return append(out, region.labels(revenueBrackets)...)
}

// SpendBrackets returns the monthly marketing spend labels for region.
func SpendBrackets(region Region) []string {
	return region.labels(spendBrackets)
}

func (r Region) labels(brackets []bracket) []string {
	out := make([]string, 0, len(brackets))
	for _, b := range brackets {
		switch {
		case b.min == 0:
			out = append(out, "Less than "+r.Amount(b.max))
		case b.max == 0:
			out = append(out, r.Amount(b.min)+"+")
		default:
			out = append(out, r.Amount(b.min)+" - "+r.Amount(b.max))
		}
	}
	return out
}

// ParseBusinessModel maps a posted value onto a known business model.
func ParseBusinessModel(v string) (BusinessModel, bool) {
	for _, o := range BusinessModels {
		if string(o.Value) == v {
			return o.Value, true
		}
	}
	return "", false
}

// ParseChannel maps a posted checkbox value onto a known channel.
func ParseChannel(v string) (Channel, bool) {
	for _, o := range Channels {
		if string(o.Value) == v {
			return o.Value, true
		}
	}
	return "", false
}
