package submission

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetChannelAddsAndRemoves(t *testing.T) {
	s := New()
	s.SetChannel(ChannelSEO, true)
	s.SetChannel(ChannelFacebook, true)
	s.SetChannel(ChannelSEO, true)

	assert.Equal(t, []Channel{ChannelSEO, ChannelFacebook}, s.MarketingChannels)

	s.SetChannel(ChannelSEO, false)
	assert.Equal(t, []Channel{ChannelFacebook}, s.MarketingChannels)

	s.SetChannel(ChannelGoogleSearch, false)
	assert.Equal(t, []Channel{ChannelFacebook}, s.MarketingChannels)
}

func TestUncheckingOtherClearsFreeText(t *testing.T) {
	s := New()
	s.SetChannel(ChannelOther, true)
	s.OtherMarketingChannel = "TikTok"
	assert.True(t, s.Requirements().OtherChannel)

	s.SetChannel(ChannelOther, false)
	assert.False(t, s.HasChannel(ChannelOther))
	assert.Empty(t, s.OtherMarketingChannel)
	assert.False(t, s.Requirements().OtherChannel)
}

func TestRequirementsByBusinessModel(t *testing.T) {
	agency := RequirementsFor(ModelAgency)
	assert.Equal(t, Requirements{Message: true}, agency)

	for _, model := range BusinessModels {
		if model.Value == ModelAgency {
			continue
		}
		req := RequirementsFor(model.Value)
		assert.True(t, req.Revenue, model.Value)
		assert.True(t, req.Spend, model.Value)
		assert.True(t, req.Channels, model.Value)
		assert.False(t, req.Message, model.Value)
	}
}

func TestAgencyHidesOtherChannelRequirement(t *testing.T) {
	s := New()
	s.SetChannel(ChannelOther, true)
	s.SetBusinessModel(ModelAgency)
	assert.False(t, s.Requirements().OtherChannel)
}

func TestNewEncodesEmptyChannelList(t *testing.T) {
	raw, err := json.Marshal(New())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, []any{}, decoded["marketingChannels"])
	assert.Equal(t, false, decoded["qualified"])
}

func TestParseOptions(t *testing.T) {
	model, ok := ParseBusinessModel("Online & Offline Retailer")
	assert.True(t, ok)
	assert.Equal(t, ModelOmnichannelRetailer, model)

	_, ok = ParseBusinessModel("Marketplace")
	assert.False(t, ok)

	ch, ok := ParseChannel("FB/IG")
	assert.True(t, ok)
	assert.Equal(t, ChannelFacebook, ch)

	_, ok = ParseChannel("Radio")
	assert.False(t, ok)
}
