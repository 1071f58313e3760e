package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func sampleReview() NormalizedReview {
	return NormalizedReview{
		ID:               "hostaway-1",
		ListingID:        42,
		ListingName:      "Shoreditch Heights",
		ListingSlug:      "shoreditch-heights",
		SubmittedAt:      time.Date(2021, 6, 15, 12, 0, 0, 0, time.UTC),
		Channel:          ChannelAirbnb,
		Type:             TypeGuestToHost,
		Status:           StatusPublished,
		GuestName:        ptr("Shane Finkelstein"),
		PublicReview:     ptr("Wonderful stay, would come back"),
		NormalizedRating: ptr(4.5),
		Categories: []CategoryRating{
			{Category: "cleanliness", NormalizedRating: ptr(5.0)},
		},
		Tags:       []string{"repeat-guest"},
		IsApproved: true,
	}
}

func TestFilterSpec_IsZero(t *testing.T) {
	assert.True(t, (&FilterSpec{}).IsZero())
	assert.False(t, (&FilterSpec{Search: "x"}).IsZero())
	assert.False(t, (&FilterSpec{ListingID: ptr(int64(1))}).IsZero())
}

func TestFilterSpec_Matches(t *testing.T) {
	r := sampleReview()

	tests := []struct {
		name   string
		filter FilterSpec
		want   bool
	}{
		{"empty matches everything", FilterSpec{}, true},
		{"listing id match", FilterSpec{ListingID: ptr(int64(42))}, true},
		{"listing id mismatch", FilterSpec{ListingID: ptr(int64(7))}, false},
		{"listing slug match", FilterSpec{ListingSlug: ptr("shoreditch-heights")}, true},
		{"listing slug mismatch", FilterSpec{ListingSlug: ptr("other")}, false},
		{"channel set includes", FilterSpec{Channels: []Channel{ChannelGoogle, ChannelAirbnb}}, true},
		{"channel set excludes", FilterSpec{Channels: []Channel{ChannelGoogle}}, false},
		{"type set includes", FilterSpec{Types: []ReviewType{TypeGuestToHost}}, true},
		{"type set excludes", FilterSpec{Types: []ReviewType{TypeHostToGuest}}, false},
		{"status set includes", FilterSpec{Statuses: []Status{StatusPublished}}, true},
		{"status set excludes", FilterSpec{Statuses: []Status{StatusHidden}}, false},
		{"approved match", FilterSpec{Approved: ptr(true)}, true},
		{"approved mismatch", FilterSpec{Approved: ptr(false)}, false},
		{"min rating inclusive", FilterSpec{MinRating: ptr(4.5)}, true},
		{"min rating excludes", FilterSpec{MinRating: ptr(4.6)}, false},
		{"max rating inclusive", FilterSpec{MaxRating: ptr(4.5)}, true},
		{"max rating excludes", FilterSpec{MaxRating: ptr(4.0)}, false},
		{"category present", FilterSpec{Category: ptr("cleanliness")}, true},
		{"category absent", FilterSpec{Category: ptr("location")}, false},
		{"category bound holds", FilterSpec{Category: ptr("cleanliness"), MinCategoryRating: ptr(5.0)}, true},
		{"category bound fails", FilterSpec{Category: ptr("cleanliness"), MinCategoryRating: ptr(5.1)}, false},
		{"from inclusive", FilterSpec{From: ptr(time.Date(2021, 6, 15, 12, 0, 0, 0, time.UTC))}, true},
		{"from excludes", FilterSpec{From: ptr(time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC))}, false},
		{"to inclusive", FilterSpec{To: ptr(time.Date(2021, 6, 15, 12, 0, 0, 0, time.UTC))}, true},
		{"to excludes", FilterSpec{To: ptr(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))}, false},
		{"search single term", FilterSpec{Search: "shane"}, true},
		{"search spans fields", FilterSpec{Search: "shane wonderful repeat-guest"}, true},
		{"search term missing", FilterSpec{Search: "shane terrible"}, false},
		{"composed all hold", FilterSpec{ListingID: ptr(int64(42)), Channels: []Channel{ChannelAirbnb}, MinRating: ptr(4.0), Search: "stay"}, true},
		{"composed one fails", FilterSpec{ListingID: ptr(int64(42)), Channels: []Channel{ChannelAirbnb}, MinRating: ptr(4.9)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(&r))
		})
	}
}

func TestFilterSpec_RatingBoundsRequireRating(t *testing.T) {
	unrated := sampleReview()
	unrated.NormalizedRating = nil

	min := FilterSpec{MinRating: ptr(0.0)}
	assert.False(t, min.Matches(&unrated))

	max := FilterSpec{MaxRating: ptr(5.0)}
	assert.False(t, max.Matches(&unrated))
}

func TestFilterSpec_DateBoundsRequireDate(t *testing.T) {
	undated := sampleReview()
	undated.SubmittedAt = time.Unix(0, 0).UTC()

	f := FilterSpec{From: ptr(time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC))}
	assert.False(t, f.Matches(&undated))

	f = FilterSpec{To: ptr(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))}
	assert.False(t, f.Matches(&undated))
}

func TestFilterSpec_CategoryBoundWithNilScore(t *testing.T) {
	r := sampleReview()
	r.Categories = []CategoryRating{{Category: "cleanliness", NormalizedRating: nil}}

	// The category is present, so a bare presence filter matches.
	present := FilterSpec{Category: ptr("cleanliness")}
	assert.True(t, present.Matches(&r))

	// A numeric bound cannot hold against a missing score.
	bounded := FilterSpec{Category: ptr("cleanliness"), MinCategoryRating: ptr(1.0)}
	assert.False(t, bounded.Matches(&r))
}

func TestFilterSpec_SearchCaseInsensitive(t *testing.T) {
	r := sampleReview()
	f := FilterSpec{Search: "SHOREDITCH"}
	assert.True(t, f.Matches(&r))
}
