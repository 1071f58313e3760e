package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexliving/reviews-server/internal/domain"
)

func TestListReviewsInput_FilterSpec(t *testing.T) {
	in := ListReviewsInput{
		Listing:           " camden-loft ",
		Channels:          "airbnb, booking.com,, carrier pigeon",
		Types:             "guest-to-host",
		Statuses:          "pending,draft",
		Category:          "Cleanliness",
		MinCategoryRating: ptr(4.0),
		From:              "2021-01-01",
		To:                "2021-06-30",
		Search:            "  lovely stay  ",
	}

	f := in.FilterSpec()

	require.NotNil(t, f.ListingSlug)
	assert.Equal(t, "camden-loft", *f.ListingSlug)

	// Unknown tokens coerce to their fallback variant instead of failing.
	assert.Equal(t, []domain.Channel{domain.ChannelAirbnb, domain.ChannelBooking, domain.ChannelOther}, f.Channels)
	assert.Equal(t, []domain.ReviewType{domain.TypeGuestToHost}, f.Types)
	assert.Equal(t, []domain.Status{domain.StatusPending, domain.StatusPublished}, f.Statuses)

	require.NotNil(t, f.Category)
	assert.Equal(t, "cleanliness", *f.Category)
	assert.Equal(t, ptr(4.0), f.MinCategoryRating)

	require.NotNil(t, f.From)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), *f.From)
	require.NotNil(t, f.To)
	// A date-only upper bound covers the whole day.
	assert.Equal(t, time.Date(2021, 6, 30, 23, 59, 59, 999999999, time.UTC), *f.To)

	assert.Equal(t, "lovely stay", f.Search)
}

func TestListReviewsInput_CategoryBoundRequiresCategory(t *testing.T) {
	in := ListReviewsInput{MinCategoryRating: ptr(4.0)}
	f := in.FilterSpec()
	assert.Nil(t, f.Category)
	assert.Nil(t, f.MinCategoryRating)
}

func TestParseQueryDate(t *testing.T) {
	assert.Nil(t, parseQueryDate("", false))
	assert.Nil(t, parseQueryDate("yesterday", false))

	instant := parseQueryDate("2021-03-01T10:30:00Z", true)
	require.NotNil(t, instant)
	// An explicit instant is never extended.
	assert.Equal(t, time.Date(2021, 3, 1, 10, 30, 0, 0, time.UTC), *instant)
}

func TestSplitTokens(t *testing.T) {
	assert.Nil(t, splitTokens("  "))
	assert.Equal(t, []string{"a", "b"}, splitTokens(" a , ,b,"))
}
