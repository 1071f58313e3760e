package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexliving/reviews-server/internal/domain"
)

func TestReview_ScaleDetectionScenario(t *testing.T) {
	// A rating of 9 with no hint is on the 10 scale; its category likewise.
	raw := domain.RawReview{
		ID:     7453,
		Rating: ptr(9.0),
		ReviewCategory: []domain.RawCategoryRating{
			{Category: "cleanliness", Rating: ptr(9.0)},
		},
	}

	r := Review(raw, nil)

	assert.Equal(t, "hostaway-7453", r.ID)
	assert.Equal(t, float64(10), r.RatingScale)
	require.NotNil(t, r.NormalizedRating)
	assert.InDelta(t, 4.5, *r.NormalizedRating, 0.001)

	require.Len(t, r.Categories, 1)
	c := r.Categories[0]
	assert.Equal(t, "cleanliness", c.Category)
	assert.Equal(t, "Cleanliness", c.Label)
	require.NotNil(t, c.NormalizedRating)
	assert.InDelta(t, 4.5, *c.NormalizedRating, 0.001)
}

func TestReview_CategoriesScaleIndependently(t *testing.T) {
	// The review-level hint applies to the top-level rating only; each
	// category infers its own scale from its own magnitude.
	raw := domain.RawReview{
		ID:          1,
		Rating:      ptr(4.0),
		RatingScale: ptr(5.0),
		ReviewCategory: []domain.RawCategoryRating{
			{Category: "communication", Rating: ptr(10.0)},
			{Category: "value", Rating: ptr(4.0)},
		},
	}

	r := Review(raw, nil)

	require.Len(t, r.Categories, 2)
	assert.Equal(t, float64(10), r.Categories[0].Scale)
	assert.InDelta(t, 5.0, *r.Categories[0].NormalizedRating, 0.001)
	assert.Equal(t, float64(5), r.Categories[1].Scale)
	assert.InDelta(t, 4.0, *r.Categories[1].NormalizedRating, 0.001)
}

func TestReview_OutOfRangeRatingsStayBounded(t *testing.T) {
	// Ratings outside any detectable scale clamp into [0, 5], for the
	// top-level rating and category sub-ratings alike.
	tests := []struct {
		name   string
		rating float64
		want   float64
	}{
		{"absurdly high", 250, 5},
		{"above the hundred scale", 120, 5},
		{"negative", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := domain.RawReview{
				ID:     1,
				Rating: ptr(tt.rating),
				ReviewCategory: []domain.RawCategoryRating{
					{Category: "cleanliness", Rating: ptr(tt.rating)},
				},
			}
			r := Review(raw, nil)

			require.NotNil(t, r.NormalizedRating)
			assert.Equal(t, tt.want, *r.NormalizedRating)

			require.Len(t, r.Categories, 1)
			require.NotNil(t, r.Categories[0].NormalizedRating)
			assert.GreaterOrEqual(t, *r.Categories[0].NormalizedRating, 0.0)
			assert.LessOrEqual(t, *r.Categories[0].NormalizedRating, 5.0)
		})
	}

	r := Review(domain.RawReview{ID: 2, Rating: ptr(-3.0)}, ApprovalMap{})
	assert.False(t, r.IsApproved)
}

func TestReview_ClosedEnumerations(t *testing.T) {
	tests := []struct {
		name        string
		raw         domain.RawReview
		wantChannel domain.Channel
		wantType    domain.ReviewType
		wantStatus  domain.Status
	}{
		{
			name:        "all garbage",
			raw:         domain.RawReview{Channel: "zzz", Type: "???", Status: "nope"},
			wantChannel: domain.ChannelOther,
			wantType:    domain.TypeUnknown,
			wantStatus:  domain.StatusPublished,
		},
		{
			name:        "all absent",
			raw:         domain.RawReview{},
			wantChannel: domain.ChannelOther,
			wantType:    domain.TypeUnknown,
			wantStatus:  domain.StatusPublished,
		},
		{
			name:        "substring channel match",
			raw:         domain.RawReview{Channel: "Airbnb (official)", Type: "GUEST-TO-HOST", Status: "Pending"},
			wantChannel: domain.ChannelAirbnb,
			wantType:    domain.TypeGuestToHost,
			wantStatus:  domain.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Review(tt.raw, nil)
			assert.Equal(t, tt.wantChannel, r.Channel)
			assert.Equal(t, tt.wantType, r.Type)
			assert.Equal(t, tt.wantStatus, r.Status)
		})
	}
}

func TestReview_ListingFallbacksAndSlug(t *testing.T) {
	r := Review(domain.RawReview{ID: 2, ListingName: "  "}, nil)
	assert.Equal(t, DefaultListingName, r.ListingName)
	assert.Equal(t, "unknown-listing", r.ListingSlug)

	r = Review(domain.RawReview{ID: 3, ListingName: "2B N1 A - 29 Shoreditch Heights"}, nil)
	assert.Equal(t, "2b-n1-a-29-shoreditch-heights", r.ListingSlug)
}

func TestReview_TimestampFallback(t *testing.T) {
	epoch := time.Unix(0, 0).UTC()

	r := Review(domain.RawReview{ID: 4}, nil)
	assert.Equal(t, epoch, r.SubmittedAt)
	assert.False(t, r.HasSubmissionDate())

	r = Review(domain.RawReview{ID: 5, SubmittedAt: ptr("not a date")}, nil)
	assert.Equal(t, epoch, r.SubmittedAt)

	r = Review(domain.RawReview{ID: 6, SubmittedAt: ptr("2020-08-24 13:40:17")}, nil)
	assert.True(t, r.HasSubmissionDate())
	assert.Equal(t, time.Date(2020, 8, 24, 13, 40, 17, 0, time.UTC), r.SubmittedAt)
}

func TestReview_ApprovalPrecedence(t *testing.T) {
	highRating := domain.RawReview{ID: 7453, Rating: ptr(9.0)}

	t.Run("explicit flag wins without override", func(t *testing.T) {
		raw := highRating
		raw.Rating = ptr(2.0)
		raw.PublishOnFlex = ptr(true)
		r := Review(raw, ApprovalMap{})
		assert.True(t, r.IsApproved)
	})

	t.Run("override beats explicit flag", func(t *testing.T) {
		raw := highRating
		raw.PublishOnFlex = ptr(true)
		r := Review(raw, ApprovalMap{"hostaway-7453": false})
		assert.False(t, r.IsApproved)
	})

	t.Run("threshold default", func(t *testing.T) {
		// 9/10 normalizes to 4.5, above the 4.4 threshold.
		r := Review(highRating, ApprovalMap{})
		assert.True(t, r.IsApproved)

		low := domain.RawReview{ID: 8, Rating: ptr(8.0)}
		r = Review(low, ApprovalMap{})
		assert.False(t, r.IsApproved)
	})

	t.Run("no rating defaults to not approved", func(t *testing.T) {
		r := Review(domain.RawReview{ID: 9}, ApprovalMap{})
		assert.False(t, r.IsApproved)
	})
}

func TestReview_Idempotent(t *testing.T) {
	raw := domain.RawReview{
		ID:          7453,
		ListingID:   42,
		ListingName: "Soho Loft",
		Channel:     "airbnb",
		Type:        "guest-to-host",
		Rating:      ptr(9.0),
		SubmittedAt: ptr("2020-08-24 13:40:17"),
		GuestName:   ptr("Shane"),
		Tags:        []string{"clean"},
		ReviewCategory: []domain.RawCategoryRating{
			{Category: "respect_house_rules", Rating: ptr(10.0)},
		},
	}
	approvals := ApprovalMap{"hostaway-7453": true}

	first := Review(raw, approvals)
	second := Review(raw, approvals)
	assert.Equal(t, first, second)
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Respect House Rules", CategoryLabel("respect_house_rules"))
	assert.Equal(t, "Cleanliness", CategoryLabel("cleanliness"))
	assert.Equal(t, "Other", CategoryLabel("other"))
}

func TestReview_EmptyCategoryKeyFallsBack(t *testing.T) {
	raw := domain.RawReview{
		ID: 10,
		ReviewCategory: []domain.RawCategoryRating{
			{Category: "  ", Rating: ptr(5.0)},
		},
	}
	r := Review(raw, nil)
	require.Len(t, r.Categories, 1)
	assert.Equal(t, "other", r.Categories[0].Category)
	assert.Equal(t, "Other", r.Categories[0].Label)
}
