// Package domain defines the canonical review model and its closed vocabularies.
package domain

import (
	"strings"
	"time"
)

// Channel identifies the booking channel a review arrived through.
// Raw channel strings are coerced into this closed set during normalization;
// unrecognized input becomes ChannelOther, never the raw string.
type Channel string

// Known channels, in match priority order.
const (
	ChannelAirbnb  Channel = "airbnb"
	ChannelBooking Channel = "booking"
	ChannelGoogle  Channel = "google"
	ChannelExpedia Channel = "expedia"
	ChannelVrbo    Channel = "vrbo"
	ChannelFlex    Channel = "flex"
	ChannelDirect  Channel = "direct"
	ChannelOther   Channel = "other"
)

// channelPriority is the substring match order. First match wins, so a raw
// value containing multiple tokens resolves deterministically.
var channelPriority = []Channel{
	ChannelAirbnb,
	ChannelBooking,
	ChannelGoogle,
	ChannelExpedia,
	ChannelVrbo,
	ChannelFlex,
	ChannelDirect,
}

// ParseChannel resolves a raw channel string by case-insensitive substring
// matching against the known channel tokens. No match, or an empty value,
// resolves to ChannelOther.
func ParseChannel(raw string) Channel {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return ChannelOther
	}
	for _, ch := range channelPriority {
		if strings.Contains(lowered, string(ch)) {
			return ch
		}
	}
	return ChannelOther
}

// Label returns the display name for the channel.
func (c Channel) Label() string {
	switch c {
	case ChannelAirbnb:
		return "Airbnb"
	case ChannelBooking:
		return "Booking.com"
	case ChannelGoogle:
		return "Google"
	case ChannelExpedia:
		return "Expedia"
	case ChannelVrbo:
		return "Vrbo"
	case ChannelFlex:
		return "Flex"
	case ChannelDirect:
		return "Direct"
	default:
		return "Other"
	}
}

// ReviewType identifies who reviewed whom.
type ReviewType string

// Known review types.
const (
	TypeGuestToHost  ReviewType = "guest-to-host"
	TypeHostToGuest  ReviewType = "host-to-guest"
	TypeGuestToGuest ReviewType = "guest-to-guest"
	TypeHostToHost   ReviewType = "host-to-host"
	TypeUnknown      ReviewType = "unknown"
)

// ParseReviewType resolves a raw type string by exact case-insensitive match.
// No match, or an empty value, resolves to TypeUnknown.
func ParseReviewType(raw string) ReviewType {
	switch ReviewType(strings.ToLower(strings.TrimSpace(raw))) {
	case TypeGuestToHost:
		return TypeGuestToHost
	case TypeHostToGuest:
		return TypeHostToGuest
	case TypeGuestToGuest:
		return TypeGuestToGuest
	case TypeHostToHost:
		return TypeHostToHost
	default:
		return TypeUnknown
	}
}

// Status is the publication status a review arrived with.
type Status string

// Known statuses.
const (
	StatusPublished Status = "published"
	StatusPending   Status = "pending"
	StatusHidden    Status = "hidden"
	StatusArchived  Status = "archived"
)

// ParseStatus resolves a raw status string by exact case-insensitive match.
// No match, or an empty value, resolves to StatusPublished.
func ParseStatus(raw string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending
	case StatusHidden:
		return StatusHidden
	case StatusArchived:
		return StatusArchived
	default:
		return StatusPublished
	}
}

// RawCategoryRating is one category sub-rating as delivered by the integration.
type RawCategoryRating struct {
	Category string   `json:"category"`
	Rating   *float64 `json:"rating"`
}

// RawReview is one review record as delivered by the property-management
// integration. No field can be trusted to be well-formed; normalization
// assigns a fallback for every one of them.
type RawReview struct {
	ID              int64               `json:"id"`
	ListingID       int64               `json:"listingId"`
	ListingName     string              `json:"listingName"`
	Type            string              `json:"type"`
	Channel         string              `json:"channel"`
	Status          string              `json:"status"`
	Rating          *float64            `json:"rating"`
	RatingScale     *float64            `json:"ratingScale"`
	PublicReview    *string             `json:"publicReview"`
	PrivateFeedback *string             `json:"privateFeedback"`
	ManagerResponse *string             `json:"managerResponse"`
	ReviewCategory  []RawCategoryRating `json:"reviewCategory"`
	SubmittedAt     *string             `json:"submittedAt"`
	GuestName       *string             `json:"guestName"`
	Tags            []string            `json:"tags"`
	PublishOnFlex   *bool               `json:"publishOnFlex"`
}

// CategoryRating is one normalized category sub-rating. The scale is detected
// from the category's own value, independent of the review-level scale hint.
type CategoryRating struct {
	Category         string   `json:"category"`
	Label            string   `json:"label"`
	Rating           *float64 `json:"rating"`
	Scale            float64  `json:"scale"`
	NormalizedRating *float64 `json:"normalizedRating"`
}

// NormalizedReview is the canonical review shape. It is immutable once
// produced for a given request; every enumeration field holds a value from
// its closed set.
type NormalizedReview struct {
	ID               string           `json:"id"`
	ListingID        int64            `json:"listingId"`
	ListingName      string           `json:"listingName"`
	ListingSlug      string           `json:"listingSlug"`
	SubmittedAt      time.Time        `json:"submittedAt"`
	Channel          Channel          `json:"channel"`
	Type             ReviewType       `json:"type"`
	Status           Status           `json:"status"`
	GuestName        *string          `json:"guestName"`
	PublicReview     *string          `json:"publicReview"`
	PrivateFeedback  *string          `json:"privateFeedback"`
	ManagerResponse  *string          `json:"managerResponse"`
	Rating           *float64         `json:"rating"`
	RatingScale      float64          `json:"ratingScale"`
	NormalizedRating *float64         `json:"normalizedRating"`
	Categories       []CategoryRating `json:"categories"`
	Tags             []string         `json:"tags"`
	IsApproved       bool             `json:"isApproved"`
}

// HasSubmissionDate reports whether the review carried a parseable submission
// timestamp. The canonical timestamp falls back to the Unix epoch when the
// source value was absent or unparseable.
func (r *NormalizedReview) HasSubmissionDate() bool {
	return r.SubmittedAt.Unix() != 0
}

// CategoryScore returns the normalized rating for the given category key,
// matched case-insensitively. The second return value reports whether the
// review carries the category at all.
func (r *NormalizedReview) CategoryScore(key string) (*float64, bool) {
	lowered := strings.ToLower(key)
	for _, c := range r.Categories {
		if strings.ToLower(c.Category) == lowered {
			return c.NormalizedRating, true
		}
	}
	return nil, false
}
