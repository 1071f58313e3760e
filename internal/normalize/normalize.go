package normalize

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/flexliving/reviews-server/internal/domain"
	"github.com/flexliving/reviews-server/internal/util"
)

const (
	// IDPrefix namespaces derived review identifiers, so they are stable and
	// collide only if source ids collide.
	IDPrefix = "hostaway-"

	// DefaultListingName replaces a listing name reduced to empty.
	DefaultListingName = "Unknown Listing"

	// defaultCategoryKey replaces an absent or empty category key.
	defaultCategoryKey = "other"

	// approvalThreshold is the normalized rating at or above which a review
	// with no override and no explicit publish flag defaults to approved.
	approvalThreshold = 4.4
)

// timestampLayouts are attempted in order when parsing submission timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var titleCaser = cases.Title(language.English)

// ApprovalLookup reads manager approval overrides during normalization.
// A nil result means no override exists for the review.
type ApprovalLookup interface {
	Lookup(reviewID string) *bool
}

// ApprovalMap is an in-memory ApprovalLookup, used for store snapshots and tests.
type ApprovalMap map[string]bool

// Lookup implements ApprovalLookup.
func (m ApprovalMap) Lookup(reviewID string) *bool {
	if v, ok := m[reviewID]; ok {
		return &v
	}
	return nil
}

// ReviewID derives the stable synthetic identifier for a source review id.
func ReviewID(sourceID int64) string {
	return IDPrefix + strconv.FormatInt(sourceID, 10)
}

// Review maps one raw record to the canonical review shape. It never fails:
// every malformed or missing field resolves to its defined fallback. The only
// external read is the approval override lookup.
func Review(raw domain.RawReview, approvals ApprovalLookup) domain.NormalizedReview {
	listingName := SanitizeText(raw.ListingName)
	if listingName == "" {
		listingName = DefaultListingName
	}

	scale := DetectScale(raw.Rating, raw.RatingScale)
	normalizedRating := ToTarget(raw.Rating, scale, TargetScale)

	r := domain.NormalizedReview{
		ID:               ReviewID(raw.ID),
		ListingID:        raw.ListingID,
		ListingName:      listingName,
		ListingSlug:      util.ListingSlug(listingName),
		SubmittedAt:      parseTimestamp(raw.SubmittedAt),
		Channel:          domain.ParseChannel(raw.Channel),
		Type:             domain.ParseReviewType(raw.Type),
		Status:           domain.ParseStatus(raw.Status),
		GuestName:        SanitizeOptional(raw.GuestName),
		PublicReview:     SanitizeOptional(raw.PublicReview),
		PrivateFeedback:  SanitizeOptional(raw.PrivateFeedback),
		ManagerResponse:  SanitizeOptional(raw.ManagerResponse),
		Rating:           raw.Rating,
		RatingScale:      scale,
		NormalizedRating: normalizedRating,
		Categories:       normalizeCategories(raw.ReviewCategory),
		Tags:             SanitizeTags(raw.Tags),
	}

	r.IsApproved = resolveApproval(&r, raw.PublishOnFlex, approvals)
	return r
}

// normalizeCategories normalizes each category sub-rating independently. A
// category's scale is detected from its own value; the review-level scale
// hint does not apply.
func normalizeCategories(raw []domain.RawCategoryRating) []domain.CategoryRating {
	out := make([]domain.CategoryRating, 0, len(raw))
	for _, c := range raw {
		key := strings.ToLower(SanitizeText(c.Category))
		if key == "" {
			key = defaultCategoryKey
		}
		scale := DetectScale(c.Rating, nil)
		out = append(out, domain.CategoryRating{
			Category:         key,
			Label:            CategoryLabel(key),
			Rating:           c.Rating,
			Scale:            scale,
			NormalizedRating: ToTarget(c.Rating, scale, TargetScale),
		})
	}
	return out
}

// CategoryLabel produces a display label from a category key: underscores
// become spaces and each word is capitalized.
func CategoryLabel(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// resolveApproval derives the approval state. Precedence: manager override,
// then the explicit source publish flag, then the rating threshold default.
func resolveApproval(r *domain.NormalizedReview, publishFlag *bool, approvals ApprovalLookup) bool {
	if approvals != nil {
		if override := approvals.Lookup(r.ID); override != nil {
			return *override
		}
	}
	if publishFlag != nil {
		return *publishFlag
	}
	return r.NormalizedRating != nil && *r.NormalizedRating >= approvalThreshold
}

// parseTimestamp parses an ISO-like submission timestamp, falling back to the
// Unix epoch when the value is absent or unparseable. Timestamps without an
// offset are taken as UTC.
func parseTimestamp(raw *string) time.Time {
	epoch := time.Unix(0, 0).UTC()
	if raw == nil {
		return epoch
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return epoch
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return t.UTC()
		}
	}
	return epoch
}
