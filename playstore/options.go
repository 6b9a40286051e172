package playstore

// ReviewSort selects the ordering of a reviews request.
type ReviewSort int

const (
	SortNewest     ReviewSort = 0
	SortHighRating ReviewSort = 1
	SortHelpful    ReviewSort = 4
)

// RecommendationType selects which related-apps list to fetch.
type RecommendationType int

const (
	AlsoViewed    RecommendationType = 1
	AlsoInstalled RecommendationType = 2
)

// SuggestionType selects what kinds of search suggestions to fetch.
type SuggestionType int

const (
	SuggestSearchString SuggestionType = 2
	SuggestApp          SuggestionType = 3
)

// Well-known browse subcategory identifiers.
const (
	SubcategoryTopFree       = "apps_topselling_free"
	SubcategoryTopGrossing   = "apps_topgrossing"
	SubcategoryMoversShakers = "apps_movers_shakers"
)

// BrowseOptions narrows a browse call. Empty fields are omitted, which asks
// the server for the top-level category listing.
type BrowseOptions struct {
	// CategoryID narrows to one category, e.g. "GAME".
	CategoryID string

	// SubcategoryID narrows further within the category, e.g.
	// SubcategoryTopFree.
	SubcategoryID string
}

// ReviewsOptions controls a reviews call.
type ReviewsOptions struct {
	// Sort order; defaults to SortNewest.
	Sort ReviewSort

	// Paging; the server defaults to the first 20 reviews.
	Paging Paging

	// VersionCode, when non-zero, restricts reviews to one app version.
	VersionCode int
}

// RecommendationsOptions controls a recommendations call.
type RecommendationsOptions struct {
	// Type of relation; defaults to AlsoViewed.
	Type RecommendationType

	// Paging; the server defaults to the first 20 entries.
	Paging Paging
}

// SearchSuggestOptions controls a searchSuggest call.
type SearchSuggestOptions struct {
	// Type of suggestions; defaults to SuggestSearchString.
	Type SuggestionType
}

// AddReviewArgs describes a review to create or replace. PackageName and
// Stars are mandatory; Title and Comment may be empty.
type AddReviewArgs struct {
	PackageName string
	Title       string
	Comment     string
	Stars       int
}
