// Package playstore is a client for the store-catalog protocol: device
// checkin, account login and the catalog operations (details, search
// suggestions, browse, purchase, delivery, reviews, recommendations).
//
// A Client is built around a Session carrying the auth token and device
// identity. Callers typically checkin and login once, persist the resulting
// token and GSF id, and restore them into fresh sessions afterwards.
package playstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/playapi/playapi/protocol"
	"github.com/playapi/playapi/transport"
)

// Transport issues the blocking HTTPS exchanges. *transport.Client is the
// production implementation; tests substitute their own.
type Transport interface {
	Get(ctx context.Context, rawURL string, params url.Values, headers map[string]string) ([]byte, error)
	Post(ctx context.Context, rawURL string, body []byte, headers map[string]string) ([]byte, error)
	PostForm(ctx context.Context, rawURL string, form url.Values, headers map[string]string) ([]byte, error)
}

// Config holds configuration for the catalog client.
type Config struct {
	// Session carries the identity state (required).
	Session *Session

	// BaseURL overrides the production host; used in tests.
	BaseURL string

	// Transport overrides the HTTP layer. If nil a resilient default is
	// created.
	Transport Transport

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client executes catalog operations against a session.
type Client struct {
	session   *Session
	base      string
	transport Transport
	logger    zerolog.Logger
}

// NewClient creates a catalog client.
func NewClient(cfg Config) *Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	tr := cfg.Transport
	if tr == nil {
		tr = transport.New(transport.Config{
			Name:   "playstore",
			Logger: cfg.Logger,
		})
	}

	logger := cfg.Logger
	if cfg.Session != nil {
		logger = logger.With().Str("session", cfg.Session.ID()).Logger()
	}

	return &Client{
		session:   cfg.Session,
		base:      base,
		transport: tr,
		logger:    logger,
	}
}

// Session returns the session this client operates on.
func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) fdfeURL(endpoint string) string {
	return c.base + fdfePath + endpoint
}

// getEnvelope performs an envelope GET against an fdfe endpoint.
func (c *Client) getEnvelope(ctx context.Context, rawURL string, params url.Values) (*protocol.ResponseWrapper, error) {
	body, err := c.transport.Get(ctx, rawURL, params, defaultHeaders(c.session))
	if err != nil {
		return nil, err
	}
	return protocol.ParseResponseWrapper(body)
}

// postEnvelope performs a form-encoded envelope POST against an fdfe endpoint.
func (c *Client) postEnvelope(ctx context.Context, rawURL string, form url.Values) (*protocol.ResponseWrapper, error) {
	body, err := c.transport.PostForm(ctx, rawURL, form, defaultHeaders(c.session))
	if err != nil {
		return nil, err
	}
	return protocol.ParseResponseWrapper(body)
}

func unexpectedPayload(want string, p *protocol.Payload) error {
	return fmt.Errorf("%w: got %s, want %s", ErrUnexpectedPayload, p.Kind(), want)
}

// Details fetches the catalog document for one package. Prefetched related
// lists and the caller's own review, which the server embeds alongside the
// primary document, are folded in before returning.
func (c *Client) Details(ctx context.Context, packageName string) (*protocol.DetailsResponse, error) {
	params := url.Values{}
	params.Set("doc", packageName)

	w, err := c.getEnvelope(ctx, c.fdfeURL("details"), params)
	if err != nil {
		return nil, err
	}
	if w.Payload.Kind() != protocol.KindDetails {
		return nil, unexpectedPayload("details", w.Payload)
	}
	return mergeDetails(w), nil
}

// BulkDetails fetches details for several packages in one call. The
// response has one entry per requested package, in request order; entries
// for unknown packages carry no document.
func (c *Client) BulkDetails(ctx context.Context, packageNames []string) (*protocol.BulkDetailsResponse, error) {
	req := &protocol.BulkDetailsRequest{Docid: packageNames}
	body, err := c.transport.Post(ctx, c.fdfeURL("bulkDetails"), protocol.Marshal(req), defaultHeaders(c.session))
	if err != nil {
		return nil, err
	}
	w, err := protocol.ParseResponseWrapper(body)
	if err != nil {
		return nil, err
	}
	if w.Payload.Kind() != protocol.KindBulkDetails {
		return nil, unexpectedPayload("bulkDetails", w.Payload)
	}
	return w.Payload.BulkDetailsResponse, nil
}

// Browse fetches category listings.
func (c *Client) Browse(ctx context.Context, opts BrowseOptions) (*protocol.BrowseResponse, error) {
	params := defaultParams(Paging{})
	if opts.CategoryID != "" {
		params.Set("cat", opts.CategoryID)
	}
	if opts.SubcategoryID != "" {
		params.Set("ctr", opts.SubcategoryID)
	}

	w, err := c.getEnvelope(ctx, c.fdfeURL("browse"), params)
	if err != nil {
		return nil, err
	}
	if w.Payload.Kind() != protocol.KindBrowse {
		return nil, unexpectedPayload("browse", w.Payload)
	}
	return w.Payload.BrowseResponse, nil
}

// Categories fetches the top-level category list, or the subcategories of
// the given category when non-empty.
func (c *Client) Categories(ctx context.Context, category string) (*protocol.BrowseResponse, error) {
	params := defaultParams(Paging{})
	if category != "" {
		params.Set("cat", category)
	}

	w, err := c.getEnvelope(ctx, c.fdfeURL("categories"), params)
	if err != nil {
		return nil, err
	}
	if w.Payload.Kind() != protocol.KindBrowse {
		return nil, unexpectedPayload("browse", w.Payload)
	}
	return w.Payload.BrowseResponse, nil
}

// Search runs a full-text catalog search.
func (c *Client) Search(ctx context.Context, query string, paging Paging) (*protocol.SearchResponse, error) {
	params := defaultParams(paging)
	params.Set("q", query)

	w, err := c.getEnvelope(ctx, c.fdfeURL("search"), params)
	if err != nil {
		return nil, err
	}
	if w.Payload.Kind() != protocol.KindSearch {
		return nil, unexpectedPayload("search", w.Payload)
	}
	return w.Payload.SearchResponse, nil
}

// List fetches the documents of a subcategory, such as the top free apps of
// a category.
func (c *Client) List(ctx context.Context, category, subcategory string, paging Paging) (*protocol.ListResponse, error) {
	params := defaultParams(paging)
	params.Set("cat", category)
	if subcategory != "" {
		params.Set("ctr", subcategory)
	}

	w, err := c.getEnvelope(ctx, c.fdfeURL("list"), params)
	if err != nil {
		return nil, err
	}
	if w.Payload.Kind() != protocol.KindList {
		return nil, unexpectedPayload("list", w.Payload)
	}
	return w.Payload.ListResponse, nil
}

// SearchSuggest fetches type-ahead suggestions for a partial query.
func (c *Client) SearchSuggest(ctx context.Context, query string, opts SearchSuggestOptions) (*protocol.SearchSuggestResponse, error) {
	if opts.Type == 0 {
		opts.Type = SuggestSearchString
	}
	params := defaultParams(Paging{})
	params.Set("q", query)
	params.Set("ssis", "120")
	params.Set("sst", strconv.Itoa(int(opts.Type)))

	w, err := c.getEnvelope(ctx, c.fdfeURL("searchSuggest"), params)
	if err != nil {
		return nil, err
	}
	if w.Payload.Kind() != protocol.KindSearchSuggest {
		return nil, unexpectedPayload("searchSuggest", w.Payload)
	}
	return w.Payload.SearchSuggestResponse, nil
}

// Purchase acquires a package, which for free apps mints the download url
// and cookie. Paid apps that were bought earlier should use Delivery.
func (c *Client) Purchase(ctx context.Context, packageName string, versionCode, offerType int) (*protocol.BuyResponse, error) {
	form := url.Values{}
	form.Set("ot", strconv.Itoa(offerType))
	form.Set("doc", packageName)
	form.Set("vc", strconv.Itoa(versionCode))

	w, err := c.postEnvelope(ctx, c.fdfeURL("purchase"), form)
	if err != nil {
		return nil, err
	}
	if w.Payload.Kind() != protocol.KindBuy {
		return nil, unexpectedPayload("buy", w.Payload)
	}
	return w.Payload.BuyResponse, nil
}

// Delivery fetches the download url and cookie of an already-purchased
// package.
func (c *Client) Delivery(ctx context.Context, packageName string, versionCode, offerType int) (*protocol.DeliveryResponse, error) {
	params := url.Values{}
	params.Set("ot", strconv.Itoa(offerType))
	params.Set("doc", packageName)
	params.Set("vc", strconv.Itoa(versionCode))

	w, err := c.getEnvelope(ctx, c.fdfeURL("delivery"), params)
	if err != nil {
		return nil, err
	}
	if w.Payload.Kind() != protocol.KindDelivery {
		return nil, unexpectedPayload("delivery", w.Payload)
	}
	return w.Payload.DeliveryResponse, nil
}

// Reviews fetches reviews of a package.
func (c *Client) Reviews(ctx context.Context, packageName string, opts ReviewsOptions) (*protocol.ReviewResponse, error) {
	params := defaultParams(opts.Paging)
	params.Set("doc", packageName)
	params.Set("sort", strconv.Itoa(int(opts.Sort)))
	if opts.VersionCode > 0 {
		params.Set("vc", strconv.Itoa(opts.VersionCode))
	}

	w, err := c.getEnvelope(ctx, c.fdfeURL("rev"), params)
	if err != nil {
		return nil, err
	}
	if w.Payload.Kind() != protocol.KindReview {
		return nil, unexpectedPayload("review", w.Payload)
	}
	return w.Payload.ReviewResponse, nil
}

// AddOrEditReview creates the account's review of a package, replacing any
// existing one.
func (c *Client) AddOrEditReview(ctx context.Context, args AddReviewArgs) (*protocol.ReviewResponse, error) {
	form := url.Values{}
	form.Set("doc", args.PackageName)
	form.Set("title", args.Title)
	form.Set("content", args.Comment)
	form.Set("rating", strconv.Itoa(args.Stars))

	w, err := c.postEnvelope(ctx, c.fdfeURL("addReview"), form)
	if err != nil {
		return nil, err
	}
	if w.Payload.Kind() != protocol.KindReview {
		return nil, unexpectedPayload("review", w.Payload)
	}
	return w.Payload.ReviewResponse, nil
}

// DeleteReview removes the account's review of a package.
func (c *Client) DeleteReview(ctx context.Context, packageName string) error {
	form := url.Values{}
	form.Set("doc", packageName)

	_, err := c.transport.PostForm(ctx, c.fdfeURL("deleteReview"), form, defaultHeaders(c.session))
	return err
}

// Recommendations fetches apps related to a package.
func (c *Client) Recommendations(ctx context.Context, packageName string, opts RecommendationsOptions) (*protocol.ListResponse, error) {
	if opts.Type == 0 {
		opts.Type = AlsoViewed
	}
	params := defaultParams(opts.Paging)
	params.Set("doc", packageName)
	params.Set("rt", strconv.Itoa(int(opts.Type)))

	w, err := c.getEnvelope(ctx, c.fdfeURL("rec"), params)
	if err != nil {
		return nil, err
	}
	if w.Payload.Kind() != protocol.KindList {
		return nil, unexpectedPayload("list", w.Payload)
	}
	return w.Payload.ListResponse, nil
}

// UploadDeviceConfig registers the session's device configuration with the
// server. Without this, some packages are hidden from search and details.
func (c *Client) UploadDeviceConfig(ctx context.Context) (*protocol.UploadDeviceConfigResponse, error) {
	req := &protocol.UploadDeviceConfigRequest{
		DeviceConfiguration: c.session.Profile().DeviceConfiguration(),
	}

	headers := defaultHeaders(c.session)
	headers["X-DFE-Enabled-Experiments"] = "cl:billing.select_add_instrument_by_default"
	headers["X-DFE-Unsupported-Experiments"] = "nocache:billing.use_charging_poller,market_emails,buyer_currency,prod_baseline,checkin.set_asset_paid_app_field,shekel_test,content_ratings,buyer_currency_in_app,nocache:encrypted_apk,recent_changes"
	headers["X-DFE-Client-Id"] = "am-android-google"
	headers["X-DFE-SmallestScreenWidthDp"] = "320"
	headers["X-DFE-Filter-Level"] = "3"

	body, err := c.transport.Post(ctx, c.fdfeURL("uploadDeviceConfig"), protocol.Marshal(req), headers)
	if err != nil {
		return nil, err
	}
	w, err := protocol.ParseResponseWrapper(body)
	if err != nil {
		return nil, err
	}
	if w.Payload.Kind() != protocol.KindUploadDeviceConfig {
		return nil, unexpectedPayload("uploadDeviceConfig", w.Payload)
	}
	return w.Payload.UploadDeviceConfigResponse, nil
}

// GenericGet fetches an arbitrary envelope URL with the standard headers
// and the app-catalog filter. Use it for the continuation and suggestion
// urls the server embeds in responses.
func (c *Client) GenericGet(ctx context.Context, rawURL string, params map[string]string) (*protocol.Payload, error) {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	if values.Get("c") == "" {
		values.Set("c", appsCategory)
	}

	w, err := c.getEnvelope(ctx, rawURL, values)
	if err != nil {
		return nil, err
	}
	return w.Payload, nil
}
