package protocol

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// DocV2 is a catalog document: an app, a category card, or any other entry
// the server lists. Child documents are populated by prefetch merging on
// details responses and by the server itself on list responses.
type DocV2 struct {
	Docid           string   // field 1
	BackendID       int32    // field 2
	DocType         int32    // field 3
	Title           string   // field 5
	Creator         string   // field 6
	DescriptionHTML string   // field 7
	Child           []*DocV2 // field 11
}

// DetailsResponse carries the primary document of a details call plus the
// caller's own review once merging has run.
type DetailsResponse struct {
	DocV2      *DocV2  // field 4
	UserReview *Review // field 5
}

// ListResponse is an ordered sequence of documents.
type ListResponse struct {
	Doc []*DocV2 // field 2
}

// SearchResponse carries full-text search results, plus the corrected query
// when the server second-guesses the input.
type SearchResponse struct {
	OriginalQuery  string   // field 1
	SuggestedQuery string   // field 2
	AggregateQuery bool     // field 3
	Doc            []*DocV2 // field 5
}

// BrowseLink is a navigable category entry.
type BrowseLink struct {
	Name    string // field 1
	DataURL string // field 3
}

// BrowseResponse lists categories or subcategories.
type BrowseResponse struct {
	ContentsURL string        // field 1
	PromoURL    string        // field 2
	Category    []*BrowseLink // field 3
	Breadcrumb  []*BrowseLink // field 4
}

// HTTPCookie is a download-authorization cookie issued by purchase/delivery.
type HTTPCookie struct {
	Name  string // field 1
	Value string // field 2
}

// AppDeliveryData holds everything needed to fetch a package binary.
type AppDeliveryData struct {
	DownloadSize       int64         // field 1
	Signature          string        // field 2
	DownloadURL        string        // field 3
	DownloadAuthCookie []*HTTPCookie // field 5
}

// BuyResponse is returned by purchase. For free apps it already carries the
// delivery data, so a separate delivery call is not needed.
type BuyResponse struct {
	PurchaseStatus  int32            // field 1
	DownloadToken   string           // field 2
	AppDeliveryData *AppDeliveryData // field 3
}

// DeliveryResponse is returned by delivery for already-purchased apps.
type DeliveryResponse struct {
	Status          int32            // field 1
	AppDeliveryData *AppDeliveryData // field 2
}

// Review is a single user review of a document.
type Review struct {
	AuthorName    string // field 2
	StarRating    int32  // field 6
	Title         string // field 7
	Comment       string // field 8
	CommentID     string // field 9
	TimestampMsec int64  // field 11
}

// GetReviewsResponse is the inner list of a review response.
type GetReviewsResponse struct {
	Review        []*Review // field 1
	MatchingCount int64     // field 2
}

// ReviewResponse wraps the review list returned by rev and addReview.
type ReviewResponse struct {
	GetResponse *GetReviewsResponse // field 1
}

// BulkDetailsRequest asks for details of several packages at once.
type BulkDetailsRequest struct {
	Docid            []string // field 1
	IncludeChildDocs bool     // field 2
}

// BulkDetailsEntry is one per requested package; Doc is nil when the package
// is unknown to the server.
type BulkDetailsEntry struct {
	Doc *DocV2 // field 1
}

// BulkDetailsResponse mirrors the request order entry by entry.
type BulkDetailsResponse struct {
	Entry []*BulkDetailsEntry // field 1
}

// UploadDeviceConfigRequest registers the device configuration server-side.
type UploadDeviceConfigRequest struct {
	DeviceConfiguration *DeviceConfiguration // field 1
}

// UploadDeviceConfigResponse acknowledges an uploadDeviceConfig call.
type UploadDeviceConfigResponse struct {
	UploadDeviceConfigToken string // field 1
}

// SearchSuggestEntry is a single type-ahead suggestion.
type SearchSuggestEntry struct {
	Type           int32  // field 1
	SuggestedQuery string // field 2
	Title          string // field 3
	PackageName    string // field 4
}

// SearchSuggestResponse lists type-ahead suggestions for a partial query.
type SearchSuggestResponse struct {
	Entry []*SearchSuggestEntry // field 1
}

func (d *DocV2) appendTo(b []byte) []byte {
	b = appendString(b, 1, d.Docid)
	b = appendVarint(b, 2, int64(d.BackendID))
	b = appendVarint(b, 3, int64(d.DocType))
	b = appendString(b, 5, d.Title)
	b = appendString(b, 6, d.Creator)
	b = appendString(b, 7, d.DescriptionHTML)
	for _, c := range d.Child {
		b = appendMessage(b, 11, c)
	}
	return b
}

func parseDocV2(data []byte) (*DocV2, error) {
	d := &DocV2{}
	err := scanFields("DocV2", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 1, 5, 6, 7, 11:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			switch num {
			case 1:
				d.Docid = string(v)
			case 5:
				d.Title = string(v)
			case 6:
				d.Creator = string(v)
			case 7:
				d.DescriptionHTML = string(v)
			case 11:
				c, err := parseDocV2(v)
				if err != nil {
					return 0, err
				}
				d.Child = append(d.Child, c)
			}
			return n, nil
		case 2, 3:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			if num == 2 {
				d.BackendID = int32(v)
			} else {
				d.DocType = int32(v)
			}
			return n, nil
		default:
			return 0, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DetailsResponse) appendTo(b []byte) []byte {
	if r.DocV2 != nil {
		b = appendMessage(b, 4, r.DocV2)
	}
	if r.UserReview != nil {
		b = appendMessage(b, 5, r.UserReview)
	}
	return b
}

func parseDetailsResponse(data []byte) (*DetailsResponse, error) {
	r := &DetailsResponse{}
	err := scanFields("DetailsResponse", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return n, nil
		}
		switch num {
		case 4:
			d, err := parseDocV2(v)
			if err != nil {
				return 0, err
			}
			r.DocV2 = d
		case 5:
			rv, err := parseReview(v)
			if err != nil {
				return 0, err
			}
			r.UserReview = rv
		default:
			return 0, nil
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ListResponse) appendTo(b []byte) []byte {
	for _, d := range r.Doc {
		b = appendMessage(b, 2, d)
	}
	return b
}

func (r *SearchResponse) appendTo(b []byte) []byte {
	b = appendString(b, 1, r.OriginalQuery)
	b = appendString(b, 2, r.SuggestedQuery)
	b = appendBool(b, 3, r.AggregateQuery)
	for _, d := range r.Doc {
		b = appendMessage(b, 5, d)
	}
	return b
}

func parseListResponse(data []byte) (*ListResponse, error) {
	r := &ListResponse{}
	err := scanFields("ListResponse", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num != 2 || typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return n, nil
		}
		d, err := parseDocV2(v)
		if err != nil {
			return 0, err
		}
		r.Doc = append(r.Doc, d)
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func parseSearchResponse(data []byte) (*SearchResponse, error) {
	r := &SearchResponse{}
	err := scanFields("SearchResponse", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 1, 2, 5:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			switch num {
			case 1:
				r.OriginalQuery = string(v)
			case 2:
				r.SuggestedQuery = string(v)
			case 5:
				d, err := parseDocV2(v)
				if err != nil {
					return 0, err
				}
				r.Doc = append(r.Doc, d)
			}
			return n, nil
		case 3:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			r.AggregateQuery = v != 0
			return n, nil
		default:
			return 0, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (l *BrowseLink) appendTo(b []byte) []byte {
	b = appendString(b, 1, l.Name)
	b = appendString(b, 3, l.DataURL)
	return b
}

func parseBrowseLink(data []byte) (*BrowseLink, error) {
	l := &BrowseLink{}
	err := scanFields("BrowseLink", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return n, nil
		}
		switch num {
		case 1:
			l.Name = string(v)
		case 3:
			l.DataURL = string(v)
		default:
			return 0, nil
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *BrowseResponse) appendTo(b []byte) []byte {
	b = appendString(b, 1, r.ContentsURL)
	b = appendString(b, 2, r.PromoURL)
	for _, c := range r.Category {
		b = appendMessage(b, 3, c)
	}
	for _, c := range r.Breadcrumb {
		b = appendMessage(b, 4, c)
	}
	return b
}

func parseBrowseResponse(data []byte) (*BrowseResponse, error) {
	r := &BrowseResponse{}
	err := scanFields("BrowseResponse", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return n, nil
		}
		switch num {
		case 1:
			r.ContentsURL = string(v)
		case 2:
			r.PromoURL = string(v)
		case 3, 4:
			l, err := parseBrowseLink(v)
			if err != nil {
				return 0, err
			}
			if num == 3 {
				r.Category = append(r.Category, l)
			} else {
				r.Breadcrumb = append(r.Breadcrumb, l)
			}
		default:
			return 0, nil
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (c *HTTPCookie) appendTo(b []byte) []byte {
	b = appendString(b, 1, c.Name)
	b = appendString(b, 2, c.Value)
	return b
}

func parseHTTPCookie(data []byte) (*HTTPCookie, error) {
	c := &HTTPCookie{}
	err := scanFields("HttpCookie", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return n, nil
		}
		switch num {
		case 1:
			c.Name = string(v)
		case 2:
			c.Value = string(v)
		default:
			return 0, nil
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (d *AppDeliveryData) appendTo(b []byte) []byte {
	b = appendVarint(b, 1, d.DownloadSize)
	b = appendString(b, 2, d.Signature)
	b = appendString(b, 3, d.DownloadURL)
	for _, c := range d.DownloadAuthCookie {
		b = appendMessage(b, 5, c)
	}
	return b
}

func parseAppDeliveryData(data []byte) (*AppDeliveryData, error) {
	d := &AppDeliveryData{}
	err := scanFields("AppDeliveryData", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 1:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			d.DownloadSize = int64(v)
			return n, nil
		case 2, 3, 5:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			switch num {
			case 2:
				d.Signature = string(v)
			case 3:
				d.DownloadURL = string(v)
			case 5:
				c, err := parseHTTPCookie(v)
				if err != nil {
					return 0, err
				}
				d.DownloadAuthCookie = append(d.DownloadAuthCookie, c)
			}
			return n, nil
		default:
			return 0, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *BuyResponse) appendTo(b []byte) []byte {
	b = appendVarint(b, 1, int64(r.PurchaseStatus))
	b = appendString(b, 2, r.DownloadToken)
	if r.AppDeliveryData != nil {
		b = appendMessage(b, 3, r.AppDeliveryData)
	}
	return b
}

func parseBuyResponse(data []byte) (*BuyResponse, error) {
	r := &BuyResponse{}
	err := scanFields("BuyResponse", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 1:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			r.PurchaseStatus = int32(v)
			return n, nil
		case 2, 3:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			if num == 2 {
				r.DownloadToken = string(v)
			} else {
				d, err := parseAppDeliveryData(v)
				if err != nil {
					return 0, err
				}
				r.AppDeliveryData = d
			}
			return n, nil
		default:
			return 0, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *DeliveryResponse) appendTo(b []byte) []byte {
	b = appendVarint(b, 1, int64(r.Status))
	if r.AppDeliveryData != nil {
		b = appendMessage(b, 2, r.AppDeliveryData)
	}
	return b
}

func parseDeliveryResponse(data []byte) (*DeliveryResponse, error) {
	r := &DeliveryResponse{}
	err := scanFields("DeliveryResponse", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 1:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			r.Status = int32(v)
			return n, nil
		case 2:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			d, err := parseAppDeliveryData(v)
			if err != nil {
				return 0, err
			}
			r.AppDeliveryData = d
			return n, nil
		default:
			return 0, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Review) appendTo(b []byte) []byte {
	b = appendString(b, 2, r.AuthorName)
	b = appendVarint(b, 6, int64(r.StarRating))
	b = appendString(b, 7, r.Title)
	b = appendString(b, 8, r.Comment)
	b = appendString(b, 9, r.CommentID)
	b = appendVarint(b, 11, r.TimestampMsec)
	return b
}

func parseReview(data []byte) (*Review, error) {
	r := &Review{}
	err := scanFields("Review", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 2, 7, 8, 9:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			switch num {
			case 2:
				r.AuthorName = string(v)
			case 7:
				r.Title = string(v)
			case 8:
				r.Comment = string(v)
			case 9:
				r.CommentID = string(v)
			}
			return n, nil
		case 6, 11:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			if num == 6 {
				r.StarRating = int32(v)
			} else {
				r.TimestampMsec = int64(v)
			}
			return n, nil
		default:
			return 0, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *GetReviewsResponse) appendTo(b []byte) []byte {
	for _, rv := range r.Review {
		b = appendMessage(b, 1, rv)
	}
	b = appendVarint(b, 2, r.MatchingCount)
	return b
}

func parseGetReviewsResponse(data []byte) (*GetReviewsResponse, error) {
	r := &GetReviewsResponse{}
	err := scanFields("GetReviewsResponse", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 1:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			rv, err := parseReview(v)
			if err != nil {
				return 0, err
			}
			r.Review = append(r.Review, rv)
			return n, nil
		case 2:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			r.MatchingCount = int64(v)
			return n, nil
		default:
			return 0, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ReviewResponse) appendTo(b []byte) []byte {
	if r.GetResponse != nil {
		b = appendMessage(b, 1, r.GetResponse)
	}
	return b
}

func parseReviewResponse(data []byte) (*ReviewResponse, error) {
	r := &ReviewResponse{}
	err := scanFields("ReviewResponse", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num != 1 || typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return n, nil
		}
		gr, err := parseGetReviewsResponse(v)
		if err != nil {
			return 0, err
		}
		r.GetResponse = gr
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *BulkDetailsRequest) appendTo(b []byte) []byte {
	b = appendStrings(b, 1, r.Docid)
	b = appendBool(b, 2, r.IncludeChildDocs)
	return b
}

func (e *BulkDetailsEntry) appendTo(b []byte) []byte {
	if e.Doc != nil {
		b = appendMessage(b, 1, e.Doc)
	}
	return b
}

func parseBulkDetailsEntry(data []byte) (*BulkDetailsEntry, error) {
	e := &BulkDetailsEntry{}
	err := scanFields("BulkDetailsEntry", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num != 1 || typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return n, nil
		}
		d, err := parseDocV2(v)
		if err != nil {
			return 0, err
		}
		e.Doc = d
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *BulkDetailsResponse) appendTo(b []byte) []byte {
	for _, e := range r.Entry {
		b = appendMessage(b, 1, e)
	}
	return b
}

func parseBulkDetailsResponse(data []byte) (*BulkDetailsResponse, error) {
	r := &BulkDetailsResponse{}
	err := scanFields("BulkDetailsResponse", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num != 1 || typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return n, nil
		}
		e, err := parseBulkDetailsEntry(v)
		if err != nil {
			return 0, err
		}
		r.Entry = append(r.Entry, e)
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *UploadDeviceConfigRequest) appendTo(b []byte) []byte {
	if r.DeviceConfiguration != nil {
		b = appendMessage(b, 1, r.DeviceConfiguration)
	}
	return b
}

func (r *UploadDeviceConfigResponse) appendTo(b []byte) []byte {
	b = appendString(b, 1, r.UploadDeviceConfigToken)
	return b
}

func parseUploadDeviceConfigResponse(data []byte) (*UploadDeviceConfigResponse, error) {
	r := &UploadDeviceConfigResponse{}
	err := scanFields("UploadDeviceConfigResponse", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num != 1 || typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return n, nil
		}
		r.UploadDeviceConfigToken = string(v)
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (e *SearchSuggestEntry) appendTo(b []byte) []byte {
	b = appendVarint(b, 1, int64(e.Type))
	b = appendString(b, 2, e.SuggestedQuery)
	b = appendString(b, 3, e.Title)
	b = appendString(b, 4, e.PackageName)
	return b
}

func parseSearchSuggestEntry(data []byte) (*SearchSuggestEntry, error) {
	e := &SearchSuggestEntry{}
	err := scanFields("SearchSuggestEntry", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 1:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			e.Type = int32(v)
			return n, nil
		case 2, 3, 4:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			switch num {
			case 2:
				e.SuggestedQuery = string(v)
			case 3:
				e.Title = string(v)
			case 4:
				e.PackageName = string(v)
			}
			return n, nil
		default:
			return 0, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *SearchSuggestResponse) appendTo(b []byte) []byte {
	for _, e := range r.Entry {
		b = appendMessage(b, 1, e)
	}
	return b
}

func parseSearchSuggestResponse(data []byte) (*SearchSuggestResponse, error) {
	r := &SearchSuggestResponse{}
	err := scanFields("SearchSuggestResponse", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if num != 1 || typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return n, nil
		}
		e, err := parseSearchSuggestEntry(v)
		if err != nil {
			return 0, err
		}
		r.Entry = append(r.Entry, e)
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
