package protocol

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// PayloadKind discriminates which response variant an envelope carries.
type PayloadKind int

const (
	// KindUnknown means no recognized response field was present.
	KindUnknown PayloadKind = iota
	KindList
	KindDetails
	KindReview
	KindBuy
	KindSearch
	KindBrowse
	KindBulkDetails
	KindDelivery
	KindUploadDeviceConfig
	KindSearchSuggest
)

// String returns the kind name as it appears in logs.
func (k PayloadKind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindDetails:
		return "details"
	case KindReview:
		return "review"
	case KindBuy:
		return "buy"
	case KindSearch:
		return "search"
	case KindBrowse:
		return "browse"
	case KindBulkDetails:
		return "bulkDetails"
	case KindDelivery:
		return "delivery"
	case KindUploadDeviceConfig:
		return "uploadDeviceConfig"
	case KindSearchSuggest:
		return "searchSuggest"
	default:
		return "unknown"
	}
}

// ResponseWrapper is the top-level envelope every fdfe endpoint returns: one
// primary payload plus zero or more prefetched sub-responses.
type ResponseWrapper struct {
	Payload  *Payload   // field 1
	PreFetch []*PreFetch // field 2
}

// PreFetch is an embedded sub-response the server includes proactively,
// keyed by the URL it was fetched for.
type PreFetch struct {
	URL      string           // field 1
	Response *ResponseWrapper // field 2
	Etag     string           // field 3
	TTL      int64            // field 4
}

// Payload is the one-of over the known response variants. Exactly one field
// is set on a well-formed response; an envelope where none of the known
// fields is present decodes to a Payload whose Kind is KindUnknown rather
// than an error, so server-added variants pass through untouched.
type Payload struct {
	ListResponse               *ListResponse               // field 1
	DetailsResponse            *DetailsResponse            // field 2
	ReviewResponse             *ReviewResponse             // field 3
	BuyResponse                *BuyResponse                // field 4
	SearchResponse             *SearchResponse             // field 5
	BrowseResponse             *BrowseResponse             // field 7
	BulkDetailsResponse        *BulkDetailsResponse        // field 19
	DeliveryResponse           *DeliveryResponse           // field 21
	UploadDeviceConfigResponse *UploadDeviceConfigResponse // field 25
	SearchSuggestResponse      *SearchSuggestResponse      // field 40
}

// Kind reports which variant is set.
func (p *Payload) Kind() PayloadKind {
	switch {
	case p == nil:
		return KindUnknown
	case p.ListResponse != nil:
		return KindList
	case p.DetailsResponse != nil:
		return KindDetails
	case p.ReviewResponse != nil:
		return KindReview
	case p.BuyResponse != nil:
		return KindBuy
	case p.SearchResponse != nil:
		return KindSearch
	case p.BrowseResponse != nil:
		return KindBrowse
	case p.BulkDetailsResponse != nil:
		return KindBulkDetails
	case p.DeliveryResponse != nil:
		return KindDelivery
	case p.UploadDeviceConfigResponse != nil:
		return KindUploadDeviceConfig
	case p.SearchSuggestResponse != nil:
		return KindSearchSuggest
	default:
		return KindUnknown
	}
}

func (w *ResponseWrapper) appendTo(b []byte) []byte {
	if w.Payload != nil {
		b = appendMessage(b, 1, w.Payload)
	}
	for _, pf := range w.PreFetch {
		b = appendMessage(b, 2, pf)
	}
	return b
}

func (pf *PreFetch) appendTo(b []byte) []byte {
	b = appendString(b, 1, pf.URL)
	if pf.Response != nil {
		b = appendMessage(b, 2, pf.Response)
	}
	b = appendString(b, 3, pf.Etag)
	b = appendVarint(b, 4, pf.TTL)
	return b
}

func (p *Payload) appendTo(b []byte) []byte {
	if p.ListResponse != nil {
		b = appendMessage(b, 1, p.ListResponse)
	}
	if p.DetailsResponse != nil {
		b = appendMessage(b, 2, p.DetailsResponse)
	}
	if p.ReviewResponse != nil {
		b = appendMessage(b, 3, p.ReviewResponse)
	}
	if p.BuyResponse != nil {
		b = appendMessage(b, 4, p.BuyResponse)
	}
	if p.SearchResponse != nil {
		b = appendMessage(b, 5, p.SearchResponse)
	}
	if p.BrowseResponse != nil {
		b = appendMessage(b, 7, p.BrowseResponse)
	}
	if p.BulkDetailsResponse != nil {
		b = appendMessage(b, 19, p.BulkDetailsResponse)
	}
	if p.DeliveryResponse != nil {
		b = appendMessage(b, 21, p.DeliveryResponse)
	}
	if p.UploadDeviceConfigResponse != nil {
		b = appendMessage(b, 25, p.UploadDeviceConfigResponse)
	}
	if p.SearchSuggestResponse != nil {
		b = appendMessage(b, 40, p.SearchSuggestResponse)
	}
	return b
}

// ParseResponseWrapper decodes a top-level envelope.
func ParseResponseWrapper(data []byte) (*ResponseWrapper, error) {
	w := &ResponseWrapper{}
	err := scanFields("ResponseWrapper", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return n, nil
		}
		switch num {
		case 1:
			p, err := parsePayload(v)
			if err != nil {
				return 0, err
			}
			w.Payload = p
		case 2:
			pf, err := parsePreFetch(v)
			if err != nil {
				return 0, err
			}
			w.PreFetch = append(w.PreFetch, pf)
		default:
			return 0, nil
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func parsePreFetch(data []byte) (*PreFetch, error) {
	pf := &PreFetch{}
	err := scanFields("PreFetch", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 1, 2, 3:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			switch num {
			case 1:
				pf.URL = string(v)
			case 2:
				r, err := ParseResponseWrapper(v)
				if err != nil {
					return 0, err
				}
				pf.Response = r
			case 3:
				pf.Etag = string(v)
			}
			return n, nil
		case 4:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			pf.TTL = int64(v)
			return n, nil
		default:
			return 0, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return pf, nil
}

func parsePayload(data []byte) (*Payload, error) {
	p := &Payload{}
	err := scanFields("Payload", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return n, nil
		}
		var err error
		switch num {
		case 1:
			p.ListResponse, err = parseListResponse(v)
		case 2:
			p.DetailsResponse, err = parseDetailsResponse(v)
		case 3:
			p.ReviewResponse, err = parseReviewResponse(v)
		case 4:
			p.BuyResponse, err = parseBuyResponse(v)
		case 5:
			p.SearchResponse, err = parseSearchResponse(v)
		case 7:
			p.BrowseResponse, err = parseBrowseResponse(v)
		case 19:
			p.BulkDetailsResponse, err = parseBulkDetailsResponse(v)
		case 21:
			p.DeliveryResponse, err = parseDeliveryResponse(v)
		case 25:
			p.UploadDeviceConfigResponse, err = parseUploadDeviceConfigResponse(v)
		case 40:
			p.SearchSuggestResponse, err = parseSearchSuggestResponse(v)
		default:
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
