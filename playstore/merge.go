package playstore

import (
	"github.com/playapi/playapi/protocol"
)

// mergeDetails folds an envelope's prefetch entries into its primary
// details response. The server embeds the related-apps lists and the
// caller's own review as prefetched sub-responses rather than as part of
// the details document itself.
//
// Entries are processed in encounter order. A list-kind entry contributes
// its first document as a child of the primary document; a review-kind
// entry sets the user review, so when several are present the last one
// wins. Every other payload kind is skipped, keeping the merge forward
// compatible with prefetch kinds this client does not know. Nested
// envelopes are not descended into.
func mergeDetails(w *protocol.ResponseWrapper) *protocol.DetailsResponse {
	details := w.Payload.DetailsResponse

	for _, pf := range w.PreFetch {
		if pf.Response == nil || pf.Response.Payload == nil {
			continue
		}
		sub := pf.Response.Payload

		if sub.ListResponse != nil && len(sub.ListResponse.Doc) > 0 {
			if details.DocV2 == nil {
				details.DocV2 = &protocol.DocV2{}
			}
			details.DocV2.Child = append(details.DocV2.Child, sub.ListResponse.Doc[0])
		}
		if sub.ReviewResponse != nil && sub.ReviewResponse.GetResponse != nil && len(sub.ReviewResponse.GetResponse.Review) > 0 {
			details.UserReview = sub.ReviewResponse.GetResponse.Review[0]
		}
	}

	return details
}
