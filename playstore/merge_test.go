package playstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playapi/playapi/protocol"
)

func detailsEnvelope(pf ...*protocol.PreFetch) *protocol.ResponseWrapper {
	return &protocol.ResponseWrapper{
		Payload: &protocol.Payload{
			DetailsResponse: &protocol.DetailsResponse{
				DocV2: &protocol.DocV2{Docid: "com.example.app", Title: "Example"},
			},
		},
		PreFetch: pf,
	}
}

func listPrefetch(docids ...string) *protocol.PreFetch {
	list := &protocol.ListResponse{}
	for _, id := range docids {
		list.Doc = append(list.Doc, &protocol.DocV2{Docid: id})
	}
	return &protocol.PreFetch{
		URL:      "list?c=3",
		Response: &protocol.ResponseWrapper{Payload: &protocol.Payload{ListResponse: list}},
	}
}

func reviewPrefetch(comments ...string) *protocol.PreFetch {
	gr := &protocol.GetReviewsResponse{}
	for _, comment := range comments {
		gr.Review = append(gr.Review, &protocol.Review{Comment: comment})
	}
	return &protocol.PreFetch{
		URL: "rev?c=3",
		Response: &protocol.ResponseWrapper{Payload: &protocol.Payload{
			ReviewResponse: &protocol.ReviewResponse{GetResponse: gr},
		}},
	}
}

func TestMergeDetailsNoPrefetch(t *testing.T) {
	got := mergeDetails(detailsEnvelope())

	assert.Equal(t, "com.example.app", got.DocV2.Docid)
	assert.Empty(t, got.DocV2.Child)
	assert.Nil(t, got.UserReview)
}

func TestMergeDetailsOrderAndTypeSelection(t *testing.T) {
	browse := &protocol.PreFetch{
		URL: "browse?c=3",
		Response: &protocol.ResponseWrapper{Payload: &protocol.Payload{
			BrowseResponse: &protocol.BrowseResponse{},
		}},
	}

	got := mergeDetails(detailsEnvelope(
		reviewPrefetch("mine"),
		listPrefetch("com.first.a", "com.first.b"),
		listPrefetch("com.second.a", "com.second.b"),
		browse,
	))

	// Two list entries contribute their first doc each, in prefetch order;
	// the browse entry contributes nothing.
	require.Len(t, got.DocV2.Child, 2)
	assert.Equal(t, "com.first.a", got.DocV2.Child[0].Docid)
	assert.Equal(t, "com.second.a", got.DocV2.Child[1].Docid)

	require.NotNil(t, got.UserReview)
	assert.Equal(t, "mine", got.UserReview.Comment)
}

func TestMergeDetailsLastReviewWins(t *testing.T) {
	got := mergeDetails(detailsEnvelope(
		reviewPrefetch("first", "ignored"),
		reviewPrefetch("second", "also ignored"),
	))

	require.NotNil(t, got.UserReview)
	assert.Equal(t, "second", got.UserReview.Comment)
}

func TestMergeDetailsSkipsEmptyAndUnknown(t *testing.T) {
	got := mergeDetails(detailsEnvelope(
		listPrefetch(),                   // list with no docs contributes nothing
		reviewPrefetch(),                 // review with no reviews contributes nothing
		&protocol.PreFetch{URL: "empty"}, // no nested response at all
		&protocol.PreFetch{
			URL:      "unknown",
			Response: &protocol.ResponseWrapper{Payload: &protocol.Payload{}},
		},
	))

	assert.Empty(t, got.DocV2.Child)
	assert.Nil(t, got.UserReview)
}

func TestMergeDetailsNoRecursion(t *testing.T) {
	// A list prefetch whose nested envelope itself carries prefetch entries:
	// only the first doc moves; grandchildren are not merged.
	nested := listPrefetch("com.child.app")
	nested.Response.PreFetch = []*protocol.PreFetch{listPrefetch("com.grandchild.app")}

	got := mergeDetails(detailsEnvelope(nested))

	require.Len(t, got.DocV2.Child, 1)
	assert.Equal(t, "com.child.app", got.DocV2.Child[0].Docid)
	assert.Empty(t, got.DocV2.Child[0].Child)
}
