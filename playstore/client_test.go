package playstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playapi/playapi/device"
	"github.com/playapi/playapi/protocol"
	"github.com/playapi/playapi/transport"
)

// newTestClient wires a client to an httptest server with retry intervals
// short enough for tests.
func newTestClient(t *testing.T, handler http.Handler) (*Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)

	c := NewClient(Config{
		Session: NewSession(device.Default(), "en_US"),
		BaseURL: server.URL,
		Transport: transport.New(transport.Config{
			Name:            "test",
			HTTPClient:      server.Client(),
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
			Logger:          zerolog.Nop(),
		}),
		Logger: zerolog.Nop(),
	})
	return c, server.Close
}

func writeEnvelope(w http.ResponseWriter, env *protocol.ResponseWrapper) {
	w.Write(protocol.Marshal(env))
}

func TestDetailsMergesPrefetch(t *testing.T) {
	env := &protocol.ResponseWrapper{
		Payload: &protocol.Payload{DetailsResponse: &protocol.DetailsResponse{
			DocV2: &protocol.DocV2{Docid: "com.example.app", Title: "Example"},
		}},
		PreFetch: []*protocol.PreFetch{
			{
				URL: "rev?doc=com.example.app",
				Response: &protocol.ResponseWrapper{Payload: &protocol.Payload{
					ReviewResponse: &protocol.ReviewResponse{GetResponse: &protocol.GetReviewsResponse{
						Review: []*protocol.Review{{Comment: "my own review"}},
					}},
				}},
			},
			{
				URL: "rec?doc=com.example.app&rt=1",
				Response: &protocol.ResponseWrapper{Payload: &protocol.Payload{
					ListResponse: &protocol.ListResponse{Doc: []*protocol.DocV2{
						{Docid: "com.related.one"}, {Docid: "com.related.dropped"},
					}},
				}},
			},
			{
				URL: "rec?doc=com.example.app&rt=2",
				Response: &protocol.ResponseWrapper{Payload: &protocol.Payload{
					ListResponse: &protocol.ListResponse{Doc: []*protocol.DocV2{
						{Docid: "com.related.two"},
					}},
				}},
			},
			{
				URL: "browse",
				Response: &protocol.ResponseWrapper{Payload: &protocol.Payload{
					BrowseResponse: &protocol.BrowseResponse{},
				}},
			},
		},
	}

	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fdfe/details", r.URL.Path)
		assert.Equal(t, "com.example.app", r.URL.Query().Get("doc"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Equal(t, "en-US", r.Header.Get("Accept-Language"))
		assert.NotEmpty(t, r.Header.Get("X-DFE-Encoded-Targets"))
		writeEnvelope(w, env)
	}))
	defer done()

	details, err := c.Details(context.Background(), "com.example.app")
	require.NoError(t, err)

	assert.Equal(t, "com.example.app", details.DocV2.Docid)
	require.Len(t, details.DocV2.Child, 2)
	assert.Equal(t, "com.related.one", details.DocV2.Child[0].Docid)
	assert.Equal(t, "com.related.two", details.DocV2.Child[1].Docid)
	require.NotNil(t, details.UserReview)
	assert.Equal(t, "my own review", details.UserReview.Comment)
}

func TestDetailsWithoutPrefetchUnmodified(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
			DetailsResponse: &protocol.DetailsResponse{DocV2: &protocol.DocV2{Docid: "com.example.app"}},
		}})
	}))
	defer done()

	details, err := c.Details(context.Background(), "com.example.app")
	require.NoError(t, err)
	assert.Empty(t, details.DocV2.Child)
	assert.Nil(t, details.UserReview)
}

func TestDetailsUnexpectedPayload(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
			BrowseResponse: &protocol.BrowseResponse{},
		}})
	}))
	defer done()

	_, err := c.Details(context.Background(), "com.example.app")
	require.ErrorIs(t, err, ErrUnexpectedPayload)
}

func TestBulkDetails(t *testing.T) {
	want := protocol.Marshal(&protocol.BulkDetailsRequest{
		Docid: []string{"com.one", "com.two"},
	})

	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/fdfe/bulkDetails", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, want, body)

		writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
			BulkDetailsResponse: &protocol.BulkDetailsResponse{Entry: []*protocol.BulkDetailsEntry{
				{Doc: &protocol.DocV2{Docid: "com.one"}},
				{},
			}},
		}})
	}))
	defer done()

	resp, err := c.BulkDetails(context.Background(), []string{"com.one", "com.two"})
	require.NoError(t, err)
	require.Len(t, resp.Entry, 2)
	assert.Equal(t, "com.one", resp.Entry[0].Doc.Docid)
	assert.Nil(t, resp.Entry[1].Doc)
}

func TestSearchSuggestDefaults(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/fdfe/searchSuggest", r.URL.Path)
		assert.Equal(t, "3", q.Get("c"))
		assert.Equal(t, "fire", q.Get("q"))
		assert.Equal(t, "120", q.Get("ssis"))
		assert.Equal(t, "2", q.Get("sst"))

		writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
			SearchSuggestResponse: &protocol.SearchSuggestResponse{Entry: []*protocol.SearchSuggestEntry{
				{Type: 2, SuggestedQuery: "firefox"},
			}},
		}})
	}))
	defer done()

	resp, err := c.SearchSuggest(context.Background(), "fire", SearchSuggestOptions{})
	require.NoError(t, err)
	require.Len(t, resp.Entry, 1)
	assert.Equal(t, "firefox", resp.Entry[0].SuggestedQuery)
}

func TestReviewsParams(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/fdfe/rev", r.URL.Path)
		assert.Equal(t, "com.example.app", q.Get("doc"))
		assert.Equal(t, "4", q.Get("sort"))
		assert.Equal(t, "20", q.Get("o"))
		assert.Equal(t, "20", q.Get("n"))
		assert.Equal(t, "42", q.Get("vc"))

		writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
			ReviewResponse: &protocol.ReviewResponse{GetResponse: &protocol.GetReviewsResponse{
				Review: []*protocol.Review{{Comment: "nice", StarRating: 5}},
			}},
		}})
	}))
	defer done()

	resp, err := c.Reviews(context.Background(), "com.example.app", ReviewsOptions{
		Sort:        SortHelpful,
		Paging:      Paging{Offset: 20, Count: 20},
		VersionCode: 42,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.GetResponse)
	require.Len(t, resp.GetResponse.Review, 1)
	assert.Equal(t, int32(5), resp.GetResponse.Review[0].StarRating)
}

func TestPurchaseAndDelivery(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fdfe/purchase":
			assert.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "com.example.app", r.PostForm.Get("doc"))
			assert.Equal(t, "42", r.PostForm.Get("vc"))
			assert.Equal(t, "1", r.PostForm.Get("ot"))
			writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
				BuyResponse: &protocol.BuyResponse{DownloadToken: "dl-token"},
			}})
		case "/fdfe/delivery":
			assert.Equal(t, http.MethodGet, r.Method)
			q := r.URL.Query()
			assert.Equal(t, "com.example.app", q.Get("doc"))
			assert.Equal(t, "42", q.Get("vc"))
			assert.Equal(t, "1", q.Get("ot"))
			writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
				DeliveryResponse: &protocol.DeliveryResponse{AppDeliveryData: &protocol.AppDeliveryData{
					DownloadURL: "https://dl.example.com/app.apk",
				}},
			}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer done()

	buy, err := c.Purchase(context.Background(), "com.example.app", 42, 1)
	require.NoError(t, err)
	assert.Equal(t, "dl-token", buy.DownloadToken)

	delivery, err := c.Delivery(context.Background(), "com.example.app", 42, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://dl.example.com/app.apk", delivery.AppDeliveryData.DownloadURL)
}

func TestSearchParams(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/fdfe/search", r.URL.Path)
		assert.Equal(t, "calculator", q.Get("q"))
		assert.Equal(t, "3", q.Get("c"))
		assert.Equal(t, "10", q.Get("o"))
		assert.Equal(t, "20", q.Get("n"))
		writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
			SearchResponse: &protocol.SearchResponse{
				OriginalQuery: "calculator",
				Doc:           []*protocol.DocV2{{Docid: "com.example.calc", Title: "Calc"}},
			},
		}})
	}))
	defer done()

	resp, err := c.Search(context.Background(), "calculator", Paging{Offset: 10, Count: 20})
	require.NoError(t, err)
	require.Len(t, resp.Doc, 1)
	assert.Equal(t, "com.example.calc", resp.Doc[0].Docid)
	assert.Equal(t, "calculator", resp.OriginalQuery)
}

func TestListParams(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/fdfe/list", r.URL.Path)
		assert.Equal(t, "GAME", q.Get("cat"))
		assert.Equal(t, SubcategoryTopFree, q.Get("ctr"))
		writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
			ListResponse: &protocol.ListResponse{Doc: []*protocol.DocV2{{Docid: "com.example.game"}}},
		}})
	}))
	defer done()

	resp, err := c.List(context.Background(), "GAME", SubcategoryTopFree, Paging{})
	require.NoError(t, err)
	require.Len(t, resp.Doc, 1)
}

func TestRecommendationsDefaultsType(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/fdfe/rec", r.URL.Path)
		assert.Equal(t, "1", q.Get("rt"))
		assert.Equal(t, "com.example.app", q.Get("doc"))
		writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
			ListResponse: &protocol.ListResponse{Doc: []*protocol.DocV2{{Docid: "com.related"}}},
		}})
	}))
	defer done()

	resp, err := c.Recommendations(context.Background(), "com.example.app", RecommendationsOptions{})
	require.NoError(t, err)
	require.Len(t, resp.Doc, 1)
}

func TestBrowseParams(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "GAME", q.Get("cat"))
		assert.Equal(t, SubcategoryTopFree, q.Get("ctr"))
		writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
			BrowseResponse: &protocol.BrowseResponse{Category: []*protocol.BrowseLink{{Name: "Arcade"}}},
		}})
	}))
	defer done()

	resp, err := c.Browse(context.Background(), BrowseOptions{CategoryID: "GAME", SubcategoryID: SubcategoryTopFree})
	require.NoError(t, err)
	require.Len(t, resp.Category, 1)
	assert.Equal(t, "Arcade", resp.Category[0].Name)
}

func TestUploadDeviceConfigHeaders(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fdfe/uploadDeviceConfig", r.URL.Path)
		assert.Equal(t, "am-android-google", r.Header.Get("X-DFE-Client-Id"))
		assert.Equal(t, "320", r.Header.Get("X-DFE-SmallestScreenWidthDp"))
		assert.Equal(t, "3", r.Header.Get("X-DFE-Filter-Level"))
		assert.NotEmpty(t, r.Header.Get("X-DFE-Enabled-Experiments"))
		assert.NotEmpty(t, r.Header.Get("X-DFE-Unsupported-Experiments"))

		writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
			UploadDeviceConfigResponse: &protocol.UploadDeviceConfigResponse{UploadDeviceConfigToken: "cfg-token"},
		}})
	}))
	defer done()

	resp, err := c.UploadDeviceConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cfg-token", resp.UploadDeviceConfigToken)
}

func TestDeleteReview(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fdfe/deleteReview", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "com.example.app", r.PostForm.Get("doc"))
	}))
	defer done()

	require.NoError(t, c.DeleteReview(context.Background(), "com.example.app"))
}

func TestGenericGetAppliesCategoryFilter(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fdfe/list", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("c"))
		assert.Equal(t, "next-page", r.URL.Query().Get("ctr"))
		writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
			ListResponse: &protocol.ListResponse{},
		}})
	}))
	defer done()

	payload, err := c.GenericGet(context.Background(), c.base+"/fdfe/list", map[string]string{"ctr": "next-page"})
	require.NoError(t, err)
	assert.Equal(t, protocol.KindList, payload.Kind())
}

func TestGenericGetKeepsExplicitCategory(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("c"))
		writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{}})
	}))
	defer done()

	payload, err := c.GenericGet(context.Background(), c.base+"/fdfe/list", map[string]string{"c": "1"})
	require.NoError(t, err)
	assert.Equal(t, protocol.KindUnknown, payload.Kind())
}

func TestAuthenticatedHeadersOnCatalogCall(t *testing.T) {
	c, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GoogleLogin auth=tok", r.Header.Get("Authorization"))
		assert.Equal(t, "1a2b", r.Header.Get("X-DFE-Device-Id"))
		writeEnvelope(w, &protocol.ResponseWrapper{Payload: &protocol.Payload{
			BrowseResponse: &protocol.BrowseResponse{},
		}})
	}))
	defer done()

	c.Session().SetToken("tok")
	c.Session().SetGSFID("1a2b")

	_, err := c.Categories(context.Background(), "")
	require.NoError(t, err)
}
