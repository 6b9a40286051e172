package playstore

import (
	"net/url"
	"strconv"
)

const (
	// DefaultBaseURL is the production catalog host.
	DefaultBaseURL = "https://android.clients.google.com"

	checkinPath      = "/checkin"
	loginPath        = "/auth"
	c2dmRegisterPath = "/c2dm/register2"
	fdfePath         = "/fdfe/"

	accountType = "HOSTED_OR_GOOGLE"

	// clientSignature is the SHA1 digest of the system GoogleLoginService
	// certificate. The server does not appear to validate it, but the stock
	// client sends it, so we do too.
	clientSignature = "38918a453d07199354f8b19af05ec6562ced5788"

	// appsCategory restricts results to the app catalog, excluding books,
	// music and movies.
	appsCategory = "3"

	// encodedTargets is an opaque capability bitmask the server expects on
	// every fdfe call. It is an encoded list of ints that depends on device
	// and account state; deriving it properly is not worth it, so the value
	// captured from a stock client is sent verbatim.
	encodedTargets = "CAEScFfqlIEG6gUYogFWrAISK1WDAg+hAZoCDgIU1gYEOIACFkLMAeQBnASLATlASUuyAyqCAjY5igOMBQzfA/IClwFbApUC4ANbtgKVAS7OAX8YswHFBhgDwAOPAmGEBt4OfKkB5weSB5AFASkiN68akgMaxAMSAQEBA9kBO7UBFE1KVwIDBGs3go6BBgEBAgMECQgJAQIEAQMEAQMBBQEBBAUEFQYCBgUEAwMBDwIBAgOrARwBEwMEAg0mrwESfTEcAQEKG4EBMxghChMBDwYGASI3hAEODEwXCVh/EREZA4sBYwEdFAgIIwkQcGQRDzQ2fTC2AjfVAQIBAYoBGRg2FhYFBwEqNzACJShzFFblAo0CFxpFNBzaAd0DHjIRI4sBJZcBPdwBCQGhAUd2A7kBLBVPngEECHl0UEUMtQETigHMAgUFCc0BBUUlTywdHDgBiAJ+vgKhAU0uAcYCAWQ/5ALUAw1UwQHUBpIBCdQDhgL4AY4CBQICjARbGFBGWzA1CAEMOQH+BRAOCAZywAIDyQZ2MgM3BxsoAgUEBwcHFia3AgcGTBwHBYwBAlcBggFxSGgIrAEEBw4QEqUCASsWadsHCgUCBQMD7QICA3tXCUw7ugJZAwGyAUwpIwM5AwkDBQMJA5sBCw8BNxBVVBwVKhebARkBAwsQEAgEAhESAgQJEBCZATMdzgEBBwG8AQQYKSMUkAEDAwY/CTs4/wEaAUt1AwEDAQUBAgIEAwYEDx1dB2wGeBFgTQ"
)

// defaultHeaders assembles the header set sent on every catalog call. It is
// a pure function of the session: the Authorization and X-DFE-Device-Id
// headers are present exactly when the session holds a token and a device
// identity.
func defaultHeaders(s *Session) map[string]string {
	headers := map[string]string{
		"User-Agent":            s.Profile().UserAgent(),
		"Accept-Language":       s.AcceptLanguage(),
		"X-DFE-Encoded-Targets": encodedTargets,
	}
	if token := s.Token(); token != "" {
		headers["Authorization"] = "GoogleLogin auth=" + token
	}
	if gsfID := s.GSFID(); gsfID != "" {
		headers["X-DFE-Device-Id"] = gsfID
	}
	return headers
}

// Paging constrains list-shaped responses. The zero value requests the
// server defaults (offset 0, 20 results); Offset and Count are only sent
// when set.
type Paging struct {
	// Offset of the first result to return. Zero is not sent.
	Offset int

	// Count of results to return. Zero is not sent. The server rejects
	// values above 20 for reviews.
	Count int
}

// defaultParams assembles the query parameters shared by list requests:
// the app-catalog filter plus optional pagination.
func defaultParams(paging Paging) url.Values {
	params := url.Values{}
	params.Set("c", appsCategory)
	if paging.Offset > 0 {
		params.Set("o", strconv.Itoa(paging.Offset))
	}
	if paging.Count > 0 {
		params.Set("n", strconv.Itoa(paging.Count))
	}
	return params
}
