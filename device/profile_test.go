package device

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfileCheckinRequest(t *testing.T) {
	p := Default()
	req := p.CheckinRequest()

	require.NotNil(t, req.Checkin)
	require.NotNil(t, req.Checkin.Build)
	assert.Equal(t, int32(25), req.Checkin.Build.SdkVersion)
	assert.Equal(t, "sailfish", req.Checkin.Build.Device)

	// A fresh checkin request never carries credentials.
	assert.Zero(t, req.ID)
	assert.Zero(t, req.SecurityToken)
	assert.Empty(t, req.AccountCookie)

	require.NotNil(t, req.DeviceConfiguration)
	assert.Equal(t, int32(420), req.DeviceConfiguration.ScreenDensity)
	assert.NotEmpty(t, req.DeviceConfiguration.NativePlatform)
}

func TestUserAgentFormat(t *testing.T) {
	p := Default()
	ua := p.UserAgent()

	assert.True(t, strings.HasPrefix(ua, "Android-Finsky/"), "user agent %q", ua)
	assert.Contains(t, ua, "versionCode=80798000")
	assert.Contains(t, ua, "sdk=25")
	assert.Contains(t, ua, "device=sailfish")
}

func TestSdkVersion(t *testing.T) {
	p := Default()
	p.Sdk = 28
	assert.Equal(t, 28, p.SdkVersion())
}
