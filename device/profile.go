// Package device describes the device a session impersonates. The catalog
// servers tie identity, search filtering and delivery variants to the
// reported hardware, so every authenticated call carries data derived from
// a Profile.
package device

import (
	"fmt"

	"github.com/playapi/playapi/protocol"
)

// Profile supplies the device-derived pieces of the protocol: the checkin
// request used by the identity handshake, the device configuration uploaded
// after login, and the user agent sent on every call.
type Profile interface {
	// CheckinRequest builds a fresh credential-free checkin request.
	CheckinRequest() *protocol.CheckinRequest

	// DeviceConfiguration returns the hardware capability message.
	DeviceConfiguration() *protocol.DeviceConfiguration

	// UserAgent returns the User-Agent header value.
	UserAgent() string

	// SdkVersion returns the Android SDK level the profile reports.
	SdkVersion() int
}

// StaticProfile is a Profile backed by fixed values. The zero value is not
// usable; start from Default and override fields as needed.
type StaticProfile struct {
	// Build identity.
	BuildID           string
	BuildProduct      string
	BuildDevice       string
	BuildModel        string
	BuildManufacturer string
	BuildFingerprint  string
	BuildTimestamp    int64

	// Client software versions.
	Sdk                  int
	GoogleServices       int
	VendingVersion       int
	VendingVersionString string

	// Hardware capabilities.
	TouchScreen     int
	Keyboard        int
	Navigation      int
	ScreenLayout    int
	ScreenDensity   int
	ScreenWidth     int
	ScreenHeight    int
	GlEsVersion     int
	Platforms       []string
	SharedLibraries []string
	Features        []string
	Locales         []string
	GlExtensions    []string

	// Network/locale context.
	CellOperator string
	SimOperator  string
	Roaming      string
	TimeZone     string
	Locale       string
}

// Default returns a profile modelled on a common handset. Good enough for
// catalog browsing; delivery of hardware-gated packages may need a profile
// matching a real device more closely.
func Default() *StaticProfile {
	return &StaticProfile{
		BuildID:           "NJH47F",
		BuildProduct:      "sailfish",
		BuildDevice:       "sailfish",
		BuildModel:        "Pixel",
		BuildManufacturer: "Google",
		BuildFingerprint:  "google/sailfish/sailfish:7.1.2/NJH47F/4146041:user/release-keys",
		BuildTimestamp:    1500000000,

		Sdk:                  25,
		GoogleServices:       11055440,
		VendingVersion:       80798000,
		VendingVersionString: "7.9.80.Q-all",

		TouchScreen:   3,
		Keyboard:      1,
		Navigation:    1,
		ScreenLayout:  2,
		ScreenDensity: 420,
		ScreenWidth:   1080,
		ScreenHeight:  1920,
		GlEsVersion:   0x30002,
		Platforms:     []string{"arm64-v8a", "armeabi-v7a", "armeabi"},
		SharedLibraries: []string{
			"android.test.runner",
			"com.android.location.provider",
			"javax.obex",
		},
		Features: []string{
			"android.hardware.bluetooth",
			"android.hardware.camera",
			"android.hardware.location",
			"android.hardware.screen.portrait",
			"android.hardware.touchscreen",
			"android.hardware.wifi",
		},
		Locales:      []string{"en", "en_US"},
		GlExtensions: []string{"GL_EXT_debug_marker", "GL_OES_compressed_ETC1_RGB8_texture"},

		CellOperator: "310260",
		SimOperator:  "310260",
		Roaming:      "mobile-notroaming",
		TimeZone:     "America/New_York",
		Locale:       "en_US",
	}
}

func (p *StaticProfile) CheckinRequest() *protocol.CheckinRequest {
	return &protocol.CheckinRequest{
		Checkin: &protocol.CheckinPayload{
			Build: &protocol.BuildInfo{
				ID:             p.BuildFingerprint,
				Product:        p.BuildProduct,
				Client:         "android-google",
				Timestamp:      p.BuildTimestamp,
				GoogleServices: int32(p.GoogleServices),
				Device:         p.BuildDevice,
				SdkVersion:     int32(p.Sdk),
				Model:          p.BuildModel,
				Manufacturer:   p.BuildManufacturer,
				BuildProduct:   p.BuildProduct,
				OtaInstalled:   false,
			},
			CellOperator: p.CellOperator,
			SimOperator:  p.SimOperator,
			Roaming:      p.Roaming,
			UserNumber:   0,
		},
		Locale:              p.Locale,
		TimeZone:            p.TimeZone,
		Version:             3,
		DeviceConfiguration: p.DeviceConfiguration(),
		Fragment:            0,
	}
}

func (p *StaticProfile) DeviceConfiguration() *protocol.DeviceConfiguration {
	return &protocol.DeviceConfiguration{
		TouchScreen:            int32(p.TouchScreen),
		Keyboard:               int32(p.Keyboard),
		Navigation:             int32(p.Navigation),
		ScreenLayout:           int32(p.ScreenLayout),
		HasHardKeyboard:        false,
		HasFiveWayNavigation:   false,
		ScreenDensity:          int32(p.ScreenDensity),
		GlEsVersion:            int32(p.GlEsVersion),
		SystemSharedLibrary:    p.SharedLibraries,
		SystemAvailableFeature: p.Features,
		NativePlatform:         p.Platforms,
		ScreenWidth:            int32(p.ScreenWidth),
		ScreenHeight:           int32(p.ScreenHeight),
		SystemSupportedLocale:  p.Locales,
		GlExtension:            p.GlExtensions,
	}
}

func (p *StaticProfile) UserAgent() string {
	platform := ""
	if len(p.Platforms) > 0 {
		platform = p.Platforms[0]
	}
	return fmt.Sprintf(
		"Android-Finsky/%s (api=3,versionCode=%d,sdk=%d,device=%s,hardware=%s,product=%s,platformVersionRelease=,model=%s,buildId=%s,isWideScreen=0,supportedAbis=%s)",
		p.VendingVersionString, p.VendingVersion, p.Sdk, p.BuildDevice, p.BuildDevice, p.BuildProduct, p.BuildModel, p.BuildID, platform,
	)
}

func (p *StaticProfile) SdkVersion() int {
	return p.Sdk
}
