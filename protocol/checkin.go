package protocol

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// BuildInfo describes the firmware build a device reports during checkin.
type BuildInfo struct {
	ID             string // field 1, the build fingerprint
	Product        string // field 2
	Carrier        string // field 3
	Radio          string // field 4
	Bootloader     string // field 5
	Client         string // field 6
	Timestamp      int64  // field 7
	GoogleServices int32  // field 8
	Device         string // field 9
	SdkVersion     int32  // field 10
	Model          string // field 11
	Manufacturer   string // field 12
	BuildProduct   string // field 13
	OtaInstalled   bool   // field 14
}

// CheckinPayload is the inner checkin block of a CheckinRequest.
type CheckinPayload struct {
	Build           *BuildInfo // field 1
	LastCheckinMsec int64      // field 2
	CellOperator    string     // field 6
	SimOperator     string     // field 7
	Roaming         string     // field 8
	UserNumber      int32      // field 9
}

// CheckinRequest is sent to the checkin endpoint. The first handshake step
// sends it with no credentials; the second sets ID, SecurityToken and the
// two account cookies.
type CheckinRequest struct {
	Imei                string               // field 1
	ID                  int64                // field 2
	Digest              string               // field 3
	Checkin             *CheckinPayload      // field 4
	Locale              string               // field 6
	LoggingID           int64                // field 7
	MacAddr             []string             // field 9
	Meid                string               // field 10
	AccountCookie       []string             // field 11
	TimeZone            string               // field 12
	SecurityToken       uint64               // field 13, fixed64
	Version             int32                // field 14
	OtaCert             []string             // field 15
	SerialNumber        string               // field 16
	DeviceConfiguration *DeviceConfiguration // field 18
	Fragment            int32                // field 20
}

// CheckinResponse is the server's answer to either handshake step. AndroidID
// and SecurityToken are only meaningful on the first step.
type CheckinResponse struct {
	StatsOk       bool   // field 1
	TimeMsec      int64  // field 3
	Digest        string // field 4
	MarketOk      bool   // field 6
	AndroidID     uint64 // field 7, fixed64
	SecurityToken uint64 // field 8, fixed64
	VersionInfo   string // field 9
}

// DeviceConfiguration describes hardware capabilities, sent both during
// checkin and by uploadDeviceConfig.
type DeviceConfiguration struct {
	TouchScreen            int32    // field 1
	Keyboard               int32    // field 2
	Navigation             int32    // field 3
	ScreenLayout           int32    // field 4
	HasHardKeyboard        bool     // field 5
	HasFiveWayNavigation   bool     // field 6
	ScreenDensity          int32    // field 7
	GlEsVersion            int32    // field 8
	SystemSharedLibrary    []string // field 9
	SystemAvailableFeature []string // field 10
	NativePlatform         []string // field 11
	ScreenWidth            int32    // field 12
	ScreenHeight           int32    // field 13
	SystemSupportedLocale  []string // field 14
	GlExtension            []string // field 15
}

func (bi *BuildInfo) appendTo(b []byte) []byte {
	b = appendString(b, 1, bi.ID)
	b = appendString(b, 2, bi.Product)
	b = appendString(b, 3, bi.Carrier)
	b = appendString(b, 4, bi.Radio)
	b = appendString(b, 5, bi.Bootloader)
	b = appendString(b, 6, bi.Client)
	b = appendVarint(b, 7, bi.Timestamp)
	b = appendVarint(b, 8, int64(bi.GoogleServices))
	b = appendString(b, 9, bi.Device)
	b = appendVarint(b, 10, int64(bi.SdkVersion))
	b = appendString(b, 11, bi.Model)
	b = appendString(b, 12, bi.Manufacturer)
	b = appendString(b, 13, bi.BuildProduct)
	b = appendBool(b, 14, bi.OtaInstalled)
	return b
}

func parseBuildInfo(data []byte) (*BuildInfo, error) {
	bi := &BuildInfo{}
	err := scanFields("BuildInfo", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 1, 2, 3, 4, 5, 6, 9, 11, 12, 13:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			s := string(v)
			switch num {
			case 1:
				bi.ID = s
			case 2:
				bi.Product = s
			case 3:
				bi.Carrier = s
			case 4:
				bi.Radio = s
			case 5:
				bi.Bootloader = s
			case 6:
				bi.Client = s
			case 9:
				bi.Device = s
			case 11:
				bi.Model = s
			case 12:
				bi.Manufacturer = s
			case 13:
				bi.BuildProduct = s
			}
			return n, nil
		case 7, 8, 10, 14:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			switch num {
			case 7:
				bi.Timestamp = int64(v)
			case 8:
				bi.GoogleServices = int32(v)
			case 10:
				bi.SdkVersion = int32(v)
			case 14:
				bi.OtaInstalled = v != 0
			}
			return n, nil
		default:
			return 0, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return bi, nil
}

func (cp *CheckinPayload) appendTo(b []byte) []byte {
	if cp.Build != nil {
		b = appendMessage(b, 1, cp.Build)
	}
	b = appendVarint(b, 2, cp.LastCheckinMsec)
	b = appendString(b, 6, cp.CellOperator)
	b = appendString(b, 7, cp.SimOperator)
	b = appendString(b, 8, cp.Roaming)
	b = appendVarint(b, 9, int64(cp.UserNumber))
	return b
}

func parseCheckinPayload(data []byte) (*CheckinPayload, error) {
	cp := &CheckinPayload{}
	err := scanFields("CheckinPayload", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 1, 6, 7, 8:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			switch num {
			case 1:
				bi, err := parseBuildInfo(v)
				if err != nil {
					return 0, err
				}
				cp.Build = bi
			case 6:
				cp.CellOperator = string(v)
			case 7:
				cp.SimOperator = string(v)
			case 8:
				cp.Roaming = string(v)
			}
			return n, nil
		case 2, 9:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			if num == 2 {
				cp.LastCheckinMsec = int64(v)
			} else {
				cp.UserNumber = int32(v)
			}
			return n, nil
		default:
			return 0, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return cp, nil
}

func (r *CheckinRequest) appendTo(b []byte) []byte {
	b = appendString(b, 1, r.Imei)
	b = appendVarint(b, 2, r.ID)
	b = appendString(b, 3, r.Digest)
	if r.Checkin != nil {
		b = appendMessage(b, 4, r.Checkin)
	}
	b = appendString(b, 6, r.Locale)
	b = appendVarint(b, 7, r.LoggingID)
	b = appendStrings(b, 9, r.MacAddr)
	b = appendString(b, 10, r.Meid)
	b = appendStrings(b, 11, r.AccountCookie)
	b = appendString(b, 12, r.TimeZone)
	b = appendFixed64(b, 13, r.SecurityToken)
	b = appendVarint(b, 14, int64(r.Version))
	b = appendStrings(b, 15, r.OtaCert)
	b = appendString(b, 16, r.SerialNumber)
	if r.DeviceConfiguration != nil {
		b = appendMessage(b, 18, r.DeviceConfiguration)
	}
	b = appendVarint(b, 20, int64(r.Fragment))
	return b
}

// ParseCheckinRequest decodes a checkin request. The client only ever
// encodes these; decoding exists for tests and debugging tools.
func ParseCheckinRequest(data []byte) (*CheckinRequest, error) {
	r := &CheckinRequest{}
	err := scanFields("CheckinRequest", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 1, 3, 4, 6, 9, 10, 11, 12, 15, 16, 18:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			switch num {
			case 1:
				r.Imei = string(v)
			case 3:
				r.Digest = string(v)
			case 4:
				cp, err := parseCheckinPayload(v)
				if err != nil {
					return 0, err
				}
				r.Checkin = cp
			case 6:
				r.Locale = string(v)
			case 9:
				r.MacAddr = append(r.MacAddr, string(v))
			case 10:
				r.Meid = string(v)
			case 11:
				r.AccountCookie = append(r.AccountCookie, string(v))
			case 12:
				r.TimeZone = string(v)
			case 15:
				r.OtaCert = append(r.OtaCert, string(v))
			case 16:
				r.SerialNumber = string(v)
			case 18:
				dc, err := parseDeviceConfiguration(v)
				if err != nil {
					return 0, err
				}
				r.DeviceConfiguration = dc
			}
			return n, nil
		case 2, 7, 14, 20:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			switch num {
			case 2:
				r.ID = int64(v)
			case 7:
				r.LoggingID = int64(v)
			case 14:
				r.Version = int32(v)
			case 20:
				r.Fragment = int32(v)
			}
			return n, nil
		case 13:
			if typ != protowire.Fixed64Type {
				return 0, nil
			}
			v, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return n, nil
			}
			r.SecurityToken = v
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

func (r *CheckinResponse) appendTo(b []byte) []byte {
	b = appendBool(b, 1, r.StatsOk)
	b = appendVarint(b, 3, r.TimeMsec)
	b = appendString(b, 4, r.Digest)
	b = appendBool(b, 6, r.MarketOk)
	b = appendFixed64(b, 7, r.AndroidID)
	b = appendFixed64(b, 8, r.SecurityToken)
	b = appendString(b, 9, r.VersionInfo)
	return b
}

// ParseCheckinResponse decodes the server's answer to a checkin step.
func ParseCheckinResponse(data []byte) (*CheckinResponse, error) {
	r := &CheckinResponse{}
	err := scanFields("CheckinResponse", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 1, 3, 6:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			switch num {
			case 1:
				r.StatsOk = v != 0
			case 3:
				r.TimeMsec = int64(v)
			case 6:
				r.MarketOk = v != 0
			}
			return n, nil
		case 4, 9:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			if num == 4 {
				r.Digest = string(v)
			} else {
				r.VersionInfo = string(v)
			}
			return n, nil
		case 7, 8:
			if typ != protowire.Fixed64Type {
				return 0, nil
			}
			v, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return n, nil
			}
			if num == 7 {
				r.AndroidID = v
			} else {
				r.SecurityToken = v
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

func (dc *DeviceConfiguration) appendTo(b []byte) []byte {
	b = appendVarint(b, 1, int64(dc.TouchScreen))
	b = appendVarint(b, 2, int64(dc.Keyboard))
	b = appendVarint(b, 3, int64(dc.Navigation))
	b = appendVarint(b, 4, int64(dc.ScreenLayout))
	b = appendBool(b, 5, dc.HasHardKeyboard)
	b = appendBool(b, 6, dc.HasFiveWayNavigation)
	b = appendVarint(b, 7, int64(dc.ScreenDensity))
	b = appendVarint(b, 8, int64(dc.GlEsVersion))
	b = appendStrings(b, 9, dc.SystemSharedLibrary)
	b = appendStrings(b, 10, dc.SystemAvailableFeature)
	b = appendStrings(b, 11, dc.NativePlatform)
	b = appendVarint(b, 12, int64(dc.ScreenWidth))
	b = appendVarint(b, 13, int64(dc.ScreenHeight))
	b = appendStrings(b, 14, dc.SystemSupportedLocale)
	b = appendStrings(b, 15, dc.GlExtension)
	return b
}

func parseDeviceConfiguration(data []byte) (*DeviceConfiguration, error) {
	dc := &DeviceConfiguration{}
	err := scanFields("DeviceConfiguration", data, func(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
		switch num {
		case 9, 10, 11, 14, 15:
			if typ != protowire.BytesType {
				return 0, nil
			}
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return n, nil
			}
			s := string(v)
			switch num {
			case 9:
				dc.SystemSharedLibrary = append(dc.SystemSharedLibrary, s)
			case 10:
				dc.SystemAvailableFeature = append(dc.SystemAvailableFeature, s)
			case 11:
				dc.NativePlatform = append(dc.NativePlatform, s)
			case 14:
				dc.SystemSupportedLocale = append(dc.SystemSupportedLocale, s)
			case 15:
				dc.GlExtension = append(dc.GlExtension, s)
			}
			return n, nil
		default:
			if typ != protowire.VarintType {
				return 0, nil
			}
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return n, nil
			}
			switch num {
			case 1:
				dc.TouchScreen = int32(v)
			case 2:
				dc.Keyboard = int32(v)
			case 3:
				dc.Navigation = int32(v)
			case 4:
				dc.ScreenLayout = int32(v)
			case 5:
				dc.HasHardKeyboard = v != 0
			case 6:
				dc.HasFiveWayNavigation = v != 0
			case 7:
				dc.ScreenDensity = int32(v)
			case 8:
				dc.GlEsVersion = int32(v)
			case 12:
				dc.ScreenWidth = int32(v)
			case 13:
				dc.ScreenHeight = int32(v)
			}
			return n, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return dc, nil
}
