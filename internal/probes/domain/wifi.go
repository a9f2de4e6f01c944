package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var wifiLineRegex = regexp.MustCompile(`^\s*(\S+): (.*)`)

// WifiStatus is the subset of the airport status the display shows
type WifiStatus struct {
	Off     bool
	SSID    string
	BSSID   string
	TxRate  string
	MaxRate string
	Channel string
	SNR     int
	HasSNR  bool
}

// ParseWifiFields collects `key: value` lines into a map
func ParseWifiFields(output string) map[string]string {
	fields := make(map[string]string)
	for _, line := range splitLines(output) {
		if m := wifiLineRegex.FindStringSubmatch(line); m != nil {
			fields[m[1]] = m[2]
		}
	}
	return fields
}

// ParseWifi parses airport -I output. SNR is only set when both the signal
// and the noise level are present and numeric.
func ParseWifi(output string) WifiStatus {
	fields := ParseWifiFields(output)
	if fields["AirPort"] == "Off" {
		return WifiStatus{Off: true}
	}

	status := WifiStatus{
		SSID:    fields["SSID"],
		BSSID:   fields["BSSID"],
		TxRate:  fields["lastTxRate"],
		MaxRate: fields["maxRate"],
		Channel: fields["channel"],
	}

	signal, errSignal := strconv.Atoi(strings.TrimSpace(fields["agrCtlRSSI"]))
	noise, errNoise := strconv.Atoi(strings.TrimSpace(fields["agrCtlNoise"]))
	if errSignal == nil && errNoise == nil {
		status.SNR = signal - noise
		status.HasSNR = true
	}

	return status
}

// Value renders the status as display rows
func (w WifiStatus) Value() Value {
	v := EmptyMapping()
	if w.Off {
		v.Set("Wifi", "Off")
		return v
	}

	v.Set("SSID", w.SSID)
	v.Set("BSSID", w.BSSID)
	v.Set("Speed", w.TxRate+"Mbps / "+w.MaxRate+"Mbps")
	if w.HasSNR {
		v.Set("SNR", strconv.Itoa(w.SNR)+"dB")
	}
	v.Set("Channel", w.Channel)
	return v
}
