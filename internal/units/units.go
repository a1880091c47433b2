// Package units holds the unit conversion and formatting helpers shared by
// the CLI and the TUI. All internal computation is SI; conversion to and
// from human units happens at the edges.
package units

import (
	"fmt"
	"strconv"
	"strings"
)

// Conversion factors.
const (
	JoulesPerKcal  = 4184.0
	MetersPerKm    = 1000.0
	MetersPerMile  = 1609.34
	SecondsPerHour = 3600.0
)

// KmhToMs converts a speed in km/h to m/s.
func KmhToMs(kmh float64) float64 { return kmh / 3.6 }

// MsToKmh converts a speed in m/s to km/h.
func MsToKmh(ms float64) float64 { return ms * 3.6 }

// KmhToMph converts a speed in km/h to mph.
func KmhToMph(kmh float64) float64 { return kmh * MetersPerKm / MetersPerMile }

// MphToKmh converts a speed in mph to km/h.
func MphToKmh(mph float64) float64 { return mph * MetersPerMile / MetersPerKm }

// JToKJ converts joules to kilojoules.
func JToKJ(j float64) float64 { return j / 1000 }

// JToKcal converts joules to kilocalories (food calories).
func JToKcal(j float64) float64 { return j / JoulesPerKcal }

// KcalToJ converts kilocalories to joules.
func KcalToJ(kcal float64) float64 { return kcal * JoulesPerKcal }

// ParseDuration parses a human duration into hours. Accepted forms:
//
//	"1:30:00"  H:MM:SS
//	"1.5h"     float plus a unit (s/sec/seconds, m/min/minutes, h/hr/hour/hours)
//	"90m"
//	"1.5"      bare float, interpreted as hours
func ParseDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if strings.Contains(s, ":") {
		return parseClock(s)
	}

	unit := ""
	num := s
	for i, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			num, unit = s[:i], s[i:]
			break
		}
	}

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "h", "hr", "hour", "hours":
		return value, nil
	case "m", "min", "minute", "minutes":
		return value / 60, nil
	case "s", "sec", "second", "seconds":
		return value / SecondsPerHour, nil
	}
	return 0, fmt.Errorf("invalid duration unit %q", unit)
}

// parseClock parses "H:MM:SS" or "MM:SS" into hours.
func parseClock(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	var fields [3]float64
	// Right-align so "MM:SS" lands in minutes and seconds.
	offset := 3 - len(parts)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		fields[offset+i] = v
	}

	return fields[0] + fields[1]/60 + fields[2]/SecondsPerHour, nil
}

// FormatDuration renders hours as "H:MM:SS".
func FormatDuration(hours float64) string {
	if hours < 0 {
		return "-"
	}
	totalSeconds := int(hours*SecondsPerHour + 0.5)
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
