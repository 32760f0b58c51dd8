package profilestore

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sbcounts/aadv/schema"
)

// Raw payload shapes. Month, hour and day keys arrive as JSON strings.
type (
	rawHourlyDocument map[string]rawHourlyProfile

	rawHourlyProfile struct {
		Hours map[string]map[string]map[string]float64 `json:"hours"`
	}

	rawNormDocument map[string]rawNormProfile

	rawNormProfile struct {
		Days   map[string]map[string]float64 `json:"days"`
		Months map[string]float64            `json:"months"`
	}
)

// parseHourlyDocument decodes the hourly factor payload. A document that
// fails to parse as structured data is a load failure; missing nested keys
// are not (they surface later as missing-factor warnings).
func parseHourlyDocument(data []byte) (map[string]*schema.ExpansionProfile, error) {
	var raw rawHourlyDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed hourly document: %w", err)
	}

	profiles := make(map[string]*schema.ExpansionProfile, len(raw))
	for name, rp := range raw {
		profile := &schema.ExpansionProfile{
			Name:  name,
			Hours: make(map[int]map[schema.DayType]map[int]float64),
		}
		for monthKey, byType := range rp.Hours {
			month, ok := parseIntKey(monthKey, 1, 12)
			if !ok {
				continue
			}
			for typeKey, byHour := range byType {
				dayType := schema.DayType(typeKey)
				if _, ok := schema.ValidDayTypes[dayType]; !ok {
					continue
				}
				for hourKey, factor := range byHour {
					hour, ok := parseIntKey(hourKey, 0, 23)
					if !ok {
						continue
					}
					if profile.Hours[month] == nil {
						profile.Hours[month] = make(map[schema.DayType]map[int]float64)
					}
					if profile.Hours[month][dayType] == nil {
						profile.Hours[month][dayType] = make(map[int]float64)
					}
					profile.Hours[month][dayType][hour] = factor
				}
			}
		}
		profiles[name] = profile
	}
	return profiles, nil
}

// parseNormDocument decodes the daily/monthly factor payload.
func parseNormDocument(data []byte) (map[string]*schema.NormalizationProfile, error) {
	var raw rawNormDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed normalization document: %w", err)
	}

	profiles := make(map[string]*schema.NormalizationProfile, len(raw))
	for name, rp := range raw {
		profile := &schema.NormalizationProfile{
			Name:   name,
			Days:   make(map[int]map[string]float64),
			Months: make(map[int]float64),
		}
		for monthKey, byDay := range rp.Days {
			month, ok := parseIntKey(monthKey, 1, 12)
			if !ok {
				continue
			}
			for dayName, factor := range byDay {
				if profile.Days[month] == nil {
					profile.Days[month] = make(map[string]float64)
				}
				profile.Days[month][dayName] = factor
			}
		}
		for monthKey, factor := range rp.Months {
			if month, ok := parseIntKey(monthKey, 1, 12); ok {
				profile.Months[month] = factor
			}
		}
		profiles[name] = profile
	}
	return profiles, nil
}

// parseIntKey converts a JSON object key to an int within [lo, hi].
// Out-of-range or non-numeric keys are skipped silently; the payloads are
// produced by external systems and stray keys are not worth failing over.
func parseIntKey(key string, lo, hi int) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < lo || n > hi {
		return 0, false
	}
	return n, true
}
