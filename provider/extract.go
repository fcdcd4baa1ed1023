package provider

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Extractors are pure functions over raw response bodies. They report false
// instead of failing when a body has an unexpected shape.

// ExtractNested joins the translated segments of a web-translate reply:
// the first string of every segment in the first outer entry.
//
//	[[["Hola ","Hello ",null,null,10],["mundo","world",null,null,10]],null,"en"]
func ExtractNested(body []byte) (string, bool) {
	segments, ok := nestedSegments(body, 0)
	if !ok {
		return "", false
	}

	var sb strings.Builder
	for _, seg := range segments {
		if s, ok := stringAt(seg, 0); ok {
			sb.WriteString(s)
		}
	}

	out := strings.TrimSpace(sb.String())
	return out, out != ""
}

// ExtractNestedPronunciation looks for a romanization in a web-translate
// reply. The format is undocumented, so a fixed list of offsets is scanned
// and the first non-empty string wins:
//
//  1. outer[0][i][2] for every segment i
//  2. outer[0][i][3] for every segment i
//  3. outer[k][0][2], then outer[k][0][3], for k = 1, 2
func ExtractNestedPronunciation(body []byte) (string, bool) {
	outer, ok := decodeArray(body)
	if !ok {
		return "", false
	}

	if segments, ok := segmentsOf(outer, 0); ok {
		for _, idx := range []int{2, 3} {
			for _, seg := range segments {
				if s, ok := stringAt(seg, idx); ok {
					return s, true
				}
			}
		}
	}

	for _, k := range []int{1, 2} {
		segments, ok := segmentsOf(outer, k)
		if !ok || len(segments) == 0 {
			continue
		}
		for _, idx := range []int{2, 3} {
			if s, ok := stringAt(segments[0], idx); ok {
				return s, true
			}
		}
	}

	return "", false
}

// flatFields are checked in order on flat-object replies.
var flatFields = []string{"translatedText", "translation", "result"}

// ExtractFlat reads a flat JSON object reply. Each of translatedText,
// translation and result may hold a string or an array whose first element
// is a string. A top-level array is treated as its first element.
func ExtractFlat(body []byte) (string, bool) {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", false
	}

	if arr, ok := raw.([]interface{}); ok {
		if len(arr) == 0 {
			return "", false
		}
		raw = arr[0]
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return "", false
	}

	for _, field := range flatFields {
		if s, ok := firstString(obj[field]); ok {
			return s, true
		}
	}
	return "", false
}

// Match is one translation-memory candidate.
type Match struct {
	Translation string
	Quality     float64
}

// envelope is the translation-memory reply shape.
type envelope struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus  json.RawMessage `json:"responseStatus"`
	ResponseDetails string          `json:"responseDetails"`
	Matches         []struct {
		Translation string          `json:"translation"`
		Quality     json.RawMessage `json:"quality"`
	} `json:"matches"`
}

// ExtractEnvelope reads a translation-memory reply: responseData.translatedText
// when present, otherwise the best entry of matches (see BestMatch).
func ExtractEnvelope(body []byte) (string, bool) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", false
	}

	if s := strings.TrimSpace(env.ResponseData.TranslatedText); s != "" {
		return s, true
	}

	matches := make([]Match, 0, len(env.Matches))
	for _, m := range env.Matches {
		matches = append(matches, Match{
			Translation: m.Translation,
			Quality:     parseQuality(m.Quality),
		})
	}
	return BestMatch(matches)
}

// BestMatch returns the translation with the strictly highest quality. Ties
// go to the earliest entry, and entries with a blank translation never win.
func BestMatch(matches []Match) (string, bool) {
	best := -1
	for i, m := range matches {
		if strings.TrimSpace(m.Translation) == "" {
			continue
		}
		if best < 0 || m.Quality > matches[best].Quality {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return strings.TrimSpace(matches[best].Translation), true
}

// keyRequiredMarkers identify replies from instances that demand an API key.
var keyRequiredMarkers = []string{
	"portal.libretranslate.com",
	"api key required",
	"invalid api key",
	"get an api key",
}

// RequiresAPIKey reports whether body is an "API key required" reply. A
// reply carrying translatedText is a translation whatever it says; otherwise
// only the error field is checked when there is one.
func RequiresAPIKey(body []byte) bool {
	var reply struct {
		TranslatedText json.RawMessage `json:"translatedText"`
		Error          json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &reply); err == nil {
		if present(reply.TranslatedText) {
			return false
		}
		if present(reply.Error) {
			body = reply.Error
		}
	}

	lower := bytes.ToLower(body)
	for _, marker := range keyRequiredMarkers {
		if bytes.Contains(lower, []byte(marker)) {
			return true
		}
	}
	return false
}

// quotaMarker is the text translation memories put in place of a
// translation once the daily free quota is spent.
const quotaMarker = "MYMEMORY WARNING"

// QuotaExceeded reports whether a translation-memory reply is a quota
// warning. Only responseData.translatedText and responseDetails are checked;
// matches hold other users' entries and may contain anything. Bodies that
// are not JSON are checked whole.
func QuotaExceeded(body []byte) bool {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return strings.Contains(strings.ToUpper(string(body)), quotaMarker)
	}
	return strings.Contains(strings.ToUpper(env.ResponseData.TranslatedText), quotaMarker) ||
		strings.Contains(strings.ToUpper(env.ResponseDetails), quotaMarker)
}

// present reports whether a raw JSON field was sent with a non-null value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// parseQuality accepts numbers and numeric strings; translation memories are
// inconsistent about which they send.
func parseQuality(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

func decodeArray(body []byte) ([]interface{}, bool) {
	var outer []interface{}
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, false
	}
	return outer, true
}

func nestedSegments(body []byte, k int) ([]interface{}, bool) {
	outer, ok := decodeArray(body)
	if !ok {
		return nil, false
	}
	return segmentsOf(outer, k)
}

// segmentsOf returns outer[k] when it is a list.
func segmentsOf(outer []interface{}, k int) ([]interface{}, bool) {
	if k >= len(outer) {
		return nil, false
	}
	segments, ok := outer[k].([]interface{})
	return segments, ok
}

// stringAt returns seg[idx] when seg is a list and that element is a
// non-blank string.
func stringAt(seg interface{}, idx int) (string, bool) {
	arr, ok := seg.([]interface{})
	if !ok || idx >= len(arr) {
		return "", false
	}
	s, ok := arr[idx].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func firstString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case []interface{}:
		if len(val) == 0 {
			return "", false
		}
		return firstString(val[0])
	default:
		return "", false
	}
}
