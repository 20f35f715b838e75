package translation

import (
	"math"
	"sort"
	"strings"
)

// Report compares a document against the reference language
type Report struct {
	Valid         bool     `json:"valid"`
	TotalKeys     int      `json:"total_keys"`
	ReferenceKeys int      `json:"reference_keys"`
	MissingKeys   []string `json:"missing_keys"`
	ExtraKeys     []string `json:"extra_keys"`
	EmptyKeys     []string `json:"empty_keys"`
	Completion    float64  `json:"completion"`
}

// Diff lists keys missing from target, keys target has that reference lacks,
// and keys whose value is an empty string. Completion is the share of
// reference keys that target translates, as a percentage with two decimals.
func Diff(reference, target map[string]any) Report {
	ref := Flatten(reference)
	tgt := Flatten(target)

	r := Report{
		TotalKeys:     len(tgt),
		ReferenceKeys: len(ref),
		MissingKeys:   []string{},
		ExtraKeys:     []string{},
		EmptyKeys:     []string{},
	}

	for key := range ref {
		if _, ok := tgt[key]; !ok {
			r.MissingKeys = append(r.MissingKeys, key)
		}
	}
	for key, value := range tgt {
		if _, ok := ref[key]; !ok {
			r.ExtraKeys = append(r.ExtraKeys, key)
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			r.EmptyKeys = append(r.EmptyKeys, key)
		}
	}

	sort.Strings(r.MissingKeys)
	sort.Strings(r.ExtraKeys)
	sort.Strings(r.EmptyKeys)

	translated := len(ref) - len(r.MissingKeys)
	for _, key := range r.EmptyKeys {
		if _, ok := ref[key]; ok {
			translated--
		}
	}

	if len(ref) == 0 {
		r.Completion = 100
	} else {
		r.Completion = math.Round(float64(translated)/float64(len(ref))*10000) / 100
	}
	r.Valid = len(r.MissingKeys) == 0 && len(r.EmptyKeys) == 0

	return r
}

// Merge deep-merges overlay onto base and returns a new document. Values in
// overlay win; nested objects are merged key by key.
func Merge(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = cloneValue(v)
	}
	for k, v := range overlay {
		if ov, ok := v.(map[string]any); ok {
			if bv, ok := out[k].(map[string]any); ok {
				out[k] = Merge(bv, ov)
				continue
			}
		}
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if m, ok := v.(map[string]any); ok {
		return Merge(m, nil)
	}
	return v
}
