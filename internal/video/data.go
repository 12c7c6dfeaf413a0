package video

import (
	"fmt"

	"framelab/internal/faults"
)

// VideoData holds per-video experimental metadata: category labels that
// apply to every frame, and the time basis relating frame indices to
// elapsed seconds. All fields are optional; deriving an elapsed-time column
// requires all three time-basis fields.
type VideoData struct {
	// Categories maps label names to values broadcast into every row,
	// e.g. {"wire": "NI80", "nominal_power": "85"}.
	Categories map[string]string
	// FPS is the constant frame rate.
	FPS *float64
	// RefIndex is the frame index whose elapsed time is known.
	RefIndex *int
	// RefElapsed is the elapsed time at RefIndex, in seconds.
	RefElapsed *float64
}

// HasTimeBasis reports whether elapsed time can be derived.
func (d VideoData) HasTimeBasis() bool {
	return d.FPS != nil && d.RefIndex != nil && d.RefElapsed != nil
}

func (d VideoData) clone() VideoData {
	out := d
	if d.Categories != nil {
		out.Categories = make(map[string]string, len(d.Categories))
		for k, v := range d.Categories {
			out.Categories[k] = v
		}
	}
	if d.FPS != nil {
		fps := *d.FPS
		out.FPS = &fps
	}
	if d.RefIndex != nil {
		idx := *d.RefIndex
		out.RefIndex = &idx
	}
	if d.RefElapsed != nil {
		elapsed := *d.RefElapsed
		out.RefElapsed = &elapsed
	}
	return out
}

// DataKeys names the mapping keys recognized by VideoDataFromMap.
type DataKeys struct {
	Categories string
	FPS        string
	RefIndex   string
	RefElapsed string
}

// DefaultDataKeys returns the canonical key names.
func DefaultDataKeys() DataKeys {
	return DataKeys{
		Categories: "categories",
		FPS:        "fps",
		RefIndex:   "ref_index",
		RefElapsed: "ref_elapsed_time",
	}
}

// VideoDataFromMap converts a loosely typed mapping (typically decoded from
// a metadata file) into VideoData, validating types up front. Unknown keys
// are rejected so typos surface as configuration errors instead of silently
// dropped fields.
func VideoDataFromMap(values map[string]any, keys DataKeys) (VideoData, error) {
	if keys == (DataKeys{}) {
		keys = DefaultDataKeys()
	}

	known := map[string]struct{}{
		keys.Categories: {},
		keys.FPS:        {},
		keys.RefIndex:   {},
		keys.RefElapsed: {},
	}
	for key := range values {
		if _, ok := known[key]; !ok {
			return VideoData{}, faults.Wrap(faults.ErrConfiguration, "video", "data from map",
				fmt.Sprintf("unknown key %q", key), nil)
		}
	}

	var data VideoData
	if raw, ok := values[keys.Categories]; ok {
		categories, err := categoriesFrom(raw)
		if err != nil {
			return VideoData{}, err
		}
		data.Categories = categories
	}
	if raw, ok := values[keys.FPS]; ok {
		fps, err := floatFrom(raw, keys.FPS)
		if err != nil {
			return VideoData{}, err
		}
		data.FPS = &fps
	}
	if raw, ok := values[keys.RefIndex]; ok {
		index, err := intFrom(raw, keys.RefIndex)
		if err != nil {
			return VideoData{}, err
		}
		data.RefIndex = &index
	}
	if raw, ok := values[keys.RefElapsed]; ok {
		elapsed, err := floatFrom(raw, keys.RefElapsed)
		if err != nil {
			return VideoData{}, err
		}
		data.RefElapsed = &elapsed
	}
	return data, nil
}

func categoriesFrom(raw any) (map[string]string, error) {
	switch typed := raw.(type) {
	case map[string]string:
		out := make(map[string]string, len(typed))
		for k, v := range typed {
			out[k] = v
		}
		return out, nil
	case map[string]any:
		out := make(map[string]string, len(typed))
		for k, v := range typed {
			out[k] = fmt.Sprint(v)
		}
		return out, nil
	default:
		return nil, faults.Wrap(faults.ErrConfiguration, "video", "data from map",
			fmt.Sprintf("categories must be a mapping, got %T", raw), nil)
	}
}

func floatFrom(raw any, key string) (float64, error) {
	switch typed := raw.(type) {
	case float64:
		return typed, nil
	case float32:
		return float64(typed), nil
	case int:
		return float64(typed), nil
	case int64:
		return float64(typed), nil
	default:
		return 0, faults.Wrap(faults.ErrConfiguration, "video", "data from map",
			fmt.Sprintf("%s must be numeric, got %T", key, raw), nil)
	}
}

func intFrom(raw any, key string) (int, error) {
	switch typed := raw.(type) {
	case int:
		return typed, nil
	case int64:
		return int(typed), nil
	case float64:
		whole := int(typed)
		if float64(whole) != typed {
			return 0, faults.Wrap(faults.ErrConfiguration, "video", "data from map",
				fmt.Sprintf("%s must be an integer, got %v", key, typed), nil)
		}
		return whole, nil
	default:
		return 0, faults.Wrap(faults.ErrConfiguration, "video", "data from map",
			fmt.Sprintf("%s must be an integer, got %T", key, raw), nil)
	}
}
