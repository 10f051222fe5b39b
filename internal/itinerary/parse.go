// Package itinerary loads the static trip item list the calendar renders.
package itinerary

import (
	"encoding/json"
	"fmt"

	applog "tripcal/internal/log"
	"tripcal/internal/model"
)

// ParseItems decodes an itinerary JSON payload (an array of tagged item
// records) into the item list.
//
// Individual malformed records (unknown type tag, missing time fields)
// are logged and skipped so one bad record does not fail the whole load.
// Only an undecodable top-level document is an error.
func ParseItems(data []byte) ([]model.Item, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty itinerary body")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode itinerary: %w", err)
	}

	items := make([]model.Item, 0, len(raw))
	for i, rec := range raw {
		var it model.Item
		if err := json.Unmarshal(rec, &it); err != nil {
			applog.Error("itinerary record decode failed; skipping", err, "index", i)
			continue
		}
		if err := it.Validate(); err != nil {
			applog.Error("itinerary record invalid; skipping", err, "index", i, "title", it.Title)
			continue
		}
		items = append(items, it)
	}

	applog.Info("itinerary parse completed", "record_count", len(raw), "item_count", len(items))
	return items, nil
}
