package feed

import (
	"encoding/json"
	"fmt"

	"github.com/ralt/pluginstats/internal/models"
	"github.com/tidwall/gjson"
)

// ParseClassifiers decodes a classifiers document. Plugin order within each
// status follows the document, which plain map decoding would lose.
func ParseClassifiers(data []byte) (models.ClassifierFeed, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("classifiers: invalid JSON")
	}
	if err := validateDocument(classifiersSchema, data); err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(data)
	feed := make(models.ClassifierFeed, len(models.Statuses))
	for _, st := range models.Statuses {
		plugins := root.Get(string(st))
		if !plugins.Exists() {
			continue
		}

		entries := []models.PluginVersions{}
		index := make(map[string]int)
		plugins.ForEach(func(key, value gjson.Result) bool {
			var versions []string
			if value.IsArray() {
				value.ForEach(func(_, v gjson.Result) bool {
					versions = append(versions, v.String())
					return true
				})
			}

			name := key.String()
			// Repeated keys keep the first position and the last value
			if i, ok := index[name]; ok {
				entries[i].Versions = versions
				return true
			}
			index[name] = len(entries)
			entries = append(entries, models.PluginVersions{Name: name, Versions: versions})
			return true
		})
		feed[st] = entries
	}
	return feed, nil
}

// ParseExtended decodes an extended summary document
func ParseExtended(data []byte) ([]models.ExtendedRecord, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("extended summary: invalid JSON")
	}
	if err := validateDocument(extendedSchema, data); err != nil {
		return nil, err
	}

	var records []models.ExtendedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("extended summary: %w", err)
	}
	return records, nil
}
