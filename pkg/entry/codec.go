package entry

import (
	json "github.com/goccy/go-json"
)

// MarshalList encodes entries as the JSON array kept under the collection
// key. A nil list encodes as an empty array.
func MarshalList(entries []*Entry) ([]byte, error) {
	if entries == nil {
		entries = []*Entry{}
	}
	return json.Marshal(entries)
}

// UnmarshalList decodes a JSON array of entries. A JSON null decodes to an
// empty list and null elements are dropped.
func UnmarshalList(data []byte) ([]*Entry, error) {
	var raw []*Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	list := make([]*Entry, 0, len(raw))
	for _, e := range raw {
		if e == nil {
			continue
		}
		list = append(list, e)
	}
	return list, nil
}
