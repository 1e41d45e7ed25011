package core

import (
	"encoding/json"
	"fmt"
)

// Codec converts the note list to and from the bytes kept in a Slot.
type Codec interface {
	Encode(notes []Note) ([]byte, error)
	Decode(data []byte) ([]Note, error)
}

// RecordCodec stores notes as a JSON array of {id, title, text} objects.
type RecordCodec struct{}

func (RecordCodec) Encode(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	return json.Marshal(notes)
}

func (RecordCodec) Decode(data []byte) ([]Note, error) {
	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if notes == nil {
		return nil, fmt.Errorf("%w: null list", ErrCorrupt)
	}
	return notes, nil
}

// TextCodec stores notes as a JSON array of strings.
// Positions are not identity: decoded notes carry a zero ID and get a fresh
// one from the store.
type TextCodec struct{}

func (TextCodec) Encode(notes []Note) ([]byte, error) {
	texts := make([]string, len(notes))
	for i, n := range notes {
		texts[i] = n.Text
	}
	return json.Marshal(texts)
}

func (TextCodec) Decode(data []byte) ([]Note, error) {
	var texts []string
	if err := json.Unmarshal(data, &texts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if texts == nil {
		return nil, fmt.Errorf("%w: null list", ErrCorrupt)
	}
	notes := make([]Note, len(texts))
	for i, t := range texts {
		notes[i] = Note{Text: t}
	}
	return notes, nil
}
