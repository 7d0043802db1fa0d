package deck

// Serializable is the plain persistence/transport form of a deck. Reload it
// with FromSerializable (lossless, preferred) or by re-decomposing a knitted
// document (lossy legacy fallback).
type Serializable struct {
	Title           string              `json:"title,omitempty"`
	Slides          []SerializableSlide `json:"slides"`
	CSS             string              `json:"css"`
	ExternalScripts []string            `json:"external_scripts"`
}

// SerializableSlide is the persistence form of one slide.
type SerializableSlide struct {
	HTML        string   `json:"html"`
	SlideID     string   `json:"slide_id"`
	Scripts     []string `json:"scripts"`
	ContentHash string   `json:"content_hash"`
}

// ToSerializable converts the deck to its plain persistence form.
func (d *SlideDeck) ToSerializable() *Serializable {
	out := &Serializable{
		Title:           d.Title,
		CSS:             d.CSS,
		ExternalScripts: append([]string(nil), d.ExternalScripts...),
	}
	for _, s := range d.Slides {
		out.Slides = append(out.Slides, SerializableSlide{
			HTML:        s.HTML,
			SlideID:     s.SlideID,
			Scripts:     append([]string(nil), s.Scripts...),
			ContentHash: s.ContentHash,
		})
	}
	return out
}

// FromSerializable reconstructs a deck structurally. Slide ids and content
// hashes are re-derived rather than trusted, and the result is validated
// before it is returned: a persisted snapshot that no longer satisfies the
// deck invariants is rejected rather than resurrected.
func FromSerializable(s *Serializable) (*SlideDeck, error) {
	d := &SlideDeck{
		Title:           s.Title,
		CSS:             s.CSS,
		ExternalScripts: append([]string(nil), s.ExternalScripts...),
	}
	for _, sl := range s.Slides {
		d.Slides = append(d.Slides, &Slide{
			HTML:    sl.HTML,
			Scripts: append([]string(nil), sl.Scripts...),
		})
	}
	d.Renumber()
	d.Rehash()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
