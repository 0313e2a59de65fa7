package roster

import "context"

// Memory is an in-memory Source. Err, when set, is returned by every call.
type Memory struct {
	Classes  []Arrangement
	Students []Registration
	Err      error
}

var _ Source = (*Memory)(nil)

// Arrangements returns the stored arrangements matching q, in stored order.
func (m *Memory) Arrangements(_ context.Context, q Query) ([]Arrangement, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []Arrangement
	for _, a := range m.Classes {
		if a.SeasonID != q.SeasonID {
			continue
		}
		if q.ClassID != 0 && a.ClassID != q.ClassID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// Registrations returns the stored registrations of a season.
func (m *Memory) Registrations(_ context.Context, seasonID int) ([]Registration, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []Registration
	for _, r := range m.Students {
		if r.SeasonID == seasonID {
			out = append(out, r)
		}
	}
	return out, nil
}
