package domain

// A pending, server-owned hold on a flight leg. Converted into a Ticket by
// purchase or removed by explicit deletion.
type Reservation struct {
	Id   string `json:"Id"`
	Src  City   `json:"Src"`
	Dest City   `json:"Dest"`
}

func (r Reservation) Key() string { return r.Id }

// A purchased booking. Created server-side when a Reservation is bought.
type Ticket struct {
	Id   string `json:"Id"`
	Src  City   `json:"Src"`
	Dest City   `json:"Dest"`
}

func (t Ticket) Key() string { return t.Id }

// Keyed is implemented by entities that are reconciled locally by id.
type Keyed interface {
	Key() string
}

// RemoveByKey returns items without the entry whose key is id, preserving the
// order of the remaining entries. removed is false when id was not present.
func RemoveByKey[T Keyed](items []T, id string) (_ []T, removed bool) {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !removed && it.Key() == id {
			removed = true
			continue
		}
		out = append(out, it)
	}
	return out, removed
}
