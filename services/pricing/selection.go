package pricing

import "flexispace/models"

// Selection is an insertion-ordered set of add-on services keyed by ID.
// The zero value is empty and ready to use.
type Selection struct {
	items []models.SelectedService
}

func NewSelection(items ...models.SelectedService) Selection {
	var s Selection
	for _, it := range items {
		if !s.Contains(it.ID) {
			s.items = append(s.items, it)
		}
	}
	return s
}

// Toggle adds the service when its ID is absent and removes it when present.
// It returns true when the service is selected afterwards.
func (s *Selection) Toggle(svc models.SelectedService) bool {
	for i, it := range s.items {
		if it.ID == svc.ID {
			next := make([]models.SelectedService, 0, len(s.items)-1)
			next = append(next, s.items[:i]...)
			next = append(next, s.items[i+1:]...)
			s.items = next
			return false
		}
	}
	next := make([]models.SelectedService, 0, len(s.items)+1)
	next = append(next, s.items...)
	s.items = append(next, svc)
	return true
}

func (s Selection) Contains(id string) bool {
	for _, it := range s.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Items returns a copy of the selected services in selection order.
func (s Selection) Items() []models.SelectedService {
	return append([]models.SelectedService(nil), s.items...)
}

func (s Selection) Len() int {
	return len(s.items)
}

func (s Selection) Clone() Selection {
	return Selection{items: s.Items()}
}

// Names lists the selected service names in selection order.
func (s Selection) Names() []string {
	names := make([]string, 0, len(s.items))
	for _, it := range s.items {
		names = append(names, it.Name)
	}
	return names
}
