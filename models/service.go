package models

// ServiceCategory groups add-on services; catering is priced per guest.
type ServiceCategory string

const (
	CategoryCleaning  ServiceCategory = "cleaning"
	CategorySecurity  ServiceCategory = "security"
	CategoryEquipment ServiceCategory = "equipment"
	CategoryCatering  ServiceCategory = "catering"
)

// Valid reports whether c is one of the known categories.
func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryCleaning, CategorySecurity, CategoryEquipment, CategoryCatering:
		return true
	}
	return false
}

// PerPerson reports whether services of this category are charged per guest.
func (c ServiceCategory) PerPerson() bool {
	return c == CategoryCatering
}

// SelectedService is an add-on offered by a third-party provider.
type SelectedService struct {
	ID          string          `json:"id" bson:"id"`
	Name        string          `json:"name" bson:"name"`
	Provider    string          `json:"provider" bson:"provider"`
	Price       Money           `json:"price" bson:"price"` // unit price; per guest for catering
	Category    ServiceCategory `json:"category" bson:"category"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
}
