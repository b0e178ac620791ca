// Package catalog holds the read-only spaces and add-on services offered to bookers.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"flexispace/models"
)

var (
	ErrSpaceNotFound   = errors.New("space not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrBadCategory     = errors.New("unknown service category")
)

type Catalog struct {
	services []models.SelectedService
	spaces   []models.Space
}

// New copies the given services and spaces; later changes to the slices are not seen.
// Every service must carry one of the known categories.
func New(services []models.SelectedService, spaces []models.Space) (*Catalog, error) {
	for _, s := range services {
		if !s.Category.Valid() {
			return nil, fmt.Errorf("catalog: service %q: %w %q", s.ID, ErrBadCategory, s.Category)
		}
	}
	c := &Catalog{
		services: append([]models.SelectedService(nil), services...),
		spaces:   make([]models.Space, len(spaces)),
	}
	for i, s := range spaces {
		s.Amenities = append([]string(nil), s.Amenities...)
		c.spaces[i] = s
	}
	return c, nil
}

// Default is the built-in catalog.
func Default() *Catalog {
	c, err := New(DefaultServices(), DefaultSpaces())
	if err != nil {
		panic(err)
	}
	return c
}

func DefaultServices() []models.SelectedService {
	return []models.SelectedService{
		{ID: "1", Name: "Professional Cleaning", Provider: "CleanPro SF", Price: models.FromMajor(3500), Category: models.CategoryCleaning, Description: "Complete pre and post-event cleaning service"},
		{ID: "2", Name: "Security Guard", Provider: "SecureSpace", Price: models.FromMajor(2000), Category: models.CategorySecurity, Description: "Professional security personnel for your event"},
		{ID: "3", Name: "Sound System Rental", Provider: "AudioTech", Price: models.FromMajor(4500), Category: models.CategoryEquipment, Description: "Professional sound system with microphones"},
		{ID: "4", Name: "Catering Service", Provider: "Local Bites", Price: models.FromMajor(300), Category: models.CategoryCatering, Description: "Per person catering with local specialties"},
	}
}

func DefaultSpaces() []models.Space {
	return []models.Space{
		{ID: "ramaiah-sports-ground", Title: "Ramaiah Sports Ground", Image: "http://d2e9h3gjmozu47.cloudfront.net/Gallery/sports/sports-full/a.jpg",
			Location: "Mathikere, Bengaluru", City: "Bengaluru", Type: "Playground", BasePrice: models.FromMajor(1200), Capacity: 600,
			Amenities: []string{"Parking", "Restrooms", "Security"}, Rating: 4.7},
		{ID: "lincoln-playground", Title: "Lincoln Elementary School Playground", Image: "https://images.unsplash.com/photo-1578662996442-48f60103fc96",
			Location: "Downtown, San Francisco", City: "San Francisco", Type: "Playground", BasePrice: models.FromMajor(3600), Capacity: 150,
			Amenities: []string{"Parking", "Restrooms", "Playground Equipment", "Security"}, Rating: 4.8},
		{ID: "tech-corp-conference", Title: "Tech Corp Conference Center", Image: "https://images.unsplash.com/photo-1497366216548-37526070297c",
			Location: "SOMA, San Francisco", City: "San Francisco", Type: "Conference Room", BasePrice: models.FromMajor(10000), Capacity: 80,
			Amenities: []string{"WiFi", "Projector", "Catering Kitchen", "Parking"}, Rating: 4.9},
		{ID: "city-hall-community-room", Title: "City Hall Community Room", Image: "https://images.unsplash.com/photo-1582653291997-079a1c04e5a1",
			Location: "Civic Center, San Francisco", City: "San Francisco", Type: "Community Hall", BasePrice: models.FromMajor(2800), Capacity: 120,
			Amenities: []string{"Sound System", "Stage", "Accessibility", "Historical Significance"}, Rating: 4.6},
		{ID: "corporate-parking-lot", Title: "Corporate Parking Lot", Image: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4",
			Location: "Financial District, SF", City: "San Francisco", Type: "Parking Lot", BasePrice: models.FromMajor(2000), Capacity: 200,
			Amenities: []string{"Security", "Easy Access", "Lighting", "Level Surface"}, Rating: 4.4},
	}
}

// Services returns the add-on services in display order.
func (c *Catalog) Services() []models.SelectedService {
	return append([]models.SelectedService(nil), c.services...)
}

func (c *Catalog) Service(id string) (models.SelectedService, error) {
	for _, s := range c.services {
		if s.ID == id {
			return s, nil
		}
	}
	return models.SelectedService{}, ErrServiceNotFound
}

func (c *Catalog) Space(id string) (models.Space, error) {
	for _, s := range c.spaces {
		if s.ID == id {
			s.Amenities = append([]string(nil), s.Amenities...)
			return s, nil
		}
	}
	return models.Space{}, ErrSpaceNotFound
}

// SearchFilter narrows Search. Zero values do not filter.
type SearchFilter struct {
	Query     string       `form:"q" json:"q"`
	Location  string       `form:"location" json:"location"`
	Types     []string     `form:"type" json:"types"`
	Guests    int          `form:"guests" json:"guests"`
	MinPrice  models.Money `form:"minPrice" json:"minPrice"`
	MaxPrice  models.Money `form:"maxPrice" json:"maxPrice"`
	Amenities []string     `form:"amenity" json:"amenities"`
}

// Search returns the spaces matching every set filter, best rated first.
func (c *Catalog) Search(f SearchFilter) []models.Space {
	out := []models.Space{}
	for _, s := range c.spaces {
		if matches(s, f) {
			s.Amenities = append([]string(nil), s.Amenities...)
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func matches(s models.Space, f SearchFilter) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		if !containsFold(s.Title, q) && !containsFold(s.Location, q) && !containsFold(s.Type, q) {
			return false
		}
	}
	if loc := strings.TrimSpace(f.Location); loc != "" && !containsFold(s.Location, loc) && !containsFold(s.City, loc) {
		return false
	}
	if len(f.Types) > 0 && !anyFold(f.Types, s.Type) {
		return false
	}
	if f.Guests > 0 && s.Capacity < f.Guests {
		return false
	}
	if f.MinPrice > 0 && s.BasePrice < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && s.BasePrice > f.MaxPrice {
		return false
	}
	for _, a := range f.Amenities {
		if !anyFold(s.Amenities, a) {
			return false
		}
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func anyFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}
