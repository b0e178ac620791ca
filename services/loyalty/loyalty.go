package loyalty

import "flexispace/models"

type Tier struct {
	Name     string   `json:"name"`
	Points   int      `json:"points"`
	Benefits []string `json:"benefits"`
}

// Tiers are ordered by their point threshold.
var Tiers = []Tier{
	{Name: "Bronze", Points: 0, Benefits: []string{"5% discount", "Priority support"}},
	{Name: "Silver", Points: 1000, Benefits: []string{"10% discount", "Early access", "Free cleaning"}},
	{Name: "Gold", Points: 2000, Benefits: []string{"15% discount", "Premium support", "Free security"}},
	{Name: "Platinum", Points: 5000, Benefits: []string{"20% discount", "Concierge service", "All services included"}},
}

// PointsPerMajorUnit is how many rupees of confirmed spend earn one point.
const PointsPerMajorUnit = 10

// TierFor returns the highest tier whose threshold points reaches.
func TierFor(points int) Tier {
	current := Tiers[0]
	for _, t := range Tiers {
		if points >= t.Points {
			current = t
		}
	}
	return current
}

// NextTier returns the first tier above points, or false at the top tier.
func NextTier(points int) (Tier, bool) {
	for _, t := range Tiers {
		if t.Points > points {
			return t, true
		}
	}
	return Tier{}, false
}

// PointsToNext is zero at the top tier.
func PointsToNext(points int) int {
	next, ok := NextTier(points)
	if !ok {
		return 0
	}
	return next.Points - points
}

// PointsFor counts points earned by bookings that were not cancelled.
func PointsFor(records []models.BookingRecord) int {
	var spent models.Money
	for _, r := range records {
		if r.Status == models.StatusCancelled {
			continue
		}
		spent += r.Amount
	}
	return int(spent / models.FromMajor(PointsPerMajorUnit))
}

type Summary struct {
	Points       int   `json:"points"`
	Tier         Tier  `json:"tier"`
	Next         *Tier `json:"next,omitempty"`
	PointsToNext int   `json:"pointsToNext"`
}

func Summarize(points int) Summary {
	s := Summary{Points: points, Tier: TierFor(points), PointsToNext: PointsToNext(points)}
	if next, ok := NextTier(points); ok {
		s.Next = &next
	}
	return s
}
