package domain

// FloodAssessment is the outcome of checking one route against flooded areas.
type FloodAssessment struct {
	HasFlooding bool      `json:"hasFlooding"`
	Risk        RiskLevel `json:"risk"`

	// Hit counters count (point, area) pairs, so a route that keeps
	// several points inside one area counts each of them.
	SevereHits   int `json:"severeHits"`
	ModerateHits int `json:"moderateHits"`
	CautionHits  int `json:"cautionHits"`
}

// CheckRouteForFlooding counts route points falling inside each flooded
// area and classifies the route's risk. It returns an ErrInvalidArgument
// error for routes with fewer than two points or malformed areas.
func CheckRouteForFlooding(route []Coordinate, areas []FloodedArea) (FloodAssessment, error) {
	if err := validatePath(route); err != nil {
		return FloodAssessment{}, err
	}
	if err := validateAreas(areas); err != nil {
		return FloodAssessment{}, err
	}

	var a FloodAssessment
	for _, point := range route {
		for _, area := range areas {
			if !area.Contains(point) {
				continue
			}
			switch area.Level {
			case AlertSevere:
				a.SevereHits++
			case AlertModerate:
				a.ModerateHits++
			case AlertCaution:
				a.CautionHits++
			}
		}
	}

	a.HasFlooding, a.Risk = classifyHits(a.SevereHits, a.ModerateHits, a.CautionHits)
	return a, nil
}

// classifyHits applies the risk precedence table. Order matters: two
// moderate hits rank high even without any severe hit.
func classifyHits(severe, moderate, caution int) (bool, RiskLevel) {
	switch {
	case severe > 0:
		return true, RiskHigh
	case moderate > 1:
		return true, RiskHigh
	case moderate == 1 || caution > 2:
		return true, RiskMedium
	case caution > 0:
		return true, RiskLow
	default:
		return false, RiskLow
	}
}
