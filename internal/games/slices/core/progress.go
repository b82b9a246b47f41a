package core

// Progress tracks level XP, bounded by Max.
type Progress struct {
	XP  int
	Max int
}

// Add increases XP, clamping at Max. Negative amounts are ignored so XP
// never decreases.
func (p *Progress) Add(amount int) {
	if amount <= 0 {
		return
	}
	if amount > p.Max-p.XP {
		p.XP = p.Max
		return
	}
	p.XP += amount
}

// IsLevelCompleted returns true once XP reaches Max.
func (p *Progress) IsLevelCompleted() bool {
	return p.XP >= p.Max
}

// Fraction returns progress in [0, 1].
func (p *Progress) Fraction() float64 {
	if p.Max <= 0 {
		return 1
	}
	return float64(p.XP) / float64(p.Max)
}
