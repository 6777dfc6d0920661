package delegate

// AllocatePerBee computes the estimated token allocation for each bee:
// the integer floor of the even budget share, scaled by the dance's
// efficiency multiplier and floored again. A base share of zero (more
// bees than tokens) yields zero, which is an accepted boundary rather
// than an error. The result is an a-priori estimate used for savings
// accounting, not a reservation.
func AllocatePerBee(totalBudget, beeCount int, multiplier float64) int {
	if beeCount < 1 {
		beeCount = 1
	}
	base := totalBudget / beeCount
	return int(float64(base) * multiplier)
}
