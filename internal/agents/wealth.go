package agents

// Transfer moves up to amount from payer to payee and returns what was paid.
// A payer never drops below MinWealth: it pays what it has above the floor and
// the shortfall is simply not paid. Total wealth is unchanged.
func Transfer(payer, payee *Agent, amount float64) float64 {
	if payer == nil || payee == nil || payer == payee || !(amount > 0) {
		return 0
	}
	avail := payer.Wealth - MinWealth
	if avail <= 0 {
		return 0
	}
	if amount > avail {
		amount = avail
	}
	payer.Wealth -= amount
	payee.Wealth += amount
	return amount
}

// TotalWealth sums the wealth of pop.
func TotalWealth(pop []*Agent) float64 {
	total := 0.0
	for _, a := range pop {
		total += a.Wealth
	}
	return total
}
