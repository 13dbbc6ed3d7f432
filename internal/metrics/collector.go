package metrics

// DataPoint is one row of the per-step model history.
type DataPoint struct {
	Step        int     `json:"step"`
	Gini        float64 `json:"gini"`
	TotalWealth float64 `json:"total_wealth"`
	Mobility    float64 `json:"mobility"` // Bartholomew index for this step
	Churn       Churn   `json:"churn"`
}

// Collector is the append-only model history.
type Collector struct {
	points []DataPoint
}

// Record appends p.
func (c *Collector) Record(p DataPoint) {
	c.points = append(c.points, p)
}

// Len returns the number of recorded points.
func (c *Collector) Len() int {
	return len(c.points)
}

// Reset drops all recorded points.
func (c *Collector) Reset() {
	c.points = nil
}

// Points returns a copy of the history.
func (c *Collector) Points() []DataPoint {
	out := make([]DataPoint, len(c.points))
	copy(out, c.points)
	return out
}

// GiniSeries returns the Gini coefficient of every recorded step.
func (c *Collector) GiniSeries() []float64 {
	out := make([]float64, len(c.points))
	for i, p := range c.points {
		out[i] = p.Gini
	}
	return out
}

// TotalSeries returns the total wealth of every recorded step.
func (c *Collector) TotalSeries() []float64 {
	out := make([]float64, len(c.points))
	for i, p := range c.points {
		out[i] = p.TotalWealth
	}
	return out
}

// Last returns the most recent point and whether there is one.
func (c *Collector) Last() (DataPoint, bool) {
	if len(c.points) == 0 {
		return DataPoint{}, false
	}
	return c.points[len(c.points)-1], true
}
