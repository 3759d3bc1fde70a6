package linreg

type Results struct {
	X         []float64 `json:"x"`
	Predicted []float64 `json:"predicted"`
}
