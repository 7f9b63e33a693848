package hyper

// Config carries the session settings every constructor needs. The engine
// never reads session state beyond what is passed here.
type Config struct {
	Radius       float64 `json:"radius"`  // disk radius R in canvas units
	Segment      bool    `json:"segment"` // draw lines between their anchors only
	StrokeStyle  string  `json:"strokeStyle"`
	FillStyle    string  `json:"fillStyle"`
	LineWidth    float64 `json:"lineWidth"`
	FillOpacity  float64 `json:"fillOpacity"`
	AnchorRadius float64 `json:"anchorRadius"`
}

// DefaultConfig returns the stock drawing style for a disk of the given radius.
func DefaultConfig(radius float64) Config {
	return Config{
		Radius:       radius,
		StrokeStyle:  "black",
		FillStyle:    "orange",
		LineWidth:    2,
		FillOpacity:  0.5,
		AnchorRadius: 5,
	}
}
