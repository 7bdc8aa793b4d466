package models

// PropertyPrice is a flat nightly rate for one accommodation type. There is
// no seasonal or inventory pricing; the table is a lookup only.
type PropertyPrice struct {
	Property    string `json:"property"`
	NightlyRate int    `json:"nightly_rate"`
}
