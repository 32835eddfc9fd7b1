package dataset

// SampleProducts are two fixed observations used to smoke-test a trained
// model. The first has a known next-month value; the second is a forecast.
var SampleProducts = []ProductData{
	{
		ProductID: "263",
		Year:      2017,
		Month:     10,
		Units:     910,
		Avg:       91,
		Count:     10,
		Max:       370,
		Min:       1,
		Prev:      1675,
		Next:      871,
	},
	{
		ProductID: "988",
		Year:      2017,
		Month:     11,
		Units:     1076,
		Avg:       41,
		Count:     26,
		Max:       225,
		Min:       4,
		Prev:      1094,
		Next:      0,
	},
}

// SampleHasObserved reports whether SampleProducts[i] carries a real
// next-month value.
func SampleHasObserved(i int) bool {
	return i == 0
}
