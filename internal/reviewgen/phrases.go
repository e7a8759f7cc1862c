package reviewgen

var products = []string{ //nolint:gochecknoglobals // phrase bank
	"guitar strings", "capo", "tuner", "cable", "pedal", "strap", "mic stand",
	"pop filter", "amp", "picks", "gig bag", "drum sticks",
}

var positivePhrases = []string{ //nolint:gochecknoglobals // phrase bank
	"works great and sounds amazing",
	"excellent quality for the price",
	"I love it and use it every day",
	"very happy with this purchase",
	"solid build and easy to use",
	"highly recommend it to anyone",
	"perfect fit and a wonderful tone",
	"best one I have owned so far",
	"arrived quickly and works perfectly",
	"great value and really reliable",
}

var negativePhrases = []string{ //nolint:gochecknoglobals // phrase bank
	"broke after a week of light use",
	"terrible quality and a waste of money",
	"stopped working almost immediately",
	"cheap plastic that feels flimsy",
	"very disappointed and returned it",
	"awful noise and constant hum",
	"does not fit and the seller ignored me",
	"poor design and useless instructions",
	"worst purchase I have made this year",
	"defective out of the box",
}

var neutralPhrases = []string{ //nolint:gochecknoglobals // phrase bank
	"it does what it says",
	"average product nothing special",
	"okay for occasional use",
	"packaging was plain",
	"about what I expected",
	"delivery took the usual time",
}

var summaries = map[int][]string{ //nolint:gochecknoglobals // phrase bank
	1: {"Avoid", "Junk", "Very bad"},
	2: {"Disappointing", "Not good"},
	3: {"It is fine", "Meh"},
	4: {"Good", "Nice"},
	5: {"Five stars", "Excellent", "Love it"},
}
