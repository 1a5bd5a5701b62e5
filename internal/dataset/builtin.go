package dataset

// Linear is y = 2x over x = 1..4.
func Linear() Dataset {
	return mustNew("linear",
		[][]float64{{1}, {2}, {3}, {4}},
		[]float64{2, 4, 6, 8},
	)
}

// StudySleep maps {study hours, sleep hours} to a test score.
func StudySleep() Dataset {
	return mustNew("study-sleep",
		[][]float64{{1, 5}, {2, 6}, {3, 7}, {4, 8}},
		[]float64{15, 25, 35, 45},
	)
}

// OR is the truth table of the logical OR gate.
func OR() Dataset {
	return mustNew("or",
		[][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		[]float64{0, 1, 1, 1},
	)
}

// Builtin returns the named built-in dataset.
func Builtin(name string) (Dataset, bool) {
	switch name {
	case "linear":
		return Linear(), true
	case "study-sleep", "multi":
		return StudySleep(), true
	case "or":
		return OR(), true
	}
	return Dataset{}, false
}

func mustNew(name string, features [][]float64, targets []float64) Dataset {
	ds, err := New(name, features, targets)
	if err != nil {
		panic(err)
	}
	return ds
}
