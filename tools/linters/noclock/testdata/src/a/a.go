package a

import "time"

func bad() {
	_ = time.Now() // want "time.Now\\(\\) is not allowed here; thread the instant through as a parameter"
}

func alsoBad() {
	t := time.Now().UTC() // want "time.Now\\(\\) is not allowed here; thread the instant through as a parameter"
	_ = t
}

func good(now time.Time) {
	_ = now.UTC()
}

func nolintGeneral() {
	//nolint
	_ = time.Now()
}

func nolintSpecific() {
	_ = time.Now() //nolint:noclock
}

func nolintOtherLinter() {
	_ = time.Now() //nolint:otherlinter // want "time.Now\\(\\) is not allowed here; thread the instant through as a parameter"
}
