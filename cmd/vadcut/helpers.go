package main

import "time"

const timePrecision = 10 * time.Millisecond

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
