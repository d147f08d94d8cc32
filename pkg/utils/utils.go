package utils

import "math"

// RoundTo rounds value to the given number of decimal places, half away
// from zero.
func RoundTo(value float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(value*shift) / shift
}

// RoundPtr rounds the pointed-to value, passing nil through.
func RoundPtr(value *float64, decimals int) *float64 {
	if value == nil {
		return nil
	}
	rounded := RoundTo(*value, decimals)
	return &rounded
}

// ToPointer returns a pointer to value.
func ToPointer[T any](value T) *T {
	return &value
}

// ContainsString checks if a slice of strings contains a specific string.
func ContainsString(slice []string, str string) bool {
	for _, item := range slice {
		if item == str {
			return true
		}
	}
	return false
}
