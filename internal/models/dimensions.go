package models

import (
	"errors"
	"fmt"
)

// Dimensions describes the physical size and weight of a product.
// Lengths are in centimeters, weight in kilograms.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
	Weight float64
}

// ErrInvalidDimension is returned when any dimension value is not positive
var ErrInvalidDimension = errors.New("dimension values must be positive")

// NewDimensions validates and builds a Dimensions value
func NewDimensions(length, width, height, weight float64) (Dimensions, error) {
	for _, v := range []float64{length, width, height, weight} {
		if v <= 0 {
			return Dimensions{}, ErrInvalidDimension
		}
	}

	return Dimensions{
		Length: length,
		Width:  width,
		Height: height,
		Weight: weight,
	}, nil
}

// Volume returns the bounding-box volume in cubic centimeters
func (d Dimensions) Volume() float64 {
	return d.Length * d.Width * d.Height
}

// Format renders the dimensions for display
func (d Dimensions) Format() string {
	return fmt.Sprintf("%.1f x %.1f x %.1f cm, %.2f kg", d.Length, d.Width, d.Height, d.Weight)
}
