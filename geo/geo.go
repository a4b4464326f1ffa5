// Package geo provides the small amount of plane geometry the area-notice
// application envelope (DAC=1, FI=22) needs to give its subareas a center
// point and, for the circle/rectangle/sector shapes, a bounding rectangle
// (see application.Bounded). It is adapted from tormol-AIS's spatial-index
// support, trimmed to what a decoder (as opposed to a ship database) needs.
package geo

import (
	"errors"
	"math"
)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat  float64
	Long float64
}

// LegalCoord reports whether lat/long are within the normal ranges.
func LegalCoord(lat, long float64) bool {
	return lat >= -90 && lat <= 90 && long >= -180 && long <= 180
}

// DistanceTo returns a's distance to b, in degrees, using the diagonal of
// their minimum bounding rectangle. This is a flat-earth approximation
// good enough for notice-area bookkeeping, not navigation.
func (a Point) DistanceTo(b Point) float64 {
	width := math.Abs(a.Long - b.Long)
	height := math.Abs(a.Lat - b.Lat)
	if width > 0 && height > 0 {
		return math.Sqrt(width*width + height*height)
	}
	return math.Max(width, height)
}

// Rectangle is an axis-aligned bounding box.
type Rectangle struct {
	Min Point // lowest latitude, lowest longitude
	Max Point // highest latitude, highest longitude
}

// NewRectangle validates and builds a Rectangle from its corners.
func NewRectangle(minLat, minLong, maxLat, maxLong float64) (Rectangle, error) {
	if minLat > maxLat || minLong > maxLong {
		return Rectangle{}, errors.New("geo: rectangle min > max")
	}
	if !LegalCoord(minLat, minLong) || !LegalCoord(maxLat, maxLong) {
		return Rectangle{}, errors.New("geo: illegal coordinates")
	}
	return Rectangle{Min: Point{minLat, minLong}, Max: Point{maxLat, maxLong}}, nil
}

// Center returns the Rectangle's midpoint.
func (r Rectangle) Center() Point {
	return Point{
		Lat:  r.Min.Lat + (r.Max.Lat-r.Min.Lat)/2,
		Long: r.Min.Long + (r.Max.Long-r.Min.Long)/2,
	}
}

// ContainsPoint reports whether p lies within r, inclusive of the edges.
func (r Rectangle) ContainsPoint(p Point) bool {
	return p.Lat >= r.Min.Lat && p.Lat <= r.Max.Lat &&
		p.Long >= r.Min.Long && p.Long <= r.Max.Long
}

// metersPerDegreeLat is the flat-earth approximation used throughout this
// package: one degree of latitude is always this many meters, and one
// degree of longitude is that scaled by cos(latitude).
const metersPerDegreeLat = 111320.0

// metersToDegrees converts an east/west and north/south extent in meters,
// measured at atLat, into degrees of longitude and latitude.
func metersToDegrees(eastMeters, northMeters, atLat float64) (eastDeg, northDeg float64) {
	cos := math.Cos(atLat * math.Pi / 180)
	if cos < 1e-9 {
		cos = 1e-9 // near the poles; avoids a divide-by-zero, not a correct projection there
	}
	return eastMeters / (metersPerDegreeLat * cos), northMeters / metersPerDegreeLat
}

// RectangleFromCenterAndDims builds the bounding box of an area-notice
// rectangle or sector subarea, whose wire format gives a center point plus
// an east and a north extent in meters, rotated by orientation degrees
// clockwise from true north. Rotation is approximated by expanding the box
// to contain the rotated corners, which is exact at orientation 0/90/180/270
// and conservative elsewhere — adequate for the bounding-box use case this
// package exists for.
func RectangleFromCenterAndDims(center Point, eastMeters, northMeters, orientationDeg float64) Rectangle {
	eastDeg, northDeg := metersToDegrees(eastMeters, northMeters, center.Lat)
	theta := orientationDeg * math.Pi / 180
	cos, sin := math.Abs(math.Cos(theta)), math.Abs(math.Sin(theta))
	halfLong := (eastDeg*cos + northDeg*sin) / 2
	halfLat := (eastDeg*sin + northDeg*cos) / 2
	return Rectangle{
		Min: Point{Lat: center.Lat - halfLat, Long: center.Long - halfLong},
		Max: Point{Lat: center.Lat + halfLat, Long: center.Long + halfLong},
	}
}
