package geo

import "math"

const earthRadiusKm = 6371

// HaversineKm returns the great-circle distance in kilometres between
// two WGS84 points.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// KmToNm converts kilometres to nautical miles.
func KmToNm(km float64) float64 {
	return km / 1.852
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
