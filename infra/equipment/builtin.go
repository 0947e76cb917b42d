package equipment

// builtinSeats holds typical two-class seat counts for common BTS/IATA and
// ICAO equipment designators.
var builtinSeats = map[string]int{
	// Airbus
	"319": 128, "A319": 128,
	"320": 150, "A320": 150,
	"321": 190, "A321": 190,
	"32N": 165, "A20N": 165,
	"32Q": 196, "A21N": 196,
	"221": 109, "BCS1": 109,
	"223": 130, "BCS3": 130,
	"332": 260, "A332": 260,
	"333": 290, "A333": 290,
	"339": 281, "A339": 281,
	"359": 306, "A359": 306,
	// Boeing
	"717": 110, "B712": 110,
	"73G": 143, "B737": 143,
	"738": 172, "B738": 172,
	"739": 180, "B739": 180,
	"7M8": 172, "B38M": 172,
	"7M9": 180, "B39M": 180,
	"752": 190, "B752": 190,
	"753": 234, "B753": 234,
	"763": 211, "B763": 211,
	"764": 238, "B764": 238,
	"772": 300, "B772": 300,
	"77W": 350, "B77W": 350,
	"788": 242, "B788": 242,
	"789": 290, "B789": 290,
	"M88": 149, "MD88": 149,
	"M90": 160, "MD90": 160,
	// Regional
	"E70": 72, "E170": 72,
	"E75": 76, "E175": 76,
	"E90": 100, "E190": 100,
	"E95": 120, "E195": 120,
	"CR2": 50, "CRJ2": 50,
	"CR7": 70, "CRJ7": 70,
	"CR9": 76, "CRJ9": 76,
	"DH4": 76, "DH8D": 76,
	"AT7": 70, "AT72": 70,
	"ER4": 50, "E145": 50,
}
