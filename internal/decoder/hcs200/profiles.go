package hcs200

import (
	"time"

	"github.com/d21d3q/gokeeloq/internal/decoder"
)

// TE is nominally 400us on HCS200/HCS300 parts but drifts -30%..+65% with
// temperature and supply voltage. A long pulse (logic 0) is 2 TE high and
// 1 TE low, a short pulse (logic 1) is 1 TE high and 2 TE low.
//
// The gap between code words must lie between 2 TE at the longest TE and
// 10 TE at the shortest. The reset limit must lie between 10 TE at the
// longest TE and the 39 TE guard time at the shortest. Tolerance stays zero:
// a long pulse needs roughly +/-400us and a short pulse +/-200us, which no
// single window satisfies, so the demodulator splits at the midpoint.
//
// Intellicode openers run at twice the rate, TE of about 200us.
var (
	ProfileOOK = decoder.Profile{
		Name:        "hcs200",
		Description: "Microchip HCS200/HCS300 KeeLoq Hopping Encoder based remotes",
		Modulation:  decoder.OOKPulsePWM,
		ShortWidth:  393 * time.Microsecond,
		LongWidth:   787 * time.Microsecond,
		GapLimit:    1500 * time.Microsecond,
		ResetLimit:  9000 * time.Microsecond,
		Fields:      Fields,
	}
	ProfileFSK = decoder.Profile{
		Name:        "hcs200_fsk",
		Description: "Microchip HCS200/HCS300 KeeLoq Hopping Encoder based remotes (FSK)",
		Modulation:  decoder.FSKPulsePWM,
		ShortWidth:  393 * time.Microsecond,
		LongWidth:   787 * time.Microsecond,
		GapLimit:    1500 * time.Microsecond,
		ResetLimit:  9000 * time.Microsecond,
		Fields:      Fields,
	}
	ProfileIntellicode = decoder.Profile{
		Name:        "intellicode",
		Description: "Genie / Overhead Door Intellicode KeeLoq Hopping Encoder based remotes",
		Modulation:  decoder.OOKPulsePWM,
		ShortWidth:  197 * time.Microsecond,
		LongWidth:   393 * time.Microsecond,
		GapLimit:    750 * time.Microsecond,
		ResetLimit:  4500 * time.Microsecond,
		Fields:      Fields,
	}
)

func init() {
	dec := New(nil)
	for _, p := range []decoder.Profile{ProfileOOK, ProfileFSK, ProfileIntellicode} {
		decoder.MustRegister(p, dec)
	}
}
