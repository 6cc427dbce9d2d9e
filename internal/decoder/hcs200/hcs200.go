// Package hcs200 decodes Microchip HCS200/HCS300 KeeLoq code hopping
// encoder packets.
//
// 66 bits are transmitted LSB first:
//
//	 0-31  encrypted portion
//	32-59  serial number
//	60-63  button status (S3, S0, S1, S2)
//	   64  battery low
//	   65  repeat
//
// The demodulator collapses the 23 TE preamble and 10 TE header into a 12 bit
// marker row, so a valid buffer is {12}fff followed by the {66} code word.
package hcs200

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/d21d3q/gokeeloq/internal/bitbuffer"
	"github.com/d21d3q/gokeeloq/internal/records"
)

const (
	// Model is reported for every profile sharing this decoder.
	Model = "Microchip-HCS200"

	preambleBits = 12
	payloadBits  = 66
)

// Event is one decoded code word.
type Event struct {
	Model     string
	Serial    uint32
	Encrypted uint32
	// Button uses the numeric order S3 S2 S1 S0; RawButton keeps the
	// transmitted order S3 S0 S1 S2.
	Button    uint8
	RawButton uint8
	Learn     bool
	BatteryOK bool
	Repeat    bool
}

// ID returns the serial number as 7 hex digits.
func (e Event) ID() string {
	return fmt.Sprintf("%07X", e.Serial)
}

// EncryptedHex returns the rolling code as 8 hex digits.
func (e Event) EncryptedHex() string {
	return fmt.Sprintf("%08X", e.Encrypted)
}

// Record renders the event as an ordered output record.
func (e Event) Record() records.Data {
	return records.Data{
		{Key: "model", Value: e.Model},
		{Key: "id", Value: e.ID()},
		{Key: "battery_ok", Label: "Battery", Value: boolInt(e.BatteryOK)},
		{Key: "button", Label: "Button", Value: int(e.Button)},
		{Key: "learn", Label: "Learn mode", Value: boolInt(e.Learn)},
		{Key: "repeat", Label: "Repeat", Value: boolInt(e.Repeat)},
		{Key: "encrypted", Value: e.EncryptedHex()},
	}
}

// Fields lists the output record keys in order.
var Fields = []string{"model", "id", "battery_ok", "button", "learn", "repeat", "encrypted"}

// Decoder validates and extracts HCS200 code words. It keeps no state between
// calls and is safe for concurrent use.
type Decoder struct {
	log logrus.FieldLogger
}

// New returns a decoder logging diagnostics to log. A nil log uses the
// logrus standard logger.
func New(log logrus.FieldLogger) *Decoder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Decoder{log: log.WithField("decoder", "hcs200")}
}

// Name returns the canonical decoder name.
func (d *Decoder) Name() string { return "hcs200" }

// DecodeRecord implements decoder.Decoder.
func (d *Decoder) DecodeRecord(buf *bitbuffer.Buffer) (records.Data, error) {
	ev, err := d.Decode(buf)
	if err != nil {
		return nil, err
	}
	return ev.Record(), nil
}

// Decode validates buf and extracts the code word. Rejections are returned as
// *RejectError. buf is only read.
func (d *Decoder) Decode(buf *bitbuffer.Buffer) (Event, error) {
	if buf == nil {
		return Event{}, reject(ReasonWrongLength, "no buffer")
	}
	if buf.BitsPerRow(0) != preambleBits || buf.BitsPerRow(1) != payloadBits {
		return Event{}, reject(ReasonWrongLength, "rows of %d and %d bits", buf.BitsPerRow(0), buf.BitsPerRow(1))
	}

	p := buf.Row(0)
	if p[0] != 0xFF || p[1]&0xF0 != 0xF0 {
		d.log.Debug("preamble not found")
		return Event{}, reject(ReasonPreambleMismatch, "marker %02X%X", p[0], p[1]>>4)
	}

	b := buf.Row(1)
	if allOnes(b[1:8]) {
		d.log.Debug("data all 0xff")
		return Event{}, reject(ReasonSanity, "data all 0xff")
	}

	return extract(b), nil
}

func extract(b []byte) Event {
	r := bitbuffer.Reverse8
	raw := b[7] & 0x0F
	return Event{
		Model:     Model,
		Encrypted: uint32(r(b[3]))<<24 | uint32(r(b[2]))<<16 | uint32(r(b[1]))<<8 | uint32(r(b[0])),
		Serial:    uint32(r(b[7]&0xF0))<<24 | uint32(r(b[6]))<<16 | uint32(r(b[5]))<<8 | uint32(r(b[4])),
		Button:    canonicalButton(raw),
		RawButton: raw,
		Learn:     raw == 0x0F,
		BatteryOK: b[8]&0x80 == 0,
		Repeat:    b[8]&0x40 != 0,
	}
}

// canonicalButton maps the transmitted S3 S0 S1 S2 nibble to S3 S2 S1 S0.
func canonicalButton(raw byte) uint8 {
	return raw&0x08 | (raw&0x01)<<2 | raw&0x02 | (raw&0x04)>>2
}

func allOnes(b []byte) bool {
	for _, v := range b {
		if v != 0xFF {
			return false
		}
	}
	return true
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
